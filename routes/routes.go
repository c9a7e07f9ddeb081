package routes

import (
	"tokples-api/controllers"
	"tokples-api/middleware"
	"tokples-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/register", controllers.Register)
			public.POST("/password-reset", controllers.RequestPasswordReset)
			public.POST("/password-reset/confirm", controllers.ConfirmPasswordReset)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Tok Ples API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Common endpoints (all authenticated users)
			protected.GET("/languages", controllers.GetLanguages)
			protected.GET("/announcements", controllers.GetAnnouncements)

			// Task queue
			tasks := protected.Group("/tasks")
			{
				tasks.GET("/next", controllers.GetNextTask)
				tasks.POST("/:id/skip", controllers.SkipTask)

				// Only admin can clear someone else's lock
				tasks.POST("/:id/release", middleware.RequireRole(models.RoleAdmin), controllers.ForceReleaseLock)
			}

			// Translations
			translations := protected.Group("/translations")
			{
				translations.POST("", controllers.SubmitTranslation)
				translations.GET("", controllers.GetTranslations)
				translations.GET("/mine", controllers.GetMyTranslations)
				translations.GET("/:id", controllers.GetTranslation)
				translations.POST("/:id/vote", controllers.VoteTranslation)
				translations.POST("/:id/comments", controllers.CommentTranslation)
				translations.POST("/:id/suggestions", controllers.CreateSuggestion)
				translations.GET("/:id/reviews", controllers.GetReviewTrail)

				// Reviewers and admins run the state machine
				translations.POST("/:id/review", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.ReviewTranslation)
				translations.POST("/:id/ai-score", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.ScoreTranslation)

				// Only admin can moderate away a translation
				translations.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteTranslation)
			}

			// Review queues
			reviews := protected.Group("/reviews")
			reviews.Use(middleware.RequireRole(models.RoleReviewer, models.RoleAdmin))
			{
				reviews.GET("/pending", controllers.GetPendingReviews)
			}

			// Spelling suggestions
			suggestions := protected.Group("/suggestions")
			{
				suggestions.GET("/open", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.GetOpenSuggestions)
				suggestions.POST("/:id/resolve", middleware.RequireRole(models.RoleReviewer, models.RoleAdmin), controllers.ResolveSuggestion)
			}

			// AI assist
			protected.GET("/ai/suggest", controllers.GetAISuggestion)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
				dashboard.GET("/leaderboard", controllers.GetLeaderboard)
			}

			// Sentence administration
			sentences := protected.Group("/sentences")
			{
				sentences.GET("/:id", controllers.GetSentence)
				sentences.GET("", middleware.RequireRole(models.RoleAdmin), controllers.GetSentences)
				sentences.GET("/stats", controllers.GetCorpusStats)
				sentences.POST("/import", middleware.RequireRole(models.RoleAdmin), controllers.ImportSentences)
			}

			// Announcement administration
			announcements := protected.Group("/announcements")
			announcements.Use(middleware.RequireRole(models.RoleAdmin))
			{
				announcements.POST("", controllers.CreateAnnouncement)
				announcements.DELETE("/:id", controllers.DeleteAnnouncement)
			}
		}
	}
}
