package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"tokples-api/config"
	"tokples-api/services"

	"github.com/gin-gonic/gin"
)

// GetPendingReviews lists translations waiting for reviewer action.
func GetPendingReviews(c *gin.Context) {
	languageCode := c.Query("language_code")
	limit, _ := strconv.Atoi(c.Query("limit"))

	svc := services.NewReviewService(config.DB)
	translations, err := svc.PendingReviews(languageCode, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending translations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"translations": translations,
		"total":        len(translations),
	})
}

type ReviewRequest struct {
	Action  string `json:"action" binding:"required"`
	Comment string `json:"comment"`
	NewText string `json:"new_text"`
}

// ReviewTranslation applies a reviewer action (approve, reject,
// needs_attention, or edited) to a translation. Role gating happens in the
// route table; reject and flag require a comment.
func ReviewTranslation(c *gin.Context) {
	reviewerID := c.GetInt("userID")
	id := c.Param("id")

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	svc := services.NewReviewService(config.DB)
	translation, err := svc.Apply(id, reviewerID, services.ReviewInput{
		Action:    action,
		Comment:   req.Comment,
		NewText:   req.NewText,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Action must be approved, rejected, edited, or needs_attention"})
		case errors.Is(err, services.ErrFeedbackRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "A feedback comment is required for this action"})
		case errors.Is(err, services.ErrNewTextRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Corrected text is required for a minor fix"})
		case errors.Is(err, services.ErrTranslationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply review"})
		}
		return
	}

	services.NewNotificationService(config.DB).
		NotifyReviewOutcome(translation, action, strings.TrimSpace(req.Comment))

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"translation": translation,
	})
}

// GetReviewTrail returns the full audit trail for a translation.
func GetReviewTrail(c *gin.Context) {
	id := c.Param("id")

	svc := services.NewReviewService(config.DB)
	reviews, err := svc.Trail(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review trail"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}
