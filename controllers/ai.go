package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"tokples-api/config"
	"tokples-api/services"

	"github.com/gin-gonic/gin"
)

// GetAISuggestion returns a machine draft for a sentence. Advisory only;
// failures surface as a soft error the client can ignore.
func GetAISuggestion(c *gin.Context) {
	sentenceID, err := strconv.Atoi(c.Query("sentence_id"))
	if err != nil || sentenceID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sentence_id"})
		return
	}
	languageCode := c.Query("language_code")
	if languageCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language_code is required"})
		return
	}

	svc := services.NewAIService(config.DB, nil)
	suggestion, err := svc.Suggest(c.Request.Context(), sentenceID, languageCode)
	if err != nil {
		if errors.Is(err, services.ErrSentenceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sentence not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    false,
			"suggestion": "",
			"message":    "AI assist unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"suggestion": suggestion,
	})
}

// ScoreTranslation triggers a synchronous quality-score refresh. Reviewer only.
func ScoreTranslation(c *gin.Context) {
	id := c.Param("id")

	svc := services.NewAIService(config.DB, nil)
	if err := svc.ScoreTranslation(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrTranslationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "AI scoring unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quality score updated",
	})
}
