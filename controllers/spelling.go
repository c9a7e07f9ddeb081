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

type SuggestionRequest struct {
	SuggestedText string `json:"suggested_text" binding:"required"`
	Reason        string `json:"reason"`
}

// CreateSuggestion files a spelling fix against a translation. Open to all
// community members.
func CreateSuggestion(c *gin.Context) {
	userID := c.GetInt("userID")
	translationID := c.Param("id")

	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewSuggestionService(config.DB)
	suggestion, err := svc.Create(translationID, userID, req.SuggestedText, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyText):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Suggested text must not be empty"})
		case errors.Is(err, services.ErrTranslationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save suggestion"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"suggestion": suggestion,
	})
}

// GetOpenSuggestions lists unresolved suggestions for reviewers.
func GetOpenSuggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	svc := services.NewSuggestionService(config.DB)
	suggestions, err := svc.Open(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

type ResolveSuggestionRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// ResolveSuggestion accepts or rejects an open suggestion. Reviewer only.
func ResolveSuggestion(c *gin.Context) {
	resolverID := c.GetInt("userID")

	suggestionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || suggestionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid suggestion ID"})
		return
	}

	var req ResolveSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewSuggestionService(config.DB)
	suggestion, err := svc.Resolve(suggestionID, resolverID,
		strings.ToLower(strings.TrimSpace(req.Status)), req.Note)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidResolution):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be 'accepted' or 'rejected'"})
		case errors.Is(err, services.ErrSuggestionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Suggestion not found"})
		case errors.Is(err, services.ErrSuggestionResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "Suggestion is already resolved"})
		case errors.Is(err, services.ErrTranslationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve suggestion"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"suggestion": suggestion,
	})
}
