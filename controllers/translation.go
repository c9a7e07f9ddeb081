package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"tokples-api/config"
	"tokples-api/models"
	"tokples-api/services"

	"github.com/gin-gonic/gin"
)

type SubmitTranslationRequest struct {
	SentenceID   int    `json:"sentence_id" binding:"required"`
	LanguageCode string `json:"language_code" binding:"required"`
	Text         string `json:"text" binding:"required"`
}

// SubmitTranslation saves the caller's translation of a sentence. First
// submissions count toward the sentence's redundancy target; later
// submissions with the same sentence and language just update the text.
func SubmitTranslation(c *gin.Context) {
	userID := c.GetInt("userID")

	var req SubmitTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewTranslationService(config.DB)
	translation, err := svc.Submit(userID, services.SubmitInput{
		SentenceID:   req.SentenceID,
		LanguageCode: req.LanguageCode,
		Text:         req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyText):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Translation text must not be empty"})
		case errors.Is(err, services.ErrSentenceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Sentence not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save translation"})
		}
		return
	}

	// Advisory quality score; never blocks the response.
	services.NewAIService(config.DB, nil).ScoreTranslationAsync(translation.TranslationID)

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"translation": translation,
	})
}

// GetTranslations lists translations for a sentence and language.
func GetTranslations(c *gin.Context) {
	sentenceID, err := strconv.Atoi(c.Query("sentence_id"))
	if err != nil || sentenceID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sentence_id"})
		return
	}
	languageCode := c.Query("language_code")

	query := config.DB.Preload("Translator").Preload("Comments.Author").
		Where("sentence_id = ? AND delete_at IS NULL", sentenceID)
	if languageCode != "" {
		query = query.Where("language_code = ?", languageCode)
	}

	var translations []models.Translation
	if err := query.Order("create_at ASC").Find(&translations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch translations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"translations": translations,
		"total":        len(translations),
	})
}

// GetTranslation returns a single translation with its comments and history.
func GetTranslation(c *gin.Context) {
	id := c.Param("id")

	var translation models.Translation
	if err := config.DB.Preload("Sentence").Preload("Translator").
		Preload("Comments.Author").Preload("History").
		Where("translation_id = ? AND delete_at IS NULL", id).
		First(&translation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"translation": translation,
	})
}

// GetMyTranslations lists the caller's own submissions, newest first.
func GetMyTranslations(c *gin.Context) {
	userID := c.GetInt("userID")

	var translations []models.Translation
	if err := config.DB.Preload("Sentence").
		Where("translator_id = ? AND delete_at IS NULL", userID).
		Order("create_at DESC").
		Limit(200).
		Find(&translations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch translations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"translations": translations,
		"total":        len(translations),
	})
}

type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required"`
}

// VoteTranslation casts, switches, or retracts the caller's vote.
func VoteTranslation(c *gin.Context) {
	userID := c.GetInt("userID")
	id := c.Param("id")

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewTranslationService(config.DB)
	translation, err := svc.Vote(id, userID, req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidVote):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Vote type must be 'up' or 'down'"})
		case errors.Is(err, services.ErrTranslationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"votes":   translation.Votes,
	})
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentTranslation appends a comment to a translation.
func CommentTranslation(c *gin.Context) {
	userID := c.GetInt("userID")
	id := c.Param("id")

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewTranslationService(config.DB)
	comment, err := svc.Comment(id, userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyText):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment must not be empty"})
		case errors.Is(err, services.ErrTranslationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"comment": comment,
	})
}

// DeleteTranslation soft-deletes a translation. Admin moderation only.
func DeleteTranslation(c *gin.Context) {
	adminID := c.GetInt("userID")
	id := c.Param("id")

	svc := services.NewTranslationService(config.DB)
	if err := svc.ModerateDelete(id, adminID); err != nil {
		if errors.Is(err, services.ErrTranslationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete translation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Translation removed",
	})
}
