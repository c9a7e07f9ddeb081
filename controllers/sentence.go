package controllers

import (
	"net/http"
	"strconv"
	"tokples-api/config"
	"tokples-api/models"
	"tokples-api/services"

	"github.com/gin-gonic/gin"
)

// GetSentences lists sentences with optional status filter. Admin only.
func GetSentences(c *gin.Context) {
	query := config.DB.Model(&models.Sentence{})

	if status := c.Query("status"); status != "" {
		if status != models.SentenceStatusOpen &&
			status != models.SentenceStatusNeedsReview &&
			status != models.SentenceStatusApproved {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if batch := c.Query("batch"); batch != "" {
		query = query.Where("import_batch = ?", batch)
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count sentences"})
		return
	}

	var sentences []models.Sentence
	if err := query.Order("sentence_id ASC").Limit(limit).Offset(offset).
		Find(&sentences).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sentences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sentences": sentences,
		"total":     total,
	})
}

// GetSentence returns a single sentence with its translations.
func GetSentence(c *gin.Context) {
	sentenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil || sentenceID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sentence ID"})
		return
	}

	var sentence models.Sentence
	if err := config.DB.Where("sentence_id = ?", sentenceID).First(&sentence).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sentence not found"})
		return
	}

	var translations []models.Translation
	if err := config.DB.Preload("Translator").
		Where("sentence_id = ? AND delete_at IS NULL", sentenceID).
		Order("create_at ASC").
		Find(&translations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch translations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"sentence":     sentence,
		"translations": translations,
	})
}

// ImportSentences bulk-loads sentences from an uploaded CSV file. Admin only.
func ImportSentences(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import file is required"})
		return
	}
	defer file.Close()

	if header.Size > 20*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 20MB limit"})
		return
	}

	batch := c.PostForm("batch")
	if batch == "" {
		batch = header.Filename
	}

	svc := services.NewSentenceImportService(config.DB)
	summary, err := svc.ImportCSV(file, batch)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": summary,
	})
}

// GetCorpusStats reports overall progress: sentences per status and
// translations per language.
func GetCorpusStats(c *gin.Context) {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statuses []statusCount
	if err := config.DB.Model(&models.Sentence{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statuses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sentence stats"})
		return
	}

	type languageCount struct {
		LanguageCode string `json:"language_code"`
		Count        int64  `json:"count"`
	}
	var languages []languageCount
	if err := config.DB.Model(&models.Translation{}).
		Select("language_code, COUNT(*) AS count").
		Where("delete_at IS NULL").
		Group("language_code").
		Scan(&languages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch language stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sentences": statuses,
		"languages": languages,
	})
}
