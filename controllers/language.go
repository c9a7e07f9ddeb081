package controllers

import (
	"net/http"
	"tokples-api/config"
	"tokples-api/models"

	"github.com/gin-gonic/gin"
)

// GetLanguages lists active target languages.
func GetLanguages(c *gin.Context) {
	var languages []models.Language
	if err := config.DB.Where("is_active = ?", true).
		Order("name ASC").
		Find(&languages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch languages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"languages": languages,
	})
}
