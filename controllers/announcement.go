package controllers

import (
	"net/http"
	"strconv"
	"time"
	"tokples-api/config"
	"tokples-api/models"
	"tokples-api/utils"

	"github.com/gin-gonic/gin"
)

// GetAnnouncements lists active, unexpired announcements for all users.
func GetAnnouncements(c *gin.Context) {
	now := time.Now()

	var announcements []models.Announcement
	if err := config.DB.Preload("Creator").
		Where("status = ? AND delete_at IS NULL", "active").
		Where("published_at IS NULL OR published_at <= ?", now).
		Where("expired_at IS NULL OR expired_at > ?", now).
		Order("priority DESC, create_at DESC").
		Find(&announcements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"announcements": announcements,
		"total":         len(announcements),
	})
}

type AnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Priority string `json:"priority"`
}

// CreateAnnouncement publishes a new announcement. Admin only.
func CreateAnnouncement(c *gin.Context) {
	userID := c.GetInt("userID")

	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := req.Priority
	if priority != "high" && priority != "urgent" {
		priority = "normal"
	}

	now := time.Now()
	announcement := models.Announcement{
		Title:       utils.SanitizeInput(req.Title),
		Body:        utils.SanitizeInput(req.Body),
		Priority:    priority,
		Status:      "active",
		PublishedAt: &now,
		CreatedBy:   userID,
		CreateAt:    now,
		UpdateAt:    now,
	}

	if err := config.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"announcement": announcement,
	})
}

// DeleteAnnouncement soft-deletes an announcement. Admin only.
func DeleteAnnouncement(c *gin.Context) {
	announcementID, err := strconv.Atoi(c.Param("id"))
	if err != nil || announcementID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement ID"})
		return
	}

	now := time.Now()
	res := config.DB.Model(&models.Announcement{}).
		Where("announcement_id = ? AND delete_at IS NULL", announcementID).
		Update("delete_at", now)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Announcement removed",
	})
}
