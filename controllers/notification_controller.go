package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"tokples-api/config"
	"tokples-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(c *gin.Context) {
	userID := c.GetInt("userID")
	unreadOnly := c.Query("unread") == "true"
	limit, _ := strconv.Atoi(c.Query("limit"))

	svc := services.NewNotificationService(config.DB)
	notifications, err := svc.List(userID, unreadOnly, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
		"total":         len(notifications),
	})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	userID := c.GetInt("userID")

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || notificationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	svc := services.NewNotificationService(config.DB)
	if err := svc.MarkRead(uint(notificationID), userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
