package controllers

import (
	"net/http"
	"strconv"
	"tokples-api/config"
	"tokples-api/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the caller's contribution summary.
func GetDashboardStats(c *gin.Context) {
	userID := c.GetInt("userID")

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byStatus []statusCount
	if err := config.DB.Model(&models.Translation{}).
		Select("status, COUNT(*) AS count").
		Where("translator_id = ? AND delete_at IS NULL", userID).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	var total int64
	for _, row := range byStatus {
		total += row.Count
	}

	var votes int64
	if err := config.DB.Model(&models.Translation{}).
		Select("COALESCE(SUM(votes), 0)").
		Where("translator_id = ? AND delete_at IS NULL", userID).
		Scan(&votes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"total":     total,
		"by_status": byStatus,
		"votes":     votes,
	})
}

// GetLeaderboard ranks translators by approved translation count.
func GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	type entry struct {
		UserID    int    `json:"user_id"`
		UserFname string `json:"user_fname"`
		UserLname string `json:"user_lname"`
		Approved  int64  `json:"approved"`
		Total     int64  `json:"total"`
	}

	var leaderboard []entry
	if err := config.DB.Model(&models.Translation{}).
		Select(`users.user_id, users.user_fname, users.user_lname,
			SUM(CASE WHEN translations.status = 'approved' THEN 1 ELSE 0 END) AS approved,
			COUNT(*) AS total`).
		Joins("JOIN users ON users.user_id = translations.translator_id").
		Where("translations.delete_at IS NULL AND users.delete_at IS NULL").
		Group("users.user_id, users.user_fname, users.user_lname").
		Order("approved DESC, total DESC").
		Limit(limit).
		Scan(&leaderboard).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"leaderboard": leaderboard,
	})
}
