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

// GetNextTask hands the caller the next sentence to translate, locked to
// them for the lock duration. `exclude` is a comma-separated list of
// sentence IDs the client already skipped this session.
func GetNextTask(c *gin.Context) {
	userID := c.GetInt("userID")

	var excluded []int
	if raw := strings.TrimSpace(c.Query("exclude")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exclude list"})
				return
			}
			excluded = append(excluded, id)
		}
	}

	locks := services.NewLockService(config.DB)
	queue := services.NewQueueService(config.DB, locks, nil)

	sentence, err := queue.NextTask(userID, excluded)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch next task"})
		return
	}
	if sentence == nil {
		// Contention or an empty queue; the client shows a retry prompt.
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"sentence": nil,
			"message":  "No task available right now, please retry",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"sentence": sentence,
	})
}

// SkipTask releases the caller's lock on a sentence they chose not to translate.
func SkipTask(c *gin.Context) {
	userID := c.GetInt("userID")

	sentenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil || sentenceID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sentence ID"})
		return
	}

	locks := services.NewLockService(config.DB)
	queue := services.NewQueueService(config.DB, locks, nil)
	if err := queue.Skip(sentenceID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release sentence"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sentence released",
	})
}

// ForceReleaseLock clears a sentence lock regardless of owner. Admin only.
func ForceReleaseLock(c *gin.Context) {
	sentenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil || sentenceID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sentence ID"})
		return
	}

	locks := services.NewLockService(config.DB)
	if err := locks.ForceRelease(sentenceID); err != nil {
		if errors.Is(err, services.ErrSentenceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sentence not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release lock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lock cleared",
	})
}
