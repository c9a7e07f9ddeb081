package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
	"tokples-api/config"
	"tokples-api/models"
	"tokples-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const passwordResetTokenTTL = time.Hour

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset mails a single-use reset link. The response is the
// same whether or not the email exists, so addresses cannot be probed.
func RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"success": true,
		"message": "If the address is registered, a reset link has been sent",
	}

	var user models.User
	if err := config.DB.Where("email = ? AND delete_at IS NULL", req.Email).
		First(&user).Error; err != nil {
		c.JSON(http.StatusOK, response)
		return
	}

	token, err := utils.GenerateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	now := time.Now()
	record := models.PasswordResetToken{
		UserID:    user.UserID,
		Token:     token,
		ExpiresAt: now.Add(passwordResetTokenTTL),
		CreateAt:  now,
	}
	if err := config.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reset token"})
		return
	}

	base := os.Getenv("FRONTEND_URL")
	link := fmt.Sprintf("%s/reset-password?token=%s", base, url.QueryEscape(token))
	html := fmt.Sprintf("<p>Hi %s,</p><p>Use this link to reset your password. It expires in one hour.</p><p><a href=%q>Reset password</a></p>",
		user.UserFname, link)
	if err := config.SendMail([]string{user.Email}, "Password reset", html); err != nil {
		log.Printf("Failed to send reset mail to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, response)
}

type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ConfirmPasswordReset sets a new password given a valid, unused token.
func ConfirmPasswordReset(c *gin.Context) {
	var req PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	now := time.Now()
	var record models.PasswordResetToken
	if err := config.DB.Where("token = ? AND used_at IS NULL AND expires_at > ?", req.Token, now).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check reset token"})
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.User{}).
		Where("user_id = ?", record.UserID).
		Updates(map[string]interface{}{
			"password":  hashed,
			"update_at": now,
		}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	if err := tx.Model(&models.PasswordResetToken{}).
		Where("token_id = ?", record.TokenID).
		Update("used_at", now).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to consume reset token"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize reset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated, you can now log in",
	})
}
