package services

import (
	"fmt"
	"log"
	"time"
	"tokples-api/config"
	"tokples-api/models"

	"gorm.io/gorm"
)

// NotificationService writes per-user notification rows and sends
// best-effort outcome mail. Mail failures are logged, never surfaced.
type NotificationService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewNotificationService creates a NotificationService backed by db.
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db, now: time.Now}
}

// NotifyReviewOutcome tells a translator what a reviewer decided.
func (s *NotificationService) NotifyReviewOutcome(translation *models.Translation, action, comment string) {
	title, nType := reviewOutcomeTitle(action)

	notification := models.Notification{
		UserID:               translation.TranslatorID,
		Title:                title,
		Message:              reviewOutcomeMessage(action, comment),
		Type:                 nType,
		RelatedTranslationID: &translation.TranslationID,
		CreateAt:             s.now(),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for user %d: %v", translation.TranslatorID, err)
		return
	}

	var user models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", translation.TranslatorID).
		First(&user).Error; err != nil {
		return
	}

	html := fmt.Sprintf("<p>Hi %s,</p><p>%s</p><p>Translation: %q</p>",
		user.UserFname, notification.Message, translation.Text)
	if err := config.SendMail([]string{user.Email}, title, html); err != nil {
		log.Printf("Failed to send outcome mail to %s: %v", user.Email, err)
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(userID int, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("create_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one notification read; userID guards against marking
// someone else's.
func (s *NotificationService) MarkRead(notificationID uint, userID int) error {
	now := s.now()
	res := s.db.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read":   true,
			"update_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func reviewOutcomeTitle(action string) (string, string) {
	switch action {
	case models.ReviewActionApproved:
		return "Translation approved", "success"
	case models.ReviewActionEdited:
		return "Translation approved with a fix", "success"
	case models.ReviewActionRejected:
		return "Translation rejected", "error"
	case models.ReviewActionNeedsAttention:
		return "Translation needs attention", "warning"
	default:
		return "Translation reviewed", "info"
	}
}

func reviewOutcomeMessage(action, comment string) string {
	base := ""
	switch action {
	case models.ReviewActionApproved:
		base = "A reviewer approved your translation. Tenkyu tru!"
	case models.ReviewActionEdited:
		base = "A reviewer approved your translation after a small correction."
	case models.ReviewActionRejected:
		base = "A reviewer rejected your translation."
	case models.ReviewActionNeedsAttention:
		base = "A reviewer flagged your translation for another look."
	}
	if comment != "" {
		return fmt.Sprintf("%s Feedback: %s", base, comment)
	}
	return base
}
