package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"tokples-api/models"
	"tokples-api/utils"

	"gorm.io/gorm"
)

var (
	// ErrInvalidAction is returned for an unknown review action.
	ErrInvalidAction = errors.New("invalid review action")
	// ErrFeedbackRequired is returned when reject or needs_attention is
	// attempted without a comment. Nothing is written in that case.
	ErrFeedbackRequired = errors.New("feedback comment is required")
	// ErrNewTextRequired is returned when a minor-fix carries no replacement text.
	ErrNewTextRequired = errors.New("corrected text is required")
)

// ReviewService drives the translation review state machine. Every action
// writes, inside one transaction: the immutable TranslationReview record
// (source of truth), the denormalized history entry, the status/text update
// on the translation, and an audit-log row.
//
// All four statuses are re-enterable: a later reviewer action may override
// an earlier approval or rejection.
type ReviewService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReviewService creates a ReviewService backed by db.
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db, now: time.Now}
}

// ReviewInput is one reviewer action. IPAddress and UserAgent feed the
// audit log; the caller has already verified the reviewer's permission.
type ReviewInput struct {
	Action    string
	Comment   string
	NewText   string // minor-fix only
	IPAddress string
	UserAgent string
}

// Apply records a reviewer action against a translation and transitions its
// status. Validation failures happen before any write.
func (s *ReviewService) Apply(translationID string, reviewerID int, input ReviewInput) (*models.Translation, error) {
	status, ok := statusForAction(input.Action)
	if !ok {
		return nil, ErrInvalidAction
	}
	if feedbackRequired(input.Action) && utils.IsBlank(input.Comment) {
		return nil, ErrFeedbackRequired
	}
	if input.Action == models.ReviewActionEdited && utils.IsBlank(input.NewText) {
		return nil, ErrNewTextRequired
	}

	now := s.now()
	var result models.Translation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var translation models.Translation
		if err := tx.Where("translation_id = ? AND delete_at IS NULL", translationID).
			First(&translation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTranslationNotFound
			}
			return fmt.Errorf("failed to load translation: %w", err)
		}

		review := models.TranslationReview{
			TranslationID: translationID,
			ReviewerID:    reviewerID,
			Action:        input.Action,
			CreatedAt:     now,
		}
		comment := utils.SanitizeInput(input.Comment)
		if comment != "" {
			review.Comment = &comment
		}

		updates := map[string]interface{}{
			"status":    status,
			"update_at": now,
		}
		if input.Action == models.ReviewActionApproved {
			updates["review_count"] = gorm.Expr("review_count + 1")
		}

		oldText := translation.Text
		if input.Action == models.ReviewActionEdited {
			newText := utils.SanitizeInput(input.NewText)
			review.PreviousText = &oldText
			review.NewText = &newText
			updates["text"] = newText
			translation.Text = newText
		}

		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to save review record: %w", err)
		}

		if err := tx.Model(&models.Translation{}).
			Where("translation_id = ?", translationID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update translation: %w", err)
		}

		history := models.TranslationHistory{
			TranslationID: translationID,
			Action:        input.Action,
			ActorID:       reviewerID,
			CreatedAt:     now,
		}
		if comment != "" {
			history.Note = &comment
		}
		if input.Action == models.ReviewActionEdited {
			history.OldText = review.PreviousText
			history.NewText = review.NewText
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to log history: %w", err)
		}

		serialized, _ := json.Marshal(map[string]interface{}{
			"action":  input.Action,
			"comment": comment,
			"status":  status,
		})
		audit := models.AuditLog{
			UserID:     reviewerID,
			Action:     "review",
			EntityType: "translation",
			EntityID:   &translationID,
			NewValues:  strPtr(string(serialized)),
			IPAddress:  input.IPAddress,
			CreateAt:   now,
		}
		if input.UserAgent != "" {
			ua := input.UserAgent
			audit.UserAgent = &ua
		}
		if err := tx.Create(&audit).Error; err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		translation.Status = status
		translation.UpdateAt = &now
		result = translation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PendingReviews lists translations awaiting review for a language, oldest first.
func (s *ReviewService) PendingReviews(languageCode string, limit int) ([]models.Translation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var translations []models.Translation
	query := s.db.Preload("Sentence").Preload("Translator").
		Where("status = ? AND delete_at IS NULL", models.TranslationStatusPending)
	if languageCode != "" {
		query = query.Where("language_code = ?", languageCode)
	}
	if err := query.Order("create_at ASC").Limit(limit).Find(&translations).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending translations: %w", err)
	}
	return translations, nil
}

// Trail returns the full review audit trail for a translation, oldest first.
func (s *ReviewService) Trail(translationID string) ([]models.TranslationReview, error) {
	var reviews []models.TranslationReview
	if err := s.db.Preload("Reviewer").
		Where("translation_id = ?", translationID).
		Order("created_at ASC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to load review trail: %w", err)
	}
	return reviews, nil
}

// statusForAction maps a review action to the resulting translation status.
func statusForAction(action string) (string, bool) {
	switch action {
	case models.ReviewActionApproved, models.ReviewActionEdited:
		return models.TranslationStatusApproved, true
	case models.ReviewActionRejected:
		return models.TranslationStatusRejected, true
	case models.ReviewActionNeedsAttention:
		return models.TranslationStatusNeedsAttention, true
	default:
		return "", false
	}
}

// feedbackRequired reports whether the action demands a non-blank comment.
func feedbackRequired(action string) bool {
	return action == models.ReviewActionRejected || action == models.ReviewActionNeedsAttention
}

func strPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
