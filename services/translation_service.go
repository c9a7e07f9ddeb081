package services

import (
	"errors"
	"fmt"
	"time"
	"tokples-api/models"
	"tokples-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrTranslationNotFound is returned when the referenced translation does not exist.
	ErrTranslationNotFound = errors.New("translation not found")
	// ErrEmptyText is returned when a submission or comment is blank.
	ErrEmptyText = errors.New("text must not be empty")
	// ErrInvalidVote is returned for a vote type other than up/down.
	ErrInvalidVote = errors.New("vote type must be 'up' or 'down'")
)

// TranslationService handles translation submission, voting and commenting.
// All multi-row effects run inside a single transaction so the redundancy
// count and the vote aggregate can never tear.
type TranslationService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTranslationService creates a TranslationService backed by db.
func NewTranslationService(db *gorm.DB) *TranslationService {
	return &TranslationService{db: db, now: time.Now}
}

// SubmitInput carries one translator's submission for a sentence.
type SubmitInput struct {
	SentenceID   int
	LanguageCode string
	Text         string
}

// Submit writes or overwrites the caller's translation of a sentence.
//
// On first submission it also, in the same transaction: increments the
// sentence's translation_count, flips the sentence to needs_review and
// zeroes its priority once the redundancy target is met, clears the
// sentence lock, and records the sentence in the user's translated set.
// Re-submitting an existing pending translation only updates its text.
func (s *TranslationService) Submit(userID int, input SubmitInput) (*models.Translation, error) {
	if utils.IsBlank(input.Text) {
		return nil, ErrEmptyText
	}

	now := s.now()
	var result *models.Translation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sentence models.Sentence
		if err := tx.Where("sentence_id = ?", input.SentenceID).First(&sentence).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSentenceNotFound
			}
			return fmt.Errorf("failed to load sentence: %w", err)
		}

		var existing models.Translation
		err := tx.Where("sentence_id = ? AND language_code = ? AND translator_id = ? AND delete_at IS NULL",
			input.SentenceID, input.LanguageCode, userID).
			First(&existing).Error

		if err == nil {
			// Re-submission: text and timestamp only, no redundancy accounting.
			oldText := existing.Text
			if err := tx.Model(&models.Translation{}).
				Where("translation_id = ?", existing.TranslationID).
				Updates(map[string]interface{}{
					"text":      input.Text,
					"update_at": now,
				}).Error; err != nil {
				return fmt.Errorf("failed to update translation: %w", err)
			}

			history := models.TranslationHistory{
				TranslationID: existing.TranslationID,
				Action:        models.HistoryActionResubmitted,
				ActorID:       userID,
				OldText:       &oldText,
				NewText:       &input.Text,
				CreatedAt:     now,
			}
			if err := tx.Create(&history).Error; err != nil {
				return fmt.Errorf("failed to record history: %w", err)
			}

			existing.Text = input.Text
			existing.UpdateAt = &now
			result = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing translation: %w", err)
		}

		translation := models.Translation{
			TranslationID: uuid.NewString(),
			SentenceID:    input.SentenceID,
			LanguageCode:  input.LanguageCode,
			TranslatorID:  userID,
			Text:          input.Text,
			Status:        models.TranslationStatusPending,
			CreateAt:      now,
		}
		if err := tx.Create(&translation).Error; err != nil {
			return fmt.Errorf("failed to create translation: %w", err)
		}

		history := models.TranslationHistory{
			TranslationID: translation.TranslationID,
			Action:        models.HistoryActionSubmitted,
			ActorID:       userID,
			NewText:       &input.Text,
			CreatedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}

		// Count first, then flip: both statements are self-contained so two
		// concurrent submitters cannot lose an increment.
		if err := tx.Model(&models.Sentence{}).
			Where("sentence_id = ?", input.SentenceID).
			Updates(map[string]interface{}{
				"translation_count": gorm.Expr("translation_count + 1"),
				"locked_by":         nil,
				"locked_until":      nil,
				"update_at":         now,
			}).Error; err != nil {
			return fmt.Errorf("failed to update sentence count: %w", err)
		}

		if err := tx.Model(&models.Sentence{}).
			Where("sentence_id = ? AND status = ? AND translation_count >= target_redundancy",
				input.SentenceID, models.SentenceStatusOpen).
			Updates(map[string]interface{}{
				"status":         models.SentenceStatusNeedsReview,
				"priority_score": 0,
			}).Error; err != nil {
			return fmt.Errorf("failed to update sentence status: %w", err)
		}

		record := models.UserTranslatedSentence{
			UserID:     userID,
			SentenceID: input.SentenceID,
			CreateAt:   now,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record translated sentence: %w", err)
		}

		result = &translation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Vote casts, switches, or retracts the caller's vote on a translation.
// Repeating the same vote type toggles it off. The aggregate on the
// translation row is recomputed from the vote rows inside the same
// transaction, never patched with a delta.
func (s *TranslationService) Vote(translationID string, userID int, voteType string) (*models.Translation, error) {
	if voteType != models.VoteUp && voteType != models.VoteDown {
		return nil, ErrInvalidVote
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

		var current string
		var vote models.TranslationVote
		err := tx.Where("translation_id = ? AND user_id = ?", translationID, userID).
			First(&vote).Error
		switch {
		case err == nil:
			current = vote.VoteType
		case errors.Is(err, gorm.ErrRecordNotFound):
			current = ""
		default:
			return fmt.Errorf("failed to load vote: %w", err)
		}

		switch nextVoteState(current, voteType) {
		case "":
			if err := tx.Delete(&models.TranslationVote{}, "translation_id = ? AND user_id = ?",
				translationID, userID).Error; err != nil {
				return fmt.Errorf("failed to retract vote: %w", err)
			}
		case current:
			// unchanged, nothing to write
		default:
			if current == "" {
				newVote := models.TranslationVote{
					TranslationID: translationID,
					UserID:        userID,
					VoteType:      voteType,
					CreateAt:      now,
				}
				if err := tx.Create(&newVote).Error; err != nil {
					return fmt.Errorf("failed to create vote: %w", err)
				}
			} else {
				if err := tx.Model(&models.TranslationVote{}).
					Where("translation_id = ? AND user_id = ?", translationID, userID).
					Update("vote_type", voteType).Error; err != nil {
					return fmt.Errorf("failed to switch vote: %w", err)
				}
			}
		}

		var total int64
		if err := tx.Model(&models.TranslationVote{}).
			Where("translation_id = ?", translationID).
			Select("COALESCE(SUM(CASE WHEN vote_type = 'up' THEN 1 ELSE -1 END), 0)").
			Scan(&total).Error; err != nil {
			return fmt.Errorf("failed to sum votes: %w", err)
		}

		if err := tx.Model(&models.Translation{}).
			Where("translation_id = ?", translationID).
			Update("votes", total).Error; err != nil {
			return fmt.Errorf("failed to update vote total: %w", err)
		}

		translation.Votes = int(total)
		result = translation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Comment appends a community comment to a translation.
func (s *TranslationService) Comment(translationID string, userID int, text string) (*models.TranslationComment, error) {
	if utils.IsBlank(text) {
		return nil, ErrEmptyText
	}

	var count int64
	if err := s.db.Model(&models.Translation{}).
		Where("translation_id = ? AND delete_at IS NULL", translationID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check translation: %w", err)
	}
	if count == 0 {
		return nil, ErrTranslationNotFound
	}

	comment := models.TranslationComment{
		TranslationID: translationID,
		UserID:        userID,
		Text:          utils.SanitizeInput(text),
		CreateAt:      s.now(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

// ModerateDelete soft-deletes a translation. Admin use only; the sentence's
// translation_count is deliberately left untouched so redundancy never
// reopens a sentence automatically.
func (s *TranslationService) ModerateDelete(translationID string, adminID int) error {
	now := s.now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Translation{}).
			Where("translation_id = ? AND delete_at IS NULL", translationID).
			Update("delete_at", now)
		if res.Error != nil {
			return fmt.Errorf("failed to delete translation: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrTranslationNotFound
		}

		history := models.TranslationHistory{
			TranslationID: translationID,
			Action:        models.HistoryActionModerated,
			ActorID:       adminID,
			CreatedAt:     now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}
		return nil
	})
}

// nextVoteState returns the user's vote after requesting voteType while
// currently at current ("" = no vote). Repeating a vote retracts it;
// the opposite vote switches.
func nextVoteState(current, voteType string) string {
	if current == voteType {
		return ""
	}
	return voteType
}
