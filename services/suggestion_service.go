package services

import (
	"errors"
	"fmt"
	"time"
	"tokples-api/models"
	"tokples-api/utils"

	"gorm.io/gorm"
)

var (
	// ErrSuggestionNotFound is returned when the referenced suggestion does not exist.
	ErrSuggestionNotFound = errors.New("spelling suggestion not found")
	// ErrSuggestionResolved is returned when resolving an already-resolved suggestion.
	ErrSuggestionResolved = errors.New("spelling suggestion already resolved")
	// ErrInvalidResolution is returned for a resolution other than accepted/rejected.
	ErrInvalidResolution = errors.New("resolution must be 'accepted' or 'rejected'")
)

// SuggestionService runs the spelling-correction side channel: any
// community member proposes a fix, a reviewer resolves it. Acceptance
// mutates the translation text and its history inside the same transaction
// that marks the suggestion resolved.
type SuggestionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSuggestionService creates a SuggestionService backed by db.
func NewSuggestionService(db *gorm.DB) *SuggestionService {
	return &SuggestionService{db: db, now: time.Now}
}

// Create files a new open suggestion against a translation. The original
// text is captured at proposal time so reviewers can see what the proposer
// was looking at.
func (s *SuggestionService) Create(translationID string, userID int, suggestedText, reason string) (*models.SpellingSuggestion, error) {
	if utils.IsBlank(suggestedText) {
		return nil, ErrEmptyText
	}

	var translation models.Translation
	if err := s.db.Where("translation_id = ? AND delete_at IS NULL", translationID).
		First(&translation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranslationNotFound
		}
		return nil, fmt.Errorf("failed to load translation: %w", err)
	}

	suggestion := models.SpellingSuggestion{
		TranslationID: translationID,
		OriginalText:  translation.Text,
		SuggestedText: utils.SanitizeInput(suggestedText),
		Status:        models.SuggestionStatusOpen,
		CreatedBy:     userID,
		CreatedAt:     s.now(),
	}
	trimmed := utils.SanitizeInput(reason)
	if trimmed != "" {
		suggestion.Reason = &trimmed
	}

	if err := s.db.Create(&suggestion).Error; err != nil {
		return nil, fmt.Errorf("failed to create suggestion: %w", err)
	}
	return &suggestion, nil
}

// Open lists unresolved suggestions, oldest first.
func (s *SuggestionService) Open(limit int) ([]models.SpellingSuggestion, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var suggestions []models.SpellingSuggestion
	if err := s.db.Preload("Creator").
		Where("status = ?", models.SuggestionStatusOpen).
		Order("created_at ASC").
		Limit(limit).
		Find(&suggestions).Error; err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return suggestions, nil
}

// Resolve accepts or rejects an open suggestion. On acceptance the
// translation's text is overwritten with the suggested text and a
// spell_correction history entry records old and new text; on rejection the
// translation is untouched. Both the translation mutation and the
// suggestion update commit together or not at all.
func (s *SuggestionService) Resolve(suggestionID int, resolverID int, status, note string) (*models.SpellingSuggestion, error) {
	if status != models.SuggestionStatusAccepted && status != models.SuggestionStatusRejected {
		return nil, ErrInvalidResolution
	}

	now := s.now()
	var result models.SpellingSuggestion

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var suggestion models.SpellingSuggestion
		if err := tx.Where("suggestion_id = ?", suggestionID).First(&suggestion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSuggestionNotFound
			}
			return fmt.Errorf("failed to load suggestion: %w", err)
		}
		if suggestion.Status != models.SuggestionStatusOpen {
			return ErrSuggestionResolved
		}

		if status == models.SuggestionStatusAccepted {
			var translation models.Translation
			if err := tx.Where("translation_id = ? AND delete_at IS NULL", suggestion.TranslationID).
				First(&translation).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTranslationNotFound
				}
				return fmt.Errorf("failed to load translation: %w", err)
			}

			oldText := translation.Text
			if err := tx.Model(&models.Translation{}).
				Where("translation_id = ?", translation.TranslationID).
				Updates(map[string]interface{}{
					"text":      suggestion.SuggestedText,
					"update_at": now,
				}).Error; err != nil {
				return fmt.Errorf("failed to apply correction: %w", err)
			}

			history := models.TranslationHistory{
				TranslationID: translation.TranslationID,
				Action:        models.HistoryActionSpellCorrection,
				ActorID:       resolverID,
				OldText:       &oldText,
				NewText:       &suggestion.SuggestedText,
				Note:          suggestion.Reason,
				CreatedAt:     now,
			}
			if err := tx.Create(&history).Error; err != nil {
				return fmt.Errorf("failed to record history: %w", err)
			}
		}

		updates := map[string]interface{}{
			"status":      status,
			"resolved_by": resolverID,
			"resolved_at": now,
		}
		trimmed := utils.SanitizeInput(note)
		if trimmed != "" {
			updates["resolve_note"] = trimmed
		}
		if err := tx.Model(&models.SpellingSuggestion{}).
			Where("suggestion_id = ?", suggestionID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to resolve suggestion: %w", err)
		}

		suggestion.Status = status
		suggestion.ResolvedBy = &resolverID
		suggestion.ResolvedAt = &now
		if trimmed != "" {
			suggestion.ResolveNote = &trimmed
		}
		result = suggestion
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
