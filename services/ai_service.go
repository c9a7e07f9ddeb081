package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
	"tokples-api/models"

	"gorm.io/gorm"
)

// AIService calls the external suggestion/scoring endpoint. Scores are
// advisory metadata only: a failed call leaves the quality fields unset and
// never blocks or alters the review state machine.
type AIService struct {
	db      *gorm.DB
	client  *http.Client
	baseURL string
}

// NewAIService creates an AIService. A nil client gets a 30-second-timeout
// default; the endpoint comes from AI_ENDPOINT.
func NewAIService(db *gorm.DB, client *http.Client) *AIService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &AIService{
		db:      db,
		client:  client,
		baseURL: os.Getenv("AI_ENDPOINT"),
	}
}

type aiScoreRequest struct {
	SourceText   string `json:"source_text"`
	Translation  string `json:"translation"`
	LanguageCode string `json:"language_code"`
}

type aiScoreResponse struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

type aiSuggestRequest struct {
	SourceText   string `json:"source_text"`
	LanguageCode string `json:"language_code"`
}

type aiSuggestResponse struct {
	Suggestion string `json:"suggestion"`
}

// ScoreTranslation fetches a quality score for a translation and stores it
// on the record. Errors are returned for logging but callers treat them as
// non-fatal.
func (s *AIService) ScoreTranslation(ctx context.Context, translationID string) error {
	if s.baseURL == "" {
		return errors.New("AI endpoint not configured (AI_ENDPOINT)")
	}

	var translation models.Translation
	if err := s.db.Preload("Sentence").
		Where("translation_id = ? AND delete_at IS NULL", translationID).
		First(&translation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTranslationNotFound
		}
		return fmt.Errorf("failed to load translation: %w", err)
	}

	sourceText := ""
	if translation.Sentence != nil {
		sourceText = translation.Sentence.SourceText
	}

	var resp aiScoreResponse
	if err := s.post(ctx, "/score", aiScoreRequest{
		SourceText:   sourceText,
		Translation:  translation.Text,
		LanguageCode: translation.LanguageCode,
	}, &resp); err != nil {
		return err
	}

	if err := s.db.Model(&models.Translation{}).
		Where("translation_id = ?", translationID).
		Updates(map[string]interface{}{
			"ai_quality_score":    resp.Score,
			"ai_quality_feedback": resp.Feedback,
		}).Error; err != nil {
		return fmt.Errorf("failed to store quality score: %w", err)
	}
	return nil
}

// ScoreTranslationAsync scores in the background and only logs failures.
func (s *AIService) ScoreTranslationAsync(translationID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		if err := s.ScoreTranslation(ctx, translationID); err != nil {
			log.Printf("AI scoring skipped for %s: %v", translationID, err)
		}
	}()
}

// Suggest fetches a machine draft for a sentence to show alongside the
// translation box.
func (s *AIService) Suggest(ctx context.Context, sentenceID int, languageCode string) (string, error) {
	if s.baseURL == "" {
		return "", errors.New("AI endpoint not configured (AI_ENDPOINT)")
	}

	var sentence models.Sentence
	if err := s.db.Where("sentence_id = ?", sentenceID).First(&sentence).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSentenceNotFound
		}
		return "", fmt.Errorf("failed to load sentence: %w", err)
	}

	var resp aiSuggestResponse
	if err := s.post(ctx, "/suggest", aiSuggestRequest{
		SourceText:   sentence.SourceText,
		LanguageCode: languageCode,
	}, &resp); err != nil {
		return "", err
	}
	return resp.Suggestion, nil
}

func (s *AIService) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode AI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build AI request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key := os.Getenv("AI_API_KEY"); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("AI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("AI endpoint returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode AI response: %w", err)
	}
	return nil
}
