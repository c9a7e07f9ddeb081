package services

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
	"tokples-api/models"

	"gorm.io/gorm"
)

const (
	// priorityWindowSize caps the primary candidate query.
	priorityWindowSize = 500
	// fallbackWindowSize caps the unordered fallback query.
	fallbackWindowSize = 100
	// experienceThreshold separates new translators (ramped on easy
	// sentences) from veterans (routed the hard ones).
	experienceThreshold = 200
)

// QueueService hands out untranslated sentences to translators. A returned
// sentence is already locked to the caller; a nil sentence with nil error
// means no task is available right now and the caller may retry.
type QueueService struct {
	db    *gorm.DB
	locks *LockService
	rng   *rand.Rand
	now   func() time.Time
}

// NewQueueService creates a QueueService. A nil rng gets a time-seeded
// source; tests pass a fixed seed for reproducible ordering.
func NewQueueService(db *gorm.DB, locks *LockService, rng *rand.Rand) *QueueService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QueueService{db: db, locks: locks, rng: rng, now: time.Now}
}

// NextTask selects the next sentence for userID, skipping excludedIDs,
// foreign-locked sentences, and sentences the user already translated.
// Candidates come from a priority-ordered window, then an unordered
// fallback window. The first valid candidate is locked via LockService; if
// that acquisition races and loses, NextTask returns no task rather than
// silently trying another candidate.
func (s *QueueService) NextTask(userID int, excludedIDs []int) (*models.Sentence, error) {
	translated, err := s.translatedSet(userID)
	if err != nil {
		return nil, err
	}

	var submissionCount int64
	if err := s.db.Model(&models.UserTranslatedSentence{}).
		Where("user_id = ?", userID).
		Count(&submissionCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count user submissions: %w", err)
	}
	experienced := submissionCount >= experienceThreshold

	excluded := make(map[int]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}

	var window []models.Sentence
	if err := s.db.Where("status = ?", models.SentenceStatusOpen).
		Order("priority_score DESC").
		Limit(priorityWindowSize).
		Find(&window).Error; err != nil {
		return nil, fmt.Errorf("failed to query sentence queue: %w", err)
	}

	orderCandidates(window, experienced, s.rng)

	now := s.now()
	candidate := pickCandidate(window, userID, excluded, translated, now)
	if candidate == nil {
		var fallback []models.Sentence
		if err := s.db.Where("status = ?", models.SentenceStatusOpen).
			Limit(fallbackWindowSize).
			Find(&fallback).Error; err != nil {
			return nil, fmt.Errorf("failed to query fallback queue: %w", err)
		}
		candidate = pickCandidate(fallback, userID, excluded, translated, now)
	}
	if candidate == nil {
		return nil, nil
	}

	acquired, err := s.locks.Acquire(candidate.SentenceID, userID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		// Lost the race to another allocator; bound retry complexity at
		// the call site instead of walking the window again.
		return nil, nil
	}

	until := now.Add(LockDuration)
	candidate.LockedBy = &userID
	candidate.LockedUntil = &until
	return candidate, nil
}

// Skip releases the caller's lock on a sentence they chose not to translate.
func (s *QueueService) Skip(sentenceID, userID int) error {
	return s.locks.Release(sentenceID, userID)
}

func (s *QueueService) translatedSet(userID int) (map[int]bool, error) {
	var ids []int
	if err := s.db.Model(&models.UserTranslatedSentence{}).
		Where("user_id = ?", userID).
		Pluck("sentence_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load translated sentences: %w", err)
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// orderCandidates sorts the window by difficulty, ascending for new
// translators and descending for experienced ones. A pre-sort shuffle
// breaks ties so concurrent callers do not herd on the same top item.
func orderCandidates(window []models.Sentence, experienced bool, rng *rand.Rand) {
	rng.Shuffle(len(window), func(i, j int) {
		window[i], window[j] = window[j], window[i]
	})
	sort.SliceStable(window, func(i, j int) bool {
		if experienced {
			return window[i].Difficulty > window[j].Difficulty
		}
		return window[i].Difficulty < window[j].Difficulty
	})
}

// pickCandidate returns the first sentence the user may work on, or nil.
func pickCandidate(window []models.Sentence, userID int, excluded, translated map[int]bool, now time.Time) *models.Sentence {
	for i := range window {
		s := &window[i]
		if excluded[s.SentenceID] || translated[s.SentenceID] {
			continue
		}
		if s.LockedByOther(userID, now) {
			continue
		}
		return s
	}
	return nil
}
