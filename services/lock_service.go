package services

import (
	"errors"
	"fmt"
	"time"
	"tokples-api/models"

	"gorm.io/gorm"
)

// LockDuration is how long a sentence stays reserved for the translator the
// allocator handed it to. A crashed client simply lets the lock expire.
const LockDuration = 10 * time.Minute

var (
	// ErrSentenceNotFound is returned when the referenced sentence does not exist.
	ErrSentenceNotFound = errors.New("sentence not found")
)

// LockService manages the advisory per-sentence lock embedded on the
// sentences table. The lock prevents two translators from being handed the
// same sentence under normal flow; it is cooperative and time-bounded.
type LockService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewLockService creates a LockService backed by db.
func NewLockService(db *gorm.DB) *LockService {
	return &LockService{db: db, now: time.Now}
}

// Acquire tries to lock sentenceID for userID. It succeeds iff no other
// user holds a non-expired lock; expired locks are treated as absent. The
// check and the write are a single conditional UPDATE, so two concurrent
// acquirers cannot both succeed.
//
// A false return means the lock is validly held by someone else; callers
// should move on to another sentence, not treat it as a hard error.
func (s *LockService) Acquire(sentenceID, userID int) (bool, error) {
	now := s.now()
	until := now.Add(LockDuration)

	res := s.db.Model(&models.Sentence{}).
		Where("sentence_id = ? AND (locked_by IS NULL OR locked_until <= ? OR locked_by = ?)",
			sentenceID, now, userID).
		Updates(map[string]interface{}{
			"locked_by":    userID,
			"locked_until": until,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Distinguish contention from a stale sentence id.
	var count int64
	if err := s.db.Model(&models.Sentence{}).
		Where("sentence_id = ?", sentenceID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check sentence: %w", err)
	}
	if count == 0 {
		return false, ErrSentenceNotFound
	}
	return false, nil
}

// Release clears the lock on sentenceID if it is held by userID or already
// expired. A lock validly held by another user is left alone.
func (s *LockService) Release(sentenceID, userID int) error {
	now := s.now()

	res := s.db.Model(&models.Sentence{}).
		Where("sentence_id = ? AND (locked_by = ? OR locked_until <= ? OR locked_by IS NULL)",
			sentenceID, userID, now).
		Updates(map[string]interface{}{
			"locked_by":    nil,
			"locked_until": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to release lock: %w", res.Error)
	}
	return nil
}

// ForceRelease clears the lock regardless of owner. Admin use only.
func (s *LockService) ForceRelease(sentenceID int) error {
	res := s.db.Model(&models.Sentence{}).
		Where("sentence_id = ?", sentenceID).
		Updates(map[string]interface{}{
			"locked_by":    nil,
			"locked_until": nil,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to force-release lock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSentenceNotFound
	}
	return nil
}
