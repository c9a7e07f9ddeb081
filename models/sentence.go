package models

import "time"

// Sentence statuses
const (
	SentenceStatusOpen        = "open"
	SentenceStatusNeedsReview = "needs_review"
	SentenceStatusApproved    = "approved"
)

// Difficulty levels assigned at import time
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// DefaultTargetRedundancy is the number of independent translations a
// sentence needs before it leaves the active queue.
const DefaultTargetRedundancy = 2

// Sentence represents the sentences table. The source text is immutable
// after import; the queue metadata (status, lock, counters) is mutated by
// the allocator and by translation submission.
type Sentence struct {
	SentenceID       int        `gorm:"primaryKey;column:sentence_id" json:"sentence_id"`
	SourceText       string     `gorm:"column:source_text" json:"source_text"`
	Status           string     `gorm:"column:status;type:enum('open','needs_review','approved');default:'open'" json:"status"`
	PriorityScore    float64    `gorm:"column:priority_score" json:"priority_score"`
	Difficulty       int        `gorm:"column:difficulty;default:2" json:"difficulty"`
	TranslationCount int        `gorm:"column:translation_count" json:"translation_count"`
	TargetRedundancy int        `gorm:"column:target_redundancy;default:2" json:"target_redundancy"`
	LockedBy         *int       `gorm:"column:locked_by" json:"locked_by,omitempty"`
	LockedUntil      *time.Time `gorm:"column:locked_until" json:"locked_until,omitempty"`
	ImportBatch      *string    `gorm:"column:import_batch" json:"import_batch,omitempty"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
}

// TableName specifies the table name for Sentence.
func (Sentence) TableName() string {
	return "sentences"
}

// LockedByOther reports whether the sentence carries a non-expired lock held
// by a user other than userID. Expired locks are treated as absent.
func (s *Sentence) LockedByOther(userID int, now time.Time) bool {
	if s.LockedBy == nil || s.LockedUntil == nil {
		return false
	}
	if !s.LockedUntil.After(now) {
		return false
	}
	return *s.LockedBy != userID
}
