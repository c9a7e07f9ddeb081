package models

import "time"

// History actions; the reviewer-driven subset mirrors the review actions.
const (
	HistoryActionSubmitted       = "submitted"
	HistoryActionResubmitted     = "resubmitted"
	HistoryActionSpellCorrection = "spell_correction"
	HistoryActionModerated       = "moderated"
)

// TranslationHistory is the denormalized per-translation change log kept for
// fast display. It is written only inside the transaction that performs the
// change it records, so it never diverges from the review trail.
type TranslationHistory struct {
	HistoryID     int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	TranslationID string    `gorm:"column:translation_id;index;type:char(36)" json:"translation_id"`
	Action        string    `gorm:"column:action" json:"action"`
	ActorID       int       `gorm:"column:actor_id" json:"actor_id"`
	OldText       *string   `gorm:"column:old_text" json:"old_text,omitempty"`
	NewText       *string   `gorm:"column:new_text" json:"new_text,omitempty"`
	Note          *string   `gorm:"column:note" json:"note,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for TranslationHistory.
func (TranslationHistory) TableName() string {
	return "translation_history"
}
