package models

import "time"

// Spelling suggestion statuses
const (
	SuggestionStatusOpen     = "open"
	SuggestionStatusAccepted = "accepted"
	SuggestionStatusRejected = "rejected"
)

// SpellingSuggestion is a lightweight correction channel: any community
// member may propose a text fix for a translation, and a reviewer resolves
// it. Its lifecycle is independent of the review state machine.
type SpellingSuggestion struct {
	SuggestionID  int        `gorm:"primaryKey;column:suggestion_id" json:"suggestion_id"`
	TranslationID string     `gorm:"column:translation_id;index;type:char(36)" json:"translation_id"`
	OriginalText  string     `gorm:"column:original_text" json:"original_text"`
	SuggestedText string     `gorm:"column:suggested_text" json:"suggested_text"`
	Reason        *string    `gorm:"column:reason" json:"reason,omitempty"`
	Status        string     `gorm:"column:status;type:enum('open','accepted','rejected');default:'open'" json:"status"`
	CreatedBy     int        `gorm:"column:created_by" json:"created_by"`
	ResolvedBy    *int       `gorm:"column:resolved_by" json:"resolved_by,omitempty"`
	ResolveNote   *string    `gorm:"column:resolve_note" json:"resolve_note,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at" json:"created_at"`
	ResolvedAt    *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`

	Creator  *User `gorm:"foreignKey:CreatedBy;references:UserID" json:"creator,omitempty"`
	Resolver *User `gorm:"foreignKey:ResolvedBy;references:UserID" json:"resolver,omitempty"`
}

// TableName specifies the table name for SpellingSuggestion.
func (SpellingSuggestion) TableName() string {
	return "spelling_suggestions"
}
