package models

import "time"

// Review actions
const (
	ReviewActionApproved       = "approved"
	ReviewActionRejected       = "rejected"
	ReviewActionEdited         = "edited"
	ReviewActionNeedsAttention = "needs_attention"
)

// TranslationReview is the authoritative, append-only audit trail of
// reviewer actions on a translation. Rows are immutable once written; the
// embedded history on the translation is a derived cache of this log.
type TranslationReview struct {
	ReviewID      int       `gorm:"primaryKey;column:review_id" json:"review_id"`
	TranslationID string    `gorm:"column:translation_id;index;type:char(36)" json:"translation_id"`
	ReviewerID    int       `gorm:"column:reviewer_id" json:"reviewer_id"`
	Action        string    `gorm:"column:action;type:enum('approved','rejected','edited','needs_attention')" json:"action"`
	Comment       *string   `gorm:"column:comment" json:"comment,omitempty"`
	PreviousText  *string   `gorm:"column:previous_text" json:"previous_text,omitempty"`
	NewText       *string   `gorm:"column:new_text" json:"new_text,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`

	Reviewer *User `gorm:"foreignKey:ReviewerID;references:UserID" json:"reviewer,omitempty"`
}

// TableName specifies the table name for TranslationReview.
func (TranslationReview) TableName() string {
	return "translation_reviews"
}
