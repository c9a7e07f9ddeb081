package models

import "time"

// Translation statuses
const (
	TranslationStatusPending        = "pending"
	TranslationStatusApproved       = "approved"
	TranslationStatusRejected       = "rejected"
	TranslationStatusNeedsAttention = "needs_attention"
)

// Vote types
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Translation represents the translations table: one translator's rendering
// of a sentence into a target language. At most one row may exist per
// (sentence_id, language_code, translator_id).
type Translation struct {
	TranslationID     string     `gorm:"primaryKey;column:translation_id;type:char(36)" json:"translation_id"`
	SentenceID        int        `gorm:"column:sentence_id;index" json:"sentence_id"`
	LanguageCode      string     `gorm:"column:language_code" json:"language_code"`
	TranslatorID      int        `gorm:"column:translator_id" json:"translator_id"`
	Text              string     `gorm:"column:text" json:"text"`
	Status            string     `gorm:"column:status;type:enum('pending','approved','rejected','needs_attention');default:'pending'" json:"status"`
	Votes             int        `gorm:"column:votes" json:"votes"`
	ReviewCount       int        `gorm:"column:review_count" json:"review_count"`
	AIQualityScore    *float64   `gorm:"column:ai_quality_score" json:"ai_quality_score,omitempty"`
	AIQualityFeedback *string    `gorm:"column:ai_quality_feedback" json:"ai_quality_feedback,omitempty"`
	CreateAt          time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt          *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Sentence   *Sentence            `gorm:"foreignKey:SentenceID;references:SentenceID" json:"sentence,omitempty"`
	Translator *User                `gorm:"foreignKey:TranslatorID;references:UserID" json:"translator,omitempty"`
	VoteRows   []TranslationVote    `gorm:"foreignKey:TranslationID;references:TranslationID" json:"vote_rows,omitempty"`
	Comments   []TranslationComment `gorm:"foreignKey:TranslationID;references:TranslationID" json:"comments,omitempty"`
	History    []TranslationHistory `gorm:"foreignKey:TranslationID;references:TranslationID" json:"history,omitempty"`
}

// TableName specifies the table name for Translation.
func (Translation) TableName() string {
	return "translations"
}

// TranslationVote is one user's current vote on a translation. The votes
// aggregate on the Translation must equal the signed sum of these rows and
// is recomputed in the same transaction that changes them.
type TranslationVote struct {
	VoteID        int       `gorm:"primaryKey;column:vote_id" json:"vote_id"`
	TranslationID string    `gorm:"column:translation_id;uniqueIndex:idx_vote_user;type:char(36)" json:"translation_id"`
	UserID        int       `gorm:"column:user_id;uniqueIndex:idx_vote_user" json:"user_id"`
	VoteType      string    `gorm:"column:vote_type;type:enum('up','down')" json:"vote_type"`
	CreateAt      time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName specifies the table name for TranslationVote.
func (TranslationVote) TableName() string {
	return "translation_votes"
}

// TranslationComment is a community comment on a translation, displayed in
// submission order.
type TranslationComment struct {
	CommentID     int       `gorm:"primaryKey;column:comment_id" json:"comment_id"`
	TranslationID string    `gorm:"column:translation_id;index;type:char(36)" json:"translation_id"`
	UserID        int       `gorm:"column:user_id" json:"user_id"`
	Text          string    `gorm:"column:text" json:"text"`
	CreateAt      time.Time `gorm:"column:create_at" json:"create_at"`

	Author *User `gorm:"foreignKey:UserID;references:UserID" json:"author,omitempty"`
}

// TableName specifies the table name for TranslationComment.
func (TranslationComment) TableName() string {
	return "translation_comments"
}
