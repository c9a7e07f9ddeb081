package models

import (
	"time"
)

// Role IDs
const (
	RoleTranslator = 1
	RoleReviewer   = 2
	RoleAdmin      = 3
)

type User struct {
	UserID        int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	UserFname     string     `gorm:"column:user_fname" json:"user_fname"`
	UserLname     string     `gorm:"column:user_lname" json:"user_lname"`
	Email         string     `gorm:"column:email;unique" json:"email"`
	Password      string     `gorm:"column:password" json:"-"`
	RoleID        int        `gorm:"column:role_id" json:"role_id"`
	LanguageCode  *string    `gorm:"column:language_code" json:"language_code,omitempty"`
	EmailVerified bool       `gorm:"column:email_verified" json:"email_verified"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// UserTranslatedSentence records that a user has submitted a translation for
// a sentence, so the allocator never re-offers it to them. Rows are written
// in the same transaction as the submission and are never removed.
type UserTranslatedSentence struct {
	ID         int       `gorm:"primaryKey;column:id" json:"id"`
	UserID     int       `gorm:"column:user_id;uniqueIndex:idx_user_sentence" json:"user_id"`
	SentenceID int       `gorm:"column:sentence_id;uniqueIndex:idx_user_sentence" json:"sentence_id"`
	CreateAt   time.Time `gorm:"column:create_at" json:"create_at"`
}

// PasswordResetToken holds a single-use token mailed to a user who asked to
// reset their password.
type PasswordResetToken struct {
	TokenID   int        `gorm:"primaryKey;column:token_id" json:"token_id"`
	UserID    int        `gorm:"column:user_id;index" json:"user_id"`
	Token     string     `gorm:"column:token;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"column:expires_at" json:"expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (UserTranslatedSentence) TableName() string {
	return "user_translated_sentences"
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
