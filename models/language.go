package models

import "time"

// Language represents the languages table: the target languages volunteers
// translate into, e.g. "tpi" (Tok Pisin), "hmo" (Hiri Motu).
type Language struct {
	LanguageCode string     `gorm:"primaryKey;column:language_code" json:"language_code"`
	Name         string     `gorm:"column:name" json:"name"`
	Region       *string    `gorm:"column:region" json:"region,omitempty"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
}

// TableName specifies the table name for Language.
func (Language) TableName() string {
	return "languages"
}
