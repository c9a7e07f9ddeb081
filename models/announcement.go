package models

import "time"

// Announcement represents the announcements table: community news shown to
// all volunteers.
type Announcement struct {
	AnnouncementID int        `gorm:"primaryKey;column:announcement_id" json:"announcement_id"`
	Title          string     `gorm:"column:title" json:"title"`
	Body           string     `gorm:"column:body" json:"body"`
	Priority       string     `gorm:"column:priority;type:enum('normal','high','urgent');default:'normal'" json:"priority"`
	Status         string     `gorm:"column:status;type:enum('active','inactive');default:'active'" json:"status"`
	PublishedAt    *time.Time `gorm:"column:published_at" json:"published_at"`
	ExpiredAt      *time.Time `gorm:"column:expired_at" json:"expired_at"`
	CreatedBy      int        `gorm:"column:created_by" json:"created_by"`
	CreateAt       time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt       time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt       *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Creator User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// TableName specifies the table name for Announcement.
func (Announcement) TableName() string {
	return "announcements"
}
