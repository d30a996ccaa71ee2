package model

import "time"

// Announcement is a club-wide notice.
type Announcement struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ClubID    *int64    `gorm:"index" json:"club_id,omitempty"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  int64     `gorm:"not null" json:"author_id"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Announcement) TableName() string {
	return "announcements"
}
