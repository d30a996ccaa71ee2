package model

import "time"

// Event is a club event listing.
type Event struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ClubID      int64     `gorm:"not null;index" json:"club_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    *string   `gorm:"size:255" json:"location,omitempty"`
	StartsAt    time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
