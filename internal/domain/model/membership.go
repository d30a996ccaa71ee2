package model

import (
	"time"
)

// MembershipStatus is the state of a club membership.
type MembershipStatus string

const (
	MembershipStatusActive   MembershipStatus = "ACTIVE"
	MembershipStatusInactive MembershipStatus = "INACTIVE"
)

// ClubMembership records a user's active participation in a club.
// The (user_id, club_id) pair is unique at the database level; the
// serializable join transaction is the primary defense against concurrent
// duplicate joins and this constraint is the final backstop.
type ClubMembership struct {
	ID            int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64            `gorm:"not null;uniqueIndex:uk_user_club" json:"user_id"`
	ClubID        int64            `gorm:"not null;uniqueIndex:uk_user_club" json:"club_id"`
	Status        MembershipStatus `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	FullName      *string          `gorm:"size:255" json:"full_name,omitempty"`
	Address       *string          `gorm:"size:500" json:"address,omitempty"`
	ContactNumber *string          `gorm:"size:50" json:"contact_number,omitempty"`
	Birthday      *time.Time       `gorm:"type:date" json:"birthday,omitempty"`
	Faculty       *string          `gorm:"size:255" json:"faculty,omitempty"`
	Year          *string          `gorm:"size:20" json:"year,omitempty"`
	SkillsJSON    *string          `gorm:"column:skills;type:text" json:"skills,omitempty"`
	JoinedAt      time.Time        `gorm:"default:now()" json:"joined_at"`
}

// TableName specifies the table name for GORM
func (ClubMembership) TableName() string {
	return "club_memberships"
}
