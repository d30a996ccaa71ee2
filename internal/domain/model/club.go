package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Club is a registered university club. A non-zero membership fee makes the
// join flow payment-gated.
type Club struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"size:255;not null;index" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	LogoURL       *string         `gorm:"size:500" json:"logo_url,omitempty"`
	AdminID       *int64          `gorm:"index" json:"admin_id,omitempty"`
	MembershipFee decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"membership_fee"`
	CreatedAt     time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Club) TableName() string {
	return "clubs"
}

// IsPaid reports whether joining the club requires a membership fee.
func (c *Club) IsPaid() bool {
	return c.MembershipFee.IsPositive()
}
