package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusSucceeded  PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// Payment tracks one checkout attempt for a club membership fee.
// Rows are never deleted; they form the payment audit trail.
type Payment struct {
	ID                    int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                int64           `gorm:"not null;index:idx_payments_user_club" json:"user_id"`
	ClubID                int64           `gorm:"not null;index:idx_payments_user_club" json:"club_id"`
	Amount                decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency              string          `gorm:"size:8;not null;default:'LKR'" json:"currency"`
	Status                PaymentStatus   `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	StripeSessionID       *string         `gorm:"column:stripe_session_id;unique;size:255" json:"stripe_session_id,omitempty"`
	StripePaymentIntentID *string         `gorm:"column:stripe_payment_intent_id;size:255;index" json:"stripe_payment_intent_id,omitempty"`
	ErrorMessage          *string         `json:"error_message,omitempty"`
	PaidAt                *time.Time      `json:"paid_at,omitempty"`
	CreatedAt             time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// IsSucceeded reports whether the payment has been confirmed as paid.
func (p *Payment) IsSucceeded() bool {
	return p.Status == PaymentStatusSucceeded
}
