package repository

import (
	"context"

	"github.com/uniclubs/universe-backend/internal/domain/model"
)

// PaymentRepository persists payment records. Payments are never deleted.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error)
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*model.Payment, error)
	// GetAllByUserAndClub returns every payment attempt for the pair, newest update first.
	GetAllByUserAndClub(ctx context.Context, userID, clubID int64) ([]*model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) error
}
