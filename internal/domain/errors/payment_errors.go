package errors

import (
	"errors"
	"fmt"

	"github.com/uniclubs/universe-backend/internal/domain/model"
)

var (
	// ErrPaymentNotFound indicates that the payment record does not exist
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrClubNotFound indicates that the referenced club does not exist
	ErrClubNotFound = errors.New("club not found")

	// ErrInvalidAmount indicates a zero or negative checkout amount
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrProviderNotConfigured indicates a missing or placeholder Stripe credential
	ErrProviderNotConfigured = errors.New("payment provider is not properly configured")

	// ErrNoSuccessfulPayment indicates no SUCCEEDED payment exists for the user/club pair
	ErrNoSuccessfulPayment = errors.New("no successful payment found for this user and club")

	// ErrPaymentRequired indicates a free join was attempted on a club that charges a fee
	ErrPaymentRequired = errors.New("club membership requires payment")
)

// PaymentNotCompletedError indicates the payment exists but has not reached
// SUCCEEDED. It carries the current status so callers can show it.
type PaymentNotCompletedError struct {
	PaymentID int64
	Status    model.PaymentStatus
}

func (e *PaymentNotCompletedError) Error() string {
	return fmt.Sprintf("payment has not been completed successfully, status: %s", e.Status)
}

// IsPaymentNotCompleted reports whether err is a PaymentNotCompletedError.
func IsPaymentNotCompleted(err error) (*PaymentNotCompletedError, bool) {
	var pnc *PaymentNotCompletedError
	if errors.As(err, &pnc) {
		return pnc, true
	}
	return nil, false
}
