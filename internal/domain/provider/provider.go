package provider

import (
	"context"
)

// CheckoutProvider defines the capability this service needs from an external
// payment provider: hosted checkout-session creation and retrieval,
// payment-intent retrieval, and webhook verification. The Stripe
// implementation lives in infrastructure; the reconciler and initiator only
// depend on this interface.
type CheckoutProvider interface {
	// CreateCheckoutSession creates a hosted checkout page for a one-time payment.
	CreateCheckoutSession(ctx context.Context, req *CreateSessionRequest) (*CheckoutSession, error)

	// GetCheckoutSession retrieves a previously created session by its ID.
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// GetPaymentIntent retrieves the current state of a payment intent.
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// VerifyWebhook verifies the payload signature and decodes the event.
	VerifyWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)

	// ProviderName returns the provider name.
	ProviderName() string
}

// CreateSessionRequest is a provider-agnostic checkout-session request.
// UnitAmount is in the smallest currency unit.
type CreateSessionRequest struct {
	UnitAmount  int64             `json:"unit_amount"`
	Currency    string            `json:"currency"`
	ProductName string            `json:"product_name"`
	Description string            `json:"description"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CheckoutSession is the provider's view of a hosted checkout page.
type CheckoutSession struct {
	ID              string `json:"id"`
	URL             string `json:"url,omitempty"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
}

// PaymentIntentStatus is the provider-side status of a payment attempt.
type PaymentIntentStatus string

const (
	IntentStatusSucceeded             PaymentIntentStatus = "succeeded"
	IntentStatusProcessing            PaymentIntentStatus = "processing"
	IntentStatusRequiresPaymentMethod PaymentIntentStatus = "requires_payment_method"
)

// PaymentIntent is the provider's representation of a single payment attempt.
type PaymentIntent struct {
	ID           string              `json:"id"`
	Status       PaymentIntentStatus `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

// EventKind classifies webhook events this service reacts to.
type EventKind string

const (
	EventCheckoutCompleted EventKind = "checkout_completed"
	EventPaymentSucceeded  EventKind = "payment_succeeded"
	EventPaymentFailed     EventKind = "payment_failed"
	EventChargeRefunded    EventKind = "charge_refunded"
	EventUnrecognized      EventKind = "unrecognized"
)

// WebhookEvent is a verified, provider-agnostic webhook event. Unrecognized
// provider event types come through with Kind EventUnrecognized and are
// acknowledged without any state change.
type WebhookEvent struct {
	ID              string    `json:"id"`
	Kind            EventKind `json:"kind"`
	ProviderType    string    `json:"provider_type"`
	SessionID       string    `json:"session_id,omitempty"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty"`
}

// ErrorKind classifies provider API failures so callers can react
// appropriately; rate_limited is the only retryable kind.
type ErrorKind string

const (
	ErrKindInvalidRequest   ErrorKind = "invalid_request"
	ErrKindAuthFailure      ErrorKind = "auth_failure"
	ErrKindRateLimited      ErrorKind = "rate_limited"
	ErrKindSignatureInvalid ErrorKind = "signature_invalid"
	ErrKindGeneric          ErrorKind = "provider_error"
)

// Error carries the provider's own error code and HTTP status alongside the
// classified kind.
type Error struct {
	Kind       ErrorKind `json:"kind"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return string(e.Kind) + " (" + e.Code + "): " + e.Message
	}
	return string(e.Kind) + ": " + e.Message
}
