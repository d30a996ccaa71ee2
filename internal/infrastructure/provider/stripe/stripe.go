package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/uniclubs/universe-backend/internal/domain/provider"
	"go.uber.org/zap"
)

// Provider implements the CheckoutProvider interface for Stripe. The secret
// key is injected at construction; no process-wide stripe.Key is set.
type Provider struct {
	api           *client.API
	webhookSecret string
	logger        *zap.Logger
}

// NewProvider creates a new Stripe provider with its own API client.
func NewProvider(secretKey, webhookSecret string, logger *zap.Logger) *Provider {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Provider{
		api:           api,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// ProviderName returns the provider name.
func (p *Provider) ProviderName() string {
	return "stripe"
}

// CreateCheckoutSession creates a hosted one-time payment checkout session.
func (p *Provider) CreateCheckoutSession(ctx context.Context, req *provider.CreateSessionRequest) (*provider.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.UnitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.ProductName),
						Description: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		p.logger.Error("Stripe checkout session creation failed", zap.Error(err))
		return nil, classifyError(err)
	}

	out := &provider.CheckoutSession{
		ID:  s.ID,
		URL: s.URL,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}

	return out, nil
}

// GetCheckoutSession retrieves a checkout session by ID.
func (p *Provider) GetCheckoutSession(ctx context.Context, sessionID string) (*provider.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		p.logger.Error("Stripe checkout session retrieval failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return nil, classifyError(err)
	}

	out := &provider.CheckoutSession{
		ID:  s.ID,
		URL: s.URL,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}

	return out, nil
}

// GetPaymentIntent retrieves a payment intent by ID.
func (p *Provider) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*provider.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		p.logger.Error("Stripe payment intent retrieval failed",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err))
		return nil, classifyError(err)
	}

	out := &provider.PaymentIntent{
		ID:     pi.ID,
		Status: provider.PaymentIntentStatus(pi.Status),
	}
	if pi.LastPaymentError != nil {
		out.ErrorMessage = pi.LastPaymentError.Msg
	}

	return out, nil
}

// VerifyWebhook verifies the Stripe signature and maps the event to a
// provider-agnostic form. Unrecognized event types are reported with Kind
// EventUnrecognized rather than as errors.
func (p *Provider) VerifyWebhook(payload []byte, signatureHeader string) (*provider.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signatureHeader,
		p.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		p.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return nil, &provider.Error{
			Kind:    provider.ErrKindSignatureInvalid,
			Message: "webhook signature verification failed: " + err.Error(),
		}
	}

	out := &provider.WebhookEvent{
		ID:           event.ID,
		ProviderType: "stripe",
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, &provider.Error{
				Kind:    provider.ErrKindGeneric,
				Message: "failed to parse checkout session event: " + err.Error(),
			}
		}
		out.Kind = provider.EventCheckoutCompleted
		out.SessionID = session.ID
		if session.PaymentIntent != nil {
			out.PaymentIntentID = session.PaymentIntent.ID
		}

	case stripe.EventTypePaymentIntentSucceeded:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, &provider.Error{
				Kind:    provider.ErrKindGeneric,
				Message: "failed to parse payment intent event: " + err.Error(),
			}
		}
		out.Kind = provider.EventPaymentSucceeded
		out.PaymentIntentID = intent.ID

	case stripe.EventTypePaymentIntentPaymentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, &provider.Error{
				Kind:    provider.ErrKindGeneric,
				Message: "failed to parse payment intent event: " + err.Error(),
			}
		}
		out.Kind = provider.EventPaymentFailed
		out.PaymentIntentID = intent.ID
		if intent.LastPaymentError != nil {
			out.ErrorMessage = intent.LastPaymentError.Msg
		}

	case stripe.EventTypeChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, &provider.Error{
				Kind:    provider.ErrKindGeneric,
				Message: "failed to parse charge event: " + err.Error(),
			}
		}
		out.Kind = provider.EventChargeRefunded
		if charge.PaymentIntent != nil {
			out.PaymentIntentID = charge.PaymentIntent.ID
		}

	default:
		p.logger.Info("Unhandled webhook event type", zap.String("type", string(event.Type)))
		out.Kind = provider.EventUnrecognized
	}

	return out, nil
}

// classifyError maps a Stripe API error to a provider.Error, retaining
// Stripe's own code and HTTP status.
func classifyError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return &provider.Error{
			Kind:    provider.ErrKindGeneric,
			Message: err.Error(),
		}
	}

	out := &provider.Error{
		Code:       string(stripeErr.Code),
		Message:    stripeErr.Msg,
		HTTPStatus: stripeErr.HTTPStatusCode,
	}
	if out.Message == "" {
		out.Message = strings.TrimSpace(stripeErr.Error())
	}

	switch {
	case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
		out.Kind = provider.ErrKindAuthFailure
	case stripeErr.HTTPStatusCode == http.StatusTooManyRequests:
		out.Kind = provider.ErrKindRateLimited
	case stripeErr.Type == stripe.ErrorTypeInvalidRequest:
		out.Kind = provider.ErrKindInvalidRequest
	default:
		out.Kind = provider.ErrKindGeneric
	}

	return out
}
