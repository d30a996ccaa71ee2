package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/domain/provider"
	"github.com/uniclubs/universe-backend/internal/domain/repository"
)

// WebhookResult reports how a webhook delivery was handled. Acknowledged is
// false only for signature failures; events the service does not act on are
// still acknowledged so the provider stops redelivering them.
type WebhookResult struct {
	Acknowledged bool   `json:"acknowledged"`
	Message      string `json:"message"`
}

// PaymentService reconciles payment records with provider state, driven both
// by webhook deliveries and by client-initiated confirmation polls.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	checkout    provider.CheckoutProvider
	logger      *zap.Logger
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	checkout provider.CheckoutProvider,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		checkout:    checkout,
		logger:      logger,
	}
}

// HandleWebhookEvent verifies the delivery signature and applies the event to
// the matching payment record. A payment that cannot be found is logged and
// skipped: the record may belong to another deployment sharing the provider
// account, and redelivery would not help.
func (s *PaymentService) HandleWebhookEvent(ctx context.Context, payload []byte, signatureHeader string) (*WebhookResult, error) {
	event, err := s.checkout.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		s.logger.Warn("webhook signature verification failed", zap.Error(err))
		return &WebhookResult{Acknowledged: false, Message: "invalid signature"}, nil
	}

	switch event.Kind {
	case provider.EventCheckoutCompleted:
		s.markSucceededBySession(ctx, event.SessionID, event.PaymentIntentID)
	case provider.EventPaymentSucceeded:
		s.markSucceededByIntent(ctx, event.PaymentIntentID)
	case provider.EventPaymentFailed:
		s.markFailedByIntent(ctx, event.PaymentIntentID, event.ErrorMessage)
	case provider.EventChargeRefunded:
		s.markRefundedByIntent(ctx, event.PaymentIntentID)
	default:
		s.logger.Debug("ignoring unrecognized webhook event",
			zap.String("event_id", event.ID),
			zap.String("provider_type", event.ProviderType))
	}

	return &WebhookResult{Acknowledged: true, Message: "event processed"}, nil
}

// ConfirmPayment is the client-initiated poll path. It asks the provider for
// the current state of the payment and applies it. Safe to call repeatedly:
// an already SUCCEEDED payment is returned as-is without touching the
// provider.
func (s *PaymentService) ConfirmPayment(ctx context.Context, paymentID int64) (*model.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.IsSucceeded() {
		return payment, nil
	}

	intentID := ""
	if payment.StripePaymentIntentID != nil {
		intentID = *payment.StripePaymentIntentID
	}

	// The intent reference is usually missing right after checkout; the
	// session knows it once the customer has submitted payment details.
	if intentID == "" {
		if payment.StripeSessionID == nil || *payment.StripeSessionID == "" {
			s.logger.Warn("payment has no session to confirm against",
				zap.Int64("payment_id", payment.ID))
			return payment, nil
		}

		session, err := s.checkout.GetCheckoutSession(ctx, *payment.StripeSessionID)
		if err != nil {
			return nil, err
		}

		if session.PaymentIntentID == "" {
			// Customer has not completed the hosted page yet.
			return s.transition(ctx, payment, model.PaymentStatusProcessing, nil)
		}

		intentID = session.PaymentIntentID
		payment.StripePaymentIntentID = &intentID
	}

	intent, err := s.checkout.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	switch intent.Status {
	case provider.IntentStatusSucceeded:
		return s.markSucceeded(ctx, payment)
	case provider.IntentStatusProcessing:
		return s.transition(ctx, payment, model.PaymentStatusProcessing, nil)
	case provider.IntentStatusRequiresPaymentMethod:
		msg := intent.ErrorMessage
		if msg == "" {
			msg = "payment requires a payment method, please try again"
		}
		return s.transition(ctx, payment, model.PaymentStatusFailed, &msg)
	default:
		s.logger.Info("payment intent in unhandled state, leaving record unchanged",
			zap.Int64("payment_id", payment.ID),
			zap.String("intent_status", string(intent.Status)))
		return payment, nil
	}
}

// GetPayment returns a payment record by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID int64) (*model.Payment, error) {
	if paymentID <= 0 {
		return nil, fmt.Errorf("payment ID is required")
	}
	return s.paymentRepo.GetByID(ctx, paymentID)
}

// GetPaymentBySession returns a payment record by its checkout session ID.
func (s *PaymentService) GetPaymentBySession(ctx context.Context, sessionID string) (*model.Payment, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}
	return s.paymentRepo.GetBySessionID(ctx, sessionID)
}

// IsPaymentSuccessful reports whether the payment has settled as SUCCEEDED.
func (s *PaymentService) IsPaymentSuccessful(ctx context.Context, paymentID int64) (bool, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return false, err
	}
	return payment.IsSucceeded(), nil
}

// GetPaymentHistory returns every payment attempt for the user/club pair,
// newest update first.
func (s *PaymentService) GetPaymentHistory(ctx context.Context, userID, clubID int64) ([]*model.Payment, error) {
	if userID <= 0 || clubID <= 0 {
		return nil, fmt.Errorf("user ID and club ID are required")
	}
	return s.paymentRepo.GetAllByUserAndClub(ctx, userID, clubID)
}

func (s *PaymentService) markSucceededBySession(ctx context.Context, sessionID, paymentIntentID string) {
	if sessionID == "" {
		return
	}

	payment, err := s.paymentRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		s.logger.Warn("no payment record for checkout session",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return
	}

	if paymentIntentID != "" && payment.StripePaymentIntentID == nil {
		payment.StripePaymentIntentID = &paymentIntentID
	}

	if _, err := s.markSucceeded(ctx, payment); err != nil {
		s.logger.Error("failed to apply checkout completion",
			zap.Int64("payment_id", payment.ID),
			zap.Error(err))
	}
}

func (s *PaymentService) markSucceededByIntent(ctx context.Context, paymentIntentID string) {
	payment, ok := s.findByIntent(ctx, paymentIntentID)
	if !ok {
		return
	}

	if _, err := s.markSucceeded(ctx, payment); err != nil {
		s.logger.Error("failed to apply payment success",
			zap.Int64("payment_id", payment.ID),
			zap.Error(err))
	}
}

func (s *PaymentService) markFailedByIntent(ctx context.Context, paymentIntentID, errorMessage string) {
	payment, ok := s.findByIntent(ctx, paymentIntentID)
	if !ok {
		return
	}

	var msg *string
	if errorMessage != "" {
		msg = &errorMessage
	}

	if _, err := s.transition(ctx, payment, model.PaymentStatusFailed, msg); err != nil {
		s.logger.Error("failed to apply payment failure",
			zap.Int64("payment_id", payment.ID),
			zap.Error(err))
	}
}

func (s *PaymentService) markRefundedByIntent(ctx context.Context, paymentIntentID string) {
	payment, ok := s.findByIntent(ctx, paymentIntentID)
	if !ok {
		return
	}

	if _, err := s.transition(ctx, payment, model.PaymentStatusRefunded, nil); err != nil {
		s.logger.Error("failed to apply refund",
			zap.Int64("payment_id", payment.ID),
			zap.Error(err))
	}
}

func (s *PaymentService) findByIntent(ctx context.Context, paymentIntentID string) (*model.Payment, bool) {
	if paymentIntentID == "" {
		return nil, false
	}

	payment, err := s.paymentRepo.GetByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		s.logger.Warn("no payment record for payment intent",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err))
		return nil, false
	}
	return payment, true
}

// markSucceeded sets SUCCEEDED and stamps paidAt. Re-applying to an already
// succeeded payment is a no-op so paidAt keeps its original value.
func (s *PaymentService) markSucceeded(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if payment.IsSucceeded() {
		return payment, nil
	}

	now := time.Now()
	payment.Status = model.PaymentStatusSucceeded
	payment.PaidAt = &now
	payment.ErrorMessage = nil
	payment.UpdatedAt = now
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment succeeded",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("user_id", payment.UserID),
		zap.Int64("club_id", payment.ClubID))
	return payment, nil
}

func (s *PaymentService) transition(ctx context.Context, payment *model.Payment, status model.PaymentStatus, errorMessage *string) (*model.Payment, error) {
	payment.Status = status
	payment.ErrorMessage = errorMessage
	payment.UpdatedAt = time.Now()
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment status updated",
		zap.Int64("payment_id", payment.ID),
		zap.String("status", string(status)))
	return payment, nil
}
