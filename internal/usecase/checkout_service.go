package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/uniclubs/universe-backend/internal/domain/errors"
	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/domain/provider"
	"github.com/uniclubs/universe-backend/internal/domain/repository"
)

// CheckoutConfig carries the settings the checkout flow needs from the
// service configuration.
type CheckoutConfig struct {
	FrontendURL     string
	StripeSecretKey string
}

// CreateCheckoutRequest describes one checkout-session creation.
type CreateCheckoutRequest struct {
	UserID      int64
	ClubID      int64
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// CreateCheckoutResponse is returned to the client so it can redirect the
// user to the hosted payment page.
type CreateCheckoutResponse struct {
	SessionID  string `json:"session_id"`
	SessionURL string `json:"session_url"`
	PaymentID  int64  `json:"payment_id"`
}

// CheckoutService creates payment records and hosted checkout sessions for
// paid club memberships.
type CheckoutService struct {
	paymentRepo repository.PaymentRepository
	clubRepo    repository.ClubRepository
	checkout    provider.CheckoutProvider
	config      CheckoutConfig
	logger      *zap.Logger
}

func NewCheckoutService(
	paymentRepo repository.PaymentRepository,
	clubRepo repository.ClubRepository,
	checkout provider.CheckoutProvider,
	config CheckoutConfig,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		paymentRepo: paymentRepo,
		clubRepo:    clubRepo,
		checkout:    checkout,
		config:      config,
		logger:      logger,
	}
}

// CreateCheckoutSession validates the request, persists a PENDING payment and
// creates a hosted checkout session for it. Validation failures happen before
// any record is written or any provider call is made.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, req *CreateCheckoutRequest) (*CreateCheckoutResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if req.ClubID <= 0 {
		return nil, fmt.Errorf("club ID is required")
	}
	if !req.Amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if !credentialConfigured(s.config.StripeSecretKey) {
		s.logger.Error("checkout requested with unconfigured provider credential")
		return nil, domainErrors.ErrProviderNotConfigured
	}

	club, err := s.clubRepo.GetByID(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	payment := &model.Payment{
		UserID:   req.UserID,
		ClubID:   req.ClubID,
		Amount:   req.Amount,
		Currency: strings.ToUpper(currency),
		Status:   model.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Membership fee for %s", club.Name)
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, &provider.CreateSessionRequest{
		UnitAmount:  toMinorUnits(req.Amount),
		Currency:    strings.ToLower(currency),
		ProductName: fmt.Sprintf("%s Membership", club.Name),
		Description: description,
		SuccessURL:  s.buildRedirectURL("/payment/success", payment.ID),
		CancelURL:   s.buildRedirectURL("/payment/cancel", payment.ID),
		Metadata: map[string]string{
			"payment_id": strconv.FormatInt(payment.ID, 10),
			"user_id":    strconv.FormatInt(req.UserID, 10),
			"club_id":    strconv.FormatInt(req.ClubID, 10),
			"club_name":  club.Name,
			"request_id": uuid.NewString(),
		},
	})
	if err != nil {
		s.logger.Error("checkout session creation failed",
			zap.Int64("payment_id", payment.ID),
			zap.Error(err))
		return nil, err
	}

	payment.StripeSessionID = &session.ID
	if session.PaymentIntentID != "" {
		payment.StripePaymentIntentID = &session.PaymentIntentID
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store session reference: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.Int64("payment_id", payment.ID),
		zap.String("session_id", session.ID),
		zap.Int64("user_id", req.UserID),
		zap.Int64("club_id", req.ClubID))

	return &CreateCheckoutResponse{
		SessionID:  session.ID,
		SessionURL: session.URL,
		PaymentID:  payment.ID,
	}, nil
}

const defaultCurrency = "LKR"

// toMinorUnits converts a decimal amount to the smallest currency unit,
// e.g. 500.00 -> 50000.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// credentialConfigured rejects empty and obviously unset placeholder keys so
// a misconfigured deployment fails before creating payment records.
func credentialConfigured(secretKey string) bool {
	if secretKey == "" {
		return false
	}
	lowered := strings.ToLower(secretKey)
	return !strings.Contains(lowered, "placeholder") && !strings.Contains(lowered, "your_stripe")
}

// buildRedirectURL appends the payment reference and the provider's session
// placeholder to a frontend route. The provider substitutes the session ID on
// redirect.
func (s *CheckoutService) buildRedirectURL(path string, paymentID int64) string {
	base := strings.TrimRight(s.config.FrontendURL, "/")
	return fmt.Sprintf("%s%s?payment_id=%d&session_id={CHECKOUT_SESSION_ID}", base, path, paymentID)
}
