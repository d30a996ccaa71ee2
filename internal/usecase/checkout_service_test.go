package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	domainErrors "github.com/uniclubs/universe-backend/internal/domain/errors"
	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/domain/provider"
)

func newCheckoutService(paymentRepo *MockPaymentRepository, clubRepo *MockClubRepository, checkout *MockCheckoutProvider) *CheckoutService {
	return NewCheckoutService(paymentRepo, clubRepo, checkout, CheckoutConfig{
		FrontendURL:     "https://clubs.campus.edu",
		StripeSecretKey: "sk_test_abc123",
	}, zap.NewNop())
}

func TestCreateCheckoutSession_Success(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	checkout := new(MockCheckoutProvider)
	service := newCheckoutService(paymentRepo, clubRepo, checkout)

	clubRepo.On("GetByID", mock.Anything, int64(3)).Return(&model.Club{
		ID:            3,
		Name:          "Robotics Club",
		MembershipFee: decimal.RequireFromString("500.00"),
	}, nil)

	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Payment).ID = 17
		}).
		Return(nil)

	var sessionReq *provider.CreateSessionRequest
	checkout.On("CreateCheckoutSession", mock.Anything, mock.AnythingOfType("*provider.CreateSessionRequest")).
		Run(func(args mock.Arguments) {
			sessionReq = args.Get(1).(*provider.CreateSessionRequest)
		}).
		Return(&provider.CheckoutSession{
			ID:  "cs_test_123",
			URL: "https://checkout.stripe.com/c/pay/cs_test_123",
		}, nil)

	paymentRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(nil)

	resp, err := service.CreateCheckoutSession(context.Background(), &CreateCheckoutRequest{
		UserID:   9,
		ClubID:   3,
		Amount:   decimal.RequireFromString("500.00"),
		Currency: "LKR",
	})

	assert.NoError(t, err)
	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", resp.SessionURL)
	assert.Equal(t, int64(17), resp.PaymentID)

	// 500.00 converts to 50000 minor units with a lowercase currency code.
	assert.Equal(t, int64(50000), sessionReq.UnitAmount)
	assert.Equal(t, "lkr", sessionReq.Currency)
	assert.Equal(t, "17", sessionReq.Metadata["payment_id"])
	assert.Contains(t, sessionReq.SuccessURL, "session_id={CHECKOUT_SESSION_ID}")
	assert.Contains(t, sessionReq.CancelURL, "payment_id=17")

	paymentRepo.AssertExpectations(t)
	clubRepo.AssertExpectations(t)
	checkout.AssertExpectations(t)
}

func TestCreateCheckoutSession_PersistsSessionReference(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	checkout := new(MockCheckoutProvider)
	service := newCheckoutService(paymentRepo, clubRepo, checkout)

	clubRepo.On("GetByID", mock.Anything, int64(3)).Return(&model.Club{ID: 3, Name: "Chess Club"}, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	checkout.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&provider.CheckoutSession{ID: "cs_test_456", URL: "https://pay.example/cs_test_456"}, nil)

	var updated *model.Payment
	paymentRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Payment")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(*model.Payment)
		}).
		Return(nil)

	_, err := service.CreateCheckoutSession(context.Background(), &CreateCheckoutRequest{
		UserID: 9,
		ClubID: 3,
		Amount: decimal.RequireFromString("250.50"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, updated.StripeSessionID)
	assert.Equal(t, "cs_test_456", *updated.StripeSessionID)
	assert.Equal(t, model.PaymentStatusPending, updated.Status)
}

func TestCreateCheckoutSession_InvalidAmount(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	checkout := new(MockCheckoutProvider)
	service := newCheckoutService(paymentRepo, clubRepo, checkout)

	for _, amount := range []string{"0", "-10.00"} {
		_, err := service.CreateCheckoutSession(context.Background(), &CreateCheckoutRequest{
			UserID: 9,
			ClubID: 3,
			Amount: decimal.RequireFromString(amount),
		})
		assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)
	}

	// Rejected before any record is written or provider call made.
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	checkout.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCreateCheckoutSession_UnconfiguredCredential(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	checkout := new(MockCheckoutProvider)

	service := NewCheckoutService(paymentRepo, clubRepo, checkout, CheckoutConfig{
		FrontendURL:     "https://clubs.campus.edu",
		StripeSecretKey: "sk_test_placeholder",
	}, zap.NewNop())

	_, err := service.CreateCheckoutSession(context.Background(), &CreateCheckoutRequest{
		UserID: 9,
		ClubID: 3,
		Amount: decimal.RequireFromString("500.00"),
	})

	assert.ErrorIs(t, err, domainErrors.ErrProviderNotConfigured)
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	checkout.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
}

func TestCreateCheckoutSession_ClubNotFound(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	checkout := new(MockCheckoutProvider)
	service := newCheckoutService(paymentRepo, clubRepo, checkout)

	clubRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domainErrors.ErrClubNotFound)

	_, err := service.CreateCheckoutSession(context.Background(), &CreateCheckoutRequest{
		UserID: 9,
		ClubID: 99,
		Amount: decimal.RequireFromString("500.00"),
	})

	assert.ErrorIs(t, err, domainErrors.ErrClubNotFound)
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCheckoutSession_ProviderErrorPropagates(t *testing.T) {
	paymentRepo := new(MockPaymentRepository)
	clubRepo := new(MockClubRepository)
	checkout := new(MockCheckoutProvider)
	service := newCheckoutService(paymentRepo, clubRepo, checkout)

	clubRepo.On("GetByID", mock.Anything, int64(3)).Return(&model.Club{ID: 3, Name: "Chess Club"}, nil)
	paymentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	checkout.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(nil, &provider.Error{Kind: provider.ErrKindRateLimited, Message: "rate limit"})

	_, err := service.CreateCheckoutSession(context.Background(), &CreateCheckoutRequest{
		UserID: 9,
		ClubID: 3,
		Amount: decimal.RequireFromString("500.00"),
	})

	var provErr *provider.Error
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, provider.ErrKindRateLimited, provErr.Kind)
}

func TestToMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"500.00": 50000,
		"0.01":   1,
		"12.34":  1234,
		"1000":   100000,
	}
	for amount, want := range cases {
		assert.Equal(t, want, toMinorUnits(decimal.RequireFromString(amount)), amount)
	}
}
