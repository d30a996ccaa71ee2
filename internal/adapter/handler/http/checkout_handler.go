package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/usecase"
)

// CheckoutHandler exposes checkout-session creation.
type CheckoutHandler struct {
	checkoutService *usecase.CheckoutService
	logger          *zap.Logger
}

func NewCheckoutHandler(checkoutService *usecase.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

type CreateCheckoutSessionRequest struct {
	UserID      int64           `json:"user_id" validate:"required,gt=0"`
	ClubID      int64           `json:"club_id" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}

// CreateCheckoutSession handles POST /api/v1/payments/checkout-session.
func (h *CheckoutHandler) CreateCheckoutSession(c echo.Context) error {
	var req CreateCheckoutSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.checkoutService.CreateCheckoutSession(c.Request().Context(), &usecase.CreateCheckoutRequest{
		UserID:      req.UserID,
		ClubID:      req.ClubID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, resp)
}
