package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/usecase"
)

// PaymentHandler exposes payment confirmation and lookups.
type PaymentHandler struct {
	paymentService *usecase.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *usecase.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// ConfirmPayment handles POST /api/v1/payments/:id/confirm. This is the poll
// fallback for when the webhook has not arrived yet; calling it repeatedly is
// safe.
func (h *PaymentHandler) ConfirmPayment(c echo.Context) error {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.paymentService.ConfirmPayment(c.Request().Context(), paymentID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// GetPayment handles GET /api/v1/payments/:id.
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.paymentService.GetPayment(c.Request().Context(), paymentID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// GetPaymentBySession handles GET /api/v1/payments/session/:sessionId.
func (h *PaymentHandler) GetPaymentBySession(c echo.Context) error {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session ID is required")
	}

	payment, err := h.paymentService.GetPaymentBySession(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// VerifyPayment handles GET /api/v1/payments/:id/verify. It reports whether
// the payment has settled as SUCCEEDED.
func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	succeeded, err := h.paymentService.IsPaymentSuccessful(c.Request().Context(), paymentID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"payment_id": paymentID,
		"succeeded":  succeeded,
	})
}

// GetPaymentHistory handles GET /api/v1/payments?userId=&clubId=.
func (h *PaymentHandler) GetPaymentHistory(c echo.Context) error {
	userID, err := parseIDQuery(c, "userId")
	if err != nil {
		return err
	}
	clubID, err := parseIDQuery(c, "clubId")
	if err != nil {
		return err
	}

	payments, err := h.paymentService.GetPaymentHistory(c.Request().Context(), userID, clubID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, payments)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func parseIDQuery(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.QueryParam(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
