package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/usecase"
	appErrors "github.com/uniclubs/universe-backend/pkg/errors"
)

// Stripe signs at most this much payload; anything larger is not a
// legitimate delivery.
const maxWebhookBodyBytes = int64(65536)

// WebhookHandler receives provider webhook deliveries. It sits outside the
// authenticated API group: the signature is the authentication.
type WebhookHandler struct {
	paymentService *usecase.PaymentService
	logger         *zap.Logger
}

func NewWebhookHandler(paymentService *usecase.PaymentService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// HandleWebhook handles POST /webhook.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBodyBytes))
	if err != nil {
		h.logger.Error("failed to read webhook body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    appErrors.ErrInvalidArgument,
			Message: "failed to read request body",
		})
	}

	signature := c.Request().Header.Get("Stripe-Signature")

	result, err := h.paymentService.HandleWebhookEvent(c.Request().Context(), payload, signature)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if !result.Acknowledged {
		return c.JSON(http.StatusBadRequest, result)
	}
	return c.JSON(http.StatusOK, result)
}
