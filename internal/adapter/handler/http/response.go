package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/uniclubs/universe-backend/internal/domain/errors"
	"github.com/uniclubs/universe-backend/internal/domain/provider"
	appErrors "github.com/uniclubs/universe-backend/pkg/errors"
)

// ErrorResponse is the error body shape for every handler. Code is a stable
// machine-readable string; clients branch on it rather than on Message.
type ErrorResponse struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// writeError maps domain and provider errors onto HTTP statuses and the
// shared error body. Anything unrecognized becomes a 500 with a generic
// message; the cause goes to the log, not the client.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	if err == nil {
		return nil
	}

	// Payment-gating failures carry the current payment status so the client
	// can explain why the join was rejected.
	if pnc, ok := domainErrors.IsPaymentNotCompleted(err); ok {
		return c.JSON(http.StatusPreconditionFailed, ErrorResponse{
			Code:          appErrors.ErrFailedPrecondition,
			Message:       pnc.Error(),
			PaymentStatus: string(pnc.Status),
		})
	}

	var provErr *provider.Error
	if errors.As(err, &provErr) {
		return writeProviderError(c, logger, provErr)
	}

	switch {
	case errors.Is(err, domainErrors.ErrPaymentNotFound),
		errors.Is(err, domainErrors.ErrClubNotFound),
		errors.Is(err, domainErrors.ErrMembershipNotFound),
		errors.Is(err, domainErrors.ErrUserNotFound),
		errors.Is(err, domainErrors.ErrEventNotFound),
		errors.Is(err, domainErrors.ErrAnnouncementNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    appErrors.ErrNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, domainErrors.ErrAlreadyMember):
		// Rendered client-side as "already joined", so the code must stay
		// distinguishable from other conflicts.
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    "ALREADY_MEMBER",
			Message: err.Error(),
		})
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    appErrors.ErrInvalidArgument,
			Message: err.Error(),
		})
	case errors.Is(err, domainErrors.ErrNoSuccessfulPayment):
		return c.JSON(http.StatusPreconditionFailed, ErrorResponse{
			Code:    appErrors.ErrFailedPrecondition,
			Message: err.Error(),
		})
	case errors.Is(err, domainErrors.ErrPaymentRequired):
		return c.JSON(http.StatusPaymentRequired, ErrorResponse{
			Code:    appErrors.ErrFailedPrecondition,
			Message: err.Error(),
		})
	case errors.Is(err, domainErrors.ErrProviderNotConfigured):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Code:    appErrors.ErrUnavailable,
			Message: err.Error(),
		})
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErrors.ToHTTPStatus(appErr.Code()), ErrorResponse{
			Code:    appErr.Code(),
			Message: appErr.Error(),
		})
	}

	logger.Error("unhandled error in HTTP handler", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    appErrors.ErrInternal,
		Message: "internal server error",
	})
}

func writeProviderError(c echo.Context, logger *zap.Logger, provErr *provider.Error) error {
	logger.Warn("provider error",
		zap.String("kind", string(provErr.Kind)),
		zap.String("provider_code", provErr.Code),
		zap.Int("provider_http_status", provErr.HTTPStatus))

	switch provErr.Kind {
	case provider.ErrKindInvalidRequest:
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    appErrors.ErrInvalidArgument,
			Message: provErr.Message,
		})
	case provider.ErrKindAuthFailure:
		// Our credential was rejected upstream; nothing the client can fix.
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    appErrors.ErrUnavailable,
			Message: "payment provider rejected the service credential",
		})
	case provider.ErrKindRateLimited:
		return c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Code:    appErrors.ErrResourceExhausted,
			Message: "payment provider rate limit reached, retry shortly",
		})
	case provider.ErrKindSignatureInvalid:
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    appErrors.ErrInvalidArgument,
			Message: "invalid webhook signature",
		})
	default:
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Code:    appErrors.ErrUnavailable,
			Message: "payment provider error",
		})
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
