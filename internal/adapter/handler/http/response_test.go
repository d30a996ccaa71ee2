package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/uniclubs/universe-backend/internal/domain/errors"
	"github.com/uniclubs/universe-backend/internal/domain/model"
	"github.com/uniclubs/universe-backend/internal/domain/provider"
)

func renderError(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, writeError(c, zap.NewNop(), err))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestWriteError_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"payment not found", domainErrors.ErrPaymentNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"club not found", domainErrors.ErrClubNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already member", domainErrors.ErrAlreadyMember, http.StatusConflict, "ALREADY_MEMBER"},
		{"invalid amount", domainErrors.ErrInvalidAmount, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"no successful payment", domainErrors.ErrNoSuccessfulPayment, http.StatusPreconditionFailed, "FAILED_PRECONDITION"},
		{"payment required", domainErrors.ErrPaymentRequired, http.StatusPaymentRequired, "FAILED_PRECONDITION"},
		{"provider not configured", domainErrors.ErrProviderNotConfigured, http.StatusServiceUnavailable, "UNAVAILABLE"},
		{"wrapped sentinel", fmt.Errorf("joining club: %w", domainErrors.ErrAlreadyMember), http.StatusConflict, "ALREADY_MEMBER"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := renderError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestWriteError_PaymentNotCompletedCarriesStatus(t *testing.T) {
	status, body := renderError(t, &domainErrors.PaymentNotCompletedError{
		PaymentID: 17,
		Status:    model.PaymentStatusPending,
	})

	assert.Equal(t, http.StatusPreconditionFailed, status)
	assert.Equal(t, "FAILED_PRECONDITION", body.Code)
	assert.Equal(t, "PENDING", body.PaymentStatus)
}

func TestWriteError_UnknownErrorHidesCause(t *testing.T) {
	_, body := renderError(t, errors.New("pq: connection refused"))

	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, body.Message, "connection refused")
}

func TestWriteError_ProviderErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		kind       provider.ErrorKind
		wantStatus int
		wantCode   string
	}{
		{"invalid request", provider.ErrKindInvalidRequest, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"auth failure", provider.ErrKindAuthFailure, http.StatusBadGateway, "UNAVAILABLE"},
		{"rate limited", provider.ErrKindRateLimited, http.StatusTooManyRequests, "RESOURCE_EXHAUSTED"},
		{"signature invalid", provider.ErrKindSignatureInvalid, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"provider outage", provider.ErrKindGeneric, http.StatusBadGateway, "UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := renderError(t, &provider.Error{
				Kind:       tt.kind,
				Code:       "some_code",
				Message:    "upstream said no",
				HTTPStatus: 400,
			})
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestWriteError_AuthFailureHidesCredentialDetail(t *testing.T) {
	_, body := renderError(t, &provider.Error{
		Kind:    provider.ErrKindAuthFailure,
		Message: "Invalid API Key provided: sk_test_***",
	})

	assert.Equal(t, "payment provider rejected the service credential", body.Message)
	assert.NotContains(t, body.Message, "sk_test")
}
