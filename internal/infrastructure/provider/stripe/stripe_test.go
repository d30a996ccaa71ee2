package stripe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"github.com/uniclubs/universe-backend/internal/domain/provider"
)

func classify(t *testing.T, err error) *provider.Error {
	t.Helper()
	var provErr *provider.Error
	assert.ErrorAs(t, classifyError(err), &provErr)
	return provErr
}

func TestClassifyError(t *testing.T) {
	t.Run("auth failure", func(t *testing.T) {
		out := classify(t, &stripe.Error{
			HTTPStatusCode: 401,
			Code:           stripe.ErrorCodeAPIKeyExpired,
			Msg:            "Invalid API Key provided",
		})
		assert.Equal(t, provider.ErrKindAuthFailure, out.Kind)
		assert.Equal(t, 401, out.HTTPStatus)
	})

	t.Run("rate limited", func(t *testing.T) {
		out := classify(t, &stripe.Error{HTTPStatusCode: 429, Msg: "Too many requests"})
		assert.Equal(t, provider.ErrKindRateLimited, out.Kind)
	})

	t.Run("invalid request", func(t *testing.T) {
		out := classify(t, &stripe.Error{
			Type:           stripe.ErrorTypeInvalidRequest,
			HTTPStatusCode: 400,
			Code:           stripe.ErrorCodeParameterInvalidEmpty,
			Msg:            "Missing required param",
		})
		assert.Equal(t, provider.ErrKindInvalidRequest, out.Kind)
		assert.Equal(t, string(stripe.ErrorCodeParameterInvalidEmpty), out.Code)
	})

	t.Run("generic stripe error", func(t *testing.T) {
		out := classify(t, &stripe.Error{Type: stripe.ErrorTypeAPI, HTTPStatusCode: 500, Msg: "Something went wrong"})
		assert.Equal(t, provider.ErrKindGeneric, out.Kind)
	})

	t.Run("non stripe error", func(t *testing.T) {
		out := classify(t, errors.New("connection refused"))
		assert.Equal(t, provider.ErrKindGeneric, out.Kind)
		assert.Equal(t, "connection refused", out.Message)
	})
}

func TestVerifyWebhook_InvalidSignature(t *testing.T) {
	p := NewProvider("sk_test_abc", "whsec_test", zap.NewNop())

	event, err := p.VerifyWebhook([]byte(`{"id":"evt_1"}`), "t=1,v1=bogus")

	assert.Nil(t, event)
	var provErr *provider.Error
	assert.ErrorAs(t, err, &provErr)
	assert.Equal(t, provider.ErrKindSignatureInvalid, provErr.Kind)
}

func TestProviderName(t *testing.T) {
	p := NewProvider("sk_test_abc", "whsec_test", zap.NewNop())
	assert.Equal(t, "stripe", p.ProviderName())
}
