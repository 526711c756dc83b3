package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid input", fmt.Errorf("%w: city is required", types.ErrInvalidInput), http.StatusBadRequest, "invalid input: city is required"},
		{"rate limit", types.NewRateLimitError(types.ProviderGemini, errors.New("429")), http.StatusTooManyRequests, "GEMINI API quota exceeded. Please try again later."},
		{"provider", types.NewProviderError(types.ProviderGrok, types.ProviderErrAuth, errors.New("bad key")), http.StatusBadGateway, "GROK Error: bad key"},
		{"malformed", types.NewMalformedResponseError(types.ProviderOpenAI, "nope", errors.New("syntax")), http.StatusBadGateway, "OPENAI Error: the response could not be understood"},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, "request timed out"},
		{"provider timeout", types.NewProviderError(types.ProviderGemini, types.ProviderErrTransport, fmt.Errorf("Post \"https://api\": %w", context.DeadlineExceeded)), http.StatusGatewayTimeout, "request timed out"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := StatusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestDecodeJSONBody(t *testing.T) {
	type body struct {
		City string `json:"city"`
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"city":"Jaipur"}`))
		var b body
		require.NoError(t, DecodeJSONBody(httptest.NewRecorder(), r, &b))
		assert.Equal(t, "Jaipur", b.City)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"town":"Jaipur"}`))
		var b body
		err := DecodeJSONBody(httptest.NewRecorder(), r, &b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown key "town"`)
	})

	t.Run("empty", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
		var b body
		assert.EqualError(t, DecodeJSONBody(httptest.NewRecorder(), r, &b), "body must not be empty")
	})

	t.Run("trailing data", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"city":"a"}{"city":"b"}`))
		var b body
		assert.EqualError(t, DecodeJSONBody(httptest.NewRecorder(), r, &b), "body must only contain a single JSON value")
	})
}

func TestErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ErrorResponse(rec, r, http.StatusBadGateway, "GEMINI Error: down")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"GEMINI Error: down","request_id":""}`, rec.Body.String())
}
