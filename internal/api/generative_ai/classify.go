package generativeAI

import (
	"errors"
	"net/http"
	"strings"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

var errMissingKey = errors.New("API key is not configured")

// classifyStatus maps an HTTP status (0 when unknown) plus the error text to a
// typed provider error.
func classifyStatus(p types.ProviderID, status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests || looksRateLimited(err):
		return types.NewRateLimitError(p, err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return types.NewProviderError(p, types.ProviderErrAuth, err)
	default:
		return types.NewProviderError(p, types.ProviderErrTransport, err)
	}
}

func looksRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "exhausted")
}
