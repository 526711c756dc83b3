package appMiddleware

import (
	"context"
	"net/http"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/api"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

type contextKey string

const ProviderKey contextKey = "llmProvider"

// ProviderHeader lets a client pick the LLM backend per request. The
// "provider" query parameter takes precedence over it.
const ProviderHeader = "X-LLM-Provider"

// SelectProvider resolves the requested provider, falling back to def, and
// stores it on the request context. Unknown names are rejected with 400.
func SelectProvider(def types.ProviderID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name := r.URL.Query().Get("provider")
			if name == "" {
				name = r.Header.Get(ProviderHeader)
			}

			provider, err := types.ParseProvider(name, def)
			if err != nil {
				api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), ProviderKey, provider)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetProviderFromContext returns the provider chosen by SelectProvider.
func GetProviderFromContext(ctx context.Context) (types.ProviderID, bool) {
	p, ok := ctx.Value(ProviderKey).(types.ProviderID)
	return p, ok
}
