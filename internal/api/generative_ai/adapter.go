// Package generativeAI adapts the Gemini, OpenAI and Grok APIs to a single
// prompt-in, JSON-text-out contract.
package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGrokModel   = "grok-beta"
	DefaultGrokBaseURL = "https://api.x.ai/v1"

	DefaultRequestTimeout = 90 * time.Second

	systemPrompt = "You are a helpful travel assistant. You must output valid JSON."
)

// Adapter generates a JSON document for prompt, shaped like shape.
// Errors are always *types.ProviderError or *types.RateLimitError.
type Adapter interface {
	ID() types.ProviderID
	Generate(ctx context.Context, prompt string, shape *genai.Schema) (string, error)
}

// AdapterConfig is the per provider settings resolved at startup.
type AdapterConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
}

func (c AdapterConfig) timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return c.RequestTimeout
}

// Registry holds one adapter per provider.
type Registry struct {
	adapters map[types.ProviderID]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[types.ProviderID]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.ID()] = a
	}
	return r
}

func (r *Registry) Get(id types.ProviderID) (Adapter, error) {
	a, ok := r.adapters[id]
	if !ok {
		return nil, fmt.Errorf("%w: no adapter registered for provider %q", types.ErrInvalidInput, id)
	}
	return a, nil
}

// NewDefaultRegistry builds the three adapters from resolved credentials.
// Missing keys do not fail here; the adapter reports them on first use.
func NewDefaultRegistry(ctx context.Context, creds Credentials, cfgs map[types.ProviderID]AdapterConfig, logger *slog.Logger) *Registry {
	withKey := func(id types.ProviderID) AdapterConfig {
		c := cfgs[id]
		c.APIKey = creds.Key(id)
		return c
	}
	return NewRegistry(
		NewGeminiAdapter(ctx, withKey(types.ProviderGemini), logger),
		NewOpenAIAdapter(withKey(types.ProviderOpenAI), logger),
		NewGrokAdapter(withKey(types.ProviderGrok), logger),
	)
}
