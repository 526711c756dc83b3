package generativeAI

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/shape"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// capture records the last request body a fake provider received.
type capture struct {
	mu   sync.Mutex
	body map[string]any
}

func (c *capture) store(r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.body = map[string]any{}
	_ = json.Unmarshal(b, &c.body)
}

func (c *capture) get() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.body
}

func chatCompletionServer(t *testing.T, status int, content string, cap *capture) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if cap != nil {
			cap.store(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream said no","type":"error"}}`))
			return
		}
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []any{map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIAdapter_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("sends system prompt, schema and json_object format", func(t *testing.T) {
		cap := &capture{}
		srv := chatCompletionServer(t, http.StatusOK, `[{"name":"Portugal","code":"PT"}]`, cap)
		a := NewOpenAIAdapter(AdapterConfig{APIKey: "test-key", BaseURL: srv.URL}, testLogger)

		text, err := a.Generate(ctx, "List countries", shape.Countries)
		require.NoError(t, err)
		assert.Equal(t, `[{"name":"Portugal","code":"PT"}]`, text)

		body := cap.get()
		assert.Equal(t, DefaultOpenAIModel, body["model"])
		msgs := body["messages"].([]any)
		require.Len(t, msgs, 2)
		assert.Equal(t, systemPrompt, msgs[0].(map[string]any)["content"])
		user := msgs[1].(map[string]any)["content"].(string)
		assert.True(t, strings.HasPrefix(user, "List countries\n\nOutput strictly in this JSON schema format:\n"))
		assert.Equal(t, "json_object", body["response_format"].(map[string]any)["type"])
	})

	t.Run("grok omits response_format", func(t *testing.T) {
		cap := &capture{}
		srv := chatCompletionServer(t, http.StatusOK, "```json\n{}\n```", cap)
		a := NewGrokAdapter(AdapterConfig{APIKey: "test-key", BaseURL: srv.URL}, testLogger)

		text, err := a.Generate(ctx, "x", shape.Guides)
		require.NoError(t, err)
		assert.Equal(t, "```json\n{}\n```", text)
		assert.Equal(t, types.ProviderGrok, a.ID())
		assert.Equal(t, DefaultGrokModel, cap.get()["model"])
		_, has := cap.get()["response_format"]
		assert.False(t, has)
	})

	t.Run("missing key is an auth error without a network call", func(t *testing.T) {
		a := NewOpenAIAdapter(AdapterConfig{BaseURL: "http://127.0.0.1:1"}, testLogger)
		_, err := a.Generate(ctx, "x", nil)
		var pe *types.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, types.ProviderErrAuth, pe.Kind)
		assert.Equal(t, types.ProviderOpenAI, pe.Provider)
	})

	t.Run("401 is auth", func(t *testing.T) {
		srv := chatCompletionServer(t, http.StatusUnauthorized, "", nil)
		a := NewOpenAIAdapter(AdapterConfig{APIKey: "test-key", BaseURL: srv.URL}, testLogger)
		_, err := a.Generate(ctx, "x", nil)
		var pe *types.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, types.ProviderErrAuth, pe.Kind)
	})

	t.Run("429 is a rate limit", func(t *testing.T) {
		srv := chatCompletionServer(t, http.StatusTooManyRequests, "", nil)
		a := NewOpenAIAdapter(AdapterConfig{APIKey: "test-key", BaseURL: srv.URL}, testLogger)
		_, err := a.Generate(ctx, "x", nil)
		var rl *types.RateLimitError
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("empty content", func(t *testing.T) {
		srv := chatCompletionServer(t, http.StatusOK, "  ", nil)
		a := NewOpenAIAdapter(AdapterConfig{APIKey: "test-key", BaseURL: srv.URL}, testLogger)
		_, err := a.Generate(ctx, "x", nil)
		var pe *types.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, types.ProviderErrEmpty, pe.Kind)
	})
}

func geminiServer(t *testing.T, status int, text string, cap *capture) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, DefaultGeminiModel+":generateContent")
		if cap != nil {
			cap.store(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		switch status {
		case http.StatusOK:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []any{map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": text}},
					},
					"finishReason": "STOP",
				}},
			})
		case http.StatusTooManyRequests:
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota).","status":"RESOURCE_EXHAUSTED"}}`))
		default:
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiAdapter_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("constrained decoding", func(t *testing.T) {
		cap := &capture{}
		srv := geminiServer(t, http.StatusOK, `[{"name":"Goa"}]`, cap)
		a := NewGeminiAdapter(ctx, AdapterConfig{APIKey: "test-key", BaseURL: srv.URL}, testLogger)

		text, err := a.Generate(ctx, "List states of India", shape.States)
		require.NoError(t, err)
		assert.Equal(t, `[{"name":"Goa"}]`, text)

		raw, _ := json.Marshal(cap.get())
		assert.Contains(t, string(raw), "application/json")
		assert.Contains(t, string(raw), "List states of India")
	})

	t.Run("rate limited", func(t *testing.T) {
		srv := geminiServer(t, http.StatusTooManyRequests, "", nil)
		a := NewGeminiAdapter(ctx, AdapterConfig{APIKey: "test-key", BaseURL: srv.URL}, testLogger)
		_, err := a.Generate(ctx, "x", shape.States)
		var rl *types.RateLimitError
		require.ErrorAs(t, err, &rl)
		assert.Equal(t, types.ProviderGemini, rl.Provider)
	})

	t.Run("forbidden is auth", func(t *testing.T) {
		srv := geminiServer(t, http.StatusForbidden, "", nil)
		a := NewGeminiAdapter(ctx, AdapterConfig{APIKey: "test-key", BaseURL: srv.URL}, testLogger)
		_, err := a.Generate(ctx, "x", shape.States)
		var pe *types.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, types.ProviderErrAuth, pe.Kind)
	})

	t.Run("request timeout bounds a hanging call", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(3 * time.Second):
			}
		}))
		t.Cleanup(srv.Close)
		a := NewGeminiAdapter(ctx, AdapterConfig{
			APIKey:         "test-key",
			BaseURL:        srv.URL,
			RequestTimeout: 100 * time.Millisecond,
		}, testLogger)

		start := time.Now()
		_, err := a.Generate(ctx, "x", shape.States)
		assert.Less(t, time.Since(start), time.Second)
		var pe *types.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, types.ProviderErrTransport, pe.Kind)
	})

	t.Run("missing key", func(t *testing.T) {
		a := NewGeminiAdapter(ctx, AdapterConfig{}, testLogger)
		_, err := a.Generate(ctx, "x", shape.States)
		var pe *types.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, types.ProviderErrAuth, pe.Kind)
	})
}

func TestSchemaPrompt(t *testing.T) {
	p, err := SchemaPrompt("Plan a trip", &genai.Schema{Type: genai.TypeObject})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "Plan a trip\n\nOutput strictly in this JSON schema format:\n{"))

	p, err = SchemaPrompt("Plan a trip", nil)
	require.NoError(t, err)
	assert.Equal(t, "Plan a trip", p)
}

func TestClassifyStatus(t *testing.T) {
	cause := errors.New("boom")
	var rl *types.RateLimitError
	assert.ErrorAs(t, classifyStatus(types.ProviderGrok, 429, cause), &rl)
	assert.ErrorAs(t, classifyStatus(types.ProviderGrok, 0, errors.New("You exceeded your current quota")), &rl)

	var pe *types.ProviderError
	require.ErrorAs(t, classifyStatus(types.ProviderGrok, 500, cause), &pe)
	assert.Equal(t, types.ProviderErrTransport, pe.Kind)
	assert.ErrorIs(t, pe, cause)
}

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry(context.Background(), Credentials{OpenAI: "k"}, nil, testLogger)
	for _, id := range types.Providers {
		a, err := r.Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, a.ID())
	}
	_, err := r.Get("claude")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}
