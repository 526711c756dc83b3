package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		provider types.ProviderID
		err      error
		kind     string
		message  string
	}{
		{
			name:     "rate limit",
			provider: types.ProviderGemini,
			err:      types.NewRateLimitError(types.ProviderGemini, errors.New("429 RESOURCE_EXHAUSTED")),
			kind:     KindQuotaExceeded,
			message:  "GEMINI API quota exceeded. Please try again later.",
		},
		{
			name:     "wrapped auth error",
			provider: types.ProviderOpenAI,
			err: fmt.Errorf("fetch: %w",
				types.NewProviderError(types.ProviderOpenAI, types.ProviderErrAuth, errors.New("missing API key"))),
			kind:    KindProviderError,
			message: "OPENAI Error: missing API key",
		},
		{
			name:     "malformed",
			provider: types.ProviderGrok,
			err:      types.NewMalformedResponseError(types.ProviderGrok, "nope", errors.New("invalid character 'o'")),
			kind:     KindMalformed,
			message:  "GROK Error: invalid character 'o'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := FromError(tt.provider, tt.err)
			assert.Equal(t, tt.kind, n.Kind)
			assert.Equal(t, tt.message, n.Message)
			assert.Equal(t, tt.provider, n.Provider)
			assert.NotEqual(t, [16]byte{}, [16]byte(n.ID))
		})
	}
}

func TestInbox(t *testing.T) {
	ctx := context.Background()

	t.Run("drain empties", func(t *testing.T) {
		in := NewInbox(10)
		in.Notify(ctx, types.Notification{Message: "a"})
		in.Notify(ctx, types.Notification{Message: "b"})

		got := in.Drain()
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].Message)
		assert.Empty(t, in.Drain())
	})

	t.Run("drops oldest when full", func(t *testing.T) {
		in := NewInbox(2)
		for _, m := range []string{"a", "b", "c"} {
			in.Notify(ctx, types.Notification{Message: m})
		}
		got := in.Drain()
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].Message)
		assert.Equal(t, "c", got[1].Message)
	})

	t.Run("concurrent writers", func(t *testing.T) {
		in := NewInbox(1000)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				in.Notify(ctx, types.Notification{})
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, in.Len())
	})
}

type recordingNotifier struct{ got []types.Notification }

func (r *recordingNotifier) Notify(_ context.Context, n types.Notification) { r.got = append(r.got, n) }

func TestMulti(t *testing.T) {
	a, b := &recordingNotifier{}, &recordingNotifier{}
	Multi{a, nil, b}.Notify(context.Background(), types.Notification{Message: "x"})
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
}
