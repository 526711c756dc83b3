// Package notify is the side channel that tells the user a fetch failed.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const (
	KindQuotaExceeded = "quota_exceeded"
	KindProviderError = "provider_error"
	KindMalformed     = "malformed_response"
)

type Notifier interface {
	Notify(ctx context.Context, n types.Notification)
}

// FromError builds the user facing notification for a failed fetch.
func FromError(provider types.ProviderID, err error) types.Notification {
	n := types.Notification{
		ID:        uuid.New(),
		Provider:  provider,
		CreatedAt: time.Now().UTC(),
	}

	var rl *types.RateLimitError
	var mr *types.MalformedResponseError
	var pe *types.ProviderError
	switch {
	case errors.As(err, &rl):
		n.Kind = KindQuotaExceeded
		n.Message = fmt.Sprintf("%s API quota exceeded. Please try again later.", provider.DisplayName())
	case errors.As(err, &mr):
		n.Kind = KindMalformed
		n.Message = fmt.Sprintf("%s Error: %v", provider.DisplayName(), mr.Err)
	case errors.As(err, &pe):
		n.Kind = KindProviderError
		n.Message = fmt.Sprintf("%s Error: %v", provider.DisplayName(), pe.Err)
	default:
		n.Kind = KindProviderError
		n.Message = fmt.Sprintf("%s Error: %v", provider.DisplayName(), err)
	}
	return n
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n types.Notification) {
	l.logger.WarnContext(ctx, n.Message,
		slog.String("notification_id", n.ID.String()),
		slog.String("provider", n.Provider.String()),
		slog.String("kind", n.Kind))
}

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n types.Notification) {
	for _, nt := range m {
		if nt != nil {
			nt.Notify(ctx, n)
		}
	}
}
