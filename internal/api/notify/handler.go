package notify

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/api"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

// HistorySource returns persisted notifications, newest first.
type HistorySource interface {
	Recent(ctx context.Context, limit int) ([]types.Notification, error)
}

type NotificationHandler struct {
	inbox   *Inbox
	history HistorySource
	logger  *slog.Logger
}

// NewNotificationHandler serves the inbox. history may be nil when no
// database is configured.
func NewNotificationHandler(inbox *Inbox, history HistorySource, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{inbox: inbox, history: history, logger: logger}
}

// Drain godoc
// @Summary      Pending notifications
// @Description  Returns and clears the notifications raised by failed fetches.
// @Tags         Notifications
// @Produce      json
// @Success      200 {array} types.Notification
// @Router       /notifications [get]
func (h *NotificationHandler) Drain(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("NotificationHandler").Start(r.Context(), "Drain", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/notifications"),
	))
	defer span.End()

	pending := h.inbox.Drain()
	if pending == nil {
		pending = []types.Notification{}
	}
	api.WriteJSONResponse(w, r, http.StatusOK, pending)
}

// History godoc
// @Summary      Notification history
// @Tags         Notifications
// @Produce      json
// @Param        limit query int false "Maximum entries (default 50)"
// @Success      200 {array}  types.Notification
// @Failure      404 {object} types.Response "History disabled"
// @Router       /notifications/history [get]
func (h *NotificationHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("NotificationHandler").Start(r.Context(), "History", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/notifications/history"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "History"))
	if h.history == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "notification history is not enabled")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recent, err := h.history.Recent(ctx, limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to load notification history", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if recent == nil {
		recent = []types.Notification{}
	}
	api.WriteJSONResponse(w, r, http.StatusOK, recent)
}
