package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresHistory keeps every notification in the notifications table.
type PostgresHistory struct {
	pgpool pgxQuerier
	logger *slog.Logger
}

func NewPostgresHistory(pgpool pgxQuerier, logger *slog.Logger) *PostgresHistory {
	return &PostgresHistory{pgpool: pgpool, logger: logger}
}

// Notify persists n. A failed insert is logged only.
func (h *PostgresHistory) Notify(ctx context.Context, n types.Notification) {
	_, err := h.pgpool.Exec(ctx,
		`INSERT INTO notifications (id, provider, kind, message, created_at) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.Provider.String(), n.Kind, n.Message, n.CreatedAt)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to persist notification",
			slog.String("notification_id", n.ID.String()), slog.Any("error", err))
	}
}

// Recent returns up to limit notifications, newest first.
func (h *PostgresHistory) Recent(ctx context.Context, limit int) ([]types.Notification, error) {
	rows, err := h.pgpool.Query(ctx,
		`SELECT id, provider, kind, message, created_at FROM notifications ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	out := []types.Notification{}
	for rows.Next() {
		var n types.Notification
		var provider string
		if err := rows.Scan(&n.ID, &provider, &n.Kind, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Provider = types.ProviderID(provider)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return out, nil
}
