// Package cache persists validated LLM responses keyed by (provider, prompt).
//
// A Cache never fails towards its caller: backend errors and undecodable
// records are logged and treated as a miss, and writes are best effort.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-travel-ai-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const (
	DefaultTTL = 24 * time.Hour
	// DefaultPrefix is bumped whenever the cached payload layout changes so
	// that older records are never read again.
	DefaultPrefix = "ai_cache_v3_"
)

// ErrNotFound is returned by a Store when the key does not exist.
var ErrNotFound = errors.New("cache: key not found")

// Store is the pluggable byte key-value backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the whole value. ttl is a hint for backends with native
	// expiry; expiry is always enforced by Cache itself.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Entry is a decoded cache record.
type Entry struct {
	Key       string
	Timestamp time.Time
	Payload   json.RawMessage
}

// record is the persisted layout.
type record struct {
	Timestamp int64           `json:"timestamp"` // epoch millis
	Data      json.RawMessage `json:"data"`
}

type Cache struct {
	store   Store
	ttl     time.Duration
	prefix  string
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithClock overrides time.Now, used by tests to move past the TTL.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithMetrics(m *metrics.AppMetrics) Option {
	return func(c *Cache) {
		if m != nil {
			c.metrics = m
		}
	}
}

func New(store Store, logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		ttl:     DefaultTTL,
		prefix:  DefaultPrefix,
		now:     time.Now,
		logger:  logger,
		metrics: metrics.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) TTL() time.Duration { return c.ttl }

// Key derives the storage key for a provider and prompt. The hash is
// order sensitive over "<provider>:<prompt>".
func (c *Cache) Key(provider types.ProviderID, prompt string) string {
	sum := xxhash.Sum64String(string(provider) + ":" + prompt)
	return c.prefix + strconv.FormatUint(sum, 16)
}

// IsExpired reports whether now - entry.Timestamp >= TTL.
func (c *Cache) IsExpired(e *Entry) bool {
	return c.now().Sub(e.Timestamp) >= c.ttl
}

// Get returns the live entry for key. Expired entries are evicted on read.
func (c *Cache) Get(ctx context.Context, key string) (*Entry, bool) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.ioError(ctx, "get", key, err)
			c.count(ctx, "error")
			return nil, false
		}
		c.count(ctx, "miss")
		return nil, false
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil || len(rec.Data) == 0 {
		if err == nil {
			err = errors.New("record has no data")
		}
		c.ioError(ctx, "decode", key, err)
		c.count(ctx, "error")
		return nil, false
	}

	entry := &Entry{Key: key, Timestamp: time.UnixMilli(rec.Timestamp), Payload: rec.Data}
	if c.IsExpired(entry) {
		c.logger.DebugContext(ctx, "Cache entry expired", slog.String("cache_key", key))
		if err := c.store.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			c.ioError(ctx, "delete", key, err)
		}
		c.count(ctx, "expired")
		return nil, false
	}

	c.count(ctx, "hit")
	return entry, true
}

// Put stores payload under key, replacing any previous record. Failures are
// logged and swallowed.
func (c *Cache) Put(ctx context.Context, key string, payload json.RawMessage) {
	raw, err := json.Marshal(record{Timestamp: c.now().UnixMilli(), Data: payload})
	if err != nil {
		c.ioError(ctx, "encode", key, err)
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		c.ioError(ctx, "put", key, err)
		return
	}
	c.logger.DebugContext(ctx, "Stored response in cache", slog.String("cache_key", key))
}

func (c *Cache) ioError(ctx context.Context, op, key string, err error) {
	cerr := &types.CacheIOError{Op: op, Key: key, Err: err}
	c.logger.WarnContext(ctx, "Cache operation failed", slog.Any("error", cerr))
}

func (c *Cache) count(ctx context.Context, result string) {
	c.metrics.CacheLookupsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// String is used in startup logs.
func (c *Cache) String() string {
	return fmt.Sprintf("cache(prefix=%s ttl=%s store=%T)", c.prefix, c.ttl, c.store)
}
