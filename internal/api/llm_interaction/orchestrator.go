// Package llmInteraction turns a prompt plus a response shape into a typed,
// validated value, going through the response cache and the provider
// adapters.
package llmInteraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-ai-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/cache"
	generativeAI "github.com/FACorreiaa/go-travel-ai-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/notify"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/shape"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

// AdapterSource resolves the adapter for a provider.
type AdapterSource interface {
	Get(id types.ProviderID) (generativeAI.Adapter, error)
}

type Orchestrator struct {
	adapters AdapterSource
	cache    *cache.Cache
	notifier notify.Notifier
	retry    RetryPolicy
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *slog.Logger
	metrics  *metrics.AppMetrics
}

type Option func(*Orchestrator)

func WithRetryPolicy(p RetryPolicy) Option {
	return func(o *Orchestrator) { o.retry = p.normalized() }
}

func WithMetrics(m *metrics.AppMetrics) Option {
	return func(o *Orchestrator) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithSleep replaces the backoff wait. Tests use it to avoid real delays.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

func NewOrchestrator(adapters AdapterSource, c *cache.Cache, notifier notify.Notifier, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		adapters: adapters,
		cache:    c,
		notifier: notifier,
		retry:    DefaultRetryPolicy(),
		sleep:    sleepCtx,
		logger:   logger,
		metrics:  metrics.Noop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FetchStructured returns the value for req, from cache when a live entry
// exists, otherwise from the provider. On provider or parse failure exactly
// one notification is emitted and (nil, err) is returned.
func FetchStructured[T any](ctx context.Context, o *Orchestrator, req types.RequestDescriptor) (*T, error) {
	ctx, span := otel.Tracer("LlmInteraction").Start(ctx, "FetchStructured", trace.WithAttributes(
		attribute.String("llm.provider", req.Provider.String()),
		attribute.Int("llm.prompt_length", len(req.Prompt)),
	))
	defer span.End()

	adapter, err := o.adapters.Get(req.Provider)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown provider")
		return nil, err
	}

	key := o.cache.Key(req.Provider, req.Prompt)
	if entry, ok := o.cache.Get(ctx, key); ok {
		var out T
		err := json.Unmarshal(entry.Payload, &out)
		if err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			span.SetStatus(codes.Ok, "")
			return &out, nil
		}
		o.logger.WarnContext(ctx, "Cached payload no longer decodes, refetching",
			slog.String("cache_key", key), slog.Any("error", err))
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	raw, err := o.generate(ctx, adapter, req)
	if err != nil {
		return nil, o.fail(ctx, span, req.Provider, err)
	}

	out, payload, err := decode[T](req, raw)
	if err != nil {
		return nil, o.fail(ctx, span, req.Provider, err)
	}

	o.cache.Put(ctx, key, payload)
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// decode runs strip, parse, validate and typed decoding. payload is the
// re-marshaled typed value, which is what gets cached.
func decode[T any](req types.RequestDescriptor, raw string) (*T, json.RawMessage, error) {
	text := shape.StripFences(raw)

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, nil, types.NewMalformedResponseError(req.Provider, raw, fmt.Errorf("invalid JSON: %w", err))
	}
	doc = shape.UnwrapArray(req.Shape, doc)
	if err := shape.Validate(req.Shape, doc); err != nil {
		return nil, nil, types.NewMalformedResponseError(req.Provider, raw, err)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, types.NewMalformedResponseError(req.Provider, raw, err)
	}
	var out T
	if err := json.Unmarshal(normalized, &out); err != nil {
		return nil, nil, types.NewMalformedResponseError(req.Provider, raw, err)
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return nil, nil, types.NewMalformedResponseError(req.Provider, raw, err)
	}
	return &out, payload, nil
}

func (o *Orchestrator) generate(ctx context.Context, adapter generativeAI.Adapter, req types.RequestDescriptor) (string, error) {
	delay := o.retry.InitialDelay
	for attempt := 1; ; attempt++ {
		start := time.Now()
		text, err := adapter.Generate(ctx, req.Prompt, req.Shape)
		o.record(ctx, req.Provider, start, err)
		if err == nil {
			return text, nil
		}
		err = types.NewProviderError(req.Provider, types.ProviderErrTransport, err)

		var rl *types.RateLimitError
		if !errors.As(err, &rl) || attempt >= o.retry.MaxAttempts {
			return "", err
		}

		o.logger.WarnContext(ctx, "Provider rate limited, backing off",
			slog.String("provider", req.Provider.String()),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", o.retry.MaxAttempts),
			slog.Duration("wait_duration", delay))
		o.metrics.ProviderRetriesTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("provider", req.Provider.String())))

		if serr := o.sleep(ctx, delay); serr != nil {
			return "", types.NewProviderError(req.Provider, types.ProviderErrTransport, serr)
		}
		delay *= 2
	}
}

func (o *Orchestrator) fail(ctx context.Context, span trace.Span, provider types.ProviderID, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "structured fetch failed")

	n := notify.FromError(provider, err)
	o.notifier.Notify(ctx, n)
	o.metrics.NotificationsEmittedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider.String()),
		attribute.String("kind", n.Kind)))

	o.logger.ErrorContext(ctx, "Structured fetch failed",
		slog.String("provider", provider.String()),
		slog.Any("error", err))
	return err
}

func (o *Orchestrator) record(ctx context.Context, provider types.ProviderID, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		var rl *types.RateLimitError
		if errors.As(err, &rl) {
			outcome = "rate_limited"
		}
	}
	attrs := metric.WithAttributes(
		attribute.String("provider", provider.String()),
		attribute.String("outcome", outcome))
	o.metrics.ProviderRequestsTotal.Add(ctx, 1, attrs)
	o.metrics.ProviderDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
}
