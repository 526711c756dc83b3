package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	CacheLookupsTotal         metric.Int64Counter
	ProviderRequestsTotal     metric.Int64Counter
	ProviderDurationSeconds   metric.Float64Histogram
	ProviderRetriesTotal      metric.Int64Counter
	EnrichmentLookupsTotal    metric.Int64Counter
	NotificationsEmittedTotal metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New builds the instruments on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.CacheLookupsTotal, err = meter.Int64Counter(
		"ai_cache_lookups_total",
		metric.WithDescription("Cache lookups by result (hit, miss, expired, error)"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("ai_cache_lookups_total: %w", err)
	}

	m.ProviderRequestsTotal, err = meter.Int64Counter(
		"llm_provider_requests_total",
		metric.WithDescription("Provider generate calls by provider and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("llm_provider_requests_total: %w", err)
	}

	m.ProviderDurationSeconds, err = meter.Float64Histogram(
		"llm_provider_duration_seconds",
		metric.WithDescription("Duration of provider generate calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("llm_provider_duration_seconds: %w", err)
	}

	m.ProviderRetriesTotal, err = meter.Int64Counter(
		"llm_provider_retries_total",
		metric.WithDescription("Retries after rate limit responses"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("llm_provider_retries_total: %w", err)
	}

	m.EnrichmentLookupsTotal, err = meter.Int64Counter(
		"enrichment_lookups_total",
		metric.WithDescription("Image, geocoding and air quality lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("enrichment_lookups_total: %w", err)
	}

	m.NotificationsEmittedTotal, err = meter.Int64Counter(
		"notifications_emitted_total",
		metric.WithDescription("User facing failure notifications"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, fmt.Errorf("notifications_emitted_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("WanderWiseAI"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// Noop returns instruments that record nothing. Used by tests and as the
// default when a component is built without metrics.
func Noop() *AppMetrics {
	m, err := New(noop.NewMeterProvider().Meter("noop"))
	if err != nil {
		panic(err)
	}
	return m
}
