package enrichment

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"googlemaps.github.io/maps"

	"github.com/FACorreiaa/go-travel-ai-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const maxConcurrentLookups = 16

type ImageLookup interface {
	Lookup(ctx context.Context, query string) string
}

type AirQualitySource interface {
	Current(ctx context.Context, p types.LatLng) (float64, error)
}

// Enricher runs the per-entity hydration. Lookups for sibling entities run
// concurrently and results are written back by index.
type Enricher struct {
	images   ImageLookup
	geocoder Geocoder
	air      AirQualitySource
	routes   RouteEstimator
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.AppMetrics
}

type EnricherOption func(*Enricher)

func WithLookupTimeout(d time.Duration) EnricherOption {
	return func(e *Enricher) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithRouteEstimator enables measured ride distance and duration.
func WithRouteEstimator(r RouteEstimator) EnricherOption {
	return func(e *Enricher) { e.routes = r }
}

func WithMetrics(m *metrics.AppMetrics) EnricherOption {
	return func(e *Enricher) {
		if m != nil {
			e.metrics = m
		}
	}
}

func NewEnricher(images ImageLookup, geocoder Geocoder, air AirQualitySource, logger *slog.Logger, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		images:   images,
		geocoder: geocoder,
		air:      air,
		timeout:  DefaultLookupTimeout,
		logger:   logger,
		metrics:  metrics.Noop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Enricher) image(ctx context.Context, query string) string {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.images.Lookup(ctx, query)
}

// LiveAQI geocodes location and formats its current AQI. coords is set
// whenever geocoding succeeded, even if the AQI lookup then failed.
func (e *Enricher) LiveAQI(ctx context.Context, location string) (aqi string, coords *types.LatLng, err error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	p, err := e.geocoder.Geocode(ctx, location)
	e.count(ctx, "geocode", err)
	if err != nil {
		return "", nil, &types.EnrichmentLookupError{Lookup: "geocode", Query: location, Err: err}
	}
	n, err := e.air.Current(ctx, p)
	e.count(ctx, "aqi", err)
	if err != nil {
		return "", &p, &types.EnrichmentLookupError{Lookup: "aqi", Query: location, Err: err}
	}
	return FormatAQI(n), &p, nil
}

// liveAQIOr returns the live AQI for location or fallback.
func (e *Enricher) liveAQIOr(ctx context.Context, location, fallback string) (string, *types.LatLng) {
	aqi, coords, err := e.LiveAQI(ctx, location)
	if err != nil {
		e.logger.DebugContext(ctx, "Keeping estimated AQI", slog.Any("error", err))
		return fallback, coords
	}
	return aqi, coords
}

// HydrateTopCities attaches an image to each city.
func (e *Enricher) HydrateTopCities(ctx context.Context, cities []types.CityInfo) []types.CityInfo {
	ctx, span := otel.Tracer("Enrichment").Start(ctx, "HydrateTopCities", trace.WithAttributes(
		attribute.Int("entities", len(cities))))
	defer span.End()

	out := slices.Clone(cities)
	g := e.group()
	for i := range out {
		g.Go(func() error {
			out[i].Image = e.image(ctx, out[i].Name+", "+out[i].Country+" tourism")
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// HydrateCity attaches the city image plus an image and live AQI per spot.
func (e *Enricher) HydrateCity(ctx context.Context, city types.City) types.City {
	ctx, span := otel.Tracer("Enrichment").Start(ctx, "HydrateCity", trace.WithAttributes(
		attribute.String("city", city.Name),
		attribute.Int("entities", len(city.Spots))))
	defer span.End()

	out := city
	out.Spots = slices.Clone(city.Spots)

	g := e.group()
	g.Go(func() error {
		out.Image = e.image(ctx, city.Name+", "+city.Country+" travel")
		return nil
	})
	for i := range out.Spots {
		spot := out.Spots[i]
		g.Go(func() error {
			out.Spots[i].Image = e.image(ctx, spot.Name+" "+city.Name)
			return nil
		})
		g.Go(func() error {
			aqi, _ := e.liveAQIOr(ctx, spot.Name+", "+city.Name+", "+city.Country, spot.AQI)
			out.Spots[i].AQI = aqi
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// HydrateGuides gives each guide a generated avatar. No network is used.
func (e *Enricher) HydrateGuides(_ context.Context, guides []types.Guide) []types.Guide {
	out := slices.Clone(guides)
	for i := range out {
		out[i].Image = AvatarImage(out[i].Name)
	}
	return out
}

// HydrateRoute replaces each stop's AQI with a live reading where possible
// and attaches coordinates. With a RouteEstimator configured, the overall
// distance and duration are replaced by measured values.
func (e *Enricher) HydrateRoute(ctx context.Context, route types.RideRoute) types.RideRoute {
	ctx, span := otel.Tracer("Enrichment").Start(ctx, "HydrateRoute", trace.WithAttributes(
		attribute.String("origin", route.Origin),
		attribute.String("destination", route.Destination),
		attribute.Int("entities", len(route.Stops))))
	defer span.End()

	out := route
	out.Stops = slices.Clone(route.Stops)

	g := e.group()
	for i := range out.Stops {
		stop := out.Stops[i]
		g.Go(func() error {
			aqi, coords := e.liveAQIOr(ctx, stop.Name, stop.AQI)
			out.Stops[i].AQI = aqi
			out.Stops[i].Coordinates = coords
			return nil
		})
	}
	if e.routes != nil {
		g.Go(func() error {
			rctx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()
			est, err := e.routes.Estimate(rctx, route.Origin, route.Destination, maps.TravelModeDriving)
			e.count(ctx, "directions", err)
			if err != nil {
				e.logger.DebugContext(ctx, "Keeping estimated route totals",
					slog.Any("error", &types.EnrichmentLookupError{Lookup: "directions", Query: route.Origin + " -> " + route.Destination, Err: err}))
				return nil
			}
			out.Distance = est.Distance
			out.Duration = est.Duration
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (e *Enricher) group() *errgroup.Group {
	g := &errgroup.Group{}
	g.SetLimit(maxConcurrentLookups)
	return g
}

func (e *Enricher) count(ctx context.Context, lookup string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	e.metrics.EnrichmentLookupsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("lookup", lookup),
		attribute.String("outcome", outcome)))
}
