// Package travel holds the domain queries: each builds a prompt, fetches a
// validated structure through the orchestrator and hydrates it.
package travel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	llmInteraction "github.com/FACorreiaa/go-travel-ai-planner/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/shape"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const dateLayout = "2006-01-02"

// Hydrator is implemented by enrichment.Enricher.
type Hydrator interface {
	HydrateTopCities(ctx context.Context, cities []types.CityInfo) []types.CityInfo
	HydrateCity(ctx context.Context, city types.City) types.City
	HydrateGuides(ctx context.Context, guides []types.Guide) []types.Guide
	HydrateRoute(ctx context.Context, route types.RideRoute) types.RideRoute
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	ListCountries(ctx context.Context, provider types.ProviderID) ([]types.Country, error)
	ListStates(ctx context.Context, country string, provider types.ProviderID) ([]types.State, error)
	ListTopCities(ctx context.Context, state, country string, provider types.ProviderID) ([]types.CityInfo, error)
	GetDetailedCity(ctx context.Context, city string, provider types.ProviderID) (*types.City, error)
	GenerateItinerary(ctx context.Context, req types.ItineraryRequest, provider types.ProviderID) (*types.Itinerary, error)
	GenerateGuides(ctx context.Context, city string, provider types.ProviderID) ([]types.Guide, error)
	PlanRide(ctx context.Context, req types.RideRequest, provider types.ProviderID) (*types.RideRoute, error)
}

type ServiceImpl struct {
	orchestrator *llmInteraction.Orchestrator
	hydrator     Hydrator
	logger       *slog.Logger
	now          func() time.Time
}

func NewServiceImpl(orchestrator *llmInteraction.Orchestrator, hydrator Hydrator, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		orchestrator: orchestrator,
		hydrator:     hydrator,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ServiceImpl) ListCountries(ctx context.Context, provider types.ProviderID) ([]types.Country, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "ListCountries", trace.WithAttributes(
		attribute.String("llm.provider", provider.String())))
	defer span.End()

	out, err := llmInteraction.FetchStructured[[]types.Country](ctx, s.orchestrator, types.RequestDescriptor{
		Prompt: countriesPrompt, Provider: provider, Shape: shape.Countries,
	})
	if err != nil {
		return nil, spanError(span, err)
	}
	span.SetStatus(codes.Ok, "")
	return *out, nil
}

func (s *ServiceImpl) ListStates(ctx context.Context, country string, provider types.ProviderID) ([]types.State, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "ListStates", trace.WithAttributes(
		attribute.String("llm.provider", provider.String()),
		attribute.String("country", country)))
	defer span.End()

	country, err := required("country", country)
	if err != nil {
		return nil, spanError(span, err)
	}
	out, err := llmInteraction.FetchStructured[[]types.State](ctx, s.orchestrator, types.RequestDescriptor{
		Prompt: statesPrompt(country), Provider: provider, Shape: shape.States,
	})
	if err != nil {
		return nil, spanError(span, err)
	}
	span.SetStatus(codes.Ok, "")
	return *out, nil
}

func (s *ServiceImpl) ListTopCities(ctx context.Context, state, country string, provider types.ProviderID) ([]types.CityInfo, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "ListTopCities", trace.WithAttributes(
		attribute.String("llm.provider", provider.String()),
		attribute.String("state", state),
		attribute.String("country", country)))
	defer span.End()

	state, err := required("state", state)
	if err != nil {
		return nil, spanError(span, err)
	}
	country, err = required("country", country)
	if err != nil {
		return nil, spanError(span, err)
	}
	out, err := llmInteraction.FetchStructured[[]types.CityInfo](ctx, s.orchestrator, types.RequestDescriptor{
		Prompt: topCitiesPrompt(state, country), Provider: provider, Shape: shape.Cities,
	})
	if err != nil {
		return nil, spanError(span, err)
	}
	span.SetStatus(codes.Ok, "")
	return s.hydrator.HydrateTopCities(ctx, *out), nil
}

func (s *ServiceImpl) GetDetailedCity(ctx context.Context, city string, provider types.ProviderID) (*types.City, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "GetDetailedCity", trace.WithAttributes(
		attribute.String("llm.provider", provider.String()),
		attribute.String("city", city)))
	defer span.End()

	city, err := required("city", city)
	if err != nil {
		return nil, spanError(span, err)
	}
	out, err := llmInteraction.FetchStructured[types.City](ctx, s.orchestrator, types.RequestDescriptor{
		Prompt: cityPrompt(city), Provider: provider, Shape: shape.DetailedCity,
	})
	if err != nil {
		return nil, spanError(span, err)
	}
	hydrated := s.hydrator.HydrateCity(ctx, *out)
	span.SetStatus(codes.Ok, "")
	return &hydrated, nil
}

// GenerateItinerary plans req.Days days in req.City. The result is not
// hydrated. An empty StartDate means today.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.ItineraryRequest, provider types.ProviderID) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("llm.provider", provider.String()),
		attribute.String("city", req.City),
		attribute.Int("days", req.Days)))
	defer span.End()

	var err error
	if req.City, err = required("city", req.City); err != nil {
		return nil, spanError(span, err)
	}
	if req.Days < 1 {
		return nil, spanError(span, fmt.Errorf("%w: days must be at least 1", types.ErrInvalidInput))
	}
	if req.StartDate == "" {
		req.StartDate = s.now().Format(dateLayout)
	} else if _, perr := time.Parse(dateLayout, req.StartDate); perr != nil {
		return nil, spanError(span, fmt.Errorf("%w: startDate must be YYYY-MM-DD", types.ErrInvalidInput))
	}

	out, err := llmInteraction.FetchStructured[types.Itinerary](ctx, s.orchestrator, types.RequestDescriptor{
		Prompt: itineraryPrompt(req), Provider: provider, Shape: shape.Itinerary,
	})
	if err != nil {
		return nil, spanError(span, err)
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}

func (s *ServiceImpl) GenerateGuides(ctx context.Context, city string, provider types.ProviderID) ([]types.Guide, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "GenerateGuides", trace.WithAttributes(
		attribute.String("llm.provider", provider.String()),
		attribute.String("city", city)))
	defer span.End()

	city, err := required("city", city)
	if err != nil {
		return nil, spanError(span, err)
	}
	out, err := llmInteraction.FetchStructured[[]types.Guide](ctx, s.orchestrator, types.RequestDescriptor{
		Prompt: guidesPrompt(city), Provider: provider, Shape: shape.Guides,
	})
	if err != nil {
		return nil, spanError(span, err)
	}
	span.SetStatus(codes.Ok, "")
	return s.hydrator.HydrateGuides(ctx, *out), nil
}

func (s *ServiceImpl) PlanRide(ctx context.Context, req types.RideRequest, provider types.ProviderID) (*types.RideRoute, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "PlanRide", trace.WithAttributes(
		attribute.String("llm.provider", provider.String()),
		attribute.String("origin", req.Origin),
		attribute.String("destination", req.Destination),
		attribute.String("vehicle", string(req.VehicleType))))
	defer span.End()

	var err error
	if req.Origin, err = required("origin", req.Origin); err != nil {
		return nil, spanError(span, err)
	}
	if req.Destination, err = required("destination", req.Destination); err != nil {
		return nil, spanError(span, err)
	}
	if !req.VehicleType.Valid() {
		return nil, spanError(span, fmt.Errorf("%w: vehicleType must be bike or car", types.ErrInvalidInput))
	}
	if req.StopIntervalKm <= 0 {
		return nil, spanError(span, fmt.Errorf("%w: stopIntervalKm must be positive", types.ErrInvalidInput))
	}

	out, err := llmInteraction.FetchStructured[types.RideRoute](ctx, s.orchestrator, types.RequestDescriptor{
		Prompt: ridePrompt(req), Provider: provider, Shape: shape.RideRoute,
	})
	if err != nil {
		return nil, spanError(span, err)
	}
	hydrated := s.hydrator.HydrateRoute(ctx, *out)
	span.SetStatus(codes.Ok, "")
	return &hydrated, nil
}

func required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", types.ErrInvalidInput, field)
	}
	return v, nil
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
