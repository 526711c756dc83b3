package travel

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/FACorreiaa/go-travel-ai-planner/app/middleware"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

type TravelHandler struct {
	service         Service
	defaultProvider types.ProviderID
	logger          *slog.Logger
}

func NewTravelHandler(service Service, defaultProvider types.ProviderID, logger *slog.Logger) *TravelHandler {
	return &TravelHandler{
		service:         service,
		defaultProvider: defaultProvider,
		logger:          logger,
	}
}

func (h *TravelHandler) provider(r *http.Request) types.ProviderID {
	if p, ok := appMiddleware.GetProviderFromContext(r.Context()); ok {
		return p
	}
	return h.defaultProvider
}

func (h *TravelHandler) fail(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	status, msg := api.StatusFromError(err)
	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "Travel query failed", slog.Any("error", err), slog.Int("status", status))
	} else {
		l.WarnContext(r.Context(), "Travel query rejected", slog.Any("error", err), slog.Int("status", status))
	}
	api.ErrorResponse(w, r, status, msg)
}

// ListCountries godoc
// @Summary      List countries
// @Description  Every country with its ISO 3166-1 alpha-2 code, sorted by name.
// @Tags         Travel
// @Produce      json
// @Param        provider query string false "LLM provider (gemini, openai, grok)"
// @Success      200 {array}  types.Country
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      502 {object} types.Response "Provider Error"
// @Router       /countries [get]
func (h *TravelHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "ListCountries", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/countries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ListCountries"))
	l.DebugContext(ctx, "List countries handler invoked")

	countries, err := h.service.ListCountries(ctx, h.provider(r))
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, countries)
}

// ListStates godoc
// @Summary      List states
// @Description  Major states, provinces or regions of a country, sorted alphabetically.
// @Tags         Travel
// @Produce      json
// @Param        country path string true "Country name"
// @Param        provider query string false "LLM provider (gemini, openai, grok)"
// @Success      200 {array}  types.State
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      502 {object} types.Response "Provider Error"
// @Router       /countries/{country}/states [get]
func (h *TravelHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "ListStates", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/countries/{country}/states"),
	))
	defer span.End()

	country := chi.URLParam(r, "country")
	l := h.logger.With(slog.String("handler", "ListStates"), slog.String("country", country))

	states, err := h.service.ListStates(ctx, country, h.provider(r))
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, states)
}

// ListTopCities godoc
// @Summary      Top tourist cities
// @Description  The ten most popular tourist cities of a state, with images and live AQI where available.
// @Tags         Travel
// @Produce      json
// @Param        country path string true "Country name"
// @Param        state path string true "State name"
// @Param        provider query string false "LLM provider (gemini, openai, grok)"
// @Success      200 {array}  types.CityInfo
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      502 {object} types.Response "Provider Error"
// @Router       /countries/{country}/states/{state}/cities [get]
func (h *TravelHandler) ListTopCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "ListTopCities", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/countries/{country}/states/{state}/cities"),
	))
	defer span.End()

	country, state := chi.URLParam(r, "country"), chi.URLParam(r, "state")
	l := h.logger.With(slog.String("handler", "ListTopCities"), slog.String("country", country), slog.String("state", state))

	cities, err := h.service.ListTopCities(ctx, state, country, h.provider(r))
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, cities)
}

// GetDetailedCity godoc
// @Summary      City details
// @Description  A city with its six most famous tourist spots.
// @Tags         Travel
// @Produce      json
// @Param        city path string true "City name"
// @Param        provider query string false "LLM provider (gemini, openai, grok)"
// @Success      200 {object} types.City
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      502 {object} types.Response "Provider Error"
// @Router       /cities/{city} [get]
func (h *TravelHandler) GetDetailedCity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "GetDetailedCity", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/cities/{city}"),
	))
	defer span.End()

	city := chi.URLParam(r, "city")
	l := h.logger.With(slog.String("handler", "GetDetailedCity"), slog.String("city", city))

	detailed, err := h.service.GetDetailedCity(ctx, city, h.provider(r))
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, detailed)
}

// GenerateGuides godoc
// @Summary      Tour guides
// @Description  Three fictional tour guides for hire in a city.
// @Tags         Travel
// @Produce      json
// @Param        city path string true "City name"
// @Param        provider query string false "LLM provider (gemini, openai, grok)"
// @Success      200 {array}  types.Guide
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      502 {object} types.Response "Provider Error"
// @Router       /cities/{city}/guides [get]
func (h *TravelHandler) GenerateGuides(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "GenerateGuides", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/cities/{city}/guides"),
	))
	defer span.End()

	city := chi.URLParam(r, "city")
	l := h.logger.With(slog.String("handler", "GenerateGuides"), slog.String("city", city))

	guides, err := h.service.GenerateGuides(ctx, city, h.provider(r))
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, guides)
}

// GenerateItinerary godoc
// @Summary      Generate itinerary
// @Description  A day by day plan for a city including the must-visit spots.
// @Tags         Travel
// @Accept       json
// @Produce      json
// @Param        request body types.ItineraryRequest true "Itinerary request"
// @Param        provider query string false "LLM provider (gemini, openai, grok)"
// @Success      200 {object} types.Itinerary
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      502 {object} types.Response "Provider Error"
// @Router       /itineraries [post]
func (h *TravelHandler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itineraries"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	var req types.ItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	l = l.With(slog.String("city", req.City), slog.Int("days", req.Days))

	itinerary, err := h.service.GenerateItinerary(ctx, req, h.provider(r))
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	l.InfoContext(ctx, "Itinerary generated", slog.Int("planned_days", len(itinerary.DailyPlans)))
	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

// PlanRide godoc
// @Summary      Plan a road trip
// @Description  Sequential stops between origin and destination for a bike or car.
// @Tags         Travel
// @Accept       json
// @Produce      json
// @Param        request body types.RideRequest true "Ride request"
// @Param        provider query string false "LLM provider (gemini, openai, grok)"
// @Success      200 {object} types.RideRoute
// @Failure      400 {object} types.Response "Invalid Input"
// @Failure      502 {object} types.Response "Provider Error"
// @Router       /rides [post]
func (h *TravelHandler) PlanRide(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "PlanRide", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/rides"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PlanRide"))

	var req types.RideRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.VehicleType = types.VehicleType(strings.ToLower(string(req.VehicleType)))
	l = l.With(slog.String("origin", req.Origin), slog.String("destination", req.Destination))

	route, err := h.service.PlanRide(ctx, req, h.provider(r))
	if err != nil {
		h.fail(w, r, l, err)
		return
	}
	l.InfoContext(ctx, "Ride planned", slog.Int("stops", len(route.Stops)))
	api.WriteJSONResponse(w, r, http.StatusOK, route)
}
