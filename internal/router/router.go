package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/FACorreiaa/go-travel-ai-planner/app/middleware"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/notify"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/travel"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

// Config contains dependencies needed for the router setup
type Config struct {
	TravelHandler       *travel.TravelHandler
	NotificationHandler *notify.NotificationHandler
	DefaultProvider     types.ProviderID
	AllowedOrigins      []string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", appMiddleware.ProviderHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/notifications", cfg.NotificationHandler.Drain)
		r.Get("/notifications/history", cfg.NotificationHandler.History)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.SelectProvider(cfg.DefaultProvider))

			r.Get("/countries", cfg.TravelHandler.ListCountries)
			r.Get("/countries/{country}/states", cfg.TravelHandler.ListStates)
			r.Get("/countries/{country}/states/{state}/cities", cfg.TravelHandler.ListTopCities)
			r.Get("/cities/{city}", cfg.TravelHandler.GetDetailedCity)
			r.Get("/cities/{city}/guides", cfg.TravelHandler.GenerateGuides)
			r.Post("/itineraries", cfg.TravelHandler.GenerateItinerary)
			r.Post("/rides", cfg.TravelHandler.PlanRide)
		})
	})

	return r
}
