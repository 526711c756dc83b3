package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	appLogger "github.com/FACorreiaa/go-travel-ai-planner/app/logger"
	"github.com/FACorreiaa/go-travel-ai-planner/app/tracer"
	"github.com/FACorreiaa/go-travel-ai-planner/config"
	_ "github.com/FACorreiaa/go-travel-ai-planner/docs"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/container"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/router"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wanderwise",
		Short:         "AI travel planner backed by Gemini, OpenAI or Grok",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&providerFlag, "provider", "p", "", "LLM provider (gemini, openai, grok); defaults to providers.default")

	root.AddCommand(
		newServeCmd(),
		newCountriesCmd(),
		newStatesCmd(),
		newCitiesCmd(),
		newCityCmd(),
		newItineraryCmd(),
		newGuidesCmd(),
		newRideCmd(),
		newKeysCmd(),
		newCacheCmd(),
	)
	return root
}

// bootstrap loads .env and config and installs the default logger.
func bootstrap(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("Warning: error loading .env file:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing config: %w", err)
	}

	logger := setupLogger(logOut, cfg.Mode)
	slog.SetDefault(logger)
	return &cfg, logger, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(os.Stdout)
			if err != nil {
				return err
			}

			// --- Application Context & Shutdown ---
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			// Providers must be installed before the container creates its instruments
			var metricsAddr string
			if cfg.Observability.MetricsPort != "" {
				metricsAddr = ":" + cfg.Observability.MetricsPort
			}
			shutdownTelemetry, err := tracer.InitTracingAndMetrics(ctx, tracer.Options{
				MetricsAddr:   metricsAddr,
				StdoutTracing: cfg.Observability.StdoutTracing,
			}, logger)
			if err != nil {
				return err
			}

			c, err := container.NewContainer(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			mainRouter := router.SetupRouter(&router.Config{
				TravelHandler:       c.TravelHandler,
				NotificationHandler: c.NotificationHandler,
				DefaultProvider:     c.DefaultProvider,
				AllowedOrigins:      cfg.Server.AllowedOrigins,
			})

			requestTimeout := cfg.Server.Timeout
			if requestTimeout <= 0 {
				requestTimeout = 60 * time.Second
			}

			mux := chi.NewMux()
			mux.Use(middleware.RequestID)
			mux.Use(middleware.RealIP)
			mux.Use(appLogger.StructuredLogger(logger, 10*time.Second))
			mux.Use(middleware.Recoverer)
			mux.Use(middleware.StripSlashes)
			mux.Use(middleware.Timeout(requestTimeout))
			mux.Use(middleware.Compress(5, "application/json"))
			mux.Mount("/", mainRouter)

			// --- HTTP Server Setup ---
			serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
			srv := &http.Server{
				Addr:         serverAddress,
				Handler:      otelhttp.NewHandler(mux, "wanderwise"),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: requestTimeout + 5*time.Second,
				IdleTimeout:  120 * time.Second,
				ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
			}

			go func() {
				logger.Info("Starting HTTP server", slog.String("address", serverAddress), slog.String("default_provider", c.DefaultProvider.String()))
				err := srv.ListenAndServe()
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
					cancel() // Trigger shutdown if server fails unexpectedly
				}
			}()

			<-ctx.Done()
			logger.Info("Shutdown signal received, starting graceful shutdown...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
			} else {
				logger.Info("HTTP server gracefully stopped")
			}
			if err := shutdownTelemetry(shutdownCtx); err != nil {
				logger.Warn("Telemetry shutdown failed", slog.Any("error", err))
			}

			logger.Info("Application shut down complete.")
			return nil
		},
	}
}

// setupLogger configures and returns the application logger.
func setupLogger(w io.Writer, mode string) *slog.Logger {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = mode
	}

	if env == "development" || env == "" { // Default to development if not set
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
