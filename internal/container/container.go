package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-travel-ai-planner/app/db"
	"github.com/FACorreiaa/go-travel-ai-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-ai-planner/config"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/cache"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/enrichment"
	generativeAI "github.com/FACorreiaa/go-travel-ai-planner/internal/api/generative_ai"
	llmInteraction "github.com/FACorreiaa/go-travel-ai-planner/internal/api/llm_interaction"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/notify"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/api/travel"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *slog.Logger
	Pool            *pgxpool.Pool
	DefaultProvider types.ProviderID
	CredentialsPath string

	Cache         *cache.Cache
	PostgresCache *cache.PostgresStore
	Inbox         *notify.Inbox
	Orchestrator  *llmInteraction.Orchestrator
	Enricher      *enrichment.Enricher
	TravelService travel.Service

	TravelHandler       *travel.TravelHandler
	NotificationHandler *notify.NotificationHandler

	closers []func() error
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	defaultProvider, err := types.ParseProvider(cfg.Providers.Default, types.ProviderGemini)
	if err != nil {
		return nil, fmt.Errorf("providers.default: %w", err)
	}
	c.DefaultProvider = defaultProvider

	metrics.InitAppMetrics()
	m := metrics.Get()

	store, err := c.openStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Cache = cache.New(store, logger,
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithPrefix(cfg.Cache.Prefix),
		cache.WithMetrics(m),
	)
	logger.Info("Response cache ready", slog.String("cache", c.Cache.String()))

	c.CredentialsPath = cfg.Providers.CredentialsFile
	if c.CredentialsPath == "" {
		c.CredentialsPath = generativeAI.DefaultCredentialsPath()
	}
	creds, err := generativeAI.ResolveCredentials(c.CredentialsPath, os.Getenv)
	if err != nil {
		c.Close()
		return nil, err
	}
	registry := generativeAI.NewDefaultRegistry(ctx, creds, map[types.ProviderID]generativeAI.AdapterConfig{
		types.ProviderGemini: adapterConfig(cfg, cfg.Providers.Gemini),
		types.ProviderOpenAI: adapterConfig(cfg, cfg.Providers.OpenAI),
		types.ProviderGrok:   adapterConfig(cfg, cfg.Providers.Grok),
	}, logger)

	c.Inbox = notify.NewInbox(notify.DefaultInboxSize)
	notifiers := notify.Multi{notify.NewLogNotifier(logger), c.Inbox}
	var history notify.HistorySource
	if c.Pool != nil {
		h := notify.NewPostgresHistory(c.Pool, logger)
		notifiers = append(notifiers, h)
		history = h
	}

	c.Orchestrator = llmInteraction.NewOrchestrator(registry, c.Cache, notifiers, logger,
		llmInteraction.WithRetryPolicy(llmInteraction.RetryPolicy{
			MaxAttempts:  cfg.Providers.Retry.MaxAttempts,
			InitialDelay: cfg.Providers.Retry.InitialDelay,
		}),
		llmInteraction.WithMetrics(m),
	)

	c.Enricher, err = newEnricher(ctx, cfg, logger, m)
	if err != nil {
		c.Close()
		return nil, err
	}

	svc := travel.NewServiceImpl(c.Orchestrator, c.Enricher, logger)
	c.TravelService = svc
	c.TravelHandler = travel.NewTravelHandler(svc, defaultProvider, logger)
	c.NotificationHandler = notify.NewNotificationHandler(c.Inbox, history, logger)
	return c, nil
}

func adapterConfig(cfg *config.Config, p config.ProviderConfig) generativeAI.AdapterConfig {
	return generativeAI.AdapterConfig{
		Model:          p.Model,
		BaseURL:        p.BaseURL,
		RequestTimeout: cfg.Providers.RequestTimeout,
	}
}

func (c *Container) openStore(ctx context.Context) (cache.Store, error) {
	cfg := c.Config
	switch cfg.Cache.Backend {
	case "", BackendMemory:
		return cache.NewMemoryStore(10 * time.Minute), nil

	case BackendRedis:
		store, client, err := cache.DialRedis(ctx, cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		return store, nil

	case BackendSQLite:
		store, err := cache.OpenSQLiteStore(cfg.Cache.SQLite.Path)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, store.Close)
		return store, nil

	case BackendPostgres:
		if err := c.openPostgres(ctx); err != nil {
			return nil, err
		}
		c.PostgresCache = cache.NewPostgresStore(c.Pool)
		return c.PostgresCache, nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func (c *Container) openPostgres(ctx context.Context) error {
	dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
	if err != nil {
		c.Logger.Error("Failed to generate database config", slog.Any("error", err))
		return err
	}

	// Run migrations *before* initializing the main pool
	if err := database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
		c.Logger.Error("Failed to run database migrations", slog.Any("error", err))
		return err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, c.Logger)
	if err != nil {
		c.Logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return err
	}
	c.Pool = pool

	if !database.WaitForDB(ctx, pool, c.Logger) {
		return errors.New("database not ready after waiting")
	}
	return nil
}

func newEnricher(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.AppMetrics) (*enrichment.Enricher, error) {
	e := cfg.Enrichment
	client := enrichment.NewHTTPClient(e.LookupTimeout)

	images, err := enrichment.NewImageService(ctx, enrichment.ImageConfig{
		GoogleSearchKey:      e.GoogleSearchKey,
		GoogleCX:             e.GoogleCX,
		CustomSearchEndpoint: e.CustomSearchURL,
		WikipediaURL:         e.WikipediaURL,
		MemoTTL:              e.ImageMemoTTL,
	}, client, logger, m)
	if err != nil {
		return nil, err
	}

	opts := []enrichment.EnricherOption{
		enrichment.WithLookupTimeout(e.LookupTimeout),
		enrichment.WithMetrics(m),
	}

	var geocoder enrichment.Geocoder = enrichment.NewOpenMeteoGeocoder(e.GeocodingURL, client)
	if e.GoogleMapsAPIKey != "" {
		g, err := enrichment.NewGoogleMapsGeocoder(e.GoogleMapsAPIKey, "", client)
		if err != nil {
			return nil, err
		}
		geocoder = g

		directions, err := enrichment.NewGoogleDirections(e.GoogleMapsAPIKey, "", client)
		if err != nil {
			return nil, err
		}
		opts = append(opts, enrichment.WithRouteEstimator(directions))
		logger.Info("Google Maps geocoding and directions enabled")
	}

	air := enrichment.NewAirQualityClient(e.AirQualityURL, client)
	return enrichment.NewEnricher(images, geocoder, air, logger, opts...), nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("Failed to close resource", slog.Any("error", err))
		}
	}
	c.closers = nil
	if c.Pool != nil {
		c.Pool.Close()
		c.Pool = nil
	}
}
