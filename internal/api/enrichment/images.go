package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/FACorreiaa/go-travel-ai-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const (
	DefaultWikipediaURL = "https://en.wikipedia.org/w/api.php"
	placeholderBase     = "https://placehold.co/600x400/1e293b/cbd5e1?text="
	avatarBase          = "https://ui-avatars.com/api/?name="
)

var errNoImage = errors.New("no image found")

// PlaceholderImage is the deterministic fallback; it echoes the query.
func PlaceholderImage(query string) string {
	return placeholderBase + escapeComponent(query)
}

// AvatarImage is a generated portrait for a guide name.
func AvatarImage(name string) string {
	return avatarBase + escapeComponent(name) + "&background=random&size=256"
}

type ImageConfig struct {
	GoogleSearchKey string
	GoogleCX        string
	// CustomSearchEndpoint overrides the Google endpoint, used in tests.
	CustomSearchEndpoint string
	WikipediaURL         string
	MemoTTL              time.Duration
}

// ImageService finds one representative image URL per query. Successful
// lookups are memoized for the life of the process; fallbacks are not.
type ImageService struct {
	memo    *gocache.Cache
	search  *customsearch.Service
	cx      string
	wikiURL string
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewImageService(ctx context.Context, cfg ImageConfig, client *http.Client, logger *slog.Logger, m *metrics.AppMetrics) (*ImageService, error) {
	if m == nil {
		m = metrics.Noop()
	}
	if cfg.WikipediaURL == "" {
		cfg.WikipediaURL = DefaultWikipediaURL
	}
	memoTTL := cfg.MemoTTL
	if memoTTL <= 0 {
		memoTTL = gocache.NoExpiration
	}
	s := &ImageService{
		memo:    gocache.New(memoTTL, 10*time.Minute),
		cx:      cfg.GoogleCX,
		wikiURL: cfg.WikipediaURL,
		client:  client,
		logger:  logger,
		metrics: m,
	}

	if cfg.GoogleSearchKey != "" && cfg.GoogleCX != "" {
		opts := []option.ClientOption{option.WithAPIKey(cfg.GoogleSearchKey)}
		if cfg.CustomSearchEndpoint != "" {
			opts = append(opts, option.WithEndpoint(cfg.CustomSearchEndpoint))
		}
		svc, err := customsearch.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create custom search client: %w", err)
		}
		s.search = svc
	}
	return s, nil
}

// Lookup never fails: memo, Google image search, Wikipedia, placeholder.
func (s *ImageService) Lookup(ctx context.Context, query string) string {
	if v, ok := s.memo.Get(query); ok {
		return v.(string)
	}

	if s.search != nil {
		link, err := s.googleImage(ctx, query)
		s.count(ctx, "google_image", err)
		if err == nil {
			s.memo.Set(query, link, gocache.DefaultExpiration)
			return link
		}
		s.logger.DebugContext(ctx, "Google image search failed",
			slog.Any("error", &types.EnrichmentLookupError{Lookup: "image", Query: query, Err: err}))
	}

	link, err := s.wikiImage(ctx, query)
	s.count(ctx, "wikipedia_image", err)
	if err == nil {
		s.memo.Set(query, link, gocache.DefaultExpiration)
		return link
	}
	s.logger.DebugContext(ctx, "Wikipedia image search failed",
		slog.Any("error", &types.EnrichmentLookupError{Lookup: "image", Query: query, Err: err}))

	return PlaceholderImage(query)
}

func (s *ImageService) googleImage(ctx context.Context, query string) (string, error) {
	res, err := s.search.Cse.List().
		Cx(s.cx).
		Q(query).
		SearchType("image").
		Num(1).
		ImgSize("large").
		Safe("active").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(res.Items) == 0 || res.Items[0].Link == "" {
		return "", errNoImage
	}
	return res.Items[0].Link, nil
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiPagesResponse struct {
	Query struct {
		Pages map[string]struct {
			Thumbnail *struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}

func (s *ImageService) wikiImage(ctx context.Context, query string) (string, error) {
	var search wikiSearchResponse
	err := getJSON(ctx, s.client, s.wikiURL, url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"format":   {"json"},
		"origin":   {"*"},
		"srlimit":  {"1"},
	}, &search)
	if err != nil {
		return "", err
	}
	if len(search.Query.Search) == 0 {
		return "", errNoImage
	}

	var pages wikiPagesResponse
	err = getJSON(ctx, s.client, s.wikiURL, url.Values{
		"action":      {"query"},
		"titles":      {search.Query.Search[0].Title},
		"prop":        {"pageimages"},
		"format":      {"json"},
		"pithumbsize": {"1000"},
		"origin":      {"*"},
	}, &pages)
	if err != nil {
		return "", err
	}
	for _, p := range pages.Query.Pages {
		if p.Thumbnail != nil && p.Thumbnail.Source != "" {
			return p.Thumbnail.Source, nil
		}
	}
	return "", errNoImage
}

func (s *ImageService) count(ctx context.Context, lookup string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	s.metrics.EnrichmentLookupsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("lookup", lookup),
		attribute.String("outcome", outcome)))
}
