package enrichment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"googlemaps.github.io/maps"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

var errNoGeocode = errors.New("no geocoding result")

// Geocoder resolves a free-text place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (types.LatLng, error)
}

var (
	_ Geocoder = (*OpenMeteoGeocoder)(nil)
	_ Geocoder = (*GoogleMapsGeocoder)(nil)
)

type OpenMeteoGeocoder struct {
	baseURL string
	client  *http.Client
}

func NewOpenMeteoGeocoder(baseURL string, client *http.Client) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{baseURL: baseURL, client: client}
}

func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, query string) (types.LatLng, error) {
	var out struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	err := getJSON(ctx, g.client, g.baseURL, url.Values{
		"name":     {query},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	}, &out)
	if err != nil {
		return types.LatLng{}, err
	}
	if len(out.Results) == 0 {
		return types.LatLng{}, errNoGeocode
	}
	return types.LatLng{Lat: out.Results[0].Latitude, Lng: out.Results[0].Longitude}, nil
}

// GoogleMapsGeocoder is used instead of Open-Meteo when a Maps key is set.
type GoogleMapsGeocoder struct {
	client *maps.Client
}

func NewGoogleMapsGeocoder(apiKey, baseURL string, httpClient *http.Client) (*GoogleMapsGeocoder, error) {
	client, err := newMapsClient(apiKey, baseURL, httpClient)
	if err != nil {
		return nil, err
	}
	return &GoogleMapsGeocoder{client: client}, nil
}

func newMapsClient(apiKey, baseURL string, httpClient *http.Client) (*maps.Client, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, maps.WithHTTPClient(httpClient))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, query string) (types.LatLng, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query, Language: "en"})
	if err != nil {
		return types.LatLng{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return types.LatLng{}, errNoGeocode
	}
	loc := results[0].Geometry.Location
	return types.LatLng{Lat: loc.Lat, Lng: loc.Lng}, nil
}
