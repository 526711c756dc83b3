package enrichment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

var errNoAQI = errors.New("no current us_aqi value")

// AQILabel returns the US AQI category for n.
func AQILabel(n float64) string {
	switch {
	case n > 300:
		return "Hazardous"
	case n > 200:
		return "Very Unhealthy"
	case n > 150:
		return "Unhealthy"
	case n > 100:
		return "Unhealthy for Sensitive Groups"
	case n > 50:
		return "Moderate"
	default:
		return "Good"
	}
}

// FormatAQI renders "AQI <n> (<label>)".
func FormatAQI(n float64) string {
	return fmt.Sprintf("AQI %s (%s)", strconv.FormatFloat(n, 'f', -1, 64), AQILabel(n))
}

type AirQualityClient struct {
	baseURL string
	client  *http.Client
}

func NewAirQualityClient(baseURL string, client *http.Client) *AirQualityClient {
	if baseURL == "" {
		baseURL = DefaultAirQualityURL
	}
	return &AirQualityClient{baseURL: baseURL, client: client}
}

// Current returns the current US AQI at p.
func (c *AirQualityClient) Current(ctx context.Context, p types.LatLng) (float64, error) {
	var out struct {
		Current *struct {
			USAQI *float64 `json:"us_aqi"`
		} `json:"current"`
	}
	err := getJSON(ctx, c.client, c.baseURL, url.Values{
		"latitude":  {strconv.FormatFloat(p.Lat, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(p.Lng, 'f', -1, 64)},
		"current":   {"us_aqi"},
	}, &out)
	if err != nil {
		return 0, err
	}
	if out.Current == nil || out.Current.USAQI == nil {
		return 0, errNoAQI
	}
	return *out.Current.USAQI, nil
}
