package enrichment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"googlemaps.github.io/maps"
)

// RouteEstimate is a measured driving distance and duration.
type RouteEstimate struct {
	Distance string
	Duration string
}

// RouteEstimator replaces model-estimated ride totals with measured ones.
type RouteEstimator interface {
	Estimate(ctx context.Context, origin, destination string, mode maps.Mode) (RouteEstimate, error)
}

var _ RouteEstimator = (*GoogleDirections)(nil)

type GoogleDirections struct {
	client *maps.Client
}

func NewGoogleDirections(apiKey, baseURL string, httpClient *http.Client) (*GoogleDirections, error) {
	client, err := newMapsClient(apiKey, baseURL, httpClient)
	if err != nil {
		return nil, err
	}
	return &GoogleDirections{client: client}, nil
}

func (d *GoogleDirections) Estimate(ctx context.Context, origin, destination string, mode maps.Mode) (RouteEstimate, error) {
	routes, _, err := d.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
		Language:    "en",
	})
	if err != nil {
		return RouteEstimate{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return RouteEstimate{}, errors.New("no route found")
	}

	var meters int
	var total time.Duration
	for _, leg := range routes[0].Legs {
		meters += leg.Distance.Meters
		total += leg.Duration
	}
	return RouteEstimate{
		Distance: fmt.Sprintf("%.0f km", float64(meters)/1000),
		Duration: formatDuration(total),
	}, nil
}

func formatDuration(d time.Duration) string {
	mins := int(d.Round(time.Minute).Minutes())
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return plural(m, "min")
	case m == 0:
		return plural(h, "hour")
	default:
		return plural(h, "hour") + " " + plural(m, "min")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
