package enrichment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

type fakeImages struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeImages) Lookup(_ context.Context, query string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return "img:" + query
}

type fakeGeocoder struct {
	known map[string]types.LatLng
	block bool
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (types.LatLng, error) {
	if f.block {
		<-ctx.Done()
		return types.LatLng{}, ctx.Err()
	}
	p, ok := f.known[query]
	if !ok {
		return types.LatLng{}, errNoGeocode
	}
	return p, nil
}

type fakeAir struct {
	values map[types.LatLng]float64
}

func (f *fakeAir) Current(_ context.Context, p types.LatLng) (float64, error) {
	v, ok := f.values[p]
	if !ok {
		return 0, errNoAQI
	}
	return v, nil
}

type fakeDirections struct {
	est RouteEstimate
	err error
}

func (f *fakeDirections) Estimate(context.Context, string, string, maps.Mode) (RouteEstimate, error) {
	return f.est, f.err
}

var (
	hawaMahal = types.LatLng{Lat: 26.9239, Lng: 75.8267}
	amberFort = types.LatLng{Lat: 26.9855, Lng: 75.8513}
	neemrana  = types.LatLng{Lat: 27.9886, Lng: 76.3860}
)

func setupEnricherTest(opts ...EnricherOption) (*Enricher, *fakeImages) {
	images := &fakeImages{}
	geo := &fakeGeocoder{known: map[string]types.LatLng{
		"Hawa Mahal, Jaipur, India": hawaMahal,
		"Amber Fort, Jaipur, India": amberFort,
		"Neemrana":                  neemrana,
	}}
	air := &fakeAir{values: map[types.LatLng]float64{hawaMahal: 142, neemrana: 48}}
	return NewEnricher(images, geo, air, testLogger, opts...), images
}

func TestHydrateTopCities(t *testing.T) {
	e, images := setupEnricherTest()
	in := []types.CityInfo{
		{Name: "Jaipur", Country: "India"},
		{Name: "Udaipur", Country: "India"},
	}
	out := e.HydrateTopCities(context.Background(), in)

	require.Len(t, out, 2)
	assert.Equal(t, "img:Jaipur, India tourism", out[0].Image)
	assert.Equal(t, "img:Udaipur, India tourism", out[1].Image)
	assert.Empty(t, in[0].Image, "input must not be mutated")
	assert.Len(t, images.queries, 2)
}

func TestHydrateCity(t *testing.T) {
	e, _ := setupEnricherTest()
	city := types.City{
		CityInfo: types.CityInfo{Name: "Jaipur", Country: "India"},
		Spots: []types.TouristSpot{
			{ID: "1", Name: "Hawa Mahal", AQI: "AQI 90 (Moderate)"},
			{ID: "2", Name: "Amber Fort", AQI: "AQI 80 (Moderate)"},
			{ID: "3", Name: "Jal Mahal", AQI: "AQI 70 (Moderate)"},
		},
	}
	out := e.HydrateCity(context.Background(), city)

	assert.Equal(t, "img:Jaipur, India travel", out.Image)
	require.Len(t, out.Spots, 3)
	assert.Equal(t, "1", out.Spots[0].ID)
	assert.Equal(t, "img:Hawa Mahal Jaipur", out.Spots[0].Image)
	// Live reading replaces the estimate.
	assert.Equal(t, "AQI 142 (Unhealthy for Sensitive Groups)", out.Spots[0].AQI)
	// Geocoded but no AQI: estimate kept.
	assert.Equal(t, "AQI 80 (Moderate)", out.Spots[1].AQI)
	// Geocode failed: estimate kept.
	assert.Equal(t, "AQI 70 (Moderate)", out.Spots[2].AQI)
	assert.Empty(t, city.Spots[0].Image)
}

func TestHydrateGuides(t *testing.T) {
	e, images := setupEnricherTest()
	out := e.HydrateGuides(context.Background(), []types.Guide{{Name: "Asha Rao"}, {Name: "Vikram Singh"}})
	assert.Equal(t, AvatarImage("Asha Rao"), out[0].Image)
	assert.Equal(t, AvatarImage("Vikram Singh"), out[1].Image)
	assert.Empty(t, images.queries)
}

func TestHydrateRoute(t *testing.T) {
	route := types.RideRoute{
		Origin:      "Delhi",
		Destination: "Jaipur",
		Distance:    "270 km",
		Duration:    "5 hours",
		Stops: []types.RideStop{
			{Name: "Neemrana", AQI: "AQI 120 (Unhealthy for Sensitive Groups)"},
			{Name: "Roadside Dhaba", AQI: "AQI 100 (Moderate)"},
		},
	}

	t.Run("live aqi and coordinates", func(t *testing.T) {
		e, _ := setupEnricherTest()
		out := e.HydrateRoute(context.Background(), route)

		assert.Equal(t, "AQI 48 (Good)", out.Stops[0].AQI)
		require.NotNil(t, out.Stops[0].Coordinates)
		assert.Equal(t, neemrana, *out.Stops[0].Coordinates)

		assert.Equal(t, "AQI 100 (Moderate)", out.Stops[1].AQI)
		assert.Nil(t, out.Stops[1].Coordinates)
		assert.Equal(t, "270 km", out.Distance)
	})

	t.Run("measured totals", func(t *testing.T) {
		e, _ := setupEnricherTest(WithRouteEstimator(&fakeDirections{est: RouteEstimate{Distance: "281 km", Duration: "4 hours 50 mins"}}))
		out := e.HydrateRoute(context.Background(), route)
		assert.Equal(t, "281 km", out.Distance)
		assert.Equal(t, "4 hours 50 mins", out.Duration)
	})

	t.Run("estimator failure keeps model totals", func(t *testing.T) {
		e, _ := setupEnricherTest(WithRouteEstimator(&fakeDirections{err: errors.New("ZERO_RESULTS")}))
		out := e.HydrateRoute(context.Background(), route)
		assert.Equal(t, "270 km", out.Distance)
		assert.Equal(t, "5 hours", out.Duration)
	})
}

func TestLiveAQI_TimeoutFallsBack(t *testing.T) {
	e := NewEnricher(&fakeImages{}, &fakeGeocoder{block: true}, &fakeAir{}, testLogger,
		WithLookupTimeout(20*time.Millisecond))

	start := time.Now()
	city := e.HydrateCity(context.Background(), types.City{
		CityInfo: types.CityInfo{Name: "Jaipur", Country: "India"},
		Spots:    []types.TouristSpot{{Name: "Hawa Mahal", AQI: "AQI 90 (Moderate)"}},
	})
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "AQI 90 (Moderate)", city.Spots[0].AQI)

	_, _, err := e.LiveAQI(context.Background(), "Hawa Mahal")
	var le *types.EnrichmentLookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "geocode", le.Lookup)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 mins", formatDuration(45*time.Minute))
	assert.Equal(t, "3 hours", formatDuration(3*time.Hour))
	assert.Equal(t, "4 hours 50 mins", formatDuration(4*time.Hour+50*time.Minute))
	assert.Equal(t, "1 hour 5 mins", formatDuration(time.Hour+5*time.Minute))
	assert.Equal(t, "1 hour", formatDuration(time.Hour))
	assert.Equal(t, "2 hours 1 min", formatDuration(2*time.Hour+time.Minute))
	assert.Equal(t, "1 min", formatDuration(time.Minute))
}
