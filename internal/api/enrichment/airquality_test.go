package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

func TestAQILabel(t *testing.T) {
	tests := []struct {
		aqi  float64
		want string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{101, "Unhealthy for Sensitive Groups"},
		{150, "Unhealthy for Sensitive Groups"},
		{151, "Unhealthy"},
		{200, "Unhealthy"},
		{201, "Very Unhealthy"},
		{300, "Very Unhealthy"},
		{301, "Hazardous"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AQILabel(tt.aqi), "aqi %v", tt.aqi)
	}
	assert.Equal(t, "AQI 42 (Good)", FormatAQI(42))
	assert.Equal(t, "AQI 151 (Unhealthy)", FormatAQI(151))
}

func TestOpenMeteoGeocoder(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("count"))
		assert.Equal(t, "en", q.Get("language"))
		w.Header().Set("Content-Type", "application/json")
		if q.Get("name") == "Nowhere" {
			_, _ = w.Write([]byte(`{"generationtime_ms":0.1}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"name":"Jaipur","latitude":26.9196,"longitude":75.7878,"country":"India"}]}`))
	}))
	defer srv.Close()

	g := NewOpenMeteoGeocoder(srv.URL, srv.Client())
	p, err := g.Geocode(ctx, "Jaipur")
	require.NoError(t, err)
	assert.Equal(t, types.LatLng{Lat: 26.9196, Lng: 75.7878}, p)

	_, err = g.Geocode(ctx, "Nowhere")
	assert.ErrorIs(t, err, errNoGeocode)
}

func TestAirQualityClient(t *testing.T) {
	ctx := context.Background()

	t.Run("current value", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "us_aqi", q.Get("current"))
			assert.Equal(t, "26.9196", q.Get("latitude"))
			assert.Equal(t, "75.7878", q.Get("longitude"))
			_, _ = w.Write([]byte(`{"current":{"time":"2025-03-01T10:00","us_aqi":87}}`))
		}))
		defer srv.Close()

		n, err := NewAirQualityClient(srv.URL, srv.Client()).Current(ctx, types.LatLng{Lat: 26.9196, Lng: 75.7878})
		require.NoError(t, err)
		assert.Equal(t, 87.0, n)
	})

	t.Run("missing value", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"current":{"time":"2025-03-01T10:00"}}`))
		}))
		defer srv.Close()

		_, err := NewAirQualityClient(srv.URL, srv.Client()).Current(ctx, types.LatLng{})
		assert.ErrorIs(t, err, errNoAQI)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewAirQualityClient(srv.URL, srv.Client()).Current(ctx, types.LatLng{})
		assert.Error(t, err)
	})
}

func TestGoogleMapsGeocoder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/maps/api/geocode/json")
		assert.Equal(t, "Hawa Mahal", r.URL.Query().Get("address"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"Jaipur","geometry":{"location":{"lat":26.9239,"lng":75.8267}}}]}`))
	}))
	defer srv.Close()

	g, err := NewGoogleMapsGeocoder("AIza-test", srv.URL, srv.Client())
	require.NoError(t, err)
	p, err := g.Geocode(context.Background(), "Hawa Mahal")
	require.NoError(t, err)
	assert.Equal(t, types.LatLng{Lat: 26.9239, Lng: 75.8267}, p)
}
