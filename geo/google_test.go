package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func googleServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "AIzaTest", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestGoogleGeocode(t *testing.T) {
	srv := googleServer(t, `{
		"status": "OK",
		"results": [{"geometry": {"location": {"lat": 37.4275, "lng": -122.1697}}}]
	}`)
	defer srv.Close()

	g, err := NewGoogle(GoogleConfig{APIKey: "AIzaTest", BaseURL: srv.URL})
	require.NoError(t, err)

	coord, err := g.Geocode(context.Background(), "Stanford")
	require.NoError(t, err)
	assert.InDelta(t, 37.4275, coord.Latitude, 1e-9)
	assert.InDelta(t, -122.1697, coord.Longitude, 1e-9)
}

func TestGoogleNoResults(t *testing.T) {
	srv := googleServer(t, `{"status": "ZERO_RESULTS", "results": []}`)
	defer srv.Close()

	g, err := NewGoogle(GoogleConfig{APIKey: "AIzaTest", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = g.Geocode(context.Background(), "Atlantis")
	assert.True(t, errors.Is(err, ErrNoMatch))
}
