package geo

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/lehigh-university-libraries/affilnet/hub"
	"github.com/lehigh-university-libraries/affilnet/observability"
)

type stubGeocoder struct {
	coords map[string]hub.Coordinate
	fail   map[string]error
	calls  map[string]int
}

func newStub() *stubGeocoder {
	return &stubGeocoder{
		coords: map[string]hub.Coordinate{},
		fail:   map[string]error{},
		calls:  map[string]int{},
	}
}

func (s *stubGeocoder) Name() string { return "stub" }

func (s *stubGeocoder) Geocode(_ context.Context, q string) (hub.Coordinate, error) {
	s.calls[q]++
	if err, ok := s.fail[q]; ok {
		return hub.Coordinate{}, err
	}
	if c, ok := s.coords[q]; ok {
		return c, nil
	}
	return hub.Coordinate{}, ErrNoMatch
}

func TestResolverMemoizes(t *testing.T) {
	stub := newStub()
	stub.coords["MIT"] = hub.Coordinate{Latitude: 42.36, Longitude: -71.09}
	metrics := observability.NewMetrics()
	r := NewResolver(stub, zerolog.Nop(), metrics)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		c, ok := r.Resolve(ctx, "MIT")
		assert.True(t, ok)
		assert.Equal(t, 42.36, c.Latitude)
	}
	for i := 0; i < 2; i++ {
		_, ok := r.Resolve(ctx, "Atlantis")
		assert.False(t, ok)
	}

	assert.Equal(t, 1, stub.calls["MIT"])
	assert.Equal(t, 1, stub.calls["Atlantis"], "misses are cached")
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Geocodes.WithLabelValues("stub", observability.GeocodeResolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Geocodes.WithLabelValues("stub", observability.GeocodeNoMatch)))
}

func TestResolverLogsFailures(t *testing.T) {
	stub := newStub()
	stub.fail["Stanford"] = errors.New("connection refused")

	var buf bytes.Buffer
	metrics := observability.NewMetrics()
	r := NewResolver(stub, zerolog.New(&buf), metrics)

	_, ok := r.Resolve(context.Background(), "Stanford")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"affiliation":"Stanford"`)
	assert.Contains(t, buf.String(), "connection refused")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Geocodes.WithLabelValues("stub", observability.GeocodeError)))
}

func TestResolverNilMetrics(t *testing.T) {
	r := NewResolver(newStub(), zerolog.Nop(), nil)
	_, ok := r.Resolve(context.Background(), "anything")
	assert.False(t, ok)
}
