package geo

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/lehigh-university-libraries/affilnet/hub"
	"github.com/lehigh-university-libraries/affilnet/observability"
)

type cached struct {
	coord hub.Coordinate
	ok    bool
}

// Resolver memoizes geocoding results for one run, so each distinct
// affiliation string reaches the provider at most once. Misses are cached
// too. Not safe for concurrent use.
type Resolver struct {
	geocoder Geocoder
	logger   zerolog.Logger
	metrics  *observability.Metrics
	cache    map[string]cached
}

// NewResolver wraps a provider. A nil metrics value gets a private registry.
func NewResolver(g Geocoder, logger zerolog.Logger, metrics *observability.Metrics) *Resolver {
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	return &Resolver{
		geocoder: g,
		logger:   logger,
		metrics:  metrics,
		cache:    make(map[string]cached),
	}
}

// Resolve returns the coordinate for an affiliation. Failures are logged
// and reported as false; they never abort the run.
func (r *Resolver) Resolve(ctx context.Context, affiliation string) (hub.Coordinate, bool) {
	if c, ok := r.cache[affiliation]; ok {
		r.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return c.coord, c.ok
	}
	r.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	coord, err := r.geocoder.Geocode(ctx, affiliation)
	switch {
	case err == nil:
		r.metrics.Geocodes.WithLabelValues(r.geocoder.Name(), observability.GeocodeResolved).Inc()
		r.logger.Debug().
			Str("affiliation", affiliation).
			Stringer("coordinate", coord).
			Msg("geocoded affiliation")
		r.cache[affiliation] = cached{coord: coord, ok: true}
		return coord, true
	case errors.Is(err, ErrNoMatch):
		r.metrics.Geocodes.WithLabelValues(r.geocoder.Name(), observability.GeocodeNoMatch).Inc()
		r.logger.Warn().
			Str("affiliation", affiliation).
			Msg("failed to geocode affiliation: no match")
	default:
		r.metrics.Geocodes.WithLabelValues(r.geocoder.Name(), observability.GeocodeError).Inc()
		r.logger.Warn().
			Err(err).
			Str("affiliation", affiliation).
			Msg("failed to geocode affiliation")
	}

	r.cache[affiliation] = cached{}
	return hub.Coordinate{}, false
}

// Len returns the number of distinct affiliations looked up so far.
func (r *Resolver) Len() int {
	return len(r.cache)
}
