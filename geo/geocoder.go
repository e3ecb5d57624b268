// Package geo maps affiliation strings to coordinates.
package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lehigh-university-libraries/affilnet/hub"
)

// ErrNoMatch is returned when a provider has no result for a query.
var ErrNoMatch = errors.New("no geocoding match")

// Provider names.
const (
	ProviderNominatim = "nominatim"
	ProviderGoogle    = "google"
)

// Geocoder is a free-text to coordinate lookup.
type Geocoder interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Geocode returns the best match for query, or ErrNoMatch.
	Geocode(ctx context.Context, query string) (hub.Coordinate, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider   string
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	RateLimit  float64
	MaxRetries int

	// APIKey is only used by the google provider.
	APIKey string
}

// New builds the configured provider.
func New(cfg Config) (Geocoder, error) {
	switch cfg.Provider {
	case "", ProviderNominatim:
		return NewNominatim(NominatimConfig{
			BaseURL:    cfg.BaseURL,
			UserAgent:  cfg.UserAgent,
			Timeout:    cfg.Timeout,
			RateLimit:  cfg.RateLimit,
			MaxRetries: cfg.MaxRetries,
		}), nil
	case ProviderGoogle:
		return NewGoogle(GoogleConfig{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL})
	default:
		return nil, fmt.Errorf("unknown geocoder provider: %s", cfg.Provider)
	}
}
