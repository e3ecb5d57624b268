package geo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/lehigh-university-libraries/affilnet/hub"
)

// GoogleConfig configures the Google Maps provider.
type GoogleConfig struct {
	APIKey string

	// BaseURL overrides the API host, for tests.
	BaseURL string
}

// Google geocodes through the Google Maps Geocoding API.
type Google struct {
	client *maps.Client
}

// NewGoogle creates a Google Maps provider. An API key is required.
func NewGoogle(cfg GoogleConfig) (*Google, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("google geocoder: API key not set")
	}

	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("google geocoder: %w", err)
	}
	return &Google{client: client}, nil
}

// Name returns the provider name.
func (g *Google) Name() string {
	return ProviderGoogle
}

// Geocode returns the first geocoding result for query.
func (g *Google) Geocode(ctx context.Context, query string) (hub.Coordinate, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: query,
	})
	if err != nil {
		return hub.Coordinate{}, fmt.Errorf("google geocoder: %w", err)
	}
	if len(results) == 0 {
		return hub.Coordinate{}, ErrNoMatch
	}

	loc := results[0].Geometry.Location
	return hub.Coordinate{
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
	}, nil
}
