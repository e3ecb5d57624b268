package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lehigh-university-libraries/affilnet/httpclient"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

const (
	// DefaultNominatimURL is the public OpenStreetMap Nominatim instance.
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"

	// DefaultUserAgent is the fixed client identity sent to the geocoder.
	DefaultUserAgent = "geoapiExercises"

	// The public instance allows at most one request per second.
	nominatimRateLimit = 1.0
)

// NominatimConfig configures the Nominatim provider.
type NominatimConfig struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	RateLimit  float64
	MaxRetries int
}

// Nominatim geocodes through an OpenStreetMap Nominatim search endpoint.
type Nominatim struct {
	baseURL    string
	httpClient *httpclient.Client
}

// NewNominatim creates a Nominatim provider.
func NewNominatim(cfg NominatimConfig) *Nominatim {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = nominatimRateLimit
	}

	return &Nominatim{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpclient.New(httpclient.Config{
			Timeout:    cfg.Timeout,
			RateLimit:  cfg.RateLimit,
			BurstSize:  1,
			MaxRetries: cfg.MaxRetries,
			UserAgent:  cfg.UserAgent,
		}),
	}
}

// Name returns the provider name.
func (n *Nominatim) Name() string {
	return ProviderNominatim
}

// Geocode returns the first search result for query.
func (n *Nominatim) Geocode(ctx context.Context, query string) (hub.Coordinate, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}

	resp, err := n.httpClient.Get(ctx, n.baseURL+"/search?"+params.Encode(), "application/json")
	if err != nil {
		return hub.Coordinate{}, fmt.Errorf("nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return hub.Coordinate{}, fmt.Errorf("nominatim: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return hub.Coordinate{}, fmt.Errorf("nominatim: reading response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return hub.Coordinate{}, fmt.Errorf("nominatim: invalid JSON response")
	}

	first := gjson.GetBytes(body, "0")
	if !first.Exists() {
		return hub.Coordinate{}, ErrNoMatch
	}

	// Nominatim encodes coordinates as strings.
	lat, lon := first.Get("lat"), first.Get("lon")
	if !lat.Exists() || !lon.Exists() {
		return hub.Coordinate{}, fmt.Errorf("nominatim: result without coordinates")
	}

	return hub.Coordinate{
		Latitude:  lat.Float(),
		Longitude: lon.Float(),
	}, nil
}
