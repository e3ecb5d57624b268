// Package crossref resolves a DOI to its authors and their affiliations
// using the Crossref REST API.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/lehigh-university-libraries/affilnet/helpers"
	"github.com/lehigh-university-libraries/affilnet/httpclient"
	"github.com/lehigh-university-libraries/affilnet/hub"
)

const (
	// DefaultBaseURL is the Crossref REST API.
	DefaultBaseURL = "https://api.crossref.org"

	// DefaultRateLimit stays well under the public pool limit.
	DefaultRateLimit = 10.0

	// DefaultTimeout is the per-request timeout.
	DefaultTimeout = 30 * time.Second

	// maxBodySize bounds response decoding.
	maxBodySize = 10 << 20
)

// Config holds configuration for the Crossref client.
type Config struct {
	// BaseURL is the API base URL. Defaults to DefaultBaseURL.
	BaseURL string

	// Mailto is a contact address for the Crossref polite pool.
	Mailto string

	// Timeout is the request timeout.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	RateLimit float64

	// MaxRetries is the number of retries on 429/5xx.
	MaxRetries int
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
}

// Client looks up works by DOI.
type Client struct {
	config     Config
	httpClient *httpclient.Client
	validate   *validator.Validate
}

// New creates a new Crossref client.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	userAgent := "affilnet/1.0"
	if cfg.Mailto != "" {
		userAgent += " (mailto:" + cfg.Mailto + ")"
	}

	return NewWithHTTPClient(cfg, httpclient.New(httpclient.Config{
		Timeout:    cfg.Timeout,
		RateLimit:  cfg.RateLimit,
		BurstSize:  int(cfg.RateLimit),
		MaxRetries: cfg.MaxRetries,
		UserAgent:  userAgent,
	}))
}

// NewWithHTTPClient creates a client with a custom HTTP client.
func NewWithHTTPClient(cfg Config, httpClient *httpclient.Client) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		validate:   validator.New(),
	}
}

// Name identifies this lookup source in logs and metrics.
func (c *Client) Name() string {
	return "crossref"
}

// Work fetches the work record for a DOI.
func (c *Client) Work(ctx context.Context, doi string) (*Work, error) {
	doi = NormalizeDOI(doi)
	if doi == "" {
		return nil, fmt.Errorf("crossref: empty DOI")
	}

	resp, err := c.httpClient.Get(ctx, c.workURL(doi), "application/json")
	if err != nil {
		return nil, fmt.Errorf("crossref: %s: %w: %w", doi, ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, &StatusError{
			DOI:        doi,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var wr WorkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&wr); err != nil {
		return nil, fmt.Errorf("crossref: %s: %w: decoding: %w", doi, ErrInvalidResponse, err)
	}
	if err := c.validate.Struct(&wr); err != nil {
		return nil, fmt.Errorf("crossref: %s: %w: %w", doi, ErrInvalidResponse, err)
	}

	return &wr.Message, nil
}

// Authors returns the work's authors keyed by "given family", each with the
// affiliation names Crossref records for them. Authors without a usable
// name are skipped.
func (c *Client) Authors(ctx context.Context, doi string) ([]hub.AuthorAffiliations, error) {
	work, err := c.Work(ctx, doi)
	if err != nil {
		return nil, err
	}
	return AuthorAffiliations(work), nil
}

// AuthorAffiliations converts a work's author list.
func AuthorAffiliations(work *Work) []hub.AuthorAffiliations {
	var out []hub.AuthorAffiliations
	for _, a := range work.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name == "" {
			continue
		}

		affs := make([]string, 0, len(a.Affiliation))
		for _, aff := range a.Affiliation {
			if n := helpers.CleanText(aff.Name); n != "" {
				affs = append(affs, n)
			}
		}

		out = append(out, hub.AuthorAffiliations{
			Name:         name,
			Affiliations: affs,
		})
	}
	return out
}

func (c *Client) workURL(doi string) string {
	segments := strings.Split(doi, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	u := c.config.BaseURL + "/works/" + strings.Join(segments, "/")
	if c.config.Mailto != "" {
		u += "?" + url.Values{"mailto": {c.config.Mailto}}.Encode()
	}
	return u
}

// NormalizeDOI trims whitespace and strips resolver URL and "doi:" prefixes.
func NormalizeDOI(doi string) string {
	return hub.CleanDOI(doi)
}
