// Package httpclient wraps net/http with rate limiting and bounded retries
// for the external lookup services.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Config configures the HTTP client.
type Config struct {
	// Timeout is the per-request timeout. Defaults to 30 seconds.
	Timeout time.Duration

	// RateLimit is the maximum requests per second. Defaults to 1.
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed. Defaults to 1.
	BurstSize int

	// MaxRetries is the number of extra attempts on 429 and 5xx responses
	// and network errors. Zero disables retries.
	MaxRetries int

	// RetryDelay is the delay between retries when the server does not send
	// Retry-After. Defaults to 1 second.
	RetryDelay time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string
}

func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.RateLimit == 0 {
		c.RateLimit = 1
	}
	if c.BurstSize == 0 {
		c.BurstSize = 1
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
}

// Client is a rate-limited HTTP client. It is safe for concurrent use.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	config  Config
}

// New creates a new Client.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.BurstSize),
		config:  cfg,
	}
}

// Get issues a GET request for url with the given Accept header.
func (c *Client) Get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return c.Do(req)
}

// Do executes a request, waiting for the rate limiter before every attempt.
// A final 429/5xx response is returned to the caller rather than converted
// into an error, so callers can classify it by status.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			if attempt < c.config.MaxRetries {
				if err := wait(req.Context(), c.config.RetryDelay); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}

		if shouldRetry(resp.StatusCode) && attempt < c.config.MaxRetries {
			delay := c.retryDelay(resp)
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			if err := wait(req.Context(), delay); err != nil {
				return nil, err
			}
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

func shouldRetry(statusCode int) bool {
	if statusCode == http.StatusTooManyRequests {
		return true
	}
	return statusCode >= 500 && statusCode < 600
}

// retryDelay respects Retry-After (seconds or HTTP date) when present.
func (c *Client) retryDelay(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return c.config.RetryDelay
	}

	if seconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil {
		if seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
		return c.config.RetryDelay
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return c.config.RetryDelay
}

func wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
