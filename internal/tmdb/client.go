// Package tmdb wraps the upstream catalog API. It injects the configured
// region and locale into every call and normalizes failures into a small
// taxonomy: ErrMissingToken, *UpstreamError for non-2xx responses, and
// wrapped transport errors for everything else. Retry policy deliberately
// does not live here; callers own it.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// maxBodyBytes bounds upstream response reads; discover pages are ~20 KB.
const maxBodyBytes = 4 << 20

// ErrMissingToken reports that no bearer token is configured. It is detected
// before any network I/O so callers can distinguish it from upstream rejects.
var ErrMissingToken = errors.New("tmdb: bearer token not configured")

// UpstreamError is a non-2xx answer from the catalog API, carrying the
// upstream status and raw body for diagnostics.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("tmdb: status %d body=%q", e.Status, body)
}

type Client struct {
	baseURL    string
	token      string
	region     string
	locale     string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	log        *zap.Logger
}

// Option configures the Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithCircuitBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.cb = cb }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(token, region, locale string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		token:      strings.TrimSpace(token),
		region:     region,
		locale:     locale,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Configured reports whether a bearer token is present.
func (c *Client) Configured() bool { return c.token != "" }

// Region returns the configured region code.
func (c *Client) Region() string { return c.region }

// Locale returns the configured locale code.
func (c *Client) Locale() string { return c.locale }

// Get issues an authenticated GET against the upstream API. Empty parameter
// values are dropped, and language / watch_region defaults are injected
// unless the caller set them explicitly.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}
	if c.cb == nil {
		return c.get(ctx, path, params)
	}
	raw, err := c.cb.Execute(func() (interface{}, error) {
		return c.get(ctx, path, params)
	})
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) {
			return nil, err
		}
		return nil, fmt.Errorf("tmdb: %w", err)
	}
	return raw.(json.RawMessage), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	if q.Get("language") == "" {
		q.Set("language", c.locale)
	}
	if q.Get("watch_region") == "" {
		q.Set("watch_region", c.region)
	}

	u := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("tmdb: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("upstream rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(b)}
	}
	return json.RawMessage(b), nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	raw, err := c.Get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("tmdb: decode %s: %w", path, err)
	}
	return nil
}
