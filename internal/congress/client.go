package congress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/capitolworks/congressd/internal/cache"
	"github.com/capitolworks/congressd/internal/logging"
)

const (
	// DefaultBaseURL is the Congress.gov REST API v3 root.
	DefaultBaseURL = "https://api.congress.gov/v3"

	// maxErrorBody caps how much of an upstream error body we keep.
	maxErrorBody = 512
)

// Default query parameters merged under every request.
var defaultParams = map[string]string{
	"format": "json",
	"limit":  "20",
}

// Config configures the upstream client.
type Config struct {
	// BaseURL overrides the API root (tests point this at httptest).
	BaseURL string

	// APIKey is the Congress.gov API key, sent as a query parameter.
	APIKey string

	// CacheTTL enables the response cache when > 0.
	CacheTTL time.Duration

	// RequestsPerSecond throttles upstream calls. Congress.gov allows
	// 5,000 requests/hour; the default of 1.4/s with burst 5 stays under
	// that. <= 0 disables throttling.
	RequestsPerSecond float64
	Burst             int

	// Logger for structured logging.
	Logger *zap.Logger
}

// Client is the single point of contact with Congress.gov. One instance is
// created at startup and shared by all concurrent tool calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      *cache.Cache
	limiter    *rate.Limiter
	logger     *zap.Logger
	metrics    *Metrics
	requests   atomic.Uint64
}

// NewClient creates the shared upstream client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("congress: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConnsPerHost: 5,
				MaxConnsPerHost:     10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  cfg.Logger,
		metrics: NewMetrics(cfg.Logger),
	}

	if cfg.CacheTTL > 0 {
		c.cache = cache.New(cfg.CacheTTL)
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 5
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return c, nil
}

// Get performs a single GET against endpoint with the given (already
// sanitized) query parameters. Caller params are merged over the defaults
// {format: json, limit: 20} and the API key is injected last.
//
// A cache hit short-circuits before the limiter or the network are
// touched. Failures are typed: *StatusError for non-2xx, *DecodeError for
// 2xx non-JSON bodies, and wrapped transport errors otherwise.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (map[string]any, error) {
	merged := make(map[string]string, len(defaultParams)+len(params))
	for k, v := range defaultParams {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}

	key := cache.Key(endpoint, merged)
	if c.cache != nil {
		if body, hit := c.cache.Get(key); hit {
			c.metrics.RecordCache(ctx, true)
			c.logger.Debug("cache hit", zap.String("key", key))
			return body, nil
		}
		c.metrics.RecordCache(ctx, false)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	reqURL, err := c.buildURL(endpoint, merged)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.logger.Debug("upstream request", zap.String("url", logging.RedactURL(reqURL)))

	family := ResolveFamily(endpoint)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	c.requests.Add(1)

	if err != nil {
		c.metrics.RecordRequest(ctx, family, "transport_error", elapsed)
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.metrics.RecordRequest(ctx, family, fmt.Sprintf("http_%d", resp.StatusCode), elapsed)
		c.logger.Debug("upstream error status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.Duration("request_time", elapsed))
		return nil, &StatusError{
			Code:        resp.StatusCode,
			Endpoint:    endpoint,
			Body:        string(excerpt),
			RequestTime: elapsed,
		}
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.metrics.RecordRequest(ctx, family, "decode_error", elapsed)
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}

	c.metrics.RecordRequest(ctx, family, "ok", elapsed)
	if c.cache != nil {
		c.cache.Set(key, body)
	}
	return body, nil
}

func (c *Client) buildURL(endpoint string, params map[string]string) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimPrefix(endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	for name, value := range params {
		q.Set(name, value)
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// RequestCount returns the number of upstream calls attempted since start.
func (c *Client) RequestCount() uint64 {
	return c.requests.Load()
}

// CacheStats returns response cache statistics, or zero stats when the
// cache is disabled.
func (c *Client) CacheStats() cache.Stats {
	if c.cache == nil {
		return cache.Stats{}
	}
	return c.cache.GetStats()
}

// ClearCache drops every cached response.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Close releases idle upstream connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// isTimeout reports whether err is a timeout of any layer: deadline
// exceeded on the context or a net error that timed out.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
