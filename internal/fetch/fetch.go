// Package fetch provides the shared HTTP client used for all vendor API
// calls. Every request goes through a per-vendor rate limiter and circuit
// breaker, and every response body is decoded into a generic JSON record
// for the normalization layer.
//
// Only transport-level failures trip the breaker: connection errors, 5xx
// responses, and 429s. Vendor envelopes that report "no results" or a
// client-side mistake decode fine and are the normalizer's problem.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/observability"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
	userAgent      = "geodata-service/1.0"
)

// Fetcher is the interface vendor clients depend on, satisfied by Client
// and by test doubles.
type Fetcher interface {
	GetJSON(ctx context.Context, vendor, url string, headers map[string]string) (map[string]any, error)
}

// Client issues GET requests to vendor APIs with per-vendor rate limiting
// and circuit breaking.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	breakers map[string]*gobreaker.CircuitBreaker

	ratePerSecond float64
	burst         int
}

// NewClient builds a Client. ratePerSecond and burst apply per vendor;
// a non-positive rate disables limiting.
func NewClient(logger *slog.Logger, metrics *observability.Metrics, ratePerSecond float64, burst int) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: defaultTimeout},
		logger:        logger,
		metrics:       metrics,
		limiters:      make(map[string]*rate.Limiter),
		breakers:      make(map[string]*gobreaker.CircuitBreaker),
		ratePerSecond: ratePerSecond,
		burst:         burst,
	}
}

// GetJSON fetches the URL and decodes the body as JSON. A top-level array
// response is wrapped under a "results" key so callers always receive an
// object. Non-2xx statuses other than 5xx and 429 return a
// *domain.UpstreamError without tripping the breaker.
func (c *Client) GetJSON(ctx context.Context, vendor, url string, headers map[string]string) (map[string]any, error) {
	if err := c.limiter(vendor).Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait for %s: %w", vendor, err)
	}

	start := time.Now()
	result, err := c.breaker(vendor).Execute(func() (any, error) {
		return c.do(ctx, vendor, url, headers)
	})
	if c.metrics != nil {
		c.metrics.VendorDuration.WithLabelValues(vendor).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.observe(vendor, err)
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, &domain.UpstreamError{Vendor: vendor, Message: "circuit open"}
		}
		return nil, err
	}

	c.observe(vendor, nil)
	return result.(map[string]any), nil
}

func (c *Client) do(ctx context.Context, vendor, url string, headers map[string]string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", vendor, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", vendor, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", vendor, err)
	}

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, &domain.UpstreamError{Vendor: vendor, StatusCode: resp.StatusCode, Message: bodyExcerpt(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Vendors report "no results" and bad parameters as structured 4xx
		// envelopes; when the body decodes, the normalizer classifies it.
		if record, decodeErr := decodeBody(body); decodeErr == nil {
			return record, nil
		}
		return nil, &domain.UpstreamError{Vendor: vendor, StatusCode: resp.StatusCode, Message: bodyExcerpt(body)}
	}

	record, err := decodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", vendor, domain.ErrMalformedResponse, err)
	}
	return record, nil
}

// bodyExcerpt keeps enough of an error body for logs without carrying a
// whole HTML error page around.
func bodyExcerpt(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max]
	}
	return s
}

func decodeBody(body []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case []any:
		return map[string]any{"results": t}, nil
	default:
		return nil, fmt.Errorf("unexpected top-level JSON type %T", v)
	}
}

func (c *Client) limiter(vendor string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.limiters[vendor]
	if !ok {
		limit := rate.Inf
		if c.ratePerSecond > 0 {
			limit = rate.Limit(c.ratePerSecond)
		}
		burst := c.burst
		if burst < 1 {
			burst = 1
		}
		l = rate.NewLimiter(limit, burst)
		c.limiters[vendor] = l
	}
	return l
}

func (c *Client) breaker(vendor string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.breakers[vendor]
	if !ok {
		logger := c.logger
		b = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    vendor,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				if logger != nil {
					logger.Warn("circuit breaker state change",
						slog.String("vendor", name),
						slog.String("from", from.String()),
						slog.String("to", to.String()))
				}
			},
		})
		c.breakers[vendor] = b
	}
	return b
}

func (c *Client) observe(vendor string, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "transport_error"
		if _, ok := err.(*domain.UpstreamError); ok {
			outcome = "upstream_error"
		}
	}
	c.metrics.VendorRequests.With(prometheus.Labels{"vendor": vendor, "outcome": outcome}).Inc()
}
