package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/geodata-service/internal/cache"
	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/fetch"
	"github.com/couchcryptid/geodata-service/internal/normalize"
	"github.com/couchcryptid/geodata-service/internal/observability"
)

// Elevation resolves a coordinate to its elevation in meters.
type Elevation interface {
	Provider
	Elevation(ctx context.Context, coord domain.Coordinate) (float64, error)
}

// ElevationVendor describes one elevation vendor: the endpoint builder and
// the dotted path to the elevation value in its response.
type ElevationVendor struct {
	VendorSlug string
	URL        func(coord domain.Coordinate) string
	// ValueKeys are tried in order against the decoded payload.
	ValueKeys   []string
	Headers     map[string]string
	APIKey      string
	RequiresKey bool
}

// ElevationProvider is the generic elevation lookup engine.
type ElevationProvider struct {
	vendor  ElevationVendor
	fetcher fetch.Fetcher
	store   cache.Store
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewElevation(vendor ElevationVendor, fetcher fetch.Fetcher, store cache.Store, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger) *ElevationProvider {
	return &ElevationProvider{
		vendor:  vendor,
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func (e *ElevationProvider) Slug() string           { return e.vendor.VendorSlug }
func (e *ElevationProvider) Capability() Capability { return CapabilityElevation }

func (e *ElevationProvider) Elevation(ctx context.Context, coord domain.Coordinate) (float64, error) {
	if e.vendor.RequiresKey && e.vendor.APIKey == "" {
		return 0, fmt.Errorf("%s: %w", e.Slug(), domain.ErrMissingCredentials)
	}
	if err := coord.Validate(); err != nil {
		return 0, err
	}

	key := cache.Key("elevation", e.Slug(), coord, "", time.Time{})
	if e.store != nil {
		if value, ok, err := e.store.Get(ctx, key); err == nil && ok {
			e.countCache(true)
			var elevation float64
			if _, perr := fmt.Sscanf(string(value), "%g", &elevation); perr == nil {
				return elevation, nil
			}
		} else if err == nil {
			e.countCache(false)
		}
	}

	raw, err := e.fetcher.GetJSON(ctx, e.Slug(), e.vendor.URL(coord), e.vendor.Headers)
	if err != nil {
		e.count("error")
		return 0, err
	}

	elevation, ok := normalize.ResolveFloat(raw, e.vendor.ValueKeys...)
	if !ok {
		e.count("error")
		return 0, fmt.Errorf("%s elevation response missing value: %w", e.Slug(), domain.ErrMalformedResponse)
	}

	if e.store != nil {
		if err := e.store.Set(ctx, key, []byte(fmt.Sprintf("%g", elevation)), e.ttl); err != nil {
			e.logger.Warn("elevation cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	e.count("success")
	return elevation, nil
}

func (e *ElevationProvider) count(outcome string) {
	if e.metrics != nil {
		e.metrics.Lookups.With(prometheus.Labels{"capability": "elevation", "outcome": outcome}).Inc()
	}
}

func (e *ElevationProvider) countCache(hit bool) {
	if e.metrics == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	e.metrics.CacheLookups.With(prometheus.Labels{"capability": "elevation", "result": result}).Inc()
}
