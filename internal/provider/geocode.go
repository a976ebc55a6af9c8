package provider

import (
	"context"
	"encoding/json"
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

// Geocoder resolves free-form queries and coordinates to canonical
// addresses.
type Geocoder interface {
	Provider
	Geocode(ctx context.Context, query string) (domain.Address, error)
	ReverseGeocode(ctx context.Context, coord domain.Coordinate) (domain.Address, error)
}

// GeocodeVendor describes one geocoding vendor: how to build its URLs and
// how to normalize its payloads. A nil URL builder means the vendor does
// not support that direction.
type GeocodeVendor struct {
	VendorSlug string
	Schema     normalize.AddressSchema
	ForwardURL func(query string) string
	ReverseURL func(coord domain.Coordinate) string
	Headers    map[string]string
	// APIKey is checked before any fetch when RequiresKey is set.
	APIKey      string
	RequiresKey bool
}

// GeocodeProvider is the generic geocoder; all vendor specifics live in
// the GeocodeVendor descriptor.
type GeocodeProvider struct {
	vendor  GeocodeVendor
	fetcher fetch.Fetcher
	store   cache.Store
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
	debug   bool
}

// NewGeocode builds a geocode provider around a vendor descriptor. store
// may be nil to disable caching.
func NewGeocode(vendor GeocodeVendor, fetcher fetch.Fetcher, store cache.Store, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger, debug bool) *GeocodeProvider {
	return &GeocodeProvider{
		vendor:  vendor,
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
		debug:   debug,
	}
}

func (g *GeocodeProvider) Slug() string           { return g.vendor.VendorSlug }
func (g *GeocodeProvider) Capability() Capability { return CapabilityGeocode }

// Geocode resolves a free-form query to an address.
func (g *GeocodeProvider) Geocode(ctx context.Context, query string) (domain.Address, error) {
	if g.vendor.ForwardURL == nil {
		return domain.Address{}, fmt.Errorf("%s does not support forward geocoding", g.Slug())
	}
	if err := g.checkCredentials(); err != nil {
		return domain.Address{}, err
	}

	key := cache.QueryKey("geocode", g.Slug(), query)
	if addr, ok := g.cached(ctx, key); ok {
		return addr, nil
	}

	addr, err := g.lookup(ctx, g.vendor.ForwardURL(query), domain.Coordinate{})
	if err != nil {
		return domain.Address{}, err
	}
	g.cacheResult(ctx, key, addr)
	return addr, nil
}

// ReverseGeocode resolves a coordinate to an address.
func (g *GeocodeProvider) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (domain.Address, error) {
	if g.vendor.ReverseURL == nil {
		return domain.Address{}, fmt.Errorf("%s does not support reverse geocoding", g.Slug())
	}
	if err := g.checkCredentials(); err != nil {
		return domain.Address{}, err
	}
	if err := coord.Validate(); err != nil {
		return domain.Address{}, err
	}

	key := cache.Key("geocode", g.Slug(), coord, "", time.Time{})
	if addr, ok := g.cached(ctx, key); ok {
		return addr, nil
	}

	addr, err := g.lookup(ctx, g.vendor.ReverseURL(coord), coord)
	if err != nil {
		return domain.Address{}, err
	}
	g.cacheResult(ctx, key, addr)
	return addr, nil
}

func (g *GeocodeProvider) checkCredentials() error {
	if g.vendor.RequiresKey && g.vendor.APIKey == "" {
		return fmt.Errorf("%s: %w", g.Slug(), domain.ErrMissingCredentials)
	}
	return nil
}

func (g *GeocodeProvider) lookup(ctx context.Context, url string, requested domain.Coordinate) (domain.Address, error) {
	raw, err := g.fetcher.GetJSON(ctx, g.Slug(), url, g.vendor.Headers)
	if err != nil {
		g.count("error")
		return domain.Address{}, err
	}

	addr, err := normalize.Address(g.vendor.Schema, raw, requested, g.debug)
	if err != nil {
		g.count("error")
		return domain.Address{}, err
	}
	g.count("success")
	return addr, nil
}

func (g *GeocodeProvider) cached(ctx context.Context, key string) (domain.Address, bool) {
	if g.store == nil {
		return domain.Address{}, false
	}
	value, ok, err := g.store.Get(ctx, key)
	if err != nil {
		g.logger.Warn("geocode cache read failed", slog.String("key", key), slog.Any("error", err))
		return domain.Address{}, false
	}
	g.countCache(ok)
	if !ok {
		return domain.Address{}, false
	}
	var addr domain.Address
	if err := json.Unmarshal(value, &addr); err != nil {
		g.logger.Warn("geocode cache entry corrupt", slog.String("key", key), slog.Any("error", err))
		return domain.Address{}, false
	}
	return addr, true
}

func (g *GeocodeProvider) cacheResult(ctx context.Context, key string, addr domain.Address) {
	if g.store == nil {
		return
	}
	value, err := json.Marshal(addr)
	if err != nil {
		return
	}
	if err := g.store.Set(ctx, key, value, g.ttl); err != nil {
		g.logger.Warn("geocode cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (g *GeocodeProvider) count(outcome string) {
	if g.metrics != nil {
		g.metrics.Lookups.With(prometheus.Labels{"capability": "geocode", "outcome": outcome}).Inc()
	}
}

func (g *GeocodeProvider) countCache(hit bool) {
	if g.metrics == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	g.metrics.CacheLookups.With(prometheus.Labels{"capability": "geocode", "result": result}).Inc()
}
