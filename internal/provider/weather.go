package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/geodata-service/internal/cache"
	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/fetch"
	"github.com/couchcryptid/geodata-service/internal/normalize"
	"github.com/couchcryptid/geodata-service/internal/observability"
	"github.com/couchcryptid/geodata-service/internal/station"
)

// A requested time within this window of now is served as current
// conditions rather than a historical lookup.
const historicalCutoff = time.Hour

// Weather provides conditions lookups, current or historical.
type Weather interface {
	Provider
	// Conditions returns the conditions at coord. A zero at means now;
	// a time more than an hour from now switches to the vendor's
	// historical endpoint.
	Conditions(ctx context.Context, coord domain.Coordinate, at time.Time) (domain.Conditions, error)
}

// WeatherVendor describes one weather vendor. Station sources are optional:
// when set, the lookup is pinned to the nearest station and fails with
// NotFound if none is in range.
type WeatherVendor struct {
	VendorSlug string
	Schema     normalize.WeatherSchema
	CurrentURL func(coord domain.Coordinate, st domain.Station) string
	// HistoricalURL is nil for vendors without a time-series endpoint.
	HistoricalURL func(coord domain.Coordinate, st domain.Station, at time.Time) string
	Headers       map[string]string
	APIKey        string
	RequiresKey   bool

	CustomStations  station.Source
	NetworkStations station.Source
	CustomRadius    float64
	NetworkRadius   float64
}

// WeatherProvider is the generic weather lookup engine around a vendor
// descriptor.
type WeatherProvider struct {
	vendor  WeatherVendor
	fetcher fetch.Fetcher
	store   cache.Store
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
	debug   bool
	group   singleflight.Group
}

// NewWeather builds a weather provider. store may be nil to disable
// caching.
func NewWeather(vendor WeatherVendor, fetcher fetch.Fetcher, store cache.Store, ttl time.Duration, metrics *observability.Metrics, logger *slog.Logger, debug bool) *WeatherProvider {
	if vendor.CustomRadius <= 0 {
		vendor.CustomRadius = station.DefaultCustomRadius
	}
	if vendor.NetworkRadius <= 0 {
		vendor.NetworkRadius = station.DefaultNetworkRadius
	}
	return &WeatherProvider{
		vendor:  vendor,
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
		debug:   debug,
	}
}

func (w *WeatherProvider) Slug() string           { return w.vendor.VendorSlug }
func (w *WeatherProvider) Capability() Capability { return CapabilityWeather }

func (w *WeatherProvider) Conditions(ctx context.Context, coord domain.Coordinate, at time.Time) (domain.Conditions, error) {
	if w.vendor.RequiresKey && w.vendor.APIKey == "" {
		return domain.Conditions{}, fmt.Errorf("%s: %w", w.Slug(), domain.ErrMissingCredentials)
	}
	if err := coord.Validate(); err != nil {
		return domain.Conditions{}, err
	}

	historical := false
	if !at.IsZero() {
		if delta := at.Sub(domain.Now()); delta > historicalCutoff || delta < -historicalCutoff {
			historical = true
		}
	}
	if historical && w.vendor.HistoricalURL == nil {
		return domain.Conditions{}, fmt.Errorf("%s does not support historical lookups", w.Slug())
	}

	st, distance, err := w.resolveStation(ctx, coord)
	if err != nil {
		return domain.Conditions{}, err
	}

	bucket := time.Time{}
	if historical {
		bucket = at
	}
	key := cache.Key("weather", w.Slug(), coord, st.ID, bucket)
	if cond, ok := w.cached(ctx, key); ok {
		return cond, nil
	}

	result, err, _ := w.group.Do(key, func() (any, error) {
		cond, err := w.lookup(ctx, coord, st, at, historical)
		if err != nil {
			return nil, err
		}
		if st.ID != "" {
			cond.StationID = st.ID
			cond.Distance = distance
		}
		w.cacheResult(ctx, key, cond)
		return cond, nil
	})
	if err != nil {
		w.count("error")
		return domain.Conditions{}, err
	}
	w.count("success")
	return result.(domain.Conditions), nil
}

func (w *WeatherProvider) resolveStation(ctx context.Context, coord domain.Coordinate) (domain.Station, float64, error) {
	if w.vendor.CustomStations == nil && w.vendor.NetworkStations == nil {
		return domain.Station{}, 0, nil
	}
	st, distance, err := station.Resolve(ctx, coord, w.vendor.CustomStations, w.vendor.NetworkStations, w.vendor.CustomRadius, w.vendor.NetworkRadius)
	w.countStation(err)
	if err != nil {
		return domain.Station{}, 0, err
	}
	return st, distance, nil
}

func (w *WeatherProvider) lookup(ctx context.Context, coord domain.Coordinate, st domain.Station, at time.Time, historical bool) (domain.Conditions, error) {
	target := coord
	if st.ID != "" {
		target = st.Coordinate
	}

	var url string
	if historical {
		url = w.vendor.HistoricalURL(target, st, at)
	} else {
		url = w.vendor.CurrentURL(target, st)
	}

	raw, err := w.fetcher.GetJSON(ctx, w.Slug(), url, w.vendor.Headers)
	if err != nil {
		return domain.Conditions{}, err
	}

	if historical {
		return normalize.HistoricalConditions(w.vendor.Schema, raw, at, w.debug)
	}
	return normalize.Conditions(w.vendor.Schema, raw, domain.Now(), w.debug)
}

func (w *WeatherProvider) cached(ctx context.Context, key string) (domain.Conditions, bool) {
	if w.store == nil {
		return domain.Conditions{}, false
	}
	value, ok, err := w.store.Get(ctx, key)
	if err != nil {
		w.logger.Warn("weather cache read failed", slog.String("key", key), slog.Any("error", err))
		return domain.Conditions{}, false
	}
	w.countCache(ok)
	if !ok {
		return domain.Conditions{}, false
	}
	var cond domain.Conditions
	if err := json.Unmarshal(value, &cond); err != nil {
		w.logger.Warn("weather cache entry corrupt", slog.String("key", key), slog.Any("error", err))
		return domain.Conditions{}, false
	}
	return cond, true
}

func (w *WeatherProvider) cacheResult(ctx context.Context, key string, cond domain.Conditions) {
	if w.store == nil {
		return
	}
	value, err := json.Marshal(cond)
	if err != nil {
		return
	}
	if err := w.store.Set(ctx, key, value, w.ttl); err != nil {
		w.logger.Warn("weather cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (w *WeatherProvider) count(outcome string) {
	if w.metrics != nil {
		w.metrics.Lookups.With(prometheus.Labels{"capability": "weather", "outcome": outcome}).Inc()
	}
}

func (w *WeatherProvider) countCache(hit bool) {
	if w.metrics == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	w.metrics.CacheLookups.With(prometheus.Labels{"capability": "weather", "result": result}).Inc()
}

func (w *WeatherProvider) countStation(err error) {
	if w.metrics == nil {
		return
	}
	outcome := "resolved"
	if err != nil {
		outcome = "out_of_range"
	}
	w.metrics.StationSearches.With(prometheus.Labels{"outcome": outcome}).Inc()
}
