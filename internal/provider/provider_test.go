package provider

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/geodata-service/internal/cache"
	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/normalize"
	"github.com/couchcryptid/geodata-service/internal/observability"
	"github.com/couchcryptid/geodata-service/internal/station"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockFetcher struct {
	mu      sync.Mutex
	urls    []string
	respond func(url string) (map[string]any, error)
}

func (m *mockFetcher) GetJSON(_ context.Context, _, url string, _ map[string]string) (map[string]any, error) {
	m.mu.Lock()
	m.urls = append(m.urls, url)
	m.mu.Unlock()
	return m.respond(url)
}

func (m *mockFetcher) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.urls)
}

func newGeocode(vendor GeocodeVendor, fetcher *mockFetcher, store cache.Store) *GeocodeProvider {
	return NewGeocode(vendor, fetcher, store, time.Hour, observability.NewMetricsForTesting(), testLogger, false)
}

func TestGeocodeProvider(t *testing.T) {
	ctx := context.Background()
	ottawa := domain.Coordinate{Latitude: 45.4215, Longitude: -75.6972}

	nominatimPayload := func() map[string]any {
		return map[string]any{
			"display_name": "Ottawa, Ontario, Canada",
			"lat":          "45.4215",
			"lon":          "-75.6972",
			"address": map[string]any{
				"city":         "Ottawa",
				"state":        "Ontario",
				"country":      "Canada",
				"country_code": "ca",
			},
		}
	}

	t.Run("reverse geocode normalizes the payload", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return nominatimPayload(), nil
		}}
		g := newGeocode(NominatimVendor(""), fetcher, nil)

		addr, err := g.ReverseGeocode(ctx, ottawa)
		require.NoError(t, err)
		assert.Equal(t, "CA", addr.CountryCode)
		assert.Equal(t, "Ottawa", addr.Locality)
		assert.Contains(t, fetcher.urls[0], "nominatim.openstreetmap.org/reverse")
	})

	t.Run("second identical lookup is served from cache", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return nominatimPayload(), nil
		}}
		g := newGeocode(NominatimVendor(""), fetcher, cache.NewMemory())

		first, err := g.ReverseGeocode(ctx, ottawa)
		require.NoError(t, err)
		second, err := g.ReverseGeocode(ctx, ottawa)
		require.NoError(t, err)

		assert.Equal(t, first.DisplayName, second.DisplayName)
		assert.Equal(t, 1, fetcher.calls())
	})

	t.Run("missing credentials short-circuit before any fetch", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			t.Fatal("fetch should not happen")
			return nil, nil
		}}
		g := newGeocode(GoogleMapsVendor(""), fetcher, nil)

		_, err := g.ReverseGeocode(ctx, ottawa)
		assert.ErrorIs(t, err, domain.ErrMissingCredentials)
		assert.Equal(t, 0, fetcher.calls())
	})

	t.Run("forward-only vendor rejects reverse lookups", func(t *testing.T) {
		g := newGeocode(OpenMeteoGeocodeVendor(), &mockFetcher{}, nil)
		_, err := g.ReverseGeocode(ctx, ottawa)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reverse")
	})

	t.Run("invalid coordinate is rejected without a fetch", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return nominatimPayload(), nil
		}}
		g := newGeocode(NominatimVendor(""), fetcher, nil)

		_, err := g.ReverseGeocode(ctx, domain.Coordinate{Latitude: 95})
		require.Error(t, err)
		assert.Equal(t, 0, fetcher.calls())
	})
}

// testWeatherSchema keeps provider tests independent of any real vendor
// mapping: flat current record, "hours" array with unix "dt" buckets.
func testWeatherSchema() normalize.WeatherSchema {
	bucketTime := func(rec map[string]any) (time.Time, bool) {
		v, ok := normalize.ResolveFloat(rec, "dt")
		if !ok {
			return time.Time{}, false
		}
		return time.Unix(int64(v), 0).UTC(), true
	}
	return normalize.WeatherSchema{
		Vendor: "testvendor",
		CurrentRecord: func(raw map[string]any) (map[string]any, error) {
			return raw, nil
		},
		HourlyRecords: func(raw map[string]any) ([]map[string]any, error) {
			hours, _ := raw["hours"].([]any)
			records := make([]map[string]any, 0, len(hours))
			for _, h := range hours {
				if rec, ok := h.(map[string]any); ok {
					records = append(records, rec)
				}
			}
			return records, nil
		},
		BucketTime:      bucketTime,
		ObservationTime: bucketTime,
		Fields: normalize.WeatherFields{
			Temperature: normalize.Field{Keys: []string{"temp"}},
		},
	}
}

func testWeatherVendor() WeatherVendor {
	return WeatherVendor{
		VendorSlug: "testvendor",
		Schema:     testWeatherSchema(),
		CurrentURL: func(coord domain.Coordinate, _ domain.Station) string {
			lat, lon := latLon(coord)
			return "https://weather.test/current?lat=" + lat + "&lon=" + lon
		},
		HistoricalURL: func(coord domain.Coordinate, _ domain.Station, at time.Time) string {
			lat, lon := latLon(coord)
			return "https://weather.test/history?lat=" + lat + "&lon=" + lon
		},
	}
}

func newWeatherProvider(vendor WeatherVendor, fetcher *mockFetcher, store cache.Store) *WeatherProvider {
	return NewWeather(vendor, fetcher, store, 10*time.Minute, observability.NewMetricsForTesting(), testLogger, false)
}

func TestWeatherProvider(t *testing.T) {
	ctx := context.Background()
	coord := domain.Coordinate{Latitude: 45.0, Longitude: -75.0}
	now := time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)

	clock := clockwork.NewFakeClockAt(now)
	domain.SetClock(clock)
	defer domain.SetClock(clockwork.NewRealClock())

	t.Run("zero time is a current lookup", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"temp": 21.5}, nil
		}}
		w := newWeatherProvider(testWeatherVendor(), fetcher, nil)

		cond, err := w.Conditions(ctx, coord, time.Time{})
		require.NoError(t, err)
		require.NotNil(t, cond.Temperature)
		assert.Equal(t, 21.5, *cond.Temperature)
		assert.Contains(t, fetcher.urls[0], "/current")
	})

	t.Run("a time within an hour of now stays current", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"temp": 20.0}, nil
		}}
		w := newWeatherProvider(testWeatherVendor(), fetcher, nil)

		_, err := w.Conditions(ctx, coord, now.Add(30*time.Minute))
		require.NoError(t, err)
		assert.Contains(t, fetcher.urls[0], "/current")
	})

	t.Run("an older time uses the historical endpoint and its bucket", func(t *testing.T) {
		requested := now.Add(-5 * time.Hour).Add(20 * time.Minute) // 07:20
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"hours": []any{
				map[string]any{"dt": float64(now.Add(-6 * time.Hour).Unix()), "temp": 10.0},
				map[string]any{"dt": float64(now.Add(-5 * time.Hour).Unix()), "temp": 11.0},
			}}, nil
		}}
		w := newWeatherProvider(testWeatherVendor(), fetcher, nil)

		cond, err := w.Conditions(ctx, coord, requested)
		require.NoError(t, err)
		require.NotNil(t, cond.Temperature)
		assert.Equal(t, 11.0, *cond.Temperature)
		assert.Contains(t, fetcher.urls[0], "/history")
	})

	t.Run("missing hour bucket is no results", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"hours": []any{}}, nil
		}}
		w := newWeatherProvider(testWeatherVendor(), fetcher, nil)

		_, err := w.Conditions(ctx, coord, now.Add(-5*time.Hour))
		assert.ErrorIs(t, err, domain.ErrNoResults)
	})

	t.Run("historical request against a forecast-only vendor fails", func(t *testing.T) {
		vendor := testWeatherVendor()
		vendor.HistoricalURL = nil
		w := newWeatherProvider(vendor, &mockFetcher{}, nil)

		_, err := w.Conditions(ctx, coord, now.Add(-5*time.Hour))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "historical")
	})

	t.Run("station in range pins the lookup", func(t *testing.T) {
		st := domain.Station{
			ID:         "KOTT1",
			Coordinate: domain.Coordinate{Latitude: 45.05, Longitude: -75.0},
		}
		vendor := testWeatherVendor()
		vendor.NetworkStations = station.Static{st}

		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"temp": 18.0}, nil
		}}
		w := newWeatherProvider(vendor, fetcher, nil)

		cond, err := w.Conditions(ctx, coord, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, "KOTT1", cond.StationID)
		assert.InDelta(t, 5560, cond.Distance, 50)
		assert.Contains(t, fetcher.urls[0], "lat=45.05")
	})

	t.Run("no station in range is not found", func(t *testing.T) {
		vendor := testWeatherVendor()
		vendor.NetworkStations = station.Static{{
			ID:         "far",
			Coordinate: domain.Coordinate{Latitude: 50.0, Longitude: -75.0},
		}}
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"temp": 18.0}, nil
		}}
		w := newWeatherProvider(vendor, fetcher, nil)

		_, err := w.Conditions(ctx, coord, time.Time{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, 0, fetcher.calls())
	})

	t.Run("repeat lookup hits the cache", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"temp": 21.5}, nil
		}}
		w := newWeatherProvider(testWeatherVendor(), fetcher, cache.NewMemory())

		first, err := w.Conditions(ctx, coord, time.Time{})
		require.NoError(t, err)
		second, err := w.Conditions(ctx, coord, time.Time{})
		require.NoError(t, err)

		assert.Equal(t, *first.Temperature, *second.Temperature)
		assert.Equal(t, 1, fetcher.calls())
	})

	t.Run("upstream errors pass through", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return nil, &domain.UpstreamError{Vendor: "testvendor", StatusCode: 503, Message: "down"}
		}}
		w := newWeatherProvider(testWeatherVendor(), fetcher, nil)

		_, err := w.Conditions(ctx, coord, time.Time{})
		var upstream *domain.UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, 503, upstream.StatusCode)
	})
}

func TestElevationProvider(t *testing.T) {
	ctx := context.Background()
	coord := domain.Coordinate{Latitude: 45.0, Longitude: -75.0}

	t.Run("extracts the elevation value", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"results": []any{map[string]any{"elevation": 74.0}}}, nil
		}}
		e := NewElevation(OpenElevationVendor(), fetcher, nil, time.Hour, observability.NewMetricsForTesting(), testLogger)

		elevation, err := e.Elevation(ctx, coord)
		require.NoError(t, err)
		assert.Equal(t, 74.0, elevation)
	})

	t.Run("zero elevation is a valid answer", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"elevation": []any{0.0}}, nil
		}}
		e := NewElevation(OpenMeteoElevationVendor(), fetcher, nil, time.Hour, observability.NewMetricsForTesting(), testLogger)

		elevation, err := e.Elevation(ctx, coord)
		require.NoError(t, err)
		assert.Equal(t, 0.0, elevation)
	})

	t.Run("missing value is a malformed response", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"results": []any{}}, nil
		}}
		e := NewElevation(OpenElevationVendor(), fetcher, nil, time.Hour, observability.NewMetricsForTesting(), testLogger)

		_, err := e.Elevation(ctx, coord)
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})

	t.Run("repeat lookup hits the cache", func(t *testing.T) {
		fetcher := &mockFetcher{respond: func(string) (map[string]any, error) {
			return map[string]any{"results": []any{map[string]any{"elevation": 74.5}}}, nil
		}}
		e := NewElevation(OpenElevationVendor(), fetcher, cache.NewMemory(), time.Hour, observability.NewMetricsForTesting(), testLogger)

		first, err := e.Elevation(ctx, coord)
		require.NoError(t, err)
		second, err := e.Elevation(ctx, coord)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, fetcher.calls())
	})
}

func TestStaticMapProvider(t *testing.T) {
	coord := domain.Coordinate{Latitude: 45.4215, Longitude: -75.6972}

	t.Run("osm url carries center, zoom, and marker", func(t *testing.T) {
		m := NewStaticMap(OSMStaticMap())
		u, err := m.StaticMapURL(coord, 12, 640, 480)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(u, "https://staticmap.openstreetmap.de/staticmap.php?"))
		assert.Contains(t, u, "zoom=12")
		assert.Contains(t, u, "640x480")
	})

	t.Run("google requires a key", func(t *testing.T) {
		m := NewStaticMap(GoogleStaticMap(""))
		_, err := m.StaticMapURL(coord, 12, 640, 480)
		assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	})

	t.Run("google url includes the key", func(t *testing.T) {
		m := NewStaticMap(GoogleStaticMap("g00gle"))
		u, err := m.StaticMapURL(coord, 12, 640, 480)
		require.NoError(t, err)
		assert.Contains(t, u, "key=g00gle")
	})

	t.Run("zoom and size are validated", func(t *testing.T) {
		m := NewStaticMap(OSMStaticMap())
		_, err := m.StaticMapURL(coord, 25, 640, 480)
		assert.Error(t, err)
		_, err = m.StaticMapURL(coord, 12, 0, 480)
		assert.Error(t, err)
	})
}
