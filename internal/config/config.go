package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	Debug           bool

	// Active provider slug per capability.
	GeocoderSlug  string
	WeatherSlug   string
	ElevationSlug string
	MapSlug       string

	// Vendor credentials. Empty unless the vendor is in use.
	GoogleMapsKey     string
	BingMapsKey       string
	HereMapsKey       string
	OpenWeatherMapKey string
	WeatherAPIKey     string
	PirateWeatherKey  string

	// Contact address Nominatim and MET Norway ask API consumers to send.
	ContactEmail string

	GeocodeCacheTTL time.Duration
	WeatherCacheTTL time.Duration
	StationCacheTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	VendorRatePerSecond float64
	VendorBurst         int

	CustomStationRadiusMeters  float64
	NetworkStationRadiusMeters float64
}

// keyedVendors maps a provider slug to the Config credential it requires.
var keyedVendors = map[string]func(*Config) string{
	"googlemaps":     func(c *Config) string { return c.GoogleMapsKey },
	"bingmaps":       func(c *Config) string { return c.BingMapsKey },
	"heremaps":       func(c *Config) string { return c.HereMapsKey },
	"openweathermap": func(c *Config) string { return c.OpenWeatherMapKey },
	"weatherapi":     func(c *Config) string { return c.WeatherAPIKey },
	"pirateweather":  func(c *Config) string { return c.PirateWeatherKey },
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	geocodeTTL, err := parseDuration("GEOCODE_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}
	weatherTTL, err := parseDuration("WEATHER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	stationTTL, err := parseDuration("STATION_CACHE_TTL", "15m")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		Debug:           os.Getenv("DEBUG") == "true",

		GeocoderSlug:  envOrDefault("GEOCODER", "nominatim"),
		WeatherSlug:   envOrDefault("WEATHER_PROVIDER", "openmeteo"),
		ElevationSlug: envOrDefault("ELEVATION_PROVIDER", "openelevation"),
		MapSlug:       envOrDefault("MAP_PROVIDER", "osm"),

		GoogleMapsKey:     os.Getenv("GOOGLE_MAPS_KEY"),
		BingMapsKey:       os.Getenv("BING_MAPS_KEY"),
		HereMapsKey:       os.Getenv("HERE_MAPS_KEY"),
		OpenWeatherMapKey: os.Getenv("OPENWEATHERMAP_KEY"),
		WeatherAPIKey:     os.Getenv("WEATHERAPI_KEY"),
		PirateWeatherKey:  os.Getenv("PIRATEWEATHER_KEY"),

		ContactEmail: os.Getenv("CONTACT_EMAIL"),

		GeocodeCacheTTL: geocodeTTL,
		WeatherCacheTTL: weatherTTL,
		StationCacheTTL: stationTTL,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       parseInt("REDIS_DB", 0),

		VendorRatePerSecond: parseFloat("VENDOR_RATE_PER_SECOND", 5),
		VendorBurst:         parseInt("VENDOR_BURST", 2),

		CustomStationRadiusMeters:  parseFloat("CUSTOM_STATION_RADIUS_METERS", 10_000),
		NetworkStationRadiusMeters: parseFloat("NETWORK_STATION_RADIUS_METERS", 100_000),
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	for _, slug := range []string{cfg.GeocoderSlug, cfg.WeatherSlug, cfg.ElevationSlug, cfg.MapSlug} {
		if key, ok := keyedVendors[slug]; ok && key(cfg) == "" {
			return nil, fmt.Errorf("provider %q is active but its API key is not set", slug)
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

func parseFloat(key string, fallback float64) float64 {
	if s := os.Getenv(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return fallback
}
