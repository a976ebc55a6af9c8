package provider

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// StaticMap builds a URL for a static map image centered on a coordinate.
// No tiles are fetched or rendered here; the caller embeds the URL.
type StaticMap interface {
	Provider
	StaticMapURL(coord domain.Coordinate, zoom, width, height int) (string, error)
}

// MapVendor describes one static map vendor as a URL builder.
type MapVendor struct {
	VendorSlug  string
	Build       func(coord domain.Coordinate, zoom, width, height int, apiKey string) string
	APIKey      string
	RequiresKey bool
}

// MapProvider wraps a MapVendor as a registry provider.
type MapProvider struct {
	vendor MapVendor
}

func NewStaticMap(vendor MapVendor) *MapProvider {
	return &MapProvider{vendor: vendor}
}

func (m *MapProvider) Slug() string           { return m.vendor.VendorSlug }
func (m *MapProvider) Capability() Capability { return CapabilityMap }

func (m *MapProvider) StaticMapURL(coord domain.Coordinate, zoom, width, height int) (string, error) {
	if m.vendor.RequiresKey && m.vendor.APIKey == "" {
		return "", fmt.Errorf("%s: %w", m.Slug(), domain.ErrMissingCredentials)
	}
	if err := coord.Validate(); err != nil {
		return "", err
	}
	if zoom < 0 || zoom > 19 {
		return "", fmt.Errorf("zoom %d out of range 0-19", zoom)
	}
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid map size %dx%d", width, height)
	}
	return m.vendor.Build(coord, zoom, width, height, m.vendor.APIKey), nil
}

// OSMStaticMap builds the openstreetmap.de static map URL.
func OSMStaticMap() MapVendor {
	return MapVendor{
		VendorSlug: "osm",
		Build: func(coord domain.Coordinate, zoom, width, height int, _ string) string {
			q := url.Values{}
			q.Set("center", formatCoord(coord))
			q.Set("zoom", strconv.Itoa(zoom))
			q.Set("size", fmt.Sprintf("%dx%d", width, height))
			q.Set("markers", formatCoord(coord)+",red-pushpin")
			return "https://staticmap.openstreetmap.de/staticmap.php?" + q.Encode()
		},
	}
}

// GoogleStaticMap builds the Google Static Maps URL. Requires an API key.
func GoogleStaticMap(apiKey string) MapVendor {
	return MapVendor{
		VendorSlug:  "googlemaps",
		APIKey:      apiKey,
		RequiresKey: true,
		Build: func(coord domain.Coordinate, zoom, width, height int, key string) string {
			q := url.Values{}
			q.Set("center", formatCoord(coord))
			q.Set("zoom", strconv.Itoa(zoom))
			q.Set("size", fmt.Sprintf("%dx%d", width, height))
			q.Set("markers", "color:red|"+formatCoord(coord))
			q.Set("key", key)
			return "https://maps.googleapis.com/maps/api/staticmap?" + q.Encode()
		},
	}
}

func formatCoord(coord domain.Coordinate) string {
	return strconv.FormatFloat(coord.Latitude, 'f', 6, 64) + "," + strconv.FormatFloat(coord.Longitude, 'f', 6, 64)
}
