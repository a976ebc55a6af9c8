package provider

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/geodata-service/internal/cache"
	"github.com/couchcryptid/geodata-service/internal/config"
	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/fetch"
	"github.com/couchcryptid/geodata-service/internal/normalize"
	"github.com/couchcryptid/geodata-service/internal/observability"
)

// openMeteoHourlyVars is the hourly variable list requested from both the
// forecast and archive endpoints; it must stay in sync with the field
// chains in the Open-Meteo schema.
const openMeteoHourlyVars = "temperature_2m,dew_point_2m,relative_humidity_2m,pressure_msl,surface_pressure,cloud_cover,wind_speed_10m,wind_direction_10m,wind_gusts_10m,rain,precipitation,snowfall,visibility,weather_code"

const openMeteoCurrentVars = "temperature_2m,dew_point_2m,relative_humidity_2m,pressure_msl,surface_pressure,cloud_cover,wind_speed_10m,wind_direction_10m,wind_gusts_10m,rain,precipitation,snowfall,uv_index,weather_code"

func latLon(coord domain.Coordinate) (string, string) {
	return strconv.FormatFloat(coord.Latitude, 'f', 6, 64),
		strconv.FormatFloat(coord.Longitude, 'f', 6, 64)
}

// NominatimVendor is the OSM Nominatim geocoder. contactEmail goes into
// the email parameter per the service's usage policy.
func NominatimVendor(contactEmail string) GeocodeVendor {
	common := func(q url.Values) url.Values {
		q.Set("format", "jsonv2")
		q.Set("addressdetails", "1")
		if contactEmail != "" {
			q.Set("email", contactEmail)
		}
		return q
	}
	return GeocodeVendor{
		VendorSlug: "nominatim",
		Schema:     normalize.Nominatim,
		ForwardURL: func(query string) string {
			q := common(url.Values{})
			q.Set("q", query)
			q.Set("limit", "1")
			return "https://nominatim.openstreetmap.org/search?" + q.Encode()
		},
		ReverseURL: func(coord domain.Coordinate) string {
			lat, lon := latLon(coord)
			q := common(url.Values{})
			q.Set("lat", lat)
			q.Set("lon", lon)
			return "https://nominatim.openstreetmap.org/reverse?" + q.Encode()
		},
	}
}

// GoogleMapsVendor is the Google Geocoding API.
func GoogleMapsVendor(apiKey string) GeocodeVendor {
	return GeocodeVendor{
		VendorSlug:  "googlemaps",
		Schema:      normalize.GoogleMaps,
		APIKey:      apiKey,
		RequiresKey: true,
		ForwardURL: func(query string) string {
			q := url.Values{}
			q.Set("address", query)
			q.Set("key", apiKey)
			return "https://maps.googleapis.com/maps/api/geocode/json?" + q.Encode()
		},
		ReverseURL: func(coord domain.Coordinate) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("latlng", lat+","+lon)
			q.Set("key", apiKey)
			return "https://maps.googleapis.com/maps/api/geocode/json?" + q.Encode()
		},
	}
}

// BingMapsVendor is the Bing Maps Locations API.
func BingMapsVendor(apiKey string) GeocodeVendor {
	return GeocodeVendor{
		VendorSlug:  "bingmaps",
		Schema:      normalize.BingMaps,
		APIKey:      apiKey,
		RequiresKey: true,
		ForwardURL: func(query string) string {
			q := url.Values{}
			q.Set("q", query)
			q.Set("maxResults", "1")
			q.Set("key", apiKey)
			return "https://dev.virtualearth.net/REST/v1/Locations?" + q.Encode()
		},
		ReverseURL: func(coord domain.Coordinate) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("key", apiKey)
			return "https://dev.virtualearth.net/REST/v1/Locations/" + lat + "," + lon + "?" + q.Encode()
		},
	}
}

// HereMapsVendor is the HERE geocoding and search API.
func HereMapsVendor(apiKey string) GeocodeVendor {
	return GeocodeVendor{
		VendorSlug:  "heremaps",
		Schema:      normalize.HereMaps,
		APIKey:      apiKey,
		RequiresKey: true,
		ForwardURL: func(query string) string {
			q := url.Values{}
			q.Set("q", query)
			q.Set("limit", "1")
			q.Set("apiKey", apiKey)
			return "https://geocode.search.hereapi.com/v1/geocode?" + q.Encode()
		},
		ReverseURL: func(coord domain.Coordinate) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("at", lat+","+lon)
			q.Set("limit", "1")
			q.Set("apiKey", apiKey)
			return "https://revgeocode.search.hereapi.com/v1/revgeocode?" + q.Encode()
		},
	}
}

// OpenMeteoGeocodeVendor is Open-Meteo's geocoding search API. Forward
// only.
func OpenMeteoGeocodeVendor() GeocodeVendor {
	return GeocodeVendor{
		VendorSlug: "openmeteo",
		Schema:     normalize.OpenMeteoGeocode,
		ForwardURL: func(query string) string {
			q := url.Values{}
			q.Set("name", query)
			q.Set("count", "1")
			return "https://geocoding-api.open-meteo.com/v1/search?" + q.Encode()
		},
	}
}

// OpenWeatherMapVendor is the OpenWeatherMap current weather and
// timemachine APIs.
func OpenWeatherMapVendor(apiKey string) WeatherVendor {
	return WeatherVendor{
		VendorSlug:  "openweathermap",
		Schema:      normalize.OpenWeatherMap,
		APIKey:      apiKey,
		RequiresKey: true,
		CurrentURL: func(coord domain.Coordinate, _ domain.Station) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("lat", lat)
			q.Set("lon", lon)
			q.Set("units", "metric")
			q.Set("appid", apiKey)
			return "https://api.openweathermap.org/data/2.5/weather?" + q.Encode()
		},
		HistoricalURL: func(coord domain.Coordinate, _ domain.Station, at time.Time) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("lat", lat)
			q.Set("lon", lon)
			q.Set("dt", strconv.FormatInt(at.UTC().Truncate(time.Hour).Unix(), 10))
			q.Set("units", "metric")
			q.Set("appid", apiKey)
			return "https://api.openweathermap.org/data/3.0/onecall/timemachine?" + q.Encode()
		},
	}
}

// OpenMeteoVendor is the Open-Meteo forecast and archive APIs. No key
// required.
func OpenMeteoVendor() WeatherVendor {
	return WeatherVendor{
		VendorSlug: "openmeteo",
		Schema:     normalize.OpenMeteo,
		CurrentURL: func(coord domain.Coordinate, _ domain.Station) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("latitude", lat)
			q.Set("longitude", lon)
			q.Set("current", openMeteoCurrentVars)
			q.Set("wind_speed_unit", "ms")
			q.Set("timezone", "UTC")
			return "https://api.open-meteo.com/v1/forecast?" + q.Encode()
		},
		HistoricalURL: func(coord domain.Coordinate, _ domain.Station, at time.Time) string {
			lat, lon := latLon(coord)
			day := at.UTC().Format("2006-01-02")
			q := url.Values{}
			q.Set("latitude", lat)
			q.Set("longitude", lon)
			q.Set("start_date", day)
			q.Set("end_date", day)
			q.Set("hourly", openMeteoHourlyVars)
			q.Set("wind_speed_unit", "ms")
			q.Set("timezone", "UTC")
			return "https://archive-api.open-meteo.com/v1/archive?" + q.Encode()
		},
	}
}

// WeatherAPIVendor is the weatherapi.com current and history APIs.
func WeatherAPIVendor(apiKey string) WeatherVendor {
	return WeatherVendor{
		VendorSlug:  "weatherapi",
		Schema:      normalize.WeatherAPI,
		APIKey:      apiKey,
		RequiresKey: true,
		CurrentURL: func(coord domain.Coordinate, _ domain.Station) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("key", apiKey)
			q.Set("q", lat+","+lon)
			return "https://api.weatherapi.com/v1/current.json?" + q.Encode()
		},
		HistoricalURL: func(coord domain.Coordinate, _ domain.Station, at time.Time) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("key", apiKey)
			q.Set("q", lat+","+lon)
			q.Set("dt", at.UTC().Format("2006-01-02"))
			return "https://api.weatherapi.com/v1/history.json?" + q.Encode()
		},
	}
}

// MetNoVendor is the MET Norway locationforecast API. The service requires
// an identifying User-Agent; contactEmail is appended when set. Forecast
// only, no archive.
func MetNoVendor(contactEmail string) WeatherVendor {
	agent := "geodata-service/1.0"
	if contactEmail != "" {
		agent += " " + contactEmail
	}
	return WeatherVendor{
		VendorSlug: "metno",
		Schema:     normalize.MetNo,
		Headers:    map[string]string{"User-Agent": agent},
		CurrentURL: func(coord domain.Coordinate, _ domain.Station) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("lat", lat)
			q.Set("lon", lon)
			return "https://api.met.no/weatherapi/locationforecast/2.0/compact?" + q.Encode()
		},
	}
}

// PirateWeatherVendor is the Pirate Weather forecast and time machine
// APIs. The key is a path segment, not a query parameter.
func PirateWeatherVendor(apiKey string) WeatherVendor {
	return WeatherVendor{
		VendorSlug:  "pirateweather",
		Schema:      normalize.PirateWeather,
		APIKey:      apiKey,
		RequiresKey: true,
		CurrentURL: func(coord domain.Coordinate, _ domain.Station) string {
			lat, lon := latLon(coord)
			return fmt.Sprintf("https://api.pirateweather.net/forecast/%s/%s,%s?units=si", apiKey, lat, lon)
		},
		HistoricalURL: func(coord domain.Coordinate, _ domain.Station, at time.Time) string {
			lat, lon := latLon(coord)
			return fmt.Sprintf("https://api.pirateweather.net/forecast/%s/%s,%s,%d?units=si",
				apiKey, lat, lon, at.UTC().Truncate(time.Hour).Unix())
		},
	}
}

// OpenElevationVendor is the open-elevation.com lookup API.
func OpenElevationVendor() ElevationVendor {
	return ElevationVendor{
		VendorSlug: "openelevation",
		URL: func(coord domain.Coordinate) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("locations", lat+","+lon)
			return "https://api.open-elevation.com/api/v1/lookup?" + q.Encode()
		},
		ValueKeys: []string{"results.0.elevation"},
	}
}

// OpenMeteoElevationVendor is Open-Meteo's 90 m digital elevation model
// API.
func OpenMeteoElevationVendor() ElevationVendor {
	return ElevationVendor{
		VendorSlug: "openmeteo",
		URL: func(coord domain.Coordinate) string {
			lat, lon := latLon(coord)
			q := url.Values{}
			q.Set("latitude", lat)
			q.Set("longitude", lon)
			return "https://api.open-meteo.com/v1/elevation?" + q.Encode()
		},
		ValueKeys: []string{"elevation.0"},
	}
}

// RegisterAll registers every in-tree vendor and activates the slugs named
// in cfg. Venue is a registered capability with no vendor yet, so no
// activation happens for it.
func RegisterAll(r *Registry, cfg *config.Config, fetcher fetch.Fetcher, store cache.Store, metrics *observability.Metrics, logger *slog.Logger) error {
	geocoders := []GeocodeVendor{
		NominatimVendor(cfg.ContactEmail),
		GoogleMapsVendor(cfg.GoogleMapsKey),
		BingMapsVendor(cfg.BingMapsKey),
		HereMapsVendor(cfg.HereMapsKey),
		OpenMeteoGeocodeVendor(),
	}
	for _, v := range geocoders {
		if err := r.Register(NewGeocode(v, fetcher, store, cfg.GeocodeCacheTTL, metrics, logger, cfg.Debug)); err != nil {
			return err
		}
	}

	weather := []WeatherVendor{
		OpenWeatherMapVendor(cfg.OpenWeatherMapKey),
		OpenMeteoVendor(),
		WeatherAPIVendor(cfg.WeatherAPIKey),
		MetNoVendor(cfg.ContactEmail),
		PirateWeatherVendor(cfg.PirateWeatherKey),
	}
	for _, v := range weather {
		v.CustomRadius = cfg.CustomStationRadiusMeters
		v.NetworkRadius = cfg.NetworkStationRadiusMeters
		if err := r.Register(NewWeather(v, fetcher, store, cfg.WeatherCacheTTL, metrics, logger, cfg.Debug)); err != nil {
			return err
		}
	}

	elevations := []ElevationVendor{
		OpenElevationVendor(),
		OpenMeteoElevationVendor(),
	}
	for _, v := range elevations {
		if err := r.Register(NewElevation(v, fetcher, store, cfg.GeocodeCacheTTL, metrics, logger)); err != nil {
			return err
		}
	}

	for _, v := range []MapVendor{OSMStaticMap(), GoogleStaticMap(cfg.GoogleMapsKey)} {
		if err := r.Register(NewStaticMap(v)); err != nil {
			return err
		}
	}

	activations := []struct {
		capability Capability
		slug       string
	}{
		{CapabilityGeocode, cfg.GeocoderSlug},
		{CapabilityWeather, cfg.WeatherSlug},
		{CapabilityElevation, cfg.ElevationSlug},
		{CapabilityMap, cfg.MapSlug},
	}
	for _, a := range activations {
		if err := r.SetActive(a.capability, a.slug); err != nil {
			return err
		}
	}
	return nil
}
