package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

func TestNominatimReverse(t *testing.T) {
	raw := decode(t, `{
		"lat": "45.01", "lon": "-75.44",
		"display_name": "Ottawa, Ontario, Canada",
		"address": {
			"city": "Ottawa",
			"state": "Ontario",
			"country": "Canada",
			"country_code": "ca",
			"postcode": "K1A 0A6"
		}
	}`)

	addr, err := Address(Nominatim, raw, domain.Coordinate{Latitude: 45.01, Longitude: -75.44}, false)
	require.NoError(t, err)

	assert.Equal(t, "CA", addr.CountryCode)
	assert.Equal(t, "Canada", addr.CountryName)
	assert.Equal(t, "Ontario", addr.Region)
	assert.Equal(t, "ON", addr.RegionCode, "derived from the region table")
	assert.Equal(t, "Ottawa", addr.Locality)
	assert.Equal(t, "K1A 0A6", addr.PostalCode)
	assert.Contains(t, addr.DisplayName, "Ottawa")
	assert.Contains(t, addr.DisplayName, "Ontario")
	assert.Equal(t, 45.01, addr.Latitude)
	assert.Equal(t, -75.44, addr.Longitude)
	assert.Nil(t, addr.Raw, "raw payload withheld without the debug flag")
}

func TestNominatimLocalityFallbackChain(t *testing.T) {
	// Small places report town or village instead of city.
	raw := decode(t, `{
		"lat": "48.1", "lon": "11.3",
		"address": {
			"village": "Kleindorf",
			"house_number": "5",
			"road": "Hauptstraße",
			"state": "Bayern",
			"country_code": "de"
		}
	}`)

	addr, err := Address(Nominatim, raw, domain.Coordinate{}, false)
	require.NoError(t, err)

	assert.Equal(t, "Kleindorf", addr.Locality)
	assert.Equal(t, "Hauptstraße 5", addr.StreetAddress, "German order puts the number last")
	assert.Equal(t, "BY", addr.RegionCode)
	assert.NotEmpty(t, addr.DisplayName)
	assert.Contains(t, addr.DisplayName, "Kleindorf")
}

func TestNominatimNumberFirstCountries(t *testing.T) {
	raw := decode(t, `{
		"lat": "38.89", "lon": "-77.03",
		"address": {
			"house_number": "1600",
			"road": "Pennsylvania Avenue",
			"city": "Washington",
			"state": "District of Columbia",
			"country_code": "us"
		}
	}`)

	addr, err := Address(Nominatim, raw, domain.Coordinate{}, false)
	require.NoError(t, err)
	assert.Equal(t, "1600 Pennsylvania Avenue", addr.StreetAddress)
	assert.Equal(t, "DC", addr.RegionCode)
}

func TestNominatimNoResults(t *testing.T) {
	raw := decode(t, `{"error": "Unable to geocode"}`)
	_, err := Address(Nominatim, raw, domain.Coordinate{}, false)
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestNominatimForwardWrappedArray(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		raw := decode(t, `{"results": []}`)
		_, err := Address(Nominatim, raw, domain.Coordinate{}, false)
		assert.ErrorIs(t, err, domain.ErrNoResults)
	})

	t.Run("first result wins", func(t *testing.T) {
		raw := decode(t, `{"results": [
			{"lat": "51.5", "lon": "-0.12", "display_name": "London, England, United Kingdom",
			 "address": {"city": "London", "state": "England", "country_code": "gb"}},
			{"lat": "42.98", "lon": "-81.24", "display_name": "London, Ontario, Canada",
			 "address": {"city": "London", "state": "Ontario", "country_code": "ca"}}
		]}`)
		addr, err := Address(Nominatim, raw, domain.Coordinate{}, false)
		require.NoError(t, err)
		assert.Equal(t, "GB", addr.CountryCode)
	})
}

func TestNominatimMalformed(t *testing.T) {
	raw := decode(t, `{"lat": "1", "lon": "2"}`)
	_, err := Address(Nominatim, raw, domain.Coordinate{}, false)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestDisplayNameSynthesis(t *testing.T) {
	// No display_name from the vendor: synthesized from parts, and it must
	// contain the locality or country name whenever either is present.
	raw := decode(t, `{
		"lat": "45.0", "lon": "-75.0",
		"address": {"city": "Ottawa", "state": "Ontario", "country": "Canada", "country_code": "ca"}
	}`)

	addr, err := Address(Nominatim, raw, domain.Coordinate{}, false)
	require.NoError(t, err)
	assert.Equal(t, "Ottawa, Ontario, Canada", addr.DisplayName)
}

func TestDisplayNameCoordinateFallback(t *testing.T) {
	// A record with no textual fields at all still needs a display name.
	raw := decode(t, `{"lat": "12.5", "lon": "-7.25", "address": {"country_code": "xq"}}`)

	addr, err := Address(Nominatim, raw, domain.Coordinate{}, false)
	require.NoError(t, err)
	assert.Equal(t, "12.50000, -7.25000", addr.DisplayName)
}

func TestGoogleFlattening(t *testing.T) {
	raw := decode(t, `{
		"status": "OK",
		"results": [{
			"formatted_address": "1600 Pennsylvania Ave NW, Washington, DC 20500, USA",
			"geometry": {"location": {"lat": 38.8977, "lng": -77.0365}},
			"address_components": [
				{"long_name": "1600", "short_name": "1600", "types": ["street_number"]},
				{"long_name": "Pennsylvania Avenue Northwest", "short_name": "Pennsylvania Ave NW", "types": ["route"]},
				{"long_name": "Washington", "short_name": "Washington", "types": ["locality", "political"]},
				{"long_name": "District of Columbia", "short_name": "DC", "types": ["administrative_area_level_1", "political"]},
				{"long_name": "United States", "short_name": "US", "types": ["country", "political"]},
				{"long_name": "20500", "short_name": "20500", "types": ["postal_code"]}
			]
		}]
	}`)

	addr, err := Address(GoogleMaps, raw, domain.Coordinate{}, false)
	require.NoError(t, err)

	assert.Equal(t, "US", addr.CountryCode)
	assert.Equal(t, "United States", addr.CountryName)
	assert.Equal(t, "Washington", addr.Locality)
	assert.Equal(t, "District of Columbia", addr.Region)
	assert.Equal(t, "DC", addr.RegionCode, "short_name supplied by the vendor wins")
	assert.Equal(t, "1600 Pennsylvania Avenue Northwest", addr.StreetAddress)
	assert.Equal(t, "20500", addr.PostalCode)
	assert.Equal(t, 38.8977, addr.Latitude)
	assert.Equal(t, "1600 Pennsylvania Ave NW, Washington, DC 20500, USA", addr.DisplayName)
}

func TestGoogleStatuses(t *testing.T) {
	t.Run("zero results", func(t *testing.T) {
		raw := decode(t, `{"status": "ZERO_RESULTS", "results": []}`)
		_, err := Address(GoogleMaps, raw, domain.Coordinate{}, false)
		assert.ErrorIs(t, err, domain.ErrNoResults)
	})

	t.Run("error envelope", func(t *testing.T) {
		raw := decode(t, `{"status": "REQUEST_DENIED", "error_message": "The provided API key is invalid."}`)
		_, err := Address(GoogleMaps, raw, domain.Coordinate{}, false)
		var upstream *domain.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, "google", upstream.Vendor)
		assert.Contains(t, upstream.Message, "invalid")
	})

	t.Run("missing status", func(t *testing.T) {
		raw := decode(t, `{"results": []}`)
		_, err := Address(GoogleMaps, raw, domain.Coordinate{}, false)
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	})
}

func TestBing(t *testing.T) {
	raw := decode(t, `{
		"resourceSets": [{"estimatedTotal": 1, "resources": [{
			"name": "Ottawa, ON",
			"point": {"coordinates": [45.4215, -75.6972]},
			"address": {
				"addressLine": "123 Bank St",
				"locality": "Ottawa",
				"adminDistrict": "ON",
				"countryRegion": "Canada",
				"countryRegionIso2": "CA",
				"postalCode": "K2P 1X3",
				"formattedAddress": "123 Bank St, Ottawa, ON K2P 1X3"
			}
		}]}]
	}`)

	addr, err := Address(BingMaps, raw, domain.Coordinate{}, false)
	require.NoError(t, err)

	assert.Equal(t, "CA", addr.CountryCode)
	assert.Equal(t, "Ottawa", addr.Locality)
	assert.Equal(t, "ON", addr.RegionCode, "code supplied in the name slot resolves to itself")
	assert.Equal(t, 45.4215, addr.Latitude)
	assert.Equal(t, -75.6972, addr.Longitude)
	assert.Equal(t, "123 Bank St, Ottawa, ON K2P 1X3", addr.DisplayName)
}

func TestBingNoResults(t *testing.T) {
	raw := decode(t, `{"resourceSets": [{"estimatedTotal": 0, "resources": []}]}`)
	_, err := Address(BingMaps, raw, domain.Coordinate{}, false)
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestHere(t *testing.T) {
	raw := decode(t, `{
		"items": [{
			"title": "Parliament Hill",
			"position": {"lat": 45.4236, "lng": -75.7009},
			"address": {
				"label": "Parliament Hill, Ottawa, ON, Canada",
				"countryCode": "CAN",
				"countryName": "Canada",
				"state": "Ontario",
				"stateCode": "ON",
				"city": "Ottawa",
				"street": "Wellington St",
				"houseNumber": "111",
				"postalCode": "K1A 0A9"
			}
		}]
	}`)

	addr, err := Address(HereMaps, raw, domain.Coordinate{}, false)
	require.NoError(t, err)

	assert.Equal(t, "CA", addr.CountryCode, "alpha-3 folded to alpha-2")
	assert.Equal(t, "ON", addr.RegionCode)
	assert.Equal(t, "111 Wellington St", addr.StreetAddress)
	assert.Equal(t, "Parliament Hill", addr.Name)
}

func TestOpenMeteoGeocode(t *testing.T) {
	raw := decode(t, `{
		"results": [{
			"name": "Ottawa", "latitude": 45.41117, "longitude": -75.69812,
			"elevation": 70, "country_code": "CA", "country": "Canada",
			"admin1": "Ontario", "timezone": "America/Toronto"
		}]
	}`)

	addr, err := Address(OpenMeteoGeocode, raw, domain.Coordinate{}, false)
	require.NoError(t, err)

	assert.Equal(t, "Ottawa", addr.Locality)
	assert.Equal(t, "America/Toronto", addr.Timezone)
	require.NotNil(t, addr.Altitude)
	assert.Equal(t, 70.0, *addr.Altitude)
	assert.Equal(t, "ON", addr.RegionCode)

	t.Run("zero matches omit the key", func(t *testing.T) {
		_, err := Address(OpenMeteoGeocode, decode(t, `{"generationtime_ms": 0.5}`), domain.Coordinate{}, false)
		assert.ErrorIs(t, err, domain.ErrNoResults)
	})
}

func TestAddressDebugRaw(t *testing.T) {
	raw := decode(t, `{"lat": "1", "lon": "2", "address": {"city": "X", "country_code": "fr"}}`)
	addr, err := Address(Nominatim, raw, domain.Coordinate{}, true)
	require.NoError(t, err)
	assert.Equal(t, raw, addr.Raw)
}

func TestAltitudeZeroSurvives(t *testing.T) {
	// Numeric zero altitude is data, not absence.
	raw := decode(t, `{"results": [{"name": "Dead Sea Shore", "latitude": 31.5, "longitude": 35.47, "elevation": 0, "country_code": "IL", "country": "Israel"}]}`)
	addr, err := Address(OpenMeteoGeocode, raw, domain.Coordinate{}, false)
	require.NoError(t, err)
	require.NotNil(t, addr.Altitude)
	assert.Zero(t, *addr.Altitude)
}
