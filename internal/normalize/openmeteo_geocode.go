package normalize

import (
	"fmt"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// OpenMeteoGeocode maps the Open-Meteo geocoding API (forward only — the
// service has no reverse endpoint). Notable extras: an IANA timezone and a
// model elevation per match, which flow into the canonical record.
var OpenMeteoGeocode = AddressSchema{
	Vendor: "openmeteo-geocode",
	Flatten: func(raw map[string]any) (map[string]any, error) {
		if reason, ok := raw["reason"].(string); ok {
			return nil, &domain.UpstreamError{Vendor: "openmeteo-geocode", StatusCode: 200, Message: reason}
		}
		results, ok := raw["results"].([]any)
		if !ok || len(results) == 0 {
			// Open-Meteo omits the key entirely on zero matches.
			return nil, domain.ErrNoResults
		}
		rec, ok := results[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("openmeteo-geocode: non-object result: %w", domain.ErrMalformedResponse)
		}
		return rec, nil
	},

	NameKeys:        []string{"name"},
	LocalityKeys:    []string{"name"},
	RegionKeys:      []string{"admin1"},
	ExtendedKeys:    []string{"admin2", "admin3"},
	CountryCodeKeys: []string{"country_code"},
	CountryNameKeys: []string{"country"},
	PostalCodeKeys:  []string{"postcodes.0"},
	TimezoneKeys:    []string{"timezone"},
	LatKeys:         []string{"latitude"},
	LonKeys:         []string{"longitude"},
	AltKeys:         []string{"elevation"},
}
