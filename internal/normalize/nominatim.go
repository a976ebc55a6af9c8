package normalize

import (
	"fmt"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// Nominatim covers the OSM Nominatim API and its compatible hosted
// offshoots (LocationIQ, MapQuest Open). Reverse lookups return a single
// object; forward lookups return a top-level array, which the fetch layer
// wraps under "results".
//
// A zero-match reverse lookup is a 200 with an "error" key, not a non-2xx.
var Nominatim = AddressSchema{
	Vendor: "nominatim",
	Flatten: func(raw map[string]any) (map[string]any, error) {
		if _, hasErr := raw["error"]; hasErr {
			return nil, domain.ErrNoResults
		}
		rec := raw
		if results, ok := raw["results"].([]any); ok {
			if len(results) == 0 {
				return nil, domain.ErrNoResults
			}
			first, ok := results[0].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("nominatim: non-object result: %w", domain.ErrMalformedResponse)
			}
			rec = first
		}
		if _, ok := rec["address"].(map[string]any); !ok {
			return nil, fmt.Errorf("nominatim: missing address block: %w", domain.ErrMalformedResponse)
		}
		return rec, nil
	},

	NameKeys:         []string{"namedetails.name", "name"},
	StreetNumberKeys: []string{"address.house_number"},
	StreetKeys:       []string{"address.road", "address.pedestrian", "address.footway", "address.cycleway"},
	ExtendedKeys:     []string{"address.suburb", "address.neighbourhood", "address.quarter"},
	LocalityKeys:     []string{"address.city", "address.town", "address.village", "address.hamlet", "address.municipality"},
	RegionKeys:       []string{"address.state", "address.region", "address.state_district", "address.county"},
	RegionOverrides: map[string][]string{
		// US and FR administrative naming puts the useful value in
		// state/county; region and state_district are noise there.
		"US": {"address.state", "address.county", "address.region", "address.state_district"},
		"FR": {"address.state", "address.county", "address.region", "address.state_district"},
	},
	CountryCodeKeys: []string{"address.country_code"},
	CountryNameKeys: []string{"address.country"},
	PostalCodeKeys:  []string{"address.postcode"},
	DisplayNameKeys: []string{"display_name"},
	LatKeys:         []string{"lat"},
	LonKeys:         []string{"lon"},
}
