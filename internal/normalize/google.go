package normalize

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// GoogleMaps maps the Google Geocoding API. Google reports addresses as a
// typed component list rather than named fields, so the flattener indexes
// components by type into a flat record before the candidate chains run.
var GoogleMaps = AddressSchema{
	Vendor:  "google",
	Flatten: flattenGoogle,

	StreetNumberKeys: []string{"street_number"},
	StreetKeys:       []string{"route"},
	ExtendedKeys:     []string{"sublocality", "neighborhood"},
	LocalityKeys:     []string{"locality", "postal_town", "administrative_area_level_3"},
	RegionKeys:       []string{"administrative_area_level_1"},
	RegionCodeKeys:   []string{"administrative_area_level_1_code"},
	CountryCodeKeys:  []string{"country_code"},
	CountryNameKeys:  []string{"country"},
	PostalCodeKeys:   []string{"postal_code"},
	DisplayNameKeys:  []string{"formatted_address"},
	LatKeys:          []string{"lat"},
	LonKeys:          []string{"lng"},
}

func flattenGoogle(raw map[string]any) (map[string]any, error) {
	status, _ := raw["status"].(string)
	switch status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, domain.ErrNoResults
	case "":
		return nil, fmt.Errorf("google: missing status: %w", domain.ErrMalformedResponse)
	default:
		msg, _ := raw["error_message"].(string)
		if msg == "" {
			msg = status
		}
		return nil, &domain.UpstreamError{Vendor: "google", StatusCode: 200, Message: msg}
	}

	results, _ := raw["results"].([]any)
	if len(results) == 0 {
		return nil, domain.ErrNoResults
	}
	first, ok := results[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("google: non-object result: %w", domain.ErrMalformedResponse)
	}

	rec := map[string]any{}
	if fa, ok := first["formatted_address"]; ok {
		rec["formatted_address"] = fa
	}
	if lat, ok := Resolve(first, "geometry.location.lat"); ok {
		rec["lat"] = lat
	}
	if lng, ok := Resolve(first, "geometry.location.lng"); ok {
		rec["lng"] = lng
	}

	components, _ := first["address_components"].([]any)
	for _, c := range components {
		comp, ok := c.(map[string]any)
		if !ok {
			continue
		}
		long, _ := comp["long_name"].(string)
		short, _ := comp["short_name"].(string)
		types, _ := comp["types"].([]any)
		for _, t := range types {
			typ, _ := t.(string)
			switch typ {
			case "political", "":
				continue
			case "country":
				rec["country"] = long
				rec["country_code"] = strings.ToUpper(short)
			case "administrative_area_level_1":
				rec["administrative_area_level_1"] = long
				rec["administrative_area_level_1_code"] = short
			default:
				if _, exists := rec[typ]; !exists {
					rec[typ] = long
				}
			}
		}
	}
	return rec, nil
}
