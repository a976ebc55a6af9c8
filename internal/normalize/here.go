package normalize

import (
	"fmt"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// HereMaps maps the HERE Geocoding & Search v7 API. HERE reports alpha-3
// country codes; the engine's ISO normalization folds them to alpha-2.
var HereMaps = AddressSchema{
	Vendor: "here",
	Flatten: func(raw map[string]any) (map[string]any, error) {
		if _, hasErr := raw["error"]; hasErr {
			title, _ := raw["error_description"].(string)
			return nil, &domain.UpstreamError{Vendor: "here", StatusCode: 200, Message: title}
		}
		items, ok := raw["items"].([]any)
		if !ok {
			return nil, fmt.Errorf("here: missing items: %w", domain.ErrMalformedResponse)
		}
		if len(items) == 0 {
			return nil, domain.ErrNoResults
		}
		rec, ok := items[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("here: non-object item: %w", domain.ErrMalformedResponse)
		}
		return rec, nil
	},

	NameKeys:         []string{"title"},
	StreetNumberKeys: []string{"address.houseNumber"},
	StreetKeys:       []string{"address.street"},
	ExtendedKeys:     []string{"address.district", "address.subdistrict"},
	LocalityKeys:     []string{"address.city"},
	RegionKeys:       []string{"address.state", "address.county"},
	RegionCodeKeys:   []string{"address.stateCode"},
	CountryCodeKeys:  []string{"address.countryCode"},
	CountryNameKeys:  []string{"address.countryName"},
	PostalCodeKeys:   []string{"address.postalCode"},
	DisplayNameKeys:  []string{"address.label"},
	LatKeys:          []string{"position.lat"},
	LonKeys:          []string{"position.lng"},
}
