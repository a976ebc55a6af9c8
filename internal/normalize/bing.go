package normalize

import (
	"fmt"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// BingMaps maps the Bing Locations API. Resources nest two levels deep
// (resourceSets → resources); an empty resource list is the zero-match
// signal even though estimatedTotal is also present.
var BingMaps = AddressSchema{
	Vendor: "bing",
	Flatten: func(raw map[string]any) (map[string]any, error) {
		sets, _ := raw["resourceSets"].([]any)
		if len(sets) == 0 {
			return nil, fmt.Errorf("bing: missing resourceSets: %w", domain.ErrMalformedResponse)
		}
		set, ok := sets[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("bing: non-object resource set: %w", domain.ErrMalformedResponse)
		}
		resources, _ := set["resources"].([]any)
		if len(resources) == 0 {
			return nil, domain.ErrNoResults
		}
		rec, ok := resources[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("bing: non-object resource: %w", domain.ErrMalformedResponse)
		}
		return rec, nil
	},

	NameKeys: []string{"name"},
	// addressLine is already number+street in local order; Bing never
	// splits them, so it flows through the street slot whole.
	StreetKeys:      []string{"address.addressLine"},
	ExtendedKeys:    []string{"address.neighborhood"},
	LocalityKeys:    []string{"address.locality"},
	RegionKeys:      []string{"address.adminDistrict"},
	CountryCodeKeys: []string{"address.countryRegionIso2"},
	CountryNameKeys: []string{"address.countryRegion"},
	PostalCodeKeys:  []string{"address.postalCode"},
	DisplayNameKeys: []string{"address.formattedAddress"},
	LatKeys:         []string{"point.coordinates.0"},
	LonKeys:         []string{"point.coordinates.1"},
}
