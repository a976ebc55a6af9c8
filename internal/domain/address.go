package domain

import "strings"

// Address is the normalized output of any geocode or reverse-geocode call.
// All fields except DisplayName are optional; DisplayName is never empty in
// a successful result — normalizers synthesize it when the vendor omits one.
type Address struct {
	Name            string `json:"name,omitempty"`
	StreetNumber    string `json:"street_number,omitempty"`
	Street          string `json:"street,omitempty"`
	StreetAddress   string `json:"street_address,omitempty"` // number + street in country order
	ExtendedAddress string `json:"extended_address,omitempty"`
	Locality        string `json:"locality,omitempty"`
	Region          string `json:"region,omitempty"`
	RegionCode      string `json:"region_code,omitempty"`
	CountryName     string `json:"country_name,omitempty"`
	CountryCode     string `json:"country_code,omitempty"` // ISO-3166 alpha-2
	PostalCode      string `json:"postal_code,omitempty"`
	DisplayName     string `json:"display_name"`

	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`

	URL      string `json:"url,omitempty"`
	Photo    string `json:"photo,omitempty"`
	Timezone string `json:"timezone,omitempty"` // IANA identifier when known

	// Raw carries the vendor payload for debugging. Populated only when
	// the caller asked for it; never cached, never serialized by default.
	Raw map[string]any `json:"-"`
}

// ComposeDisplayName joins the non-empty parts with commas, the synthesis
// rule for addresses whose vendor supplied no display name.
func ComposeDisplayName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
