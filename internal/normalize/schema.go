package normalize

import "time"

// AddressSchema describes how one geocoding vendor's payload maps onto the
// canonical address record. The engine in address.go is vendor-agnostic;
// everything vendor-specific lives in these fields.
type AddressSchema struct {
	Vendor string

	// Flatten validates the raw decoded payload and reduces it to the flat
	// record the candidate chains run against. It returns
	// domain.ErrNoResults for the vendor's zero-match signal (empty array,
	// status field, missing key — each vendor differs) and
	// domain.ErrMalformedResponse when the expected shape is absent.
	Flatten func(raw map[string]any) (map[string]any, error)

	NameKeys         []string
	StreetNumberKeys []string
	StreetKeys       []string
	ExtendedKeys     []string
	LocalityKeys     []string
	RegionKeys       []string
	RegionCodeKeys   []string
	CountryCodeKeys  []string
	CountryNameKeys  []string
	PostalCodeKeys   []string
	DisplayNameKeys  []string
	TimezoneKeys     []string
	URLKeys          []string
	PhotoKeys        []string
	LatKeys          []string
	LonKeys          []string
	AltKeys          []string

	// RegionOverrides replaces RegionKeys for specific countries whose
	// administrative hierarchy makes a different chain order correct
	// (e.g. Nominatim: US and FR prefer state/county before region).
	RegionOverrides map[string][]string
}

// regionChain returns the candidate chain to use for the given country.
func (s AddressSchema) regionChain(countryCode string) []string {
	if chain, ok := s.RegionOverrides[countryCode]; ok {
		return chain
	}
	return s.RegionKeys
}

// Field is one numeric weather quantity: where to find it and how to bring
// it into SI units. A nil Convert means the vendor already reports SI.
type Field struct {
	Keys    []string
	Convert func(float64) float64
}

// WeatherFields maps every canonical conditions quantity to its vendor field.
// A Field with no Keys means the vendor never reports that quantity.
type WeatherFields struct {
	Temperature Field
	Dewpoint    Field
	Humidity    Field
	Pressure    Field
	Cloudiness  Field
	WindSpeed   Field
	WindDegree  Field
	WindGust    Field
	Rain        Field
	Snow        Field
	Visibility  Field
	UVIndex     Field
}

// WeatherSchema describes how one weather vendor's payload maps onto the
// canonical conditions record, for both retrieval modes.
type WeatherSchema struct {
	Vendor string

	// CurrentRecord validates the payload and selects the "now" object.
	CurrentRecord func(raw map[string]any) (map[string]any, error)

	// HourlyRecords validates the payload and expands it into one record
	// per hour bucket for historical mode. Vendors with column-oriented
	// time series (Open-Meteo) re-shape here so the field chains still
	// apply per record. May be nil for vendors without a historical API.
	HourlyRecords func(raw map[string]any) ([]map[string]any, error)

	// BucketTime extracts the bucket timestamp from one hourly record.
	BucketTime func(record map[string]any) (time.Time, bool)

	// ObservationTime extracts the reading time from a current record;
	// the engine falls back to the request time when absent.
	ObservationTime func(record map[string]any) (time.Time, bool)

	Fields WeatherFields

	// Condition translates the vendor's own code/icon/text into the shared
	// condition-code space plus a summary string. Unmapped values return
	// domain.CodeUnknown, never an error.
	Condition func(record map[string]any) (code int, summary string)
}
