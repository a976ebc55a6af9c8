package normalize

import (
	"fmt"

	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/ref"
)

// Address runs the vendor-agnostic normalization pipeline over a raw
// geocoding payload: validate/flatten, extract the country, resolve each
// canonical field through its fallback chain, compose the street address
// in country order, derive the region code, and synthesize a display name
// when the vendor supplied none.
//
// req is the coordinate the caller asked about; it backfills lat/lon when
// the vendor omits them (common for reverse lookups). The returned address
// always has a non-empty DisplayName on success.
func Address(s AddressSchema, raw map[string]any, req domain.Coordinate, debug bool) (domain.Address, error) {
	if s.Flatten == nil {
		return domain.Address{}, fmt.Errorf("%s: schema has no flattener", s.Vendor)
	}
	rec, err := s.Flatten(raw)
	if err != nil {
		return domain.Address{}, err
	}

	var addr domain.Address

	// Country first: the region chain and street order depend on it.
	addr.CountryCode = ref.NormalizeCountryCode(ResolveString(rec, s.CountryCodeKeys...))
	if addr.CountryCode == "" {
		if c, ok := ref.CountryByName(ResolveString(rec, s.CountryNameKeys...)); ok {
			addr.CountryCode = c.Alpha2
		}
	}
	addr.CountryName = ResolveString(rec, s.CountryNameKeys...)
	if addr.CountryName == "" {
		addr.CountryName = ref.CountryName(addr.CountryCode)
	}

	addr.Name = ResolveString(rec, s.NameKeys...)
	addr.StreetNumber = ResolveString(rec, s.StreetNumberKeys...)
	addr.Street = ResolveString(rec, s.StreetKeys...)
	addr.ExtendedAddress = ResolveString(rec, s.ExtendedKeys...)
	addr.Locality = ResolveString(rec, s.LocalityKeys...)
	addr.Region = ResolveString(rec, s.regionChain(addr.CountryCode)...)
	addr.PostalCode = ResolveString(rec, s.PostalCodeKeys...)
	addr.Timezone = ResolveString(rec, s.TimezoneKeys...)
	addr.URL = ResolveString(rec, s.URLKeys...)
	addr.Photo = ResolveString(rec, s.PhotoKeys...)

	addr.StreetAddress = ref.FormatStreetAddress(addr.CountryCode, addr.StreetNumber, addr.Street)

	// Region code: vendor-supplied wins; otherwise best-effort derivation
	// from the name. Failure here is non-fatal — the code stays blank.
	addr.RegionCode = ResolveString(rec, s.RegionCodeKeys...)
	if addr.RegionCode == "" && addr.Region != "" {
		addr.RegionCode = ref.RegionCode(addr.CountryCode, addr.Region)
	}

	if lat, ok := ResolveFloat(rec, s.LatKeys...); ok {
		addr.Latitude = lat
	} else {
		addr.Latitude = req.Latitude
	}
	if lon, ok := ResolveFloat(rec, s.LonKeys...); ok {
		addr.Longitude = lon
	} else {
		addr.Longitude = req.Longitude
	}
	if alt, ok := ResolveFloat(rec, s.AltKeys...); ok {
		addr.Altitude = domain.Float64(alt)
	} else if req.Altitude != nil {
		addr.Altitude = req.Altitude
	}

	addr.DisplayName = ResolveString(rec, s.DisplayNameKeys...)
	if addr.DisplayName == "" {
		addr.DisplayName = domain.ComposeDisplayName(
			addr.Name, addr.StreetAddress, addr.Locality, addr.Region, addr.CountryName,
		)
	}
	if addr.DisplayName == "" {
		// Nothing textual at all: a coordinate-only record still needs a
		// non-empty display name.
		addr.DisplayName = fmt.Sprintf("%.5f, %.5f", addr.Latitude, addr.Longitude)
	}

	if debug {
		addr.Raw = raw
	}
	return addr, nil
}
