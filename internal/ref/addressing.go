package ref

import "strings"

// streetFirstCountries lists the countries whose postal convention writes
// the street name before the house number ("Hauptstraße 5"). Everywhere
// not listed defaults to number-before-street ("5 Main St"), which covers
// the anglophone countries and is the least surprising fallback for the
// long tail of countries with mixed practice.
var streetFirstCountries = map[string]bool{
	"AL": true, "AD": true, "AR": true, "AT": true, "BA": true, "BE": true,
	"BG": true, "BO": true, "BR": true, "CH": true, "CL": true, "CO": true,
	"CR": true, "CZ": true, "DE": true, "DK": true, "EC": true, "EE": true,
	"ES": true, "FI": true, "GR": true, "HR": true, "HU": true, "ID": true,
	"IL": true, "IS": true, "IT": true, "LI": true, "LT": true, "LU": true,
	"LV": true, "MC": true, "MD": true, "ME": true, "MK": true, "MT": true,
	"MX": true, "NL": true, "NO": true, "PA": true, "PE": true, "PL": true,
	"PT": true, "PY": true, "RO": true, "RS": true, "RU": true, "SE": true,
	"SI": true, "SK": true, "SM": true, "TR": true, "UA": true, "UY": true,
	"VA": true, "VE": true,
}

// StreetNumberFirst reports whether the house number precedes the street
// name in the given country's addressing convention. Unknown or empty
// country codes use the number-first default.
func StreetNumberFirst(countryAlpha2 string) bool {
	return !streetFirstCountries[strings.ToUpper(strings.TrimSpace(countryAlpha2))]
}

// FormatStreetAddress joins a house number and street name in the order
// the country's convention dictates. Either part may be empty.
func FormatStreetAddress(countryAlpha2, number, street string) string {
	number = strings.TrimSpace(number)
	street = strings.TrimSpace(street)
	switch {
	case number == "":
		return street
	case street == "":
		return number
	case StreetNumberFirst(countryAlpha2):
		return number + " " + street
	default:
		return street + " " + number
	}
}
