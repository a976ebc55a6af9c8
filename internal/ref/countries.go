// Package ref holds the static reference tables used during address
// normalization: ISO-3166 country codes and names, per-country region
// (state/province) tables, and per-country street addressing conventions.
//
// Tables are plain slices and maps built once at init. Name lookups are
// case-insensitive; code lookups expect (and tolerate) any case.
package ref

import "strings"

// Country is one ISO-3166 entry. Name is the common English short name,
// which is what the geocoding vendors emit.
type Country struct {
	Alpha2 string
	Alpha3 string
	Name   string
}

var countries = []Country{
	{"AD", "AND", "Andorra"},
	{"AE", "ARE", "United Arab Emirates"},
	{"AF", "AFG", "Afghanistan"},
	{"AG", "ATG", "Antigua and Barbuda"},
	{"AL", "ALB", "Albania"},
	{"AM", "ARM", "Armenia"},
	{"AO", "AGO", "Angola"},
	{"AR", "ARG", "Argentina"},
	{"AT", "AUT", "Austria"},
	{"AU", "AUS", "Australia"},
	{"AZ", "AZE", "Azerbaijan"},
	{"BA", "BIH", "Bosnia and Herzegovina"},
	{"BB", "BRB", "Barbados"},
	{"BD", "BGD", "Bangladesh"},
	{"BE", "BEL", "Belgium"},
	{"BF", "BFA", "Burkina Faso"},
	{"BG", "BGR", "Bulgaria"},
	{"BH", "BHR", "Bahrain"},
	{"BI", "BDI", "Burundi"},
	{"BJ", "BEN", "Benin"},
	{"BN", "BRN", "Brunei"},
	{"BO", "BOL", "Bolivia"},
	{"BR", "BRA", "Brazil"},
	{"BS", "BHS", "Bahamas"},
	{"BT", "BTN", "Bhutan"},
	{"BW", "BWA", "Botswana"},
	{"BY", "BLR", "Belarus"},
	{"BZ", "BLZ", "Belize"},
	{"CA", "CAN", "Canada"},
	{"CD", "COD", "Democratic Republic of the Congo"},
	{"CF", "CAF", "Central African Republic"},
	{"CG", "COG", "Republic of the Congo"},
	{"CH", "CHE", "Switzerland"},
	{"CI", "CIV", "Ivory Coast"},
	{"CL", "CHL", "Chile"},
	{"CM", "CMR", "Cameroon"},
	{"CN", "CHN", "China"},
	{"CO", "COL", "Colombia"},
	{"CR", "CRI", "Costa Rica"},
	{"CU", "CUB", "Cuba"},
	{"CV", "CPV", "Cape Verde"},
	{"CY", "CYP", "Cyprus"},
	{"CZ", "CZE", "Czechia"},
	{"DE", "DEU", "Germany"},
	{"DJ", "DJI", "Djibouti"},
	{"DK", "DNK", "Denmark"},
	{"DM", "DMA", "Dominica"},
	{"DO", "DOM", "Dominican Republic"},
	{"DZ", "DZA", "Algeria"},
	{"EC", "ECU", "Ecuador"},
	{"EE", "EST", "Estonia"},
	{"EG", "EGY", "Egypt"},
	{"ER", "ERI", "Eritrea"},
	{"ES", "ESP", "Spain"},
	{"ET", "ETH", "Ethiopia"},
	{"FI", "FIN", "Finland"},
	{"FJ", "FJI", "Fiji"},
	{"FM", "FSM", "Micronesia"},
	{"FR", "FRA", "France"},
	{"GA", "GAB", "Gabon"},
	{"GB", "GBR", "United Kingdom"},
	{"GD", "GRD", "Grenada"},
	{"GE", "GEO", "Georgia"},
	{"GH", "GHA", "Ghana"},
	{"GM", "GMB", "Gambia"},
	{"GN", "GIN", "Guinea"},
	{"GQ", "GNQ", "Equatorial Guinea"},
	{"GR", "GRC", "Greece"},
	{"GT", "GTM", "Guatemala"},
	{"GW", "GNB", "Guinea-Bissau"},
	{"GY", "GUY", "Guyana"},
	{"HN", "HND", "Honduras"},
	{"HR", "HRV", "Croatia"},
	{"HT", "HTI", "Haiti"},
	{"HU", "HUN", "Hungary"},
	{"ID", "IDN", "Indonesia"},
	{"IE", "IRL", "Ireland"},
	{"IL", "ISR", "Israel"},
	{"IN", "IND", "India"},
	{"IQ", "IRQ", "Iraq"},
	{"IR", "IRN", "Iran"},
	{"IS", "ISL", "Iceland"},
	{"IT", "ITA", "Italy"},
	{"JM", "JAM", "Jamaica"},
	{"JO", "JOR", "Jordan"},
	{"JP", "JPN", "Japan"},
	{"KE", "KEN", "Kenya"},
	{"KG", "KGZ", "Kyrgyzstan"},
	{"KH", "KHM", "Cambodia"},
	{"KI", "KIR", "Kiribati"},
	{"KM", "COM", "Comoros"},
	{"KN", "KNA", "Saint Kitts and Nevis"},
	{"KP", "PRK", "North Korea"},
	{"KR", "KOR", "South Korea"},
	{"KW", "KWT", "Kuwait"},
	{"KZ", "KAZ", "Kazakhstan"},
	{"LA", "LAO", "Laos"},
	{"LB", "LBN", "Lebanon"},
	{"LC", "LCA", "Saint Lucia"},
	{"LI", "LIE", "Liechtenstein"},
	{"LK", "LKA", "Sri Lanka"},
	{"LR", "LBR", "Liberia"},
	{"LS", "LSO", "Lesotho"},
	{"LT", "LTU", "Lithuania"},
	{"LU", "LUX", "Luxembourg"},
	{"LV", "LVA", "Latvia"},
	{"LY", "LBY", "Libya"},
	{"MA", "MAR", "Morocco"},
	{"MC", "MCO", "Monaco"},
	{"MD", "MDA", "Moldova"},
	{"ME", "MNE", "Montenegro"},
	{"MG", "MDG", "Madagascar"},
	{"MH", "MHL", "Marshall Islands"},
	{"MK", "MKD", "North Macedonia"},
	{"ML", "MLI", "Mali"},
	{"MM", "MMR", "Myanmar"},
	{"MN", "MNG", "Mongolia"},
	{"MR", "MRT", "Mauritania"},
	{"MT", "MLT", "Malta"},
	{"MU", "MUS", "Mauritius"},
	{"MV", "MDV", "Maldives"},
	{"MW", "MWI", "Malawi"},
	{"MX", "MEX", "Mexico"},
	{"MY", "MYS", "Malaysia"},
	{"MZ", "MOZ", "Mozambique"},
	{"NA", "NAM", "Namibia"},
	{"NE", "NER", "Niger"},
	{"NG", "NGA", "Nigeria"},
	{"NI", "NIC", "Nicaragua"},
	{"NL", "NLD", "Netherlands"},
	{"NO", "NOR", "Norway"},
	{"NP", "NPL", "Nepal"},
	{"NR", "NRU", "Nauru"},
	{"NZ", "NZL", "New Zealand"},
	{"OM", "OMN", "Oman"},
	{"PA", "PAN", "Panama"},
	{"PE", "PER", "Peru"},
	{"PG", "PNG", "Papua New Guinea"},
	{"PH", "PHL", "Philippines"},
	{"PK", "PAK", "Pakistan"},
	{"PL", "POL", "Poland"},
	{"PT", "PRT", "Portugal"},
	{"PW", "PLW", "Palau"},
	{"PY", "PRY", "Paraguay"},
	{"QA", "QAT", "Qatar"},
	{"RO", "ROU", "Romania"},
	{"RS", "SRB", "Serbia"},
	{"RU", "RUS", "Russia"},
	{"RW", "RWA", "Rwanda"},
	{"SA", "SAU", "Saudi Arabia"},
	{"SB", "SLB", "Solomon Islands"},
	{"SC", "SYC", "Seychelles"},
	{"SD", "SDN", "Sudan"},
	{"SE", "SWE", "Sweden"},
	{"SG", "SGP", "Singapore"},
	{"SI", "SVN", "Slovenia"},
	{"SK", "SVK", "Slovakia"},
	{"SL", "SLE", "Sierra Leone"},
	{"SM", "SMR", "San Marino"},
	{"SN", "SEN", "Senegal"},
	{"SO", "SOM", "Somalia"},
	{"SR", "SUR", "Suriname"},
	{"SS", "SSD", "South Sudan"},
	{"ST", "STP", "Sao Tome and Principe"},
	{"SV", "SLV", "El Salvador"},
	{"SY", "SYR", "Syria"},
	{"SZ", "SWZ", "Eswatini"},
	{"TD", "TCD", "Chad"},
	{"TG", "TGO", "Togo"},
	{"TH", "THA", "Thailand"},
	{"TJ", "TJK", "Tajikistan"},
	{"TL", "TLS", "Timor-Leste"},
	{"TM", "TKM", "Turkmenistan"},
	{"TN", "TUN", "Tunisia"},
	{"TO", "TON", "Tonga"},
	{"TR", "TUR", "Turkey"},
	{"TT", "TTO", "Trinidad and Tobago"},
	{"TV", "TUV", "Tuvalu"},
	{"TW", "TWN", "Taiwan"},
	{"TZ", "TZA", "Tanzania"},
	{"UA", "UKR", "Ukraine"},
	{"UG", "UGA", "Uganda"},
	{"US", "USA", "United States"},
	{"UY", "URY", "Uruguay"},
	{"UZ", "UZB", "Uzbekistan"},
	{"VA", "VAT", "Vatican City"},
	{"VC", "VCT", "Saint Vincent and the Grenadines"},
	{"VE", "VEN", "Venezuela"},
	{"VN", "VNM", "Vietnam"},
	{"VU", "VUT", "Vanuatu"},
	{"WS", "WSM", "Samoa"},
	{"YE", "YEM", "Yemen"},
	{"ZA", "ZAF", "South Africa"},
	{"ZM", "ZMB", "Zambia"},
	{"ZW", "ZWE", "Zimbabwe"},
}

// countryAliases maps alternative vendor spellings to the canonical alpha-2
// code. Vendors are not consistent about official vs common names.
var countryAliases = map[string]string{
	"united states of america": "US",
	"usa":                      "US",
	"uk":                       "GB",
	"great britain":            "GB",
	"russian federation":       "RU",
	"republic of korea":        "KR",
	"korea, republic of":       "KR",
	"czech republic":           "CZ",
	"burma":                    "MM",
	"swaziland":                "SZ",
	"macedonia":                "MK",
	"cote d'ivoire":            "CI",
	"côte d'ivoire":            "CI",
	"holland":                  "NL",
	"türkiye":                  "TR",
	"turkiye":                  "TR",
}

var (
	countryByAlpha2 = make(map[string]Country, len(countries))
	countryByAlpha3 = make(map[string]Country, len(countries))
	countryByName   = make(map[string]Country, len(countries))
)

func init() {
	for _, c := range countries {
		countryByAlpha2[c.Alpha2] = c
		countryByAlpha3[c.Alpha3] = c
		countryByName[strings.ToLower(c.Name)] = c
	}
}

// CountryByAlpha2 looks up a country by its two-letter code.
func CountryByAlpha2(code string) (Country, bool) {
	c, ok := countryByAlpha2[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// CountryByAlpha3 looks up a country by its three-letter code.
func CountryByAlpha3(code string) (Country, bool) {
	c, ok := countryByAlpha3[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// CountryByName looks up a country by its English name or a known alias,
// case-insensitively.
func CountryByName(name string) (Country, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := countryByName[key]; ok {
		return c, true
	}
	if alpha2, ok := countryAliases[key]; ok {
		return countryByAlpha2[alpha2], true
	}
	return Country{}, false
}

// CountryName returns the English name for an alpha-2 code, or "" if unknown.
func CountryName(alpha2 string) string {
	if c, ok := CountryByAlpha2(alpha2); ok {
		return c.Name
	}
	return ""
}

// NormalizeCountryCode reduces whatever a vendor emits for "country" — an
// alpha-2 code, an alpha-3 code, or a full name in any case — to an
// uppercase ISO-3166 alpha-2 code. An unrecognized two-letter input is
// passed through uppercased on the assumption it is a code this table
// simply does not carry; anything else unrecognized yields "".
func NormalizeCountryCode(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if len(v) == 2 {
		if c, ok := CountryByAlpha2(v); ok {
			return c.Alpha2
		}
		return strings.ToUpper(v)
	}
	if len(v) == 3 {
		if c, ok := CountryByAlpha3(v); ok {
			return c.Alpha2
		}
	}
	if c, ok := CountryByName(v); ok {
		return c.Alpha2
	}
	return ""
}
