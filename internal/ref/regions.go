package ref

import "strings"

// regionTables maps an alpha-2 country code to its ISO-3166-2 region
// subdivisions (code → name). Coverage is the set of countries whose
// geocoding vendors commonly emit a bare region name with no code.
var regionTables = map[string]map[string]string{
	"US": {
		"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
		"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
		"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
		"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
		"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
		"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
		"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
		"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
		"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
		"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
		"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
		"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
		"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	},
	"CA": {
		"AB": "Alberta", "BC": "British Columbia", "MB": "Manitoba",
		"NB": "New Brunswick", "NL": "Newfoundland and Labrador",
		"NS": "Nova Scotia", "NT": "Northwest Territories", "NU": "Nunavut",
		"ON": "Ontario", "PE": "Prince Edward Island", "QC": "Quebec",
		"SK": "Saskatchewan", "YT": "Yukon",
	},
	"AU": {
		"ACT": "Australian Capital Territory", "NSW": "New South Wales",
		"NT": "Northern Territory", "QLD": "Queensland",
		"SA": "South Australia", "TAS": "Tasmania",
		"VIC": "Victoria", "WA": "Western Australia",
	},
	"GB": {
		"ENG": "England", "SCT": "Scotland", "WLS": "Wales",
		"NIR": "Northern Ireland",
	},
	"DE": {
		"BW": "Baden-Württemberg", "BY": "Bayern", "BE": "Berlin",
		"BB": "Brandenburg", "HB": "Bremen", "HH": "Hamburg",
		"HE": "Hessen", "MV": "Mecklenburg-Vorpommern", "NI": "Niedersachsen",
		"NW": "Nordrhein-Westfalen", "RP": "Rheinland-Pfalz", "SL": "Saarland",
		"SN": "Sachsen", "ST": "Sachsen-Anhalt", "SH": "Schleswig-Holstein",
		"TH": "Thüringen",
	},
	"FR": {
		"ARA": "Auvergne-Rhône-Alpes", "BFC": "Bourgogne-Franche-Comté",
		"BRE": "Bretagne", "CVL": "Centre-Val de Loire", "COR": "Corse",
		"GES": "Grand Est", "HDF": "Hauts-de-France", "IDF": "Île-de-France",
		"NOR": "Normandie", "NAQ": "Nouvelle-Aquitaine", "OCC": "Occitanie",
		"PDL": "Pays de la Loire", "PAC": "Provence-Alpes-Côte d'Azur",
	},
	"NL": {
		"DR": "Drenthe", "FL": "Flevoland", "FR": "Friesland",
		"GE": "Gelderland", "GR": "Groningen", "LI": "Limburg",
		"NB": "Noord-Brabant", "NH": "Noord-Holland", "OV": "Overijssel",
		"UT": "Utrecht", "ZE": "Zeeland", "ZH": "Zuid-Holland",
	},
	"CH": {
		"AG": "Aargau", "AR": "Appenzell Ausserrhoden", "AI": "Appenzell Innerrhoden",
		"BL": "Basel-Landschaft", "BS": "Basel-Stadt", "BE": "Bern",
		"FR": "Fribourg", "GE": "Genève", "GL": "Glarus", "GR": "Graubünden",
		"JU": "Jura", "LU": "Luzern", "NE": "Neuchâtel", "NW": "Nidwalden",
		"OW": "Obwalden", "SG": "St. Gallen", "SH": "Schaffhausen",
		"SZ": "Schwyz", "SO": "Solothurn", "TG": "Thurgau", "TI": "Ticino",
		"UR": "Uri", "VS": "Valais", "VD": "Vaud", "ZG": "Zug", "ZH": "Zürich",
	},
	"BR": {
		"AC": "Acre", "AL": "Alagoas", "AP": "Amapá", "AM": "Amazonas",
		"BA": "Bahia", "CE": "Ceará", "DF": "Distrito Federal",
		"ES": "Espírito Santo", "GO": "Goiás", "MA": "Maranhão",
		"MT": "Mato Grosso", "MS": "Mato Grosso do Sul", "MG": "Minas Gerais",
		"PA": "Pará", "PB": "Paraíba", "PR": "Paraná", "PE": "Pernambuco",
		"PI": "Piauí", "RJ": "Rio de Janeiro", "RN": "Rio Grande do Norte",
		"RS": "Rio Grande do Sul", "RO": "Rondônia", "RR": "Roraima",
		"SC": "Santa Catarina", "SP": "São Paulo", "SE": "Sergipe",
		"TO": "Tocantins",
	},
	"MX": {
		"AGU": "Aguascalientes", "BCN": "Baja California", "BCS": "Baja California Sur",
		"CAM": "Campeche", "CHP": "Chiapas", "CHH": "Chihuahua",
		"COA": "Coahuila", "COL": "Colima", "CMX": "Ciudad de México",
		"DUR": "Durango", "GUA": "Guanajuato", "GRO": "Guerrero",
		"HID": "Hidalgo", "JAL": "Jalisco", "MEX": "México",
		"MIC": "Michoacán", "MOR": "Morelos", "NAY": "Nayarit",
		"NLE": "Nuevo León", "OAX": "Oaxaca", "PUE": "Puebla",
		"QUE": "Querétaro", "ROO": "Quintana Roo", "SLP": "San Luis Potosí",
		"SIN": "Sinaloa", "SON": "Sonora", "TAB": "Tabasco",
		"TAM": "Tamaulipas", "TLA": "Tlaxcala", "VER": "Veracruz",
		"YUC": "Yucatán", "ZAC": "Zacatecas",
	},
}

// regionAliases covers vendors that emit an anglicized or historical name
// instead of the table's canonical one. Keyed by country, lower-cased alias.
var regionAliases = map[string]map[string]string{
	"DE": {
		"bavaria":                "BY",
		"hesse":                  "HE",
		"lower saxony":           "NI",
		"north rhine-westphalia": "NW",
		"rhineland-palatinate":   "RP",
		"saxony":                 "SN",
		"saxony-anhalt":          "ST",
		"thuringia":              "TH",
		"mecklenburg-western pomerania": "MV",
	},
	"CH": {
		"geneva":  "GE",
		"zurich":  "ZH",
		"lucerne": "LU",
		"berne":   "BE",
	},
	"CA": {
		"québec": "QC",
	},
	"MX": {
		"mexico city":      "CMX",
		"distrito federal": "CMX",
		"estado de méxico": "MEX",
	},
	"BR": {
		"sao paulo": "SP",
	},
}

// reverse index: country → lower-cased region name → code, built at init.
var regionCodeByName = make(map[string]map[string]string, len(regionTables))

func init() {
	for country, table := range regionTables {
		idx := make(map[string]string, len(table))
		for code, name := range table {
			idx[strings.ToLower(name)] = code
		}
		regionCodeByName[country] = idx
	}
}

// RegionName resolves a region code to its name for the given country.
// Returns "" when the country or code is not covered.
func RegionName(countryAlpha2, regionCode string) string {
	table, ok := regionTables[strings.ToUpper(strings.TrimSpace(countryAlpha2))]
	if !ok {
		return ""
	}
	return table[strings.ToUpper(strings.TrimSpace(regionCode))]
}

// RegionCode resolves a region name (case-insensitive, aliases included)
// to its code for the given country. Returns "" when not covered.
func RegionCode(countryAlpha2, regionName string) string {
	country := strings.ToUpper(strings.TrimSpace(countryAlpha2))
	name := strings.ToLower(strings.TrimSpace(regionName))
	if name == "" {
		return ""
	}
	if idx, ok := regionCodeByName[country]; ok {
		if code, ok := idx[name]; ok {
			return code
		}
	}
	if aliases, ok := regionAliases[country]; ok {
		if code, ok := aliases[name]; ok {
			return code
		}
	}
	// Vendors sometimes put the code itself in the name slot.
	if RegionName(country, regionName) != "" {
		return strings.ToUpper(strings.TrimSpace(regionName))
	}
	return ""
}

// RegionCountries lists the countries with a region table, for tests and
// capability reporting.
func RegionCountries() []string {
	out := make([]string, 0, len(regionTables))
	for c := range regionTables {
		out = append(out, c)
	}
	return out
}
