package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// metnoSymbolTable maps Met.no locationforecast symbol codes into the
// shared space. Day/night/polartwilight variants share a base name, which
// is what gets looked up. Complete for the published symbol list.
var metnoSymbolTable = map[string]int{
	"clearsky":                    domain.CodeClear,
	"fair":                        domain.CodeFewClouds,
	"partlycloudy":                domain.CodeScatteredClouds,
	"cloudy":                      domain.CodeOvercast,
	"fog":                         domain.CodeFog,
	"lightrain":                   domain.CodeRainLight,
	"rain":                        domain.CodeRain,
	"heavyrain":                   domain.CodeRainHeavy,
	"lightrainshowers":            domain.CodeShowerLight,
	"rainshowers":                 domain.CodeShower,
	"heavyrainshowers":            domain.CodeShowerHeavy,
	"lightrainandthunder":         domain.CodeThunderstormRain,
	"rainandthunder":              domain.CodeThunderstormRain,
	"heavyrainandthunder":         domain.CodeThunderstormHeavyRain,
	"lightrainshowersandthunder":  domain.CodeThunderstormRain,
	"rainshowersandthunder":       domain.CodeThunderstormRain,
	"heavyrainshowersandthunder":  domain.CodeThunderstormHeavyRain,
	"sleet":                       domain.CodeSleet,
	"lightsleet":                  domain.CodeSleet,
	"heavysleet":                  domain.CodeSleet,
	"sleetshowers":                domain.CodeSleet,
	"lightsleetshowers":           domain.CodeSleet,
	"heavysleetshowers":           domain.CodeSleet,
	"sleetandthunder":             domain.CodeThunderstorm,
	"lightsleetandthunder":        domain.CodeThunderstorm,
	"heavysleetandthunder":        domain.CodeThunderstorm,
	"sleetshowersandthunder":      domain.CodeThunderstorm,
	"lightssleetshowersandthunder": domain.CodeThunderstorm,
	"heavysleetshowersandthunder": domain.CodeThunderstorm,
	"lightsnow":                   domain.CodeSnowLight,
	"snow":                        domain.CodeSnow,
	"heavysnow":                   domain.CodeSnowHeavy,
	"lightsnowshowers":            domain.CodeSnowShowerLight,
	"snowshowers":                 domain.CodeSnowShower,
	"heavysnowshowers":            domain.CodeSnowShowerHeavy,
	"snowandthunder":              domain.CodeThunderstorm,
	"lightsnowandthunder":         domain.CodeThunderstorm,
	"heavysnowandthunder":         domain.CodeThunderstorm,
	"snowshowersandthunder":       domain.CodeThunderstorm,
	"lightssnowshowersandthunder": domain.CodeThunderstorm,
	"heavysnowshowersandthunder":  domain.CodeThunderstorm,
}

// MetNo maps the Met.no locationforecast API (already SI throughout).
// The payload is a GeoJSON feature whose properties.timeseries holds one
// entry per hour; "current" is simply the first entry. Precipitation and
// the condition symbol live in the next_1_hours block, everything
// instantaneous under data.instant.details.
var MetNo = WeatherSchema{
	Vendor: "metno",
	CurrentRecord: func(raw map[string]any) (map[string]any, error) {
		records, err := metnoSeries(raw)
		if err != nil {
			return nil, err
		}
		return records[0], nil
	},
	HourlyRecords:   metnoSeries,
	BucketTime:      metnoTime,
	ObservationTime: metnoTime,

	Fields: WeatherFields{
		Temperature: Field{Keys: []string{"data.instant.details.air_temperature"}},
		Dewpoint:    Field{Keys: []string{"data.instant.details.dew_point_temperature"}},
		Humidity:    Field{Keys: []string{"data.instant.details.relative_humidity"}},
		Pressure:    Field{Keys: []string{"data.instant.details.air_pressure_at_sea_level"}},
		Cloudiness:  Field{Keys: []string{"data.instant.details.cloud_area_fraction"}},
		WindSpeed:   Field{Keys: []string{"data.instant.details.wind_speed"}},
		WindDegree:  Field{Keys: []string{"data.instant.details.wind_from_direction"}},
		WindGust:    Field{Keys: []string{"data.instant.details.wind_speed_of_gust"}},
		Rain:        Field{Keys: []string{"data.next_1_hours.details.precipitation_amount"}},
		UVIndex:     Field{Keys: []string{"data.instant.details.ultraviolet_index_clear_sky"}},
	},

	Condition: func(rec map[string]any) (int, string) {
		symbol := ResolveString(rec, "data.next_1_hours.summary.symbol_code", "data.next_6_hours.summary.symbol_code")
		if symbol == "" {
			return domain.CodeUnknown, ""
		}
		base, _, _ := strings.Cut(symbol, "_")
		code, mapped := metnoSymbolTable[base]
		if !mapped {
			return domain.CodeUnknown, symbol
		}
		return code, domain.CodeSummary(code)
	},
}

func metnoSeries(raw map[string]any) ([]map[string]any, error) {
	series, ok := Resolve(raw, "properties.timeseries")
	if !ok {
		return nil, fmt.Errorf("metno: missing timeseries: %w", domain.ErrMalformedResponse)
	}
	entries, _ := series.([]any)
	records := objectSlice(entries)
	if len(records) == 0 {
		return nil, domain.ErrNoResults
	}
	return records, nil
}

func metnoTime(rec map[string]any) (time.Time, bool) {
	s := ResolveString(rec, "time")
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
