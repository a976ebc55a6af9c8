package normalize

import (
	"fmt"

	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/geo"
)

// pirateIconTable maps Pirate Weather (Dark Sky compatible) icon strings
// into the shared space. Complete for the icon set the API emits.
var pirateIconTable = map[string]int{
	"clear-day":           domain.CodeClear,
	"clear-night":         domain.CodeClear,
	"rain":                domain.CodeRain,
	"snow":                domain.CodeSnow,
	"sleet":               domain.CodeSleet,
	"wind":                domain.CodeSquall,
	"fog":                 domain.CodeFog,
	"cloudy":              domain.CodeOvercast,
	"partly-cloudy-day":   domain.CodeScatteredClouds,
	"partly-cloudy-night": domain.CodeScatteredClouds,
	"thunderstorm":        domain.CodeThunderstorm,
	"hail":                domain.CodeThunderstormHail,
	"mixed":               domain.CodeRainAndSnow,
	"none":                domain.CodeUnknown,
}

// PirateWeather maps the Pirate Weather forecast and time-machine APIs,
// requested with units=si. SI mode still reports humidity and cloud cover
// as 0–1 fractions and visibility in km; converted here.
var PirateWeather = WeatherSchema{
	Vendor: "pirateweather",
	CurrentRecord: func(raw map[string]any) (map[string]any, error) {
		rec, ok := raw["currently"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pirateweather: missing currently block: %w", domain.ErrMalformedResponse)
		}
		return rec, nil
	},
	HourlyRecords: func(raw map[string]any) ([]map[string]any, error) {
		data, ok := Resolve(raw, "hourly.data")
		if !ok {
			return nil, fmt.Errorf("pirateweather: missing hourly data: %w", domain.ErrMalformedResponse)
		}
		entries, _ := data.([]any)
		return objectSlice(entries), nil
	},
	BucketTime:      unixTimeKey("time"),
	ObservationTime: unixTimeKey("time"),

	Fields: WeatherFields{
		Temperature: Field{Keys: []string{"temperature"}},
		Dewpoint:    Field{Keys: []string{"dewPoint"}},
		Humidity:    Field{Keys: []string{"humidity"}, Convert: fractionToPercent},
		Pressure:    Field{Keys: []string{"pressure"}},
		Cloudiness:  Field{Keys: []string{"cloudCover"}, Convert: fractionToPercent},
		WindSpeed:   Field{Keys: []string{"windSpeed"}},
		WindDegree:  Field{Keys: []string{"windBearing"}},
		WindGust:    Field{Keys: []string{"windGust"}},
		Rain:        Field{Keys: []string{"precipIntensity"}},
		Snow:        Field{Keys: []string{"precipAccumulation"}, Convert: geo.CmToMm},
		Visibility:  Field{Keys: []string{"visibility"}, Convert: geo.KmToM},
		UVIndex:     Field{Keys: []string{"uvIndex"}},
	},

	Condition: func(rec map[string]any) (int, string) {
		summary := ResolveString(rec, "summary")
		icon := ResolveString(rec, "icon")
		if icon == "" {
			return domain.CodeUnknown, summary
		}
		code, mapped := pirateIconTable[icon]
		if !mapped {
			return domain.CodeUnknown, summary
		}
		return code, summary
	},
}

func fractionToPercent(v float64) float64 { return v * 100 }
