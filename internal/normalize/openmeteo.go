package normalize

import (
	"fmt"
	"time"

	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/geo"
)

// wmoCodeTable maps WMO 4677 present-weather codes (what Open-Meteo emits
// as weather_code) into the shared space. Complete for every code the API
// documents; anything else is unknown.
var wmoCodeTable = map[int]int{
	0:  domain.CodeClear,
	1:  domain.CodeFewClouds,
	2:  domain.CodeScatteredClouds,
	3:  domain.CodeOvercast,
	45: domain.CodeFog,
	48: domain.CodeFog, // depositing rime fog
	51: domain.CodeDrizzleLight,
	53: domain.CodeDrizzle,
	55: domain.CodeDrizzleHeavy,
	56: domain.CodeDrizzleFreezing,
	57: domain.CodeDrizzleFreezing,
	61: domain.CodeRainLight,
	63: domain.CodeRain,
	65: domain.CodeRainHeavy,
	66: domain.CodeRainFreezing,
	67: domain.CodeRainFreezing,
	71: domain.CodeSnowLight,
	73: domain.CodeSnow,
	75: domain.CodeSnowHeavy,
	77: domain.CodeSnow, // snow grains
	80: domain.CodeShowerLight,
	81: domain.CodeShower,
	82: domain.CodeShowerHeavy,
	85: domain.CodeSnowShowerLight,
	86: domain.CodeSnowShowerHeavy,
	95: domain.CodeThunderstorm,
	96: domain.CodeThunderstormHail,
	99: domain.CodeThunderstormHail,
}

// OpenMeteo maps the Open-Meteo forecast and archive APIs. Requests use
// wind_speed_unit=ms and timezone=UTC; snowfall still arrives in cm and is
// the one field needing conversion. The hourly series is column-oriented
// (parallel arrays under "hourly"), so the record selector transposes it
// into one flat record per hour before the chains run.
var OpenMeteo = WeatherSchema{
	Vendor: "openmeteo",
	CurrentRecord: func(raw map[string]any) (map[string]any, error) {
		if err := openMeteoEnvelope(raw); err != nil {
			return nil, err
		}
		rec, ok := raw["current"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("openmeteo: missing current block: %w", domain.ErrMalformedResponse)
		}
		return rec, nil
	},
	HourlyRecords: func(raw map[string]any) ([]map[string]any, error) {
		if err := openMeteoEnvelope(raw); err != nil {
			return nil, err
		}
		columns, ok := raw["hourly"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("openmeteo: missing hourly block: %w", domain.ErrMalformedResponse)
		}
		return transposeColumns(columns), nil
	},
	BucketTime:      isoMinuteTimeKey("time"),
	ObservationTime: isoMinuteTimeKey("time"),

	Fields: WeatherFields{
		Temperature: Field{Keys: []string{"temperature_2m"}},
		Dewpoint:    Field{Keys: []string{"dew_point_2m"}},
		Humidity:    Field{Keys: []string{"relative_humidity_2m"}},
		Pressure:    Field{Keys: []string{"pressure_msl", "surface_pressure"}},
		Cloudiness:  Field{Keys: []string{"cloud_cover"}},
		WindSpeed:   Field{Keys: []string{"wind_speed_10m"}},
		WindDegree:  Field{Keys: []string{"wind_direction_10m"}},
		WindGust:    Field{Keys: []string{"wind_gusts_10m"}},
		Rain:        Field{Keys: []string{"rain", "precipitation"}},
		Snow:        Field{Keys: []string{"snowfall"}, Convert: geo.CmToMm},
		Visibility:  Field{Keys: []string{"visibility"}},
		UVIndex:     Field{Keys: []string{"uv_index"}},
	},

	Condition: func(rec map[string]any) (int, string) {
		wmo, ok := ResolveFloat(rec, "weather_code", "weathercode")
		if !ok {
			return domain.CodeUnknown, ""
		}
		code, mapped := wmoCodeTable[int(wmo)]
		if !mapped {
			return domain.CodeUnknown, ""
		}
		return code, domain.CodeSummary(code)
	},
}

func openMeteoEnvelope(raw map[string]any) error {
	if isErr, _ := raw["error"].(bool); isErr {
		reason, _ := raw["reason"].(string)
		return &domain.UpstreamError{Vendor: "openmeteo", StatusCode: 200, Message: reason}
	}
	return nil
}

// transposeColumns turns {"time": [t0, t1], "temperature_2m": [a, b]} into
// [{"time": t0, "temperature_2m": a}, {"time": t1, "temperature_2m": b}].
// Columns shorter than the time column are skipped for the missing rows.
func transposeColumns(columns map[string]any) []map[string]any {
	times, _ := columns["time"].([]any)
	records := make([]map[string]any, len(times))
	for i := range records {
		records[i] = make(map[string]any, len(columns))
	}
	for name, col := range columns {
		values, ok := col.([]any)
		if !ok {
			continue
		}
		for i, v := range values {
			if i >= len(records) {
				break
			}
			records[i][name] = v
		}
	}
	return records
}

// isoMinuteTimeKey parses Open-Meteo's minute-precision ISO timestamps
// ("2024-04-26T15:00"), which arrive in UTC because requests pin
// timezone=UTC.
func isoMinuteTimeKey(key string) func(map[string]any) (time.Time, bool) {
	return func(rec map[string]any) (time.Time, bool) {
		s := ResolveString(rec, key)
		if s == "" {
			return time.Time{}, false
		}
		t, err := time.Parse("2006-01-02T15:04", s)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}
}
