package normalize

import (
	"fmt"
	"time"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// owmKnownCodes is the set of condition ids the OpenWeatherMap API
// documents. The shared code space is modeled on OWM's, so known ids pass
// through unchanged; anything undocumented normalizes to the unknown
// sentinel instead of leaking a private value into the shared space.
var owmKnownCodes = map[int]bool{
	200: true, 201: true, 202: true, 210: true, 211: true, 212: true, 221: true, 230: true, 231: true, 232: true,
	300: true, 301: true, 302: true, 310: true, 311: true, 312: true, 313: true, 314: true, 321: true,
	500: true, 501: true, 502: true, 503: true, 504: true, 511: true, 520: true, 521: true, 522: true, 531: true,
	600: true, 601: true, 602: true, 611: true, 612: true, 613: true, 615: true, 616: true, 620: true, 621: true, 622: true,
	701: true, 711: true, 721: true, 731: true, 741: true, 751: true, 761: true, 762: true, 771: true, 781: true,
	800: true, 801: true, 802: true, 803: true, 804: true,
}

// OpenWeatherMap maps the OpenWeatherMap current-weather and One Call
// time-machine payloads. Requests use units=metric, so speeds arrive in
// m/s and temperatures in °C already. The current endpoint nests readings
// under "main"/"wind"/"clouds"; the historical hour records are flat, so
// each chain lists both spellings.
var OpenWeatherMap = WeatherSchema{
	Vendor: "openweathermap",
	CurrentRecord: func(raw map[string]any) (map[string]any, error) {
		if err := owmEnvelope(raw); err != nil {
			return nil, err
		}
		if _, ok := raw["main"].(map[string]any); !ok {
			return nil, fmt.Errorf("openweathermap: missing main block: %w", domain.ErrMalformedResponse)
		}
		return raw, nil
	},
	HourlyRecords: func(raw map[string]any) ([]map[string]any, error) {
		if err := owmEnvelope(raw); err != nil {
			return nil, err
		}
		series, ok := raw["data"].([]any)
		if !ok {
			if series, ok = raw["hourly"].([]any); !ok {
				return nil, fmt.Errorf("openweathermap: missing data/hourly series: %w", domain.ErrMalformedResponse)
			}
		}
		return objectSlice(series), nil
	},
	BucketTime:      unixTimeKey("dt"),
	ObservationTime: unixTimeKey("dt"),

	Fields: WeatherFields{
		Temperature: Field{Keys: []string{"main.temp", "temp"}},
		Dewpoint:    Field{Keys: []string{"dew_point"}},
		Humidity:    Field{Keys: []string{"main.humidity", "humidity"}},
		Pressure:    Field{Keys: []string{"main.pressure", "pressure"}},
		Cloudiness:  Field{Keys: []string{"clouds.all", "clouds"}},
		WindSpeed:   Field{Keys: []string{"wind.speed", "wind_speed"}},
		WindDegree:  Field{Keys: []string{"wind.deg", "wind_deg"}},
		WindGust:    Field{Keys: []string{"wind.gust", "wind_gust"}},
		Rain:        Field{Keys: []string{"rain.1h", "rain.3h"}},
		Snow:        Field{Keys: []string{"snow.1h", "snow.3h"}},
		Visibility:  Field{Keys: []string{"visibility"}},
		UVIndex:     Field{Keys: []string{"uvi"}},
	},

	Condition: func(rec map[string]any) (int, string) {
		summary := ResolveString(rec, "weather.0.description", "weather.0.main")
		id, ok := ResolveFloat(rec, "weather.0.id")
		if !ok || !owmKnownCodes[int(id)] {
			return domain.CodeUnknown, summary
		}
		return int(id), summary
	},
}

// owmEnvelope detects OpenWeatherMap's 2xx-with-error envelope: "cod" is a
// number or string status, accompanied by "message" on failure.
func owmEnvelope(raw map[string]any) error {
	cod, ok := ResolveFloat(raw, "cod")
	if !ok || int(cod) == 200 {
		return nil
	}
	msg, _ := raw["message"].(string)
	return &domain.UpstreamError{Vendor: "openweathermap", StatusCode: int(cod), Message: msg}
}

// objectSlice filters a decoded JSON array down to its object elements.
func objectSlice(in []any) []map[string]any {
	out := make([]map[string]any, 0, len(in))
	for _, v := range in {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// unixTimeKey returns an extractor for a unix-seconds timestamp field.
func unixTimeKey(key string) func(map[string]any) (time.Time, bool) {
	return func(rec map[string]any) (time.Time, bool) {
		secs, ok := ResolveFloat(rec, key)
		if !ok {
			return time.Time{}, false
		}
		return time.Unix(int64(secs), 0).UTC(), true
	}
}
