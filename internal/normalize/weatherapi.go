package normalize

import (
	"fmt"

	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/geo"
)

// weatherAPICodeTable maps WeatherAPI.com condition codes into the shared
// space. Complete for the vendor's documented code list.
var weatherAPICodeTable = map[int]int{
	1000: domain.CodeClear,
	1003: domain.CodeFewClouds,
	1006: domain.CodeBrokenClouds,
	1009: domain.CodeOvercast,
	1030: domain.CodeMist,
	1063: domain.CodeRainLight,    // patchy rain possible
	1066: domain.CodeSnowLight,    // patchy snow possible
	1069: domain.CodeSleet,        // patchy sleet possible
	1072: domain.CodeDrizzleFreezing,
	1087: domain.CodeThunderstorm, // thundery outbreaks possible
	1114: domain.CodeSnowShower,   // blowing snow
	1117: domain.CodeSnowShowerHeavy, // blizzard
	1135: domain.CodeFog,
	1147: domain.CodeFog, // freezing fog
	1150: domain.CodeDrizzleLight,
	1153: domain.CodeDrizzleLight,
	1168: domain.CodeDrizzleFreezing,
	1171: domain.CodeDrizzleFreezing,
	1180: domain.CodeRainLight,
	1183: domain.CodeRainLight,
	1186: domain.CodeRain,
	1189: domain.CodeRain,
	1192: domain.CodeRainHeavy,
	1195: domain.CodeRainHeavy,
	1198: domain.CodeRainFreezing,
	1201: domain.CodeRainFreezing,
	1204: domain.CodeSleet,
	1207: domain.CodeSleet,
	1210: domain.CodeSnowLight,
	1213: domain.CodeSnowLight,
	1216: domain.CodeSnow,
	1219: domain.CodeSnow,
	1222: domain.CodeSnowHeavy,
	1225: domain.CodeSnowHeavy,
	1237: domain.CodeSleet, // ice pellets
	1240: domain.CodeShowerLight,
	1243: domain.CodeShower,
	1246: domain.CodeShowerHeavy,
	1249: domain.CodeSleet,
	1252: domain.CodeSleet,
	1255: domain.CodeSnowShowerLight,
	1258: domain.CodeSnowShower,
	1261: domain.CodeSleet,
	1264: domain.CodeSleet,
	1273: domain.CodeThunderstormRain,
	1276: domain.CodeThunderstormHeavyRain,
	1279: domain.CodeThunderstormLight, // patchy light snow with thunder
	1282: domain.CodeThunderstormHail,  // moderate or heavy snow with thunder
}

// WeatherAPI maps WeatherAPI.com's realtime and history endpoints. Metric
// fields use km/h and km, converted here; precipitation is mm already.
// Errors come back as a 2xx body with an "error" object.
var WeatherAPI = WeatherSchema{
	Vendor: "weatherapi",
	CurrentRecord: func(raw map[string]any) (map[string]any, error) {
		if err := weatherAPIEnvelope(raw); err != nil {
			return nil, err
		}
		rec, ok := raw["current"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("weatherapi: missing current block: %w", domain.ErrMalformedResponse)
		}
		return rec, nil
	},
	HourlyRecords: func(raw map[string]any) ([]map[string]any, error) {
		if err := weatherAPIEnvelope(raw); err != nil {
			return nil, err
		}
		days, ok := Resolve(raw, "forecast.forecastday")
		if !ok {
			return nil, fmt.Errorf("weatherapi: missing forecastday: %w", domain.ErrMalformedResponse)
		}
		daySlice, _ := days.([]any)
		var records []map[string]any
		for _, d := range daySlice {
			day, ok := d.(map[string]any)
			if !ok {
				continue
			}
			hours, _ := day["hour"].([]any)
			records = append(records, objectSlice(hours)...)
		}
		return records, nil
	},
	BucketTime:      unixTimeKey("time_epoch"),
	ObservationTime: unixTimeKey("last_updated_epoch"),

	Fields: WeatherFields{
		Temperature: Field{Keys: []string{"temp_c"}},
		Dewpoint:    Field{Keys: []string{"dewpoint_c"}},
		Humidity:    Field{Keys: []string{"humidity"}},
		Pressure:    Field{Keys: []string{"pressure_mb"}},
		Cloudiness:  Field{Keys: []string{"cloud"}},
		WindSpeed:   Field{Keys: []string{"wind_kph"}, Convert: geo.KmhToMs},
		WindDegree:  Field{Keys: []string{"wind_degree"}},
		WindGust:    Field{Keys: []string{"gust_kph"}, Convert: geo.KmhToMs},
		Rain:        Field{Keys: []string{"precip_mm"}},
		Visibility:  Field{Keys: []string{"vis_km"}, Convert: geo.KmToM},
		UVIndex:     Field{Keys: []string{"uv"}},
	},

	Condition: func(rec map[string]any) (int, string) {
		summary := ResolveString(rec, "condition.text")
		vendorCode, ok := ResolveFloat(rec, "condition.code")
		if !ok {
			return domain.CodeUnknown, summary
		}
		code, mapped := weatherAPICodeTable[int(vendorCode)]
		if !mapped {
			return domain.CodeUnknown, summary
		}
		return code, summary
	},
}

func weatherAPIEnvelope(raw map[string]any) error {
	envelope, ok := raw["error"].(map[string]any)
	if !ok {
		return nil
	}
	msg, _ := envelope["message"].(string)
	code, _ := ResolveFloat(envelope, "code")
	// 1006 is the vendor's "no matching location" — a zero-match answer,
	// not an upstream failure.
	if int(code) == 1006 {
		return domain.ErrNoResults
	}
	return &domain.UpstreamError{Vendor: "weatherapi", StatusCode: int(code), Message: msg}
}
