package domain

import "time"

// Shared condition codes. The space follows the OpenWeatherMap grouping
// (see the package doc); CodeUnknown is the explicit sentinel for vendor
// values no mapping table covers.
const (
	CodeUnknown = 0

	CodeThunderstormRain       = 200
	CodeThunderstormHeavyRain  = 202
	CodeThunderstorm           = 211
	CodeThunderstormHail       = 212
	CodeThunderstormLight      = 210

	CodeDrizzleLight = 300
	CodeDrizzle      = 301
	CodeDrizzleHeavy = 302
	CodeDrizzleFreezing = 313

	CodeRainLight    = 500
	CodeRain         = 501
	CodeRainHeavy    = 502
	CodeRainExtreme  = 504
	CodeRainFreezing = 511
	CodeShowerLight  = 520
	CodeShower       = 521
	CodeShowerHeavy  = 522

	CodeSnowLight       = 600
	CodeSnow            = 601
	CodeSnowHeavy       = 602
	CodeSleet           = 611
	CodeRainAndSnow     = 616
	CodeSnowShowerLight = 620
	CodeSnowShower      = 621
	CodeSnowShowerHeavy = 622

	CodeMist    = 701
	CodeSmoke   = 711
	CodeHaze    = 721
	CodeDust    = 731
	CodeFog     = 741
	CodeSand    = 751
	CodeAsh     = 762
	CodeSquall  = 771
	CodeTornado = 781

	CodeClear = 800

	CodeFewClouds       = 801
	CodeScatteredClouds = 802
	CodeBrokenClouds    = 803
	CodeOvercast        = 804
)

// Wind is the wind component of a weather snapshot, SI units.
type Wind struct {
	Speed  float64  `json:"speed"`            // m/s
	Degree float64  `json:"degree"`           // 0–360, meteorological
	Gust   *float64 `json:"gust,omitempty"`   // m/s
}

// Conditions is the normalized weather snapshot. All linear and speed
// quantities are SI; see the package doc for the unit policy.
type Conditions struct {
	Time        time.Time `json:"time"` // observation or bucket time, UTC
	Temperature *float64  `json:"temperature,omitempty"` // °C
	Dewpoint    *float64  `json:"dewpoint,omitempty"`    // °C
	Humidity    *float64  `json:"humidity,omitempty"`    // %
	Pressure    *float64  `json:"pressure,omitempty"`    // hPa
	Cloudiness  *float64  `json:"cloudiness,omitempty"`  // %
	Summary     string    `json:"summary,omitempty"`
	Code        int       `json:"code"`
	Wind        Wind      `json:"wind"`
	Rain        *float64  `json:"rain,omitempty"`       // mm
	Snow        *float64  `json:"snow,omitempty"`       // mm
	Visibility  *float64  `json:"visibility,omitempty"` // m
	UVIndex     *float64  `json:"uv_index,omitempty"`

	// Set when the reading came from a resolved station rather than a
	// coordinate-interpolated model.
	StationID string  `json:"station_id,omitempty"`
	Distance  float64 `json:"distance,omitempty"` // meters, request point → station

	Raw map[string]any `json:"-"` // vendor payload, debug only
}

// CodeSummary returns the generic summary text for a shared condition
// code, used when a vendor supplies a code but no human-readable text.
func CodeSummary(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "Thunderstorm"
	case code >= 300 && code < 400:
		return "Drizzle"
	case code == CodeRainFreezing:
		return "Freezing Rain"
	case code >= 500 && code < 600:
		return "Rain"
	case code == CodeSleet:
		return "Sleet"
	case code >= 600 && code < 700:
		return "Snow"
	case code == CodeMist:
		return "Mist"
	case code == CodeFog:
		return "Fog"
	case code == CodeHaze:
		return "Haze"
	case code == CodeTornado:
		return "Tornado"
	case code >= 700 && code < 800:
		return "Atmosphere"
	case code == CodeClear:
		return "Clear"
	case code > 800 && code < 900:
		return "Clouds"
	default:
		return "Unknown"
	}
}
