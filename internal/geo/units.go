// Package geo provides the pure geospatial math shared by the normalizers:
// great-circle distance and unit conversions between the SI units used
// internally and the imperial/nautical units used at presentation time.
package geo

// Conversion ratios. All canonical records store SI units (m, m/s, mm, hPa);
// conversion out of SI happens only when rendering a response.
const (
	metersPerKilometer = 1000.0
	metersPerMile      = 1609.344
	metersPerFoot      = 0.3048
	secondsPerHour     = 3600.0
	mmPerInch          = 25.4
	hpaPerInHg         = 33.8638866667
)

// KmhToMs converts kilometers per hour to meters per second.
func KmhToMs(kmh float64) float64 { return kmh * metersPerKilometer / secondsPerHour }

// MsToKmh converts meters per second to kilometers per hour.
func MsToKmh(ms float64) float64 { return ms * secondsPerHour / metersPerKilometer }

// MphToMs converts miles per hour to meters per second.
func MphToMs(mph float64) float64 { return mph * metersPerMile / secondsPerHour }

// MsToMph converts meters per second to miles per hour.
func MsToMph(ms float64) float64 { return ms * secondsPerHour / metersPerMile }

// KnotsToMs converts knots (nautical miles per hour) to meters per second.
func KnotsToMs(kn float64) float64 { return kn * 1852.0 / secondsPerHour }

// MsToKnots converts meters per second to knots.
func MsToKnots(ms float64) float64 { return ms * secondsPerHour / 1852.0 }

// KmToM converts kilometers to meters.
func KmToM(km float64) float64 { return km * metersPerKilometer }

// MToKm converts meters to kilometers.
func MToKm(m float64) float64 { return m / metersPerKilometer }

// CmToMm converts centimeters to millimeters.
func CmToMm(cm float64) float64 { return cm * 10 }

// MmToCm converts millimeters to centimeters.
func MmToCm(mm float64) float64 { return mm / 10 }

// CToF converts degrees Celsius to degrees Fahrenheit.
func CToF(c float64) float64 { return c*9/5 + 32 }

// FToC converts degrees Fahrenheit to degrees Celsius.
func FToC(f float64) float64 { return (f - 32) * 5 / 9 }

// MmToIn converts millimeters to inches.
func MmToIn(mm float64) float64 { return mm / mmPerInch }

// InToMm converts inches to millimeters.
func InToMm(in float64) float64 { return in * mmPerInch }

// MToFt converts meters to feet.
func MToFt(m float64) float64 { return m / metersPerFoot }

// FtToM converts feet to meters.
func FtToM(ft float64) float64 { return ft * metersPerFoot }

// MToMi converts meters to statute miles.
func MToMi(m float64) float64 { return m / metersPerMile }

// MiToM converts statute miles to meters.
func MiToM(mi float64) float64 { return mi * metersPerMile }

// HpaToInHg converts hectopascals to inches of mercury.
func HpaToInHg(hpa float64) float64 { return hpa / hpaPerInHg }

// InHgToHpa converts inches of mercury to hectopascals.
func InHgToHpa(inhg float64) float64 { return inhg * hpaPerInHg }
