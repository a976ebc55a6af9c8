// Package domain defines the canonical, vendor-independent schema that all
// provider normalizers produce: a geographic coordinate, a normalized
// address, a normalized weather snapshot, and a weather station candidate.
//
// # Canonical schema
//
// Every geocoding vendor names semantically-equivalent fields differently
// (Nominatim's "town" is Google's "locality" is HERE's "city"). Normalizers
// in internal/normalize fold those into [Address] and [Conditions] so that
// callers, caching, and the HTTP surface never see vendor shapes.
//
// # Units
//
// Conditions stores SI units exclusively: temperatures in °C, speeds in
// m/s, distances in meters, precipitation in mm, pressure in hPa.
// Conversion to imperial happens at presentation time on a copy and never
// mutates a cached record.
//
// # Condition codes
//
// The shared condition-code space follows the OpenWeatherMap grouping so a
// single UI/alerting table works regardless of the active vendor:
//
//	2xx  thunderstorm
//	3xx  drizzle
//	5xx  rain
//	6xx  snow / sleet
//	7xx  atmosphere (mist, fog, haze, dust)
//	800  clear
//	80x  clouds (801 few … 804 overcast)
//
// Vendor values with no mapping normalize to [CodeUnknown] (0), never to an
// error: an exotic icon string must not fail an otherwise good reading.
//
// # Errors
//
// A failed lookup is always distinguishable from a successful empty one:
// [ErrNoResults] means the vendor answered with zero matches, while
// transport failures and vendor error envelopes surface as *[UpstreamError]
// or wrapped net errors. Nothing in this package retries.
package domain
