package domain

import (
	"fmt"
	"math"
)

// Coordinate is a WGS-84 position. Altitude and Accuracy are optional and
// nil when the source did not report them; altitude zero is a real value
// (sea level), so absence must not be encoded as 0.
type Coordinate struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"` // meters
	Accuracy  *float64 `json:"accuracy,omitempty"` // meters
}

// Validate checks the coordinate is within WGS-84 bounds.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// Round returns a copy with latitude and longitude rounded to the given
// number of decimal places. Used for cache-key derivation so that
// repeated lookups a few meters apart share an entry.
func (c Coordinate) Round(places int) Coordinate {
	scale := math.Pow(10, float64(places))
	c.Latitude = math.Round(c.Latitude*scale) / scale
	c.Longitude = math.Round(c.Longitude*scale) / scale
	return c
}

// Float64 returns a pointer to v; convenience for the optional fields.
func Float64(v float64) *float64 { return &v }
