package domain

// Station is a fixed-location weather-observation source, as opposed to a
// coordinate-interpolated model point. Candidates come from a vendor
// sitelist endpoint or a locally configured table.
type Station struct {
	ID         string            `json:"id"`
	Coordinate Coordinate        `json:"coordinate"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
