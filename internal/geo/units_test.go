package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func TestConversionsRoundTrip(t *testing.T) {
	pairs := []struct {
		name    string
		forward func(float64) float64
		inverse func(float64) float64
	}{
		{"kmh/ms", KmhToMs, MsToKmh},
		{"mph/ms", MphToMs, MsToMph},
		{"knots/ms", KnotsToMs, MsToKnots},
		{"km/m", KmToM, MToKm},
		{"cm/mm", CmToMm, MmToCm},
		{"c/f", CToF, FToC},
		{"mm/in", MmToIn, InToMm},
		{"m/ft", MToFt, FtToM},
		{"m/mi", MToMi, MiToM},
		{"hpa/inhg", HpaToInHg, InHgToHpa},
	}

	samples := []float64{0, 0.1, 1, 3.6, 42, 101.3, 1013.25}

	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			for _, x := range samples {
				assert.InDelta(t, x, p.inverse(p.forward(x)), tolerance)
				assert.InDelta(t, x, p.forward(p.inverse(x)), tolerance)
			}
		})
	}
}

func TestKnownConversions(t *testing.T) {
	assert.InDelta(t, 1.0, KmhToMs(3.6), tolerance)
	assert.InDelta(t, 36.0, MsToKmh(10), tolerance)
	assert.InDelta(t, 0.44704, MphToMs(1), 1e-6)
	assert.InDelta(t, 0.514444, KnotsToMs(1), 1e-5)
	assert.InDelta(t, 32.0, CToF(0), tolerance)
	assert.InDelta(t, 100.0, FToC(212), tolerance)
	assert.InDelta(t, 25.4, InToMm(1), tolerance)
	assert.InDelta(t, 1609.344, MiToM(1), tolerance)
}

func TestDistance(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		assert.Zero(t, Distance(45.0, -75.0, 45.0, -75.0))
	})

	t.Run("Paris to London", func(t *testing.T) {
		// Notre-Dame to Big Ben, roughly 341 km.
		d := Distance(48.8530, 2.3499, 51.5007, -0.1246)
		assert.InDelta(t, 341000, d, 2500)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		// ~111.2 km on a spherical earth regardless of longitude.
		d := Distance(10.0, 20.0, 11.0, 20.0)
		assert.InDelta(t, 111195, d, 50)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Distance(60.17, 24.94, 59.33, 18.07)
		b := Distance(59.33, 18.07, 60.17, 24.94)
		assert.InDelta(t, a, b, tolerance)
	})
}
