package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryLookups(t *testing.T) {
	t.Run("by alpha2", func(t *testing.T) {
		c, ok := CountryByAlpha2("ca")
		require.True(t, ok)
		assert.Equal(t, "CAN", c.Alpha3)
		assert.Equal(t, "Canada", c.Name)
	})

	t.Run("by alpha3", func(t *testing.T) {
		c, ok := CountryByAlpha3("deu")
		require.True(t, ok)
		assert.Equal(t, "DE", c.Alpha2)
	})

	t.Run("by name case-insensitive", func(t *testing.T) {
		c, ok := CountryByName("uNiTeD kInGdOm")
		require.True(t, ok)
		assert.Equal(t, "GB", c.Alpha2)
	})

	t.Run("by alias", func(t *testing.T) {
		c, ok := CountryByName("USA")
		require.True(t, ok)
		assert.Equal(t, "US", c.Alpha2)

		c, ok = CountryByName("Czech Republic")
		require.True(t, ok)
		assert.Equal(t, "CZ", c.Alpha2)
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := CountryByName("Atlantis")
		assert.False(t, ok)
	})
}

// Every table entry must round-trip alpha2 → alpha3 → alpha2 and
// alpha2 → name → alpha2.
func TestCountryRoundTrip(t *testing.T) {
	for _, c := range countries {
		byA3, ok := CountryByAlpha3(c.Alpha3)
		require.True(t, ok, c.Alpha3)
		assert.Equal(t, c.Alpha2, byA3.Alpha2)

		byName, ok := CountryByName(c.Name)
		require.True(t, ok, c.Name)
		assert.Equal(t, c.Alpha2, byName.Alpha2)
	}
}

func TestNormalizeCountryCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ca", "CA"},
		{"CA", "CA"},
		{"CAN", "CA"},
		{"Canada", "CA"},
		{"United States of America", "US"},
		{"usa", "US"},
		{"xq", "XQ"}, // unknown two-letter input passes through uppercased
		{"Atlantis", ""},
		{"", ""},
		{"  fr  ", "FR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCountryCode(tt.in), "input %q", tt.in)
	}
}

// Region tables must round-trip code → name → code for every entry of
// every covered country.
func TestRegionRoundTrip(t *testing.T) {
	for country, table := range regionTables {
		for code, name := range table {
			assert.Equal(t, name, RegionName(country, code), "%s/%s", country, code)
			assert.Equal(t, code, RegionCode(country, name), "%s/%s", country, name)
		}
	}
}

func TestRegionLookups(t *testing.T) {
	assert.Equal(t, "Ontario", RegionName("CA", "ON"))
	assert.Equal(t, "ON", RegionCode("ca", "ontario"))
	assert.Equal(t, "TX", RegionCode("US", "Texas"))
	assert.Equal(t, "BY", RegionCode("DE", "Bavaria"), "alias")
	assert.Equal(t, "QC", RegionCode("CA", "Québec"), "alias")
	assert.Equal(t, "ON", RegionCode("CA", "ON"), "code in the name slot")

	assert.Empty(t, RegionName("JP", "13"), "uncovered country")
	assert.Empty(t, RegionCode("CA", "Narnia"))
	assert.Empty(t, RegionCode("CA", ""))
}

func TestStreetAddressOrder(t *testing.T) {
	tests := []struct {
		country string
		number  string
		street  string
		want    string
	}{
		{"US", "5", "Main St", "5 Main St"},
		{"GB", "10", "Downing Street", "10 Downing Street"},
		{"DE", "5", "Hauptstraße", "Hauptstraße 5"},
		{"ES", "12", "Calle Mayor", "Calle Mayor 12"},
		{"", "5", "Main St", "5 Main St"}, // unknown country: number-first default
		{"DE", "", "Hauptstraße", "Hauptstraße"},
		{"US", "5", "", "5"},
		{"US", "", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatStreetAddress(tt.country, tt.number, tt.street))
	}
}
