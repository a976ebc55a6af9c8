package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

type stubProvider struct {
	slug       string
	capability Capability
}

func (s stubProvider) Slug() string           { return s.slug }
func (s stubProvider) Capability() Capability { return s.capability }

func TestRegistry(t *testing.T) {
	t.Run("register and look up by slug", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(stubProvider{"alpha", CapabilityGeocode}))
		require.NoError(t, r.Register(stubProvider{"beta", CapabilityGeocode}))

		p, err := r.BySlug(CapabilityGeocode, "beta")
		require.NoError(t, err)
		assert.Equal(t, "beta", p.Slug())
	})

	t.Run("duplicate slug is rejected", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(stubProvider{"alpha", CapabilityGeocode}))
		assert.Error(t, r.Register(stubProvider{"alpha", CapabilityGeocode}))
	})

	t.Run("same slug under different capabilities is fine", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(stubProvider{"openmeteo", CapabilityGeocode}))
		require.NoError(t, r.Register(stubProvider{"openmeteo", CapabilityWeather}))
	})

	t.Run("active provider follows SetActive", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(stubProvider{"alpha", CapabilityWeather}))
		require.NoError(t, r.Register(stubProvider{"beta", CapabilityWeather}))

		require.NoError(t, r.SetActive(CapabilityWeather, "beta"))
		p, err := r.Active(CapabilityWeather)
		require.NoError(t, err)
		assert.Equal(t, "beta", p.Slug())

		require.NoError(t, r.SetActive(CapabilityWeather, "alpha"))
		p, err = r.Active(CapabilityWeather)
		require.NoError(t, err)
		assert.Equal(t, "alpha", p.Slug())
	})

	t.Run("activating an unknown slug fails", func(t *testing.T) {
		r := NewRegistry()
		err := r.SetActive(CapabilityWeather, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no active provider", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Active(CapabilityVenue)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown slug lookup", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.BySlug(CapabilityMap, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("slugs are sorted", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(stubProvider{"zulu", CapabilityGeocode}))
		require.NoError(t, r.Register(stubProvider{"alpha", CapabilityGeocode}))
		assert.Equal(t, []string{"alpha", "zulu"}, r.Slugs(CapabilityGeocode))
	})
}
