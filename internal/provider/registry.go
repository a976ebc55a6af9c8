// Package provider holds the capability registry and the vendor-backed
// providers for geocoding, weather, elevation, and static maps. Vendors are
// described as data: an endpoint builder plus a normalization schema,
// consumed by one generic provider per capability.
package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// Capability names a class of lookup a provider can serve.
type Capability string

const (
	CapabilityGeocode   Capability = "geocode"
	CapabilityElevation Capability = "elevation"
	CapabilityWeather   Capability = "weather"
	CapabilityMap       Capability = "map"
	CapabilityVenue     Capability = "venue"
)

// Provider is the common surface of every registered vendor provider.
// Callers assert to the capability interface (Geocoder, Weather, Elevation,
// StaticMap) after lookup.
type Provider interface {
	Slug() string
	Capability() Capability
}

// Registry holds providers per capability and tracks the one active slug
// for each. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[Capability]map[string]Provider
	active    map[Capability]string
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[Capability]map[string]Provider),
		active:    make(map[Capability]string),
	}
}

// Register adds p under its capability and slug. Registering the same slug
// twice for one capability is a wiring mistake and returns an error.
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	capability := p.Capability()
	if r.providers[capability] == nil {
		r.providers[capability] = make(map[string]Provider)
	}
	if _, exists := r.providers[capability][p.Slug()]; exists {
		return fmt.Errorf("provider %q already registered for capability %s", p.Slug(), capability)
	}
	r.providers[capability][p.Slug()] = p
	return nil
}

// SetActive marks slug as the active provider for the capability. The slug
// must already be registered.
func (r *Registry) SetActive(capability Capability, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[capability][slug]; !ok {
		return fmt.Errorf("no provider %q registered for capability %s: %w", slug, capability, domain.ErrNotFound)
	}
	r.active[capability] = slug
	return nil
}

// Active returns the active provider for the capability.
func (r *Registry) Active(capability Capability) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slug, ok := r.active[capability]
	if !ok {
		return nil, fmt.Errorf("no active provider for capability %s: %w", capability, domain.ErrNotFound)
	}
	return r.providers[capability][slug], nil
}

// BySlug returns the provider registered under the capability and slug.
func (r *Registry) BySlug(capability Capability, slug string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[capability][slug]
	if !ok {
		return nil, fmt.Errorf("no provider %q for capability %s: %w", slug, capability, domain.ErrNotFound)
	}
	return p, nil
}

// Slugs lists the registered slugs for a capability, sorted.
func (r *Registry) Slugs(capability Capability) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.providers[capability]))
	for slug := range r.providers[capability] {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// ActiveGeocoder returns the active geocode provider asserted to its
// capability interface.
func ActiveGeocoder(r *Registry) (Geocoder, error) {
	p, err := r.Active(CapabilityGeocode)
	if err != nil {
		return nil, err
	}
	g, ok := p.(Geocoder)
	if !ok {
		return nil, fmt.Errorf("provider %q does not implement geocoding", p.Slug())
	}
	return g, nil
}

// ActiveWeather returns the active weather provider.
func ActiveWeather(r *Registry) (Weather, error) {
	p, err := r.Active(CapabilityWeather)
	if err != nil {
		return nil, err
	}
	w, ok := p.(Weather)
	if !ok {
		return nil, fmt.Errorf("provider %q does not implement weather", p.Slug())
	}
	return w, nil
}

// ActiveElevation returns the active elevation provider.
func ActiveElevation(r *Registry) (Elevation, error) {
	p, err := r.Active(CapabilityElevation)
	if err != nil {
		return nil, err
	}
	e, ok := p.(Elevation)
	if !ok {
		return nil, fmt.Errorf("provider %q does not implement elevation", p.Slug())
	}
	return e, nil
}

// ActiveStaticMap returns the active static map provider.
func ActiveStaticMap(r *Registry) (StaticMap, error) {
	p, err := r.Active(CapabilityMap)
	if err != nil {
		return nil, err
	}
	m, ok := p.(StaticMap)
	if !ok {
		return nil, fmt.Errorf("provider %q does not implement static maps", p.Slug())
	}
	return m, nil
}
