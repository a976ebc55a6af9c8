// Package station resolves the nearest weather station to a coordinate.
//
// Candidates are sorted by great-circle distance and the closest one is
// accepted only when it falls within the maximum radius; a nearer match
// outside the radius is never substituted with a farther one. Custom
// user-submitted stations use a tight radius, national network stations a
// wide one.
package station

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/couchcryptid/geodata-service/internal/domain"
	"github.com/couchcryptid/geodata-service/internal/geo"
)

// Default search radii in meters.
const (
	DefaultCustomRadius  = 10_000.0
	DefaultNetworkRadius = 100_000.0
)

// Nearest returns the candidate closest to target along with its distance
// in meters. It returns domain.ErrNotFound when there are no candidates or
// when the closest one is farther than maxRadiusMeters. The sort is stable:
// among equal distances the earliest candidate in the input wins.
func Nearest(target domain.Coordinate, candidates []domain.Station, maxRadiusMeters float64) (domain.Station, float64, error) {
	if len(candidates) == 0 {
		return domain.Station{}, 0, fmt.Errorf("no station candidates: %w", domain.ErrNotFound)
	}

	type ranked struct {
		station  domain.Station
		distance float64
	}
	list := make([]ranked, len(candidates))
	for i, c := range candidates {
		list[i] = ranked{
			station:  c,
			distance: geo.Distance(target.Latitude, target.Longitude, c.Coordinate.Latitude, c.Coordinate.Longitude),
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].distance < list[j].distance })

	closest := list[0]
	if closest.distance > maxRadiusMeters {
		return domain.Station{}, 0, fmt.Errorf("closest station %s is %.0f m away, beyond %.0f m: %w",
			closest.station.ID, closest.distance, maxRadiusMeters, domain.ErrNotFound)
	}
	return closest.station, closest.distance, nil
}

// Source provides station candidates, typically from a vendor sitelist
// endpoint or a static table.
type Source interface {
	Stations(ctx context.Context) ([]domain.Station, error)
}

// Static is a Source backed by a fixed list.
type Static []domain.Station

func (s Static) Stations(context.Context) ([]domain.Station, error) {
	return []domain.Station(s), nil
}

// Cached wraps a Source with a short-lived process cache so repeated
// lookups within the TTL reuse one sitelist fetch.
type Cached struct {
	source Source
	ttl    time.Duration

	mu        sync.Mutex
	stations  []domain.Station
	fetchedAt time.Time
}

// NewCached wraps source with a TTL cache.
func NewCached(source Source, ttl time.Duration) *Cached {
	return &Cached{source: source, ttl: ttl}
}

func (c *Cached) Stations(ctx context.Context) ([]domain.Station, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := domain.Now()
	if c.stations != nil && now.Sub(c.fetchedAt) < c.ttl {
		return c.stations, nil
	}

	stations, err := c.source.Stations(ctx)
	if err != nil {
		return nil, err
	}
	c.stations = stations
	c.fetchedAt = now
	return stations, nil
}

// Resolve runs the two-tier search: custom stations within the custom
// radius first, then the network source within the network radius. A
// custom station outside its radius is skipped, not carried into the
// network pass. Returns domain.ErrNotFound when neither tier matches.
func Resolve(ctx context.Context, target domain.Coordinate, custom, network Source, customRadius, networkRadius float64) (domain.Station, float64, error) {
	if custom != nil {
		candidates, err := custom.Stations(ctx)
		if err != nil {
			return domain.Station{}, 0, fmt.Errorf("custom station source: %w", err)
		}
		s, d, err := Nearest(target, candidates, customRadius)
		if err == nil {
			return s, d, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Station{}, 0, err
		}
	}

	if network == nil {
		return domain.Station{}, 0, fmt.Errorf("no network station source: %w", domain.ErrNotFound)
	}
	candidates, err := network.Stations(ctx)
	if err != nil {
		return domain.Station{}, 0, fmt.Errorf("network station source: %w", err)
	}
	return Nearest(target, candidates, networkRadius)
}
