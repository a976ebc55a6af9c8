// Package cache provides the TTL result cache that sits in front of vendor
// lookups. Keys are derived from coordinates rounded to four decimal places
// so that nearby requests share an entry, and historical lookups include
// their hour bucket so different hours never collide.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/couchcryptid/geodata-service/internal/domain"
)

// Store is a TTL key-value store for serialized lookup results.
type Store interface {
	// Get returns the cached value for key, or ok=false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key builds a cache key for a lookup. The coordinate is rounded to four
// decimals (roughly 11 m) before formatting. stationID is empty for
// lookups not pinned to a station; at is zero for current-conditions and
// geocode lookups, and is truncated to the hour otherwise.
func Key(capability, vendor string, coord domain.Coordinate, stationID string, at time.Time) string {
	rounded := coord.Round(4)
	key := capability + ":" + vendor + ":" +
		strconv.FormatFloat(rounded.Latitude, 'f', 4, 64) + "," +
		strconv.FormatFloat(rounded.Longitude, 'f', 4, 64)
	if stationID != "" {
		key += ":s=" + stationID
	}
	if !at.IsZero() {
		key += ":t=" + strconv.FormatInt(at.UTC().Truncate(time.Hour).Unix(), 10)
	}
	return key
}

// QueryKey builds a cache key for a forward geocode lookup on a free-form
// query string.
func QueryKey(capability, vendor, query string) string {
	return fmt.Sprintf("%s:%s:q=%s", capability, vendor, query)
}
