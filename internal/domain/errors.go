package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lookup taxonomy. Callers branch with errors.Is;
// the HTTP layer maps them to status codes.
var (
	// ErrMissingCredentials means the active vendor requires an API key
	// that configuration does not supply. Returned before any network call.
	ErrMissingCredentials = errors.New("provider credentials not configured")

	// ErrNoResults means the vendor answered successfully with zero
	// matches (empty result array, "no data" status, missing hour bucket).
	ErrNoResults = errors.New("no results")

	// ErrNotFound means a registry or station search found no acceptable
	// entry (unknown slug, no station within the search radius).
	ErrNotFound = errors.New("not found")

	// ErrMalformedResponse means a 2xx response lacked the keys the
	// vendor's schema promises.
	ErrMalformedResponse = errors.New("malformed vendor response")
)

// UpstreamError carries a vendor's error envelope or a non-2xx status so
// callers can log the vendor diagnostics verbatim.
type UpstreamError struct {
	Vendor     string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: upstream status %d", e.Vendor, e.StatusCode)
	}
	return fmt.Sprintf("%s: upstream status %d: %s", e.Vendor, e.StatusCode, e.Message)
}
