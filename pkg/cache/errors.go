package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")

	// ErrNotConfigured is returned when a server backend is missing its address.
	ErrNotConfigured = errors.New("cache backend not configured")
)
