package port

import (
	"context"
	"time"
)

// Cache is the minimal key-value contract the application depends on.
// Implementations must be safe for concurrent use. Values are plain strings
// so the port stays free of serialization concerns.
type Cache interface {
	// Get fetches the value for key, returning ErrMiss when absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value with the given TTL. Zero or negative TTL persists
	// until eviction.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes keys and reports how many were removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Ping verifies connectivity with the backend.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// ErrMiss signals a cache miss in a typed way, distinguishable from
// transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (errMiss) Error() string { return "cache: miss" }
