// Package store provides expiring key-value storage shared by the travel
// cache and the circuit breaker. Both an in-process store and a
// PostgreSQL-backed store implement the same interface, so deployments can
// share breaker state across instances without code changes.
package store

import (
	"context"
	"time"
)

// Store is an expiring key-value store with a fixed-window counter.
//
// Get and Set handle opaque payloads. Incr and Count handle counters:
// the first Incr on a key opens a window of the given duration, later
// increments within the window keep its original expiry, and an expired
// counter restarts at 1 with a fresh window.
type Store interface {
	// Get returns the value at key. The second return reports whether a
	// live entry was found; an expired or missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes value under key, replacing any previous entry. The entry
	// expires after ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Incr increments the counter at key and returns the new value.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)

	// Count returns the current counter value, zero when absent or expired.
	Count(ctx context.Context, key string) (int64, error)
}
