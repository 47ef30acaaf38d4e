// Package cache provides content-addressed caching for layout plans.
//
// Plans are pure functions of their workspace fingerprint, so cache entries
// never go stale in the usual sense: a changed workspace produces a new key,
// and bumping the engine version changes every key at once. Backends:
//
//   - FileCache: per-key JSON files for CLI usage
//   - RedisCache: shared cache for multi-instance service deployments
//   - NullCache: caching disabled
//
// Every backend treats corrupted, partial, or unreadable entries as misses,
// never as errors: the planner recomputes and overwrites. Concurrent writers
// racing on one key are benign because determinism guarantees both values
// are byte-identical.
package cache

import (
	"context"
	"time"
)

// TTLs per entry class.
const (
	// TTLPlan bounds how long a computed plan is kept. Plans are
	// content-addressed so this is housekeeping, not correctness.
	TTLPlan = 14 * 24 * time.Hour
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present; an unreadable entry is reported as a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
