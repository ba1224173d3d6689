// Package cache stores rendered artifacts and generated blobs.
//
// Backends implement [Cache]: [FileCache] for the CLI, [NullCache] when
// caching is disabled, and [RedisCache] or [MongoCache] for shared service
// deployments. [Open] picks one from a single configuration string.
//
// Keys are produced by a [Keyer] so every caller hashes its inputs the same
// way. Wrap the default keyer with [NewScopedKeyer] to give a tenant (for
// example the HTTP API) its own namespace in a shared backend.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLBlob     = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
