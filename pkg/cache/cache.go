// Package cache stores resolution results keyed by a hash of their inputs.
//
// Resolution is deterministic: the same declarations resolved with the same
// options always produce the same geometry. A [Keyer] turns the declaration
// hash and the options into a stable key, and a [Cache] backend holds the
// serialized snapshot:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries as JSON files for the CLI
//   - [RedisCache] shares entries between API server instances
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	ResolveTTL = 7 * 24 * time.Hour
	GraphTTL   = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// NullCache disables caching: every Get misses and Set discards. It backs
// --no-cache and the "none" backend.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                      { return nil }
func (NullCache) Close() error                                              { return nil }
