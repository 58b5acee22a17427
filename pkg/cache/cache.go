// Package cache stores rendered diagram artifacts keyed by content hash.
//
// Rendering a diagram is deterministic: the same DOT source always
// produces the same SVG or PNG. The pipeline therefore caches artifacts
// under a key derived from the DOT hash and the output format, and skips
// Graphviz entirely on a hit.
//
// Three backends are provided:
//
//   - [FileCache]: JSON entry files under a local directory (CLI default)
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching ("--no-cache")
//
// All backends implement [Cache] and are safe for concurrent use.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ArtifactKey builds the cache key for a rendered artifact from the hash
// of the diagram's DOT source and the output format.
func ArtifactKey(dotHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", dotHash, format)
}

// NullCache drops every write and misses every read. It backs --no-cache
// and stands in for a real backend in tests.
type NullCache struct{}

// NewNullCache creates a cache that never stores anything.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
