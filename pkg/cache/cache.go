// Package cache stores serialized traces and rendered frames.
//
// # Backends
//
//   - [NullCache]: stores nothing, every Get is a miss
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// # Keys
//
// Keys are built by a [Keyer] so every caller hashes inputs the same way:
//
//	key := keyer.TraceKey("bfs", req)
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    ...
//	}
//
// Generators are pure, so a trace key fully determines the trace.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind.
const (
	TTLTrace    = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
//
// Get returns hit=false and a nil error when the key is absent or expired.
// A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
