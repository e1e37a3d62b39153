// Package cache stores generated worksheet artifacts.
//
// # Overview
//
// Generation is deterministic: the same word list and layout always produce
// the same HTML. The CLI uses a [FileCache] so repeated "generate" runs are
// instant, and the HTTP server uses a [MemoryCache] or [RedisCache] to hold
// worksheets between the create request and the view/download requests.
//
// # Keys
//
// A [Keyer] builds keys from a content hash of the inputs plus the render
// options. [ScopedKeyer] prefixes every key, which lets several servers share
// one Redis database.
//
// All implementations are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// Cache lifetimes.
const (
	// TTLArtifact is how long rendered HTML/JSON/PDF output is reused.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLShare is how long a worksheet created through the HTTP API stays
	// viewable.
	TTLShare = 2 * time.Hour
)
