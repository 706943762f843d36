// Package cache stores rendered layout artifacts, mainly SVG produced by
// Graphviz, which is slow enough to be worth skipping for an unchanged
// tree.
//
// Keys are derived from the rendered input, so entries never go stale;
// TTLs only bound disk and memory use. Three implementations are provided:
// [FileCache] for the CLI, [MemoryCache] for the server and [NullCache] to
// disable caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the entry for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
