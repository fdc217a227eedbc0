// Package cache stores solver results and rendered artifacts by content key.
//
// # Overview
//
// A [Cache] is a byte store with per-entry expiry. Three backends exist:
//
//   - [FileCache]: JSON envelopes on local disk, for CLI usage
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are produced by a [Keyer] so every caller derives the same key for
// the same coordinates and solver parameters. Only seeded runs are cached:
// an unseeded run draws a fresh random stream and must not be replayed from
// a previous result.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().SolveKey(cache.Hash(input), cache.SolveKeyOpts{...})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLSolve    = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value byte store with optional per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
