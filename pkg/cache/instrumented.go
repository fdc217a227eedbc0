package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/acotour/pkg/observability"
)

// instrumented reports hits, misses and writes to the registered
// observability cache hooks.
type instrumented struct {
	Cache
}

// Instrument wraps c so that every Get and Set emits a cache hook event.
// Wrapping an already instrumented cache returns it unchanged.
func Instrument(c Cache) Cache {
	if _, ok := c.(instrumented); ok {
		return c
	}
	return instrumented{Cache: c}
}

func (c instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

// keyType extracts the key family ("solve", "artifact") from a key produced
// by a Keyer, ignoring any scope prefix.
func keyType(key string) string {
	for _, kind := range []string{"solve", "artifact"} {
		if strings.HasPrefix(key, kind+":") || strings.Contains(key, ":"+kind+":") {
			return kind
		}
	}
	return "other"
}
