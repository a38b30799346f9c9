package cache

import (
	"context"
	"sync"
	"time"
)

// Versions counts invalidations per key. A list read takes the generation
// before hitting the store and only writes its result back if no
// invalidation happened in between, so a read that raced a write never
// re-caches the old list.
type Versions struct {
	mu  sync.Mutex
	gen map[string]uint64
}

func NewVersions() *Versions {
	return &Versions{gen: map[string]uint64{}}
}

func (v *Versions) Current(key string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen[key]
}

// Invalidate bumps the generation of key and drops its cached value.
func (v *Versions) Invalidate(ctx context.Context, c Cache, key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen[key]++
	if c == nil {
		return nil
	}
	return c.Delete(ctx, key)
}

// SetJSON stores value under key if the generation is still gen. It reports
// whether the value was written.
func (v *Versions) SetJSON(ctx context.Context, c Cache, key string, gen uint64, value any, ttl time.Duration) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen[key] != gen {
		return false, nil
	}
	if err := SetJSON(ctx, c, key, value, ttl); err != nil {
		return false, err
	}
	return true, nil
}
