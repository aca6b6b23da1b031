package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// entry holds one cached value and when it was built.
type entry[T any] struct {
	value T
	built time.Time
}

// Cache is a TTL cache with stampede protection. Concurrent misses for the same key
// share a single load.
type Cache[T any] struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry[T]
	sf      singleflight.Group
	now     func() time.Time
}

// NewCache creates a cache whose entries expire after ttl. A zero ttl disables caching.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

func (c *Cache[T]) expired(e entry[T]) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.built) > c.ttl
}

// GetOrLoad returns the cached value for key, or calls load when it is missing or expired.
func (c *Cache[T]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (T, error)) (T, error) {
	// Fast path: check if entry exists and is fresh
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !c.expired(e) {
		return e.value, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		e, exists := c.entries[key]
		c.mu.RUnlock()

		if exists && !c.expired(e) {
			return e.value, nil
		}

		value, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry[T]{value: value, built: c.now()}
		c.mu.Unlock()

		return value, nil
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}

// Invalidate removes key from the cache, forcing the next GetOrLoad to rebuild it.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
