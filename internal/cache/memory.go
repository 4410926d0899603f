package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-memory cache backend.
type MemoryCache struct {
	cache *gocache.Cache
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache creates an in-memory cache with the given default TTL and
// cleanup interval.
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (m *MemoryCache) Set(key string, value interface{}, duration time.Duration) {
	m.cache.Set(key, value, duration)
}

func (m *MemoryCache) Get(key string) (interface{}, bool) {
	return m.cache.Get(key)
}

func (m *MemoryCache) Delete(key string) {
	m.cache.Delete(key)
}

// Close is a no-op for the in-memory backend.
func (m *MemoryCache) Close() error {
	return nil
}
