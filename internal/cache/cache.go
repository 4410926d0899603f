package cache

import (
	"time"

	"farewatch/backend/internal/logging"
)

// Cache is the contract shared by the in-memory and Redis backends. The
// tracker uses it for alert throttling; the flight query path is
// deliberately uncached so every request re-reads the snapshot files.
type Cache interface {
	// Set stores a value with the given key and TTL
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value by key, reporting whether it was found
	Get(key string) (interface{}, bool)

	// Delete removes a value by key
	Delete(key string)

	// Close closes any underlying connections
	Close() error
}

// New returns the configured backend. An unreachable Redis falls back to the
// in-memory cache so a missing broker never takes the tracker down.
func New(backend, host, port, password string, defaultTTL time.Duration) Cache {
	if backend == "redis" {
		c, err := NewRedisCache(host, port, password)
		if err == nil {
			return c
		}
		logging.Warn("Redis unavailable, using in-memory cache", "error", err.Error())
	}
	return NewMemoryCache(defaultTTL, 10*time.Minute)
}
