package cache

import "time"

// CacheService is the process cache used for slow-changing lookups such as
// the enum configuration.
type CacheService interface {
	// Get returns the value and true when the key is present and fresh.
	Get(key string) (any, bool)

	// Set stores value for ttl; 0 uses the cache default.
	Set(key string, value any, ttl time.Duration)

	// Remember returns the cached value for key, calling load and caching its
	// result on a miss. Load errors are returned and not cached.
	Remember(key string, ttl time.Duration, load func() (any, error)) (any, error)

	Delete(key string)
}
