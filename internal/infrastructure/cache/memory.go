package cache

import (
	"sync"
	"time"

	"gamestore-admin/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

// lookupCache holds rendered lookups in process. Misses are loaded one at a
// time so a burst of requests after expiry builds the value once.
type lookupCache struct {
	entries *gocache.Cache
	loadMu  sync.Mutex
}

// NewMemoryCache keeps entries for ttl and sweeps expired ones every 2*ttl.
// A ttl <= 0 keeps entries until deleted.
func NewMemoryCache(ttl time.Duration) cache.CacheService {
	if ttl <= 0 {
		return &lookupCache{entries: gocache.New(gocache.NoExpiration, 0)}
	}
	return &lookupCache{entries: gocache.New(ttl, 2*ttl)}
}

func (c *lookupCache) Get(key string) (any, bool) {
	return c.entries.Get(key)
}

func (c *lookupCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.entries.Set(key, value, ttl)
}

func (c *lookupCache) Remember(key string, ttl time.Duration, load func() (any, error)) (any, error) {
	if v, ok := c.entries.Get(key); ok {
		return v, nil
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	// another caller may have loaded it while we waited
	if v, ok := c.entries.Get(key); ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		return nil, err
	}
	c.Set(key, v, ttl)
	return v, nil
}

func (c *lookupCache) Delete(key string) {
	c.entries.Delete(key)
}
