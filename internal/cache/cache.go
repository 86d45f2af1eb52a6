package cache

import (
	"sync"
	"time"
)

// entry is a stored value with its expiry deadline.
type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache is a concurrency-safe in-memory cache with per-cache TTL.
// It backs the traffic and geocoding layers, where upstream results stay
// valid for minutes and every plan request would otherwise hit the network.
type TTLCache struct {
	mu  sync.RWMutex
	ttl time.Duration

	data map[string]entry

	// now is swappable in tests.
	now func() time.Time
}

// New creates a TTLCache. A ttl <= 0 disables caching entirely: Get always
// misses and Set is a no-op.
func New(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:  ttl,
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Get returns the cached value for key if it exists and has not expired.
func (c *TTLCache) Get(key string) (any, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the cache's TTL.
func (c *TTLCache) Set(key string, value any) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.data[key] = entry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Sweep removes expired entries. The warm-cache scheduler calls this so a
// long-running process does not accumulate one entry per city ever queried.
func (c *TTLCache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now()
	for k, e := range c.data {
		if cutoff.After(e.expiresAt) {
			delete(c.data, k)
		}
	}
}

// Len reports the number of entries, expired or not.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
