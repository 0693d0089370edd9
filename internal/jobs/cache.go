package jobs

import (
	"sync"
	"time"
)

type cacheEntry struct {
	val       any
	expiresAt time.Time
}

// ttlCache is a small in-memory cache for upstream pages. Staleness inside
// the TTL window is an accepted tradeoff to keep load off the ATS.
type ttlCache struct {
	mu  sync.Mutex
	m   map[string]cacheEntry
	ttl time.Duration
	now func() time.Time
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{
		m:   make(map[string]cacheEntry),
		ttl: ttl,
		now: time.Now,
	}
}

func (c *ttlCache) get(key string) (any, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.m[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.m, key)
		return nil, false
	}
	return e.val, true
}

func (c *ttlCache) set(key string, val any) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.m[key] = cacheEntry{val: val, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
