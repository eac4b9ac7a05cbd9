package nexus

import (
	"sync"
	"time"
)

// responseCache is an in-memory TTL cache for raw API responses.
// It keeps repeated polls of the same endpoint within the rate limits.
type responseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	storedAt time.Time
	data     []byte
}

// newResponseCache creates a cache with the given TTL.
// A zero or negative TTL disables caching.
func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached response for key, if present and fresh.
func (c *responseCache) Get(key string) ([]byte, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.data, true
}

// Put stores a response and drops any expired entries.
func (c *responseCache) Put(key string, data []byte) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{storedAt: now, data: data}
}

// Len returns the number of cached entries, expired or not.
func (c *responseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
