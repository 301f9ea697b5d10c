package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-memory TTL cache bounded to a maximum entry count.
// When full it evicts expired entries first, then the entries closest to
// expiry (oldest-inserted under a uniform TTL).
type MemoryCache struct {
	cache      *gocache.Cache
	maxEntries int
	mu         sync.Mutex // serializes the check-then-evict on Set
}

// NewMemoryCache creates a bounded memory cache. maxEntries <= 0 means
// unbounded.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration, maxEntries int) *MemoryCache {
	return &MemoryCache{
		cache:      gocache.New(defaultTTL, cleanupInterval),
		maxEntries: maxEntries,
	}
}

// Get retrieves a value; expired entries are never returned
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a value, evicting if the entry bound would be exceeded
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if c.maxEntries > 0 {
		c.mu.Lock()
		if _, exists := c.cache.Get(key); !exists && c.cache.ItemCount() >= c.maxEntries {
			c.evict()
		}
		c.mu.Unlock()
	}
	c.cache.Set(key, value, ttl)
	return nil
}

// evict frees room for one entry: drop expired items, then the item with
// the nearest expiration. Caller holds c.mu.
func (c *MemoryCache) evict() {
	c.cache.DeleteExpired()
	if c.cache.ItemCount() < c.maxEntries {
		return
	}

	var victim string
	var earliest int64
	for key, item := range c.cache.Items() {
		if item.Expiration == 0 {
			continue // never expires; not a candidate
		}
		if victim == "" || item.Expiration < earliest {
			victim, earliest = key, item.Expiration
		}
	}
	if victim != "" {
		c.cache.Delete(victim)
	}
}

// Delete removes a value
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// Len returns the current entry count, expired entries included until the
// janitor sweeps them
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
