package cache

import (
	"context"
	"sync"
	"time"
)

// cacheEntry holds a cached value with its insertion time.
type cacheEntry struct {
	value     []byte
	timestamp time.Time
}

// InMemoryCache is a thread-safe in-memory cache with TTL and a size bound.
type InMemoryCache struct {
	cache      map[string]cacheEntry
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewInMemoryCache creates a new in-memory cache.
// If ttlSeconds is 0 or negative, entries never expire. If maxEntries is 0 or
// negative the cache is unbounded; otherwise the oldest entry is evicted when
// a new key would exceed the bound.
func NewInMemoryCache(ttlSeconds, maxEntries int) *InMemoryCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0
	}
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &InMemoryCache{
		cache:      make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *InMemoryCache) expired(e cacheEntry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.timestamp) > c.ttl
}

// Get retrieves a value from the cache.
func (c *InMemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	now := c.now()
	if !c.expired(entry, now) {
		return entry.value, true
	}

	// The entry may have been replaced since the read lock was released.
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok = c.cache[key]
	if !ok {
		return nil, false
	}
	if c.expired(entry, now) {
		delete(c.cache, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores a copy of value in the cache.
func (c *InMemoryCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.cache[key]; !exists && c.maxEntries > 0 && len(c.cache) >= c.maxEntries {
		c.evictLocked(now)
	}

	c.cache[key] = cacheEntry{
		value:     append([]byte(nil), value...),
		timestamp: now,
	}
	return nil
}

// evictLocked drops expired entries, or the oldest one if none expired.
// Must be called with the write lock held.
func (c *InMemoryCache) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	found, removed := false, false
	for k, e := range c.cache {
		if c.expired(e, now) {
			delete(c.cache, k)
			removed = true
			continue
		}
		if !found || e.timestamp.Before(oldest) {
			oldestKey, oldest, found = k, e.timestamp, true
		}
	}
	if !removed && found {
		delete(c.cache, oldestKey)
	}
}

// Len returns the number of entries in the cache (including expired ones).
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Clear removes all entries from the cache.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

// Entries returns all non-expired entries.
func (c *InMemoryCache) Entries(_ context.Context) (map[string][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string][]byte, len(c.cache))
	now := c.now()
	for key, entry := range c.cache {
		if c.expired(entry, now) {
			continue
		}
		result[key] = entry.value
	}
	return result, nil
}

var _ ExportableCache = (*InMemoryCache)(nil)
