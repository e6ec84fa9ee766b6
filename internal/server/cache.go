package server

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds a cached parse result with its timestamp.
type cacheEntry struct {
	value     any
	timestamp time.Time
}

// ResultCache is a TTL cache for parse results keyed by a digest of the
// input document and the options it was parsed with. Concurrent misses for
// the same key share one computation.
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	group   singleflight.Group
	now     func() time.Time

	hits, misses int
}

// NewResultCache creates a new cache. A ttl of 0 disables caching.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// CacheKey digests the parts that determine a result.
func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached value for key if it is within the TTL, otherwise
// it computes, stores and returns a fresh one. Errors are not cached. Every
// miss also drops the entries that have expired.
func (c *ResultCache) Get(key string, compute func() (any, error)) (any, bool, error) {
	if c.ttl == 0 {
		v, err := compute()
		return v, false, err
	}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		c.hits++
		c.mu.Unlock()
		return entry.value, true, nil
	}
	c.misses++
	c.pruneLocked()
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{value: v, timestamp: c.now()}
		c.mu.Unlock()
		return v, nil
	})
	return v, false, err
}

// Stats returns the hit and miss counts.
func (c *ResultCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of stored entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// pruneLocked drops expired entries. c.mu must be held.
func (c *ResultCache) pruneLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.timestamp) >= c.ttl {
			delete(c.entries, k)
		}
	}
}
