// Package cache provides a process-wide in-memory TTL cache for exchange
// rates. It is injected rather than global so tests can control time.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     float64
	expiresAt time.Time
}

// Cache maps string keys to float64 values with a per-entry TTL.
// It is safe for concurrent use; writes are atomic with respect to readers,
// so a racing read observes either the old value or the new one, never a
// partial entry.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock creates a cache with an injectable clock for tests.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns the cached value for key, or false when the key is absent or
// its TTL has elapsed.
func (c *Cache) Get(key string) (float64, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return 0, false
	}
	return e.value, true
}

// Set stores value under key for ttl. A non-positive ttl expires immediately.
func (c *Cache) Set(key string, value float64, ttl time.Duration) {
	e := entry{value: value, expiresAt: c.now().Add(ttl)}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Sweep removes expired entries. Callers may run it periodically; Get
// already treats expired entries as misses, so sweeping only reclaims memory.
func (c *Cache) Sweep() {
	now := c.now()
	c.mu.Lock()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}
