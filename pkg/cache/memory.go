package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process cache with lazy expiry. It is the default
// store for the HTTP server.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
	now        func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a memory cache holding at most maxEntries values.
// When full, expired entries are purged first and then the entry closest to
// expiry is evicted. maxEntries <= 0 means unbounded.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.expired(e) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a copy of data in the cache.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := memoryEntry{data: append([]byte(nil), data...)}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evict()
	}
	c.entries[key] = e
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}

// evict must be called with mu held.
func (c *MemoryCache) evict() {
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}

	var victim string
	var soonest time.Time
	for k, e := range c.entries {
		// Entries without expiry are evicted last.
		if e.expiresAt.IsZero() {
			if victim == "" {
				victim = k
			}
			continue
		}
		if soonest.IsZero() || e.expiresAt.Before(soonest) {
			victim, soonest = k, e.expiresAt
		}
	}
	delete(c.entries, victim)
}

var _ Cache = (*MemoryCache)(nil)
