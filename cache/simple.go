package cache

import (
	"sync"
	"time"
)

// SimpleCache implements a thread-safe in-memory cache with per-entry TTL
type SimpleCache struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	defaultTTL time.Duration

	hits     int64
	misses   int64
	sizeStat int64

	cleanupInterval time.Duration
	stopChan        chan struct{}
}

type entry struct {
	data         interface{}
	expiresAt    time.Time
	createdAt    time.Time
	lastAccessed time.Time
	accessCount  int64
}

// expired reports whether the entry is past its expiry at the given instant
func (e *entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// NewSimpleCache creates a new cache. A non-positive defaultTTL falls back to
// DefaultTTL. A positive cleanupInterval starts a background janitor that
// sweeps expired entries; a non-positive interval disables the janitor.
func NewSimpleCache(defaultTTL, cleanupInterval time.Duration) *SimpleCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	cache := &SimpleCache{
		entries:         make(map[string]*entry),
		defaultTTL:      defaultTTL,
		cleanupInterval: cleanupInterval,
		stopChan:        make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go cache.cleanupLoop()
	}

	return cache
}

// Get retrieves a live value from the cache. Expired entries are removed on
// access and reported as misses.
func (c *SimpleCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.entries[key]
	if !exists {
		c.misses++
		return nil, false
	}

	now := time.Now()
	if item.expired(now) {
		delete(c.entries, key)
		c.sizeStat = int64(len(c.entries))
		c.misses++
		return nil, false
	}

	item.lastAccessed = now
	item.accessCount++
	c.hits++

	return item.data, true
}

// Set stores a value with the given TTL, replacing any existing entry.
// Negative TTLs are clamped to zero, which expires the entry on next access.
func (c *SimpleCache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{
		data:         value,
		expiresAt:    now.Add(ttl),
		createdAt:    now,
		lastAccessed: now,
	}
	c.sizeStat = int64(len(c.entries))
}

// SetDefault stores a value using the cache's default TTL
func (c *SimpleCache) SetDefault(key string, value interface{}) {
	c.Set(key, value, c.defaultTTL)
}

// Delete removes a value from the cache. Deleting a missing key is a no-op.
func (c *SimpleCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	c.sizeStat = int64(len(c.entries))
}

// Clear removes all entries and resets the hit and miss counters
func (c *SimpleCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.hits = 0
	c.misses = 0
	c.sizeStat = 0
}

// Cleanup removes all expired entries and returns how many were dropped
func (c *SimpleCache) Cleanup() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, item := range c.entries {
		if item.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	c.sizeStat = int64(len(c.entries))

	return removed
}

// Size returns the current number of entries, including expired entries the
// janitor has not swept yet
func (c *SimpleCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters
func (c *SimpleCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return newStats(c.hits, c.misses, c.sizeStat)
}

// Stop shuts down the background janitor
func (c *SimpleCache) Stop() {
	select {
	case <-c.stopChan:
		// Already stopped
		return
	default:
		close(c.stopChan)
	}
}

// cleanupLoop periodically sweeps expired entries
func (c *SimpleCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Cleanup()
		case <-c.stopChan:
			return
		}
	}
}
