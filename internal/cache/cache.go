// Package cache provides a process-wide in-memory TTL cache used to avoid
// re-fetching identical upstream queries within a window. Entries are evicted
// lazily on read and proactively by a background sweep.
package cache

import (
	"sync"
	"time"
)

const (
	defaultTTL           = 10 * time.Minute
	defaultSweepInterval = 5 * time.Minute
)

type entry struct {
	value     any
	createdAt time.Time
	expiresAt time.Time
}

// Cache is a mutex-guarded key/value store with per-entry expiry.
// It is safe for concurrent use by multiple requests.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	ttl   time.Duration
	sweep time.Duration

	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// New creates a cache with the given default TTL and sweep interval.
// Non-positive values fall back to the defaults.
func New(ttl, sweep time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if sweep <= 0 {
		sweep = defaultSweepInterval
	}

	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		sweep:   sweep,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// TTL returns the default time-to-live applied by Set.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the value stored under key. An expired entry is treated as a
// miss and removed, even if the sweep has not run yet.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed it.
		if current, still := c.entries[key]; still && time.Now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores the value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores the value under key with an explicit TTL.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	now := time.Now()

	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	c.mu.Unlock()
}

// Len returns the number of entries currently stored, expired ones included
// until the next sweep or read touches them.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Start launches the background sweep goroutine. Call Stop to terminate it.
func (c *Cache) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go func() {
		defer close(c.done)

		ticker := time.NewTicker(c.sweep)
		defer ticker.Stop()

		for {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
				c.evictExpired()
			}
		}
	}()
}

// Stop terminates the sweep goroutine and waits for it to exit. It is safe
// to call multiple times, and a no-op when the sweep was never started.
func (c *Cache) Stop() {
	c.mu.RLock()
	started := c.started
	c.mu.RUnlock()
	if !started {
		return
	}

	c.stopOnce.Do(func() {
		close(c.stop)
	})
	<-c.done
}

func (c *Cache) evictExpired() {
	now := time.Now()

	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
