package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// ResultCache is an in-memory TTL cache for scoring results keyed by
// URL and backend. The browser extension re-requests the same pages as
// the user navigates, and provider calls are the expensive part of a
// request, so even a short TTL removes most repeat traffic. No eviction
// beyond expiry; entries are small.
type ResultCache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]
	now     func() time.Time
}

type entry[V any] struct {
	value   V
	savedAt time.Time
}

// New returns a ResultCache with the given TTL. A non-positive TTL
// disables caching entirely; Get always misses and Put is a no-op.
func New[V any](ttl time.Duration) *ResultCache[V] {
	return &ResultCache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Key derives a stable cache key from url and backend.
func Key(url, backend string) string {
	h := sha256.Sum256([]byte(backend + "\x00" + url))
	return hex.EncodeToString(h[:])
}

// Get returns the cached value for key if present and not expired.
func (c *ResultCache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil || c.ttl <= 0 {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.savedAt) > c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, stamping the current time.
func (c *ResultCache[V]) Put(key string, value V) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, savedAt: c.now()}
}

// Len reports live entries, counting expired ones until they are read.
func (c *ResultCache[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
