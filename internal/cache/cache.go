// Package cache provides a process-local TTL cache for Congress.gov
// responses.
//
// One instance is shared by every concurrent tool call for the lifetime of
// the process; nothing is persisted. Expired entries are deleted lazily on
// lookup, never swept in the background.
//
// Example usage:
//
//	c := cache.New(5 * time.Minute)
//	key := cache.Key("/bill/119/hr", map[string]string{"limit": "20"})
//	c.Set(key, body)
//	body, ok := c.Get(key)
package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// entry pairs a cached response with its insertion time.
type entry struct {
	value    map[string]any
	inserted time.Time
}

// Cache is a thread-safe TTL map keyed by normalized endpoint+params.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	hits    uint64
	misses  uint64
}

// New creates a cache whose entries are valid for ttl after insertion.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key if present and fresh.
//
// An expired entry counts as a miss and is removed. The hit/miss counters
// feed Stats.
func (c *Cache) Get(key string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.entries[key]
	if !exists {
		c.misses++
		return nil, false
	}

	if time.Since(e.inserted) >= c.ttl {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}

	c.hits++
	return e.value, true
}

// Set stores value under key, unconditionally overwriting any previous
// entry and restarting its TTL.
func (c *Cache) Set(key string, value map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, inserted: time.Now()}
}

// Clear drops every entry. Counters are not reset.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Stats describes cache effectiveness since process start.
type Stats struct {
	Size     int           `json:"size"`
	Hits     uint64        `json:"hits"`
	Misses   uint64        `json:"misses"`
	HitRatio float64       `json:"hit_ratio"`
	TTL      time.Duration `json:"ttl"`
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{
		Size:   len(c.entries),
		Hits:   c.hits,
		Misses: c.misses,
		TTL:    c.ttl,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRatio = float64(c.hits) / float64(total)
	}
	return s
}

// Key derives the cache key for an endpoint and its query parameters.
//
// Parameters are sorted by name so logically identical requests collide
// regardless of map iteration order, and api_key is excluded so keys are
// safe to log.
func Key(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}

	names := make([]string, 0, len(params))
	for name := range params {
		if name == "api_key" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	for i, name := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}
