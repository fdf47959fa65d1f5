package tools

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Cache defines the lookup interface used by the tool client. Entries are
// invalidated purely by age, checked lazily on access.
type Cache interface {
	// Get returns a cached payload if present and younger than the TTL.
	Get(key string) (interface{}, bool)

	// Set stores a payload under the key with the current timestamp.
	Set(key string, payload interface{})
}

// cacheEntry holds a payload and the time it was stored.
type cacheEntry struct {
	payload  interface{}
	storedAt time.Time
}

// TTLCache is an unbounded in-process cache with a fixed freshness window.
// There is no background sweeper; stale entries are overwritten on refresh.
type TTLCache struct {
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
}

// NewTTLCache creates a cache with the given freshness window.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return NewTTLCacheWithClock(ttl, time.Now)
}

// NewTTLCacheWithClock creates a cache with an injected clock for tests.
func NewTTLCacheWithClock(ttl time.Duration, now func() time.Time) *TTLCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &TTLCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns a cached payload if present and fresh.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.payload, true
}

// Set stores a payload under the key.
func (c *TTLCache) Set(key string, payload interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{payload: payload, storedAt: c.now()}
}

// CacheKey builds a canonical cache key from a tool name and its arguments.
// Argument keys are sorted so equivalent calls map to the same entry.
func CacheKey(name string, args Args) string {
	if len(args) == 0 {
		return name
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		v, err := json.Marshal(args[k])
		if err != nil {
			v = []byte(fmt.Sprintf("%v", args[k]))
		}
		fmt.Fprintf(&b, "|%s=%s", k, v)
	}
	return b.String()
}
