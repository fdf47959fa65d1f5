package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	cache := NewTTLCacheWithClock(5*time.Minute, clock)

	cache.Set("key", "payload")

	got, ok := cache.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "payload", got)

	// Just inside the freshness window
	now = now.Add(5*time.Minute - time.Second)
	_, ok = cache.Get("key")
	assert.True(t, ok)

	// At the window boundary the entry is stale
	now = now.Add(time.Second)
	_, ok = cache.Get("key")
	assert.False(t, ok)
}

func TestTTLCacheMissingKey(t *testing.T) {
	cache := NewTTLCache(time.Minute)

	_, ok := cache.Get("absent")
	assert.False(t, ok)
}

func TestCacheKeyCanonicalization(t *testing.T) {
	a := CacheKey("get_stock_price", Args{"symbol": "AAPL", "detail": true})
	b := CacheKey("get_stock_price", Args{"detail": true, "symbol": "AAPL"})
	assert.Equal(t, a, b)

	c := CacheKey("get_stock_price", Args{"symbol": "MSFT", "detail": true})
	assert.NotEqual(t, a, c)

	d := CacheKey("search_stocks", Args{"symbol": "AAPL", "detail": true})
	assert.NotEqual(t, a, d)
}

func TestCacheKeyNoArgs(t *testing.T) {
	assert.Equal(t, "get_market_indices", CacheKey("get_market_indices", nil))
	assert.Equal(t, "get_market_indices", CacheKey("get_market_indices", Args{}))
}
