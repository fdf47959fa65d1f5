package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fredObservationsJSON(values ...string) string {
	out := `{"observations":[`
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += `{"date":"2025-06-01","value":"` + v + `"}`
	}
	return out + `]}`
}

func TestCallToolUnknownTool(t *testing.T) {
	client := NewClient(NewRegistry(), nil)

	result := client.CallTool(context.Background(), "does_not_exist", nil)

	assert.False(t, result.Success)
	assert.Equal(t, "does_not_exist", result.Tool)
	assert.Equal(t, "Unknown tool: does_not_exist", result.Result)
}

func TestCallToolMissingAPIKey(t *testing.T) {
	registry := NewRegistry()
	fred := NewFREDClient("")
	registry.Register("get_federal_funds_rate", NewFederalFundsRateTool(NewRatesService(fred)))

	client := NewClient(registry, nil)
	result := client.CallTool(context.Background(), "get_federal_funds_rate", nil)

	assert.False(t, result.Success)
	message, ok := result.Result.(string)
	require.True(t, ok)
	assert.NotEmpty(t, message)
	assert.Contains(t, message, "FRED API key")
}

func TestCallToolCachesWithinTTL(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fredObservationsJSON("5.33")))
	}))
	defer server.Close()

	fred := NewFREDClient("test-key")
	fred.BaseURL = server.URL

	registry := NewRegistry()
	registry.Register("get_federal_funds_rate", NewFederalFundsRateTool(NewRatesService(fred)))

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := NewTTLCacheWithClock(5*time.Minute, func() time.Time { return now })
	client := NewClient(registry, cache)

	first := client.CallTool(context.Background(), "get_federal_funds_rate", nil)
	require.True(t, first.Success)
	assert.Equal(t, int64(1), calls.Load())

	// Second call inside the window is served from cache
	now = now.Add(4 * time.Minute)
	second := client.CallTool(context.Background(), "get_federal_funds_rate", nil)
	require.True(t, second.Success)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, first.Result, second.Result)

	// After the window a fresh network call is made
	now = now.Add(2 * time.Minute)
	third := client.CallTool(context.Background(), "get_federal_funds_rate", nil)
	require.True(t, third.Success)
	assert.Equal(t, int64(2), calls.Load())
}

func TestCallToolDistinctArgsNotShared(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Global Quote":{"05. price":"150.00","09. change":"1.50","10. change percent":"1.01%","06. volume":"1000"}}`))
	}))
	defer server.Close()

	md := NewMarketData(testMarketConfig())
	md.AlphaVantageURL = server.URL

	registry := NewRegistry()
	registry.Register("get_stock_price", NewStockPriceTool(md))

	cache := NewTTLCache(5 * time.Minute)
	client := NewClient(registry, cache)

	client.CallTool(context.Background(), "get_stock_price", Args{"symbol": "AAPL"})
	client.CallTool(context.Background(), "get_stock_price", Args{"symbol": "MSFT"})
	assert.Equal(t, int64(2), calls.Load())

	client.CallTool(context.Background(), "get_stock_price", Args{"symbol": "AAPL"})
	assert.Equal(t, int64(2), calls.Load())
}

func TestCallToolUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fred := NewFREDClient("test-key")
	fred.BaseURL = server.URL

	registry := NewRegistry()
	registry.Register("get_prime_rate", NewPrimeRateTool(NewRatesService(fred)))

	client := NewClient(registry, NewTTLCache(5*time.Minute))
	result := client.CallTool(context.Background(), "get_prime_rate", nil)

	assert.False(t, result.Success)
	message, ok := result.Result.(string)
	require.True(t, ok)
	assert.NotEmpty(t, message)
}

func TestCallToolFailuresNotCached(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fredObservationsJSON("8.50")))
	}))
	defer server.Close()

	fred := NewFREDClient("test-key")
	fred.BaseURL = server.URL

	registry := NewRegistry()
	registry.Register("get_prime_rate", NewPrimeRateTool(NewRatesService(fred)))

	client := NewClient(registry, NewTTLCache(5*time.Minute))

	first := client.CallTool(context.Background(), "get_prime_rate", nil)
	assert.False(t, first.Success)

	second := client.CallTool(context.Background(), "get_prime_rate", nil)
	assert.True(t, second.Success)
	assert.Equal(t, int64(2), calls.Load())
}
