package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor/internal/adapters/config"
)

func testMarketConfig() config.MarketDataConfig {
	return config.MarketDataConfig{
		APIKey:   "test-key",
		Provider: "alpha_vantage",
	}
}

func TestStockPriceAlphaVantage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Global Quote":{"05. price":"189.4300","09. change":"2.1400","10. change percent":"1.1400%","06. volume":"48087681"}}`))
	}))
	defer server.Close()

	md := NewMarketData(testMarketConfig())
	md.AlphaVantageURL = server.URL

	quote, err := md.StockPrice(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote["symbol"])
	assert.InDelta(t, 189.43, quote["price"].(float64), 0.001)
	assert.InDelta(t, 2.14, quote["change"].(float64), 0.001)
	assert.InDelta(t, 1.14, quote["change_percent"].(float64), 0.001)
	assert.Equal(t, int64(48087681), quote["volume"])
}

func TestStockPriceMissingKey(t *testing.T) {
	md := NewMarketData(config.MarketDataConfig{Provider: "alpha_vantage"})

	_, err := md.StockPrice(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestStockPriceEmptyQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Global Quote":{}}`))
	}))
	defer server.Close()

	md := NewMarketData(testMarketConfig())
	md.AlphaVantageURL = server.URL

	_, err := md.StockPrice(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
}

func TestMarketIndices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Global Quote":{"05. price":"500.00","09. change":"5.00","10. change percent":"1.00%","06. volume":"100"}}`))
	}))
	defer server.Close()

	md := NewMarketData(testMarketConfig())
	md.AlphaVantageURL = server.URL

	result, err := md.MarketIndices(context.Background())
	require.NoError(t, err)

	indices, ok := result["indices"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, indices, "S&P 500")
	assert.Contains(t, indices, "Nasdaq-100")
	assert.Contains(t, indices, "Dow Jones")
}

func TestSearchStocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SYMBOL_SEARCH", r.URL.Query().Get("function"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bestMatches":[{"1. symbol":"AAPL","2. name":"Apple Inc"},{"1. symbol":"APLE","2. name":"Apple Hospitality"}]}`))
	}))
	defer server.Close()

	md := NewMarketData(testMarketConfig())
	md.AlphaVantageURL = server.URL

	result, err := md.SearchStocks(context.Background(), "apple")
	require.NoError(t, err)
	assert.Equal(t, 2, result["count"])
}

func TestSearchStocksWrongProvider(t *testing.T) {
	md := NewMarketData(config.MarketDataConfig{APIKey: "test-key", Provider: "iex_cloud"})

	_, err := md.SearchStocks(context.Background(), "apple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iex_cloud")
}

func TestPortfolioPerformance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Global Quote":{"05. price":"200.00","09. change":"0","10. change percent":"0%","06. volume":"1"}}`))
	}))
	defer server.Close()

	md := NewMarketData(testMarketConfig())
	md.AlphaVantageURL = server.URL

	holdings := []Holding{
		{Symbol: "AAPL", Quantity: 10, PurchasePrice: 150},
	}

	result, err := md.PortfolioPerformance(context.Background(), holdings)
	require.NoError(t, err)

	assert.InDelta(t, 1500.0, result["total_cost_basis"].(float64), 0.001)
	assert.InDelta(t, 2000.0, result["total_current_value"].(float64), 0.001)
	assert.InDelta(t, 500.0, result["total_gain_loss"].(float64), 0.001)
	assert.InDelta(t, 33.333, result["total_gain_loss_percent"].(float64), 0.01)
}

func TestPortfolioPerformanceFallsBackToPurchasePrice(t *testing.T) {
	// No API key, so every quote fails and holdings are valued at cost.
	md := NewMarketData(config.MarketDataConfig{Provider: "alpha_vantage"})

	holdings := []Holding{
		{Symbol: "AAPL", Quantity: 10, PurchasePrice: 150},
		{Symbol: "MSFT", Quantity: 5, PurchasePrice: 300},
	}

	result, err := md.PortfolioPerformance(context.Background(), holdings)
	require.NoError(t, err)
	assert.InDelta(t, 3000.0, result["total_cost_basis"].(float64), 0.001)
	assert.InDelta(t, 3000.0, result["total_current_value"].(float64), 0.001)
	assert.InDelta(t, 0.0, result["total_gain_loss"].(float64), 0.001)
}
