package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"advisor/internal/adapters/config"
	"advisor/pkg/errors"
	"advisor/pkg/logger"
)

const (
	defaultAlphaVantageURL = "https://www.alphavantage.co/query"
	defaultIEXCloudURL     = "https://cloud.iexapis.com/stable"

	providerAlphaVantage = "alpha_vantage"
	providerIEXCloud     = "iex_cloud"
)

// MarketData fetches live quotes from Alpha Vantage or IEX Cloud.
type MarketData struct {
	// Base URLs may be overridden in tests.
	AlphaVantageURL string
	IEXCloudURL     string

	apiKey   string
	provider string
	httpc    *http.Client
	log      *logger.Logger
}

// NewMarketData creates a market data service for the configured provider.
func NewMarketData(cfg config.MarketDataConfig) *MarketData {
	provider := cfg.Provider
	if provider == "" {
		provider = providerAlphaVantage
	}

	return &MarketData{
		AlphaVantageURL: defaultAlphaVantageURL,
		IEXCloudURL:     defaultIEXCloudURL,
		apiKey:          cfg.APIKey,
		provider:        provider,
		httpc:           &http.Client{Timeout: 10 * time.Second},
		log:             logger.Get().With("component", "market_data"),
	}
}

// StockPrice returns the current quote for a ticker symbol.
func (m *MarketData) StockPrice(ctx context.Context, symbol string) (map[string]interface{}, error) {
	if symbol == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "symbol is required")
	}
	if m.apiKey == "" {
		return nil, errors.Wrap(errors.ErrProviderNotConfigured, "market data API key is not configured")
	}

	switch m.provider {
	case providerIEXCloud:
		return m.stockPriceIEX(ctx, symbol)
	default:
		return m.stockPriceAlphaVantage(ctx, symbol)
	}
}

func (m *MarketData) stockPriceAlphaVantage(ctx context.Context, symbol string) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", m.apiKey)

	var payload struct {
		GlobalQuote map[string]string `json:"Global Quote"`
	}
	if err := m.getJSON(ctx, m.AlphaVantageURL+"?"+q.Encode(), &payload); err != nil {
		return nil, err
	}

	quote := payload.GlobalQuote
	if len(quote) == 0 {
		return nil, errors.Newf("no quote data for %s: symbol not found or API limit reached", symbol)
	}

	result := map[string]interface{}{
		"symbol":         symbol,
		"price":          parseQuoteNumber(quote["05. price"]),
		"change":         parseQuoteNumber(quote["09. change"]),
		"change_percent": parseQuoteNumber(strings.TrimSuffix(quote["10. change percent"], "%")),
		"volume":         int64(parseQuoteNumber(quote["06. volume"])),
		"timestamp":      time.Now().Format(time.RFC3339),
	}

	m.log.Infow("Fetched stock quote", "symbol", symbol, "price", result["price"])
	return result, nil
}

func (m *MarketData) stockPriceIEX(ctx context.Context, symbol string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/stock/%s/quote?token=%s", m.IEXCloudURL, url.PathEscape(symbol), url.QueryEscape(m.apiKey))

	var payload struct {
		LatestPrice   float64 `json:"latestPrice"`
		Change        float64 `json:"change"`
		ChangePercent float64 `json:"changePercent"`
		LatestVolume  int64   `json:"latestVolume"`
		MarketCap     int64   `json:"marketCap"`
	}
	if err := m.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	if payload.LatestPrice == 0 {
		return nil, errors.Newf("no quote data for %s", symbol)
	}

	return map[string]interface{}{
		"symbol":         symbol,
		"price":          payload.LatestPrice,
		"change":         payload.Change,
		"change_percent": payload.ChangePercent * 100,
		"volume":         payload.LatestVolume,
		"market_cap":     payload.MarketCap,
		"timestamp":      time.Now().Format(time.RFC3339),
	}, nil
}

// MarketIndices returns quotes for ETF proxies of the major US indices.
func (m *MarketData) MarketIndices(ctx context.Context) (map[string]interface{}, error) {
	proxies := []struct {
		symbol string
		name   string
	}{
		{"SPY", "S&P 500"},
		{"QQQ", "Nasdaq-100"},
		{"DIA", "Dow Jones"},
	}

	indices := make(map[string]interface{})
	for _, proxy := range proxies {
		quote, err := m.StockPrice(ctx, proxy.symbol)
		if err != nil {
			m.log.Warnw("Failed to fetch index proxy", "symbol", proxy.symbol, "error", err)
			continue
		}
		indices[proxy.name] = map[string]interface{}{
			"symbol":         proxy.symbol,
			"price":          quote["price"],
			"change":         quote["change"],
			"change_percent": quote["change_percent"],
		}
	}

	if len(indices) == 0 {
		return nil, errors.New("no index data available")
	}

	return map[string]interface{}{
		"indices":   indices,
		"timestamp": time.Now().Format(time.RFC3339),
	}, nil
}

// SearchStocks looks up ticker symbols by company name or keywords.
// Only available with the Alpha Vantage provider.
func (m *MarketData) SearchStocks(ctx context.Context, keywords string) (map[string]interface{}, error) {
	if keywords == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "keywords are required")
	}
	if m.apiKey == "" {
		return nil, errors.Wrap(errors.ErrProviderNotConfigured, "market data API key is not configured")
	}
	if m.provider != providerAlphaVantage {
		return nil, errors.Newf("stock search is not available with provider %s", m.provider)
	}

	q := url.Values{}
	q.Set("function", "SYMBOL_SEARCH")
	q.Set("keywords", keywords)
	q.Set("apikey", m.apiKey)

	var payload struct {
		BestMatches []map[string]string `json:"bestMatches"`
	}
	if err := m.getJSON(ctx, m.AlphaVantageURL+"?"+q.Encode(), &payload); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"results": payload.BestMatches,
		"count":   len(payload.BestMatches),
	}, nil
}

// Holding is a single position in a portfolio performance request.
type Holding struct {
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
}

// PortfolioPerformance prices each holding at current market value and
// aggregates gains and losses. Symbols without a live quote fall back to
// their purchase price.
func (m *MarketData) PortfolioPerformance(ctx context.Context, holdings []Holding) (map[string]interface{}, error) {
	if len(holdings) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "holdings are required")
	}

	var totalCost, totalValue float64
	positions := make([]map[string]interface{}, 0, len(holdings))

	for _, h := range holdings {
		cost := h.Quantity * h.PurchasePrice
		totalCost += cost

		currentPrice := h.PurchasePrice
		if quote, err := m.StockPrice(ctx, h.Symbol); err == nil {
			if price, ok := quote["price"].(float64); ok && price > 0 {
				currentPrice = price
			}
		} else {
			m.log.Warnw("Falling back to purchase price", "symbol", h.Symbol, "error", err)
		}

		currentValue := h.Quantity * currentPrice
		totalValue += currentValue

		var gainLossPct float64
		if cost > 0 {
			gainLossPct = (currentValue - cost) / cost * 100
		}

		positions = append(positions, map[string]interface{}{
			"symbol":            h.Symbol,
			"quantity":          h.Quantity,
			"purchase_price":    h.PurchasePrice,
			"current_price":     currentPrice,
			"cost_basis":        cost,
			"current_value":     currentValue,
			"gain_loss":         currentValue - cost,
			"gain_loss_percent": gainLossPct,
		})
	}

	var totalGainLossPct float64
	if totalCost > 0 {
		totalGainLossPct = (totalValue - totalCost) / totalCost * 100
	}

	return map[string]interface{}{
		"total_cost_basis":        totalCost,
		"total_current_value":     totalValue,
		"total_gain_loss":         totalValue - totalCost,
		"total_gain_loss_percent": totalGainLossPct,
		"positions":               positions,
		"timestamp":               time.Now().Format(time.RFC3339),
	}, nil
}

func (m *MarketData) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "build market data request")
	}

	resp, err := m.httpc.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrExternal, "fetch market data: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(errors.ErrExternal, "market data provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode market data response")
	}
	return nil
}

func parseQuoteNumber(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// NewStockPriceTool returns a tool that fetches the latest quote for a symbol.
func NewStockPriceTool(md *MarketData) Tool {
	return New("get_stock_price", describe("get_stock_price"), func(ctx context.Context, args Args) (interface{}, error) {
		return md.StockPrice(ctx, strings.ToUpper(args.String("symbol")))
	})
}

// NewMarketIndicesTool returns a tool that fetches major US index quotes.
func NewMarketIndicesTool(md *MarketData) Tool {
	return New("get_market_indices", describe("get_market_indices"), func(ctx context.Context, args Args) (interface{}, error) {
		return md.MarketIndices(ctx)
	})
}

// NewSearchStocksTool returns a tool that searches tickers by keywords.
func NewSearchStocksTool(md *MarketData) Tool {
	return New("search_stocks", describe("search_stocks"), func(ctx context.Context, args Args) (interface{}, error) {
		return md.SearchStocks(ctx, args.String("keywords"))
	})
}

// NewPortfolioPerformanceTool returns a tool that values a set of holdings.
func NewPortfolioPerformanceTool(md *MarketData) Tool {
	return New("get_portfolio_performance", describe("get_portfolio_performance"), func(ctx context.Context, args Args) (interface{}, error) {
		raw, ok := args["holdings"].([]interface{})
		if !ok || len(raw) == 0 {
			return nil, errors.Wrap(errors.ErrInvalidInput, "holdings are required")
		}

		holdings := make([]Holding, 0, len(raw))
		for _, item := range raw {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			h := Holding{}
			h.Symbol, _ = entry["symbol"].(string)
			h.Quantity = Args(entry).Float("quantity")
			h.PurchasePrice = Args(entry).Float("purchase_price")
			holdings = append(holdings, h)
		}

		return md.PortfolioPerformance(ctx, holdings)
	})
}
