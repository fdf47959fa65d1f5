package tools

import (
	"advisor/internal/adapters/config"
	"advisor/pkg/logger"
)

// RegisterAllTools registers every external-data tool in the registry.
func RegisterAllTools(registry *Registry, cfg *config.Config) {
	log := logger.Get().With("component", "tool_registration")

	// Market data tools
	marketData := NewMarketData(cfg.MarketData)
	registry.Register("get_stock_price", NewStockPriceTool(marketData))
	registry.Register("get_market_indices", NewMarketIndicesTool(marketData))
	registry.Register("search_stocks", NewSearchStocksTool(marketData))
	registry.Register("get_portfolio_performance", NewPortfolioPerformanceTool(marketData))
	log.Debug("Registered market data tools")

	// Lending rate tools
	fred := NewFREDClient(cfg.Economic.FREDAPIKey)
	rates := NewRatesService(fred)
	registry.Register("get_current_mortgage_rates", NewMortgageRatesTool(rates))
	registry.Register("get_federal_funds_rate", NewFederalFundsRateTool(rates))
	registry.Register("get_prime_rate", NewPrimeRateTool(rates))
	registry.Register("calculate_mortgage_payment", NewMortgagePaymentTool())
	log.Debug("Registered lending rate tools")

	// Economic indicator tools
	economic := NewEconomicService(fred)
	registry.Register("get_inflation_rate", NewInflationRateTool(economic))
	registry.Register("get_unemployment_rate", NewUnemploymentRateTool(economic))
	registry.Register("get_gdp_growth", NewGDPGrowthTool(economic))
	registry.Register("project_retirement_inflation", NewRetirementInflationTool(economic))
	log.Debug("Registered economic indicator tools")

	log.Infow("Tool registration complete", "tools", len(registry.List()))
}
