package tools

// Definition describes a tool's metadata for registration and documentation.
type Definition struct {
	Name        string
	Description string
	Category    string
}

// toolDefinitions enumerates the external-data tools exposed to agents.
var toolDefinitions = []Definition{
	{Name: "get_stock_price", Description: "Get current stock price and market data for a ticker symbol", Category: "market"},
	{Name: "get_market_indices", Description: "Get major market indices (S&P 500, Nasdaq, Dow Jones) data", Category: "market"},
	{Name: "search_stocks", Description: "Search for stocks by company name, symbol, or sector", Category: "market"},
	{Name: "get_portfolio_performance", Description: "Calculate portfolio performance based on current market prices", Category: "market"},

	{Name: "get_current_mortgage_rates", Description: "Get current mortgage rates for 15-year and 30-year loans", Category: "rates"},
	{Name: "get_federal_funds_rate", Description: "Get current Federal Reserve Funds Rate", Category: "rates"},
	{Name: "get_prime_rate", Description: "Get current Bank Prime Lending Rate", Category: "rates"},
	{Name: "calculate_mortgage_payment", Description: "Calculate monthly mortgage payment and amortization schedule", Category: "rates"},

	{Name: "get_inflation_rate", Description: "Get current inflation rate based on Consumer Price Index", Category: "economic"},
	{Name: "get_unemployment_rate", Description: "Get current unemployment rate", Category: "economic"},
	{Name: "get_gdp_growth", Description: "Get current GDP growth data", Category: "economic"},
	{Name: "project_retirement_inflation", Description: "Project retirement expenses accounting for inflation", Category: "economic"},
}

// Definitions returns metadata for every known tool.
func Definitions() []Definition {
	out := make([]Definition, len(toolDefinitions))
	copy(out, toolDefinitions)
	return out
}

// describe returns the catalog description for a tool name.
func describe(name string) string {
	for _, d := range toolDefinitions {
		if d.Name == name {
			return d.Description
		}
	}
	return ""
}
