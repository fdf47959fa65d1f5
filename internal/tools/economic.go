package tools

import (
	"context"

	"advisor/pkg/errors"
	"advisor/pkg/logger"
)

// FRED series identifiers for macroeconomic indicators.
const (
	seriesCPI          = "CPIAUCSL"
	seriesUnemployment = "UNRATE"
	seriesRealGDP      = "A191RA1Q225SBEA"
)

// Historical average used when live inflation data is unavailable.
const fallbackInflationRate = 3.0

// EconomicService exposes macroeconomic indicator lookups and inflation
// projections.
type EconomicService struct {
	fred *FREDClient
	log  *logger.Logger
}

// NewEconomicService creates an economic data service backed by the FRED API.
func NewEconomicService(fred *FREDClient) *EconomicService {
	return &EconomicService{
		fred: fred,
		log:  logger.Get().With("component", "economic_service"),
	}
}

// InflationRate computes year-over-year CPI inflation from the last thirteen
// monthly observations.
func (s *EconomicService) InflationRate(ctx context.Context) (map[string]interface{}, error) {
	observations, err := s.fred.Observations(ctx, seriesCPI, 13)
	if err != nil {
		return nil, err
	}
	if len(observations) < 13 {
		return nil, errors.Newf("insufficient CPI data: got %d observations, need 13", len(observations))
	}

	current, err := observations[0].Float()
	if err != nil {
		return nil, errors.Wrap(err, "parse current CPI")
	}
	previousYear, err := observations[12].Float()
	if err != nil {
		return nil, errors.Wrap(err, "parse year-ago CPI")
	}
	if previousYear == 0 {
		return nil, errors.New("year-ago CPI is zero")
	}

	yoy := (current - previousYear) / previousYear * 100

	monthAgo, _ := observations[1].Float()

	s.log.Infow("Computed inflation rate", "yoy", yoy, "date", observations[0].Date)
	return map[string]interface{}{
		"inflation_rate_yoy": round2(yoy),
		"current_cpi":        round2(current),
		"cpi_month_ago":      round2(monthAgo),
		"cpi_year_ago":       round2(previousYear),
		"date":               observations[0].Date,
		"unit":               "Percentage (%)",
		"source":             "Federal Reserve (FRED)",
		"description":        "Consumer Price Index year-over-year change",
	}, nil
}

// UnemploymentRate returns the latest civilian unemployment rate with the
// month-over-month change.
func (s *EconomicService) UnemploymentRate(ctx context.Context) (map[string]interface{}, error) {
	observations, err := s.fred.Observations(ctx, seriesUnemployment, 2)
	if err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, errors.New("no unemployment data available")
	}

	current, err := observations[0].Float()
	if err != nil {
		return nil, errors.Wrap(err, "parse unemployment rate")
	}

	previous := current
	if len(observations) > 1 {
		if v, err := observations[1].Float(); err == nil {
			previous = v
		}
	}

	return map[string]interface{}{
		"unemployment_rate": round2(current),
		"previous_rate":     round2(previous),
		"rate_change":       round2(current - previous),
		"date":              observations[0].Date,
		"unit":              "Percentage (%)",
		"source":            "Federal Reserve (FRED)",
		"description":       "Civilian Unemployment Rate",
	}, nil
}

// GDPGrowth returns the latest quarterly real GDP reading.
func (s *EconomicService) GDPGrowth(ctx context.Context) (map[string]interface{}, error) {
	observations, err := s.fred.Observations(ctx, seriesRealGDP, 2)
	if err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, errors.New("no GDP data available")
	}

	current, err := observations[0].Float()
	if err != nil {
		return nil, errors.Wrap(err, "parse GDP value")
	}

	result := map[string]interface{}{
		"gdp":         current,
		"date":        observations[0].Date,
		"unit":        "Billions of Dollars (Real)",
		"source":      "Federal Reserve (FRED)",
		"description": "Real Gross Domestic Product, Quarterly",
	}
	if len(observations) > 1 {
		if previous, err := observations[1].Float(); err == nil {
			result["previous_gdp"] = previous
		}
	}

	return result, nil
}

// ProjectRetirementInflation compounds current annual expenses forward to
// retirement. When no rate is supplied it uses the live year-over-year CPI
// reading, falling back to the 3 percent historical average.
func (s *EconomicService) ProjectRetirementInflation(ctx context.Context, currentExpense float64, yearsToRetirement int, inflationRate float64) (map[string]interface{}, error) {
	if currentExpense <= 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "current annual expense must be positive")
	}
	if yearsToRetirement < 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "years to retirement cannot be negative")
	}

	rate := inflationRate
	if rate == 0 {
		rate = fallbackInflationRate
		if data, err := s.InflationRate(ctx); err == nil {
			if yoy, ok := data["inflation_rate_yoy"].(float64); ok {
				rate = yoy
			}
		} else {
			s.log.Warnw("Using fallback inflation rate", "error", err)
		}
	}
	fraction := rate / 100

	projections := make([]map[string]interface{}, 0, yearsToRetirement+1)
	futureExpense := currentExpense
	for year := 0; year <= yearsToRetirement; year++ {
		projections = append(projections, map[string]interface{}{
			"year":                  year,
			"annual_expense":        round2(futureExpense),
			"increase_from_current": round2(futureExpense - currentExpense),
		})
		futureExpense *= 1 + fraction
	}

	return map[string]interface{}{
		"current_annual_expense":                  currentExpense,
		"years_to_retirement":                     yearsToRetirement,
		"inflation_rate_applied":                  round2(rate),
		"projected_annual_expense_at_retirement":  round2(futureExpense),
		"total_increase":                          round2(futureExpense - currentExpense),
		"percent_increase":                        round2((futureExpense - currentExpense) / currentExpense * 100),
		"projections":                             projections,
	}, nil
}

// NewInflationRateTool returns a tool that fetches year-over-year inflation.
func NewInflationRateTool(s *EconomicService) Tool {
	return New("get_inflation_rate", describe("get_inflation_rate"), func(ctx context.Context, args Args) (interface{}, error) {
		return s.InflationRate(ctx)
	})
}

// NewUnemploymentRateTool returns a tool that fetches the unemployment rate.
func NewUnemploymentRateTool(s *EconomicService) Tool {
	return New("get_unemployment_rate", describe("get_unemployment_rate"), func(ctx context.Context, args Args) (interface{}, error) {
		return s.UnemploymentRate(ctx)
	})
}

// NewGDPGrowthTool returns a tool that fetches quarterly GDP readings.
func NewGDPGrowthTool(s *EconomicService) Tool {
	return New("get_gdp_growth", describe("get_gdp_growth"), func(ctx context.Context, args Args) (interface{}, error) {
		return s.GDPGrowth(ctx)
	})
}

// NewRetirementInflationTool returns a tool that projects future expenses.
func NewRetirementInflationTool(s *EconomicService) Tool {
	return New("project_retirement_inflation", describe("project_retirement_inflation"), func(ctx context.Context, args Args) (interface{}, error) {
		return s.ProjectRetirementInflation(ctx, args.Float("current_annual_expense"), args.Int("years_to_retirement"), args.Float("inflation_rate"))
	})
}
