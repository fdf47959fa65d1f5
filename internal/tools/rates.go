package tools

import (
	"context"
	"math"
	"time"

	"advisor/pkg/errors"
	"advisor/pkg/logger"
)

// FRED series identifiers for lending rates.
const (
	seriesMortgage15Year = "MORTGAGE15US"
	seriesMortgage30Year = "MORTGAGE30US"
	seriesFedFunds       = "FEDFUNDS"
	seriesPrimeRate      = "DPRIME"
)

// RatesService exposes lending rate lookups and mortgage math.
type RatesService struct {
	fred *FREDClient
	log  *logger.Logger
}

// NewRatesService creates a rates service backed by the FRED API.
func NewRatesService(fred *FREDClient) *RatesService {
	return &RatesService{
		fred: fred,
		log:  logger.Get().With("component", "rates_service"),
	}
}

// MortgageRates returns the latest published 15-year and 30-year rates.
func (s *RatesService) MortgageRates(ctx context.Context) (map[string]interface{}, error) {
	rates := make(map[string]interface{})

	if rate, _, err := s.fred.LatestValue(ctx, seriesMortgage15Year); err == nil {
		rates["15_year"] = rate
	} else if errors.Is(err, errors.ErrProviderNotConfigured) {
		return nil, err
	} else {
		s.log.Warnw("Failed to fetch 15-year mortgage rate", "error", err)
	}

	if rate, _, err := s.fred.LatestValue(ctx, seriesMortgage30Year); err == nil {
		rates["30_year"] = rate
	} else {
		s.log.Warnw("Failed to fetch 30-year mortgage rate", "error", err)
	}

	if len(rates) == 0 {
		return nil, errors.New("no mortgage rate data available")
	}

	return map[string]interface{}{
		"rates":     rates,
		"timestamp": time.Now().Format(time.RFC3339),
		"source":    "Federal Reserve (FRED)",
	}, nil
}

// FederalFundsRate returns the latest effective federal funds rate.
func (s *RatesService) FederalFundsRate(ctx context.Context) (map[string]interface{}, error) {
	rate, date, err := s.fred.LatestValue(ctx, seriesFedFunds)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"federal_funds_rate": rate,
		"description":        "Federal Funds Effective Rate (%)",
		"date":               date,
		"timestamp":          time.Now().Format(time.RFC3339),
		"source":             "Federal Reserve (FRED)",
	}, nil
}

// PrimeRate returns the latest bank prime loan rate.
func (s *RatesService) PrimeRate(ctx context.Context) (map[string]interface{}, error) {
	rate, date, err := s.fred.LatestValue(ctx, seriesPrimeRate)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"prime_rate":  rate,
		"description": "Bank Prime Loan Rate (%)",
		"date":        date,
		"timestamp":   time.Now().Format(time.RFC3339),
		"source":      "Federal Reserve (FRED)",
	}, nil
}

// MortgagePayment computes the fixed monthly payment for a loan along with
// totals and the first year of the amortization schedule. Pure calculation,
// no network access.
func MortgagePayment(principal, annualRate float64, years int) (map[string]interface{}, error) {
	if principal <= 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "principal must be positive")
	}
	if years <= 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "loan term must be positive")
	}
	if annualRate < 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "annual rate cannot be negative")
	}

	monthlyRate := annualRate / 100 / 12
	numPayments := years * 12

	var monthlyPayment float64
	if monthlyRate == 0 {
		monthlyPayment = principal / float64(numPayments)
	} else {
		factor := math.Pow(1+monthlyRate, float64(numPayments))
		monthlyPayment = principal * monthlyRate * factor / (factor - 1)
	}

	totalPaid := monthlyPayment * float64(numPayments)
	totalInterest := totalPaid - principal

	months := numPayments
	if months > 12 {
		months = 12
	}

	amortization := make([]map[string]interface{}, 0, months)
	balance := principal
	for month := 1; month <= months; month++ {
		interestPayment := balance * monthlyRate
		principalPayment := monthlyPayment - interestPayment
		balance -= principalPayment

		amortization = append(amortization, map[string]interface{}{
			"month":     month,
			"payment":   round2(monthlyPayment),
			"principal": round2(principalPayment),
			"interest":  round2(interestPayment),
			"balance":   round2(math.Max(0, balance)),
		})
	}

	return map[string]interface{}{
		"loan_amount":                 principal,
		"annual_rate":                 annualRate,
		"loan_term_years":             years,
		"monthly_payment":             round2(monthlyPayment),
		"total_paid":                  round2(totalPaid),
		"total_interest":              round2(totalInterest),
		"interest_to_principal_ratio": round2(totalInterest / principal),
		"amortization_schedule_sample": amortization,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewMortgageRatesTool returns a tool that fetches current mortgage rates.
func NewMortgageRatesTool(s *RatesService) Tool {
	return New("get_current_mortgage_rates", describe("get_current_mortgage_rates"), func(ctx context.Context, args Args) (interface{}, error) {
		return s.MortgageRates(ctx)
	})
}

// NewFederalFundsRateTool returns a tool that fetches the federal funds rate.
func NewFederalFundsRateTool(s *RatesService) Tool {
	return New("get_federal_funds_rate", describe("get_federal_funds_rate"), func(ctx context.Context, args Args) (interface{}, error) {
		return s.FederalFundsRate(ctx)
	})
}

// NewPrimeRateTool returns a tool that fetches the prime lending rate.
func NewPrimeRateTool(s *RatesService) Tool {
	return New("get_prime_rate", describe("get_prime_rate"), func(ctx context.Context, args Args) (interface{}, error) {
		return s.PrimeRate(ctx)
	})
}

// NewMortgagePaymentTool returns a tool that computes loan payments locally.
func NewMortgagePaymentTool() Tool {
	return New("calculate_mortgage_payment", describe("calculate_mortgage_payment"), func(ctx context.Context, args Args) (interface{}, error) {
		return MortgagePayment(args.Float("principal"), args.Float("annual_rate"), args.Int("years"))
	})
}
