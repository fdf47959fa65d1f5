package agents

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"advisor/pkg/templates"
)

// Deterministic planning math. Each calculator returns a formatted text block
// that gets interpolated into the agent's prompt, so the LLM grounds its
// narrative on real numbers instead of inventing them.

const (
	lifeExpectancy         = 85
	retirementInflation    = 0.03
	educationInflation     = 0.05
	educationCostPerYear   = 30000
	educationYears         = 4
	collegeStartAge        = 18
	federalEstateExemption = 13610000
	estateTaxRate          = 0.40
	termLifeAnnualRate     = 0.0005
)

func pow(base float64, exp int) decimal.Decimal {
	return decimal.NewFromFloat(base).Pow(decimal.NewFromInt(int64(exp)))
}

func money(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return templates.FormatMoney(v)
}

// RetirementNeeds estimates the fund required to cover inflation-adjusted
// annual expenses from retirement through life expectancy.
func RetirementNeeds(currentAge, retirementAge int, annualExpenses float64) string {
	yearsToRetirement := retirementAge - currentAge
	yearsInRetirement := lifeExpectancy - retirementAge
	if yearsToRetirement < 0 {
		yearsToRetirement = 0
	}
	if yearsInRetirement < 0 {
		yearsInRetirement = 0
	}

	futureExpenses := decimal.NewFromFloat(annualExpenses).Mul(pow(1+retirementInflation, yearsToRetirement))
	totalNeeded := futureExpenses.Mul(decimal.NewFromInt(int64(yearsInRetirement)))

	monthlySavings := decimal.Zero
	if yearsToRetirement > 0 {
		monthlySavings = totalNeeded.Div(decimal.NewFromInt(int64(yearsToRetirement * 12)))
	}

	return fmt.Sprintf(`Retirement Calculation:
- Years until retirement: %d
- Years in retirement: %d
- Future annual expenses (adjusted for inflation): %s
- Total retirement fund needed: %s
- Recommended monthly savings: %s`,
		yearsToRetirement, yearsInRetirement,
		money(futureExpenses), money(totalNeeded), money(monthlySavings))
}

// LifeInsurance recommends coverage using the ten-times-income rule adjusted
// for debts, savings, and dependents.
func LifeInsurance(annualIncome float64, numDependents int, debts, savings float64) string {
	baseCoverage := decimal.NewFromFloat(annualIncome).Mul(decimal.NewFromInt(10)).
		Add(decimal.NewFromFloat(debts)).
		Sub(decimal.NewFromFloat(savings))
	dependentFactor := decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(numDependents)).Mul(decimal.NewFromFloat(0.2)))
	recommended := baseCoverage.Mul(dependentFactor)

	monthlyPremium := recommended.Mul(decimal.NewFromFloat(termLifeAnnualRate)).Div(decimal.NewFromInt(12))

	factor, _ := dependentFactor.Float64()
	return fmt.Sprintf(`Life Insurance Recommendation:
- Base coverage needed: %s
- Adjustment for %d dependent(s): %.1fx
- Recommended coverage: %s
- Estimated monthly premium (term life): %s`,
		money(baseCoverage), numDependents, factor,
		money(recommended), money(monthlyPremium))
}

// EducationFund projects four years of college cost per child, inflated to
// each child's college start date.
func EducationFund(childrenAges []int) string {
	if len(childrenAges) == 0 {
		return "Education Fund Calculation:\n- No children provided, no education funding required"
	}

	totalNeeded := decimal.Zero
	var details []string
	longestHorizon := 1

	for i, age := range childrenAges {
		yearsUntilCollege := collegeStartAge - age
		if yearsUntilCollege < 0 {
			yearsUntilCollege = 0
		}
		if yearsUntilCollege > longestHorizon {
			longestHorizon = yearsUntilCollege
		}

		futureCost := decimal.NewFromInt(educationCostPerYear).Mul(pow(1+educationInflation, yearsUntilCollege))
		childTotal := futureCost.Mul(decimal.NewFromInt(educationYears))
		totalNeeded = totalNeeded.Add(childTotal)

		details = append(details, fmt.Sprintf("Child %d (age %d): %s needed in %d years",
			i+1, age, money(childTotal), yearsUntilCollege))
	}

	monthlySavings := totalNeeded.Div(decimal.NewFromInt(int64(longestHorizon * 12)))

	return fmt.Sprintf(`Education Fund Calculation:
%s
- Total education fund needed: %s
- Recommended monthly savings: %s`,
		strings.Join(details, "\n"), money(totalNeeded), money(monthlySavings))
}

// EstateTax estimates federal estate tax exposure against the 2024 exemption.
func EstateTax(totalAssets float64) string {
	assets := decimal.NewFromFloat(totalAssets)
	exemption := decimal.NewFromInt(federalEstateExemption)

	taxableEstate := assets.Sub(exemption)
	if taxableEstate.IsNegative() {
		taxableEstate = decimal.Zero
	}
	estimatedTax := taxableEstate.Mul(decimal.NewFromFloat(estateTaxRate))

	recommendation := "Below exemption threshold"
	if taxableEstate.IsPositive() {
		recommendation = "Estate planning strategies recommended"
	}

	return fmt.Sprintf(`Estate Tax Estimation:
- Total assets: %s
- Federal exemption: %s
- Taxable estate: %s
- Estimated federal estate tax: %s
- Recommendation: %s`,
		money(assets), money(exemption), money(taxableEstate),
		money(estimatedTax), recommendation)
}

// WealthAllocation recommends a stock/bond split from age and risk tolerance.
// The base allocation is 100 minus age, shifted up 10 points for aggressive
// investors (capped at 90) or down 20 points for conservative ones (floored
// at 20).
func WealthAllocation(totalAssets float64, age int, riskTolerance string) string {
	stockPct := StockAllocationPercent(age, riskTolerance)
	bondPct := 100 - stockPct

	assets := decimal.NewFromFloat(totalAssets)
	stockAmount := assets.Mul(decimal.NewFromInt(int64(stockPct))).Div(decimal.NewFromInt(100))
	bondAmount := assets.Mul(decimal.NewFromInt(int64(bondPct))).Div(decimal.NewFromInt(100))

	return fmt.Sprintf(`Asset Allocation Recommendation:
- Risk Profile: %s
- Stocks/Equity: %d%% (%s)
- Bonds/Fixed Income: %d%% (%s)
- Rebalance: Quarterly or when allocation drifts 5%%+`,
		templates.Titlecase(strings.ToLower(riskTolerance)),
		stockPct, money(stockAmount), bondPct, money(bondAmount))
}

// StockAllocationPercent exposes the allocation split for chart rendering.
func StockAllocationPercent(age int, riskTolerance string) int {
	stockPct := 100 - age
	switch strings.ToLower(riskTolerance) {
	case "aggressive":
		stockPct += 10
		if stockPct > 90 {
			stockPct = 90
		}
	case "conservative":
		stockPct -= 20
		if stockPct < 20 {
			stockPct = 20
		}
	}
	if stockPct < 0 {
		stockPct = 0
	}
	if stockPct > 100 {
		stockPct = 100
	}
	return stockPct
}
