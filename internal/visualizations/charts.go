package visualizations

import (
	"fmt"
	"math"

	"advisor/internal/agents"
	"advisor/internal/domain/profile"
	"advisor/pkg/templates"
)

// Projection assumptions shared across charts.
const (
	growthRate         = 0.07
	withdrawalRate     = 0.04
	defaultSavingsRate = 0.15
	lifeExpectancy     = 85

	educationCostPerYear = 30000
	educationInflation   = 0.05
	collegeStartAge      = 18
)

// NetWorthProjection charts assets, liabilities, and net worth from the
// user's current age through thirty years past retirement.
func NetWorthProjection(p profile.UserProfile) ChartSpec {
	retirementAge := p.EffectiveRetirementAge()

	var ages []any
	var assets, liabilities, netWorth []float64

	asset := p.Savings
	debt := p.Debts
	annualSavings := p.AnnualIncome * defaultSavingsRate
	debtPayment := p.Debts * 0.1

	for age := p.Age; age < retirementAge+30; age++ {
		if age < retirementAge {
			asset = asset*(1+growthRate) + annualSavings
			debt = math.Max(0, debt-debtPayment)
		} else {
			asset = asset*(1+growthRate) - p.AnnualIncome*0.8*withdrawalRate
			debt = 0
		}

		ages = append(ages, age)
		assets = append(assets, asset)
		liabilities = append(liabilities, debt)
		netWorth = append(netWorth, asset-debt)
	}

	shapes, annotations := verticalAgeLine(retirementAge, "Retirement")

	return ChartSpec{
		Data: []Trace{
			{Type: "scatter", Name: "Assets", X: ages, Y: series(assets), Fill: "tonexty", Line: &Line{Color: "green", Width: 2}},
			{Type: "scatter", Name: "Liabilities", X: ages, Y: series(liabilities), Fill: "tozeroy", Line: &Line{Color: "red", Width: 2}},
			{Type: "scatter", Name: "Net Worth", X: ages, Y: series(netWorth), Line: &Line{Color: "blue", Width: 3, Dash: "dash"}},
		},
		Layout: Layout{
			Title:       "Net Worth Projection Over Time",
			XAxis:       &Axis{Title: "Age"},
			YAxis:       &Axis{Title: "Amount ($)", TickFormat: "$,.0f"},
			HoverMode:   "x unified",
			Template:    "plotly_white",
			Height:      500,
			Shapes:      shapes,
			Annotations: annotations,
		},
	}
}

// RetirementProjection charts portfolio value through age 85 under four
// contribution scenarios, switching to a 4% drawdown after retirement.
func RetirementProjection(p profile.UserProfile) ChartSpec {
	retirementAge := p.EffectiveRetirementAge()

	var ages []any
	var noContrib, conservative, moderate, aggressive []float64

	appendScenario := func(s []float64, contribution float64, years int, age int) []float64 {
		if age < retirementAge {
			compounded := p.Savings * math.Pow(1+growthRate, float64(years))
			fvContrib := contribution * ((math.Pow(1+growthRate, float64(years)) - 1) / growthRate)
			return append(s, compounded+fvContrib)
		}
		prev := p.Savings
		if len(s) > 0 {
			prev = s[len(s)-1]
		}
		return append(s, math.Max(0, prev*(1+growthRate-withdrawalRate)))
	}

	for years, age := 0, p.Age; age <= lifeExpectancy; years, age = years+1, age+1 {
		ages = append(ages, age)
		noContrib = append(noContrib, p.Savings*math.Pow(1+growthRate, float64(years)))
		conservative = appendScenario(conservative, p.AnnualIncome*0.05, years, age)
		moderate = appendScenario(moderate, p.AnnualIncome*0.10, years, age)
		aggressive = appendScenario(aggressive, p.AnnualIncome*0.15, years, age)
	}

	shapes, annotations := verticalAgeLine(retirementAge, "Retirement Age")

	return ChartSpec{
		Data: []Trace{
			{Type: "scatter", Name: "No Additional Savings", X: ages, Y: series(noContrib), Line: &Line{Color: "red", Width: 2, Dash: "dash"}},
			{Type: "scatter", Name: "Conservative (5% savings)", X: ages, Y: series(conservative), Line: &Line{Color: "orange", Width: 2}},
			{Type: "scatter", Name: "Moderate (10% savings)", X: ages, Y: series(moderate), Line: &Line{Color: "blue", Width: 3}},
			{Type: "scatter", Name: "Aggressive (15% savings)", X: ages, Y: series(aggressive), Line: &Line{Color: "green", Width: 2}},
		},
		Layout: Layout{
			Title:       "Retirement Savings Projection",
			XAxis:       &Axis{Title: "Age"},
			YAxis:       &Axis{Title: "Portfolio Value ($)", TickFormat: "$,.0f"},
			HoverMode:   "x unified",
			Template:    "plotly_white",
			Height:      500,
			Shapes:      shapes,
			Annotations: annotations,
		},
	}
}

// AssetAllocationPie breaks the recommended stock/bond split into asset
// classes: stocks split 60/30/10 across US, international, and emerging
// markets; the remainder split 70/30 across bonds and cash.
func AssetAllocationPie(p profile.UserProfile) ChartSpec {
	stockPct := float64(agents.StockAllocationPercent(p.Age, p.EffectiveRiskTolerance()))
	bondPct := 100 - stockPct
	totalAssets := p.EffectiveTotalAssets()

	labels := []string{"US Stocks", "International Stocks", "Emerging Markets", "Bonds", "Cash/Money Market"}
	percents := []float64{stockPct * 0.6, stockPct * 0.3, stockPct * 0.1, bondPct * 0.7, bondPct * 0.3}

	values := make([]float64, len(percents))
	for i, pct := range percents {
		values[i] = totalAssets * pct / 100
	}

	return ChartSpec{
		Data: []Trace{{
			Type:   "pie",
			Labels: labels,
			Values: values,
			Hole:   0.3,
			Marker: &Marker{Colors: []string{"#2E86AB", "#A23B72", "#F18F01", "#06A77D", "#D4AF37"}},
		}},
		Layout: Layout{
			Title:  fmt.Sprintf("Recommended Asset Allocation (%s Profile)", templates.Titlecase(p.EffectiveRiskTolerance())),
			Height: 500,
			Annotations: []Annotation{{
				Text: templates.FormatMoney(totalAssets),
				X:    0.5, Y: 0.5,
				FontSize:  20,
				ShowArrow: false,
			}},
		},
	}
}

// InsuranceCoverage compares current versus recommended coverage across
// four insurance types. Current coverage is an underinsurance assumption,
// not user data.
func InsuranceCoverage(p profile.UserProfile) ChartSpec {
	baseCoverage := p.AnnualIncome*10 + p.Debts - p.Savings
	recommended := baseCoverage * (1 + float64(p.NumDependents)*0.2)

	types := []any{"Life Insurance", "Disability Insurance", "Critical Illness", "Long-term Care"}
	recommendedAmounts := []float64{recommended, p.AnnualIncome * 5, p.AnnualIncome * 3, 300000}
	currentAmounts := []float64{recommended * 0.4, p.AnnualIncome * 2, 0, 0}

	return ChartSpec{
		Data: []Trace{
			{Type: "bar", Name: "Current Coverage", X: types, Y: series(currentAmounts), Marker: &Marker{Color: "lightcoral"}},
			{Type: "bar", Name: "Recommended Coverage", X: types, Y: series(recommendedAmounts), Marker: &Marker{Color: "lightseagreen"}},
		},
		Layout: Layout{
			Title:    "Insurance Coverage Analysis",
			XAxis:    &Axis{Title: "Insurance Type"},
			YAxis:    &Axis{Title: "Coverage Amount ($)", TickFormat: "$,.0f"},
			BarMode:  "group",
			Template: "plotly_white",
			Height:   500,
		},
	}
}

// EducationFunding charts saved versus gap amounts per child. Returns nil
// when the profile has no children.
func EducationFunding(p profile.UserProfile) *ChartSpec {
	if len(p.ChildrenAges) == 0 {
		return nil
	}

	var labels []any
	var saved, gap []float64

	for i, age := range p.ChildrenAges {
		yearsUntilCollege := collegeStartAge - age
		if yearsUntilCollege < 0 {
			yearsUntilCollege = 0
		}

		futureCost := educationCostPerYear * math.Pow(1+educationInflation, float64(yearsUntilCollege))
		totalNeeded := futureCost * 4
		currentSavings := totalNeeded * 0.3

		labels = append(labels, fmt.Sprintf("Child %d (Age %d)", i+1, age))
		saved = append(saved, currentSavings)
		gap = append(gap, totalNeeded-currentSavings)
	}

	return &ChartSpec{
		Data: []Trace{
			{Type: "bar", Name: "Amount Saved", X: labels, Y: series(saved), Marker: &Marker{Color: "mediumseagreen"}},
			{Type: "bar", Name: "Funding Gap", X: labels, Y: series(gap), Marker: &Marker{Color: "tomato"}},
		},
		Layout: Layout{
			Title:    "Education Funding Status",
			XAxis:    &Axis{Title: "Child"},
			YAxis:    &Axis{Title: "Amount ($)", TickFormat: "$,.0f"},
			BarMode:  "stack",
			Template: "plotly_white",
			Height:   500,
		},
	}
}

// MonthlyBudgetBreakdown renders the recommended budget split of monthly
// income across spending categories.
func MonthlyBudgetBreakdown(p profile.UserProfile) ChartSpec {
	monthlyIncome := p.AnnualIncome / 12

	categories := []struct {
		name  string
		share float64
	}{
		{"Housing", 0.28},
		{"Transportation", 0.15},
		{"Food", 0.12},
		{"Utilities", 0.08},
		{"Insurance", 0.07},
		{"Savings/Investments", 0.15},
		{"Entertainment", 0.08},
		{"Personal Care", 0.04},
		{"Other", 0.03},
	}

	var labels []any
	var amounts []float64
	var text []string
	for _, c := range categories {
		amount := monthlyIncome * c.share
		labels = append(labels, c.name)
		amounts = append(amounts, amount)
		text = append(text, templates.FormatMoney(amount))
	}

	hideLegend := false
	return ChartSpec{
		Data: []Trace{{
			Type:        "bar",
			X:           series(amounts),
			Y:           labels,
			Orientation: "h",
			Text:        text,
			TextPos:     "auto",
			Marker:      &Marker{Color: "#45B7D1"},
		}},
		Layout: Layout{
			Title:      fmt.Sprintf("Recommended Monthly Budget (Total: %s)", templates.FormatMoney(monthlyIncome)),
			XAxis:      &Axis{Title: "Monthly Amount ($)", TickFormat: "$,.0f"},
			YAxis:      &Axis{Title: "Category"},
			Template:   "plotly_white",
			Height:     500,
			ShowLegend: &hideLegend,
		},
	}
}

// Build assembles the chart set for a session. Net worth always renders;
// the rest depend on the selected plans and profile contents.
func Build(p profile.UserProfile, selectedPlans []string) map[string]ChartSpec {
	selected := make(map[string]bool, len(selectedPlans))
	for _, name := range selectedPlans {
		selected[name] = true
	}

	charts := map[string]ChartSpec{
		"net_worth": NetWorthProjection(p),
	}

	if selected["Retirement Planning"] {
		charts["retirement"] = RetirementProjection(p)
	}
	if selected["Personal Wealth Management"] || selected["Retirement Planning"] {
		charts["allocation"] = AssetAllocationPie(p)
		charts["budget"] = MonthlyBudgetBreakdown(p)
	}
	if selected["Insurance Planning"] {
		charts["insurance"] = InsuranceCoverage(p)
	}
	if selected["Estate Planning"] || selected["Education Planning"] {
		if spec := EducationFunding(p); spec != nil {
			charts["education"] = *spec
		}
	}

	return charts
}
