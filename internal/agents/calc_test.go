package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetirementNeeds(t *testing.T) {
	out := RetirementNeeds(32, 65, 68000)

	assert.Contains(t, out, "Years until retirement: 33")
	assert.Contains(t, out, "Years in retirement: 20")
	assert.Contains(t, out, "Total retirement fund needed: $")
	assert.Contains(t, out, "Recommended monthly savings: $")
}

func TestRetirementNeedsAlreadyRetired(t *testing.T) {
	out := RetirementNeeds(70, 65, 50000)

	assert.Contains(t, out, "Years until retirement: 0")
	assert.Contains(t, out, "Recommended monthly savings: $0.00")
}

func TestLifeInsurance(t *testing.T) {
	out := LifeInsurance(85000, 2, 10000, 45000)

	// 10x income + debts - savings = 815,000, scaled 1.4x for two dependents
	assert.Contains(t, out, "Base coverage needed: $815,000.00")
	assert.Contains(t, out, "Adjustment for 2 dependent(s): 1.4x")
	assert.Contains(t, out, "Recommended coverage: $1,141,000.00")
}

func TestEducationFund(t *testing.T) {
	out := EducationFund([]int{8})

	// 30,000/yr inflated at 5% over 10 years, times 4 years of college
	assert.Contains(t, out, "Child 1 (age 8): $195,467.36 needed in 10 years")
	assert.Contains(t, out, "Total education fund needed: $195,467.36")
	assert.Contains(t, out, "Recommended monthly savings: $1,628.89")
}

func TestEducationFundNoChildren(t *testing.T) {
	out := EducationFund(nil)
	assert.Contains(t, out, "no education funding required")
}

func TestEducationFundChildOverEighteen(t *testing.T) {
	// A 20-year-old has zero years until college, so cost is not inflated.
	out := EducationFund([]int{20})
	assert.Contains(t, out, "Child 1 (age 20): $120,000.00 needed in 0 years")
}

func TestEstateTaxAboveExemption(t *testing.T) {
	out := EstateTax(20000000)

	assert.Contains(t, out, "Taxable estate: $6,390,000.00")
	assert.Contains(t, out, "Estimated federal estate tax: $2,556,000.00")
	assert.Contains(t, out, "Estate planning strategies recommended")
}

func TestEstateTaxBelowExemption(t *testing.T) {
	out := EstateTax(500000)

	assert.Contains(t, out, "Taxable estate: $0.00")
	assert.Contains(t, out, "Below exemption threshold")
}

func TestStockAllocationPercent(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		risk     string
		expected int
	}{
		{"moderate is age based", 40, "moderate", 60},
		{"aggressive adds ten", 40, "aggressive", 70},
		{"aggressive capped at ninety", 20, "aggressive", 90},
		{"conservative subtracts twenty", 30, "conservative", 50},
		{"conservative floored at twenty", 85, "conservative", 20},
		{"unknown tolerance treated as moderate", 40, "whatever", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StockAllocationPercent(tt.age, tt.risk))
		})
	}
}

func TestWealthAllocation(t *testing.T) {
	out := WealthAllocation(100000, 40, "aggressive")

	assert.Contains(t, out, "Risk Profile: Aggressive")
	assert.Contains(t, out, "Stocks/Equity: 70% ($70,000.00)")
	assert.Contains(t, out, "Bonds/Fixed Income: 30% ($30,000.00)")
}
