package profile

import (
	"advisor/pkg/errors"
)

// UserProfile holds the financial information collected from the user.
// A profile is immutable once a planning session starts.
type UserProfile struct {
	Age          int     `json:"age"`
	AnnualIncome float64 `json:"annual_income"`
	Savings      float64 `json:"savings"`

	// Optional, domain-specific fields
	RetirementAge int     `json:"retirement_age,omitempty"`
	RiskTolerance string  `json:"risk_tolerance,omitempty"`
	NumDependents int     `json:"num_dependents,omitempty"`
	Debts         float64 `json:"debts,omitempty"`
	TotalAssets   float64 `json:"total_assets,omitempty"`
	NumChildren   int     `json:"num_children,omitempty"`
	ChildrenAges  []int   `json:"children_ages,omitempty"`
	FilingStatus  string  `json:"filing_status,omitempty"`
}

// EffectiveRetirementAge returns the stated retirement age or the default of 65.
func (p UserProfile) EffectiveRetirementAge() int {
	if p.RetirementAge > 0 {
		return p.RetirementAge
	}
	return 65
}

// EffectiveRiskTolerance returns the stated risk tolerance or "moderate".
func (p UserProfile) EffectiveRiskTolerance() string {
	if p.RiskTolerance == "" {
		return "moderate"
	}
	return p.RiskTolerance
}

// EffectiveTotalAssets returns total assets, falling back to savings.
func (p UserProfile) EffectiveTotalAssets() float64 {
	if p.TotalAssets > 0 {
		return p.TotalAssets
	}
	return p.Savings
}

// Validate performs basic type/range checks on the profile.
func (p UserProfile) Validate() error {
	if p.Age < 18 || p.Age > 100 {
		return errors.NewValidationError("age", "must be between 18 and 100", p.Age)
	}
	if p.AnnualIncome < 0 {
		return errors.NewValidationError("annual_income", "must not be negative", p.AnnualIncome)
	}
	if p.Savings < 0 {
		return errors.NewValidationError("savings", "must not be negative", p.Savings)
	}
	if p.Debts < 0 {
		return errors.NewValidationError("debts", "must not be negative", p.Debts)
	}
	if p.RetirementAge != 0 && p.RetirementAge <= p.Age {
		return errors.NewValidationError("retirement_age", "must be greater than current age", p.RetirementAge)
	}
	for _, age := range p.ChildrenAges {
		if age < 0 || age > 30 {
			return errors.NewValidationError("children_ages", "ages must be between 0 and 30", age)
		}
	}
	return nil
}
