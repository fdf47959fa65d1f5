package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := UserProfile{Age: 40, AnnualIncome: 90000, Savings: 50000}

	tests := []struct {
		name    string
		mutate  func(*UserProfile)
		wantErr bool
	}{
		{"valid", func(p *UserProfile) {}, false},
		{"too young", func(p *UserProfile) { p.Age = 17 }, true},
		{"too old", func(p *UserProfile) { p.Age = 101 }, true},
		{"negative income", func(p *UserProfile) { p.AnnualIncome = -1 }, true},
		{"negative savings", func(p *UserProfile) { p.Savings = -100 }, true},
		{"negative debts", func(p *UserProfile) { p.Debts = -5 }, true},
		{"retirement before current age", func(p *UserProfile) { p.RetirementAge = 39 }, true},
		{"retirement age unset", func(p *UserProfile) { p.RetirementAge = 0 }, false},
		{"child age out of range", func(p *UserProfile) { p.ChildrenAges = []int{5, 31} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEffectiveDefaults(t *testing.T) {
	p := UserProfile{Age: 40, AnnualIncome: 90000, Savings: 50000}

	assert.Equal(t, 65, p.EffectiveRetirementAge())
	assert.Equal(t, "moderate", p.EffectiveRiskTolerance())
	assert.Equal(t, 50000.0, p.EffectiveTotalAssets())

	p.RetirementAge = 60
	p.RiskTolerance = "aggressive"
	p.TotalAssets = 250000
	assert.Equal(t, 60, p.EffectiveRetirementAge())
	assert.Equal(t, "aggressive", p.EffectiveRiskTolerance())
	assert.Equal(t, 250000.0, p.EffectiveTotalAssets())
}
