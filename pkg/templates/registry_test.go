package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedRegistryLoadsAllPrompts(t *testing.T) {
	registry := Get()

	expected := []string{
		"agents/retirement",
		"agents/insurance",
		"agents/estate",
		"agents/wealth",
		"agents/education",
		"agents/tax",
		"orchestrator/summary",
		"chat/system",
	}

	ids := registry.List()
	for _, id := range expected {
		assert.Contains(t, ids, id)
	}
}

func TestGetTemplateUnknownID(t *testing.T) {
	_, err := Get().GetTemplate("agents/astrology")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
}

func TestRenderRetirementPrompt(t *testing.T) {
	data := map[string]any{
		"Age":           40,
		"RetirementAge": 65,
		"AnnualIncome":  120000.0,
		"Savings":       250000.0,
		"RiskTolerance": "moderate",
		"Calculations":  "- Total retirement fund needed: $2,000,000.00",
		"LiveData":      "",
	}

	out, err := Get().Render("agents/retirement", data)
	require.NoError(t, err)

	assert.Contains(t, out, "Retirement Planning Specialist")
	assert.Contains(t, out, "Age: 40")
	assert.Contains(t, out, "$120,000.00")
	assert.Contains(t, out, "Risk Tolerance: Moderate")
	assert.Contains(t, out, "$2,000,000.00")
	assert.NotContains(t, out, "Current Economic Data")
}

func TestRenderRetirementPromptWithLiveData(t *testing.T) {
	data := map[string]any{
		"Age":           40,
		"RetirementAge": 65,
		"AnnualIncome":  120000.0,
		"Savings":       250000.0,
		"RiskTolerance": "moderate",
		"Calculations":  "calc",
		"LiveData":      "Inflation rate (CPI year-over-year): 3.2%",
	}

	out, err := Get().Render("agents/retirement", data)
	require.NoError(t, err)
	assert.Contains(t, out, "Current Economic Data")
	assert.Contains(t, out, "3.2%")
}

func TestRenderSummaryPrompt(t *testing.T) {
	data := map[string]any{
		"ProfileJSON": `{"age": 40}`,
		"Plans": []map[string]string{
			{"Name": "Retirement Planning", "Summary": "Save more."},
			{"Name": "Insurance Planning", "Summary": "Buy term life."},
		},
	}

	out, err := Get().Render("orchestrator/summary", data)
	require.NoError(t, err)

	assert.Contains(t, out, "Senior Financial Advisor")
	assert.Contains(t, out, "### Retirement Planning:")
	assert.Contains(t, out, "### Insurance Planning:")
	assert.Contains(t, out, "Buy term life.")
}
