package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInflationRateYoY(t *testing.T) {
	// Thirteen monthly CPI readings, newest first. 310 now vs 300 a year
	// ago is a 3.33% year-over-year change.
	values := []string{"310.0", "309.5", "309.0", "308.5", "308.0", "307.0", "306.0", "305.0", "304.0", "303.0", "302.0", "301.0", "300.0"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, seriesCPI, r.URL.Query().Get("series_id"))
		assert.Equal(t, "13", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fredObservationsJSON(values...)))
	}))
	defer server.Close()

	fred := NewFREDClient("test-key")
	fred.BaseURL = server.URL

	result, err := NewEconomicService(fred).InflationRate(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 3.33, result["inflation_rate_yoy"].(float64), 0.001)
	assert.InDelta(t, 310.0, result["current_cpi"].(float64), 0.001)
	assert.InDelta(t, 309.5, result["cpi_month_ago"].(float64), 0.001)
	assert.InDelta(t, 300.0, result["cpi_year_ago"].(float64), 0.001)
}

func TestInflationRateInsufficientData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fredObservationsJSON("310.0", "309.0")))
	}))
	defer server.Close()

	fred := NewFREDClient("test-key")
	fred.BaseURL = server.URL

	_, err := NewEconomicService(fred).InflationRate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient")
}

func TestUnemploymentRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fredObservationsJSON("4.1", "3.9")))
	}))
	defer server.Close()

	fred := NewFREDClient("test-key")
	fred.BaseURL = server.URL

	result, err := NewEconomicService(fred).UnemploymentRate(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 4.1, result["unemployment_rate"].(float64), 0.001)
	assert.InDelta(t, 3.9, result["previous_rate"].(float64), 0.001)
	assert.InDelta(t, 0.2, result["rate_change"].(float64), 0.001)
}

func TestProjectRetirementInflationExplicitRate(t *testing.T) {
	fred := NewFREDClient("")
	svc := NewEconomicService(fred)

	result, err := svc.ProjectRetirementInflation(context.Background(), 80000, 10, 3.0)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, result["inflation_rate_applied"].(float64), 0.001)

	// 80000 * 1.03^11 because the projection list runs through year 10
	// and the final value compounds once more past it.
	projections, ok := result["projections"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, projections, 11)

	assert.InDelta(t, 80000.0, projections[0]["annual_expense"].(float64), 0.01)
	assert.InDelta(t, 82400.0, projections[1]["annual_expense"].(float64), 0.01)
	// Year 10: 80000 * 1.03^10 = 107513.34
	assert.InDelta(t, 107513.34, projections[10]["annual_expense"].(float64), 0.01)
}

func TestProjectRetirementInflationFallbackRate(t *testing.T) {
	// No FRED key, so the live lookup fails and the historical 3% is used.
	fred := NewFREDClient("")
	svc := NewEconomicService(fred)

	result, err := svc.ProjectRetirementInflation(context.Background(), 50000, 5, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, result["inflation_rate_applied"].(float64), 0.001)
}

func TestProjectRetirementInflationValidation(t *testing.T) {
	svc := NewEconomicService(NewFREDClient(""))

	_, err := svc.ProjectRetirementInflation(context.Background(), 0, 10, 3.0)
	assert.Error(t, err)

	_, err = svc.ProjectRetirementInflation(context.Background(), 80000, -1, 3.0)
	assert.Error(t, err)
}
