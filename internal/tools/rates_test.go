package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMortgagePayment(t *testing.T) {
	result, err := MortgagePayment(300000, 7.5, 30)
	require.NoError(t, err)

	assert.InDelta(t, 2097.64, result["monthly_payment"].(float64), 0.01)
	assert.InDelta(t, 755150.4, result["total_paid"].(float64), 1.0)
	assert.InDelta(t, 455150.4, result["total_interest"].(float64), 1.0)

	schedule, ok := result["amortization_schedule_sample"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, schedule, 12)

	first := schedule[0]
	assert.Equal(t, 1, first["month"])
	// First month interest on 300k at 7.5%/12
	assert.InDelta(t, 1875.0, first["interest"].(float64), 0.01)
}

func TestMortgagePaymentZeroRate(t *testing.T) {
	result, err := MortgagePayment(120000, 0, 10)
	require.NoError(t, err)

	assert.InDelta(t, 1000.0, result["monthly_payment"].(float64), 0.001)
	assert.InDelta(t, 0.0, result["total_interest"].(float64), 0.001)
}

func TestMortgagePaymentValidation(t *testing.T) {
	_, err := MortgagePayment(0, 7.5, 30)
	assert.Error(t, err)

	_, err = MortgagePayment(300000, 7.5, 0)
	assert.Error(t, err)

	_, err = MortgagePayment(300000, -1, 30)
	assert.Error(t, err)
}

func TestMortgageRatesPartialData(t *testing.T) {
	// Only the 30-year series responds with data.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("series_id") == seriesMortgage30Year {
			w.Write([]byte(fredObservationsJSON("6.85")))
			return
		}
		w.Write([]byte(`{"observations":[]}`))
	}))
	defer server.Close()

	fred := NewFREDClient("test-key")
	fred.BaseURL = server.URL

	result, err := NewRatesService(fred).MortgageRates(context.Background())
	require.NoError(t, err)

	rates, ok := result["rates"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, rates, "15_year")
	assert.InDelta(t, 6.85, rates["30_year"].(float64), 0.001)
}

func TestFederalFundsRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, seriesFedFunds, r.URL.Query().Get("series_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fredObservationsJSON("5.33")))
	}))
	defer server.Close()

	fred := NewFREDClient("test-key")
	fred.BaseURL = server.URL

	result, err := NewRatesService(fred).FederalFundsRate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 5.33, result["federal_funds_rate"].(float64), 0.001)
	assert.Equal(t, "2025-06-01", result["date"])
}
