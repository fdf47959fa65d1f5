package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"advisor/pkg/errors"
	"advisor/pkg/logger"
)

const defaultFREDBaseURL = "https://api.stlouisfed.org/fred"

// FREDClient fetches economic time series from the Federal Reserve (FRED) API.
type FREDClient struct {
	// BaseURL may be overridden in tests.
	BaseURL string

	apiKey string
	httpc  *http.Client
	log    *logger.Logger
}

// NewFREDClient creates a FRED API client. An empty key is allowed; calls
// made without one fail with a descriptive error.
func NewFREDClient(apiKey string) *FREDClient {
	return &FREDClient{
		BaseURL: defaultFREDBaseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     logger.Get().With("component", "fred_client"),
	}
}

// Observation is a single dated value from a FRED series.
type Observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// Float parses the observation value. FRED reports missing data as ".".
func (o Observation) Float() (float64, error) {
	return strconv.ParseFloat(o.Value, 64)
}

type observationsResponse struct {
	Observations []Observation `json:"observations"`
}

// Observations fetches the most recent observations of a series, newest first.
func (c *FREDClient) Observations(ctx context.Context, seriesID string, limit int) ([]Observation, error) {
	if c.apiKey == "" {
		return nil, errors.Wrap(errors.ErrProviderNotConfigured, "FRED API key is not configured")
	}

	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", c.apiKey)
	q.Set("sort_order", "desc")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("file_type", "json")

	endpoint := fmt.Sprintf("%s/series/observations?%s", c.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build FRED request")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrExternal, "fetch FRED series %s: %v", seriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrExternal, "FRED series %s returned status %d", seriesID, resp.StatusCode)
	}

	var payload observationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(err, "decode FRED series %s", seriesID)
	}

	c.log.Debugw("Fetched FRED series", "series", seriesID, "observations", len(payload.Observations))
	return payload.Observations, nil
}

// LatestValue returns the newest numeric value of a series with its date.
func (c *FREDClient) LatestValue(ctx context.Context, seriesID string) (float64, string, error) {
	observations, err := c.Observations(ctx, seriesID, 1)
	if err != nil {
		return 0, "", err
	}
	if len(observations) == 0 {
		return 0, "", errors.Newf("no observations returned for %s", seriesID)
	}

	value, err := observations[0].Float()
	if err != nil {
		return 0, "", errors.Wrapf(err, "parse %s observation", seriesID)
	}
	return value, observations[0].Date, nil
}
