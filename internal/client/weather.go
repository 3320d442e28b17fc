package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mlbtrack/ingestion/internal/metrics"

	"github.com/rs/zerolog/log"
)

// WeatherClient is the WeatherAPI client used for point-in-time hourly
// history lookups at venue coordinates.
type WeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWeatherClient creates a new weather API client
func NewWeatherClient(baseURL, apiKey string, timeout time.Duration) *WeatherClient {
	return &WeatherClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// HistoryResponse is the provider's history payload for a single day.
type HistoryResponse struct {
	Forecast Forecast `json:"forecast"`
}

// Forecast wraps the per-day forecast entries.
type Forecast struct {
	ForecastDay []ForecastDay `json:"forecastday"`
}

// ForecastDay carries one day's hourly series.
type ForecastDay struct {
	Hour []HourlySample `json:"hour"`
}

// HourlySample is one hour of observed weather.
type HourlySample struct {
	Time      string           `json:"time"` // "2006-01-02 15:04" local to the location
	TempF     float64          `json:"temp_f"`
	Condition WeatherCondition `json:"condition"`
	WindMPH   float64          `json:"wind_mph"`
	WindDir   string           `json:"wind_dir"`
	Humidity  float64          `json:"humidity"`
	PrecipIn  float64          `json:"precip_in"`
}

// WeatherCondition holds the condition label.
type WeatherCondition struct {
	Text string `json:"text"`
}

// FetchHistory fetches the hourly history series for one date at the given
// coordinates. The date is formatted YYYY-MM-DD.
func (c *WeatherClient) FetchHistory(ctx context.Context, lat, lon float64, date string) ([]HourlySample, error) {
	start := time.Now()
	endpoint := fmt.Sprintf("%s/history.json", c.baseURL)

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", fmt.Sprintf("%.4f,%.4f", lat, lon))
	params.Set("dt", date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug().
		Str("date", date).
		Float64("lat", lat).
		Float64("lon", lon).
		Msg("Fetching weather history")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall("weather_history", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordAPICall("weather_history", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("weather API returned status %d: %s", resp.StatusCode, string(body))
	}

	var history HistoryResponse
	if err := json.Unmarshal(body, &history); err != nil {
		metrics.RecordAPICall("weather_history", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to unmarshal weather history: %w", err)
	}

	metrics.RecordAPICall("weather_history", "success", time.Since(start).Seconds())

	if len(history.Forecast.ForecastDay) == 0 {
		return nil, nil
	}

	return history.Forecast.ForecastDay[0].Hour, nil
}
