package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const historyFixture = `{
	"forecast": {
		"forecastday": [{
			"hour": [
				{"time": "2025-06-14 18:00", "temp_f": 72.5, "wind_mph": 6.3, "wind_dir": "WSW",
				 "humidity": 55, "precip_in": 0.0, "condition": {"text": "Partly cloudy"}},
				{"time": "2025-06-14 19:00", "temp_f": 70.1, "wind_mph": 5.8, "wind_dir": "W",
				 "humidity": 58, "precip_in": 0.0, "condition": {"text": "Clear"}}
			]
		}]
	}
}`

func TestFetchHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history.json", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "34.0739,-118.2400", q.Get("q"))
		assert.Equal(t, "2025-06-14", q.Get("dt"))

		w.Write([]byte(historyFixture))
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL, "test-key", 5*time.Second)
	samples, err := c.FetchHistory(context.Background(), 34.0739, -118.24, "2025-06-14")
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, "2025-06-14 18:00", samples[0].Time)
	assert.Equal(t, 72.5, samples[0].TempF)
	assert.Equal(t, "Partly cloudy", samples[0].Condition.Text)
	assert.Equal(t, "WSW", samples[0].WindDir)
	assert.Equal(t, 55.0, samples[0].Humidity)
}

func TestFetchHistory_NoForecastDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"forecast": {"forecastday": []}}`))
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL, "test-key", 5*time.Second)
	samples, err := c.FetchHistory(context.Background(), 34.0739, -118.24, "2025-06-14")
	require.NoError(t, err)
	assert.Nil(t, samples)
}

func TestFetchHistory_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 2008, "message": "API key disabled"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL, "test-key", 5*time.Second)
	_, err := c.FetchHistory(context.Background(), 34.0739, -118.24, "2025-06-14")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
