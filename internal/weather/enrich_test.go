package weather

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"mlbtrack/ingestion/internal/client"
	"mlbtrack/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	venue *models.Venue
	err   error
}

func (f *fakeResolver) Resolve(ctx context.Context, name string) (*models.Venue, error) {
	return f.venue, f.err
}

type fakeProvider struct {
	samples []client.HourlySample
	err     error
	calls   int
}

func (f *fakeProvider) FetchHistory(ctx context.Context, lat, lon float64, date string) ([]client.HourlySample, error) {
	f.calls++
	return f.samples, f.err
}

func hourly(hhmm string, temp, wind, humidity float64, cond, dir string) client.HourlySample {
	return client.HourlySample{
		Time:      "2025-06-14 " + hhmm,
		TempF:     temp,
		WindMPH:   wind,
		Humidity:  humidity,
		WindDir:   dir,
		Condition: client.WeatherCondition{Text: cond},
	}
}

func fullDay() []client.HourlySample {
	var samples []client.HourlySample
	for h := 0; h < 24; h++ {
		samples = append(samples, hourly(fmt.Sprintf("%02d:00", h), 70, 5, 50, "Clear", "W"))
	}
	return samples
}

var testVenue = &models.Venue{Name: "Dodger Stadium", Latitude: 34.0739, Longitude: -118.24}

func TestObserve_DefaultWindow(t *testing.T) {
	provider := &fakeProvider{samples: fullDay()}
	e := NewEnricher(&fakeResolver{venue: testVenue}, provider)

	gameDate := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	obs, err := e.Observe(context.Background(), "Dodger Stadium", gameDate, nil)
	require.NoError(t, err)
	require.NotNil(t, obs)

	// Without a start time the anchor is 19:00, so the window is
	// [17:30, 20:30] and only 18:00, 19:00 and 20:00 fall inside.
	assert.Equal(t, 70, obs.Temperature)
	assert.Equal(t, 5, obs.WindSpeed)
	assert.Equal(t, 50, obs.Humidity)
	assert.Equal(t, "Clear", obs.Conditions)
	assert.Equal(t, "W", obs.WindDirection)
}

func TestObserve_WindowBoundsInclusive(t *testing.T) {
	samples := []client.HourlySample{
		hourly("17:29", 100, 20, 90, "Rain", "N"), // just outside
		hourly("17:30", 60, 4, 40, "Cloudy", "NW"),
		hourly("19:00", 70, 6, 50, "Clear", "W"),
		hourly("20:30", 80, 8, 60, "Clear", "SW"),
		hourly("20:31", 100, 20, 90, "Rain", "N"), // just outside
	}
	provider := &fakeProvider{samples: samples}
	e := NewEnricher(&fakeResolver{venue: testVenue}, provider)

	gameDate := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	obs, err := e.Observe(context.Background(), "Dodger Stadium", gameDate, nil)
	require.NoError(t, err)
	require.NotNil(t, obs)

	assert.Equal(t, 70, obs.Temperature, "mean of 60, 70, 80")
	assert.Equal(t, 6, obs.WindSpeed, "mean of 4, 6, 8")
	assert.Equal(t, 50, obs.Humidity, "mean of 40, 50, 60")
	assert.Equal(t, "Clear", obs.Conditions, "two Clear beat one Cloudy")
	assert.Equal(t, "NW", obs.WindDirection, "first sample in the window")
}

func TestObserve_ExplicitStartTime(t *testing.T) {
	samples := []client.HourlySample{
		hourly("12:00", 65, 3, 45, "Sunny", "E"),
		hourly("13:00", 67, 4, 46, "Sunny", "E"),
		hourly("19:00", 90, 15, 80, "Thunder", "S"), // outside a 13:10 window
	}
	provider := &fakeProvider{samples: samples}
	e := NewEnricher(&fakeResolver{venue: testVenue}, provider)

	gameDate := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, time.June, 14, 13, 10, 0, 0, time.UTC)

	obs, err := e.Observe(context.Background(), "Dodger Stadium", gameDate, &start)
	require.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, 66, obs.Temperature)
	assert.Equal(t, "Sunny", obs.Conditions)
}

func TestObserve_ConditionTiebreakFirstSeen(t *testing.T) {
	samples := []client.HourlySample{
		hourly("18:00", 70, 5, 50, "Cloudy", "W"),
		hourly("19:00", 70, 5, 50, "Clear", "W"),
	}
	provider := &fakeProvider{samples: samples}
	e := NewEnricher(&fakeResolver{venue: testVenue}, provider)

	gameDate := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	obs, err := e.Observe(context.Background(), "Dodger Stadium", gameDate, nil)
	require.NoError(t, err)
	require.NotNil(t, obs)
	assert.Equal(t, "Cloudy", obs.Conditions)
}

func TestObserve_UnresolvedVenueSkips(t *testing.T) {
	provider := &fakeProvider{samples: fullDay()}
	e := NewEnricher(&fakeResolver{venue: nil}, provider)

	gameDate := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	obs, err := e.Observe(context.Background(), "Unknown Park", gameDate, nil)
	require.NoError(t, err)
	assert.Nil(t, obs)
	assert.Zero(t, provider.calls, "no venue, no lookup")
}

func TestObserve_ProviderFailureSkips(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	e := NewEnricher(&fakeResolver{venue: testVenue}, provider)

	gameDate := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	obs, err := e.Observe(context.Background(), "Dodger Stadium", gameDate, nil)
	assert.NoError(t, err, "lookup failure degrades to skip")
	assert.Nil(t, obs)
}

func TestObserve_EmptyWindowSkips(t *testing.T) {
	samples := []client.HourlySample{
		hourly("08:00", 60, 5, 40, "Clear", "W"),
	}
	provider := &fakeProvider{samples: samples}
	e := NewEnricher(&fakeResolver{venue: testVenue}, provider)

	gameDate := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	obs, err := e.Observe(context.Background(), "Dodger Stadium", gameDate, nil)
	require.NoError(t, err)
	assert.Nil(t, obs)
}

func TestObserve_ResolverErrorPropagates(t *testing.T) {
	e := NewEnricher(&fakeResolver{err: errors.New("db down")}, &fakeProvider{})

	gameDate := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)
	_, err := e.Observe(context.Background(), "Dodger Stadium", gameDate, nil)
	assert.Error(t, err)
}
