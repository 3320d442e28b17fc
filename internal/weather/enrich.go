package weather

import (
	"context"
	"math"
	"time"

	"mlbtrack/ingestion/internal/client"
	"mlbtrack/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

// Default first pitch when the schedule carries no start time.
const defaultStartHour = 19

// Half-width of the observation window around the anchor time.
const windowHalf = 90 * time.Minute

const hourlyTimeLayout = "2006-01-02 15:04"

// HistoryProvider fetches an hourly weather series for one date at a
// coordinate pair.
type HistoryProvider interface {
	FetchHistory(ctx context.Context, lat, lon float64, date string) ([]client.HourlySample, error)
}

// VenueResolver maps a free-text venue name to a directory record,
// returning (nil, nil) when nothing matches.
type VenueResolver interface {
	Resolve(ctx context.Context, name string) (*models.Venue, error)
}

// Enricher reduces an hourly weather series to a single observation for
// the window around a game's start time. Enrichment is best-effort: every
// failure path yields (nil, nil) so callers can skip it without aborting a
// sync pass.
type Enricher struct {
	venues   VenueResolver
	provider HistoryProvider
}

// NewEnricher creates a weather enricher
func NewEnricher(venues VenueResolver, provider HistoryProvider) *Enricher {
	return &Enricher{
		venues:   venues,
		provider: provider,
	}
}

// Observe resolves the venue, fetches the hourly series for the game date
// and reduces the samples inside [anchor-1h30m, anchor+1h30m] (inclusive)
// to one observation. gameTime may be nil; the anchor then defaults to
// 19:00 local.
func (e *Enricher) Observe(ctx context.Context, venueName string, gameDate time.Time, gameTime *time.Time) (*models.WeatherObservation, error) {
	venue, err := e.venues.Resolve(ctx, venueName)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		log.Debug().Str("venue", venueName).Msg("No venue match, skipping enrichment")
		return nil, nil
	}

	anchor := anchorTime(gameDate, gameTime)
	windowStart := anchor.Add(-windowHalf)
	windowEnd := anchor.Add(windowHalf)

	samples, err := e.provider.FetchHistory(ctx, venue.Latitude, venue.Longitude, gameDate.Format("2006-01-02"))
	if err != nil {
		log.Warn().
			Err(err).
			Str("venue", venue.Name).
			Str("date", gameDate.Format("2006-01-02")).
			Msg("Weather lookup failed, skipping enrichment")
		return nil, nil
	}

	window := filterWindow(samples, windowStart, windowEnd)
	if len(window) == 0 {
		return nil, nil
	}

	obs := reduce(window)
	log.Debug().
		Str("venue", venue.Name).
		Int("samples", len(window)).
		Str("summary", obs.Summary()).
		Msg("Weather observation computed")

	return obs, nil
}

// anchorTime combines the game date with the start time, or with the
// default first pitch hour when no time is known.
func anchorTime(gameDate time.Time, gameTime *time.Time) time.Time {
	hour, minute := defaultStartHour, 0
	if gameTime != nil {
		hour, minute = gameTime.Hour(), gameTime.Minute()
	}
	return time.Date(gameDate.Year(), gameDate.Month(), gameDate.Day(), hour, minute, 0, 0, gameDate.Location())
}

// filterWindow keeps the samples whose timestamp falls inside the window,
// bounds inclusive. Samples with unparseable timestamps are dropped.
func filterWindow(samples []client.HourlySample, start, end time.Time) []client.HourlySample {
	var window []client.HourlySample
	for _, s := range samples {
		ts, err := time.ParseInLocation(hourlyTimeLayout, s.Time, start.Location())
		if err != nil {
			continue
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		window = append(window, s)
	}
	return window
}

// reduce collapses the window to a single observation: arithmetic means
// rounded to the nearest integer, the first sample's wind direction
// (direction is categorical, not averaged) and the most frequent condition
// label with first-seen tiebreak.
func reduce(window []client.HourlySample) *models.WeatherObservation {
	var tempSum, windSum, humiditySum float64
	for _, s := range window {
		tempSum += s.TempF
		windSum += s.WindMPH
		humiditySum += s.Humidity
	}
	n := float64(len(window))

	return &models.WeatherObservation{
		Temperature:   int(math.Round(tempSum / n)),
		Conditions:    dominantCondition(window),
		WindSpeed:     int(math.Round(windSum / n)),
		WindDirection: window[0].WindDir,
		Humidity:      int(math.Round(humiditySum / n)),
	}
}

func dominantCondition(window []client.HourlySample) string {
	counts := make(map[string]int, len(window))
	best := 0
	for _, s := range window {
		counts[s.Condition.Text]++
		if counts[s.Condition.Text] > best {
			best = counts[s.Condition.Text]
		}
	}
	for _, s := range window {
		if counts[s.Condition.Text] == best {
			return s.Condition.Text
		}
	}
	return ""
}
