package sync

import (
	"context"
	"errors"
	"time"

	"mlbtrack/ingestion/internal/client"
	"mlbtrack/ingestion/internal/models"
	"mlbtrack/ingestion/internal/repository"
)

// ErrEmptySchedule marks a schedule pass where the provider returned zero
// events. Distinct from a transport error: the provider answered, there is
// just nothing to reconcile.
var ErrEmptySchedule = errors.New("schedule provider returned no events")

// ErrSyncInProgress is returned when a sync pass is already running.
// The engine requires single-flight operation; overlapping passes racing
// the season purge would corrupt the store.
var ErrSyncInProgress = errors.New("a sync pass is already in progress")

// Provider is the upstream schedule/scoreboard source.
type Provider interface {
	FetchSchedule(ctx context.Context) ([]client.Event, error)
	FetchScoreboard(ctx context.Context) ([]client.Event, error)
}

// Observer produces a weather observation for a venue and kickoff time,
// (nil, nil) when unavailable.
type Observer interface {
	Observe(ctx context.Context, venueName string, gameDate time.Time, gameTime *time.Time) (*models.WeatherObservation, error)
}

// Engine reconciles the external provider's view of the season against the
// local store. Callers must not run two passes concurrently; use a Runner
// to enforce single-flight operation.
type Engine struct {
	provider Provider
	db       *repository.Database
	weather  Observer // nil disables enrichment
	team     string
	now      func() time.Time
}

// NewEngine creates a sync engine for one tracked team
func NewEngine(provider Provider, db *repository.Database, weather Observer, team string) *Engine {
	return &Engine{
		provider: provider,
		db:       db,
		weather:  weather,
		team:     team,
		now:      time.Now,
	}
}

// eventIsFinal maps a competition's status state through the canonical
// finality enum.
func eventIsFinal(comp *client.Competition) bool {
	return models.FinalityFromState(comp.State()) == models.FinalityFinal
}

// computeOutcome classifies a finalized score line relative to the tracked
// team. Returns OutcomePending when the team played neither side.
// There is no draw in this sport, so equal scores never reach this path
// from the reconcilers; aggregation handles ties on its own.
func computeOutcome(team, homeTeam, awayTeam string, homeScore, awayScore int) models.Outcome {
	switch team {
	case homeTeam:
		if homeScore > awayScore {
			return models.OutcomeWin
		}
		return models.OutcomeLoss
	case awayTeam:
		if awayScore > homeScore {
			return models.OutcomeWin
		}
		return models.OutcomeLoss
	default:
		return models.OutcomePending
	}
}
