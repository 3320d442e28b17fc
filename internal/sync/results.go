package sync

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mlbtrack/ingestion/internal/client"
	"mlbtrack/ingestion/internal/metrics"
	"mlbtrack/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

// ResultsResult reports one result reconciliation pass.
type ResultsResult struct {
	UpdatedGames    int `json:"updated_games"`
	GamesWithScores int `json:"games_with_scores"`
}

// SyncResults polls the live scoreboard and folds score changes into
// stored games. Unlike the schedule pass this one runs per-statement:
// a bad event is logged and skipped so one malformed payload cannot
// stall score updates for the rest of the slate.
func (e *Engine) SyncResults(ctx context.Context) (*ResultsResult, error) {
	start := e.now()
	log.Info().Msg("Polling scoreboard...")

	events, err := e.provider.FetchScoreboard(ctx)
	if err != nil {
		metrics.RecordSync("results", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("scoreboard fetch failed: %w", err)
	}

	out := &ResultsResult{}

	for _, event := range events {
		withScores, updated, err := e.applyScoreboardEvent(ctx, event)
		if err != nil {
			log.Warn().Err(err).Str("event_id", event.ID).Msg("Scoreboard event skipped")
			metrics.RecordError("result_sync", "apply")
			continue
		}
		if withScores {
			out.GamesWithScores++
		}
		if updated {
			out.UpdatedGames++
		}
	}

	metrics.RecordSync("results", "success", time.Since(start).Seconds())
	log.Info().
		Int("updated", out.UpdatedGames).
		Int("with_scores", out.GamesWithScores).
		Int("fetched", len(events)).
		Dur("duration", time.Since(start)).
		Msg("Result sync complete")

	return out, nil
}

// applyScoreboardEvent folds one scoreboard event into its stored game.
// Returns whether the stored game changed and whether that change carried
// both scores. Events with no stored counterpart are ignored and count
// toward nothing.
func (e *Engine) applyScoreboardEvent(ctx context.Context, event client.Event) (withScores, updated bool, err error) {
	comp := event.Competition()
	if comp == nil {
		return false, false, nil
	}

	home := comp.Competitor("home")
	away := comp.Competitor("away")
	if home == nil || away == nil {
		return false, false, nil
	}

	homeScore, homeOK := home.Score.Int()
	awayScore, awayOK := away.Score.Int()

	game, err := e.db.Games.GetByEventID(ctx, event.ID)
	if err != nil {
		return false, false, err
	}
	if game == nil {
		// League-wide scoreboard; most events belong to other teams.
		return false, false, nil
	}

	final := eventIsFinal(comp)
	changed := false

	if homeOK && (!game.HomeScore.Valid || int(game.HomeScore.Int32) != homeScore) {
		game.HomeScore = sql.NullInt32{Int32: int32(homeScore), Valid: true}
		changed = true
	}
	if awayOK && (!game.AwayScore.Valid || int(game.AwayScore.Int32) != awayScore) {
		game.AwayScore = sql.NullInt32{Int32: int32(awayScore), Valid: true}
		changed = true
	}
	if final != game.IsFinal {
		game.IsFinal = final
		changed = true
	}

	if !changed {
		// A companion write that failed after the game row committed would
		// otherwise wait for the nightly rebuild; retry it here.
		return false, false, e.upsertCompanionResult(ctx, game, home, away)
	}

	// Outcome only exists for finalized games with both scores; anything
	// less stays pending.
	if game.IsFinal && game.HasBothScores() {
		outcome := computeOutcome(e.team, game.HomeTeam, game.AwayTeam,
			int(game.HomeScore.Int32), int(game.AwayScore.Int32))
		if outcome != models.OutcomePending {
			game.GameResult = sql.NullString{String: string(outcome), Valid: true}
		}
	} else {
		game.GameResult = sql.NullString{}
	}

	if err := e.db.Games.UpdateResult(ctx, game); err != nil {
		return false, false, err
	}

	if err := e.upsertCompanionResult(ctx, game, home, away); err != nil {
		return false, true, err
	}

	log.Info().
		Str("event_id", game.EventID).
		Str("home", game.HomeTeam).
		Str("away", game.AwayTeam).
		Int32("home_score", game.HomeScore.Int32).
		Int32("away_score", game.AwayScore.Int32).
		Bool("final", game.IsFinal).
		Msg("Game result updated")

	if game.IsFinal && game.HasBothScores() {
		e.enrichWeather(ctx, game)
	}

	return homeOK && awayOK, true, nil
}

// upsertCompanionResult keeps the result row's scores and cumulative
// records aligned with the parent game. Companions exist only for
// finalized games with both scores.
func (e *Engine) upsertCompanionResult(ctx context.Context, game *models.Game, home, away *client.Competitor) error {
	if !game.IsFinal || !game.HasBothScores() {
		return nil
	}

	existing, err := e.db.Results.GetByGameID(ctx, game.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		res := &models.GameResult{
			GameID:    game.ID,
			HomeTeam:  game.HomeTeam,
			AwayTeam:  game.AwayTeam,
			HomeScore: int(game.HomeScore.Int32),
			AwayScore: int(game.AwayScore.Int32),
		}
		if rec := home.TotalRecord(); rec != "" {
			res.HomeRecordAfter = sql.NullString{String: rec, Valid: true}
		}
		if rec := away.TotalRecord(); rec != "" {
			res.AwayRecordAfter = sql.NullString{String: rec, Valid: true}
		}
		return e.db.Results.Create(ctx, res)
	}

	if existing.HomeScore == int(game.HomeScore.Int32) && existing.AwayScore == int(game.AwayScore.Int32) {
		return nil
	}
	return e.db.Results.UpdateScores(ctx, game.ID, int(game.HomeScore.Int32), int(game.AwayScore.Int32))
}

// enrichWeather attaches a weather observation to a finalized game that
// has a venue and no observation yet. Best-effort; failures only log.
// Reports whether an observation was stored.
func (e *Engine) enrichWeather(ctx context.Context, game *models.Game) bool {
	if e.weather == nil || !game.Venue.Valid || game.WeatherTemp.Valid {
		return false
	}

	var gameTime *time.Time
	if game.GameTime.Valid {
		t := game.GameTime.Time
		gameTime = &t
	}

	obs, err := e.weather.Observe(ctx, game.Venue.String, game.GameDate, gameTime)
	if err != nil || obs == nil {
		if err != nil {
			log.Warn().Err(err).Str("event_id", game.EventID).Msg("Weather enrichment failed")
			metrics.RecordError("result_sync", "weather")
		}
		return false
	}

	if err := e.db.Games.UpdateWeather(ctx, game.ID, obs); err != nil {
		log.Warn().Err(err).Str("event_id", game.EventID).Msg("Failed to store weather observation")
		metrics.RecordError("result_sync", "weather_store")
		return false
	}

	metrics.RecordWeatherEnrichment()
	log.Debug().Str("event_id", game.EventID).Str("weather", obs.Summary()).Msg("Weather recorded")
	return true
}

// RepairOutcomes backfills the outcome for finalized games whose scores
// arrived without one. Returns the number of games repaired.
func (e *Engine) RepairOutcomes(ctx context.Context) (int, error) {
	games, err := e.db.Games.ListMissingOutcomes(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, game := range games {
		outcome := computeOutcome(e.team, game.HomeTeam, game.AwayTeam,
			int(game.HomeScore.Int32), int(game.AwayScore.Int32))
		if outcome == models.OutcomePending {
			continue
		}

		if err := e.db.Games.UpdateOutcome(ctx, game.ID, outcome); err != nil {
			log.Warn().Err(err).Str("event_id", game.EventID).Msg("Outcome repair failed")
			metrics.RecordError("outcome_repair", "store")
			continue
		}
		repaired++
	}

	if repaired > 0 {
		log.Info().Int("repaired", repaired).Msg("Outcomes repaired")
	}
	return repaired, nil
}

// BackfillWeather walks games with a venue and no observation and tries
// to enrich each. Returns the number of games enriched.
func (e *Engine) BackfillWeather(ctx context.Context) (int, error) {
	if e.weather == nil {
		return 0, nil
	}

	games, err := e.db.Games.ListMissingWeather(ctx)
	if err != nil {
		return 0, err
	}

	enriched := 0
	for _, game := range games {
		// Future games have no history to fetch yet.
		if game.GameDate.After(e.now()) {
			continue
		}

		if e.enrichWeather(ctx, game) {
			enriched++
		}
	}

	log.Info().Int("enriched", enriched).Int("candidates", len(games)).Msg("Weather backfill complete")
	return enriched, nil
}
