// Command manualsync runs one full reconciliation pass from the CLI:
// schedule rebuild, scoreboard fold-in, outcome repair and weather
// backfill. Useful for bootstrapping a fresh database and for recovery
// after downtime.
package main

import (
	"context"
	"errors"
	"fmt"

	"mlbtrack/ingestion/internal/client"
	"mlbtrack/ingestion/internal/config"
	"mlbtrack/ingestion/internal/repository"
	syncengine "mlbtrack/ingestion/internal/sync"
	"mlbtrack/ingestion/internal/weather"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     fmt.Sprintf("%d", cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// 1. Validate database connectivity
	log.Info().Msg("Validating service health...")
	if err := db.Health(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}

	// 2. Seed the venue directory
	if added, err := db.Venues.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("Venue seed failed")
	} else if added > 0 {
		log.Info().Int("added", added).Msg("Venues seeded")
	}

	espnClient := client.NewESPNClient(cfg.ESPNBaseURL, cfg.ESPNTeamID, cfg.ESPNTimeout)

	var observer syncengine.Observer
	if cfg.WeatherEnabled() {
		weatherClient := client.NewWeatherClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherTimeout)
		observer = weather.NewEnricher(db.Venues, weatherClient)
	}

	engine := syncengine.NewEngine(espnClient, db, observer, cfg.TeamName)

	// 3. Rebuild the season schedule
	schedResult, err := engine.SyncSchedule(ctx)
	if errors.Is(err, syncengine.ErrEmptySchedule) {
		log.Warn().Msg("Provider returned no events, nothing to rebuild")
	} else if err != nil {
		log.Fatal().Err(err).Msg("Schedule sync failed")
	} else {
		log.Info().
			Int("added", schedResult.GamesAdded).
			Int("fetched", schedResult.TotalFetched).
			Msg("Schedule synced")
	}

	// 4. Fold in current scoreboard results
	resResult, err := engine.SyncResults(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Result sync failed, continuing...")
	} else {
		log.Info().
			Int("updated", resResult.UpdatedGames).
			Int("with_scores", resResult.GamesWithScores).
			Msg("Results synced")
	}

	// 5. Repair outcomes and backfill weather
	if repaired, err := engine.RepairOutcomes(ctx); err != nil {
		log.Error().Err(err).Msg("Outcome repair failed")
	} else {
		log.Info().Int("repaired", repaired).Msg("Outcomes repaired")
	}

	if enriched, err := engine.BackfillWeather(ctx); err != nil {
		log.Error().Err(err).Msg("Weather backfill failed")
	} else {
		log.Info().Int("enriched", enriched).Msg("Weather backfilled")
	}

	// 6. Report the aggregate record
	record, err := engine.Record(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to compute record")
	}
	log.Info().
		Str("record", record.Record).
		Int("wins", record.Wins).
		Int("losses", record.Losses).
		Int("total", record.TotalGames).
		Msg("Manual sync complete")
}
