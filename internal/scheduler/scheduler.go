package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mlbtrack/ingestion/internal/config"
	syncengine "mlbtrack/ingestion/internal/sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler manages the background sync cadence:
// - Nightly full schedule rebuild via cron
// - Scoreboard polling on a fixed interval for score updates
type Scheduler struct {
	cfg      *config.Config
	runner   *syncengine.Runner
	cron     *cron.Cron
	ticker   *time.Ticker
	stopChan chan struct{}
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, runner *syncengine.Runner) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		runner:   runner,
		cron:     cron.New(),
		stopChan: make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.cfg.NightlySyncCron, func() {
		log.Info().Msg("Running nightly schedule sync...")
		if err := s.runNightlySync(ctx); err != nil {
			log.Error().Err(err).Msg("Nightly schedule sync failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule nightly sync: %w", err)
	}

	s.cron.Start()
	log.Info().
		Str("schedule", s.cfg.NightlySyncCron).
		Msg("Nightly schedule sync scheduled")

	interval := time.Duration(s.cfg.ResultPollInterval) * time.Second
	s.ticker = time.NewTicker(interval)
	log.Info().
		Dur("interval", interval).
		Msg("Scoreboard polling started")

	go s.pollResults(ctx)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	if s.ticker != nil {
		s.ticker.Stop()
	}

	close(s.stopChan)
	log.Info().Msg("Scheduler stopped")
}

// pollResults polls the scoreboard until stopped.
func (s *Scheduler) pollResults(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Context cancelled, stopping scoreboard polling")
			return
		case <-s.stopChan:
			log.Info().Msg("Stop signal received, stopping scoreboard polling")
			return
		case <-s.ticker.C:
			if err := s.runResultPoll(ctx); err != nil {
				log.Error().Err(err).Msg("Scoreboard poll failed")
			}
		}
	}
}

// runResultPoll runs one scoreboard pass followed by an outcome repair.
// A pass already in flight is skipped, not an error; the next tick will
// catch up.
func (s *Scheduler) runResultPoll(ctx context.Context) error {
	result, err := s.runner.SyncResults(ctx)
	if errors.Is(err, syncengine.ErrSyncInProgress) {
		log.Debug().Msg("Sync already running, skipping scoreboard tick")
		return nil
	}
	if err != nil {
		return err
	}

	if result.UpdatedGames > 0 {
		if _, err := s.runner.RepairOutcomes(ctx); err != nil && !errors.Is(err, syncengine.ErrSyncInProgress) {
			log.Warn().Err(err).Msg("Outcome repair after poll failed")
		}
	}

	return nil
}

// runNightlySync rebuilds the season, then catches up results and
// weather for everything the rebuild reset.
func (s *Scheduler) runNightlySync(ctx context.Context) error {
	result, err := s.runner.SyncSchedule(ctx)
	if errors.Is(err, syncengine.ErrSyncInProgress) {
		log.Warn().Msg("Sync already running, nightly rebuild skipped")
		return nil
	}
	if errors.Is(err, syncengine.ErrEmptySchedule) {
		log.Warn().Msg("Provider returned an empty schedule, nightly rebuild skipped")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().
		Int("added", result.GamesAdded).
		Int("fetched", result.TotalFetched).
		Msg("Nightly schedule rebuild complete")

	if _, err := s.runner.RepairOutcomes(ctx); err != nil && !errors.Is(err, syncengine.ErrSyncInProgress) {
		log.Warn().Err(err).Msg("Outcome repair after rebuild failed")
	}
	if _, err := s.runner.BackfillWeather(ctx); err != nil && !errors.Is(err, syncengine.ErrSyncInProgress) {
		log.Warn().Err(err).Msg("Weather backfill after rebuild failed")
	}

	return nil
}
