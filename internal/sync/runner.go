package sync

import (
	"context"
	"sync"
)

// Runner serializes sync passes over a shared engine. The schedule pass
// purges and rebuilds the season, so two passes interleaving would race
// the purge; callers that cannot wait get ErrSyncInProgress instead of
// queueing.
type Runner struct {
	engine *Engine
	mu     sync.Mutex
}

// NewRunner wraps an engine with single-flight enforcement
func NewRunner(engine *Engine) *Runner {
	return &Runner{engine: engine}
}

// Engine exposes the wrapped engine for read-only operations that need
// no serialization, like Record.
func (r *Runner) Engine() *Engine {
	return r.engine
}

// SyncSchedule runs a schedule pass, or returns ErrSyncInProgress when
// another pass holds the slot.
func (r *Runner) SyncSchedule(ctx context.Context) (*ScheduleResult, error) {
	if !r.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer r.mu.Unlock()
	return r.engine.SyncSchedule(ctx)
}

// SyncResults runs a result pass, or returns ErrSyncInProgress when
// another pass holds the slot.
func (r *Runner) SyncResults(ctx context.Context) (*ResultsResult, error) {
	if !r.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer r.mu.Unlock()
	return r.engine.SyncResults(ctx)
}

// RepairOutcomes runs an outcome repair pass under the same slot.
func (r *Runner) RepairOutcomes(ctx context.Context) (int, error) {
	if !r.mu.TryLock() {
		return 0, ErrSyncInProgress
	}
	defer r.mu.Unlock()
	return r.engine.RepairOutcomes(ctx)
}

// BackfillWeather runs a weather backfill pass under the same slot.
func (r *Runner) BackfillWeather(ctx context.Context) (int, error) {
	if !r.mu.TryLock() {
		return 0, ErrSyncInProgress
	}
	defer r.mu.Unlock()
	return r.engine.BackfillWeather(ctx)
}
