package sync

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"mlbtrack/ingestion/internal/client"
	"mlbtrack/ingestion/internal/metrics"
	"mlbtrack/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

// Exhibition games in this month never count; the provider mixes them into
// the season listing.
const preseasonMonth = time.March

// Innings beyond regulation mark an extra-innings game.
const regulationInnings = 9

// The provider's event display name is "<away> at <home>".
var eventNamePattern = regexp.MustCompile(`^(.+?)\s+at\s+(.+)$`)

// ScheduleResult reports one schedule reconciliation pass.
type ScheduleResult struct {
	GamesAdded   int `json:"games_added"`
	TotalFetched int `json:"total_fetched"`
}

// SyncSchedule fetches the season schedule and rebuilds the current
// calendar year's games from it. The listing is the authoritative full
// season view, so the pass is full-replace, not an incremental merge:
// purge the year, then insert every retained event. All mutations run in
// one transaction; any failure rolls the whole pass back.
func (e *Engine) SyncSchedule(ctx context.Context) (*ScheduleResult, error) {
	start := e.now()
	log.Info().Msg("Fetching season schedule...")

	events, err := e.provider.FetchSchedule(ctx)
	if err != nil {
		metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("schedule fetch failed: %w", err)
	}

	if len(events) == 0 {
		metrics.RecordSync("schedule", "empty", time.Since(start).Seconds())
		return &ScheduleResult{}, ErrEmptySchedule
	}

	log.Info().Int("count", len(events)).Msg("Schedule events fetched")

	tx, err := e.db.Pool.Begin(ctx)
	if err != nil {
		metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to begin schedule transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	year := e.now().Year()
	if _, err := e.db.Games.PurgeYearTx(ctx, tx, year); err != nil {
		metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
		return nil, err
	}

	added := 0
	seen := make(map[string]struct{}, len(events))

	for _, event := range events {
		game, err := parseScheduleEvent(event)
		if err != nil {
			log.Warn().Err(err).Str("event_id", event.ID).Msg("Skipping unparseable schedule event")
			metrics.RecordError("schedule_sync", "parse")
			continue
		}

		if game.GameDate.Month() == preseasonMonth {
			log.Debug().
				Str("event_id", game.EventID).
				Str("away", game.AwayTeam).
				Str("home", game.HomeTeam).
				Msg("Skipping pre-season game")
			continue
		}

		// The provider emits duplicate entries for some events under
		// distinct ids; first encountered wins.
		key := dedupeKey(game)
		if _, dup := seen[key]; dup {
			log.Debug().
				Str("event_id", game.EventID).
				Str("key", key).
				Msg("Skipping duplicate schedule event")
			continue
		}
		seen[key] = struct{}{}

		// Guards a retry that races a partially applied earlier pass.
		exists, err := e.db.Games.ExistsByEventIDTx(ctx, tx, game.EventID)
		if err != nil {
			metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
			return nil, err
		}
		if exists {
			log.Debug().Str("event_id", game.EventID).Msg("Game already stored")
			continue
		}

		if err := e.db.Games.InsertTx(ctx, tx, game); err != nil {
			metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
			return nil, err
		}

		if result := buildGameResult(game, event); result != nil {
			if err := e.db.Results.InsertTx(ctx, tx, result); err != nil {
				metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
				return nil, err
			}
		}

		added++
		log.Debug().
			Str("event_id", game.EventID).
			Str("away", game.AwayTeam).
			Str("home", game.HomeTeam).
			Str("date", game.GameDate.Format("2006-01-02")).
			Msg("Game added")
	}

	if err := tx.Commit(ctx); err != nil {
		metrics.RecordSync("schedule", "error", time.Since(start).Seconds())
		return nil, fmt.Errorf("failed to commit schedule pass: %w", err)
	}

	metrics.RecordSync("schedule", "success", time.Since(start).Seconds())
	log.Info().
		Int("added", added).
		Int("fetched", len(events)).
		Dur("duration", time.Since(start)).
		Msg("Schedule sync complete")

	return &ScheduleResult{GamesAdded: added, TotalFetched: len(events)}, nil
}

// dedupeKey is the composite identity the provider duplicates events on.
func dedupeKey(game *models.Game) string {
	return fmt.Sprintf("%s_%s_%s", game.GameDate.Format("2006-01-02"), game.HomeTeam, game.AwayTeam)
}

// parseScheduleEvent turns one provider event into a canonical game record.
// Every provider field may be absent; only the event id, date and a
// splittable display name are required.
func parseScheduleEvent(event client.Event) (*models.Game, error) {
	if event.ID == "" {
		return nil, fmt.Errorf("event has no id")
	}
	if event.Date == "" {
		return nil, fmt.Errorf("event %s has no date", event.ID)
	}

	eventTime, err := parseEventDate(event.Date)
	if err != nil {
		return nil, fmt.Errorf("event %s has unparseable date %q: %w", event.ID, event.Date, err)
	}
	// Calendar day as reported, no time zone conversion.
	gameDate := time.Date(eventTime.Year(), eventTime.Month(), eventTime.Day(), 0, 0, 0, 0, time.UTC)

	awayTeam, homeTeam, err := extractTeams(event.Name)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", event.ID, err)
	}

	game := &models.Game{
		EventID:   event.ID,
		GameDate:  gameDate,
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		DayOfWeek: gameDate.Weekday().String(),
		// Night-game flag stays unknown; start times are not reliable
		// enough to infer it.
	}

	comp := event.Competition()
	if comp == nil {
		return game, nil
	}

	if home := comp.Competitor("home"); home != nil {
		if v, ok := home.Score.Int(); ok {
			game.HomeScore = sql.NullInt32{Int32: int32(v), Valid: true}
		}
	}
	if away := comp.Competitor("away"); away != nil {
		if v, ok := away.Score.Int(); ok {
			game.AwayScore = sql.NullInt32{Int32: int32(v), Valid: true}
		}
	}

	if comp.Venue != nil && comp.Venue.FullName != "" {
		game.Venue = sql.NullString{String: comp.Venue.FullName, Valid: true}
	}
	if comp.Attendance != nil {
		game.Attendance = sql.NullInt32{Int32: int32(*comp.Attendance), Valid: true}
	}
	if comp.GameDuration != "" {
		game.GameDuration = sql.NullString{String: comp.GameDuration, Valid: true}
	}

	game.NeutralSite = comp.NeutralSite
	game.ExtraInnings = comp.Period() > regulationInnings
	game.IsFinal = eventIsFinal(comp)

	return game, nil
}

// parseEventDate accepts the provider's ISO-8601 variants, with and
// without seconds.
func parseEventDate(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
		"2006-01-02",
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// extractTeams splits the provider's "<away> at <home>" display name.
func extractTeams(name string) (away, home string, err error) {
	m := eventNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", "", fmt.Errorf("display name %q does not match \"<away> at <home>\"", name)
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), nil
}

// buildGameResult constructs the companion result row from the event's
// competitor breakdown. Only finalized events with both scores get a
// companion; anything earlier in the lifecycle stays game-only so the
// record aggregation never sees a phantom 0-0 line.
func buildGameResult(game *models.Game, event client.Event) *models.GameResult {
	comp := event.Competition()
	if comp == nil || !eventIsFinal(comp) {
		return nil
	}

	home := comp.Competitor("home")
	away := comp.Competitor("away")
	if home == nil || away == nil {
		return nil
	}

	homeScore, homeOK := home.Score.Int()
	awayScore, awayOK := away.Score.Int()
	if !homeOK || !awayOK {
		return nil
	}

	res := &models.GameResult{
		GameID:    game.ID,
		HomeTeam:  game.HomeTeam,
		AwayTeam:  game.AwayTeam,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
	if home.Team.DisplayName != "" {
		res.HomeTeam = home.Team.DisplayName
	}
	if away.Team.DisplayName != "" {
		res.AwayTeam = away.Team.DisplayName
	}

	if rec := home.TotalRecord(); rec != "" {
		res.HomeRecordAfter = sql.NullString{String: rec, Valid: true}
	}
	if rec := away.TotalRecord(); rec != "" {
		res.AwayRecordAfter = sql.NullString{String: rec, Valid: true}
	}

	return res
}
