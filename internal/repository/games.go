package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mlbtrack/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

const gameColumns = `
	id, event_id, game_date, home_team, away_team, home_score, away_score,
	venue, attendance, game_time, game_duration,
	extra_innings, neutral_site, is_final,
	day_of_week, night_game, game_result,
	weather_temp, weather_conditions, wind_speed, wind_direction, humidity,
	created_at, updated_at`

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

func scanGame(row pgx.Row) (*models.Game, error) {
	var game models.Game
	err := row.Scan(
		&game.ID, &game.EventID, &game.GameDate, &game.HomeTeam, &game.AwayTeam,
		&game.HomeScore, &game.AwayScore,
		&game.Venue, &game.Attendance, &game.GameTime, &game.GameDuration,
		&game.ExtraInnings, &game.NeutralSite, &game.IsFinal,
		&game.DayOfWeek, &game.NightGame, &game.GameResult,
		&game.WeatherTemp, &game.WeatherConditions, &game.WindSpeed, &game.WindDirection, &game.Humidity,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// InsertTx inserts a new game inside an open transaction. The event id must
// not already exist.
func (r *GameRepository) InsertTx(ctx context.Context, tx pgx.Tx, game *models.Game) error {
	query := `
		INSERT INTO games (
			event_id, game_date, home_team, away_team, home_score, away_score,
			venue, attendance, game_time, game_duration,
			extra_innings, neutral_site, is_final,
			day_of_week, night_game, game_result
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(
		ctx, query,
		game.EventID, game.GameDate, game.HomeTeam, game.AwayTeam, game.HomeScore, game.AwayScore,
		game.Venue, game.Attendance, game.GameTime, game.GameDuration,
		game.ExtraInnings, game.NeutralSite, game.IsFinal,
		game.DayOfWeek, game.NightGame, game.GameResult,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	log.Debug().
		Int("id", game.ID).
		Str("event_id", game.EventID).
		Str("home", game.HomeTeam).
		Str("away", game.AwayTeam).
		Msg("Game inserted")

	return nil
}

// ExistsByEventIDTx reports whether a game with the given external event id
// already exists, inside an open transaction.
func (r *GameRepository) ExistsByEventIDTx(ctx context.Context, tx pgx.Tx, eventID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM games WHERE event_id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check game existence: %w", err)
	}
	return exists, nil
}

// PurgeYearTx deletes all games dated within the given calendar year,
// inside an open transaction. Companion result rows cascade.
func (r *GameRepository) PurgeYearTx(ctx context.Context, tx pgx.Tx, year int) (int64, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	result, err := tx.Exec(ctx, `DELETE FROM games WHERE game_date >= $1 AND game_date < $2`, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to purge games for year %d: %w", year, err)
	}

	log.Debug().Int("year", year).Int64("purged", result.RowsAffected()).Msg("Season games purged")
	return result.RowsAffected(), nil
}

// GetByEventID retrieves a game by its external event id.
// Returns (nil, nil) when no game matches.
func (r *GameRepository) GetByEventID(ctx context.Context, eventID string) (*models.Game, error) {
	query := `SELECT` + gameColumns + ` FROM games WHERE event_id = $1`

	game, err := scanGame(r.db.Pool.QueryRow(ctx, query, eventID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// ListRecent retrieves the most recent games for the tracked team, finished
// games first, then by game date descending.
func (r *GameRepository) ListRecent(ctx context.Context, team string, limit int) ([]*models.Game, error) {
	query := `
		SELECT` + gameColumns + `
		FROM games
		WHERE home_team = $1 OR away_team = $1
		ORDER BY is_final DESC, game_date DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, team, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// UpdateResult updates a game's scores, finality and outcome in place.
func (r *GameRepository) UpdateResult(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games
		SET home_score = $1, away_score = $2, is_final = $3, game_result = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.db.Pool.Exec(ctx, query,
		game.HomeScore, game.AwayScore, game.IsFinal, game.GameResult, game.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game result: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game not found: id=%d", game.ID)
	}

	return nil
}

// UpdateOutcome persists the derived outcome for a game.
func (r *GameRepository) UpdateOutcome(ctx context.Context, gameID int, outcome models.Outcome) error {
	query := `
		UPDATE games
		SET game_result = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.Pool.Exec(ctx, query, string(outcome), gameID)
	if err != nil {
		return fmt.Errorf("failed to update game outcome: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game not found: id=%d", gameID)
	}

	return nil
}

// UpdateWeather copies a weather observation onto the game row.
func (r *GameRepository) UpdateWeather(ctx context.Context, gameID int, obs *models.WeatherObservation) error {
	query := `
		UPDATE games
		SET weather_temp = $1, weather_conditions = $2, wind_speed = $3,
		    wind_direction = $4, humidity = $5, updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.db.Pool.Exec(ctx, query,
		obs.Temperature, obs.Conditions, obs.WindSpeed, obs.WindDirection, obs.Humidity, gameID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game weather: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game not found: id=%d", gameID)
	}

	return nil
}

// ListMissingOutcomes retrieves finalized games with both scores reported
// but no outcome recorded.
func (r *GameRepository) ListMissingOutcomes(ctx context.Context) ([]*models.Game, error) {
	query := `
		SELECT` + gameColumns + `
		FROM games
		WHERE home_score IS NOT NULL
		  AND away_score IS NOT NULL
		  AND is_final = TRUE
		  AND game_result IS NULL
		ORDER BY game_date
	`

	return r.listGames(ctx, query)
}

// ListMissingWeather retrieves games with a known venue and no recorded
// weather temperature.
func (r *GameRepository) ListMissingWeather(ctx context.Context) ([]*models.Game, error) {
	query := `
		SELECT` + gameColumns + `
		FROM games
		WHERE venue IS NOT NULL
		  AND weather_temp IS NULL
		ORDER BY game_date
	`

	return r.listGames(ctx, query)
}

func (r *GameRepository) listGames(ctx context.Context, query string, args ...interface{}) ([]*models.Game, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// Count returns the total number of games
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM games`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}

	return count, nil
}
