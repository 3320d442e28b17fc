package repository

import (
	"context"
	"errors"
	"fmt"

	"mlbtrack/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// ResultRepository handles game result database operations
type ResultRepository struct {
	db *Database
}

const resultColumns = `
	id, game_id, home_team, away_team, home_score, away_score,
	home_record_after, away_record_after,
	home_hits, home_errors, home_lob, home_risp,
	away_hits, away_errors, away_lob, away_risp,
	created_at, updated_at`

func scanResult(row pgx.Row) (*models.GameResult, error) {
	var res models.GameResult
	err := row.Scan(
		&res.ID, &res.GameID, &res.HomeTeam, &res.AwayTeam, &res.HomeScore, &res.AwayScore,
		&res.HomeRecordAfter, &res.AwayRecordAfter,
		&res.HomeHits, &res.HomeErrors, &res.HomeLOB, &res.HomeRISP,
		&res.AwayHits, &res.AwayErrors, &res.AwayLOB, &res.AwayRISP,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// InsertTx inserts a companion result row inside an open transaction.
func (r *ResultRepository) InsertTx(ctx context.Context, tx pgx.Tx, res *models.GameResult) error {
	query := `
		INSERT INTO game_results (
			game_id, home_team, away_team, home_score, away_score,
			home_record_after, away_record_after
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(
		ctx, query,
		res.GameID, res.HomeTeam, res.AwayTeam, res.HomeScore, res.AwayScore,
		res.HomeRecordAfter, res.AwayRecordAfter,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}

	return nil
}

// Create inserts a companion result row outside a transaction.
func (r *ResultRepository) Create(ctx context.Context, res *models.GameResult) error {
	query := `
		INSERT INTO game_results (
			game_id, home_team, away_team, home_score, away_score,
			home_record_after, away_record_after
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		res.GameID, res.HomeTeam, res.AwayTeam, res.HomeScore, res.AwayScore,
		res.HomeRecordAfter, res.AwayRecordAfter,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game result: %w", err)
	}

	log.Debug().
		Int("game_id", res.GameID).
		Str("home", res.HomeTeam).
		Str("away", res.AwayTeam).
		Msg("Game result created")

	return nil
}

// GetByGameID retrieves the result row for a game.
// Returns (nil, nil) when the game has no result row yet.
func (r *ResultRepository) GetByGameID(ctx context.Context, gameID int) (*models.GameResult, error) {
	query := `SELECT` + resultColumns + ` FROM game_results WHERE game_id = $1`

	res, err := scanResult(r.db.Pool.QueryRow(ctx, query, gameID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game result: %w", err)
	}

	return res, nil
}

// UpdateScores keeps the result row's score fields in sync with the parent
// game. The game reference itself never changes.
func (r *ResultRepository) UpdateScores(ctx context.Context, gameID, homeScore, awayScore int) error {
	query := `
		UPDATE game_results
		SET home_score = $1, away_score = $2, updated_at = NOW()
		WHERE game_id = $3
	`

	result, err := r.db.Pool.Exec(ctx, query, homeScore, awayScore, gameID)
	if err != nil {
		return fmt.Errorf("failed to update game result scores: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game result not found: game_id=%d", gameID)
	}

	return nil
}

// ListForTeam retrieves every result referencing the team on either side,
// in descending game-date order. The parent game's date is carried on each
// row.
func (r *ResultRepository) ListForTeam(ctx context.Context, team string) ([]*models.GameResult, error) {
	query := `
		SELECT r.id, r.game_id, r.home_team, r.away_team, r.home_score, r.away_score,
		       r.home_record_after, r.away_record_after,
		       r.home_hits, r.home_errors, r.home_lob, r.home_risp,
		       r.away_hits, r.away_errors, r.away_lob, r.away_risp,
		       r.created_at, r.updated_at,
		       g.game_date
		FROM game_results r
		JOIN games g ON g.id = r.game_id
		WHERE r.home_team = $1 OR r.away_team = $1
		ORDER BY g.game_date DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for team: %w", err)
	}
	defer rows.Close()

	var results []*models.GameResult
	for rows.Next() {
		var res models.GameResult
		err := rows.Scan(
			&res.ID, &res.GameID, &res.HomeTeam, &res.AwayTeam, &res.HomeScore, &res.AwayScore,
			&res.HomeRecordAfter, &res.AwayRecordAfter,
			&res.HomeHits, &res.HomeErrors, &res.HomeLOB, &res.HomeRISP,
			&res.AwayHits, &res.AwayErrors, &res.AwayLOB, &res.AwayRISP,
			&res.CreatedAt, &res.UpdatedAt,
			&res.GameDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game results: %w", err)
	}

	return results, nil
}

// Count returns the total number of result rows
func (r *ResultRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM game_results`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count game results: %w", err)
	}

	return count, nil
}
