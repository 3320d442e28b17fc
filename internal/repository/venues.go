package repository

import (
	"context"
	"errors"
	"fmt"

	"mlbtrack/ingestion/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// VenueRepository handles venue database operations
type VenueRepository struct {
	db *Database
}

const venueColumns = `
	id, name, city, state, country, latitude, longitude,
	capacity, surface_type, roof_type, primary_team, league, is_active, opened_year,
	created_at, updated_at`

func scanVenue(row pgx.Row) (*models.Venue, error) {
	var v models.Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Country, &v.Latitude, &v.Longitude,
		&v.Capacity, &v.SurfaceType, &v.RoofType, &v.PrimaryTeam, &v.League, &v.IsActive, &v.OpenedYear,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Resolve maps a free-text venue name to a directory record. Resolution
// order: exact name match, then a directory name contained in the query,
// then the query contained in a directory name. Within a rule the lowest id
// wins, which keeps iteration order deterministic. Returns (nil, nil) for
// an empty query or when no rule matches; callers treat that as
// "enrichment skipped".
func (r *VenueRepository) Resolve(ctx context.Context, name string) (*models.Venue, error) {
	if name == "" {
		return nil, nil
	}

	queries := []struct {
		rule string
		sql  string
	}{
		{"exact", `SELECT` + venueColumns + ` FROM venues WHERE name = $1 ORDER BY id LIMIT 1`},
		{"name_in_query", `SELECT` + venueColumns + ` FROM venues WHERE $1 LIKE '%' || name || '%' ORDER BY id LIMIT 1`},
		{"query_in_name", `SELECT` + venueColumns + ` FROM venues WHERE name LIKE '%' || $1 || '%' ORDER BY id LIMIT 1`},
	}

	for _, q := range queries {
		venue, err := scanVenue(r.db.Pool.QueryRow(ctx, q.sql, name))
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve venue: %w", err)
		}

		log.Debug().
			Str("query", name).
			Str("venue", venue.Name).
			Str("rule", q.rule).
			Msg("Venue resolved")
		return venue, nil
	}

	return nil, nil
}

// GetByName retrieves a venue by exact name.
// Returns (nil, nil) when no venue matches.
func (r *VenueRepository) GetByName(ctx context.Context, name string) (*models.Venue, error) {
	query := `SELECT` + venueColumns + ` FROM venues WHERE name = $1`

	venue, err := scanVenue(r.db.Pool.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	return venue, nil
}

// Seed populates the venue directory from the static seed list. Existing
// names are left untouched, so repeated runs add nothing.
func (r *VenueRepository) Seed(ctx context.Context) (int, error) {
	query := `
		INSERT INTO venues (
			name, city, state, country, latitude, longitude,
			capacity, surface_type, roof_type, primary_team, opened_year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (name) DO NOTHING
	`

	added := 0
	for _, sv := range models.MLBVenues {
		country := sv.Country
		if country == "" {
			country = "USA"
		}

		result, err := r.db.Pool.Exec(ctx, query,
			sv.Name, sv.City, sv.State, country, sv.Latitude, sv.Longitude,
			sv.Capacity, sv.SurfaceType, sv.RoofType, sv.PrimaryTeam, sv.OpenedYear,
		)
		if err != nil {
			return added, fmt.Errorf("failed to seed venue %q: %w", sv.Name, err)
		}

		if result.RowsAffected() > 0 {
			added++
			log.Debug().Str("venue", sv.Name).Msg("Venue seeded")
		}
	}

	log.Info().Int("added", added).Int("total", len(models.MLBVenues)).Msg("Venue directory seeded")
	return added, nil
}

// Count returns the total number of venues
func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM venues`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}

	return count, nil
}
