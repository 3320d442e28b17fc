package models

import (
	"database/sql"
	"time"
)

// Outcome is the tracked team's win/loss classification for a finalized game.
type Outcome string

const (
	OutcomeWin     Outcome = "W"
	OutcomeLoss    Outcome = "L"
	OutcomeTie     Outcome = "T"
	OutcomePending Outcome = ""
)

// Finality describes how far along a game is.
type Finality string

const (
	FinalityScheduled  Finality = "Scheduled"
	FinalityInProgress Finality = "InProgress"
	FinalityFinal      Finality = "Final"
)

// FinalityFromState maps the provider's status state ("pre", "in", "post")
// to a Finality. Unknown states are treated as Scheduled.
func FinalityFromState(state string) Finality {
	switch state {
	case "post":
		return FinalityFinal
	case "in":
		return FinalityInProgress
	default:
		return FinalityScheduled
	}
}

// Game represents one scheduled or played contest for the tracked team.
// The external event id is assigned by the schedule provider and is
// immutable once stored.
type Game struct {
	ID       int       `db:"id"`
	EventID  string    `db:"event_id"`
	GameDate time.Time `db:"game_date"`
	HomeTeam string    `db:"home_team"`
	AwayTeam string    `db:"away_team"`

	HomeScore sql.NullInt32 `db:"home_score"`
	AwayScore sql.NullInt32 `db:"away_score"`

	Venue        sql.NullString `db:"venue"`
	Attendance   sql.NullInt32  `db:"attendance"`
	GameTime     sql.NullTime   `db:"game_time"`
	GameDuration sql.NullString `db:"game_duration"`

	ExtraInnings bool `db:"extra_innings"`
	NeutralSite  bool `db:"neutral_site"`
	IsFinal      bool `db:"is_final"`

	// Derived fields, computed once during reconciliation
	DayOfWeek  string         `db:"day_of_week"`
	NightGame  sql.NullBool   `db:"night_game"`
	GameResult sql.NullString `db:"game_result"`

	// Weather enrichment, null until a finalized game is enriched
	WeatherTemp       sql.NullInt32  `db:"weather_temp"`
	WeatherConditions sql.NullString `db:"weather_conditions"`
	WindSpeed         sql.NullInt32  `db:"wind_speed"`
	WindDirection     sql.NullString `db:"wind_direction"`
	Humidity          sql.NullInt32  `db:"humidity"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Outcome returns the stored outcome, OutcomePending when unset.
func (g *Game) Outcome() Outcome {
	if !g.GameResult.Valid {
		return OutcomePending
	}
	return Outcome(g.GameResult.String)
}

// Finality derives the lifecycle state from the stored flags.
func (g *Game) Finality() Finality {
	if g.IsFinal {
		return FinalityFinal
	}
	if g.HomeScore.Valid || g.AwayScore.Valid {
		return FinalityInProgress
	}
	return FinalityScheduled
}

// HasBothScores reports whether both sides have a reported score.
func (g *Game) HasBothScores() bool {
	return g.HomeScore.Valid && g.AwayScore.Valid
}

// GameResult mirrors a game's score and team-level box totals plus each
// side's cumulative record after the game. It is tracked independently of
// the Game row and may be populated at a different time; game_id never
// changes once the row exists.
type GameResult struct {
	ID        int    `db:"id"`
	GameID    int    `db:"game_id"`
	HomeTeam  string `db:"home_team"`
	AwayTeam  string `db:"away_team"`
	HomeScore int    `db:"home_score"`
	AwayScore int    `db:"away_score"`

	HomeRecordAfter sql.NullString `db:"home_record_after"`
	AwayRecordAfter sql.NullString `db:"away_record_after"`

	HomeHits   sql.NullInt32  `db:"home_hits"`
	HomeErrors sql.NullInt32  `db:"home_errors"`
	HomeLOB    sql.NullInt32  `db:"home_lob"`
	HomeRISP   sql.NullString `db:"home_risp"`

	AwayHits   sql.NullInt32  `db:"away_hits"`
	AwayErrors sql.NullInt32  `db:"away_errors"`
	AwayLOB    sql.NullInt32  `db:"away_lob"`
	AwayRISP   sql.NullString `db:"away_risp"`

	// GameDate is carried from the parent game for date-ordered reads.
	GameDate time.Time `db:"game_date"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TeamRecord is the aggregate win/loss projection computed from finalized
// results.
type TeamRecord struct {
	Wins       int        `json:"wins"`
	Losses     int        `json:"losses"`
	Ties       int        `json:"ties"`
	Record     string     `json:"record"`
	TotalGames int        `json:"total_games"`
	LastGame   *time.Time `json:"last_game,omitempty"`
}
