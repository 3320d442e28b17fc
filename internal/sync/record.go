package sync

import (
	"context"
	"fmt"

	"mlbtrack/ingestion/internal/models"
)

// Record aggregates the tracked team's win/loss record from the stored
// result rows, which exist only for finalized games. Ties are counted
// but left out of the display string, matching how the sport reports
// standings. An empty store yields a zero record, not an error.
func (e *Engine) Record(ctx context.Context) (*models.TeamRecord, error) {
	results, err := e.db.Results.ListForTeam(ctx, e.team)
	if err != nil {
		return nil, err
	}

	rec := &models.TeamRecord{}
	for _, res := range results {
		us, them := resultScoreFor(e.team, res)
		switch {
		case us > them:
			rec.Wins++
		case us < them:
			rec.Losses++
		default:
			rec.Ties++
		}
		rec.TotalGames++

		if rec.LastGame == nil || res.GameDate.After(*rec.LastGame) {
			d := res.GameDate
			rec.LastGame = &d
		}
	}

	rec.Record = fmt.Sprintf("%d-%d", rec.Wins, rec.Losses)
	return rec, nil
}

// resultScoreFor orients a result's score line to the tracked team's
// perspective.
func resultScoreFor(team string, res *models.GameResult) (us, them int) {
	if res.HomeTeam == team {
		return res.HomeScore, res.AwayScore
	}
	return res.AwayScore, res.HomeScore
}
