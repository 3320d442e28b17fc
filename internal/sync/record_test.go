package sync

import (
	"testing"

	"mlbtrack/ingestion/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResultScoreFor(t *testing.T) {
	const team = "Los Angeles Dodgers"

	home := &models.GameResult{
		HomeTeam: team, AwayTeam: "Colorado Rockies",
		HomeScore: 9, AwayScore: 1,
	}
	us, them := resultScoreFor(team, home)
	assert.Equal(t, 9, us)
	assert.Equal(t, 1, them)

	away := &models.GameResult{
		HomeTeam: "Colorado Rockies", AwayTeam: team,
		HomeScore: 4, AwayScore: 6,
	}
	us, them = resultScoreFor(team, away)
	assert.Equal(t, 6, us)
	assert.Equal(t, 4, them)
}
