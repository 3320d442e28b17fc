package models

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalityFromState(t *testing.T) {
	assert.Equal(t, FinalityFinal, FinalityFromState("post"))
	assert.Equal(t, FinalityInProgress, FinalityFromState("in"))
	assert.Equal(t, FinalityScheduled, FinalityFromState("pre"))
	assert.Equal(t, FinalityScheduled, FinalityFromState(""))
	assert.Equal(t, FinalityScheduled, FinalityFromState("halftime"))
}

func TestGameFinality(t *testing.T) {
	var g Game
	assert.Equal(t, FinalityScheduled, g.Finality())

	g.HomeScore = sql.NullInt32{Int32: 2, Valid: true}
	assert.Equal(t, FinalityInProgress, g.Finality())

	g.IsFinal = true
	assert.Equal(t, FinalityFinal, g.Finality())
}

func TestGameOutcome(t *testing.T) {
	var g Game
	assert.Equal(t, OutcomePending, g.Outcome())

	g.GameResult = sql.NullString{String: "W", Valid: true}
	assert.Equal(t, OutcomeWin, g.Outcome())
}

func TestGameHasBothScores(t *testing.T) {
	var g Game
	assert.False(t, g.HasBothScores())

	g.HomeScore = sql.NullInt32{Int32: 3, Valid: true}
	assert.False(t, g.HasBothScores(), "one score is not enough")

	g.AwayScore = sql.NullInt32{Int32: 0, Valid: true}
	assert.True(t, g.HasBothScores(), "zero is a reported score")
}

func TestWeatherObservationSummary(t *testing.T) {
	obs := WeatherObservation{Temperature: 72, Conditions: "Clear", WindSpeed: 6}
	assert.Equal(t, "72°F, Clear, Wind: 6 mph", obs.Summary())
}
