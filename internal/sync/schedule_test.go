package sync

import (
	"encoding/json"
	"testing"
	"time"

	"mlbtrack/ingestion/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTeams(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		away     string
		home     string
		wantErr  bool
	}{
		{"standard", "San Diego Padres at Los Angeles Dodgers", "San Diego Padres", "Los Angeles Dodgers", false},
		{"team name containing at", "Oakland Athletics at Los Angeles Dodgers", "Oakland Athletics", "Los Angeles Dodgers", false},
		{"extra whitespace", "  Chicago Cubs   at   New York Mets ", "Chicago Cubs", "New York Mets", false},
		{"no separator", "Los Angeles Dodgers vs San Diego Padres", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			away, home, err := extractTeams(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.away, away)
			assert.Equal(t, tt.home, home)
		})
	}
}

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-04-18T02:10Z", "2025-04-18"},
		{"2025-04-18T02:10:00Z", "2025-04-18"},
		{"2025-09-01", "2025-09-01"},
	}

	for _, tt := range tests {
		got, err := parseEventDate(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got.Format("2006-01-02"))
	}

	_, err := parseEventDate("April 18 2025")
	assert.Error(t, err)
}

func TestParseScheduleEvent(t *testing.T) {
	raw := `{
		"id": "401696183",
		"date": "2025-04-18T02:10Z",
		"name": "San Diego Padres at Los Angeles Dodgers",
		"competitions": [{
			"attendance": 52000,
			"neutralSite": false,
			"venue": {"fullName": "Dodger Stadium"},
			"status": {"period": 9, "type": {"state": "post"}},
			"competitors": [
				{"homeAway": "home", "score": {"value": 5}, "team": {"displayName": "Los Angeles Dodgers"}},
				{"homeAway": "away", "score": {"value": 3}, "team": {"displayName": "San Diego Padres"}}
			]
		}]
	}`

	var event client.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &event))

	game, err := parseScheduleEvent(event)
	require.NoError(t, err)

	assert.Equal(t, "401696183", game.EventID)
	assert.Equal(t, "2025-04-18", game.GameDate.Format("2006-01-02"))
	assert.Equal(t, "Los Angeles Dodgers", game.HomeTeam)
	assert.Equal(t, "San Diego Padres", game.AwayTeam)
	assert.Equal(t, "Friday", game.DayOfWeek)

	require.True(t, game.HomeScore.Valid)
	require.True(t, game.AwayScore.Valid)
	assert.Equal(t, int32(5), game.HomeScore.Int32)
	assert.Equal(t, int32(3), game.AwayScore.Int32)

	require.True(t, game.Venue.Valid)
	assert.Equal(t, "Dodger Stadium", game.Venue.String)
	require.True(t, game.Attendance.Valid)
	assert.Equal(t, int32(52000), game.Attendance.Int32)

	assert.True(t, game.IsFinal)
	assert.False(t, game.ExtraInnings)
	assert.False(t, game.NeutralSite)
	assert.False(t, game.NightGame.Valid, "night game flag is never inferred")
}

func TestParseScheduleEvent_ExtraInnings(t *testing.T) {
	event := client.Event{
		ID:   "401696200",
		Date: "2025-06-02T02:10Z",
		Name: "Colorado Rockies at Los Angeles Dodgers",
		Competitions: []client.Competition{{
			Status: &client.Status{Period: 11, Type: client.StatusType{State: "post"}},
		}},
	}

	game, err := parseScheduleEvent(event)
	require.NoError(t, err)
	assert.True(t, game.ExtraInnings)
}

func TestParseScheduleEvent_MissingFields(t *testing.T) {
	_, err := parseScheduleEvent(client.Event{Date: "2025-04-18", Name: "A at B"})
	assert.Error(t, err, "missing id")

	_, err = parseScheduleEvent(client.Event{ID: "1", Name: "A at B"})
	assert.Error(t, err, "missing date")

	_, err = parseScheduleEvent(client.Event{ID: "1", Date: "2025-04-18", Name: "Exhibition Game"})
	assert.Error(t, err, "unsplittable name")

	// Bare event with no competition block still parses.
	game, err := parseScheduleEvent(client.Event{ID: "2", Date: "2025-04-18", Name: "A at B"})
	require.NoError(t, err)
	assert.False(t, game.HomeScore.Valid)
	assert.False(t, game.Venue.Valid)
	assert.False(t, game.IsFinal)
}

func TestDedupeKey(t *testing.T) {
	date := time.Date(2025, time.April, 18, 0, 0, 0, 0, time.UTC)

	a, err := parseScheduleEvent(client.Event{ID: "1", Date: "2025-04-18", Name: "San Diego Padres at Los Angeles Dodgers"})
	require.NoError(t, err)
	b, err := parseScheduleEvent(client.Event{ID: "2", Date: "2025-04-18", Name: "San Diego Padres at Los Angeles Dodgers"})
	require.NoError(t, err)

	assert.Equal(t, date, a.GameDate)
	assert.Equal(t, dedupeKey(a), dedupeKey(b), "distinct ids, same matchup and date")

	// Reversed home/away on the same date is a different game.
	c, err := parseScheduleEvent(client.Event{ID: "3", Date: "2025-04-18", Name: "Los Angeles Dodgers at San Diego Padres"})
	require.NoError(t, err)
	assert.NotEqual(t, dedupeKey(a), dedupeKey(c))
}

func TestPreseasonMonthExclusion(t *testing.T) {
	game, err := parseScheduleEvent(client.Event{ID: "1", Date: "2025-03-15", Name: "Los Angeles Dodgers at Chicago Cubs"})
	require.NoError(t, err)
	assert.Equal(t, preseasonMonth, game.GameDate.Month())

	regular, err := parseScheduleEvent(client.Event{ID: "2", Date: "2025-04-01", Name: "Los Angeles Dodgers at Chicago Cubs"})
	require.NoError(t, err)
	assert.NotEqual(t, preseasonMonth, regular.GameDate.Month())
}

func TestBuildGameResult(t *testing.T) {
	raw := `{
		"id": "401696183",
		"date": "2025-04-18T02:10Z",
		"name": "San Diego Padres at Los Angeles Dodgers",
		"competitions": [{
			"status": {"period": 9, "type": {"state": "post"}},
			"competitors": [
				{"homeAway": "home", "score": {"value": 5}, "team": {"displayName": "Los Angeles Dodgers"},
				 "record": [{"type": "total", "displayValue": "12-8"}]},
				{"homeAway": "away", "score": {"value": 3}, "team": {"displayName": "San Diego Padres"},
				 "record": [{"type": "home", "displayValue": "6-4"}, {"type": "total", "displayValue": "11-9"}]}
			]
		}]
	}`

	var event client.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &event))

	game, err := parseScheduleEvent(event)
	require.NoError(t, err)

	res := buildGameResult(game, event)
	require.NotNil(t, res)
	assert.Equal(t, 5, res.HomeScore)
	assert.Equal(t, 3, res.AwayScore)
	require.True(t, res.HomeRecordAfter.Valid)
	assert.Equal(t, "12-8", res.HomeRecordAfter.String)
	require.True(t, res.AwayRecordAfter.Valid)
	assert.Equal(t, "11-9", res.AwayRecordAfter.String, "only the total record entry counts")

	// No competitor breakdown means no companion row.
	bare := client.Event{ID: "2", Date: "2025-04-18", Name: "A at B"}
	bareGame, err := parseScheduleEvent(bare)
	require.NoError(t, err)
	assert.Nil(t, buildGameResult(bareGame, bare))
}

func TestBuildGameResult_OnlyFinalGames(t *testing.T) {
	event := client.Event{
		ID:   "401696190",
		Date: "2025-07-01T02:10Z",
		Name: "San Francisco Giants at Los Angeles Dodgers",
		Competitions: []client.Competition{{
			Status: &client.Status{Period: 5, Type: client.StatusType{State: "in"}},
			Competitors: []client.Competitor{
				{HomeAway: "home", Score: scoreOf(2)},
				{HomeAway: "away", Score: scoreOf(1)},
			},
		}},
	}

	game, err := parseScheduleEvent(event)
	require.NoError(t, err)
	assert.Nil(t, buildGameResult(game, event), "in-progress games get no companion row")
}

func scoreOf(v int) client.ScoreValue {
	return client.ScoreValue{Value: &v}
}
