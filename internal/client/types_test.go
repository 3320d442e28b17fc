package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreValue_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		present bool
	}{
		{"object form", `{"value": 5, "displayValue": "5"}`, 5, true},
		{"object without value", `{"displayValue": "5"}`, 0, false},
		{"bare number", `7`, 7, true},
		{"float number", `7.0`, 7, true},
		{"quoted string", `"3"`, 3, true},
		{"non-numeric string", `"N/A"`, 0, false},
		{"null", `null`, 0, false},
		{"garbage object", `{"value": "x"}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ScoreValue
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s), "score drift never errors")
			v, ok := s.Int()
			assert.Equal(t, tt.present, ok)
			if tt.present {
				assert.Equal(t, tt.want, v)
			}
		})
	}
}

func TestScoreValue_Marshal(t *testing.T) {
	v := 4
	data, err := json.Marshal(ScoreValue{Value: &v})
	require.NoError(t, err)
	assert.Equal(t, "4", string(data))

	data, err = json.Marshal(ScoreValue{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestCompetitionHelpers(t *testing.T) {
	comp := Competition{
		Competitors: []Competitor{
			{HomeAway: "away", Team: CompetitorRef{DisplayName: "San Diego Padres"}},
			{HomeAway: "home", Team: CompetitorRef{DisplayName: "Los Angeles Dodgers"}},
		},
		Status: &Status{Period: 9, Type: StatusType{State: "post"}},
	}

	home := comp.Competitor("home")
	require.NotNil(t, home)
	assert.Equal(t, "Los Angeles Dodgers", home.Team.DisplayName)
	assert.Nil(t, comp.Competitor("neutral"))

	assert.Equal(t, "post", comp.State())
	assert.Equal(t, 9, comp.Period())

	inProgress := Competition{Status: &Status{Type: StatusType{State: "in"}}}
	assert.Equal(t, "in", inProgress.State())

	var noStatus Competition
	assert.Empty(t, noStatus.State())
	assert.Equal(t, 0, noStatus.Period())
}

func TestEventCompetition(t *testing.T) {
	var empty Event
	assert.Nil(t, empty.Competition())

	event := Event{Competitions: []Competition{{NeutralSite: true}}}
	comp := event.Competition()
	require.NotNil(t, comp)
	assert.True(t, comp.NeutralSite)
}

func TestCompetitorTotalRecord(t *testing.T) {
	c := Competitor{Records: []RecordEntry{
		{Type: "home", DisplayValue: "6-4"},
		{Type: "total", DisplayValue: "12-8"},
	}}
	assert.Equal(t, "12-8", c.TotalRecord())

	assert.Empty(t, (&Competitor{}).TotalRecord())
}
