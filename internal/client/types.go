package client

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Event payloads from the schedule and scoreboard endpoints share one id
// space and mostly the same shape. The provider is untrusted: every field
// is optional and shapes drift, so all access must tolerate absence.

// ScheduleResponse is the season schedule listing for one team.
type ScheduleResponse struct {
	Events []Event `json:"events"`
}

// ScoreboardResponse is the league-wide list of currently tracked events.
type ScoreboardResponse struct {
	Events []Event `json:"events"`
}

// Event is a single game as reported by the provider.
type Event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Name         string        `json:"name"`
	Competitions []Competition `json:"competitions"`
	Status       *Status       `json:"status,omitempty"`
}

// Competition returns the event's first competition, or nil.
func (e *Event) Competition() *Competition {
	if len(e.Competitions) == 0 {
		return nil
	}
	return &e.Competitions[0]
}

// Competition carries the competitor breakdown and venue metadata.
type Competition struct {
	Competitors  []Competitor `json:"competitors"`
	Venue        *EventVenue  `json:"venue,omitempty"`
	Attendance   *int         `json:"attendance,omitempty"`
	GameDuration string       `json:"gameDuration,omitempty"`
	NeutralSite  bool         `json:"neutralSite,omitempty"`
	StartDate    string       `json:"startDate,omitempty"`
	Status       *Status      `json:"status,omitempty"`
}

// Competitor finds the side with the given homeAway value ("home"/"away").
func (c *Competition) Competitor(side string) *Competitor {
	for i := range c.Competitors {
		if c.Competitors[i].HomeAway == side {
			return &c.Competitors[i]
		}
	}
	return nil
}

// State returns the competition status state ("pre", "in", "post"),
// "" when absent.
func (c *Competition) State() string {
	if c.Status == nil {
		return ""
	}
	return c.Status.Type.State
}

// Period returns the competition period, 0 when absent.
func (c *Competition) Period() int {
	if c.Status == nil {
		return 0
	}
	return c.Status.Period
}

// Status is the competition/event status block.
type Status struct {
	Period int        `json:"period,omitempty"`
	Type   StatusType `json:"type"`
}

// StatusType holds the state string; "post" denotes finality.
type StatusType struct {
	State string `json:"state,omitempty"`
}

// EventVenue is the venue block attached to a competition.
type EventVenue struct {
	FullName string `json:"fullName,omitempty"`
}

// Competitor is one side of a competition.
type Competitor struct {
	HomeAway string        `json:"homeAway,omitempty"`
	Score    ScoreValue    `json:"score,omitempty"`
	Team     CompetitorRef `json:"team"`
	Records  []RecordEntry `json:"record,omitempty"`
}

// TotalRecord returns the competitor's cumulative record display string
// (the entry with type "total"), or "".
func (c *Competitor) TotalRecord() string {
	for _, r := range c.Records {
		if r.Type == "total" {
			return r.DisplayValue
		}
	}
	return ""
}

// CompetitorRef is the team reference on a competitor.
type CompetitorRef struct {
	DisplayName string `json:"displayName,omitempty"`
}

// RecordEntry is one cumulative-record entry on a competitor.
type RecordEntry struct {
	Type         string `json:"type,omitempty"`
	DisplayValue string `json:"displayValue,omitempty"`
}

// ScoreValue absorbs the provider's score shape drift: scores arrive as an
// object {"value": 5, "displayValue": "5"}, a bare number, or a quoted
// string depending on endpoint and season. An unparseable score decodes as
// absent rather than failing the whole event.
type ScoreValue struct {
	Value *int
}

// Int returns the score and whether it was present.
func (s ScoreValue) Int() (int, bool) {
	if s.Value == nil {
		return 0, false
	}
	return *s.Value, true
}

func (s *ScoreValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			Value *float64 `json:"value"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		if obj.Value != nil {
			v := int(*obj.Value)
			s.Value = &v
		}
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		if v, err := strconv.Atoi(str); err == nil {
			s.Value = &v
		}
	default:
		var num float64
		if err := json.Unmarshal(data, &num); err != nil {
			return nil
		}
		v := int(num)
		s.Value = &v
	}

	return nil
}

func (s ScoreValue) MarshalJSON() ([]byte, error) {
	if s.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*s.Value)
}
