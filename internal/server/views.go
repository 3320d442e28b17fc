package server

import (
	"time"

	"mlbtrack/ingestion/internal/models"
)

// gameView is the JSON projection of a stored game. Nullable columns map
// to pointer fields so absent values serialize as null.
type gameView struct {
	EventID  string `json:"event_id"`
	GameDate string `json:"game_date"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`

	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`

	Venue        *string `json:"venue"`
	Attendance   *int    `json:"attendance"`
	GameTime     *string `json:"game_time"`
	GameDuration *string `json:"game_duration"`

	ExtraInnings bool `json:"extra_innings"`
	NeutralSite  bool `json:"neutral_site"`
	IsFinal      bool `json:"is_final"`

	DayOfWeek  string  `json:"day_of_week"`
	NightGame  *bool   `json:"night_game"`
	GameResult *string `json:"game_result"`

	WeatherTemp       *int    `json:"weather_temp"`
	WeatherConditions *string `json:"weather_conditions"`
	WindSpeed         *int    `json:"wind_speed"`
	WindDirection     *string `json:"wind_direction"`
	Humidity          *int    `json:"humidity"`
}

func newGameView(g *models.Game) gameView {
	v := gameView{
		EventID:      g.EventID,
		GameDate:     g.GameDate.Format("2006-01-02"),
		HomeTeam:     g.HomeTeam,
		AwayTeam:     g.AwayTeam,
		ExtraInnings: g.ExtraInnings,
		NeutralSite:  g.NeutralSite,
		IsFinal:      g.IsFinal,
		DayOfWeek:    g.DayOfWeek,
	}

	v.HomeScore = nullInt(g.HomeScore.Int32, g.HomeScore.Valid)
	v.AwayScore = nullInt(g.AwayScore.Int32, g.AwayScore.Valid)
	v.Venue = nullString(g.Venue.String, g.Venue.Valid)
	v.Attendance = nullInt(g.Attendance.Int32, g.Attendance.Valid)
	v.GameDuration = nullString(g.GameDuration.String, g.GameDuration.Valid)
	v.GameResult = nullString(g.GameResult.String, g.GameResult.Valid)
	v.WeatherTemp = nullInt(g.WeatherTemp.Int32, g.WeatherTemp.Valid)
	v.WeatherConditions = nullString(g.WeatherConditions.String, g.WeatherConditions.Valid)
	v.WindSpeed = nullInt(g.WindSpeed.Int32, g.WindSpeed.Valid)
	v.WindDirection = nullString(g.WindDirection.String, g.WindDirection.Valid)
	v.Humidity = nullInt(g.Humidity.Int32, g.Humidity.Valid)

	if g.GameTime.Valid {
		t := g.GameTime.Time.Format(time.Kitchen)
		v.GameTime = &t
	}
	if g.NightGame.Valid {
		b := g.NightGame.Bool
		v.NightGame = &b
	}

	return v
}

// resultView is the JSON projection of a companion result row.
type resultView struct {
	GameID    int    `json:"game_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`

	HomeRecordAfter *string `json:"home_record_after"`
	AwayRecordAfter *string `json:"away_record_after"`

	HomeHits   *int    `json:"home_hits"`
	HomeErrors *int    `json:"home_errors"`
	HomeLOB    *int    `json:"home_lob"`
	HomeRISP   *string `json:"home_risp"`

	AwayHits   *int    `json:"away_hits"`
	AwayErrors *int    `json:"away_errors"`
	AwayLOB    *int    `json:"away_lob"`
	AwayRISP   *string `json:"away_risp"`
}

func newResultView(res *models.GameResult) resultView {
	return resultView{
		GameID:          res.GameID,
		HomeTeam:        res.HomeTeam,
		AwayTeam:        res.AwayTeam,
		HomeScore:       res.HomeScore,
		AwayScore:       res.AwayScore,
		HomeRecordAfter: nullString(res.HomeRecordAfter.String, res.HomeRecordAfter.Valid),
		AwayRecordAfter: nullString(res.AwayRecordAfter.String, res.AwayRecordAfter.Valid),
		HomeHits:        nullInt(res.HomeHits.Int32, res.HomeHits.Valid),
		HomeErrors:      nullInt(res.HomeErrors.Int32, res.HomeErrors.Valid),
		HomeLOB:         nullInt(res.HomeLOB.Int32, res.HomeLOB.Valid),
		HomeRISP:        nullString(res.HomeRISP.String, res.HomeRISP.Valid),
		AwayHits:        nullInt(res.AwayHits.Int32, res.AwayHits.Valid),
		AwayErrors:      nullInt(res.AwayErrors.Int32, res.AwayErrors.Valid),
		AwayLOB:         nullInt(res.AwayLOB.Int32, res.AwayLOB.Valid),
		AwayRISP:        nullString(res.AwayRISP.String, res.AwayRISP.Valid),
	}
}

func nullInt(v int32, valid bool) *int {
	if !valid {
		return nil
	}
	i := int(v)
	return &i
}

func nullString(v string, valid bool) *string {
	if !valid {
		return nil
	}
	return &v
}
