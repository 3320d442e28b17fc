package models

import "fmt"

// WeatherObservation is a reduction of an hourly weather series into a
// single summary for the window around a game's start time. It is not
// persisted as its own entity; its fields are copied onto the Game row.
type WeatherObservation struct {
	Temperature   int    `json:"temperature"`
	Conditions    string `json:"conditions"`
	WindSpeed     int    `json:"wind_speed"`
	WindDirection string `json:"wind_direction"`
	Humidity      int    `json:"humidity"`
}

// Summary returns a short display string for the observation.
func (w *WeatherObservation) Summary() string {
	return fmt.Sprintf("%d°F, %s, Wind: %d mph", w.Temperature, w.Conditions, w.WindSpeed)
}
