package models

import (
	"database/sql"
	"time"
)

// Venue is a stadium the tracked team may play at. Coordinates are
// read-only inputs to weather lookups.
type Venue struct {
	ID      int    `db:"id"`
	Name    string `db:"name"`
	City    string `db:"city"`
	State   string `db:"state"`
	Country string `db:"country"`

	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`

	Capacity    sql.NullInt32  `db:"capacity"`
	SurfaceType sql.NullString `db:"surface_type"`
	RoofType    sql.NullString `db:"roof_type"`
	PrimaryTeam sql.NullString `db:"primary_team"`
	League      string         `db:"league"`
	IsActive    bool           `db:"is_active"`
	OpenedYear  sql.NullInt32  `db:"opened_year"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SeedVenue is one entry of the static venue directory used by Seed.
type SeedVenue struct {
	Name        string
	City        string
	State       string
	Country     string
	Latitude    float64
	Longitude   float64
	PrimaryTeam string
	Capacity    int
	SurfaceType string
	RoofType    string
	OpenedYear  int
}

// MLBVenues is the authoritative seed list of current MLB stadiums with
// geocoordinates.
var MLBVenues = []SeedVenue{
	{Name: "Dodger Stadium", City: "Los Angeles", State: "CA", Latitude: 34.0739, Longitude: -118.2400, PrimaryTeam: "Los Angeles Dodgers", Capacity: 56000, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 1962},
	{Name: "Petco Park", City: "San Diego", State: "CA", Latitude: 32.7075, Longitude: -117.1570, PrimaryTeam: "San Diego Padres", Capacity: 40162, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2004},
	{Name: "Oracle Park", City: "San Francisco", State: "CA", Latitude: 37.7786, Longitude: -122.3893, PrimaryTeam: "San Francisco Giants", Capacity: 41915, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2000},
	{Name: "Chase Field", City: "Phoenix", State: "AZ", Latitude: 33.4454, Longitude: -112.0669, PrimaryTeam: "Arizona Diamondbacks", Capacity: 48405, SurfaceType: "Grass", RoofType: "Retractable", OpenedYear: 1998},
	{Name: "Coors Field", City: "Denver", State: "CO", Latitude: 39.7562, Longitude: -104.9941, PrimaryTeam: "Colorado Rockies", Capacity: 50144, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 1995},
	{Name: "Minute Maid Park", City: "Houston", State: "TX", Latitude: 29.7569, Longitude: -95.3550, PrimaryTeam: "Houston Astros", Capacity: 41168, SurfaceType: "Grass", RoofType: "Retractable", OpenedYear: 2000},
	{Name: "Globe Life Field", City: "Arlington", State: "TX", Latitude: 32.7511, Longitude: -97.0827, PrimaryTeam: "Texas Rangers", Capacity: 40300, SurfaceType: "Grass", RoofType: "Retractable", OpenedYear: 2020},
	{Name: "Truist Park", City: "Atlanta", State: "GA", Latitude: 33.8904, Longitude: -84.4679, PrimaryTeam: "Atlanta Braves", Capacity: 41084, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2017},
	{Name: "American Family Field", City: "Milwaukee", State: "WI", Latitude: 43.0284, Longitude: -87.9711, PrimaryTeam: "Milwaukee Brewers", Capacity: 41900, SurfaceType: "Grass", RoofType: "Retractable", OpenedYear: 2001},
	{Name: "Wrigley Field", City: "Chicago", State: "IL", Latitude: 41.9484, Longitude: -87.6553, PrimaryTeam: "Chicago Cubs", Capacity: 41649, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 1914},
	{Name: "Guaranteed Rate Field", City: "Chicago", State: "IL", Latitude: 41.8300, Longitude: -87.6338, PrimaryTeam: "Chicago White Sox", Capacity: 40615, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 1991},
	{Name: "Comerica Park", City: "Detroit", State: "MI", Latitude: 42.3390, Longitude: -83.0485, PrimaryTeam: "Detroit Tigers", Capacity: 41083, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2000},
	{Name: "Progressive Field", City: "Cleveland", State: "OH", Latitude: 41.4962, Longitude: -81.6852, PrimaryTeam: "Cleveland Guardians", Capacity: 34530, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 1994},
	{Name: "Target Field", City: "Minneapolis", State: "MN", Latitude: 44.9817, Longitude: -93.2773, PrimaryTeam: "Minnesota Twins", Capacity: 38544, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2010},
	{Name: "Kauffman Stadium", City: "Kansas City", State: "MO", Latitude: 39.0511, Longitude: -94.4806, PrimaryTeam: "Kansas City Royals", Capacity: 37903, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 1973},
	{Name: "Fenway Park", City: "Boston", State: "MA", Latitude: 42.3467, Longitude: -71.0972, PrimaryTeam: "Boston Red Sox", Capacity: 37155, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 1912},
	{Name: "Yankee Stadium", City: "New York", State: "NY", Latitude: 40.8296, Longitude: -73.9262, PrimaryTeam: "New York Yankees", Capacity: 46537, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2009},
	{Name: "Citi Field", City: "New York", State: "NY", Latitude: 40.7569, Longitude: -73.8458, PrimaryTeam: "New York Mets", Capacity: 41922, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2009},
	{Name: "Citizens Bank Park", City: "Philadelphia", State: "PA", Latitude: 39.9059, Longitude: -75.1666, PrimaryTeam: "Philadelphia Phillies", Capacity: 42792, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2004},
	{Name: "Nationals Park", City: "Washington", State: "DC", Latitude: 38.8730, Longitude: -77.0074, PrimaryTeam: "Washington Nationals", Capacity: 41339, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2008},
	{Name: "Oriole Park at Camden Yards", City: "Baltimore", State: "MD", Latitude: 39.2839, Longitude: -76.6217, PrimaryTeam: "Baltimore Orioles", Capacity: 45971, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 1992},
	{Name: "Rogers Centre", City: "Toronto", State: "ON", Country: "Canada", Latitude: 43.6414, Longitude: -79.3891, PrimaryTeam: "Toronto Blue Jays", Capacity: 49282, SurfaceType: "Turf", RoofType: "Retractable", OpenedYear: 1989},
	{Name: "Tropicana Field", City: "St. Petersburg", State: "FL", Latitude: 27.7682, Longitude: -82.6534, PrimaryTeam: "Tampa Bay Rays", Capacity: 25000, SurfaceType: "Turf", RoofType: "Fixed", OpenedYear: 1990},
	{Name: "loanDepot Park", City: "Miami", State: "FL", Latitude: 25.7780, Longitude: -80.2196, PrimaryTeam: "Miami Marlins", Capacity: 36742, SurfaceType: "Grass", RoofType: "Retractable", OpenedYear: 2012},
	{Name: "PNC Park", City: "Pittsburgh", State: "PA", Latitude: 40.4469, Longitude: -80.0058, PrimaryTeam: "Pittsburgh Pirates", Capacity: 38747, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2001},
	{Name: "Great American Ball Park", City: "Cincinnati", State: "OH", Latitude: 39.0979, Longitude: -84.5082, PrimaryTeam: "Cincinnati Reds", Capacity: 43431, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2003},
	{Name: "Busch Stadium", City: "St. Louis", State: "MO", Latitude: 38.6226, Longitude: -90.1928, PrimaryTeam: "St. Louis Cardinals", Capacity: 45494, SurfaceType: "Grass", RoofType: "Open", OpenedYear: 2006},
}
