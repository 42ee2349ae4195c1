// Package datasource contains the HTTP collaborators that resolve team,
// market and weather features. The prediction core never calls any of them;
// they exist so callers can assemble a model request, and all of them supply
// plain numeric/JSON data.
package datasource

import "context"

// TeamRecord is basic team metadata from the college football data API.
type TeamRecord struct {
	School     string  `json:"school"`
	Mascot     string  `json:"mascot,omitempty"`
	Conference string  `json:"conference,omitempty"`
	Division   string  `json:"division,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
}

// GameLines is one book's betting lines for a single game.
type GameLines struct {
	Provider      string   `json:"provider"`
	Spread        *float64 `json:"spread,omitempty"`
	OverUnder     *float64 `json:"over_under,omitempty"`
	HomeMoneyline *float64 `json:"home_moneyline,omitempty"`
	AwayMoneyline *float64 `json:"away_moneyline,omitempty"`
}

// GameLineSet groups the lines quoted for one game.
type GameLineSet struct {
	HomeTeam string      `json:"home_team"`
	AwayTeam string      `json:"away_team"`
	Week     int         `json:"week"`
	Season   int         `json:"season"`
	Lines    []GameLines `json:"lines"`
}

// MatchupHistory is head-to-head history between two teams.
type MatchupHistory struct {
	Team1     string        `json:"team1"`
	Team2     string        `json:"team2"`
	StartYear int           `json:"start_year"`
	Games     []MatchupGame `json:"games"`
}

// MatchupGame is one historical meeting.
type MatchupGame struct {
	Season    int     `json:"season"`
	Week      int     `json:"week"`
	HomeTeam  string  `json:"home_team"`
	AwayTeam  string  `json:"away_team"`
	HomeScore float64 `json:"home_score"`
	AwayScore float64 `json:"away_score"`
}

// PowerRating is one team's power rating from an external ranking source.
type PowerRating struct {
	Team   string  `json:"team"`
	Rating float64 `json:"rating"`
	Rank   int     `json:"rank,omitempty"`
}

// WeatherObservation is a single point-in-time forecast sample.
type WeatherObservation struct {
	Time          string  `json:"time"`
	TemperatureC  float64 `json:"temperature_c"`
	WindMPH       float64 `json:"wind_mph"`
	WindGustMPH   float64 `json:"wind_gust_mph,omitempty"`
	Precipitation float64 `json:"precipitation_mm,omitempty"`
}

// TeamProvider resolves team metadata by school name.
type TeamProvider interface {
	Team(ctx context.Context, name string) (*TeamRecord, error)
}

// LinesProvider resolves betting lines for a team's game in a given week.
type LinesProvider interface {
	Lines(ctx context.Context, team string, year, week int) ([]GameLineSet, error)
}

// MatchupProvider resolves head-to-head history between two teams.
type MatchupProvider interface {
	Matchup(ctx context.Context, team1, team2 string, minYear int) (*MatchupHistory, error)
}

// PowerRatingsProvider resolves the current power rating table.
type PowerRatingsProvider interface {
	Ratings(ctx context.Context) ([]PowerRating, error)
}

// WeatherProvider resolves forecasts around a venue and kickoff time.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*WeatherObservation, error)
	KickoffWindow(ctx context.Context, lat, lon float64, kickoff string) (*WeatherObservation, error)
	HourlyWindow(ctx context.Context, lat, lon float64, start, end string) ([]WeatherObservation, error)
}
