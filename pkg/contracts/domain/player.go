package domain

import "fmt"

// Well-known column names of the player-season dataset
const (
	ColumnPlayer  = "Player"
	ColumnTeam    = "Tm"
	ColumnYear    = "Year"
	ColumnGames   = "G"
	ColumnPoints  = "PTS"
	ColumnMinutes = "MP"
)

// TradedTeamCode is the pseudo team used by the data source for a traded
// player's combined season line.
const TradedTeamCode = "TOT"

// PlayerSeason is one player's statistics for one team-season.
//
// Year is 0 when the dataset carries no season column. Minutes is 0 when
// the MP column is absent. Extra carries every other column as text, keyed
// by header name, so nothing read from the source is lost.
type PlayerSeason struct {
	Player  string            `json:"player" validate:"required"`
	Team    string            `json:"team" validate:"required"`
	Year    int               `json:"year,omitempty"`
	Games   int               `json:"games" validate:"min=0"`
	Points  int               `json:"points" validate:"min=0"`
	Minutes float64           `json:"minutes,omitempty"`
	Extra   map[string]string `json:"extra,omitempty"`
}

// PPG returns points per game and false when games played is zero.
func (p PlayerSeason) PPG() (float64, bool) {
	if p.Games <= 0 {
		return 0, false
	}
	return float64(p.Points) / float64(p.Games), true
}

// IsTradedTotal reports whether the row is the combined line of a player
// who appeared for more than one team in the season.
func (p PlayerSeason) IsTradedTotal() bool {
	return p.Team == TradedTeamCode
}

// SeasonKey identifies the player-season independent of team.
func (p PlayerSeason) SeasonKey() string {
	return fmt.Sprintf("%s|%d", p.Player, p.Year)
}
