package domain

// RankedEntry is a (label, value) pair produced by an aggregator.
// Slices of RankedEntry are ordered for presentation.
type RankedEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// SortOrder selects the ranking direction.
type SortOrder int

const (
	// Descending ranks the largest value first
	Descending SortOrder = iota
	// Ascending ranks the smallest value first
	Ascending
)

// String returns the order name
func (o SortOrder) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// TeamAggregate summarises one team. AvgPPG is the mean of the per-player
// points-per-game values, every player weighted equally.
type TeamAggregate struct {
	Rank        int     `json:"rank"`
	Team        string  `json:"team"`
	AvgPPG      float64 `json:"avg_ppg_per_player"`
	Players     int     `json:"total_players"`
	TotalPoints int     `json:"total_points"`
	AvgGames    float64 `json:"avg_games_played"`
}

// Entry converts the aggregate into its ranked form.
func (t TeamAggregate) Entry() RankedEntry {
	return RankedEntry{Label: t.Team, Value: t.AvgPPG}
}

// ScorerEntry is one line of the top scorers table.
type ScorerEntry struct {
	Rank    int     `json:"rank"`
	Label   string  `json:"label"`
	Player  string  `json:"player"`
	Team    string  `json:"team"`
	Year    int     `json:"year,omitempty"`
	Points  int     `json:"points"`
	Games   int     `json:"games"`
	Minutes float64 `json:"minutes,omitempty"`
}

// Entry converts the scorer into its ranked form.
func (s ScorerEntry) Entry() RankedEntry {
	return RankedEntry{Label: s.Label, Value: float64(s.Points)}
}

// ScoringInsights describes the points distribution among the top scorers.
type ScoringInsights struct {
	Highest float64 `json:"highest"`
	Mean    float64 `json:"mean"`
	Lowest  float64 `json:"lowest"`
}

// TeamInsights describes the spread of team averages.
type TeamInsights struct {
	Highest       TeamAggregate `json:"highest"`
	Lowest        TeamAggregate `json:"lowest"`
	MeanAcross    float64       `json:"mean_across_teams"`
	TeamsAnalyzed int           `json:"teams_analyzed"`
}
