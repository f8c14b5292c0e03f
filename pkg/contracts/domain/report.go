package domain

import "time"

// ChartSpec is what a renderer needs to draw one labelled bar chart.
type ChartSpec struct {
	Title   string        `json:"title"`
	XLabel  string        `json:"x_label"`
	YLabel  string        `json:"y_label"`
	Entries []RankedEntry `json:"entries"`
}

// ColumnSummary is the describe-style profile of one column.
type ColumnSummary struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Count   int     `json:"count"`
	Nulls   int     `json:"nulls"`
	Numeric bool    `json:"numeric"`
	Mean    float64 `json:"mean,omitempty"`
	Std     float64 `json:"std,omitempty"`
	Min     float64 `json:"min,omitempty"`
	Max     float64 `json:"max,omitempty"`
}

// DatasetOverview counts what the cleaned table covers.
type DatasetOverview struct {
	Records       int `json:"records"`
	UniquePlayers int `json:"unique_players"`
	Teams         int `json:"teams"`
	FirstYear     int `json:"first_year,omitempty"`
	LastYear      int `json:"last_year,omitempty"`
}

// CleanSummary records how many rows the cleaner dropped and why.
type CleanSummary struct {
	InputRows   int            `json:"input_rows"`
	KeptRows    int            `json:"kept_rows"`
	DroppedRows int            `json:"dropped_rows"`
	Reasons     map[string]int `json:"reasons,omitempty"`
}

// AnalysisReport is the full result of one pipeline run.
type AnalysisReport struct {
	RunID        string          `json:"run_id"`
	Source       string          `json:"source"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Columns      []ColumnSummary `json:"columns"`
	Preview      [][]string      `json:"preview,omitempty"`
	Cleaning     CleanSummary    `json:"cleaning"`
	Overview     DatasetOverview `json:"overview"`
	TopScorers   []ScorerEntry   `json:"top_scorers"`
	Scoring      ScoringInsights `json:"scoring_insights"`
	Teams        []TeamAggregate `json:"teams"`
	TeamInsights TeamInsights    `json:"team_insights"`
	Chart        ChartSpec       `json:"chart"`
	Artifacts    []string        `json:"artifacts,omitempty"`
}
