package reports

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbastats/pkg/contracts/domain"
)

func sampleReport() domain.AnalysisReport {
	return domain.AnalysisReport{
		RunID:       "run-42",
		Source:      "NBA_Player_Stats.csv",
		GeneratedAt: time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC),
		Preview:     [][]string{{"Player", "Tm"}, {"James Harden", "HOU"}},
		Columns: []domain.ColumnSummary{
			{Name: "Player", Type: "string", Count: 2},
			{Name: "PTS", Type: "int", Count: 2, Numeric: true, Mean: 2150, Std: 212.13, Min: 2000, Max: 2300},
		},
		Cleaning: domain.CleanSummary{InputRows: 8, KeptRows: 6, DroppedRows: 2,
			Reasons: map[string]int{"PTS:missing": 1, "G:non_positive": 1}},
		Overview: domain.DatasetOverview{Records: 6, UniquePlayers: 4, Teams: 4, FirstYear: 2018, LastYear: 2018},
		TopScorers: []domain.ScorerEntry{
			{Rank: 1, Label: "LeBron James", Player: "LeBron James", Team: "LAL", Year: 2018, Points: 2300, Games: 92, Minutes: 3000},
		},
		Scoring: domain.ScoringInsights{Highest: 2300, Mean: 2300, Lowest: 2300},
		Teams: []domain.TeamAggregate{
			{Rank: 1, Team: "HOU", AvgPPG: 22.5, Players: 2, TotalPoints: 3100, AvgGames: 67.5},
		},
		TeamInsights: domain.TeamInsights{
			Highest:       domain.TeamAggregate{Team: "HOU", AvgPPG: 22.5},
			Lowest:        domain.TeamAggregate{Team: "HOU", AvgPPG: 22.5},
			MeanAcross:    22.5,
			TeamsAnalyzed: 1,
		},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleReport()))
	out := buf.String()

	for _, want := range []string{
		"NBA PLAYER STATISTICS ANALYSIS",
		"Run: run-42",
		"Generated: 2018-06-01 12:00:00",
		"DATASET PREVIEW",
		"James Harden",
		"COLUMN PROFILE",
		"2150.00",
		"Rows removed: 2",
		"  G:non_positive: 1\n  PTS:missing: 1",
		"Highest scoring season: 2300.0 points",
		"Average among top 1: 2300.0 points",
		"Highest scoring team: HOU (22.50 PPG)",
		"Total teams analyzed: 1",
		"Years covered: 2018 to 2018",
		"Top scorer: LeBron James (LAL, 2018) with 2300 points",
		"Best offensive team: HOU (22.50 avg PPG per player, 2 players)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteSummary_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, domain.AnalysisReport{}))
	out := buf.String()

	assert.Contains(t, out, "No players to rank")
	assert.Contains(t, out, "No teams to rank")
	assert.NotContains(t, out, "DATASET PREVIEW")
	assert.NotContains(t, out, "Years covered")
	assert.NotContains(t, out, "Top scorer")
}

func TestSaveSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "analysis_summary.txt")
	require.NoError(t, SaveSummary(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sampleReport()))
	assert.Equal(t, buf.String(), string(data))
}
