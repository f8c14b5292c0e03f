package reports

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	apperrors "nbastats/internal/errors"
	"nbastats/pkg/contracts/domain"
)

const rule = "============================================================"

// SaveSummary writes the summary report to path
func SaveSummary(path string, report domain.AnalysisReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err).
			WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create summary file", err).
			WithContext("path", path)
	}
	defer file.Close()

	if err := WriteSummary(file, report); err != nil {
		return apperrors.NewStorageError("failed to write summary", err).
			WithContext("path", path)
	}
	return file.Close()
}

// WriteSummary writes the human readable analysis report
func WriteSummary(w io.Writer, report domain.AnalysisReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\nNBA PLAYER STATISTICS ANALYSIS\n%s\n\n", rule, rule)
	fmt.Fprintf(bw, "Source: %s\n", report.Source)
	fmt.Fprintf(bw, "Run: %s\n", report.RunID)
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(bw, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	}

	writePreview(bw, report.Preview)
	writeColumns(bw, report.Columns)

	section(bw, "DATA CLEANING")
	fmt.Fprintf(bw, "Rows loaded: %d\n", report.Cleaning.InputRows)
	fmt.Fprintf(bw, "Rows removed: %d\n", report.Cleaning.DroppedRows)
	fmt.Fprintf(bw, "Remaining rows: %d\n", report.Cleaning.KeptRows)
	for _, reason := range slices.Sorted(maps.Keys(report.Cleaning.Reasons)) {
		fmt.Fprintf(bw, "  %s: %d\n", reason, report.Cleaning.Reasons[reason])
	}

	writeTopScorers(bw, report)
	writeTeams(bw, report)
	writeOverview(bw, report)

	return bw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func writePreview(w io.Writer, preview [][]string) {
	if len(preview) == 0 {
		return
	}
	section(w, "DATASET PREVIEW")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range preview {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func writeColumns(w io.Writer, columns []domain.ColumnSummary) {
	if len(columns) == 0 {
		return
	}
	section(w, "COLUMN PROFILE")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "column\ttype\tcount\tnulls\tmean\tstd\tmin\tmax\t")
	for _, c := range columns {
		if !c.Numeric {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t\t\t\t\t\n", c.Name, c.Type, c.Count, c.Nulls)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			c.Name, c.Type, c.Count, c.Nulls, c.Mean, c.Std, c.Min, c.Max)
	}
	tw.Flush()
}

func writeTopScorers(w io.Writer, report domain.AnalysisReport) {
	section(w, "TOP SCORING PLAYERS (BY TOTAL POINTS)")
	if len(report.TopScorers) == 0 {
		fmt.Fprintln(w, "No players to rank")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tPlayer\tTm\tYear\tPTS\tG\tMP")
	for _, s := range report.TopScorers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%g\n",
			s.Rank, s.Label, s.Team, yearText(s.Year), s.Points, s.Games, s.Minutes)
	}
	tw.Flush()

	n := len(report.TopScorers)
	fmt.Fprintf(w, "\nHighest scoring season: %.1f points\n", report.Scoring.Highest)
	fmt.Fprintf(w, "Average among top %d: %.1f points\n", n, report.Scoring.Mean)
	fmt.Fprintf(w, "Lowest in top %d: %.1f points\n", n, report.Scoring.Lowest)
}

func writeTeams(w io.Writer, report domain.AnalysisReport) {
	section(w, "TEAM OFFENSIVE PERFORMANCE")
	if len(report.Teams) == 0 {
		fmt.Fprintln(w, "No teams to rank")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tTeam\tAvg PPG/Player\tPlayers\tTotal Points\tAvg Games")
	for _, t := range report.Teams {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%d\t%.2f\n",
			t.Rank, t.Team, t.AvgPPG, t.Players, t.TotalPoints, t.AvgGames)
	}
	tw.Flush()

	ins := report.TeamInsights
	fmt.Fprintf(w, "\nHighest scoring team: %s (%.2f PPG)\n", ins.Highest.Team, ins.Highest.AvgPPG)
	fmt.Fprintf(w, "Lowest scoring team: %s (%.2f PPG)\n", ins.Lowest.Team, ins.Lowest.AvgPPG)
	fmt.Fprintf(w, "Average across all teams: %.2f PPG\n", ins.MeanAcross)
	fmt.Fprintf(w, "Total teams analyzed: %d\n", ins.TeamsAnalyzed)
}

func writeOverview(w io.Writer, report domain.AnalysisReport) {
	section(w, "ANALYSIS SUMMARY")
	o := report.Overview
	fmt.Fprintf(w, "Total player records analyzed: %d\n", o.Records)
	fmt.Fprintf(w, "Unique players: %d\n", o.UniquePlayers)
	fmt.Fprintf(w, "Teams represented: %d\n", o.Teams)
	if o.FirstYear > 0 {
		fmt.Fprintf(w, "Years covered: %d to %d\n", o.FirstYear, o.LastYear)
	}

	if len(report.TopScorers) > 0 {
		top := report.TopScorers[0]
		fmt.Fprintf(w, "\nTop scorer: %s (%s", top.Player, top.Team)
		if top.Year > 0 {
			fmt.Fprintf(w, ", %d", top.Year)
		}
		fmt.Fprintf(w, ") with %d points\n", top.Points)
	}
	if len(report.Teams) > 0 {
		best := report.Teams[0]
		fmt.Fprintf(w, "Best offensive team: %s (%.2f avg PPG per player, %d players)\n",
			best.Team, best.AvgPPG, best.Players)
	}
}

func yearText(year int) string {
	if year == 0 {
		return "-"
	}
	return fmt.Sprint(year)
}
