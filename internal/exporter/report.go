package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"nbastats/internal/config"
	apperrors "nbastats/internal/errors"
	"nbastats/pkg/contracts/domain"
)

// Column headers of the exported tables
var (
	TopScorersHeaders = []string{"Rank", "Player", "Tm", "Year", "PTS", "G", "MP"}
	TeamStatsHeaders  = []string{"Rank", "Team", "Avg_PPG_Per_Player", "Total_Players", "Total_Points", "Avg_Games_Played"}
	RankedHeaders     = []string{"Rank", "Label", "Value"}
)

// ReportExporter writes the analysis tables and the full report
type ReportExporter struct {
	csvWriter *CSVWriter
	paths     *config.Paths
	logger    *slog.Logger
}

// NewReportExporter creates an exporter writing under paths.ReportsDir
func NewReportExporter(paths *config.Paths, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "exporter")
	return &ReportExporter{
		csvWriter: NewCSVWriter(paths, logger),
		paths:     paths,
		logger:    logger,
	}
}

// ExportTopScorers writes the top scorers table and returns the file path
func (e *ReportExporter) ExportTopScorers(ctx context.Context, filename string, scorers []domain.ScorerEntry) (string, error) {
	records := make([][]string, len(scorers))
	for i, s := range scorers {
		records[i] = []string{
			formatInt(s.Rank),
			s.Player,
			s.Team,
			formatYear(s.Year),
			formatInt(s.Points),
			formatInt(s.Games),
			formatMinutes(s.Minutes),
		}
	}
	return e.write(ctx, filename, TopScorersHeaders, records)
}

// ExportTeamStats writes the team table and returns the file path
func (e *ReportExporter) ExportTeamStats(ctx context.Context, filename string, teams []domain.TeamAggregate) (string, error) {
	records := make([][]string, len(teams))
	for i, t := range teams {
		records[i] = []string{
			formatInt(t.Rank),
			t.Team,
			formatFloat(t.AvgPPG),
			formatInt(t.Players),
			formatInt(t.TotalPoints),
			formatFloat(t.AvgGames),
		}
	}
	return e.write(ctx, filename, TeamStatsHeaders, records)
}

// ExportRanked writes any ranked entry sequence with 1-based ranks
func (e *ReportExporter) ExportRanked(ctx context.Context, filename string, entries []domain.RankedEntry) (string, error) {
	records := make([][]string, len(entries))
	for i, entry := range entries {
		records[i] = []string{formatInt(i + 1), entry.Label, formatFloat(entry.Value)}
	}
	return e.write(ctx, filename, RankedHeaders, records)
}

// ExportJSON writes v as indented JSON and returns the file path
func (e *ReportExporter) ExportJSON(ctx context.Context, filename string, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := e.resolve(filename)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", apperrors.NewStorageError("failed to encode report", err).
			WithContext("path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create directory", err).
			WithContext("path", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", apperrors.NewStorageError("failed to write report", err).
			WithContext("path", path)
	}

	e.logger.InfoContext(ctx, "Report exported",
		slog.String("path", path),
		slog.String("format", "json"))
	return path, nil
}

func (e *ReportExporter) write(ctx context.Context, filename string, headers []string, records [][]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := e.csvWriter.WriteSimpleCSV(filename, headers, records)
	if err != nil {
		return "", err
	}
	e.logger.InfoContext(ctx, "Report exported",
		slog.String("path", path),
		slog.String("format", "csv"),
		slog.Int("rows", len(records)))
	return path, nil
}

func (e *ReportExporter) resolve(filename string) string {
	if filepath.IsAbs(filename) || e.paths == nil {
		return filename
	}
	return e.paths.GetReportPath(filename)
}
