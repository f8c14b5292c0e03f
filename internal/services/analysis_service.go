package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"nbastats/internal/config"
	"nbastats/internal/dataprocessing"
	"nbastats/internal/exporter"
	"nbastats/internal/files"
	"nbastats/internal/infrastructure"
	"nbastats/internal/reports"
	"nbastats/internal/validation"
	"nbastats/pkg/contracts/domain"
)

// AnalysisService runs the player-season analysis pipeline
type AnalysisService struct {
	paths     *config.Paths
	telemetry *infrastructure.Telemetry
	discovery *files.Discovery
	loader    *dataprocessing.Loader
	validator *validation.FileValidator
	exporter  *exporter.ReportExporter
	console   io.Writer
	logger    *slog.Logger
	now       func() time.Time
}

// NewAnalysisService creates the service. console receives the text chart
// and may be nil. A nil telemetry records nothing. Relative data locations
// resolve against paths.BaseDir.
func NewAnalysisService(paths *config.Paths, telemetry *infrastructure.Telemetry, console io.Writer, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if telemetry == nil {
		telemetry = infrastructure.NoopTelemetry()
	}
	return &AnalysisService{
		paths:     paths,
		telemetry: telemetry,
		discovery: files.NewDiscovery(paths.BaseDir),
		loader:    dataprocessing.NewLoader(logger),
		validator: validation.NewFileValidator(logger),
		exporter:  exporter.NewReportExporter(paths, logger),
		console:   console,
		logger:    infrastructure.WithComponent(logger, "analysis_service"),
		now:       time.Now,
	}
}

// aggregates is the output of the rank and group stages
type aggregates struct {
	scorers []domain.ScorerEntry
	teams   []domain.TeamAggregate
	chart   []domain.RankedEntry
}

// Run executes one analysis and returns its report. Fatal errors from any
// stage abort the run; they are returned unchanged so callers can inspect
// the AppError type.
func (s *AnalysisService) Run(ctx context.Context, opts AnalysisOptions) (report *domain.AnalysisReport, err error) {
	if opts.DataFile == "" {
		return nil, ErrNoDataFile
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)
	logger := s.logger.With("run_id", runID)

	ctx, end := s.telemetry.StartStage(ctx, infrastructure.StagePipeline,
		attribute.String("run_id", runID),
		attribute.String("data_file", opts.DataFile))
	if traceID := infrastructure.SpanTraceID(ctx); traceID != "" {
		logger = logger.With("otel_trace_id", traceID)
	}
	defer func() {
		end(err)
		s.telemetry.Metrics.RecordRun(ctx, err == nil)
		if werr := s.telemetry.WriteMetricsFile(opts.MetricsFile); werr != nil {
			logger.WarnContext(ctx, "Failed to write metrics file", slog.String("error", werr.Error()))
		}
	}()

	// The metrics file must be writable for any failure after this point
	if opts.Output.Any() || opts.MetricsFile != "" {
		if err := s.validator.ValidateOutputDirectory(s.paths.ReportsDir); err != nil {
			return nil, err
		}
	}

	if opts.DataFile, err = s.discovery.ResolveDataFile(opts.DataFile); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Starting analysis",
		slog.String("data_file", opts.DataFile),
		slog.Int("top_scorers", opts.TopScorers),
		slog.Int("chart_teams", opts.ChartTeams),
		slog.String("traded_policy", string(opts.TradedPolicy)),
		slog.Bool("parallel", opts.Parallel))

	if err := s.validator.ValidateDataFile(opts.DataFile); err != nil {
		return nil, err
	}

	raw, err := s.load(ctx, opts)
	if err != nil {
		return nil, err
	}

	columns, preview, err := s.describe(ctx, raw)
	if err != nil {
		return nil, err
	}

	cleaned, cleanReport, err := s.clean(ctx, raw, opts)
	if err != nil {
		return nil, err
	}

	ranked, err := dataprocessing.ResolveTraded(cleaned, opts.TradedPolicy)
	if err != nil {
		return nil, err
	}
	teamTable := dataprocessing.ExcludeTradedTotals(cleaned)

	agg, err := s.aggregate(ctx, ranked, teamTable, opts)
	if err != nil {
		return nil, err
	}

	report = &domain.AnalysisReport{
		RunID:        runID,
		Source:       opts.DataFile,
		GeneratedAt:  s.now().UTC(),
		Columns:      columns,
		Preview:      preview,
		Cleaning:     cleanReport.Summary(),
		Overview:     dataprocessing.Overview(cleaned),
		TopScorers:   agg.scorers,
		Scoring:      dataprocessing.ScoringInsightsFor(agg.scorers),
		Teams:        agg.teams,
		TeamInsights: dataprocessing.TeamInsightsFor(agg.teams),
		Chart: reports.ChartFor(
			fmt.Sprintf("%s (Top %d Teams)", config.ChartTitle, opts.ChartTeams),
			config.ChartXLabel, config.ChartYLabel, agg.chart),
	}

	if err := s.render(ctx, report, opts); err != nil {
		return nil, err
	}
	if err := s.export(ctx, report, opts); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Analysis complete",
		slog.Int("records", report.Overview.Records),
		slog.Int("teams", len(report.Teams)),
		slog.Int("artifacts", len(report.Artifacts)))
	return report, nil
}

func (s *AnalysisService) load(ctx context.Context, opts AnalysisOptions) (_ *dataprocessing.Table, err error) {
	ctx, end := s.telemetry.StartStage(ctx, infrastructure.StageLoad)
	defer func() { end(err) }()

	table, err := s.loader.LoadFile(ctx, opts.DataFile, opts.Load)
	if err != nil {
		return nil, err
	}
	s.telemetry.Metrics.RecordRowsLoaded(ctx, table.Len())
	infrastructure.AddSpanEvent(ctx, "dataset_loaded", map[string]interface{}{
		"rows":    table.Len(),
		"columns": table.Schema().Len(),
	})
	return table, nil
}

func (s *AnalysisService) describe(ctx context.Context, t *dataprocessing.Table) ([]domain.ColumnSummary, [][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	_, end := s.telemetry.StartStage(ctx, infrastructure.StageDescribe)
	defer end(nil)

	return dataprocessing.Describe(t), dataprocessing.Preview(t, PreviewRows), nil
}

func (s *AnalysisService) clean(ctx context.Context, t *dataprocessing.Table, opts AnalysisOptions) (_ *dataprocessing.Table, _ dataprocessing.CleanReport, err error) {
	if err := ctx.Err(); err != nil {
		return nil, dataprocessing.CleanReport{}, err
	}
	ctx, end := s.telemetry.StartStage(ctx, infrastructure.StageClean)
	defer func() { end(err) }()

	cleaned, report, err := dataprocessing.Clean(t, opts.Clean)
	if err != nil {
		return nil, report, err
	}

	for _, d := range report.Breakdown() {
		s.telemetry.Metrics.RecordRowsDropped(ctx, d.Column, string(d.Reason), d.Rows)
	}
	infrastructure.AddSpanEvent(ctx, "rows_dropped", map[string]interface{}{
		"input":   report.InputRows,
		"kept":    report.KeptRows,
		"dropped": report.DroppedRows,
	})
	s.logger.InfoContext(ctx, "Dataset cleaned", slog.Any("report", report))
	return cleaned, report, nil
}

// aggregate runs the ranking and grouping stages over read-only tables
func (s *AnalysisService) aggregate(ctx context.Context, ranked, teams *dataprocessing.Table, opts AnalysisOptions) (aggregates, error) {
	var out aggregates

	rank := func(ctx context.Context) (err error) {
		ctx, end := s.telemetry.StartStage(ctx, infrastructure.StageRank)
		defer func() { end(err) }()
		if err := ctx.Err(); err != nil {
			return err
		}
		out.scorers, err = dataprocessing.TopScorers(ranked, opts.TopScorers)
		return err
	}

	group := func(ctx context.Context) (err error) {
		ctx, end := s.telemetry.StartStage(ctx, infrastructure.StageGroup)
		defer func() { end(err) }()
		if err := ctx.Err(); err != nil {
			return err
		}
		if out.teams, err = dataprocessing.TeamStats(teams); err != nil {
			return err
		}
		out.chart, err = dataprocessing.RankTeamsByAvgPPG(teams,
			domain.ColumnTeam, domain.ColumnPoints, domain.ColumnGames, opts.ChartTeams)
		return err
	}

	if !opts.Parallel {
		if err := rank(ctx); err != nil {
			return aggregates{}, err
		}
		if err := group(ctx); err != nil {
			return aggregates{}, err
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rank(gctx) })
	g.Go(func() error { return group(gctx) })
	if err := g.Wait(); err != nil {
		return aggregates{}, err
	}
	return out, nil
}

func (s *AnalysisService) render(ctx context.Context, report *domain.AnalysisReport, opts AnalysisOptions) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, end := s.telemetry.StartStage(ctx, infrastructure.StageRender)
	defer func() { end(err) }()

	var renderers reports.Multi
	if opts.Output.Excel {
		path := s.paths.GetReportPath(opts.Output.ChartFile)
		renderers = append(renderers, reports.NewExcelChartRenderer(path, s.logger))
		report.Artifacts = append(report.Artifacts, path)
	}
	if s.console != nil {
		renderers = append(renderers, reports.NewTextChartRenderer(s.console, reports.DefaultBarWidth))
	}
	return renderers.Render(ctx, report.Chart)
}

func (s *AnalysisService) export(ctx context.Context, report *domain.AnalysisReport, opts AnalysisOptions) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, end := s.telemetry.StartStage(ctx, infrastructure.StageExport)
	defer func() { end(err) }()

	if opts.Output.CSV {
		path, err := s.exporter.ExportTopScorers(ctx, config.TopScorersCSV, report.TopScorers)
		if err != nil {
			return err
		}
		report.Artifacts = append(report.Artifacts, path)

		path, err = s.exporter.ExportTeamStats(ctx, config.TeamStatsCSV, report.Teams)
		if err != nil {
			return err
		}
		report.Artifacts = append(report.Artifacts, path)
	}

	if opts.Output.Text {
		path := s.paths.GetReportPath(config.SummaryText)
		if err := reports.SaveSummary(path, *report); err != nil {
			return err
		}
		report.Artifacts = append(report.Artifacts, path)
	}

	// The JSON report lists every artifact including itself
	if opts.Output.JSON {
		path := s.paths.GetReportPath(config.ReportJSON)
		report.Artifacts = append(report.Artifacts, path)
		if _, err := s.exporter.ExportJSON(ctx, config.ReportJSON, report); err != nil {
			return err
		}
	}
	return nil
}
