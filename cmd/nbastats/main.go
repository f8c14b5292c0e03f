// Command nbastats analyses a CSV or XLSX file of NBA player-season
// statistics: top scorers by total points and teams ranked by mean points
// per game per player, with CSV, JSON, text and XLSX chart outputs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nbastats/internal/config"
	apperrors "nbastats/internal/errors"
	"nbastats/internal/infrastructure"
	"nbastats/internal/reports"
	"nbastats/internal/services"
	"nbastats/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// cliFlags holds the command line values. Only flags given explicitly
// override the loaded configuration.
type cliFlags struct {
	configFile string
	dataFile   string
	outDir     string
	top        int
	teams      int
	traded     string
	sequential bool
	quiet      bool
	version    bool
	set        map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}

	fs := flag.NewFlagSet("nbastats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configFile, "config", "", "path to YAML config file (defaults to NBA_CONFIG_FILE or ./nbastats.yaml)")
	fs.StringVar(&f.dataFile, "data", "", "input CSV or XLSX file (defaults to "+config.DefaultDataFile+")")
	fs.StringVar(&f.outDir, "out", "", "output directory for reports (defaults to "+config.DefaultReportsDir+")")
	fs.IntVar(&f.top, "top", config.DefaultTopScorers, "number of top scorers to list")
	fs.IntVar(&f.teams, "teams", config.DefaultChartTeams, "number of teams in the chart")
	fs.StringVar(&f.traded, "traded", "prefer-totals", "traded player rows: keep | exclude-totals | prefer-totals")
	fs.BoolVar(&f.sequential, "sequential", false, "run the aggregations one after the other")
	fs.BoolVar(&f.quiet, "quiet", false, "do not print the chart and summary to stdout")
	fs.BoolVar(&f.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply copies the explicitly given flags onto cfg
func (f *cliFlags) apply(cfg *config.Config) {
	if f.set["data"] {
		cfg.Data.File = f.dataFile
	}
	if f.set["out"] {
		cfg.Output.ReportsDir = f.outDir
	}
	if f.set["top"] {
		cfg.Analysis.TopScorers = f.top
	}
	if f.set["teams"] {
		cfg.Analysis.ChartTeams = f.teams
	}
	if f.set["traded"] {
		cfg.Analysis.TradedPolicy = f.traded
	}
	if f.set["sequential"] {
		cfg.Analysis.Parallel = !f.sequential
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if flags.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := config.Load(flags.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "nbastats: %v\n", err)
		return 1
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "nbastats: %v\n", err)
		return 1
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "nbastats: %v\n", err)
		return 1
	}
	cfg.Logging.FilePath = paths.Resolve(cfg.Logging.FilePath)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "nbastats: failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()
	paths.LogPathResolution(logger)

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger,
		infrastructure.WithTraceWriter(stderr))
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "nbastats: %v\n", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	opts, err := services.OptionsFromConfig(cfg, paths)
	if err != nil {
		fmt.Fprintf(stderr, "nbastats: %v\n", err)
		return 1
	}

	var console io.Writer
	if !flags.quiet {
		console = stdout
	}
	service := services.NewAnalysisService(paths, telemetry, console, logger)

	report, err := service.Run(ctx, opts)
	if err != nil {
		infrastructure.WithError(logger, err).Error("Analysis failed",
			slog.String("error_type", string(apperrors.TypeOf(err))))
		fmt.Fprintf(stderr, "nbastats: %v\n", err)
		return 1
	}

	if !flags.quiet {
		fmt.Fprintln(stdout)
		if err := reports.WriteSummary(stdout, *report); err != nil {
			fmt.Fprintf(stderr, "nbastats: %v\n", err)
			return 1
		}
	}
	for _, path := range report.Artifacts {
		fmt.Fprintf(stdout, "wrote %s\n", path)
	}
	return 0
}
