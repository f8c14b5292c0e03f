package services

import (
	"nbastats/internal/config"
	"nbastats/internal/dataprocessing"
)

// PreviewRows is how many rows the dataset preview shows
const PreviewRows = 5

// OutputOptions selects the artifacts written by a run
type OutputOptions struct {
	CSV       bool
	JSON      bool
	Text      bool
	Excel     bool
	ChartFile string
}

// Any reports whether at least one file artifact is enabled
func (o OutputOptions) Any() bool {
	return o.CSV || o.JSON || o.Text || o.Excel
}

// AnalysisOptions configures one pipeline run
type AnalysisOptions struct {
	DataFile     string
	TopScorers   int
	ChartTeams   int
	TradedPolicy dataprocessing.TradedPolicy
	Parallel     bool
	Load         dataprocessing.LoadOptions
	Clean        dataprocessing.CleanOptions
	Output       OutputOptions
	MetricsFile  string
}

// DefaultAnalysisOptions returns the options matching config.Default()
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		DataFile:     config.DefaultDataFile,
		TopScorers:   config.DefaultTopScorers,
		ChartTeams:   config.DefaultChartTeams,
		TradedPolicy: dataprocessing.PolicyPreferTotals,
		Parallel:     true,
		Load:         dataprocessing.DefaultLoadOptions(),
		Clean:        dataprocessing.DefaultCleanOptions(),
		Output: OutputOptions{
			CSV:       true,
			JSON:      true,
			Text:      true,
			Excel:     true,
			ChartFile: config.DefaultChartFile,
		},
	}
}

// OptionsFromConfig translates validated configuration into run options.
// Relative locations are resolved through paths.
func OptionsFromConfig(cfg *config.Config, paths *config.Paths) (AnalysisOptions, error) {
	policy, err := dataprocessing.ParseTradedPolicy(cfg.Analysis.TradedPolicy)
	if err != nil {
		return AnalysisOptions{}, err
	}

	opts := DefaultAnalysisOptions()
	opts.DataFile = paths.Resolve(cfg.Data.File)
	opts.TopScorers = cfg.Analysis.TopScorers
	opts.ChartTeams = cfg.Analysis.ChartTeams
	opts.TradedPolicy = policy
	opts.Parallel = cfg.Analysis.Parallel
	// Comma is the reader default; leaving it unset lets .tsv select tab
	if r := cfg.DelimiterRune(); r != ',' {
		opts.Load.Delimiter = r
	}
	opts.Output = OutputOptions{
		CSV:       cfg.Output.CSV,
		JSON:      cfg.Output.JSON,
		Text:      cfg.Output.Text,
		Excel:     cfg.Output.Excel,
		ChartFile: cfg.Output.ChartFile,
	}

	if cfg.Telemetry.Metrics {
		opts.MetricsFile = cfg.Telemetry.MetricsFile
		if opts.MetricsFile == "" {
			opts.MetricsFile = config.MetricsTextOut
		}
		opts.MetricsFile = paths.GetReportPath(opts.MetricsFile)
	}
	return opts, nil
}
