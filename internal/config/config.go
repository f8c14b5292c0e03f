package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "nbastats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// DataConfig describes the input dataset
type DataConfig struct {
	File      string `yaml:"file" envconfig:"FILE" validate:"required"`
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
}

// AnalysisConfig controls the two aggregates and the chart
type AnalysisConfig struct {
	TopScorers   int    `yaml:"top_scorers" envconfig:"TOP_SCORERS" validate:"min=0"`
	ChartTeams   int    `yaml:"chart_teams" envconfig:"CHART_TEAMS" validate:"min=0"`
	TradedPolicy string `yaml:"traded_policy" envconfig:"TRADED_POLICY" validate:"oneof=keep exclude-totals prefer-totals"`
	Parallel     bool   `yaml:"parallel" envconfig:"PARALLEL"`
}

// OutputConfig selects which artifacts are written and where
type OutputConfig struct {
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	ChartFile  string `yaml:"chart_file" envconfig:"CHART_FILE" validate:"required_if=Excel true"`
	CSV        bool   `yaml:"csv" envconfig:"CSV"`
	JSON       bool   `yaml:"json" envconfig:"JSON"`
	Text       bool   `yaml:"text" envconfig:"TEXT"`
	Excel      bool   `yaml:"excel" envconfig:"EXCEL"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	Tracing       bool    `yaml:"tracing" envconfig:"TRACING"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"min=0,max=1"`
	Metrics       bool    `yaml:"metrics" envconfig:"METRICS"`
	MetricsFile   string  `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, an optional YAML file and
// NBA_* environment variables, in increasing order of precedence.
// An empty configFile falls back to NBA_CONFIG_FILE and the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
	}

	// Fields without an NBA_* variable keep their default or file value
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)

	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
			}
			return apperrors.NewConfigError("config validation failed", err).
				WithContext("fields", strings.Join(fields, ","))
		}
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// DelimiterRune returns the configured field delimiter
func (c *Config) DelimiterRune() rune {
	if c.Data.Delimiter == "" {
		return ','
	}
	return []rune(c.Data.Delimiter)[0]
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"nbastats.yaml",
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Data: DataConfig{
			File:      DefaultDataFile,
			Delimiter: ",",
		},
		Analysis: AnalysisConfig{
			TopScorers:   DefaultTopScorers,
			ChartTeams:   DefaultChartTeams,
			TradedPolicy: "prefer-totals",
			Parallel:     true,
		},
		Output: OutputConfig{
			ReportsDir: DefaultReportsDir,
			ChartFile:  DefaultChartFile,
			CSV:        true,
			JSON:       true,
			Text:       true,
			Excel:      true,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/nbastats.log",
		},
		Telemetry: TelemetryConfig{
			Tracing:       false,
			TraceExporter: "none",
			SampleRatio:   1.0,
			Metrics:       true,
		},
	}
}
