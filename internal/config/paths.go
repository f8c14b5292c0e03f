package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system locations of one run.
// Relative configured paths are resolved against BaseDir.
type Paths struct {
	BaseDir    string
	DataFile   string
	ReportsDir string
	LogsDir    string
}

// GetPaths resolves paths against the current working directory
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewPaths(wd, cfg), nil
}

// NewPaths resolves the configured locations against baseDir
func NewPaths(baseDir string, cfg *Config) *Paths {
	if cfg == nil {
		cfg = Default()
	}
	p := &Paths{BaseDir: baseDir}
	p.DataFile = p.Resolve(cfg.Data.File)
	p.ReportsDir = p.Resolve(cfg.Output.ReportsDir)
	p.LogsDir = p.Resolve(DefaultLogsDir)
	return p
}

// Resolve returns path unchanged when absolute, otherwise joined to BaseDir
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// EnsureDirectories creates the output directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved locations for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Path resolution summary",
		slog.String("base", p.BaseDir),
		slog.String("data_file", p.DataFile),
		slog.Bool("data_file_exists", FileExists(p.DataFile)),
		slog.String("reports", p.ReportsDir),
		slog.String("logs", p.LogsDir))
}
