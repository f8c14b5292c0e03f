package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"nbastats/internal/config"
	apperrors "nbastats/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance. Relative paths are
// written under the reports directory of paths.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file, replacing any previous content.
// It returns the full path written.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create directory", err).
			WithContext("path", fullPath)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", apperrors.NewStorageError("failed to create file", err).
			WithContext("path", fullPath)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return "", apperrors.NewStorageError("failed to write BOM", err).
				WithContext("path", fullPath)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", apperrors.NewStorageError("failed to write headers", err).
				WithContext("path", fullPath)
		}
	}
	if err := writer.WriteAll(options.Records); err != nil {
		return "", apperrors.NewStorageError("failed to write records", err).
			WithContext("path", fullPath)
	}

	return fullPath, file.Close()
}

// WriteSimpleCSV writes a CSV file with headers, records and a BOM
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, records [][]string) (string, error) {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// resolvePath resolves a relative path against the reports directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetReportPath(filePath)
}
