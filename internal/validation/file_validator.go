package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nbastats/internal/dataprocessing"
	apperrors "nbastats/internal/errors"
)

// FileValidator checks the input dataset and output locations before a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With("component", "file_validator"),
	}
}

// ValidateDataFile checks that path is a readable, supported dataset file
func (v *FileValidator) ValidateDataFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if !dataprocessing.IsSupportedFile(path) {
		ext := strings.ToLower(filepath.Ext(path))
		v.logger.Error("Unsupported dataset format",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewLoadError(path, fmt.Sprintf("unsupported file extension %q", ext), nil).
			WithContext("extension", ext)
	}

	// Office lock files share the workbook extension
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel file",
			slog.String("file", path))
		return apperrors.NewLoadError(path, "temporary Excel file", nil)
	}

	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewLoadError(path, "file not found", err)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewLoadError(path, "failed to stat file", err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewLoadError(path, "path is a directory, not a file", nil)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewLoadError(path, "file is not readable", err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", dir)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).
			WithContext("path", dir)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
