package validation

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "nbastats/internal/errors"
	"nbastats/internal/shared/testutil"
)

func TestFileValidator_ValidateDataFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "csv dataset",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteSampleCSV(t)
			},
		},
		{
			name: "xlsx dataset",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteXLSX(t, "stats.xlsx", [][]string{{"Player", "Tm", "G", "PTS"}})
			},
		},
		{
			name: "non-existent file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			wantErr:       true,
			errorContains: "file not found",
		},
		{
			name: "directory instead of file",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
		{
			name: "unsupported extension",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, "stats.json", "{}")
			},
			wantErr:       true,
			errorContains: `unsupported file extension ".json"`,
		},
		{
			name: "temporary Excel file",
			setupFunc: func(t *testing.T) string {
				return testutil.WriteFile(t, "~$stats.xlsx", "lock")
			},
			wantErr:       true,
			errorContains: "temporary Excel file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			validator := NewFileValidator(logger)
			path := tt.setupFunc(t)

			err := validator.ValidateDataFile(path)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantErr   bool
	}{
		{
			name: "existing directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "non-existent directory (should be created)",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "new", "nested", "dir")
			},
		},
		{
			name: "parent is a file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "file")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
				return filepath.Join(file, "reports")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(nil)
			dir := tt.setupFunc(t)

			err := validator.ValidateOutputDirectory(dir)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
				return
			}
			require.NoError(t, err)
			info, err := os.Stat(dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
			assert.NoFileExists(t, filepath.Join(dir, ".write_test"))
		})
	}
}

func TestFileValidator_UnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	path := testutil.WriteSampleCSV(t)
	require.NoError(t, os.Chmod(path, 0000))

	err := NewFileValidator(nil).ValidateFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not readable")
}
