package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbastats/internal/config"
	apperrors "nbastats/internal/errors"
)

// setupTestEnv returns a writer rooted at a temp dir and that dir
func setupTestEnv(t *testing.T) (*CSVWriter, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(t.TempDir(), nil)
	return NewCSVWriter(paths, nil), paths
}

func readCSV(t *testing.T, path string) (bool, [][]string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	hasBOM := bytes.HasPrefix(data, utf8BOM)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return hasBOM, records
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name      string
		options   WriteOptions
		wantBOM   bool
		wantLines int
	}{
		{
			name:      "headers and records with BOM",
			options:   WriteOptions{Headers: []string{"a", "b"}, Records: [][]string{{"1", "2"}, {"3", "4"}}, BOMPrefix: true},
			wantBOM:   true,
			wantLines: 3,
		},
		{
			name:      "records only",
			options:   WriteOptions{Records: [][]string{{"x"}}},
			wantLines: 1,
		},
		{
			name:      "quoted values",
			options:   WriteOptions{Headers: []string{"Player"}, Records: [][]string{{"Smith, Jr."}}},
			wantLines: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, paths := setupTestEnv(t)

			path, err := writer.WriteCSV("out.csv", tt.options)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(paths.ReportsDir, "out.csv"), path)

			hasBOM, records := readCSV(t, path)
			assert.Equal(t, tt.wantBOM, hasBOM)
			assert.Len(t, records, tt.wantLines)
			if len(tt.options.Headers) > 0 {
				assert.Equal(t, tt.options.Headers, records[0])
			}
		})
	}
}

func TestCSVWriter_OverwritesExistingFile(t *testing.T) {
	writer, _ := setupTestEnv(t)

	_, err := writer.WriteSimpleCSV("out.csv", []string{"h"}, [][]string{{"1"}, {"2"}})
	require.NoError(t, err)
	path, err := writer.WriteSimpleCSV("out.csv", []string{"h"}, [][]string{{"3"}})
	require.NoError(t, err)

	_, records := readCSV(t, path)
	assert.Equal(t, [][]string{{"h"}, {"3"}}, records)
}

func TestCSVWriter_AbsolutePath(t *testing.T) {
	writer, _ := setupTestEnv(t)
	target := filepath.Join(t.TempDir(), "nested", "abs.csv")

	path, err := writer.WriteSimpleCSV(target, []string{"h"}, nil)
	require.NoError(t, err)
	assert.Equal(t, target, path)
	assert.FileExists(t, target)
}

func TestCSVWriter_StorageError(t *testing.T) {
	writer, _ := setupTestEnv(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := writer.WriteSimpleCSV(filepath.Join(blocker, "out.csv"), []string{"h"}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "22.50", formatFloat(22.5))
	assert.Equal(t, "2900", formatMinutes(2900))
	assert.Equal(t, "2551.5", formatMinutes(2551.5))
	assert.Equal(t, "42", formatInt(42))
	assert.Equal(t, "", formatYear(0))
	assert.Equal(t, "2018", formatYear(2018))
}
