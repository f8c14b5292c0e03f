package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"nbastats/internal/dataprocessing"
	apperrors "nbastats/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative
// directories are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDatasets lists the dataset files in dir, oldest first. Hidden files
// and Office lock files are skipped.
func (d *Discovery) FindDatasets(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, apperrors.NewLoadError(fullPath, "failed to read directory", err)
	}

	var files []FileInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}
		// extensionless files are readable as CSV but are not picked from a folder
		if filepath.Ext(name) == "" || !dataprocessing.IsSupportedFile(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Sort by modification time (oldest first), then name
	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.Before(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// ResolveDataFile returns path unchanged when it is not a directory and
// the newest dataset inside it otherwise.
func (d *Discovery) ResolveDataFile(path string) (string, error) {
	fullPath := d.resolve(path)

	info, err := os.Stat(fullPath)
	if err != nil || !info.IsDir() {
		// missing files are reported by the file validator
		return fullPath, nil
	}

	datasets, err := d.FindDatasets(fullPath)
	if err != nil {
		return "", err
	}
	latest, ok := GetLatestFile(datasets)
	if !ok {
		return "", apperrors.NewLoadError(fullPath, "no dataset files in directory", nil)
	}
	return latest.Path, nil
}

// GetLatestFile returns the most recently modified file from a list.
// Ties go to the later entry.
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if !file.ModTime.Before(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}
