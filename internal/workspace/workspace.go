package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
)

var ErrNoPackage = errors.New("no package manifest found")

func NormalizeRepoPath(path string) (string, error) {
	if path == "" {
		path = "."
	}
	return filepath.Abs(path)
}

// FindPackageRoot returns the nearest directory at or above path holding a
// package manifest.
func FindPackageRoot(path string) (string, error) {
	dir, err := NormalizeRepoPath(path)
	if err != nil {
		return "", err
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		info, err := os.Stat(filepath.Join(dir, pkggraph.ManifestName))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("inspect %s: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w above %s", ErrNoPackage, path)
		}
		dir = parent
	}
}
