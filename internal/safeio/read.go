// Package safeio reads package files without following paths out of the
// package directory.
package safeio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrEscapesRoot = errors.New("path escapes root")

// ReadFileUnder reads targetPath only if it resolves under rootDir.
func ReadFileUnder(rootDir, targetPath string) ([]byte, error) {
	rootAbs, rel, err := resolveUnder(rootDir, targetPath)
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(rootAbs)
	if err != nil {
		return nil, fmt.Errorf("open root: %w", err)
	}
	defer root.Close()

	file, err := root.Open(rel)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// FileExistsUnder reports whether targetPath is a regular file under
// rootDir. Paths outside rootDir fail with ErrEscapesRoot.
func FileExistsUnder(rootDir, targetPath string) (bool, error) {
	rootAbs, rel, err := resolveUnder(rootDir, targetPath)
	if err != nil {
		return false, err
	}

	root, err := os.OpenRoot(rootAbs)
	if err != nil {
		return false, fmt.Errorf("open root: %w", err)
	}
	defer root.Close()

	info, err := root.Stat(rel)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// ReadFile reads the exact targetPath by opening its parent directory as a root.
func ReadFile(targetPath string) ([]byte, error) {
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return nil, fmt.Errorf("resolve target path: %w", err)
	}
	return ReadFileUnder(filepath.Dir(targetAbs), targetAbs)
}

func resolveUnder(rootDir, targetPath string) (string, string, error) {
	rootAbs, err := filepath.Abs(rootDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve root path: %w", err)
	}
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return "", "", fmt.Errorf("resolve target path: %w", err)
	}

	rel, err := filepath.Rel(rootAbs, targetAbs)
	if err != nil {
		return "", "", fmt.Errorf("compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", "", fmt.Errorf("%w: %s", ErrEscapesRoot, targetPath)
	}
	return rootAbs, filepath.Clean(rel), nil
}
