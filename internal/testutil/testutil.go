package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

const (
	manifestName = "package.json"
	modulesDir   = "spm_modules"
)

func CanceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func MustWriteFile(t *testing.T, path string, content string) {
	MustWriteFileMode(t, path, content, 0o600)
}

func MustWriteFileMode(t *testing.T, path string, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func WriteTempFile(t *testing.T, filename string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), filename)
	MustWriteFileMode(t, path, content, 0o644)
	return path
}

// WritePackage lays out a package in dir: the manifest plus files keyed by
// slash separated package-relative path.
func WritePackage(t *testing.T, dir string, manifest string, files map[string]string) {
	t.Helper()
	MustWriteFile(t, filepath.Join(dir, manifestName), manifest)
	paths := make([]string, 0, len(files))
	for rel := range files {
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	for _, rel := range paths {
		MustWriteFile(t, filepath.Join(dir, filepath.FromSlash(rel)), files[rel])
	}
}

// WriteModule installs a dependency under root's modules directory and
// returns its directory.
func WriteModule(t *testing.T, root, name, version string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, modulesDir, filepath.FromSlash(name), version)
	manifest := `{"name": "` + name + `", "version": "` + version + `"}`
	if custom, ok := files[manifestName]; ok {
		manifest = custom
		rest := make(map[string]string, len(files)-1)
		for rel, content := range files {
			if rel != manifestName {
				rest[rel] = content
			}
		}
		files = rest
	}
	WritePackage(t, dir, manifest, files)
	return dir
}
