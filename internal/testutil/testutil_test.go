package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanceledContextIsDone(t *testing.T) {
	ctx := CanceledContext()
	select {
	case <-ctx.Done():
	default:
		t.Fatal("expected canceled context")
	}
}

func TestWriteHelpers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")

	MustWriteFile(t, path, "hello")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if got := string(data); got != "hello" {
		t.Fatalf("unexpected content: %q", got)
	}

	tempPath := WriteTempFile(t, "temp.txt", "x")
	if info, err := os.Stat(tempPath); err != nil {
		t.Fatalf("stat temp file: %v", err)
	} else if got := info.Mode().Perm(); got != 0o644 {
		t.Fatalf("expected 0644, got %o", got)
	}
}

func TestWritePackageAndModule(t *testing.T) {
	root := t.TempDir()
	WritePackage(t, root, `{"name": "app"}`, map[string]string{"lib/a.js": "a"})
	dep := WriteModule(t, root, "bar", "1.0.0", map[string]string{"index.js": "b"})
	custom := WriteModule(t, root, "baz", "2.0.0", map[string]string{manifestName: `{"name": "baz", "spm": {"main": "src/baz.js"}}`})

	for path, want := range map[string]string{
		filepath.Join(root, manifestName):   `{"name": "app"}`,
		filepath.Join(root, "lib", "a.js"):  "a",
		filepath.Join(dep, "index.js"):      "b",
		filepath.Join(dep, manifestName):    `{"name": "bar", "version": "1.0.0"}`,
		filepath.Join(custom, manifestName): `{"name": "baz", "spm": {"main": "src/baz.js"}}`,
	} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(data) != want {
			t.Fatalf("unexpected content in %s: %q", path, data)
		}
	}
	if dep != filepath.Join(root, modulesDir, "bar", "1.0.0") {
		t.Fatalf("unexpected module dir: %s", dep)
	}
}
