package pkggraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ben-ranford/cmdtransport/internal/logging"
	"github.com/ben-ranford/cmdtransport/internal/safeio"
)

const (
	ManifestName = "package.json"
	ModulesDir   = "spm_modules"
	defaultMain  = "index.js"
)

var (
	ErrManifest          = errors.New("invalid package manifest")
	ErrMissingPackage    = errors.New("dependency package not installed")
	ErrUnresolvedRequire = errors.New("unresolved require")
)

type manifest struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Spm     spmManifest `json:"spm"`
}

type spmManifest struct {
	Main         string            `json:"main"`
	Dependencies map[string]string `json:"dependencies"`
	Ignore       []string          `json:"ignore"`
	Output       []string          `json:"output"`
}

type loader struct {
	parser   *requireParser
	rootDir  string
	packages map[string]*Package
}

// Load reads the package rooted at dir together with every installed
// dependency, and parses the require graph of each package's entry files.
func Load(ctx context.Context, dir string) (*Package, error) {
	rootDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve package path: %w", err)
	}
	l := &loader{
		parser:   newRequireParser(),
		rootDir:  rootDir,
		packages: make(map[string]*Package),
	}
	return l.load(ctx, rootDir)
}

func (l *loader) load(ctx context.Context, dir string) (*Package, error) {
	if pkg, ok := l.packages[dir]; ok {
		return pkg, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	pkg := NewPackage(m.Name, m.Version, filepath.ToSlash(dir))
	pkg.Main = CleanPath(m.Spm.Main)
	if pkg.Main == "" {
		pkg.Main = defaultMain
	}
	l.packages[dir] = pkg
	logging.Named("pkggraph").Debug("load package", "id", pkg.ID, "dest", pkg.Dest)

	for _, name := range sortedKeys(m.Spm.Dependencies) {
		depDir := filepath.Join(l.rootDir, ModulesDir, name, m.Spm.Dependencies[name])
		exists, statErr := safeio.FileExistsUnder(l.rootDir, filepath.Join(depDir, ManifestName))
		if statErr != nil {
			return nil, statErr
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s@%s required by %s", ErrMissingPackage, name, m.Spm.Dependencies[name], pkg.ID)
		}
		dep, depErr := l.load(ctx, depDir)
		if depErr != nil {
			return nil, depErr
		}
		pkg.AddDependency(dep)
	}

	entries, err := entryFiles(dir, pkg.Main, m.Spm.Output)
	if err != nil {
		return nil, err
	}
	ignored := make(map[string]bool, len(m.Spm.Ignore))
	for _, name := range m.Spm.Ignore {
		ignored[name] = true
	}
	if err := l.parseFiles(ctx, dir, pkg, entries, ignored); err != nil {
		return nil, err
	}
	return pkg, nil
}

func readManifest(dir string) (manifest, error) {
	data, err := safeio.ReadFileUnder(dir, filepath.Join(dir, ManifestName))
	if err != nil {
		return manifest{}, fmt.Errorf("read %s: %w", filepath.Join(dir, ManifestName), err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return manifest{}, fmt.Errorf("%w: %s: %v", ErrManifest, dir, err)
	}
	if strings.TrimSpace(m.Name) == "" {
		return manifest{}, fmt.Errorf("%w: %s: missing name", ErrManifest, dir)
	}
	return m, nil
}

func entryFiles(dir, main string, output []string) ([]string, error) {
	entries := []string{main}
	fsys := os.DirFS(dir)
	for _, pattern := range output {
		pattern = CleanPath(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: invalid output pattern %q", ErrManifest, pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand output pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if inSkippedDir(match) {
				continue
			}
			entries = append(entries, match)
		}
	}
	return entries, nil
}

func (l *loader) parseFiles(ctx context.Context, dir string, pkg *Package, entries []string, ignored map[string]bool) error {
	queue := append([]string{}, entries...)
	for len(queue) > 0 {
		relPath := queue[0]
		queue = queue[1:]
		if _, done := pkg.Files[relPath]; done {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := safeio.ReadFileUnder(dir, filepath.Join(dir, filepath.FromSlash(relPath)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: %s not found in %s", ErrUnresolvedRequire, relPath, pkg.ID)
			}
			return err
		}
		file := pkg.AddFile(relPath)

		specifiers, err := l.parser.Requires(ctx, relPath, content)
		if err != nil {
			return err
		}
		for _, specifier := range specifiers {
			req, err := resolveRequire(dir, pkg, file, specifier, ignored)
			if err != nil {
				return err
			}
			file.Requires = append(file.Requires, req)
			if req.Relative {
				queue = append(queue, req.Path)
			}
		}
	}
	return nil
}

func resolveRequire(dir string, pkg *Package, file *File, specifier string, ignored map[string]bool) (Require, error) {
	if IsRelative(specifier) {
		target := path.Join(path.Dir(file.Path), specifier)
		if target == ".." || strings.HasPrefix(target, "../") {
			return Require{}, fmt.Errorf("%w: %s in %s escapes package %s", ErrUnresolvedRequire, specifier, file.Path, pkg.ID)
		}
		target = withDefaultExtension(target)
		exists, err := safeio.FileExistsUnder(dir, filepath.Join(dir, filepath.FromSlash(target)))
		if err != nil {
			return Require{}, err
		}
		if !exists {
			return Require{}, fmt.Errorf("%w: %s in %s of %s", ErrUnresolvedRequire, specifier, file.Path, pkg.ID)
		}
		return Require{Path: target, Pkg: pkg, Extension: Extension(target), Relative: true}, nil
	}

	name, subPath := splitSpecifier(specifier)
	dep := pkg.Dependencies[name]
	if ignored[name] {
		if dep == nil {
			dep = NewPackage(name, "", "")
		}
		return Require{Path: name, Pkg: dep, Ignore: true}, nil
	}
	if dep == nil {
		return Require{}, fmt.Errorf("%w: %s in %s of %s is not a declared dependency", ErrUnresolvedRequire, specifier, file.Path, pkg.ID)
	}

	target := dep.Main
	if subPath != "" {
		target = withDefaultExtension(subPath)
	}
	if _, ok := dep.Files[target]; subPath != "" && !ok {
		return Require{}, fmt.Errorf("%w: %s in %s of %s", ErrUnresolvedRequire, specifier, file.Path, pkg.ID)
	}
	return Require{Path: target, Pkg: dep, Extension: Extension(target)}, nil
}

// IsRelative reports whether p starts with a same-dir or parent-dir segment.
func IsRelative(p string) bool {
	p = strings.ReplaceAll(p, "\\", "/")
	return p == "." || p == ".." || strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../")
}

func splitSpecifier(specifier string) (string, string) {
	parts := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1], strings.Join(parts[2:], "/")
	}
	return parts[0], strings.Join(parts[1:], "/")
}

func withDefaultExtension(p string) string {
	if path.Ext(p) == "" {
		return p + ".js"
	}
	return p
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// output globs never reach into installed packages, tool state or build
// output
var skippedDirs = map[string]bool{
	ModulesDir:     true,
	".git":         true,
	".idea":        true,
	"node_modules": true,
	"dist":         true,
}

func inSkippedDir(match string) bool {
	parts := strings.Split(match, "/")
	for _, dir := range parts[:len(parts)-1] {
		if skippedDirs[dir] {
			return true
		}
	}
	return false
}
