package transport

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/ben-ranford/cmdtransport/internal/logging"
	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
)

const defaultExtension = ".js"

// ID computes the module id of filePath, a path relative to pkg.Dest.
func ID(filePath string, pkg *pkggraph.Package, opts Options) (string, error) {
	if pkggraph.IsRelative(filePath) {
		return "", &PathError{Op: "transport id", Path: filePath}
	}

	prefix := Template(opts.Idleading.Resolve(filePath, pkg), pkg)

	dest := normalizeSlashes(pkg.Dest)
	fullPath := path.Join(dest, normalizeSlashes(filePath))
	if path.Ext(fullPath) == "" {
		fullPath += defaultExtension
	}
	renamed := applyRename(opts.Rename, RenameInput{
		Path:       fullPath,
		OriginPath: fullPath,
		Dest:       dest,
	})

	relPath := hideExtension(relativePath(dest, renamed))
	// stylesheets are addressed as script modules by the loader
	if path.Ext(relPath) == ".css" {
		relPath += ".js"
	}

	id := normalizeSlashes(path.Join(normalizeSlashes(prefix), relPath))
	logging.Named("transport:util").Debug("transport id", "id", id, "pkg", pkg.ID)
	return id, nil
}

// StyleID is the class name scoping a package's stylesheets when StyleBox
// is enabled, e.g. foo/1.0.0 becomes foo-1_0_0.
func StyleID(file EmittedFile, opts Options) (string, error) {
	root := opts.Root
	if root == nil {
		return "", ErrPackageMissing
	}
	loc, err := Locate(file, root)
	if err != nil {
		return "", err
	}
	id := Template(opts.Idleading.Resolve(loc.OriginPath, loc.Pkg), loc.Pkg)
	id = normalizeSlashes(id)
	id = strings.TrimSuffix(id, "/")
	id = strings.ReplaceAll(id, "/", "-")
	return strings.ReplaceAll(id, ".", "_"), nil
}

func hideExtension(p string) string {
	return strings.TrimSuffix(p, defaultExtension)
}

func relativePath(base, target string) string {
	rel, err := filepath.Rel(filepath.FromSlash(base), filepath.FromSlash(target))
	if err != nil {
		return normalizeSlashes(target)
	}
	return normalizeSlashes(rel)
}

func normalizeSlashes(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
