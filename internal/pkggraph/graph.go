package pkggraph

import (
	"path"
	"sort"
	"strings"
)

// Package is one unit of source with its own output root and declared
// dependencies. Dest is the directory module paths are computed against.
type Package struct {
	ID           string
	Name         string
	Version      string
	Dest         string
	Main         string
	Files        map[string]*File
	Dependencies map[string]*Package
}

// File is a file owned by exactly one package. Path is relative to Pkg.Dest
// and always uses forward slashes.
type File struct {
	Path      string
	Extension string
	Pkg       *Package
	Requires  []Require
}

// Require is a single edge from a file to the file it requires.
type Require struct {
	Path      string
	Pkg       *Package
	Extension string
	Relative  bool
	Ignore    bool
}

// FileInfo is what a Lookup visitor sees for each reachable edge.
type FileInfo struct {
	Require
	Dependent *File
}

// Visitor decides whether an edge contributes a value to a Lookup result.
type Visitor func(info FileInfo) (string, bool)

// NewPackage returns a package with initialised maps and an id derived from
// name and version.
func NewPackage(name, version, dest string) *Package {
	return &Package{
		ID:           PackageID(name, version),
		Name:         name,
		Version:      version,
		Dest:         dest,
		Files:        make(map[string]*File),
		Dependencies: make(map[string]*Package),
	}
}

func PackageID(name, version string) string {
	if version == "" {
		return name
	}
	return name + "@" + version
}

// AddFile registers a file under its package-relative path.
func (p *Package) AddFile(relPath string) *File {
	relPath = CleanPath(relPath)
	if existing, ok := p.Files[relPath]; ok {
		return existing
	}
	file := &File{
		Path:      relPath,
		Extension: Extension(relPath),
		Pkg:       p,
	}
	p.Files[relPath] = file
	return file
}

func (p *Package) AddDependency(dep *Package) {
	p.Dependencies[dep.Name] = dep
}

// DependencyNames returns the declared dependency names in sorted order.
func (p *Package) DependencyNames() []string {
	names := make([]string, 0, len(p.Dependencies))
	for name := range p.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilePaths returns the known file paths in sorted order.
func (p *Package) FilePaths() []string {
	paths := make([]string, 0, len(p.Files))
	for relPath := range p.Files {
		paths = append(paths, relPath)
	}
	sort.Strings(paths)
	return paths
}

// Packages returns the package itself plus every transitively declared
// dependency, keyed by package id.
func (p *Package) Packages() map[string]*Package {
	result := make(map[string]*Package)
	for _, pkg := range p.PackageList() {
		result[pkg.ID] = pkg
	}
	return result
}

// PackageList is Packages in breadth-first, sorted-name order.
func (p *Package) PackageList() []*Package {
	seen := map[string]bool{p.ID: true}
	ordered := []*Package{p}
	for i := 0; i < len(ordered); i++ {
		current := ordered[i]
		for _, name := range current.DependencyNames() {
			dep := current.Dependencies[name]
			if dep == nil || seen[dep.ID] {
				continue
			}
			seen[dep.ID] = true
			ordered = append(ordered, dep)
		}
	}
	return ordered
}

// RequireFile links file to target as a relative or package edge.
func (f *File) RequireFile(target *File, relative bool) {
	f.Requires = append(f.Requires, Require{
		Path:      target.Path,
		Pkg:       target.Pkg,
		Extension: target.Extension,
		Relative:  relative,
	})
}

// Lookup walks the transitive require graph of f, followed by extra seed
// edges, in depth-first pre-order. Every edge target is visited once; values
// accepted by visit are returned in first-occurrence order.
func (f *File) Lookup(visit Visitor, extra ...Require) []string {
	w := walker{
		visit:   visit,
		visited: map[string]bool{fileKey(f.Pkg, f.Path): true},
		seen:    make(map[string]bool),
	}

	seeds := make([]Require, 0, len(f.Requires)+len(extra))
	seeds = append(seeds, f.Requires...)
	seeds = append(seeds, extra...)
	w.walk(f, seeds)
	return w.result
}

// HasExtension reports whether any reachable edge carries ext and passes
// filter. A nil filter accepts every edge.
func (f *File) HasExtension(ext string, filter func(FileInfo) bool) bool {
	found := f.Lookup(func(info FileInfo) (string, bool) {
		if info.Extension != ext {
			return "", false
		}
		if filter != nil && !filter(info) {
			return "", false
		}
		return info.Path, true
	})
	return len(found) > 0
}

type walker struct {
	visit   Visitor
	visited map[string]bool
	seen    map[string]bool
	result  []string
}

type frame struct {
	dependent *File
	requires  []Require
	next      int
}

func (w *walker) walk(root *File, seeds []Require) {
	stack := []*frame{{dependent: root, requires: seeds}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.requires) {
			stack = stack[:len(stack)-1]
			continue
		}
		req := top.requires[top.next]
		top.next++

		key := fileKey(req.Pkg, req.Path)
		if w.visited[key] {
			continue
		}
		w.visited[key] = true

		if value, ok := w.visit(FileInfo{Require: req, Dependent: top.dependent}); ok && !w.seen[value] {
			w.seen[value] = true
			w.result = append(w.result, value)
		}

		if req.Ignore || req.Pkg == nil {
			continue
		}
		target := req.Pkg.Files[req.Path]
		if target == nil || len(target.Requires) == 0 {
			continue
		}
		stack = append(stack, &frame{dependent: target, requires: target.Requires})
	}
}

func fileKey(pkg *Package, relPath string) string {
	if pkg == nil {
		return "\x00" + relPath
	}
	return pkg.ID + "\x00" + relPath
}

// CleanPath normalises a package-relative path to forward slashes.
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return p
	}
	return path.Clean(p)
}

// Extension returns the extension of p without the leading dot.
func Extension(p string) string {
	return strings.TrimPrefix(path.Ext(p), ".")
}
