package transport

import (
	"strings"

	"github.com/ben-ranford/cmdtransport/internal/logging"
	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
)

// EmittedFile describes a file produced by the build pipeline. OriginPath
// and RevOriginPath hold the pre-rename location when a step such as content
// hashing changed Path.
type EmittedFile struct {
	Path          string
	OriginPath    string
	RevOriginPath string
}

func (f EmittedFile) origin() string {
	switch {
	case f.RevOriginPath != "":
		return f.RevOriginPath
	case f.OriginPath != "":
		return f.OriginPath
	default:
		return f.Path
	}
}

// Location is the logical identity of an emitted file.
type Location struct {
	OriginPath string
	Path       string
	Pkg        *pkggraph.Package
}

// Locate maps file back to its package-relative paths and its owning
// package, searching pkg first and then all its transitive dependencies.
func Locate(file EmittedFile, pkg *pkggraph.Package) (Location, error) {
	origin := normalizeSlashes(file.origin())
	originPath := relativePath(pkg.Dest, origin)

	if _, ok := pkg.Files[originPath]; !ok {
		owner := claimingPackage(origin, pkg.PackageList())
		if owner == nil {
			return Location{}, &NotFoundError{Path: originPath, Package: pkg.ID}
		}
		pkg = owner
		originPath = relativePath(pkg.Dest, origin)
	}

	loc := Location{
		OriginPath: originPath,
		Path:       relativePath(pkg.Dest, normalizeSlashes(file.Path)),
		Pkg:        pkg,
	}
	logging.Named("transport:util").Debug("found file info", "path", loc.Path, "origin", loc.OriginPath, "pkg", pkg.ID)
	return loc, nil
}

// claimingPackage returns the package with the longest Dest that is a path
// prefix of fullPath.
func claimingPackage(fullPath string, pkgs []*pkggraph.Package) *pkggraph.Package {
	var best *pkggraph.Package
	for _, candidate := range pkgs {
		dest := strings.TrimSuffix(normalizeSlashes(candidate.Dest), "/")
		if dest == "" {
			continue
		}
		if fullPath != dest && !strings.HasPrefix(fullPath, dest+"/") {
			continue
		}
		if best == nil || len(dest) > len(strings.TrimSuffix(normalizeSlashes(best.Dest), "/")) {
			best = candidate
		}
	}
	return best
}
