package transport

import (
	"path"

	"github.com/ben-ranford/cmdtransport/internal/logging"
	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
)

// IncludeFiles lists, in discovery order, the absolute paths of the files
// that are concatenated after file when building opts.Root. The default mode
// is IncludeRelative.
func IncludeFiles(file EmittedFile, opts Options) ([]string, error) {
	if opts.Root == nil {
		return nil, ErrPackageMissing
	}
	loc, err := Locate(file, opts.Root)
	if err != nil {
		return nil, err
	}
	pkg := loc.Pkg
	seed := pkg.Files[loc.Path]
	if seed == nil {
		return nil, &NotIncludedError{Path: loc.Path, Package: pkg.ID, Known: pkg.FilePaths()}
	}

	include := opts.Include
	if include == IncludeUnset {
		include = IncludeRelative
	}
	ignored := idSet(DependencyPackages(opts.Ignore, pkg))
	extra, err := Extra(seed, pkg, opts.Root)
	if err != nil {
		return nil, err
	}

	files := seed.Lookup(func(info pkggraph.FileInfo) (string, bool) {
		if info.Pkg == nil || info.Ignore || ignored[info.Pkg.ID] {
			return "", false
		}
		dependent := info.Dependent

		if info.Extension == "css" {
			if dependent.Extension == "css" {
				return "", false
			}
			if include != IncludeAll && dependent.Extension == "js" && dependent.Pkg.Name != pkg.Name {
				return "", false
			}
			return path.Join(normalizeSlashes(info.Pkg.Dest), info.Path), true
		}

		if include == IncludeSelf {
			return "", false
		}
		if include == IncludeRelative && info.Pkg.Name != pkg.Name {
			return "", false
		}
		return path.Join(normalizeSlashes(info.Pkg.Dest), info.Path), true
	}, extra.Requires...)

	if files == nil {
		files = []string{}
	}
	logging.Named("transport:include").Debug("include files", "file", loc.Path, "count", len(files), "include", string(include))
	return files, nil
}
