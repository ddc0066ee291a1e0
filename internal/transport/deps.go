package transport

import (
	"github.com/ben-ranford/cmdtransport/internal/logging"
	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
)

// Deps walks the transitive requires of filePath in pkg and returns the
// dependency list for its module header, in discovery order.
//
// Ignored packages contribute their bare name. Stylesheets never appear.
// Relative requires inside other packages are left to those packages' own
// builds. With IncludeAll only externalised package names are reported.
func Deps(filePath string, pkg *pkggraph.Package, opts Options) ([]string, error) {
	file := pkg.Files[filePath]
	if file == nil {
		return nil, &NotIncludedError{Path: filePath, Package: pkg.ID, Known: pkg.FilePaths()}
	}

	extra, err := Extra(file, pkg, opts.root(pkg))
	if err != nil {
		return nil, err
	}
	ignored := idSet(DependencyPackages(opts.Ignore, pkg))

	var deps []string
	if opts.Include == IncludeAll {
		deps = file.Lookup(func(info pkggraph.FileInfo) (string, bool) {
			if info.Relative || info.Pkg == nil {
				return "", false
			}
			if info.Ignore || ignored[info.Pkg.ID] {
				return info.Pkg.Name, true
			}
			return "", false
		})
	} else {
		d := depsVisitor{owner: pkg, opts: opts, ignored: ignored}
		deps = file.Lookup(d.visit, extra.Requires...)
		if d.err != nil {
			return nil, d.err
		}
	}

	if deps == nil {
		deps = []string{}
	}
	logging.Named("transport:util").Debug("transport deps", "deps", deps, "pkg", pkg.ID, "include", string(opts.Include))
	return deps, nil
}

type depsVisitor struct {
	owner   *pkggraph.Package
	opts    Options
	ignored map[string]bool
	err     error
}

func (d *depsVisitor) visit(info pkggraph.FileInfo) (string, bool) {
	if d.err != nil || info.Pkg == nil {
		return "", false
	}
	if info.Ignore || (!info.Relative && d.ignored[info.Pkg.ID]) {
		return info.Pkg.Name, true
	}
	if info.Extension == "css" {
		return "", false
	}

	if info.Pkg.Name == d.owner.Name {
		// own files are concatenated by the include step in relative mode
		if d.opts.Include == IncludeRelative {
			return "", false
		}
	} else {
		if d.opts.Include == IncludeSelf || info.Relative {
			return "", false
		}
	}

	id, err := ID(info.Path, info.Pkg, d.opts)
	if err != nil {
		d.err = err
		return "", false
	}
	return id, true
}
