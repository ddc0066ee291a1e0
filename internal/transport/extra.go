package transport

import "github.com/ben-ranford/cmdtransport/internal/pkggraph"

// Shim maps a file extension to the runtime package its transformed output
// requires.
type Shim struct {
	Extension string
	Package   string
}

var shims = []Shim{
	{Extension: "handlebars", Package: "handlebars-runtime"},
	{Extension: "css", Package: "import-style"},
}

func Shims() []Shim {
	return append([]Shim(nil), shims...)
}

type ExtraResult struct {
	// Requires are additional lookup seeds, one per matched shim.
	Requires []pkggraph.Require
	// Dependencies is the dependency view narrowed to the matched shims.
	Dependencies map[string]*pkggraph.Package
}

// Extra derives the shim edges file needs. owner is the file's package and
// root the package whose declared dependencies must provide the shims.
func Extra(file *pkggraph.File, owner, root *pkggraph.Package) (ExtraResult, error) {
	result := ExtraResult{Dependencies: make(map[string]*pkggraph.Package)}
	if root == nil {
		root = owner
	}

	// a stylesheet pulled in from outside owner and its declared deps does
	// not make owner need the style runtime
	keepStyleDependency := func(info pkggraph.FileInfo) bool {
		if info.Extension != "css" || info.Pkg == nil {
			return true
		}
		return info.Pkg.Name == owner.Name || owner.Dependencies[info.Pkg.Name] != nil
	}

	for _, shim := range shims {
		if file.Extension != shim.Extension && !file.HasExtension(shim.Extension, keepStyleDependency) {
			continue
		}
		shimPkg := root.Dependencies[shim.Package]
		if shimPkg == nil {
			return ExtraResult{}, &MissingDependencyError{
				Shim:      shim.Package,
				Extension: shim.Extension,
				Package:   root.ID,
			}
		}

		result.Dependencies[shim.Package] = shimPkg
		result.Requires = append(result.Requires, pkggraph.Require{
			Path:      shimPkg.Main,
			Pkg:       shimPkg,
			Extension: pkggraph.Extension(shimPkg.Main),
		})
	}
	return result, nil
}
