package transport

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
)

const DefaultIdleading = "{{name}}/{{version}}"

type Include string

const (
	IncludeUnset    Include = ""
	IncludeSelf     Include = "self"
	IncludeRelative Include = "relative"
	IncludeAll      Include = "all"
)

func ParseInclude(value string) (Include, error) {
	switch mode := Include(strings.ToLower(strings.TrimSpace(value))); mode {
	case IncludeUnset, IncludeSelf, IncludeRelative, IncludeAll:
		return mode, nil
	default:
		return IncludeUnset, fmt.Errorf("%w: %s", ErrUnknownInclude, value)
	}
}

// Idleading is either a literal template or a function computing the id
// prefix from a file path and its package. The zero value renders
// DefaultIdleading.
type Idleading struct {
	template string
	literal  bool
	compute  func(filePath string, pkg *pkggraph.Package) string
}

func Literal(template string) Idleading {
	return Idleading{template: template, literal: true}
}

func Computed(fn func(filePath string, pkg *pkggraph.Package) string) Idleading {
	return Idleading{compute: fn}
}

// Resolve returns the unrendered template for filePath in pkg.
func (l Idleading) Resolve(filePath string, pkg *pkggraph.Package) string {
	switch {
	case l.compute != nil:
		return l.compute(filePath, pkg)
	case l.literal:
		return l.template
	default:
		return DefaultIdleading
	}
}

func (l Idleading) String() string {
	if l.compute != nil {
		return "<computed>"
	}
	return l.Resolve("", nil)
}

// Options configure a single transport call. They are values and are never
// modified by this package.
type Options struct {
	Idleading Idleading
	Rename    []RenameRule
	Ignore    []string
	Include   Include
	StyleBox  bool
	// Root is the package the build runs for. Shim dependencies are looked
	// up in it. Defaults to the package passed to each operation.
	Root *pkggraph.Package
}

func (o Options) root(pkg *pkggraph.Package) *pkggraph.Package {
	if o.Root != nil {
		return o.Root
	}
	return pkg
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}|\{(\w+)\}`)

// Template substitutes {key} and {{key}} placeholders with package fields.
// Unknown keys are left untouched.
func Template(template string, pkg *pkggraph.Package) string {
	if pkg == nil {
		return template
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		key := groups[1]
		if key == "" {
			key = groups[2]
		}
		switch key {
		case "id":
			return pkg.ID
		case "name":
			return pkg.Name
		case "version":
			return pkg.Version
		case "main":
			return pkg.Main
		default:
			return match
		}
	})
}
