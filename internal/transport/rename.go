package transport

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RenameInput carries the path being renamed. OriginPath stays the
// unrenamed path while rules run one after another.
type RenameInput struct {
	Path       string
	OriginPath string
	Dest       string
}

// RelativeOrigin is OriginPath relative to Dest.
func (in RenameInput) RelativeOrigin() string {
	return relativePath(in.Dest, in.OriginPath)
}

type RenameRule interface {
	Rename(in RenameInput) string
}

type FuncRule func(in RenameInput) string

func (f FuncRule) Rename(in RenameInput) string {
	return f(in)
}

// AffixRule rewrites parts of a file name. Match is a doublestar pattern
// tested against the package-relative origin path; empty matches all.
// Dirname is package-relative.
type AffixRule struct {
	Match    string `yaml:"match" toml:"match" json:"match"`
	Dirname  string `yaml:"dirname" toml:"dirname" json:"dirname"`
	Basename string `yaml:"basename" toml:"basename" json:"basename"`
	Prefix   string `yaml:"prefix" toml:"prefix" json:"prefix"`
	Suffix   string `yaml:"suffix" toml:"suffix" json:"suffix"`
	Extname  string `yaml:"extname" toml:"extname" json:"extname"`
}

func (r AffixRule) Rename(in RenameInput) string {
	if r.Match != "" {
		matched, err := doublestar.Match(r.Match, in.RelativeOrigin())
		if err != nil || !matched {
			return in.Path
		}
	}

	dir, base := path.Split(in.Path)
	ext := path.Ext(base)
	name := strings.TrimSuffix(base, ext)

	if r.Dirname != "" {
		dir = path.Join(in.Dest, r.Dirname)
	}
	if r.Basename != "" {
		name = r.Basename
	}
	if r.Extname != "" {
		ext = "." + strings.TrimPrefix(r.Extname, ".")
	}
	return path.Join(dir, r.Prefix+name+r.Suffix+ext)
}

// ValidatePattern reports whether the rule's Match pattern is well formed.
func (r AffixRule) ValidatePattern() bool {
	return r.Match == "" || doublestar.ValidatePattern(r.Match)
}

func applyRename(rules []RenameRule, in RenameInput) string {
	current := in.Path
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		current = normalizeSlashes(rule.Rename(RenameInput{
			Path:       current,
			OriginPath: in.OriginPath,
			Dest:       in.Dest,
		}))
	}
	return current
}
