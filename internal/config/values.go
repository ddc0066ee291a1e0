package config

import (
	"fmt"

	"github.com/ben-ranford/cmdtransport/internal/pkggraph"
	"github.com/ben-ranford/cmdtransport/internal/transport"
)

const DefaultWorkers = 4

type Values struct {
	Idleading string
	Include   string
	Ignore    []string
	StyleBox  bool
	Rename    []transport.AffixRule
	Workers   int
}

type Overrides struct {
	Idleading *string
	Include   *string
	Ignore    []string
	StyleBox  *bool
	Rename    []transport.AffixRule
	Workers   *int
}

func Defaults() Values {
	return Values{
		Idleading: transport.DefaultIdleading,
		Workers:   DefaultWorkers,
	}
}

func (o Overrides) Apply(base Values) Values {
	result := base
	if o.Idleading != nil {
		result.Idleading = *o.Idleading
	}
	if o.Include != nil {
		result.Include = *o.Include
	}
	if o.Ignore != nil {
		result.Ignore = append([]string{}, o.Ignore...)
	}
	if o.StyleBox != nil {
		result.StyleBox = *o.StyleBox
	}
	if o.Rename != nil {
		result.Rename = append([]transport.AffixRule{}, o.Rename...)
	}
	if o.Workers != nil {
		result.Workers = *o.Workers
	}
	return result
}

// Merge layers higher on top of o.
func (o Overrides) Merge(higher Overrides) Overrides {
	merged := o
	if higher.Idleading != nil {
		merged.Idleading = higher.Idleading
	}
	if higher.Include != nil {
		merged.Include = higher.Include
	}
	if higher.Ignore != nil {
		merged.Ignore = higher.Ignore
	}
	if higher.StyleBox != nil {
		merged.StyleBox = higher.StyleBox
	}
	if higher.Rename != nil {
		merged.Rename = higher.Rename
	}
	if higher.Workers != nil {
		merged.Workers = higher.Workers
	}
	return merged
}

func (v Values) Validate() error {
	if _, err := transport.ParseInclude(v.Include); err != nil {
		return err
	}
	if v.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", v.Workers)
	}
	for i, rule := range v.Rename {
		if !rule.ValidatePattern() {
			return fmt.Errorf("rename[%d]: invalid match pattern %q", i, rule.Match)
		}
	}
	return nil
}

// Options converts the values into transport options for root.
func (v Values) Options(root *pkggraph.Package) (transport.Options, error) {
	include, err := transport.ParseInclude(v.Include)
	if err != nil {
		return transport.Options{}, err
	}
	rules := make([]transport.RenameRule, 0, len(v.Rename))
	for _, rule := range v.Rename {
		rules = append(rules, rule)
	}
	return transport.Options{
		Idleading: transport.Literal(v.Idleading),
		Rename:    rules,
		Ignore:    append([]string{}, v.Ignore...),
		Include:   include,
		StyleBox:  v.StyleBox,
		Root:      root,
	}, nil
}
