package bom

import (
	"regexp"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Filter selects the components that belong on a BOM.
type Filter struct {
	refs       []*regexp.Regexp
	values     []*regexp.Regexp
	footprints []*regexp.Regexp
}

// NewFilter compiles the exclusion patterns of cfg.
func NewFilter(cfg *Config) (*Filter, error) {
	refs, err := compilePatterns("excluded_references", cfg.ExcludedReferences)
	if err != nil {
		return nil, err
	}
	values, err := compilePatterns("excluded_values", cfg.ExcludedValues)
	if err != nil {
		return nil, err
	}
	footprints, err := compilePatterns("excluded_footprints", cfg.ExcludedFootprints)
	if err != nil {
		return nil, err
	}
	return &Filter{refs: refs, values: values, footprints: footprints}, nil
}

// Excluded reports whether c is left off the BOM: its reference, value or
// footprint starts with an excluded pattern, or its Installed field is "NU"
// (normally uninstalled).
func (f *Filter) Excluded(c *netlist.Component) bool {
	switch {
	case matchAny(f.refs, c.Ref()):
		return true
	case matchAny(f.values, c.Value()):
		return true
	case matchAny(f.footprints, c.Footprint()):
		return true
	}
	return c.Field("Installed") == "NU"
}

// Apply returns the components that pass the filter, sorted by reference in
// natural order. The input slice is not modified.
func (f *Filter) Apply(comps []*netlist.Component) []*netlist.Component {
	out := make([]*netlist.Component, 0, len(comps))
	for _, c := range comps {
		if !f.Excluded(c) {
			out = append(out, c)
		}
	}
	SortComponents(out)
	return out
}
