package bom

import (
	"regexp"
	"slices"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Column names the BOM always carries.
const (
	ColDescription = "Description"
	ColPart        = "Part"
	ColReferences  = "References"
	ColValue       = "Value"
	ColFootprint   = "Footprint"
	ColQuantity    = "Quantity"
	ColDatasheet   = "Datasheet"
)

// FixedColumns are present in every BOM and cannot be excluded.
var FixedColumns = []string{
	ColDescription, ColPart, ColReferences, ColValue, ColFootprint, ColQuantity, ColDatasheet,
}

// ComponentFieldUnion returns the distinct field names found on any of the
// components, minus names matching an excluded pattern, in natural order.
func ComponentFieldUnion(comps []*netlist.Component, excluded []*regexp.Regexp) []string {
	seen := map[string]bool{}
	for _, c := range comps {
		for _, name := range c.FieldNames() {
			seen[name] = true
		}
	}
	return unionNames(seen, excluded)
}

// LibPartFieldUnion is ComponentFieldUnion for library parts.
func LibPartFieldUnion(parts []*netlist.LibPart, excluded []*regexp.Regexp) []string {
	seen := map[string]bool{}
	for _, p := range parts {
		for _, name := range p.FieldNames() {
			seen[name] = true
		}
	}
	return unionNames(seen, excluded)
}

func unionNames(seen map[string]bool, excluded []*regexp.Regexp) []string {
	names := make([]string, 0, len(seen))
	for name := range seen {
		if name == "" || matchAny(excluded, name) {
			continue
		}
		names = append(names, name)
	}
	slices.SortFunc(names, NaturalCompare)
	return names
}

// columnSet orders the output columns: fixed columns first, then the other
// configured columns, then any field discovered in the design. Excluded
// names are dropped unless fixed.
func columnSet(configured, discovered []string, excluded []*regexp.Regexp) []string {
	fixed := stringSet(FixedColumns)
	seen := map[string]bool{}
	out := make([]string, 0, len(FixedColumns)+len(configured)+len(discovered))

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		if !fixed[name] && matchAny(excluded, name) {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	for _, name := range FixedColumns {
		add(name)
	}
	for _, name := range configured {
		add(name)
	}
	for _, name := range discovered {
		add(name)
	}
	return out
}
