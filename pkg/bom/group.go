package bom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Row maps column names to cell values.
type Row map[string]string

// Group is one BOM line: a set of interchangeable components plus the
// harmonized field values computed for them.
type Group struct {
	members   []*netlist.Component
	fields    map[string]string
	record    Record
	matcher   *Matcher
	protected map[string]bool
}

func newGroup(first *netlist.Component, m *Matcher, protected map[string]bool) *Group {
	first.MarkGrouped()
	return &Group{
		members:   []*netlist.Component{first},
		fields:    map[string]string{},
		matcher:   m,
		protected: protected,
	}
}

// Components returns the members in their current order.
func (g *Group) Components() []*netlist.Component {
	return append([]*netlist.Component(nil), g.members...)
}

// First returns the member every candidate is compared against.
func (g *Group) First() *netlist.Component { return g.members[0] }

// Len returns the number of members, fitted or not.
func (g *Group) Len() int { return len(g.members) }

// Contains reports whether a member has the given reference.
func (g *Group) Contains(ref string) bool {
	for _, c := range g.members {
		if c.Ref() == ref {
			return true
		}
	}
	return false
}

// add appends c unless a member already carries its reference.
func (g *Group) add(c *netlist.Component) bool {
	if g.Contains(c.Ref()) {
		return false
	}
	c.MarkGrouped()
	g.members = append(g.members, c)
	return true
}

func (g *Group) sortMembers() {
	SortComponents(g.members)
}

// Refs returns the member references in member order.
func (g *Group) Refs() []string {
	refs := make([]string, len(g.members))
	for i, c := range g.members {
		refs[i] = c.Ref()
	}
	return refs
}

// References returns the member references space-joined.
func (g *Group) References() string {
	return strings.Join(g.Refs(), " ")
}

// IsFitted reports whether any member is fitted.
func (g *Group) IsFitted() bool {
	for _, c := range g.members {
		if g.matcher.IsFitted(c) {
			return true
		}
	}
	return false
}

// Quantity is the member count when any member is fitted, "0" otherwise.
func (g *Group) Quantity() string {
	if !g.IsFitted() {
		return "0"
	}
	return strconv.Itoa(len(g.members))
}

// Prefix returns the reference prefix of the first member.
func (g *Group) Prefix() string { return g.First().Prefix() }

// Value returns the value of the first member.
func (g *Group) Value() string { return g.First().Value() }

// UpdateFields recomputes the group's field values for the given columns.
//
// Each unprotected column is seeded with the first non-empty member value.
// Later values already contained in the seed (case-insensitively) are
// ignored; anything else is appended after a space and reported as a
// FieldConflict. References, Quantity, Value, Part, Description, Datasheet
// and Footprint are then set from the members directly, the footprint
// without its library name.
func (g *Group) UpdateFields(columns []string) []netlist.Diagnostic {
	var diags []netlist.Diagnostic
	g.fields = map[string]string{}

	for _, col := range columns {
		if g.protected[col] {
			continue
		}
		for _, c := range g.members {
			if d, ok := g.updateField(col, c.Field(col)); ok {
				diags = append(diags, d)
			}
		}
	}

	first := g.First()
	g.fields[ColReferences] = g.References()
	g.fields[ColQuantity] = g.Quantity()
	g.fields[ColValue] = first.Value()
	g.fields[ColPart] = first.PartName()
	g.fields[ColDescription] = first.Description()
	g.fields[ColDatasheet] = first.Datasheet()
	g.fields[ColFootprint] = trimLibrary(first.Footprint())

	return diags
}

func (g *Group) updateField(col, value string) (netlist.Diagnostic, bool) {
	if value == "" {
		return netlist.Diagnostic{}, false
	}
	existing := g.fields[col]
	switch {
	case existing == "":
		g.fields[col] = value
	case strings.Contains(strings.ToLower(existing), strings.ToLower(value)):
		// already covered
	default:
		g.fields[col] = existing + " " + value
		return netlist.Diagnostic{
			Kind:    netlist.FieldConflict,
			Ref:     g.References(),
			Message: fmt.Sprintf("%s: %q conflicts with %q", col, value, existing),
		}, true
	}
	return netlist.Diagnostic{}, false
}

// trimLibrary strips the "Library:" part of a footprint name.
func trimLibrary(footprint string) string {
	if i := strings.LastIndex(footprint, ":"); i >= 0 {
		return footprint[i+1:]
	}
	return footprint
}

// Field returns the design-derived value of a column.
func (g *Group) Field(col string) string { return g.fields[col] }

// Record returns the external record attached to the group, or nil.
func (g *Group) Record() Record { return g.record }

// SetRecord attaches an external record.
func (g *Group) SetRecord(r Record) { g.record = r }

// RecordField returns the external record's value for a column. Protected
// columns always read as empty.
func (g *Group) RecordField(col string) string {
	if g.protected[col] || g.record == nil {
		return ""
	}
	return g.record[col]
}

// HarmonizedField prefers design data and falls back to the external
// record. Protected columns only ever come from the design.
func (g *Group) HarmonizedField(col string) string {
	if g.protected[col] {
		return g.Field(col)
	}
	if v := g.Field(col); v != "" {
		return v
	}
	return g.RecordField(col)
}

// DesignRow returns the design-derived values for columns.
func (g *Group) DesignRow(columns []string) Row {
	return g.row(columns, g.Field)
}

// RecordRow returns the external record values for columns.
func (g *Group) RecordRow(columns []string) Row {
	return g.row(columns, g.RecordField)
}

// HarmonizedRow returns the merged values for columns.
func (g *Group) HarmonizedRow(columns []string) Row {
	return g.row(columns, g.HarmonizedField)
}

func (g *Group) row(columns []string, get func(string) string) Row {
	row := make(Row, len(columns))
	for _, col := range columns {
		row[col] = get(col)
	}
	return row
}

// MatchesRecord reports whether r agrees with the group on every match
// column. A column missing from either side is a mismatch.
func (g *Group) MatchesRecord(r Record, matchColumns []string) bool {
	for _, col := range matchColumns {
		want, ok := r[col]
		if !ok {
			return false
		}
		have, ok := g.fields[col]
		if !ok || have != want {
			return false
		}
	}
	return true
}
