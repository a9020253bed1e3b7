package netlist

import (
	"strings"
	"unicode"
)

// DoNotFit is the default vocabulary marking a component as not populated.
// Matching is a case-insensitive substring test.
var DoNotFit = []string{"dnf", "do not fit", "nofit", "no stuff", "nostuff", "noload", "do not load"}

// Component is a view over a <comp> element. Field lookups fall back to the
// linked library part when the instance itself has no value.
type Component struct {
	node    *Node
	libPart *LibPart
	grouped bool
}

// NewComponent wraps a comp element.
func NewComponent(n *Node) *Component {
	return &Component{node: n}
}

// Node returns the underlying element.
func (c *Component) Node() *Node { return c.node }

// Ref returns the reference designator, e.g. "R12".
func (c *Component) Ref() string { return c.node.Get("comp", "ref", "") }

// Value returns the component value.
func (c *Component) Value() string { return c.node.GetText("value") }

// SetValue rewrites the recorded value. It is a no-op when the component has
// no value element.
func (c *Component) SetValue(value string) {
	if v := c.node.Child("value"); v != nil {
		v.SetText(value)
	}
}

// PartName returns the symbol name from libsource.
func (c *Component) PartName() string { return c.node.Get("libsource", "part", "") }

// LibName returns the library name from libsource.
func (c *Component) LibName() string { return c.node.Get("libsource", "lib", "") }

// Timestamp returns the instance timestamp (tstamp, or tstamps on newer exports).
func (c *Component) Timestamp() string {
	if ts := c.node.GetText("tstamp"); ts != "" {
		return ts
	}
	return c.node.GetText("tstamps")
}

// LibPart returns the linked library part, or nil if linking failed.
func (c *Component) LibPart() *LibPart { return c.libPart }

// SetLibPart binds the component to its library part.
func (c *Component) SetLibPart(p *LibPart) { c.libPart = p }

// Grouped reports whether a grouping pass has placed the component.
func (c *Component) Grouped() bool { return c.grouped }

// MarkGrouped records that the component belongs to a group.
func (c *Component) MarkGrouped() { c.grouped = true }

// Field returns the named field, consulting the library part when the
// instance has none. Value, Footprint and Datasheet are stored as elements
// rather than fields and are answered from there; an instance field with one
// of those names is never read.
func (c *Component) Field(name string) string {
	return c.field(name, true)
}

// OwnField is Field without the library part fallback.
func (c *Component) OwnField(name string) string {
	return c.field(name, false)
}

func (c *Component) field(name string, libraryToo bool) string {
	switch name {
	case "Value":
		return c.Value()
	case "Footprint":
		return c.footprint(libraryToo)
	case "Datasheet":
		if ds := c.node.GetText("datasheet"); ds != "" && ds != "~" {
			return ds
		}
		if libraryToo && c.libPart != nil {
			return c.libPart.Datasheet()
		}
		return ""
	}

	v := c.node.Get("field", "name", name)
	if v == "" && libraryToo && c.libPart != nil {
		v = c.libPart.Field(name)
	}
	return v
}

// FieldNames lists the instance's own field names. Exports omit empty
// fields, so every name returned has a value.
func (c *Component) FieldNames() []string {
	return fieldNames(c.node)
}

// Footprint returns the instance footprint, falling back to the library part.
func (c *Component) Footprint() string {
	return c.footprint(true)
}

func (c *Component) footprint(libraryToo bool) string {
	fp := c.node.GetText("footprint")
	if fp == "" && libraryToo && c.libPart != nil {
		fp = c.libPart.Footprint()
	}
	return fp
}

// Datasheet returns the component datasheet: the instance's own datasheet
// element first, then the library part's.
func (c *Component) Datasheet() string {
	return c.field("Datasheet", true)
}

// Description comes from the library part; unlinked components fall back to
// the description carried on libsource.
func (c *Component) Description() string {
	if c.libPart != nil {
		if d := c.libPart.Description(); d != "" {
			return d
		}
	}
	return c.node.Get("libsource", "description", "")
}

// Prefix returns the leading run of letters in the reference, "U" for "U12".
func (c *Component) Prefix() string {
	ref := c.Ref()
	for i, r := range ref {
		if !unicode.IsLetter(r) {
			return ref[:i]
		}
	}
	return ref
}

// IsFitted reports whether the component is populated according to the
// default DoNotFit vocabulary.
func (c *Component) IsFitted() bool {
	return c.FittedAgainst(DoNotFit)
}

// FittedAgainst checks the value and Notes field against vocab; any
// occurrence marks the component as not fitted.
func (c *Component) FittedAgainst(vocab []string) bool {
	check := []string{
		strings.ToLower(c.Value()),
		strings.ToLower(c.Field("Notes")),
	}
	for _, item := range check {
		for _, word := range vocab {
			if strings.Contains(item, strings.ToLower(word)) {
				return false
			}
		}
	}
	return true
}
