// Package netlist holds the in-memory form of a KiCad generic netlist: a
// tree of attributed nodes plus flat indexes of the components, library
// parts, nets and libraries it contains.
//
// A Netlist is produced by a Builder driven from a markup parser (see
// package netfile). Once the document is complete the Builder links every
// component to its library part; links that cannot be resolved are reported
// as Diagnostics rather than errors.
package netlist

// Netlist is a fully built and linked design.
type Netlist struct {
	Root       *Node
	Design     *Node
	Components []*Component
	LibParts   []*LibPart
	Nets       []*Node
	Libraries  []*Node

	// Diagnostics collected while linking.
	Diagnostics []Diagnostic
}

// Date returns the export date recorded in the design block.
func (nl *Netlist) Date() string { return nl.designText("date") }

// Source returns the schematic the netlist was generated from.
func (nl *Netlist) Source() string { return nl.designText("source") }

// Tool returns the tool that generated the netlist.
func (nl *Netlist) Tool() string { return nl.designText("tool") }

// Sheet returns the first sheet element of the design block, or nil.
func (nl *Netlist) Sheet() *Node {
	if nl.Design == nil {
		return nil
	}
	return nl.Design.Child("sheet")
}

// Version returns the revision from the first sheet's title block.
func (nl *Netlist) Version() string {
	sheet := nl.Sheet()
	if sheet == nil {
		return ""
	}
	return sheet.GetText("rev")
}

// Component returns the component with the given reference, or nil. When a
// reference occurs more than once the last one wins.
func (nl *Netlist) Component(ref string) *Component {
	var found *Component
	for _, c := range nl.Components {
		if c.Ref() == ref {
			found = c
		}
	}
	return found
}

func (nl *Netlist) designText(name string) string {
	if nl.Design == nil {
		return ""
	}
	return nl.Design.GetText(name)
}
