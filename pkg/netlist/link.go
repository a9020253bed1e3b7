package netlist

import "fmt"

// Link binds every component to its library part. An exact library and part
// name match is preferred; failing that, the first part listing the
// component's part name as an alias is used. Components left unbound are
// returned as UnresolvedLibPart diagnostics.
func (nl *Netlist) Link() []Diagnostic {
	var diags []Diagnostic

	for _, c := range nl.Components {
		lib, part := c.LibName(), c.PartName()

		p := nl.findLibPart(lib, part)
		if p == nil {
			p = nl.findAlias(part)
		}
		if p == nil {
			diags = append(diags, Diagnostic{
				Kind:    UnresolvedLibPart,
				Ref:     c.Ref(),
				Message: fmt.Sprintf("no library part %q in library %q", part, lib),
			})
			continue
		}
		c.SetLibPart(p)
	}

	return diags
}

func (nl *Netlist) findLibPart(lib, part string) *LibPart {
	for _, p := range nl.LibParts {
		if p.LibName() == lib && p.PartName() == part {
			return p
		}
	}
	return nil
}

func (nl *Netlist) findAlias(part string) *LibPart {
	for _, p := range nl.LibParts {
		if p.HasAlias(part) {
			return p
		}
	}
	return nil
}
