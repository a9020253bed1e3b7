package netlist

import "strings"

// LibPart is a read-only view over a <libpart> element: the template shared
// by every component instantiated from the same library symbol.
type LibPart struct {
	node *Node
}

// NewLibPart wraps a libpart element.
func NewLibPart(n *Node) *LibPart {
	return &LibPart{node: n}
}

// Node returns the underlying element.
func (p *LibPart) Node() *Node { return p.node }

// LibName returns the library the part belongs to.
func (p *LibPart) LibName() string { return p.node.Get("libpart", "lib", "") }

// PartName returns the part (symbol) name.
func (p *LibPart) PartName() string { return p.node.Get("libpart", "part", "") }

// Description returns the part description.
func (p *LibPart) Description() string { return p.node.GetText("description") }

// Docs returns the documentation link text.
func (p *LibPart) Docs() string { return p.node.GetText("docs") }

// Field returns the value of the named template field, or "".
func (p *LibPart) Field(name string) string {
	return p.node.Get("field", "name", name)
}

// FieldNames lists the names of the part's fields in document order,
// duplicates included.
func (p *LibPart) FieldNames() []string {
	return fieldNames(p.node)
}

// Datasheet prefers an explicit Datasheet field. Without one the docs text is
// used if it looks like a link (http scheme or .pdf); otherwise "".
func (p *LibPart) Datasheet() string {
	if ds := p.Field("Datasheet"); ds != "" {
		return ds
	}
	docs := p.Docs()
	if strings.Contains(docs, "http") || strings.Contains(strings.ToLower(docs), ".pdf") {
		return docs
	}
	return ""
}

// Footprint returns the template Footprint field.
func (p *LibPart) Footprint() string { return p.Field("Footprint") }

// Aliases returns the part's alias names. ok is false when the part has no
// aliases container at all, and true with an empty slice when the container
// exists but is empty.
func (p *LibPart) Aliases() (aliases []string, ok bool) {
	container := p.node.Child("aliases")
	if container == nil {
		return nil, false
	}
	aliases = []string{}
	for _, c := range container.Children() {
		aliases = append(aliases, c.GetText("alias"))
	}
	return aliases, true
}

// HasAlias reports whether name is one of the part's aliases.
func (p *LibPart) HasAlias(name string) bool {
	aliases, _ := p.Aliases()
	for _, a := range aliases {
		if a == name {
			return true
		}
	}
	return false
}

func fieldNames(n *Node) []string {
	fields := n.Child("fields")
	if fields == nil {
		return nil
	}
	var names []string
	for _, f := range fields.Children() {
		names = append(names, f.Get("field", "name", ""))
	}
	return names
}
