package netlist

import "strings"

// Attribute is a single name/value pair on a Node.
type Attribute struct {
	Name  string
	Value string
}

// Node is one element of a parsed netlist. Attributes keep their insertion
// order so a tree can be written back out unchanged. The parent pointer is a
// lookup aid only; a Node is owned by the children slice of its parent, and
// the root by the Netlist.
type Node struct {
	name     string
	attrs    []Attribute
	text     string
	children []*Node
	parent   *Node
}

// NewNode creates a detached node. Nodes that belong to a tree are created
// with AddChild so the parent link is established exactly once.
func NewNode(name string) *Node {
	return &Node{name: name}
}

// Name returns the element name.
func (n *Node) Name() string { return n.name }

// Text returns the accumulated character data.
func (n *Node) Text() string { return n.text }

// SetText replaces the character data.
func (n *Node) SetText(text string) { n.text = text }

// AppendText adds character data to the end of the existing text.
func (n *Node) AppendText(text string) { n.text += text }

// AddAttribute sets an attribute. Re-adding an existing name overwrites the
// value in place and keeps its original position.
func (n *Node) AddAttribute(name, value string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attribute{Name: name, Value: value})
}

// Attribute returns the named attribute and whether it is present.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attributes returns a copy of the attributes in insertion order.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// AddChild appends a new child element and returns it.
func (n *Node) AddChild(name string) *Node {
	child := &Node{name: name, parent: n}
	n.children = append(n.children, child)
	return child
}

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children in document order.
func (n *Node) Children() []*Node { return n.children }

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every direct child with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Get searches the subtree rooted at n in pre-order for the first element
// called elem and returns:
//
//   - its text, when attr is empty;
//   - the value of attr, when match is empty (empty if the attribute is absent);
//   - its text, when attr equals match.
//
// An element whose attr does not equal match is not a hit and the search
// descends into its children. Empty results from one child do not stop the
// search of later siblings. Get returns "" when nothing matches.
func (n *Node) Get(elem, attr, match string) string {
	if n.name == elem {
		switch {
		case attr == "":
			return n.text
		case match == "":
			v, _ := n.Attribute(attr)
			return v
		default:
			if v, ok := n.Attribute(attr); ok && v == match {
				return n.text
			}
		}
	}

	for _, c := range n.children {
		if v := c.Get(elem, attr, match); v != "" {
			return v
		}
	}
	return ""
}

// GetText is Get(elem, "", "").
func (n *Node) GetText(elem string) string {
	return n.Get(elem, "", "")
}

// String renders the node for debugging: name, text and attribute count.
func (n *Node) String() string {
	var b strings.Builder
	b.WriteString(n.name)
	b.WriteString("[")
	b.WriteString(n.text)
	b.WriteString("]")
	if len(n.attrs) > 0 {
		b.WriteString(" attrs:")
		for _, a := range n.attrs {
			b.WriteString(" ")
			b.WriteString(a.Name)
			b.WriteString("=")
			b.WriteString(a.Value)
		}
	}
	return b.String()
}
