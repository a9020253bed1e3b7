package netlist

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructure is wrapped by every error reporting a malformed document.
var ErrStructure = errors.New("netlist: malformed document")

// Element names the builder indexes as they are created.
const (
	ElemComponent = "comp"
	ElemLibPart   = "libpart"
	ElemNet       = "net"
	ElemLibrary   = "library"
	ElemDesign    = "design"
)

type builderState int

const (
	stateIdle builderState = iota
	stateBuilding
	stateDone
)

// Builder assembles a Netlist from parser callbacks. Call Begin for each
// element start, Attr for attributes that arrive after the start (as in
// S-expression input), Text for character data, End for each element end and
// Finish once the input is exhausted.
//
// Any structural error is sticky: later calls return it again and Finish
// never exposes the partial tree.
type Builder struct {
	nl    *Netlist
	cur   *Node
	state builderState
	err   error
}

// NewBuilder returns a builder waiting for the root element.
func NewBuilder() *Builder {
	return &Builder{nl: &Netlist{}}
}

// Begin opens a new element. The first call creates the root; every later
// call appends a child to the current element and descends into it.
func (b *Builder) Begin(name string, attrs ...Attribute) error {
	if b.err != nil {
		return b.err
	}

	switch b.state {
	case stateIdle:
		b.cur = NewNode(name)
		b.nl.Root = b.cur
		b.state = stateBuilding
	case stateBuilding:
		b.cur = b.cur.AddChild(name)
	case stateDone:
		return b.fail("second root element <%s>", name)
	}

	for _, a := range attrs {
		b.cur.AddAttribute(a.Name, a.Value)
	}
	b.index(b.cur)
	return nil
}

// Attr sets an attribute on the current element.
func (b *Builder) Attr(name, value string) error {
	if b.err != nil {
		return b.err
	}
	if b.state != stateBuilding {
		return b.fail("attribute %q outside any element", name)
	}
	b.cur.AddAttribute(name, value)
	return nil
}

// Text appends character data to the current element. Runs that are
// entirely whitespace are ignored.
func (b *Builder) Text(text string) error {
	if b.err != nil {
		return b.err
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if b.state != stateBuilding {
		return b.fail("text %q outside any element", text)
	}
	b.cur.AppendText(text)
	return nil
}

// End closes the current element and returns to its parent.
func (b *Builder) End() error {
	if b.err != nil {
		return b.err
	}
	if b.state != stateBuilding {
		return b.fail("element end without matching begin")
	}
	b.cur = b.cur.Parent()
	if b.cur == nil {
		b.state = stateDone
	}
	return nil
}

// Finish completes the document, links components to library parts and
// returns the netlist.
func (b *Builder) Finish() (*Netlist, error) {
	if b.err != nil {
		return nil, b.err
	}
	switch b.state {
	case stateIdle:
		return nil, b.fail("empty document")
	case stateBuilding:
		return nil, b.fail("element <%s> not closed", b.cur.Name())
	}
	b.nl.Diagnostics = append(b.nl.Diagnostics, b.nl.Link()...)
	return b.nl, nil
}

func (b *Builder) index(n *Node) {
	switch n.Name() {
	case ElemComponent:
		b.nl.Components = append(b.nl.Components, NewComponent(n))
	case ElemLibPart:
		b.nl.LibParts = append(b.nl.LibParts, NewLibPart(n))
	case ElemNet:
		b.nl.Nets = append(b.nl.Nets, n)
	case ElemLibrary:
		b.nl.Libraries = append(b.nl.Libraries, n)
	case ElemDesign:
		b.nl.Design = n
	}
}

func (b *Builder) fail(format string, args ...any) error {
	b.err = fmt.Errorf("%w: %s", ErrStructure, fmt.Sprintf(format, args...))
	return b.err
}
