package netfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/kicad/sexp/kicadsexp"
	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// sexpAttributes lists, per element, the (key value) lists that are written
// as attributes in the XML form of the same netlist. Every other list becomes
// a child element.
var sexpAttributes = map[string]map[string]bool{
	"export":    {"version": true},
	"comp":      {"ref": true},
	"libsource": {"lib": true, "part": true, "description": true},
	"sheetpath": {"names": true, "tstamps": true},
	"property":  {"name": true, "value": true},
	"field":     {"name": true},
	"libpart":   {"lib": true, "part": true},
	"pin":       {"num": true, "name": true, "type": true},
	"unit":      {"name": true},
	"library":   {"logical": true},
	"net":       {"code": true, "name": true},
	"node":      {"ref": true, "pin": true, "pinfunction": true, "pintype": true},
	"sheet":     {"number": true, "name": true, "tstamps": true},
	"comment":   {"number": true, "value": true},
}

// ParseSexp reads a KiCad S-expression netlist (.net).
func ParseSexp(r io.Reader) (*netlist.Netlist, error) {
	h := &sexpHandler{b: netlist.NewBuilder()}
	if err := kicadsexp.Walk(r, h); err != nil {
		if h.builderErr {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", netlist.ErrStructure, err)
	}
	return h.b.Finish()
}

type sexpFrame struct {
	name   string
	attr   bool
	values []string
	atoms  int
}

// sexpHandler turns walk events into builder calls, folding attribute lists
// into the enclosing element.
type sexpHandler struct {
	b          *netlist.Builder
	stack      []*sexpFrame
	builderErr bool
}

func (h *sexpHandler) top() *sexpFrame {
	if len(h.stack) == 0 {
		return nil
	}
	return h.stack[len(h.stack)-1]
}

func (h *sexpHandler) Open(head string) error {
	parent := h.top()
	if parent != nil && parent.attr {
		return fmt.Errorf("list (%s) inside attribute %q", head, parent.name)
	}

	frame := &sexpFrame{name: head}
	if parent != nil && sexpAttributes[parent.name][head] {
		frame.attr = true
		h.stack = append(h.stack, frame)
		return nil
	}

	h.stack = append(h.stack, frame)
	return h.builder(h.b.Begin(head))
}

func (h *sexpHandler) Atom(value string, _ bool) error {
	frame := h.top()
	if frame.attr {
		frame.values = append(frame.values, value)
		return nil
	}

	if frame.atoms > 0 {
		value = " " + value
	}
	frame.atoms++
	return h.builder(h.b.Text(value))
}

func (h *sexpHandler) Close() error {
	frame := h.top()
	h.stack = h.stack[:len(h.stack)-1]
	if frame.attr {
		return h.builder(h.b.Attr(frame.name, strings.Join(frame.values, " ")))
	}
	return h.builder(h.b.End())
}

func (h *sexpHandler) builder(err error) error {
	if err != nil {
		h.builderErr = true
	}
	return err
}
