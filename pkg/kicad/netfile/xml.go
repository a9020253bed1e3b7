package netfile

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// ParseXML reads a KiCad XML generic netlist.
func ParseXML(r io.Reader) (*netlist.Netlist, error) {
	dec := xml.NewDecoder(r)
	b := netlist.NewBuilder()

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var syntax *xml.SyntaxError
			if errors.As(err, &syntax) {
				return nil, fmt.Errorf("%w: line %d: %s", netlist.ErrStructure, syntax.Line, syntax.Msg)
			}
			return nil, fmt.Errorf("failed to read XML: %w", err)
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			attrs := make([]netlist.Attribute, 0, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs = append(attrs, netlist.Attribute{Name: a.Name.Local, Value: a.Value})
			}
			err = b.Begin(tok.Name.Local, attrs...)
		case xml.EndElement:
			err = b.End()
		case xml.CharData:
			err = b.Text(string(tok))
		}
		if err != nil {
			return nil, err
		}
	}

	return b.Finish()
}
