// Package netfile reads KiCad netlist exports into a netlist.Netlist.
//
// Two encodings are supported: the XML "generic netlist" and the
// S-expression .net file eeschema writes by default. Both are streamed
// through a netlist.Builder so they produce identical trees.
package netfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Format identifies a netlist encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatXML
	FormatSexp
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatSexp:
		return "sexp"
	}
	return "unknown"
}

// ParseFile reads and parses a netlist file of either encoding.
func ParseFile(filename string) (*netlist.Netlist, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse detects the encoding from the first significant byte and parses the
// netlist.
func Parse(r io.Reader) (*netlist.Netlist, error) {
	br := bufio.NewReader(r)

	format, err := detect(br)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXML:
		return ParseXML(br)
	case FormatSexp:
		return ParseSexp(br)
	}
	return nil, fmt.Errorf("%w: unrecognised netlist encoding", netlist.ErrStructure)
}

// detect peeks past whitespace and a UTF-8 byte order mark.
func detect(br *bufio.Reader) (Format, error) {
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return FormatUnknown, fmt.Errorf("%w: empty document", netlist.ErrStructure)
		}
		if err != nil {
			return FormatUnknown, err
		}

		switch b {
		case ' ', '\t', '\r', '\n', 0xEF, 0xBB, 0xBF:
			continue
		case '<':
			return FormatXML, br.UnreadByte()
		case '(':
			return FormatSexp, br.UnreadByte()
		default:
			return FormatUnknown, nil
		}
	}
}
