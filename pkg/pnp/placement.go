// Package pnp cross-checks a BOM against a pick-and-place (.pos) file.
//
// Both files are fabrication outputs and must agree: every fitted part in
// the BOM needs a placement, no placement may exist for a part the BOM does
// not list or marks as not fitted, and footprint and value must match.
package pnp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Placement is one line of a KiCad .pos file.
type Placement struct {
	Ref       string
	Value     string
	Footprint string
	X         string
	Y         string
	Rotation  string
	Side      string
}

// ReadPlacementFile reads a .pos file.
func ReadPlacementFile(filename string) ([]Placement, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadPlacement(file)
}

// ReadPlacement parses whitespace-separated placement lines. Lines starting
// with '#' are comments. Every other non-blank line must have exactly seven
// columns, and a reference may appear only once.
func ReadPlacement(r io.Reader) ([]Placement, error) {
	var places []Placement
	seen := map[string]bool{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 7 {
			return nil, fmt.Errorf("pnp: line %d: want 7 columns, got %d: %q", lineNo, len(fields), strings.TrimSpace(line))
		}

		p := Placement{
			Ref:       fields[0],
			Value:     fields[1],
			Footprint: fields[2],
			X:         fields[3],
			Y:         fields[4],
			Rotation:  fields[5],
			Side:      fields[6],
		}
		if seen[p.Ref] {
			return nil, fmt.Errorf("pnp: line %d: duplicate reference %s", lineNo, p.Ref)
		}
		seen[p.Ref] = true
		places = append(places, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pnp: %w", err)
	}
	return places, nil
}
