package pnp

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Line is one row of a BOM CSV file.
type Line struct {
	Refs     []string
	Quantity string
	Fields   map[string]string
}

// DNF reports whether the line is marked as not fitted: a quantity of "0"
// or one containing "dnf".
func (l Line) DNF() bool {
	q := strings.ToLower(strings.TrimSpace(l.Quantity))
	return q == "0" || strings.Contains(q, "dnf")
}

// ReadBOMFile reads a BOM CSV file.
func ReadBOMFile(filename string) ([]Line, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadBOM(file)
}

// ReadBOM parses a BOM CSV. The first row holds the column names; a header
// starting with "Quantity" ("Quantity Per PCB") is renamed to Quantity. The
// table ends at the first empty row, so summary lines after it are ignored.
func ReadBOM(r io.Reader) ([]Line, error) {
	table, err := firstBlock(r)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(table))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pnp: BOM header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if strings.HasPrefix(h, "Quantity") {
			h = "Quantity"
		}
		header[i] = h
	}

	var lines []Line
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("pnp: BOM: %w", err)
		}
		if blankRow(row) {
			break
		}

		fields := make(map[string]string, len(header))
		for i, cell := range row {
			if i < len(header) {
				fields[header[i]] = cell
			}
		}
		lines = append(lines, Line{
			Refs:     strings.Fields(fields["References"]),
			Quantity: fields["Quantity"],
			Fields:   fields,
		})
	}
	return lines, nil
}

// firstBlock returns the input up to the first blank line. encoding/csv
// skips blank lines, so the end of the table has to be found beforehand.
func firstBlock(r io.Reader) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("pnp: %w", err)
	}
	return b.String(), nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
