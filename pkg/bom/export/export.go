// Package export renders BOM rows as CSV, YAML or a terminal table.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/OpenTraceLab/netbom/pkg/bom"
)

// Format names an output encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatCSV, FormatYAML, FormatTable}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want csv, yaml or table)", name)
}

// Options tune rendering.
type Options struct {
	Color bool // style the table header; ignored by CSV and YAML
}

// Write renders rows in the given format.
func Write(w io.Writer, f Format, columns []string, rows []bom.Row, opts Options) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, columns, rows)
	case FormatYAML:
		return WriteYAML(w, columns, rows)
	case FormatTable:
		return WriteTable(w, columns, rows, opts)
	}
	return fmt.Errorf("unknown format %q", f)
}

// WriteCSV writes a header line followed by one line per row.
func WriteCSV(w io.Writer, columns []string, rows []bom.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(cells(columns, row)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYAML writes a sequence of mappings with keys in column order.
// Empty cells are omitted.
func WriteYAML(w io.Writer, columns []string, rows []bom.Row) error {
	doc := make([]yaml.MapSlice, 0, len(rows))
	for _, row := range rows {
		item := yaml.MapSlice{}
		for _, col := range columns {
			if v := row[col]; v != "" {
				item = append(item, yaml.MapItem{Key: col, Value: v})
			}
		}
		doc = append(doc, item)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteTable draws rows as a bordered table. Columns that are empty in every
// row are left out to keep the table narrow.
func WriteTable(w io.Writer, columns []string, rows []bom.Row, opts Options) error {
	columns = nonEmptyColumns(columns, rows)

	body := make([][]string, len(rows))
	for i, row := range rows {
		body[i] = cells(columns, row)
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := cellStyle
	if opts.Color {
		headerStyle = cellStyle.Bold(true).Foreground(lipgloss.Color("35"))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(columns...).
		Rows(body...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func cells(columns []string, row bom.Row) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = row[col]
	}
	return out
}

func nonEmptyColumns(columns []string, rows []bom.Row) []string {
	var out []string
	for _, col := range columns {
		for _, row := range rows {
			if row[col] != "" {
				out = append(out, col)
				break
			}
		}
	}
	return out
}
