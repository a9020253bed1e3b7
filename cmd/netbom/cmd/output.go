package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func diagnosticColor(kind netlist.DiagnosticKind, enabled bool) *color.Color {
	var c *color.Color
	switch kind {
	case netlist.UnresolvedLibPart, netlist.DuplicateRecord:
		c = color.New(color.FgYellow)
	case netlist.FieldConflict:
		c = color.New(color.FgCyan)
	default:
		c = color.New(color.Faint)
	}
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// printDiagnostics writes one line per diagnostic, coloured by kind.
func printDiagnostics(w io.Writer, diags []netlist.Diagnostic, colored bool) {
	for _, d := range diags {
		diagnosticColor(d.Kind, colored).Fprintln(w, d.String())
	}
	if len(diags) > 0 {
		fmt.Fprintf(w, "%d diagnostic(s)\n", len(diags))
	}
}
