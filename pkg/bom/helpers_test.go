package bom

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/netbom/pkg/kicad/netfile"
	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// compSexp renders one (comp ...) element; fields are name/value pairs.
func compSexp(ref, value, footprint, lib, part string, fields ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(comp (ref %q) (value %q) (footprint %q)", ref, value, footprint)
	if len(fields) > 0 {
		b.WriteString(" (fields")
		for i := 0; i+1 < len(fields); i += 2 {
			fmt.Fprintf(&b, " (field (name %q) %q)", fields[i], fields[i+1])
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, " (libsource (lib %q) (part %q)))", lib, part)
	return b.String()
}

// libPartSexp renders one (libpart ...) element.
func libPartSexp(lib, part, description string, aliases ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(libpart (lib %q) (part %q) (description %q)", lib, part, description)
	if len(aliases) > 0 {
		b.WriteString(" (aliases")
		for _, a := range aliases {
			fmt.Fprintf(&b, " (alias %q)", a)
		}
		b.WriteString(")")
	}
	b.WriteString(")")
	return b.String()
}

func parseDesign(t *testing.T, comps, libparts []string) *netlist.Netlist {
	t.Helper()
	src := fmt.Sprintf("(export (version \"D\")\n(components\n%s)\n(libparts\n%s))",
		strings.Join(comps, "\n"), strings.Join(libparts, "\n"))
	nl, err := netfile.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return nl
}

func loadBoard(t *testing.T) *netlist.Netlist {
	t.Helper()
	nl, err := netfile.ParseFile(filepath.Join("..", "..", "testdata", "power_board.net"))
	require.NoError(t, err)
	return nl
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	return e
}

func refsOf(comps []*netlist.Component) []string {
	refs := make([]string, len(comps))
	for i, c := range comps {
		refs[i] = c.Ref()
	}
	return refs
}

func groupRefs(groups []*Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.References()
	}
	return out
}

func diagsOfKind(diags []netlist.Diagnostic, kind netlist.DiagnosticKind) []netlist.Diagnostic {
	var out []netlist.Diagnostic
	for _, d := range diags {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
