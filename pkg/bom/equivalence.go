package bom

import (
	"slices"
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
	"github.com/OpenTraceLab/netbom/pkg/units"
)

// Matcher decides whether two components are the same BOM line item.
type Matcher struct {
	aliases  [][]string
	doNotFit []string
}

// NewMatcher builds a matcher from the alias classes and do-not-fit
// vocabulary of cfg.
func NewMatcher(cfg *Config) *Matcher {
	m := &Matcher{doNotFit: append([]string(nil), cfg.DoNotFit...)}
	for _, class := range cfg.Aliases {
		m.aliases = append(m.aliases, lowerAll(class))
	}
	return m
}

// MatchResult holds the outcome of each individual check.
type MatchResult struct {
	Value     bool
	Footprint bool
	Library   bool
	Part      bool
	Fitted    bool
}

// Equivalent reports whether every check passed.
func (r MatchResult) Equivalent() bool {
	return r.Value && r.Footprint && r.Library && r.Part && r.Fitted
}

// String names the failed checks, or "equivalent".
func (r MatchResult) String() string {
	if r.Equivalent() {
		return "equivalent"
	}
	var failed []string
	for _, c := range []struct {
		ok   bool
		name string
	}{
		{r.Value, "value"},
		{r.Footprint, "footprint"},
		{r.Library, "library"},
		{r.Part, "part"},
		{r.Fitted, "fitted"},
	} {
		if !c.ok {
			failed = append(failed, c.name)
		}
	}
	return "differs in " + strings.Join(failed, ", ")
}

// Match runs all checks on a and b.
func (m *Matcher) Match(a, b *netlist.Component) MatchResult {
	return MatchResult{
		Value:     m.ValueMatch(a, b),
		Footprint: m.FootprintMatch(a, b),
		Library:   m.LibraryMatch(a, b),
		Part:      m.PartMatch(a, b),
		Fitted:    m.FittedMatch(a, b),
	}
}

// Equivalent reports whether a and b belong on the same BOM line.
func (m *Matcher) Equivalent(a, b *netlist.Component) bool {
	return m.Match(a, b).Equivalent()
}

// ValueMatch compares values case-insensitively or by magnitude ("4k7" and
// "4700"). Connector values are free text and always match.
func (m *Matcher) ValueMatch(a, b *netlist.Component) bool {
	if isConnector(a) || isConnector(b) {
		return true
	}
	va, vb := a.Value(), b.Value()
	return strings.EqualFold(va, vb) || units.Compare(va, vb)
}

// FootprintMatch compares resolved footprints case-insensitively.
func (m *Matcher) FootprintMatch(a, b *netlist.Component) bool {
	return strings.EqualFold(a.Footprint(), b.Footprint())
}

// LibraryMatch compares library names case-insensitively.
func (m *Matcher) LibraryMatch(a, b *netlist.Component) bool {
	return strings.EqualFold(a.LibName(), b.LibName())
}

// PartMatch compares part names case-insensitively, treating names from the
// same alias class as equal.
func (m *Matcher) PartMatch(a, b *netlist.Component) bool {
	pa := strings.ToLower(a.PartName())
	pb := strings.ToLower(b.PartName())
	if pa == pb {
		return true
	}
	for _, class := range m.aliases {
		if slices.Contains(class, pa) && slices.Contains(class, pb) {
			return true
		}
	}
	return false
}

// FittedMatch requires both components to be fitted or both not fitted.
func (m *Matcher) FittedMatch(a, b *netlist.Component) bool {
	return m.IsFitted(a) == m.IsFitted(b)
}

// IsFitted applies the configured do-not-fit vocabulary.
func (m *Matcher) IsFitted(c *netlist.Component) bool {
	return c.FittedAgainst(m.doNotFit)
}

func isConnector(c *netlist.Component) bool {
	return strings.Contains(strings.ToLower(c.Description()), "connector")
}
