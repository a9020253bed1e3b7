package bom

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// Engine turns a linked netlist into BOM line items. An Engine holds only
// compiled configuration and may be reused for any number of netlists.
type Engine struct {
	filter         *Filter
	matcher        *Matcher
	columns        []string
	protected      map[string]bool
	matchColumns   []string
	excludedFields []*regexp.Regexp
	log            logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for grouping and harmonization details.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine validates cfg and compiles it into an Engine.
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filter, err := NewFilter(cfg)
	if err != nil {
		return nil, err
	}
	excludedFields, err := compilePatterns("excluded_fields", cfg.ExcludedFields)
	if err != nil {
		return nil, err
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Engine{
		filter:         filter,
		matcher:        NewMatcher(cfg),
		columns:        append([]string(nil), cfg.Columns...),
		protected:      stringSet(cfg.Protected),
		matchColumns:   append([]string(nil), cfg.MatchColumns...),
		excludedFields: excludedFields,
		log:            discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Filter returns the engine's component filter.
func (e *Engine) Filter() *Filter { return e.filter }

// Matcher returns the engine's equivalence matcher.
func (e *Engine) Matcher() *Matcher { return e.matcher }

// Interesting returns the components of nl that belong on a BOM, in
// natural reference order.
func (e *Engine) Interesting(nl *netlist.Netlist) []*netlist.Component {
	return e.filter.Apply(nl.Components)
}

// Group partitions comps into line items in a single greedy pass. Each
// component joins the first group whose first member it is equivalent to, or
// starts a new group. A component whose reference is already in the matching
// group is dropped. Members are then sorted by reference and groups by
// reference prefix and value.
//
// Only first members are compared, so a component equivalent to a later
// member but not the first one starts a group of its own, and a chain of
// pairwise matches can end up in one group even when its ends differ.
func (e *Engine) Group(comps []*netlist.Component) []*Group {
	var groups []*Group

	for _, c := range comps {
		placed := false
		for _, g := range groups {
			if !e.matcher.Equivalent(c, g.First()) {
				continue
			}
			if !g.add(c) {
				e.log.WithField("ref", c.Ref()).Debug("Dropping duplicate reference")
			}
			placed = true
			break
		}
		if !placed {
			groups = append(groups, newGroup(c, e.matcher, e.protected))
		}
	}

	for _, g := range groups {
		g.sortMembers()
	}
	slices.SortStableFunc(groups, func(a, b *Group) int {
		if c := strings.Compare(a.Prefix(), b.Prefix()); c != 0 {
			return c
		}
		return strings.Compare(a.Value(), b.Value())
	})

	e.log.WithFields(logrus.Fields{
		"components": len(comps),
		"groups":     len(groups),
	}).Debug("Grouped components")

	return groups
}

// Columns returns the output columns for a BOM of comps drawn from nl.
func (e *Engine) Columns(nl *netlist.Netlist, comps []*netlist.Component) []string {
	discovered := ComponentFieldUnion(comps, e.excludedFields)
	discovered = append(discovered, LibPartFieldUnion(nl.LibParts, e.excludedFields)...)
	slices.SortStableFunc(discovered, NaturalCompare)
	return columnSet(e.columns, discovered, e.excludedFields)
}

// BOM is the grouped, harmonized bill of materials for one netlist.
type BOM struct {
	Netlist     *netlist.Netlist
	Columns     []string
	Components  []*netlist.Component // components that passed the filter
	Groups      []*Group
	Diagnostics []netlist.Diagnostic
}

// Rows returns one harmonized row per group.
func (b *BOM) Rows() []Row {
	rows := make([]Row, len(b.Groups))
	for i, g := range b.Groups {
		rows[i] = g.HarmonizedRow(b.Columns)
	}
	return rows
}

// DesignRows returns one row per group using design data only.
func (b *BOM) DesignRows() []Row {
	rows := make([]Row, len(b.Groups))
	for i, g := range b.Groups {
		rows[i] = g.DesignRow(b.Columns)
	}
	return rows
}

// Build filters, groups and harmonizes nl. records may be nil; otherwise the
// first record matching a group on every match column backs that group's
// unprotected columns.
func (e *Engine) Build(nl *netlist.Netlist, records []Record) *BOM {
	comps := e.Interesting(nl)
	b := &BOM{
		Netlist:     nl,
		Columns:     e.Columns(nl, comps),
		Components:  comps,
		Groups:      e.Group(comps),
		Diagnostics: append([]netlist.Diagnostic(nil), nl.Diagnostics...),
	}

	for _, g := range b.Groups {
		for _, d := range g.UpdateFields(b.Columns) {
			e.log.WithFields(logrus.Fields{
				"refs": d.Ref,
			}).Debug(d.Message)
			b.Diagnostics = append(b.Diagnostics, d)
		}

		if d, ok := e.attachRecord(g, records); ok {
			b.Diagnostics = append(b.Diagnostics, d)
		}

		if g.IsFitted() && g.HarmonizedField(ColDatasheet) == "" {
			b.Diagnostics = append(b.Diagnostics, netlist.Diagnostic{
				Kind:    netlist.MissingDatasheet,
				Ref:     g.References(),
				Message: fmt.Sprintf("no datasheet for %s %s", g.Field(ColPart), g.Field(ColValue)),
			})
		}
	}

	return b
}

func (e *Engine) attachRecord(g *Group, records []Record) (netlist.Diagnostic, bool) {
	var matched int
	for _, r := range records {
		if !g.MatchesRecord(r, e.matchColumns) {
			continue
		}
		if matched == 0 {
			g.SetRecord(r)
		}
		matched++
	}
	if matched < 2 {
		return netlist.Diagnostic{}, false
	}
	return netlist.Diagnostic{
		Kind:    netlist.DuplicateRecord,
		Ref:     g.References(),
		Message: fmt.Sprintf("%d records match, using the first", matched),
	}, true
}
