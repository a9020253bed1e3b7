package netlist

import "fmt"

// DiagnosticKind classifies a non-fatal problem found while processing a
// netlist.
type DiagnosticKind int

const (
	// UnresolvedLibPart: a component names a library part that does not exist.
	UnresolvedLibPart DiagnosticKind = iota
	// FieldConflict: group members disagree on a field value.
	FieldConflict
	// MissingDatasheet: a fitted BOM line has no datasheet.
	MissingDatasheet
	// DuplicateRecord: more than one external record matched a BOM line.
	DuplicateRecord
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnresolvedLibPart:
		return "unresolved-libpart"
	case FieldConflict:
		return "field-conflict"
	case MissingDatasheet:
		return "missing-datasheet"
	case DuplicateRecord:
		return "duplicate-record"
	}
	return fmt.Sprintf("diagnostic(%d)", int(k))
}

// Diagnostic is a semantic inconsistency. Processing continues after one is
// recorded.
type Diagnostic struct {
	Kind    DiagnosticKind
	Ref     string // component reference(s) concerned, space separated
	Message string
}

func (d Diagnostic) String() string {
	if d.Ref == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Kind, d.Ref, d.Message)
}
