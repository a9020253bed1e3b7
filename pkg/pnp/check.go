package pnp

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Report collects the result of a BOM / placement cross-check.
type Report struct {
	BOMItems int // references listed in the BOM
	DNFItems int // of which marked not fitted
	PNPItems int // placements

	// Problems in the BOM itself, including parts placed but not listed.
	BOMErrors []string
	// Problems in the placement file: missing placements, DNF parts placed,
	// footprint and value mismatches.
	PNPErrors []string

	MissingFromBOM []string
	MissingFromPNP []string
	DNFInPNP       []string
}

// Problems returns the total number of issues found.
func (r *Report) Problems() int {
	return len(r.BOMErrors) + len(r.PNPErrors)
}

// OK reports whether no issues were found.
func (r *Report) OK() bool { return r.Problems() == 0 }

// Check compares BOM lines against placements.
func Check(lines []Line, places []Placement) *Report {
	r := &Report{PNPItems: len(places)}

	placed := make(map[string]Placement, len(places))
	for _, p := range places {
		placed[p.Ref] = p
	}

	listed := map[string]bool{}
	for _, line := range lines {
		if !line.DNF() {
			checkQuantity(r, line)
		}

		for _, ref := range line.Refs {
			listed[ref] = true
			r.BOMItems++

			p, ok := placed[ref]
			if line.DNF() {
				r.DNFItems++
				if ok {
					r.DNFInPNP = append(r.DNFInPNP, ref)
				}
				continue
			}
			if !ok {
				r.MissingFromPNP = append(r.MissingFromPNP, ref)
				continue
			}

			if fp := line.Fields["Footprint"]; fp != p.Footprint {
				r.PNPErrors = append(r.PNPErrors,
					fmt.Sprintf("%s footprint mismatch - BOM: '%s', PNP: '%s'", ref, fp, p.Footprint))
			}
			if v := line.Fields["Value"]; v != p.Value {
				r.PNPErrors = append(r.PNPErrors,
					fmt.Sprintf("%s value mismatch - BOM: '%s', PNP: '%s'", ref, v, p.Value))
			}
		}
	}

	for _, p := range places {
		if !listed[p.Ref] {
			r.MissingFromBOM = append(r.MissingFromBOM, p.Ref)
		}
	}

	if len(r.MissingFromBOM) > 0 {
		r.BOMErrors = append(r.BOMErrors, countedList("parts missing from BOM file", r.MissingFromBOM))
	}
	if len(r.MissingFromPNP) > 0 {
		r.PNPErrors = append(r.PNPErrors, countedList("parts missing from PNP file", r.MissingFromPNP))
	}
	if len(r.DNFInPNP) > 0 {
		r.PNPErrors = append(r.PNPErrors, countedList("DNF parts included in PNP file", r.DNFInPNP))
	}

	return r
}

// checkQuantity compares the leading number of the Quantity cell with the
// number of references on the line.
func checkQuantity(r *Report, line Line) {
	fields := strings.Fields(line.Quantity)
	if len(fields) == 0 {
		r.BOMErrors = append(r.BOMErrors, fmt.Sprintf("Missing quantity: %s", strings.Join(line.Refs, " ")))
		return
	}
	q, err := strconv.Atoi(fields[0])
	if err != nil {
		r.BOMErrors = append(r.BOMErrors, fmt.Sprintf("Bad quantity %q: %s", line.Quantity, strings.Join(line.Refs, " ")))
		return
	}
	if q != len(line.Refs) {
		r.BOMErrors = append(r.BOMErrors,
			fmt.Sprintf("Quantity mismatch: [%s] != %d", strings.Join(line.Refs, " "), q))
	}
}

func countedList(what string, refs []string) string {
	sorted := slices.Clone(refs)
	slices.Sort(sorted)
	return fmt.Sprintf("%d %s: %s", len(refs), what, strings.Join(sorted, " "))
}

// CheckFiles reads a BOM (.csv) and a placement file (.pos) and checks them.
func CheckFiles(bomFile, posFile string) (*Report, error) {
	if filepath.Ext(bomFile) != ".csv" {
		return nil, fmt.Errorf("BOM file must be .csv: %s", bomFile)
	}
	if filepath.Ext(posFile) != ".pos" {
		return nil, fmt.Errorf("PNP file must be .pos: %s", posFile)
	}

	lines, err := ReadBOMFile(bomFile)
	if err != nil {
		return nil, err
	}
	places, err := ReadPlacementFile(posFile)
	if err != nil {
		return nil, err
	}
	return Check(lines, places), nil
}

// WriteSummary prints the report in plain text.
func (r *Report) WriteSummary(w io.Writer) {
	fmt.Fprintln(w, "Loaded Component Data:")
	if r.DNFItems > 0 {
		fmt.Fprintf(w, "BOM items: %d (DNF: %d)\n", r.BOMItems, r.DNFItems)
	} else {
		fmt.Fprintf(w, "BOM items: %d\n", r.BOMItems)
	}
	fmt.Fprintf(w, "PNP items: %d\n", r.PNPItems)
	fmt.Fprintln(w, "---------------------")

	writeIssues(w, "BOM", r.BOMErrors)
	writeIssues(w, "PNP", r.PNPErrors)
}

func writeIssues(w io.Writer, file string, issues []string) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(w, "There are %d issues found in the %s file:\n", len(issues), file)
	for _, e := range issues {
		fmt.Fprintf(w, "\t- %s\n", e)
	}
}
