package bom

import (
	"slices"
	"strings"

	"github.com/OpenTraceLab/netbom/pkg/netlist"
)

// NaturalCompare orders strings so that embedded numbers compare by value:
// "R2" < "R10". Strings are split into alternating runs of non-digits and
// digits; digit runs compare numerically, the rest byte-wise. Strings whose
// runs all compare equal ("R01", "R1") fall back to a plain comparison so the
// order is total.
func NaturalCompare(a, b string) int {
	ka, kb := naturalRuns(a), naturalRuns(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if c := compareRun(ka[i], kb[i]); c != 0 {
			return c
		}
	}
	if len(ka) != len(kb) {
		if len(ka) < len(kb) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return NaturalCompare(a, b) < 0
}

// SortRefs sorts reference designators in natural order, in place.
func SortRefs(refs []string) {
	slices.SortStableFunc(refs, NaturalCompare)
}

// SortComponents sorts components by reference in natural order, in place.
func SortComponents(comps []*netlist.Component) {
	slices.SortStableFunc(comps, func(a, b *netlist.Component) int {
		return NaturalCompare(a.Ref(), b.Ref())
	})
}

type run struct {
	text  string
	digit bool
}

func naturalRuns(s string) []run {
	var runs []run
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[start]) {
			runs = append(runs, run{text: s[start:i], digit: isDigit(s[start])})
			start = i
		}
	}
	return runs
}

func compareRun(a, b run) int {
	if !a.digit || !b.digit {
		return strings.Compare(a.text, b.text)
	}
	// Compare digit runs without converting, so arbitrarily long numbers work.
	x := strings.TrimLeft(a.text, "0")
	y := strings.TrimLeft(b.text, "0")
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	return strings.Compare(x, y)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
