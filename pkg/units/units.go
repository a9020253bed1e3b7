// Package units compares component values written in engineering notation.
//
// "4k7", "4.7k", "4700" and "4.7kΩ" all denote the same resistance; "100nF"
// and "0.1uF" the same capacitance. Values are normalised to an exact decimal
// magnitude plus an optional unit and compared on those.
package units

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/shopspring/decimal"
)

// Unit is the physical unit of a value. The zero Unit means none was given.
type Unit string

const (
	NoUnit Unit = ""
	Farad  Unit = "F"
	Henry  Unit = "H"
	Ohm    Unit = "Ω"
)

var unitNames = map[string]Unit{
	"f":    Farad,
	"h":    Henry,
	"r":    Ohm,
	"ω":    Ohm, // lower case of both the Greek omega and the ohm sign
	"ohm":  Ohm,
	"ohms": Ohm,
}

// prefixes maps SI prefixes to powers of ten. Lookup is case-sensitive so
// that "m" (milli) and "M" (mega) stay distinct; "k" and "K" are both kilo.
var prefixes = map[string]int32{
	"p": -12,
	"n": -9,
	"u": -6,
	"µ": -6,
	"μ": -6,
	"m": -3,
	"k": 3,
	"K": 3,
	"M": 6,
	"G": 9,
	"T": 12,
}

var valueParser = participle.MustBuild[valueExpr](
	participle.Lexer(ValueLexer),
)

// Value is a parsed engineering value.
type Value struct {
	Magnitude decimal.Decimal
	Unit      Unit
}

func (v Value) String() string {
	return v.Magnitude.String() + string(v.Unit)
}

// Parse reads an engineering value. The entire string must be a value;
// "10k 1%" or "LM555" are rejected.
func Parse(s string) (Value, error) {
	expr, err := valueParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return Value{}, fmt.Errorf("units: %q: %w", s, err)
	}

	number := expr.Mantissa
	var (
		exp  int32
		unit Unit
	)

	if expr.Suffix != nil {
		exp, unit, err = splitWord(expr.Suffix.Word)
		if err != nil {
			return Value{}, fmt.Errorf("units: %q: %w", s, err)
		}
		if frac := expr.Suffix.Fraction; frac != "" {
			if strings.Contains(number, ".") || strings.Contains(frac, ".") {
				return Value{}, fmt.Errorf("units: %q: more than one decimal point", s)
			}
			number += "." + frac
		}
	}

	mag, err := decimal.NewFromString(number)
	if err != nil {
		return Value{}, fmt.Errorf("units: %q: %w", s, err)
	}
	return Value{Magnitude: mag.Shift(exp), Unit: unit}, nil
}

// splitWord interprets a letter run as a bare unit, a bare prefix, or a
// prefix followed by a unit.
func splitWord(word string) (int32, Unit, error) {
	if u, ok := unitNames[strings.ToLower(word)]; ok {
		return 0, u, nil
	}
	if strings.HasPrefix(strings.ToLower(word), "meg") {
		return unitAfter(6, word[len("meg"):])
	}

	for p, exp := range prefixes {
		if strings.HasPrefix(word, p) {
			return unitAfter(exp, word[len(p):])
		}
	}
	return 0, NoUnit, fmt.Errorf("unknown prefix or unit %q", word)
}

func unitAfter(exp int32, rest string) (int32, Unit, error) {
	if rest == "" {
		return exp, NoUnit, nil
	}
	u, ok := unitNames[strings.ToLower(rest)]
	if !ok {
		return 0, NoUnit, fmt.Errorf("unknown unit %q", rest)
	}
	return exp, u, nil
}

// Compare reports whether a and b denote the same quantity. Both must parse,
// their magnitudes must be equal, and their units must agree unless one of
// them carries no unit.
func Compare(a, b string) bool {
	va, err := Parse(a)
	if err != nil {
		return false
	}
	vb, err := Parse(b)
	if err != nil {
		return false
	}

	if !va.Magnitude.Equal(vb.Magnitude) {
		return false
	}
	return va.Unit == vb.Unit || va.Unit == NoUnit || vb.Unit == NoUnit
}
