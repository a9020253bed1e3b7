package units

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ValueLexer splits an engineering value such as "4k7", "100 nF" or "2.2MΩ"
// into digits and letter runs.
var ValueLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	// Letters plus the micro sign, Greek mu and ohm sign.
	{Name: "Word", Pattern: `[a-zA-Z\x{00B5}\x{03BC}\x{03A9}\x{03C9}\x{2126}]+`},
})

// valueExpr is the grammar for a single value: a number, optionally followed
// by a prefix/unit word, optionally followed by the digits after an embedded
// decimal point ("4k7", "4R7"). Whitespace is allowed only between the number
// and the word.
type valueExpr struct {
	Mantissa string      `parser:"@Number Whitespace?"`
	Suffix   *suffixExpr `parser:"@@?"`
}

type suffixExpr struct {
	Word     string `parser:"@Word"`
	Fraction string `parser:"@Number?"`
}
