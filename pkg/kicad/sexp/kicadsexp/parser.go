package kicadsexp

import (
	"fmt"
	"io"
)

// Handler receives S-expression structure as it is read. Open is called with
// the head symbol of every list, Atom for each remaining element that is not
// itself a list, and Close when the list ends. Returning an error aborts the
// walk.
type Handler interface {
	Open(head string) error
	Atom(value string, quoted bool) error
	Close() error
}

// Parser streams S-expressions from a lexer into a Handler without building
// an intermediate tree.
type Parser struct {
	lexer *Lexer
	depth int
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{
		lexer: NewLexer(r),
	}
}

// Walk parses every top-level list in the input and reports it to h.
// Bare atoms at the top level are rejected: every value must live inside a
// named list.
func (p *Parser) Walk(h Handler) error {
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return err
		}

		switch tok.Type {
		case TokenEOF:
			return nil
		case TokenLeftParen:
			if err := p.walkList(h, tok); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: unexpected %s at top level", tok.Line, tok.Type)
		}
	}
}

// walkList handles one list whose opening parenthesis has been consumed.
func (p *Parser) walkList(h Handler, open Token) error {
	head, err := p.lexer.NextToken()
	if err != nil {
		return err
	}

	switch head.Type {
	case TokenSymbol, TokenString:
	case TokenEOF:
		return fmt.Errorf("line %d: unexpected EOF in list", open.Line)
	default:
		return fmt.Errorf("line %d: list must start with a symbol, got %s", head.Line, head.Type)
	}

	p.depth++
	if err := h.Open(head.Value); err != nil {
		return err
	}

	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return err
		}

		switch tok.Type {
		case TokenRightParen:
			p.depth--
			return h.Close()
		case TokenLeftParen:
			if err := p.walkList(h, tok); err != nil {
				return err
			}
		case TokenSymbol, TokenString:
			if err := h.Atom(tok.Value, tok.Type == TokenString); err != nil {
				return err
			}
		case TokenEOF:
			return fmt.Errorf("line %d: unexpected EOF, %d list(s) still open", tok.Line, p.depth)
		}
	}
}

// Walk streams the S-expressions read from r into h.
func Walk(r io.Reader, h Handler) error {
	return NewParser(r).Walk(h)
}
