package sexpr

import (
	"larch/internal/source"
)

// TokenKind enumerates reader token categories.
type TokenKind uint8

const (
	EOF TokenKind = iota
	LParen
	RParen
	Number
	String
	Symbol
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case Number:
		return "Number"
	case String:
		return "String"
	case Symbol:
		return "Symbol"
	default:
		return "Unknown"
	}
}

// Token is a single reader token. String tokens keep their surrounding
// quote characters in Text; stripping them is the form parser's job.
type Token struct {
	Kind TokenKind
	Span source.Span
	Text string
}
