// Package sexpr reads larch source text into an s-expression tree. The
// reader is deliberately dumb: atoms are classified as numbers, strings, or
// symbols, and lists nest. Everything else — keywords, annotations, quote
// stripping — belongs to the form parser.
package sexpr

import (
	"strconv"
	"strings"

	"larch/internal/source"
)

// NodeKind enumerates s-expression node categories.
type NodeKind uint8

const (
	NodeList NodeKind = iota
	NodeNumber
	NodeBool
	NodeString
	NodeSymbol
)

// Node is one s-expression tree node. String nodes keep their quote
// delimiters in Text; that convention ends at the form parser boundary.
type Node struct {
	Kind  NodeKind
	Span  source.Span
	Num   float64 // NodeNumber
	Bool  bool    // NodeBool
	Text  string  // NodeSymbol, NodeString (quotes included)
	Items []*Node // NodeList
}

// IsSymbol reports whether the node is the given bare symbol.
func (n *Node) IsSymbol(text string) bool {
	return n.Kind == NodeSymbol && n.Text == text
}

// String renders the node back as source text. Used by `larch parse` and in
// error messages; not a formatter.
func (n *Node) String() string {
	switch n.Kind {
	case NodeNumber:
		return strconv.FormatFloat(n.Num, 'g', -1, 64)
	case NodeBool:
		return strconv.FormatBool(n.Bool)
	case NodeString, NodeSymbol:
		return n.Text
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return "<invalid>"
	}
}
