package sexpr

import (
	"strconv"

	"larch/internal/diag"
	"larch/internal/source"
)

// Reader scans one file into tokens and s-expression nodes.
type Reader struct {
	cursor cursor
}

// NewReader creates a reader over the given file.
func NewReader(f *source.File) *Reader {
	return &Reader{cursor: newCursor(f)}
}

// Read parses the whole file into a sequence of top-level forms.
func Read(f *source.File) ([]*Node, error) {
	r := NewReader(f)
	var forms []*Node
	for {
		tok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return forms, nil
		}
		node, err := r.readNode(tok)
		if err != nil {
			return nil, err
		}
		forms = append(forms, node)
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (r *Reader) Next() (Token, error) {
	r.skipTrivia()
	start := r.cursor.off
	if r.cursor.eof() {
		return Token{Kind: EOF, Span: r.cursor.span(start)}, nil
	}
	ch := r.cursor.peek()
	switch {
	case ch == '(':
		r.cursor.bump()
		return Token{Kind: LParen, Span: r.cursor.span(start), Text: "("}, nil
	case ch == ')':
		r.cursor.bump()
		return Token{Kind: RParen, Span: r.cursor.span(start), Text: ")"}, nil
	case ch == '"':
		return r.scanString(start)
	default:
		return r.scanAtom(start)
	}
}

// readNode turns the token stream starting at tok into one node.
func (r *Reader) readNode(tok Token) (*Node, error) {
	switch tok.Kind {
	case LParen:
		return r.readList(tok)
	case RParen:
		return nil, diag.Errorf(diag.SynUnbalancedParen, tok.Span, "unexpected ')'")
	case Number:
		num, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, diag.Errorf(diag.LexBadNumber, tok.Span, "malformed number %q", tok.Text)
		}
		return &Node{Kind: NodeNumber, Span: tok.Span, Num: num}, nil
	case String:
		return &Node{Kind: NodeString, Span: tok.Span, Text: tok.Text}, nil
	case Symbol:
		if tok.Text == "true" || tok.Text == "false" {
			return &Node{Kind: NodeBool, Span: tok.Span, Bool: tok.Text == "true"}, nil
		}
		return &Node{Kind: NodeSymbol, Span: tok.Span, Text: tok.Text}, nil
	default:
		return nil, diag.Errorf(diag.SynUnexpectedEOF, tok.Span, "unexpected end of input")
	}
}

func (r *Reader) readList(open Token) (*Node, error) {
	list := &Node{Kind: NodeList, Span: open.Span}
	for {
		tok, err := r.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case RParen:
			list.Span = list.Span.Cover(tok.Span)
			return list, nil
		case EOF:
			return nil, diag.Errorf(diag.SynUnbalancedParen, open.Span, "unclosed '('")
		default:
			item, err := r.readNode(tok)
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
			list.Span = list.Span.Cover(item.Span)
		}
	}
}

// skipTrivia consumes whitespace and `;` line comments.
func (r *Reader) skipTrivia() {
	for !r.cursor.eof() {
		switch r.cursor.peek() {
		case ' ', '\t', '\n', '\r':
			r.cursor.bump()
		case ';':
			for !r.cursor.eof() && r.cursor.peek() != '\n' {
				r.cursor.bump()
			}
		default:
			return
		}
	}
}

func (r *Reader) scanString(start uint32) (Token, error) {
	r.cursor.bump() // opening quote
	for !r.cursor.eof() {
		ch := r.cursor.peek()
		r.cursor.bump()
		if ch == '"' {
			return Token{Kind: String, Span: r.cursor.span(start), Text: r.cursor.text(start)}, nil
		}
		if ch == '\n' {
			break
		}
	}
	return Token{}, diag.Errorf(diag.LexUnterminatedString, r.cursor.span(start), "unterminated string literal")
}

// scanAtom consumes a maximal run of atom bytes and classifies it as a
// number or symbol. Symbols may contain letters, digits, and the operator
// and annotation punctuation used by compound forms.
func (r *Reader) scanAtom(start uint32) (Token, error) {
	for !r.cursor.eof() && isAtomByte(r.cursor.peek()) {
		r.cursor.bump()
	}
	if r.cursor.off == start {
		span := r.cursor.span(start)
		ch := r.cursor.peek()
		r.cursor.bump()
		return Token{}, diag.Errorf(diag.LexUnknownChar, span, "unexpected character %q", string(rune(ch)))
	}
	text := r.cursor.text(start)
	kind := Symbol
	if startsNumber(text) {
		kind = Number
	}
	return Token{Kind: kind, Span: r.cursor.span(start), Text: text}, nil
}

func isAtomByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '(', ')', '"', ';':
		return false
	}
	return b > ' ' && b < 0x7f
}

func startsNumber(text string) bool {
	if text[0] >= '0' && text[0] <= '9' {
		return true
	}
	if (text[0] == '-' || text[0] == '+') && len(text) > 1 && text[1] >= '0' && text[1] <= '9' {
		return true
	}
	return false
}
