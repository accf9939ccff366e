package ast

import (
	"strings"

	"larch/internal/source"
)

// TypeAnn is a declared type annotation: either a textual descriptor
// ("number", "Point", "Fn<number<number,number>>", a generic placeholder)
// or an inline `(or T1 T2 ...)` union over nested annotations.
type TypeAnn struct {
	Pos     source.Span
	Name    string     // descriptor text; empty for unions
	Options []*TypeAnn // non-nil for inline unions
}

// IsUnion reports whether the annotation is an inline `(or ...)` union.
func (a *TypeAnn) IsUnion() bool {
	return a != nil && len(a.Options) > 0
}

func (a *TypeAnn) String() string {
	if a == nil {
		return "<none>"
	}
	if !a.IsUnion() {
		return a.Name
	}
	parts := make([]string, len(a.Options))
	for i, opt := range a.Options {
		parts[i] = opt.String()
	}
	return "(or " + strings.Join(parts, " ") + ")"
}

// Substitute returns the annotation with every whole-token occurrence of a
// generic placeholder replaced per subst. Descriptor text is substituted
// segment-wise so that placeholders nested inside Fn<...> descriptors are
// rewritten while longer names that merely contain a placeholder are not.
func (a *TypeAnn) Substitute(subst map[string]string) *TypeAnn {
	if a == nil {
		return nil
	}
	if a.IsUnion() {
		options := make([]*TypeAnn, len(a.Options))
		for i, opt := range a.Options {
			options[i] = opt.Substitute(subst)
		}
		return &TypeAnn{Pos: a.Pos, Options: options}
	}
	return &TypeAnn{Pos: a.Pos, Name: substituteDescriptor(a.Name, subst)}
}

// substituteDescriptor replaces identifier segments of a descriptor string.
// Segment boundaries are the descriptor punctuation characters `<`, `>`
// and `,`.
func substituteDescriptor(desc string, subst map[string]string) string {
	var out strings.Builder
	start := 0
	flush := func(end int) {
		seg := desc[start:end]
		if repl, ok := subst[seg]; ok {
			out.WriteString(repl)
		} else {
			out.WriteString(seg)
		}
	}
	for i := 0; i < len(desc); i++ {
		switch desc[i] {
		case '<', '>', ',':
			flush(i)
			out.WriteByte(desc[i])
			start = i + 1
		}
	}
	flush(len(desc))
	return out.String()
}
