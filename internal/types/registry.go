package types

import (
	"fmt"
	"strings"

	"larch/internal/ast"
	"larch/internal/source"
)

// Builtins holds the primitive singletons of one registry.
type Builtins struct {
	Number  *Primitive
	String  *Primitive
	Boolean *Primitive
	Null    *Primitive
	Any     *Primitive
}

// Registry is the session-wide table of declared type names. It is owned by
// exactly one checker instance, append-only for one full program check, and
// never shared between sessions. The descriptor cache memoizes parsed
// Fn<...> descriptors under their exact descriptor string.
type Registry struct {
	builtins  Builtins
	prims     map[string]*Primitive
	named     map[string]Type
	declSpans map[string]source.Span
	fnCache   map[string]*Function
}

// NewRegistry creates a registry seeded with fresh primitive singletons.
func NewRegistry() *Registry {
	r := &Registry{
		builtins: Builtins{
			Number:  &Primitive{name: "number"},
			String:  &Primitive{name: "string"},
			Boolean: &Primitive{name: "boolean"},
			Null:    &Primitive{name: "null"},
			Any:     &Primitive{name: "any"},
		},
		named:     make(map[string]Type),
		declSpans: make(map[string]source.Span),
		fnCache:   make(map[string]*Function),
	}
	r.prims = map[string]*Primitive{
		"number":  r.builtins.Number,
		"string":  r.builtins.String,
		"boolean": r.builtins.Boolean,
		"null":    r.builtins.Null,
		"any":     r.builtins.Any,
	}
	return r
}

// Builtins returns the primitive singletons.
func (r *Registry) Builtins() Builtins { return r.builtins }

// Has reports whether name is taken by a primitive or a declared type.
func (r *Registry) Has(name string) bool {
	if _, ok := r.prims[name]; ok {
		return true
	}
	_, ok := r.named[name]
	return ok
}

// Register records a declared alias, union, or class under name, remembering
// where it was declared. Names are append-only within a session; re-declaring
// is an error.
func (r *Registry) Register(name string, t Type, declared source.Span) error {
	if r.Has(name) {
		return fmt.Errorf("type %q is already declared", name)
	}
	r.named[name] = t
	r.declSpans[name] = declared
	return nil
}

// DeclaredAt returns the source span a type name was registered at.
// Primitives were never declared and report false.
func (r *Registry) DeclaredAt(name string) (source.Span, bool) {
	span, ok := r.declSpans[name]
	return span, ok
}

// LookupName returns a previously declared type.
func (r *Registry) LookupName(name string) (Type, bool) {
	t, ok := r.named[name]
	return t, ok
}

// Resolve maps a textual type descriptor to a type: primitives first, then
// declared names, then the structural Fn<Ret> / Fn<Ret<P1,P2,...>> grammar.
func (r *Registry) Resolve(desc string) (Type, error) {
	desc = strings.TrimSpace(desc)
	if t, ok := r.prims[desc]; ok {
		return t, nil
	}
	if t, ok := r.named[desc]; ok {
		return t, nil
	}
	if t, ok := r.fnCache[desc]; ok {
		return t, nil
	}
	if strings.HasPrefix(desc, "Fn<") && strings.HasSuffix(desc, ">") {
		fn, err := r.parseFnDescriptor(desc)
		if err != nil {
			return nil, err
		}
		r.fnCache[desc] = fn
		return fn, nil
	}
	return nil, fmt.Errorf("unknown type %q", desc)
}

// ResolveAnn resolves a parsed annotation: a descriptor symbol or an inline
// `(or ...)` union. Inline unions are anonymous; their canonical name is
// derived from the resolved options.
func (r *Registry) ResolveAnn(ann *ast.TypeAnn) (Type, error) {
	if ann == nil {
		return nil, fmt.Errorf("missing type annotation")
	}
	if !ann.IsUnion() {
		return r.Resolve(ann.Name)
	}
	options := make([]Type, 0, len(ann.Options))
	names := make([]string, 0, len(ann.Options))
	for _, opt := range ann.Options {
		t, err := r.ResolveAnn(opt)
		if err != nil {
			return nil, err
		}
		options = append(options, t)
		names = append(names, t.Name())
	}
	return NewUnion("(or "+strings.Join(names, " ")+")", options), nil
}

// parseFnDescriptor parses `Fn<Ret>` / `Fn<Ret<P1,P2,...>>`, recursively
// resolving the nested descriptors.
func (r *Registry) parseFnDescriptor(desc string) (*Function, error) {
	inner := desc[3 : len(desc)-1]
	retDesc, paramsDesc, err := splitFnInner(inner, desc)
	if err != nil {
		return nil, err
	}
	ret, err := r.Resolve(retDesc)
	if err != nil {
		return nil, err
	}
	var params []Type
	if paramsDesc != "" {
		for _, p := range splitTopLevel(paramsDesc) {
			pt, err := r.Resolve(p)
			if err != nil {
				return nil, err
			}
			params = append(params, pt)
		}
	}
	return NewFunction(params, ret), nil
}

// splitFnInner splits the inside of a Fn<...> descriptor into the return
// descriptor and the optional comma-separated parameter list. A return type
// that is itself Fn<...> keeps its own angle group:
//
//	number<number,number> -> "number", "number,number"
//	Fn<number>            -> "Fn<number>", ""
//	Fn<number><string>    -> "Fn<number>", "string"
func splitFnInner(inner, full string) (retDesc, paramsDesc string, err error) {
	rest := inner
	if strings.HasPrefix(inner, "Fn<") {
		end, ok := matchAngle(inner, 2)
		if !ok {
			return "", "", fmt.Errorf("malformed function descriptor %q", full)
		}
		retDesc = inner[:end+1]
		rest = inner[end+1:]
	} else if i := strings.IndexByte(inner, '<'); i >= 0 {
		retDesc = inner[:i]
		rest = inner[i:]
	} else {
		return inner, "", nil
	}
	if rest == "" {
		return retDesc, "", nil
	}
	if !strings.HasPrefix(rest, "<") {
		return "", "", fmt.Errorf("malformed function descriptor %q", full)
	}
	end, ok := matchAngle(rest, 0)
	if !ok || end != len(rest)-1 {
		return "", "", fmt.Errorf("malformed function descriptor %q", full)
	}
	return retDesc, rest[1:end], nil
}

// matchAngle returns the index of the '>' matching the '<' at open.
func matchAngle(s string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// splitTopLevel splits a comma-separated descriptor list, ignoring commas
// nested inside angle brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
