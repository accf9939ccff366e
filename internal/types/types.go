// Package types is the larch type model: primitives, function types,
// aliases, classes, unions, and deferred generic functions, together with
// the lexical type environment and the per-session registry that resolves
// textual type descriptors.
//
// Types compare through Equals, a structural relation — never through Go
// pointer identity at call sites. Each variant carries its own rule; alias
// delegation makes the relation hold from either side of an alias.
package types

// Type is a value in the larch type hierarchy.
type Type interface {
	// Name returns the canonical name, e.g. "number" or
	// "Fn<number<number,number>>".
	Name() string
	// Equals is the sole comparability relation used by the checker.
	Equals(other Type) bool
}

// Primitive is one of the built-in types. Primitives are singletons within
// one registry; two registries never share them.
type Primitive struct {
	name string
}

func (p *Primitive) Name() string { return p.name }

// Equals: same singleton, or alias delegation from the right.
func (p *Primitive) Equals(other Type) bool {
	if alias, ok := other.(*Alias); ok {
		return alias.Equals(p)
	}
	o, ok := other.(*Primitive)
	return ok && o == p
}

// Function is a concrete function type: ordered parameters and a return
// type.
type Function struct {
	params []Type
	ret    Type
	name   string
}

// NewFunction builds a function type with a canonical descriptor name.
func NewFunction(params []Type, ret Type) *Function {
	return &Function{
		params: params,
		ret:    ret,
		name:   functionName(params, ret),
	}
}

func functionName(params []Type, ret Type) string {
	name := "Fn<" + ret.Name()
	if len(params) > 0 {
		name += "<"
		for i, p := range params {
			if i > 0 {
				name += ","
			}
			name += p.Name()
		}
		name += ">"
	}
	return name + ">"
}

func (f *Function) Name() string { return f.name }

// Params returns the ordered parameter types.
func (f *Function) Params() []Type { return f.params }

// Return returns the declared return type.
func (f *Function) Return() Type { return f.ret }

// Equals: pointwise parameter equality in order, plus return-type equality.
func (f *Function) Equals(other Type) bool {
	if alias, ok := other.(*Alias); ok {
		return alias.Equals(f)
	}
	o, ok := other.(*Function)
	if !ok || len(o.params) != len(f.params) {
		return false
	}
	for i, p := range f.params {
		if !p.Equals(o.params[i]) {
			return false
		}
	}
	return f.ret.Equals(o.ret)
}
