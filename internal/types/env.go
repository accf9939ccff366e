package types

// Env is a parent-linked scope mapping names to types. A child never
// mutates its parent: Define always writes into the receiving scope, while
// Lookup walks up to the root.
type Env struct {
	parent   *Env
	bindings map[string]Type
}

// NewEnv creates a scope with the given parent and initial bindings. The
// initial map is copied, so callers may reuse it.
func NewEnv(parent *Env, initial map[string]Type) *Env {
	bindings := make(map[string]Type, len(initial))
	for name, t := range initial {
		bindings[name] = t
	}
	return &Env{parent: parent, bindings: bindings}
}

// Child returns a new scope parented to the receiver, pre-populated with
// the given bindings.
func (e *Env) Child(initial map[string]Type) *Env {
	return NewEnv(e, initial)
}

// Define inserts or overwrites a binding in the current scope only and
// returns the bound type.
func (e *Env) Define(name string, t Type) Type {
	e.bindings[name] = t
	return t
}

// Lookup searches the current scope and then each parent in turn.
func (e *Env) Lookup(name string) (Type, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if t, ok := scope.bindings[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// LookupLocal searches only the receiving scope. Class field resolution
// uses it to walk the inheritance chain without leaking into the enclosing
// lexical environment.
func (e *Env) LookupLocal(name string) (Type, bool) {
	t, ok := e.bindings[name]
	return t, ok
}

// Parent returns the enclosing scope, or nil at the root.
func (e *Env) Parent() *Env { return e.parent }
