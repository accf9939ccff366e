package types

// Alias is a named type defined as exactly equivalent to its parent.
type Alias struct {
	name   string
	parent Type
}

// NewAlias builds an alias over parent. Alias chains may stack but must
// terminate in a primitive or class; the registry guarantees that by
// resolving the parent before registration.
func NewAlias(name string, parent Type) *Alias {
	return &Alias{name: name, parent: parent}
}

func (a *Alias) Name() string { return a.name }

// Parent returns the aliased type.
func (a *Alias) Parent() Type { return a.parent }

// Equals: same name, else delegate to the parent.
func (a *Alias) Equals(other Type) bool {
	if other.Name() == a.name {
		return true
	}
	return a.parent.Equals(other)
}

// Class is a nominal class type. Its scope holds fields and methods in
// declaration order and is parented to the superclass scope (or to the
// environment the class was declared in, for root classes). The superclass
// resolves before the scope is built, which keeps the chain acyclic.
type Class struct {
	name  string
	super *Class
	scope *Env
}

// NewClass builds a class whose scope is a fresh child of scopeParent.
func NewClass(name string, super *Class, scopeParent *Env) *Class {
	return &Class{
		name:  name,
		super: super,
		scope: scopeParent.Child(nil),
	}
}

func (c *Class) Name() string { return c.name }

// Super returns the recorded superclass, or nil.
func (c *Class) Super() *Class { return c.super }

// Scope returns the class's own scope.
func (c *Class) Scope() *Env { return c.scope }

// LookupField resolves a field or method through the own-and-inherited
// scope chain only; it never reaches the enclosing lexical environment.
func (c *Class) LookupField(name string) (Type, bool) {
	for cls := c; cls != nil; cls = cls.super {
		if t, ok := cls.scope.LookupLocal(name); ok {
			return t, true
		}
	}
	return nil, false
}

// Equals: identity, alias delegation, or delegation up the superclass
// chain — a subclass equals each of its ancestors.
func (c *Class) Equals(other Type) bool {
	if o, ok := other.(*Class); ok && o == c {
		return true
	}
	if alias, ok := other.(*Alias); ok {
		return alias.Equals(c)
	}
	if c.super != nil {
		return c.super.Equals(other)
	}
	return false
}
