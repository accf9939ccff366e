package sema

import (
	"larch/internal/ast"
	"larch/internal/diag"
	"larch/internal/source"
	"larch/internal/types"
)

// checkTypeDecl registers a union or an alias. The registry is append-only:
// reusing any registered (or primitive) name is a DuplicateType error.
func (c *Checker) checkTypeDecl(e *ast.TypeDecl, env *types.Env) (types.Type, error) {
	if c.reg.Has(e.Name) {
		return nil, c.duplicateType(e.Name, e.NamePos)
	}
	if e.Ann.IsUnion() {
		options := make([]types.Type, 0, len(e.Ann.Options))
		for _, opt := range e.Ann.Options {
			t, err := c.resolveAnn(opt, e.Pos)
			if err != nil {
				return nil, err
			}
			options = append(options, t)
		}
		union := types.NewUnion(e.Name, options)
		if err := c.reg.Register(e.Name, union, e.NamePos); err != nil {
			return nil, c.duplicateType(e.Name, e.NamePos)
		}
		return union, nil
	}
	base, err := c.resolveAnn(e.Ann, e.Pos)
	if err != nil {
		return nil, err
	}
	alias := types.NewAlias(e.Name, base)
	if err := c.reg.Register(e.Name, alias, e.NamePos); err != nil {
		return nil, c.duplicateType(e.Name, e.NamePos)
	}
	return alias, nil
}

// duplicateType builds the DuplicateType diagnostic, pointing a note at the
// first declaration when one exists (primitives have no declaration site).
func (c *Checker) duplicateType(name string, span source.Span) *diag.Diagnostic {
	d := diag.Errorf(diag.SemaDuplicateType, span, "type %q is already declared", name)
	if orig, ok := c.reg.DeclaredAt(name); ok {
		d.WithNote(orig, "%q first declared here", name)
	}
	return d
}

// checkClassDecl resolves the superclass first, builds the class scope as a
// child of the superclass scope (or of the declaring environment for root
// classes), registers the class, and only then checks the body inside the
// new scope. Field and method declarations populate the scope in order, so
// forward references to later siblings fail as unbound names.
func (c *Checker) checkClassDecl(e *ast.ClassDecl, env *types.Env) (types.Type, error) {
	if c.reg.Has(e.Name) {
		return nil, c.duplicateType(e.Name, e.NamePos)
	}

	var super *types.Class
	scopeParent := env
	if e.Super != "null" {
		resolved, err := c.resolveClass(e.Super, e.SuperPos)
		if err != nil {
			return nil, err
		}
		super = resolved
		scopeParent = super.Scope()
	}

	cls := types.NewClass(e.Name, super, scopeParent)
	if err := c.reg.Register(e.Name, cls, e.NamePos); err != nil {
		return nil, c.duplicateType(e.Name, e.NamePos)
	}
	env.Define(e.Name, cls)

	// The body populates the class scope directly; a wrapping `begin` must
	// not hide fields and methods in a throwaway child scope.
	if block, ok := e.Body.(*ast.Block); ok {
		if _, err := c.checkSequence(block.Body, cls.Scope()); err != nil {
			return nil, err
		}
	} else if _, err := c.Check(e.Body, cls.Scope()); err != nil {
		return nil, err
	}
	return cls, nil
}

// checkNew resolves the class, checks the arguments, and performs a
// function-call check against the class's constructor with the class type
// prepended as the implicit first argument.
func (c *Checker) checkNew(e *ast.New, env *types.Env) (types.Type, error) {
	cls, err := c.resolveClass(e.Class, e.ClassPos)
	if err != nil {
		return nil, err
	}
	ctor, ok := cls.LookupField("constructor")
	if !ok {
		return nil, diag.Errorf(diag.SemaUnresolvedField, e.ClassPos,
			"class %q has no constructor", cls.Name())
	}
	fn, ok := ctor.(*types.Function)
	if !ok {
		return nil, diag.Errorf(diag.SemaTypeMismatch, e.ClassPos,
			"constructor of %q is not a function", cls.Name())
	}

	argTypes := []types.Type{cls}
	argSpans := []ast.Expr{nil}
	for _, arg := range e.Args {
		t, err := c.Check(arg, env)
		if err != nil {
			return nil, err
		}
		argTypes = append(argTypes, t)
		argSpans = append(argSpans, arg)
	}
	if err := c.checkCallArgs(fn, argTypes, argSpans, e.Pos); err != nil {
		return nil, err
	}
	return cls, nil
}

// checkSuper returns the resolved class's recorded superclass type. A root
// class has no superclass; its `super` is null.
func (c *Checker) checkSuper(e *ast.Super) (types.Type, error) {
	cls, err := c.resolveClass(e.Class, e.ClassPos)
	if err != nil {
		return nil, err
	}
	if cls.Super() == nil {
		return c.reg.Builtins().Null, nil
	}
	return cls.Super(), nil
}

// checkProp infers the instance type and resolves the field through the
// class's own-and-inherited scope chain.
func (c *Checker) checkProp(e *ast.Prop, env *types.Env) (types.Type, error) {
	instType, err := c.Check(e.Object, env)
	if err != nil {
		return nil, err
	}
	cls, ok := classOf(instType)
	if !ok {
		return nil, diag.Errorf(diag.SemaTypeMismatch, e.Object.Span(),
			"property access requires a class instance, got %s", instType.Name())
	}
	fieldType, ok := cls.LookupField(e.Field)
	if !ok {
		return nil, diag.Errorf(diag.SemaUnresolvedField, e.FieldPos,
			"class %q has no field %q", cls.Name(), e.Field)
	}
	return fieldType, nil
}

// resolveClass resolves a class name through the registry, unwrapping
// aliases. Anything else is an UnknownClass error.
func (c *Checker) resolveClass(name string, span source.Span) (*types.Class, error) {
	t, ok := c.reg.LookupName(name)
	if !ok {
		return nil, diag.Errorf(diag.SemaUnknownClass, span, "unknown class %q", name)
	}
	cls, ok := classOf(t)
	if !ok {
		return nil, diag.Errorf(diag.SemaUnknownClass, span, "%q is not a class", name)
	}
	return cls, nil
}

// classOf unwraps alias chains down to a class.
func classOf(t types.Type) (*types.Class, bool) {
	for {
		switch v := t.(type) {
		case *types.Class:
			return v, true
		case *types.Alias:
			t = v.Parent()
		default:
			return nil, false
		}
	}
}
