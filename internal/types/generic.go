package types

import (
	"larch/internal/ast"
)

// GenericFunction is a deferred declaration: nothing about it is checked
// until a call site instantiates it with explicit actual type arguments.
// It captures the generic parameter names, the raw (unsubstituted)
// parameter and return annotations, the unchecked body, and the
// declaration-site environment.
type GenericFunction struct {
	name       string
	typeParams []string
	params     []ast.Param
	ret        *ast.TypeAnn
	body       ast.Expr
	env        *Env
}

// NewGenericFunction captures a generic declaration. name is empty for
// anonymous lambdas.
func NewGenericFunction(name string, typeParams []string, params []ast.Param, ret *ast.TypeAnn, body ast.Expr, env *Env) *GenericFunction {
	return &GenericFunction{
		name:       name,
		typeParams: typeParams,
		params:     params,
		ret:        ret,
		body:       body,
		env:        env,
	}
}

func (g *GenericFunction) Name() string {
	if g.name == "" {
		return "generic lambda"
	}
	return "generic " + g.name
}

// Equals always fails: generic functions are never compared, only
// instantiated.
func (g *GenericFunction) Equals(Type) bool { return false }

// TypeParams returns the generic parameter names in declaration order.
func (g *GenericFunction) TypeParams() []string { return g.typeParams }

// RawParams returns the unsubstituted parameter annotations.
func (g *GenericFunction) RawParams() []ast.Param { return g.params }

// RawReturn returns the unsubstituted return annotation.
func (g *GenericFunction) RawReturn() *ast.TypeAnn { return g.ret }

// Body returns the unchecked function body.
func (g *GenericFunction) Body() ast.Expr { return g.body }

// Env returns the declaration-site environment (the closure scope every
// instantiation is checked in).
func (g *GenericFunction) Env() *Env { return g.env }
