// Package sema implements the larch type checker: a recursive-descent pass
// over the tagged AST that infers or validates the type of every
// expression. Checking is fail-fast — the first violation aborts the whole
// pass as a *diag.Diagnostic error.
//
// A Checker instance owns one registry and one global scope and checks one
// program. Instances are not safe for concurrent use: declarations mutate
// the registry in place. Independent programs need independent instances.
package sema

import (
	"larch/internal/ast"
	"larch/internal/diag"
	"larch/internal/source"
	"larch/internal/types"
)

// Checker holds the per-session state: the type registry and the global
// scope chain root.
type Checker struct {
	reg    *types.Registry
	global *types.Env
}

// New creates a checker with a fresh registry and an empty global scope.
// The `null` value is pre-bound so root-class declarations and null
// initializers resolve without ceremony.
func New() *Checker {
	reg := types.NewRegistry()
	global := types.NewEnv(nil, map[string]types.Type{
		"null": reg.Builtins().Null,
	})
	return &Checker{reg: reg, global: global}
}

// Registry exposes the session registry, mainly for tests and tooling.
func (c *Checker) Registry() *types.Registry { return c.reg }

// Global returns the root scope.
func (c *Checker) Global() *types.Env { return c.global }

// CheckProgram checks a sequence of top-level forms in the global scope and
// returns the type of the last one. An empty program has type null.
func (c *Checker) CheckProgram(program []ast.Expr) (types.Type, error) {
	result := types.Type(c.reg.Builtins().Null)
	for _, expr := range program {
		var err error
		result, err = c.Check(expr, c.global)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Check infers the type of one expression in the given environment.
func (c *Checker) Check(expr ast.Expr, env *types.Env) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.NumberLit:
		return c.reg.Builtins().Number, nil
	case *ast.StringLit:
		return c.reg.Builtins().String, nil
	case *ast.BoolLit:
		return c.reg.Builtins().Boolean, nil
	case *ast.Ident:
		return c.checkIdent(e, env)
	case *ast.TypeOf:
		return c.checkTypeOf(e, env)
	case *ast.Binary:
		return c.checkBinary(e, env)
	case *ast.VarDecl:
		return c.checkVarDecl(e, env)
	case *ast.Assign:
		return c.checkAssign(e, env)
	case *ast.Block:
		return c.checkBlock(e, env)
	case *ast.If:
		return c.checkIf(e, env)
	case *ast.While:
		return c.checkWhile(e, env)
	case *ast.TypeDecl:
		return c.checkTypeDecl(e, env)
	case *ast.ClassDecl:
		return c.checkClassDecl(e, env)
	case *ast.New:
		return c.checkNew(e, env)
	case *ast.Super:
		return c.checkSuper(e)
	case *ast.Prop:
		return c.checkProp(e, env)
	case *ast.FuncDecl:
		return c.checkFuncDecl(e, env)
	case *ast.Call:
		return c.checkCall(e, env)
	default:
		return nil, diag.Errorf(diag.SemaTypeMismatch, expr.Span(), "unsupported expression")
	}
}

func (c *Checker) checkIdent(e *ast.Ident, env *types.Env) (types.Type, error) {
	if t, ok := env.Lookup(e.Name); ok {
		return t, nil
	}
	return nil, diag.Errorf(diag.SemaUnboundName, e.Pos, "unbound name %q", e.Name)
}

// checkTypeOf types the runtime type-name query itself. Only the narrowing
// shape inside an if-condition gives typeof static meaning; everywhere else
// it is just a string-producing expression.
func (c *Checker) checkTypeOf(e *ast.TypeOf, env *types.Env) (types.Type, error) {
	if _, err := c.Check(e.Target, env); err != nil {
		return nil, err
	}
	return c.reg.Builtins().String, nil
}

// resolveAnn resolves an annotation against the session registry, turning
// resolution failures into UnknownType diagnostics at the annotation span.
func (c *Checker) resolveAnn(ann *ast.TypeAnn, span source.Span) (types.Type, error) {
	if ann != nil && !ann.Pos.Empty() {
		span = ann.Pos
	}
	t, err := c.reg.ResolveAnn(ann)
	if err != nil {
		return nil, diag.Errorf(diag.SemaUnknownType, span, "%s", err.Error())
	}
	return t, nil
}

// resolveDesc resolves a bare descriptor string at the given span.
func (c *Checker) resolveDesc(desc string, span source.Span) (types.Type, error) {
	t, err := c.reg.Resolve(desc)
	if err != nil {
		return nil, diag.Errorf(diag.SemaUnknownType, span, "%s", err.Error())
	}
	return t, nil
}

// typesEqual is the mutual-equality check used everywhere a type must match
// an expectation. Equals carries the per-variant delegation rules (alias,
// union membership, superclass chain), and those rules are directional, so
// expectation checks accept a match from either side.
func typesEqual(a, b types.Type) bool {
	return a.Equals(b) || b.Equals(a)
}
