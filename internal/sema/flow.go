package sema

import (
	"larch/internal/ast"
	"larch/internal/diag"
	"larch/internal/types"
)

// checkBlock opens a child scope and checks each subexpression in sequence;
// the block's type is the last subexpression's type. An empty block is an
// arity error — there is nothing to take a type from.
func (c *Checker) checkBlock(e *ast.Block, env *types.Env) (types.Type, error) {
	if len(e.Body) == 0 {
		return nil, diag.Errorf(diag.SemaArityMismatch, e.Pos, "begin requires at least one expression")
	}
	return c.checkSequence(e.Body, env.Child(nil))
}

// checkSequence checks expressions in order inside the given scope without
// opening another one. Class bodies reuse it to populate the class scope
// directly.
func (c *Checker) checkSequence(body []ast.Expr, scope *types.Env) (types.Type, error) {
	var result types.Type
	for _, expr := range body {
		var err error
		result, err = c.Check(expr, scope)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// checkIf requires a boolean condition and mutually equal branch types. A
// condition of the exact shape `(== (typeof x) "TypeName")` narrows x to
// the named type inside the consequent branch only.
func (c *Checker) checkIf(e *ast.If, env *types.Env) (types.Type, error) {
	condType, err := c.Check(e.Cond, env)
	if err != nil {
		return nil, err
	}
	if !typesEqual(condType, c.reg.Builtins().Boolean) {
		return nil, diag.Errorf(diag.SemaTypeMismatch, e.Cond.Span(),
			"if condition must be boolean, got %s", condType.Name())
	}

	thenEnv := env
	if name, narrowed, err := c.narrowedBinding(e.Cond); err != nil {
		return nil, err
	} else if narrowed != nil {
		thenEnv = env.Child(map[string]types.Type{name: narrowed})
	}

	thenType, err := c.Check(e.Then, thenEnv)
	if err != nil {
		return nil, err
	}
	elseType, err := c.Check(e.Else, env)
	if err != nil {
		return nil, err
	}
	if !typesEqual(thenType, elseType) {
		return nil, diag.Errorf(diag.SemaTypeMismatch, e.Else.Span(),
			"if branches must have equal types, got %s and %s", thenType.Name(), elseType.Name())
	}
	return thenType, nil
}

// narrowedBinding recognizes the sole narrowing shape: an equality test
// between a typeof query on a bare name and a quoted type-name literal.
// Outside the consequent branch the original binding is untouched.
func (c *Checker) narrowedBinding(cond ast.Expr) (string, types.Type, error) {
	binary, ok := cond.(*ast.Binary)
	if !ok || binary.Op != ast.OpEq || len(binary.Args) != 2 {
		return "", nil, nil
	}
	query, ok := binary.Args[0].(*ast.TypeOf)
	if !ok {
		return "", nil, nil
	}
	target, ok := query.Target.(*ast.Ident)
	if !ok {
		return "", nil, nil
	}
	lit, ok := binary.Args[1].(*ast.StringLit)
	if !ok {
		return "", nil, nil
	}
	narrowed, err := c.resolveDesc(lit.Value, lit.Pos)
	if err != nil {
		return "", nil, err
	}
	return target.Name, narrowed, nil
}

// checkWhile requires a boolean condition; the loop's type is its body's
// type.
func (c *Checker) checkWhile(e *ast.While, env *types.Env) (types.Type, error) {
	condType, err := c.Check(e.Cond, env)
	if err != nil {
		return nil, err
	}
	if !typesEqual(condType, c.reg.Builtins().Boolean) {
		return nil, diag.Errorf(diag.SemaTypeMismatch, e.Cond.Span(),
			"while condition must be boolean, got %s", condType.Name())
	}
	return c.Check(e.Body, env)
}
