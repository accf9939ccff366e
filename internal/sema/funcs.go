package sema

import (
	"larch/internal/ast"
	"larch/internal/diag"
	"larch/internal/source"
	"larch/internal/types"
)

// checkFuncDecl handles def and lambda. The simple form checks the body
// right away against the declared signature; the generic form defers
// everything to call sites.
func (c *Checker) checkFuncDecl(e *ast.FuncDecl, env *types.Env) (types.Type, error) {
	if len(e.TypeParams) > 0 {
		generic := types.NewGenericFunction(e.Name, e.TypeParams, e.Params, e.Ret, e.Body, env)
		if e.Name != "" {
			env.Define(e.Name, generic)
		}
		return generic, nil
	}

	paramTypes := make([]types.Type, len(e.Params))
	for i, param := range e.Params {
		t, err := c.resolveAnn(param.Ann, param.Pos)
		if err != nil {
			return nil, err
		}
		paramTypes[i] = t
	}
	retType, err := c.resolveAnn(e.Ret, e.Pos)
	if err != nil {
		return nil, err
	}
	fnType := types.NewFunction(paramTypes, retType)

	// A def's name is bound to the declared signature before the body is
	// checked, so recursive self-calls resolve against the declaration
	// rather than an inference of the body.
	if e.Name != "" {
		env.Define(e.Name, fnType)
	}

	if err := c.checkFunctionBody(e, paramTypes, retType, env); err != nil {
		return nil, err
	}
	return fnType, nil
}

// checkFunctionBody checks a body in a fresh scope binding each parameter
// to its declared type, then validates the body's type against the declared
// return type.
func (c *Checker) checkFunctionBody(e *ast.FuncDecl, paramTypes []types.Type, retType types.Type, env *types.Env) error {
	bindings := make(map[string]types.Type, len(e.Params))
	for i, param := range e.Params {
		bindings[param.Name] = paramTypes[i]
	}
	bodyType, err := c.Check(e.Body, env.Child(bindings))
	if err != nil {
		return err
	}
	if !typesEqual(retType, bodyType) {
		return diag.Errorf(diag.SemaTypeMismatch, e.Body.Span(),
			"declared return type %s does not match body type %s", retType.Name(), bodyType.Name())
	}
	return nil
}

// checkCall infers the head type, instantiates it if generic, and validates
// argument count and types.
func (c *Checker) checkCall(e *ast.Call, env *types.Env) (types.Type, error) {
	headType, err := c.Check(e.Head, env)
	if err != nil {
		return nil, err
	}

	var fn *types.Function
	switch head := headType.(type) {
	case *types.GenericFunction:
		fn, err = c.instantiate(head, e)
		if err != nil {
			return nil, err
		}
	case *types.Function:
		// Concrete head: any type-argument token is simply skipped.
		fn = head
	default:
		return nil, diag.Errorf(diag.SemaTypeMismatch, e.Head.Span(),
			"cannot call a value of type %s", headType.Name())
	}

	argTypes := make([]types.Type, len(e.Args))
	argExprs := make([]ast.Expr, len(e.Args))
	for i, arg := range e.Args {
		t, err := c.Check(arg, env)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
		argExprs[i] = arg
	}
	if err := c.checkCallArgs(fn, argTypes, argExprs, e.Pos); err != nil {
		return nil, err
	}
	return fn.Return(), nil
}

// instantiate builds the concrete signature for one generic call site:
// actual type arguments are matched positionally to the generic parameter
// names, every occurrence of a generic name in the raw annotations is
// substituted, and the body is re-checked against the result in the
// declaration-site (closure) environment. Nothing is cached — each call
// re-checks the body.
func (c *Checker) instantiate(generic *types.GenericFunction, e *ast.Call) (*types.Function, error) {
	names := generic.TypeParams()
	if len(e.TypeArgs) == 0 {
		return nil, diag.Errorf(diag.SemaArityMismatch, e.Pos,
			"%s requires an explicit type argument list", generic.Name())
	}
	if len(e.TypeArgs) != len(names) {
		return nil, diag.Errorf(diag.SemaArityMismatch, e.TypeArgsPos,
			"%s expects %d type arguments, got %d", generic.Name(), len(names), len(e.TypeArgs))
	}

	subst := make(map[string]string, len(names))
	for i, name := range names {
		subst[name] = e.TypeArgs[i].Name
	}

	rawParams := generic.RawParams()
	paramTypes := make([]types.Type, len(rawParams))
	concrete := &ast.FuncDecl{
		Pos:    generic.Body().Span(),
		Params: make([]ast.Param, len(rawParams)),
		Body:   generic.Body(),
	}
	for i, param := range rawParams {
		concrete.Params[i] = ast.Param{Pos: param.Pos, Name: param.Name, Ann: param.Ann.Substitute(subst)}
		t, err := c.resolveAnn(concrete.Params[i].Ann, param.Pos)
		if err != nil {
			return nil, err
		}
		paramTypes[i] = t
	}
	retType, err := c.resolveAnn(generic.RawReturn().Substitute(subst), e.TypeArgsPos)
	if err != nil {
		return nil, err
	}

	if err := c.checkFunctionBody(concrete, paramTypes, retType, generic.Env()); err != nil {
		return nil, err
	}
	return types.NewFunction(paramTypes, retType), nil
}

// checkCallArgs validates argument count and pointwise type equality. A
// parameter of type `any` accepts any argument without comparison — the one
// place `any` bypasses the equality relation. Implicit arguments (the class
// type a `new` form prepends) have a nil expression and report at the call
// span.
func (c *Checker) checkCallArgs(fn *types.Function, argTypes []types.Type, argExprs []ast.Expr, callSpan source.Span) error {
	params := fn.Params()
	if len(argTypes) != len(params) {
		return diag.Errorf(diag.SemaArityMismatch, callSpan,
			"expected %d arguments, got %d", len(params), len(argTypes))
	}
	anyType := c.reg.Builtins().Any
	for i, param := range params {
		if param == types.Type(anyType) {
			continue
		}
		if !typesEqual(param, argTypes[i]) {
			span := callSpan
			if argExprs[i] != nil {
				span = argExprs[i].Span()
			}
			return diag.Errorf(diag.SemaTypeMismatch, span,
				"argument %d has type %s, expected %s", i+1, argTypes[i].Name(), param.Name())
		}
	}
	return nil
}
