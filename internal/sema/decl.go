package sema

import (
	"larch/internal/ast"
	"larch/internal/diag"
	"larch/internal/types"
)

// checkVarDecl handles both var forms. The untyped form binds the inferred
// value type. The typed form validates the value against the declared type
// and binds the declared type — deliberate widening to an alias or union.
func (c *Checker) checkVarDecl(e *ast.VarDecl, env *types.Env) (types.Type, error) {
	valueType, err := c.Check(e.Value, env)
	if err != nil {
		return nil, err
	}
	if e.Ann == nil {
		return env.Define(e.Name, valueType), nil
	}
	declared, err := c.resolveAnn(e.Ann, e.Pos)
	if err != nil {
		return nil, err
	}
	if !typesEqual(declared, valueType) {
		return nil, diag.Errorf(diag.SemaTypeMismatch, e.Value.Span(),
			"cannot initialize %q declared as %s with a value of type %s",
			e.Name, declared.Name(), valueType.Name())
	}
	return env.Define(e.Name, declared), nil
}

// checkAssign handles both set forms. The simple form re-derives the
// current type of the target by checking it as a read; the property form
// resolves the field type through the class scope chain.
func (c *Checker) checkAssign(e *ast.Assign, env *types.Env) (types.Type, error) {
	valueType, err := c.Check(e.Value, env)
	if err != nil {
		return nil, err
	}
	switch target := e.Target.(type) {
	case *ast.Ident:
		current, err := c.checkIdent(target, env)
		if err != nil {
			return nil, err
		}
		if !typesEqual(current, valueType) {
			return nil, diag.Errorf(diag.SemaTypeMismatch, e.Value.Span(),
				"cannot assign value of type %s to %q of type %s",
				valueType.Name(), target.Name, current.Name())
		}
		return current, nil
	case *ast.Prop:
		fieldType, err := c.checkProp(target, env)
		if err != nil {
			return nil, err
		}
		if !typesEqual(fieldType, valueType) {
			return nil, diag.Errorf(diag.SemaTypeMismatch, e.Value.Span(),
				"cannot assign value of type %s to field %q of type %s",
				valueType.Name(), target.Field, fieldType.Name())
		}
		return fieldType, nil
	default:
		// The parser only admits the two target shapes.
		return nil, diag.Errorf(diag.SemaTypeMismatch, e.Pos, "invalid assignment target")
	}
}
