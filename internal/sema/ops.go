package sema

import (
	"larch/internal/ast"
	"larch/internal/diag"
	"larch/internal/types"
)

// checkBinary enforces the operator rules: exactly two operands, operand
// types inside the operator's allowed set (arithmetic only), and mutual
// equality between the two operand types.
func (c *Checker) checkBinary(e *ast.Binary, env *types.Env) (types.Type, error) {
	if len(e.Args) != 2 {
		return nil, diag.Errorf(diag.SemaArityMismatch, e.Pos,
			"operator %q expects 2 operands, got %d", e.Op, len(e.Args))
	}
	left, err := c.Check(e.Args[0], env)
	if err != nil {
		return nil, err
	}
	right, err := c.Check(e.Args[1], env)
	if err != nil {
		return nil, err
	}

	if e.Op.IsArithmetic() {
		allowed := c.allowedOperands(e.Op)
		for i, operand := range []types.Type{left, right} {
			if !operandAllowed(operand, allowed) {
				return nil, diag.Errorf(diag.SemaOperatorOperandMismatch, e.Args[i].Span(),
					"operator %q does not accept operand type %s", e.Op, operand.Name())
			}
		}
	}
	if !typesEqual(left, right) {
		return nil, diag.Errorf(diag.SemaOperatorOperandMismatch, e.Pos,
			"operator %q requires equal operand types, got %s and %s", e.Op, left.Name(), right.Name())
	}
	if e.Op.IsComparison() {
		return c.reg.Builtins().Boolean, nil
	}
	return left, nil
}

// allowedOperands returns the operand set for an arithmetic operator:
// {string, number} for `+`, {number} for the rest.
func (c *Checker) allowedOperands(op ast.BinaryOp) []types.Type {
	b := c.reg.Builtins()
	if op == ast.OpAdd {
		return []types.Type{b.String, b.Number}
	}
	return []types.Type{b.Number}
}

// operandAllowed reports whether t belongs to the allowed set. A union
// operand qualifies only when every one of its options does.
func operandAllowed(t types.Type, allowed []types.Type) bool {
	if union, ok := t.(*types.Union); ok {
		for _, opt := range union.Options() {
			if !operandAllowed(opt, allowed) {
				return false
			}
		}
		return true
	}
	for _, a := range allowed {
		if typesEqual(a, t) {
			return true
		}
	}
	return false
}
