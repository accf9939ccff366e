package ast

// BinaryOp enumerates the arithmetic and comparison operators.
type BinaryOp uint8

const (
	OpInvalid BinaryOp = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNe
	OpGe
	OpLe
	OpGt
	OpLt
)

var opNames = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpEq:  "==",
	OpNe:  "!=",
	OpGe:  ">=",
	OpLe:  "<=",
	OpGt:  ">",
	OpLt:  "<",
}

var opByName = func() map[string]BinaryOp {
	m := make(map[string]BinaryOp, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

// BinaryOpFromName resolves an operator symbol, returning OpInvalid when the
// symbol is not an operator.
func BinaryOpFromName(name string) BinaryOp {
	return opByName[name]
}

func (op BinaryOp) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "?"
}

// IsArithmetic reports whether op is +, -, *, or /.
func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// IsComparison reports whether op yields a boolean.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpGe, OpLe, OpGt, OpLt:
		return true
	}
	return false
}
