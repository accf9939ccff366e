// Package ast defines the tagged expression tree the checker operates on.
// Each syntactic form is its own variant; the checker switches over the
// variants exhaustively. Reader conventions (quoted string literals, angle
// bracket generic tokens) never reach this package: the form parser strips
// them while building the tree.
package ast

import (
	"larch/internal/source"
)

// Expr is one expression tree node.
type Expr interface {
	Span() source.Span
	isExpr()
}

// NumberLit is a numeric literal. All numbers share the `number` type.
type NumberLit struct {
	Pos   source.Span
	Value float64
}

// StringLit is a string literal with quote delimiters already stripped.
type StringLit struct {
	Pos   source.Span
	Value string
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Pos   source.Span
	Value bool
}

// Ident is a bare name reference.
type Ident struct {
	Pos  source.Span
	Name string
}

// TypeOf is `(typeof expr)`, a runtime type-name query.
type TypeOf struct {
	Pos    source.Span
	Target Expr
}

// Binary is an arithmetic or comparison form. Operand count is validated by
// the checker, not the parser, so arity violations surface as ArityMismatch.
type Binary struct {
	Pos  source.Span
	Op   BinaryOp
	Args []Expr
}

// VarDecl is `(var name value)` or `(var (name type) value)`.
type VarDecl struct {
	Pos      source.Span
	Name     string
	NamePos  source.Span
	Ann      *TypeAnn // nil for the untyped form
	Value    Expr
}

// Assign is `(set target value)`; Target is an *Ident or a *Prop.
type Assign struct {
	Pos    source.Span
	Target Expr
	Value  Expr
}

// Block is `(begin e1 ... en)`.
type Block struct {
	Pos  source.Span
	Body []Expr
}

// If is `(if cond then else)`.
type If struct {
	Pos  source.Span
	Cond Expr
	Then Expr
	Else Expr
}

// While is `(while cond body)`.
type While struct {
	Pos  source.Span
	Cond Expr
	Body Expr
}

// TypeDecl is `(type Name Base)` or `(type Name (or T1 T2 ...))`. The
// annotation distinguishes alias from union.
type TypeDecl struct {
	Pos     source.Span
	Name    string
	NamePos source.Span
	Ann     *TypeAnn
}

// ClassDecl is `(class Name Super body)`. Super is "null" for root classes.
type ClassDecl struct {
	Pos      source.Span
	Name     string
	NamePos  source.Span
	Super    string
	SuperPos source.Span
	Body     Expr
}

// New is `(new Class args...)`.
type New struct {
	Pos      source.Span
	Class    string
	ClassPos source.Span
	Args     []Expr
}

// Super is `(super Class)`.
type Super struct {
	Pos      source.Span
	Class    string
	ClassPos source.Span
}

// Prop is `(prop obj field)`.
type Prop struct {
	Pos      source.Span
	Object   Expr
	Field    string
	FieldPos source.Span
}

// Param is one `(name type)` parameter.
type Param struct {
	Pos  source.Span
	Name string
	Ann  *TypeAnn
}

// FuncDecl covers `def` and `lambda`, simple and generic. Name is empty for
// lambdas; TypeParams is nil for the non-generic form.
type FuncDecl struct {
	Pos        source.Span
	Name       string
	NamePos    source.Span
	TypeParams []string
	Params     []Param
	Ret        *TypeAnn
	Body       Expr
}

// Call is any other compound form: `(f args...)` or, for generic heads,
// `(f <T1,T2> args...)`. TypeArgs is nil when no bracket token was supplied.
type Call struct {
	Pos         source.Span
	Head        Expr
	TypeArgs    []*TypeAnn
	TypeArgsPos source.Span
	Args        []Expr
}

func (e *NumberLit) Span() source.Span { return e.Pos }
func (e *StringLit) Span() source.Span { return e.Pos }
func (e *BoolLit) Span() source.Span   { return e.Pos }
func (e *Ident) Span() source.Span     { return e.Pos }
func (e *TypeOf) Span() source.Span    { return e.Pos }
func (e *Binary) Span() source.Span    { return e.Pos }
func (e *VarDecl) Span() source.Span   { return e.Pos }
func (e *Assign) Span() source.Span    { return e.Pos }
func (e *Block) Span() source.Span     { return e.Pos }
func (e *If) Span() source.Span        { return e.Pos }
func (e *While) Span() source.Span     { return e.Pos }
func (e *TypeDecl) Span() source.Span  { return e.Pos }
func (e *ClassDecl) Span() source.Span { return e.Pos }
func (e *New) Span() source.Span       { return e.Pos }
func (e *Super) Span() source.Span     { return e.Pos }
func (e *Prop) Span() source.Span      { return e.Pos }
func (e *FuncDecl) Span() source.Span  { return e.Pos }
func (e *Call) Span() source.Span      { return e.Pos }

func (*NumberLit) isExpr() {}
func (*StringLit) isExpr() {}
func (*BoolLit) isExpr()   {}
func (*Ident) isExpr()     {}
func (*TypeOf) isExpr()    {}
func (*Binary) isExpr()    {}
func (*VarDecl) isExpr()   {}
func (*Assign) isExpr()    {}
func (*Block) isExpr()     {}
func (*If) isExpr()        {}
func (*While) isExpr()     {}
func (*TypeDecl) isExpr()  {}
func (*ClassDecl) isExpr() {}
func (*New) isExpr()       {}
func (*Super) isExpr()     {}
func (*Prop) isExpr()      {}
func (*FuncDecl) isExpr()  {}
func (*Call) isExpr()      {}
