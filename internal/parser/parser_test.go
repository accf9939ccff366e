package parser

import (
	"testing"

	"larch/internal/ast"
	"larch/internal/diag"
	"larch/internal/sexpr"
	"larch/internal/source"
)

func parseOne(t *testing.T, src string) ast.Expr {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lr", []byte(src))
	forms, err := sexpr.Read(fs.Get(id))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("got %d forms, want 1", len(forms))
	}
	expr, err := ParseExpr(forms[0])
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return expr
}

func parseError(t *testing.T, src string, code diag.Code) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lr", []byte(src))
	forms, err := sexpr.Read(fs.Get(id))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	_, err = ParseProgram(forms)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	d, ok := diag.FromError(err)
	if !ok {
		t.Fatalf("error does not carry a diagnostic: %v", err)
	}
	if d.Code != code {
		t.Fatalf("diagnostic code = %v (%s), want %v", d.Code, d.Message, code)
	}
}

func TestStringLiteralLosesQuotes(t *testing.T) {
	lit, ok := parseOne(t, `"hello"`).(*ast.StringLit)
	if !ok || lit.Value != "hello" {
		t.Fatalf("got %#v, want string literal hello", lit)
	}
}

func TestOperatorFormBecomesBinary(t *testing.T) {
	bin, ok := parseOne(t, `(+ 1 2)`).(*ast.Binary)
	if !ok {
		t.Fatalf("got %T, want *ast.Binary", bin)
	}
	if bin.Op != ast.OpAdd || len(bin.Args) != 2 {
		t.Fatalf("got op %v with %d args", bin.Op, len(bin.Args))
	}
}

func TestUnaryOperatorStillParses(t *testing.T) {
	// Operand count is the checker's business.
	bin, ok := parseOne(t, `(+ 1)`).(*ast.Binary)
	if !ok || len(bin.Args) != 1 {
		t.Fatalf("got %#v, want one-arg binary", bin)
	}
}

func TestVarForms(t *testing.T) {
	plain, ok := parseOne(t, `(var x 10)`).(*ast.VarDecl)
	if !ok || plain.Name != "x" || plain.Ann != nil {
		t.Fatalf("got %#v, want untyped var x", plain)
	}
	typed, ok := parseOne(t, `(var (x number) 10)`).(*ast.VarDecl)
	if !ok || typed.Name != "x" || typed.Ann == nil || typed.Ann.Name != "number" {
		t.Fatalf("got %#v, want typed var x", typed)
	}
	union, ok := parseOne(t, `(var (x (or number string)) 10)`).(*ast.VarDecl)
	if !ok || union.Ann == nil || !union.Ann.IsUnion() || len(union.Ann.Options) != 2 {
		t.Fatalf("got %#v, want union-typed var x", union)
	}
}

func TestSetTargetMustBeAssignable(t *testing.T) {
	assign, ok := parseOne(t, `(set x 10)`).(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *ast.Assign", assign)
	}
	if _, ok := assign.Target.(*ast.Ident); !ok {
		t.Fatalf("target = %T, want *ast.Ident", assign.Target)
	}
	if _, ok := parseOne(t, `(set (prop p x) 10)`).(*ast.Assign); !ok {
		t.Fatal("property target should parse")
	}
	parseError(t, `(set 1 10)`, diag.SynMalformedForm)
	parseError(t, `(set (+ 1 2) 10)`, diag.SynMalformedForm)
}

func TestIfRequiresBothBranches(t *testing.T) {
	if _, ok := parseOne(t, `(if true 1 2)`).(*ast.If); !ok {
		t.Fatal("if form should parse")
	}
	parseError(t, `(if true 1)`, diag.SynMalformedForm)
}

func TestWhileBodyWrapsInBlock(t *testing.T) {
	loop, ok := parseOne(t, `(while true (var x 1) (set x 2))`).(*ast.While)
	if !ok {
		t.Fatalf("got %T, want *ast.While", loop)
	}
	block, ok := loop.Body.(*ast.Block)
	if !ok || len(block.Body) != 2 {
		t.Fatalf("body = %#v, want 2-expr block", loop.Body)
	}
}

func TestDefSimple(t *testing.T) {
	fn, ok := parseOne(t, `(def square ((x number)) -> number (* x x))`).(*ast.FuncDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.FuncDecl", fn)
	}
	if fn.Name != "square" || len(fn.TypeParams) != 0 {
		t.Fatalf("got %#v", fn)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "x" || fn.Params[0].Ann.Name != "number" {
		t.Fatalf("params = %#v", fn.Params)
	}
	if fn.Ret.Name != "number" {
		t.Fatalf("ret = %#v", fn.Ret)
	}
}

func TestDefGeneric(t *testing.T) {
	fn, ok := parseOne(t, `(def pair <K,V> ((k K) (v V)) -> K k)`).(*ast.FuncDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.FuncDecl", fn)
	}
	if len(fn.TypeParams) != 2 || fn.TypeParams[0] != "K" || fn.TypeParams[1] != "V" {
		t.Fatalf("type params = %#v", fn.TypeParams)
	}
}

func TestLambdaIsAnonymous(t *testing.T) {
	fn, ok := parseOne(t, `(lambda ((x number)) -> number x)`).(*ast.FuncDecl)
	if !ok || fn.Name != "" {
		t.Fatalf("got %#v, want anonymous function", fn)
	}
}

func TestMultiExprBodyWrapsInBlock(t *testing.T) {
	fn := parseOne(t, `(def f ((x number)) -> number (var y 1) (+ x y))`).(*ast.FuncDecl)
	if _, ok := fn.Body.(*ast.Block); !ok {
		t.Fatalf("body = %T, want *ast.Block", fn.Body)
	}
}

func TestMissingArrowIsMalformed(t *testing.T) {
	parseError(t, `(def f ((x number)) number x)`, diag.SynMalformedForm)
}

func TestCallWithTypeArguments(t *testing.T) {
	call, ok := parseOne(t, `(combine <number,Fn<string>> 1 2)`).(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", call)
	}
	if len(call.TypeArgs) != 2 {
		t.Fatalf("type args = %#v", call.TypeArgs)
	}
	if call.TypeArgs[0].Name != "number" || call.TypeArgs[1].Name != "Fn<string>" {
		t.Fatalf("type args = %q, %q", call.TypeArgs[0].Name, call.TypeArgs[1].Name)
	}
	if len(call.Args) != 2 {
		t.Fatalf("args = %#v", call.Args)
	}
}

func TestComparisonIsNotATypeArgumentList(t *testing.T) {
	// `(f < 3)` would be nonsense anyway, but `(f <> ...)` must not be
	// mistaken either: the shortest generic token is `<T>`.
	call, ok := parseOne(t, `(f < 3)`).(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", call)
	}
	if len(call.TypeArgs) != 0 {
		t.Fatalf("type args = %#v, want none", call.TypeArgs)
	}
}

func TestGenericTokenErrors(t *testing.T) {
	parseError(t, `(combine <number,> 1 2)`, diag.SynBadGenericParams)
	parseError(t, `(combine <Fn<number> 1 2)`, diag.SynBadGenericParams)
}

func TestPropFieldMayBeSymbolOrString(t *testing.T) {
	p1 := parseOne(t, `(prop obj field)`).(*ast.Prop)
	if p1.Field != "field" {
		t.Fatalf("field = %q", p1.Field)
	}
	p2 := parseOne(t, `(prop obj "field")`).(*ast.Prop)
	if p2.Field != "field" {
		t.Fatalf("field = %q", p2.Field)
	}
}

func TestEmptyFormIsMalformed(t *testing.T) {
	parseError(t, `()`, diag.SynMalformedForm)
}

func TestBadAnnotation(t *testing.T) {
	parseError(t, `(var (x (and number string)) 1)`, diag.SynBadAnnotation)
}
