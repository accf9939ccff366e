package types

import (
	"testing"

	"larch/internal/ast"
	"larch/internal/source"
)

func TestResolvePrimitives(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"number", "string", "boolean", "null", "any"} {
		typ, err := reg.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if typ.Name() != name {
			t.Fatalf("Resolve(%q) = %s", name, typ.Name())
		}
	}
}

func TestResolveUnknownDescriptorFails(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Resolve("Widget"); err == nil {
		t.Fatalf("expected unknown type error")
	}
}

func TestResolveDeclaredName(t *testing.T) {
	reg := NewRegistry()
	age := NewAlias("age", reg.Builtins().Number)
	if err := reg.Register("age", age, source.Span{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	typ, err := reg.Resolve("age")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if typ != Type(age) {
		t.Fatalf("Resolve returned a different value than was registered")
	}
}

func TestRegisterIsAppendOnly(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()
	if err := reg.Register("age", NewAlias("age", b.Number), source.Span{}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := reg.Register("age", NewAlias("age", b.String), source.Span{}); err == nil {
		t.Fatalf("re-declaring a name must fail")
	}
	if err := reg.Register("number", NewAlias("number", b.String), source.Span{}); err == nil {
		t.Fatalf("shadowing a primitive must fail")
	}
}

func TestRegisterRecordsDeclarationSite(t *testing.T) {
	reg := NewRegistry()
	at := source.Span{Start: 6, End: 9}
	if err := reg.Register("age", NewAlias("age", reg.Builtins().Number), at); err != nil {
		t.Fatalf("Register: %v", err)
	}
	span, ok := reg.DeclaredAt("age")
	if !ok || span != at {
		t.Fatalf("DeclaredAt = %v, %v; want %v, true", span, ok, at)
	}
	if _, ok := reg.DeclaredAt("number"); ok {
		t.Fatalf("primitives have no declaration site")
	}
}

func TestResolveFunctionDescriptor(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()

	typ, err := reg.Resolve("Fn<number<number,number>>")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	fn, ok := typ.(*Function)
	if !ok {
		t.Fatalf("Resolve returned %T", typ)
	}
	if len(fn.Params()) != 2 || !fn.Params()[0].Equals(b.Number) || !fn.Params()[1].Equals(b.Number) {
		t.Fatalf("wrong parameters: %s", fn.Name())
	}
	if !fn.Return().Equals(b.Number) {
		t.Fatalf("wrong return type: %s", fn.Name())
	}
}

func TestResolveZeroParamFunctionDescriptor(t *testing.T) {
	reg := NewRegistry()
	typ, err := reg.Resolve("Fn<string>")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	fn := typ.(*Function)
	if len(fn.Params()) != 0 || !fn.Return().Equals(reg.Builtins().String) {
		t.Fatalf("wrong signature: %s", fn.Name())
	}
}

func TestResolveNestedFunctionDescriptor(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()

	// A zero-parameter function returning Fn<number>.
	typ, err := reg.Resolve("Fn<Fn<number>>")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	outer := typ.(*Function)
	if len(outer.Params()) != 0 {
		t.Fatalf("outer function must take no parameters, got %s", outer.Name())
	}
	inner, ok := outer.Return().(*Function)
	if !ok || !inner.Return().Equals(b.Number) {
		t.Fatalf("inner function not resolved: %s", outer.Name())
	}

	// A function from Fn<number> to Fn<number>.
	typ, err = reg.Resolve("Fn<Fn<number><Fn<number>>>")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	highOrder := typ.(*Function)
	if len(highOrder.Params()) != 1 {
		t.Fatalf("expected one parameter, got %s", highOrder.Name())
	}
	if _, ok := highOrder.Params()[0].(*Function); !ok {
		t.Fatalf("parameter is not a function type: %s", highOrder.Name())
	}
}

func TestFunctionDescriptorParseIsMemoized(t *testing.T) {
	reg := NewRegistry()
	first, err := reg.Resolve("Fn<number<number>>")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := reg.Resolve("Fn<number<number>>")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if first != second {
		t.Fatalf("repeated resolution must hit the descriptor cache")
	}
}

func TestMalformedFunctionDescriptorFails(t *testing.T) {
	reg := NewRegistry()
	for _, desc := range []string{"Fn<>", "Fn<number", "Fn<number<number>", "Fn<number>>extra>"} {
		if _, err := reg.Resolve(desc); err == nil {
			t.Fatalf("Resolve(%q) must fail", desc)
		}
	}
}

func TestResolveAnnInlineUnion(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()
	ann := &ast.TypeAnn{Options: []*ast.TypeAnn{
		{Name: "number"},
		{Name: "string"},
	}}
	typ, err := reg.ResolveAnn(ann)
	if err != nil {
		t.Fatalf("ResolveAnn: %v", err)
	}
	union, ok := typ.(*Union)
	if !ok {
		t.Fatalf("ResolveAnn returned %T", typ)
	}
	if len(union.Options()) != 2 || !union.Options()[0].Equals(b.Number) {
		t.Fatalf("wrong options: %s", union.Name())
	}
	if union.Name() != "(or number string)" {
		t.Fatalf("anonymous union name = %q", union.Name())
	}
}
