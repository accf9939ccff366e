package types

import (
	"testing"
)

func TestEqualsIsReflexive(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()
	cls := NewClass("Point", nil, NewEnv(nil, nil))
	all := []Type{
		b.Number,
		b.String,
		b.Boolean,
		b.Null,
		b.Any,
		NewFunction([]Type{b.Number}, b.Number),
		NewAlias("age", b.Number),
		cls,
		NewUnion("value", []Type{b.Number, b.String}),
	}
	for _, typ := range all {
		if !typ.Equals(typ) {
			t.Fatalf("%s does not equal itself", typ.Name())
		}
	}
}

func TestPrimitiveSingletonsAreDistinct(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()
	if b.Number.Equals(b.String) {
		t.Fatalf("number equals string")
	}
	other := NewRegistry().Builtins()
	if b.Number.Equals(other.Number) {
		t.Fatalf("primitives from different registries must not be equal")
	}
}

func TestAliasEqualsParentBothWays(t *testing.T) {
	reg := NewRegistry()
	number := reg.Builtins().Number
	age := NewAlias("age", number)
	if !age.Equals(number) {
		t.Fatalf("alias does not equal its parent")
	}
	if !number.Equals(age) {
		t.Fatalf("parent does not equal alias")
	}
	// Stacked alias chains terminate in the primitive.
	years := NewAlias("years", age)
	if !years.Equals(number) || !number.Equals(years) {
		t.Fatalf("stacked alias chain broke equality")
	}
}

func TestFunctionEqualityIsStructuralAndOrderSensitive(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()
	f1 := NewFunction([]Type{b.Number, b.String}, b.Boolean)
	f2 := NewFunction([]Type{b.Number, b.String}, b.Boolean)
	if !f1.Equals(f2) {
		t.Fatalf("structurally identical function types must be equal")
	}
	swapped := NewFunction([]Type{b.String, b.Number}, b.Boolean)
	if f1.Equals(swapped) {
		t.Fatalf("parameter order must matter")
	}
	otherRet := NewFunction([]Type{b.Number, b.String}, b.Number)
	if f1.Equals(otherRet) {
		t.Fatalf("return type must matter")
	}
}

func TestFunctionCanonicalName(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()
	fn := NewFunction([]Type{b.Number, b.Number}, b.Number)
	if got, want := fn.Name(), "Fn<number<number,number>>"; got != want {
		t.Fatalf("canonical name = %q, want %q", got, want)
	}
	thunk := NewFunction(nil, b.String)
	if got, want := thunk.Name(), "Fn<string>"; got != want {
		t.Fatalf("canonical name = %q, want %q", got, want)
	}
}

func TestUnionAgainstPlainType(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()
	value := NewUnion("value", []Type{b.Number, b.String})
	if !value.Equals(b.Number) || !value.Equals(b.String) {
		t.Fatalf("union must equal each of its options")
	}
	if value.Equals(b.Boolean) {
		t.Fatalf("union must not equal a non-option")
	}
}

func TestUnionAgainstUnionIsOrderSensitive(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()
	u1 := NewUnion("a", []Type{b.Number, b.String})
	u2 := NewUnion("b", []Type{b.Number, b.String})
	if !u1.Equals(u2) {
		t.Fatalf("unions with identical ordered options must be equal")
	}
	reversed := NewUnion("c", []Type{b.String, b.Number})
	if u1.Equals(reversed) {
		t.Fatalf("option order must matter")
	}
	longer := NewUnion("d", []Type{b.Number, b.String, b.Boolean})
	if u1.Equals(longer) {
		t.Fatalf("option count must matter")
	}
}

func TestClassEqualityWalksSuperclassChain(t *testing.T) {
	root := NewEnv(nil, nil)
	point := NewClass("Point", nil, root)
	point3d := NewClass("Point3D", point, point.Scope())
	if !point3d.Equals(point) {
		t.Fatalf("subclass must equal its ancestor")
	}
	if point.Equals(point3d) {
		t.Fatalf("ancestor must not equal subclass")
	}
	other := NewClass("Other", nil, root)
	if point3d.Equals(other) {
		t.Fatalf("unrelated classes must not be equal")
	}
}

func TestClassEqualsThroughAlias(t *testing.T) {
	root := NewEnv(nil, nil)
	point := NewClass("Point", nil, root)
	alias := NewAlias("Location", point)
	if !point.Equals(alias) || !alias.Equals(point) {
		t.Fatalf("class/alias equality must hold both ways")
	}
}

func TestClassFieldLookupThroughInheritedScopeOnly(t *testing.T) {
	reg := NewRegistry()
	b := reg.Builtins()
	global := NewEnv(nil, map[string]Type{"stray": b.String})

	shape := NewClass("Shape", nil, global)
	shape.Scope().Define("area", NewFunction([]Type{shape}, b.Number))
	circle := NewClass("Circle", shape, shape.Scope())

	if _, ok := circle.LookupField("area"); !ok {
		t.Fatalf("inherited method not found through scope chain")
	}
	if _, ok := circle.LookupField("stray"); ok {
		t.Fatalf("field lookup leaked into the enclosing environment")
	}
}

func TestGenericFunctionIsNeverEqual(t *testing.T) {
	reg := NewRegistry()
	g := NewGenericFunction("id", []string{"T"}, nil, nil, nil, NewEnv(nil, nil))
	if g.Equals(g) {
		t.Fatalf("generic functions must not be comparable, even to themselves")
	}
	if g.Equals(reg.Builtins().Any) {
		t.Fatalf("generic functions must not equal any other type")
	}
}
