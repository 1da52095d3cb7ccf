package typesystem

import (
	"testing"
)

var (
	i32   = TCon{Name: "i32"}
	boolT = TCon{Name: "bool"}
)

func TestTypeStrings(t *testing.T) {
	fnRef := InterfaceRef{DefID: 1, Name: "Fn", Args: []Type{TTuple{Elements: []Type{i32}}}}

	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"var", TVar{Name: "v"}, "?v"},
		{"unit", TTuple{}, "()"},
		{"single tuple", TTuple{Elements: []Type{i32}}, "(i32,)"},
		{"pair", TTuple{Elements: []Type{i32, boolT}}, "(i32, bool)"},
		{"shared ref", TRef{Elem: i32}, "&i32"},
		{"named mut ref", TRef{Region: Region{Kind: RegionEarlyBound, Name: "a"}, Mutable: true, Elem: i32}, "&'a mut i32"},
		{"fn ptr", TFnPtr{Sig: NewSignature([]Type{i32}, boolT)}, "fn(i32) -> bool"},
		{
			"unsafe extern fn ptr",
			TFnPtr{Sig: Signature{Inputs: []Type{i32}, Output: TTuple{}, Unsafety: Unsafe, ABI: ABIC, Variadic: true}},
			`unsafe extern "C" fn(i32, ...) -> ()`,
		},
		{"dyn principal only", TDynamic{Principal: &InterfaceRef{DefID: 3, Name: "FnOnce"}}, "dyn FnOnce"},
		{
			"dyn with output",
			TDynamic{
				Principal:   &fnRef,
				Projections: []Projection{{Interface: fnRef.WithSelf(TDummySelf{}), Item: "Output", Ty: boolT}},
			},
			"dyn Fn<(i32,), Output = bool>",
		},
		{"closure", TClosure{DefID: 7, Substs: Substs{Types: []Type{TVar{Name: "t1"}}}}, "[closure#7<?t1>]"},
		{
			"coroutine",
			TCoroutine{DefID: 7, Interior: Interior{Witness: TTuple{Elements: []Type{i32}}}},
			"[coroutine#7 interior(i32,)]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyFollowsChains(t *testing.T) {
	s := Subst{
		"a": TVar{Name: "b"},
		"b": TTuple{Elements: []Type{i32, TVar{Name: "c"}}},
		"c": boolT,
	}
	got := TVar{Name: "a"}.Apply(s)
	if got.String() != "(i32, bool)" {
		t.Errorf("Apply = %s, want (i32, bool)", got)
	}
}

func TestApplyBreaksCycles(t *testing.T) {
	s := Subst{
		"a": TVar{Name: "b"},
		"b": TVar{Name: "a"},
	}
	got := TVar{Name: "a"}.Apply(s)
	if _, ok := got.(TVar); !ok {
		t.Errorf("expected a variable back from a cyclic substitution, got %s", got)
	}
}

func TestShallowResolve(t *testing.T) {
	inner := TTuple{Elements: []Type{TVar{Name: "c"}}}
	s := Subst{
		"a": TVar{Name: "b"},
		"b": inner,
		"c": i32,
	}
	got := ShallowResolve(TVar{Name: "a"}, s)
	tuple, ok := got.(TTuple)
	if !ok {
		t.Fatalf("ShallowResolve = %s, want a tuple", got)
	}
	if _, ok := tuple.Elements[0].(TVar); !ok {
		t.Errorf("ShallowResolve should not resolve nested variables, got %s", got)
	}

	if got := ShallowResolve(i32, s); got != i32 {
		t.Errorf("ShallowResolve(i32) = %s", got)
	}
}

func TestCompose(t *testing.T) {
	s1 := Subst{"a": TVar{Name: "b"}}
	s2 := Subst{"b": i32}
	composed := s1.Compose(s2)
	if composed["a"].String() != "i32" {
		t.Errorf("composed[a] = %s, want i32", composed["a"])
	}
	if composed["b"].String() != "i32" {
		t.Errorf("composed[b] = %s, want i32", composed["b"])
	}
}

func TestFreeTypeVariablesUnique(t *testing.T) {
	typ := TTuple{Elements: []Type{TVar{Name: "a"}, TRef{Elem: TVar{Name: "a"}}, TVar{Name: "b"}}}
	vars := typ.FreeTypeVariables()
	if len(vars) != 2 || vars[0].Name != "a" || vars[1].Name != "b" {
		t.Errorf("FreeTypeVariables = %v", vars)
	}
}
