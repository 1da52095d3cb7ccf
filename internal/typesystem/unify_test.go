package typesystem

import (
	"errors"
	"testing"
)

func TestUnify(t *testing.T) {
	a := TVar{Name: "a"}
	b := TVar{Name: "b"}

	tests := []struct {
		name    string
		t1, t2  Type
		wantErr bool
		check   map[string]string
	}{
		{"var binds con", a, i32, false, map[string]string{"a": "i32"}},
		{"con binds var on the right", i32, a, false, map[string]string{"a": "i32"}},
		{"tuple elementwise", TTuple{Elements: []Type{a, boolT}}, TTuple{Elements: []Type{i32, b}}, false, map[string]string{"a": "i32", "b": "bool"}},
		{"tuple length mismatch", TTuple{Elements: []Type{a}}, TTuple{Elements: []Type{i32, i32}}, true, nil},
		{"con mismatch", i32, boolT, true, nil},
		{"ref ignores regions", TRef{Region: StaticRegion, Elem: a}, TRef{Elem: i32}, false, map[string]string{"a": "i32"}},
		{"ref mutability mismatch", TRef{Mutable: true, Elem: i32}, TRef{Elem: i32}, true, nil},
		{
			"fn ptr",
			TFnPtr{Sig: NewSignature([]Type{a}, b)},
			TFnPtr{Sig: NewSignature([]Type{i32}, boolT)},
			false,
			map[string]string{"a": "i32", "b": "bool"},
		},
		{"occurs check", a, TTuple{Elements: []Type{a}}, true, nil},
		{"param identity", TParam{Index: 0, Name: "T"}, TParam{Index: 0, Name: "T"}, false, map[string]string{}},
		{
			"coroutine substs and witness",
			TCoroutine{DefID: 9, Substs: Substs{Types: []Type{a}}, Interior: Interior{Witness: TTuple{Elements: []Type{b}}}},
			TCoroutine{DefID: 9, Substs: Substs{Types: []Type{i32}}, Interior: Interior{Witness: TTuple{Elements: []Type{boolT}}}},
			false,
			map[string]string{"a": "i32", "b": "bool"},
		},
		{
			"coroutine def mismatch",
			TCoroutine{DefID: 9},
			TCoroutine{DefID: 10},
			true, nil,
		},
		{
			"coroutine against closure",
			TCoroutine{DefID: 9},
			TClosure{DefID: 9},
			true, nil,
		},
		{
			"dyn projections unify",
			TDynamic{Principal: &InterfaceRef{DefID: 1, Name: "Fn", Self: TDummySelf{}, Args: []Type{TTuple{Elements: []Type{a}}}},
				Projections: []Projection{{Interface: InterfaceRef{DefID: 1, Name: "Fn", Self: TDummySelf{}, Args: []Type{TTuple{Elements: []Type{a}}}}, Item: "Output", Ty: b}}},
			TDynamic{Principal: &InterfaceRef{DefID: 1, Name: "Fn", Self: TDummySelf{}, Args: []Type{TTuple{Elements: []Type{i32}}}},
				Projections: []Projection{{Interface: InterfaceRef{DefID: 1, Name: "Fn", Self: TDummySelf{}, Args: []Type{TTuple{Elements: []Type{i32}}}}, Item: "Output", Ty: boolT}}},
			false,
			map[string]string{"a": "i32", "b": "bool"},
		},
		{
			"dyn projection output mismatch",
			TDynamic{Principal: &InterfaceRef{DefID: 1, Name: "Fn"},
				Projections: []Projection{{Interface: InterfaceRef{DefID: 1, Name: "Fn", Args: []Type{TTuple{}}}, Item: "Output", Ty: i32}}},
			TDynamic{Principal: &InterfaceRef{DefID: 1, Name: "Fn"},
				Projections: []Projection{{Interface: InterfaceRef{DefID: 1, Name: "Fn", Args: []Type{TTuple{}}}, Item: "Output", Ty: boolT}}},
			true, nil,
		},
		{
			"dyn projection count mismatch",
			TDynamic{Principal: &InterfaceRef{DefID: 1, Name: "Fn"},
				Projections: []Projection{{Interface: InterfaceRef{DefID: 1, Name: "Fn", Args: []Type{TTuple{}}}, Item: "Output", Ty: i32}}},
			TDynamic{Principal: &InterfaceRef{DefID: 1, Name: "Fn"}},
			true, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subst, err := Unify(tt.t1, tt.t2)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got subst %v", subst)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for name, want := range tt.check {
				got, ok := subst[name]
				if !ok {
					t.Errorf("%s not bound", name)
					continue
				}
				if got.Apply(subst).String() != want {
					t.Errorf("%s = %s, want %s", name, got, want)
				}
			}
		})
	}
}

func TestUnifyErrorType(t *testing.T) {
	_, err := Unify(i32, boolT)
	var uerr *UnificationError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected *UnificationError, got %T", err)
	}
	if uerr.Error() != "cannot unify i32 with bool" {
		t.Errorf("Error() = %q", uerr.Error())
	}
}

func TestCapabilityOrdering(t *testing.T) {
	levels := []CapabilityLevel{CallImmutable, CallMutable, CallOnce}
	for _, a := range levels {
		for _, b := range levels {
			got := MostRestrictive(a, b)
			want := a
			if b < a {
				want = b
			}
			if got != want {
				t.Errorf("MostRestrictive(%s, %s) = %s, want %s", a, b, got, want)
			}
			if MostRestrictive(a, b) != MostRestrictive(b, a) {
				t.Errorf("MostRestrictive is not symmetric for %s, %s", a, b)
			}
		}
	}

	if !CallImmutable.Satisfies(CallOnce) || CallOnce.Satisfies(CallMutable) {
		t.Errorf("Satisfies ordering is wrong")
	}

	for _, l := range levels {
		parsed, ok := ParseCapabilityLevel(l.String())
		if !ok || parsed != l {
			t.Errorf("ParseCapabilityLevel(%s) = %v, %v", l, parsed, ok)
		}
	}
}

func TestIdentityAndExtend(t *testing.T) {
	parent := &Generics{
		DefID: 1,
		Params: []GenericParam{
			{Name: "T", Index: 0, Kind: ParamType},
			{Name: "a", Index: 0, Kind: ParamRegion},
		},
	}
	closure := &Generics{
		DefID:  2,
		Parent: parent,
		Params: []GenericParam{
			{Name: "upvar0", Index: 1, Kind: ParamType},
			{Name: "upvar1", Index: 2, Kind: ParamType},
		},
	}

	id := IdentitySubsts(parent)
	if id.String() != "<'a, T>" {
		t.Errorf("identity = %s", id)
	}

	types, regions := closure.ParentCount()
	if types != 1 || regions != 1 {
		t.Errorf("ParentCount = %d, %d", types, regions)
	}

	placeholders := []Type{TVar{Name: "u0"}, TVar{Name: "u1"}}
	substs, err := ExtendTo(id, closure,
		func(p GenericParam, _ Substs) (Region, error) {
			return Region{}, errors.New("unexpected region")
		},
		func(p GenericParam, sofar Substs) Type {
			return placeholders[p.Index-types]
		},
	)
	if err != nil {
		t.Fatalf("ExtendTo: %v", err)
	}
	if substs.String() != "<'a, T, ?u0, ?u1>" {
		t.Errorf("extended = %s", substs)
	}

	withRegion := &Generics{Parent: parent, Params: []GenericParam{{Name: "b", Index: 1, Kind: ParamRegion}}}
	if _, err := ExtendTo(id, withRegion,
		func(p GenericParam, _ Substs) (Region, error) { return Region{}, errors.New("boom") },
		func(p GenericParam, _ Substs) Type { return nil },
	); err == nil {
		t.Errorf("expected mkRegion error to abort the extension")
	}
}
