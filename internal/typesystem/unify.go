package typesystem

import (
	"fmt"
	"reflect"
)

// Unify attempts to find a substitution that makes t1 and t2 equal.
// Regions are not compared; region inference is a separate pass.
func Unify(t1, t2 Type) (Subst, error) {
	if reflect.DeepEqual(t1, t2) {
		return Subst{}, nil
	}

	if tv, ok := t2.(TVar); ok {
		if _, isVar := t1.(TVar); !isVar {
			return Bind(tv, t1)
		}
	}

	switch t1 := t1.(type) {
	case TVar:
		return Bind(t1, t2)

	case TCon:
		if t2, ok := t2.(TCon); ok && t1.Name == t2.Name {
			return Subst{}, nil
		}
		return nil, errUnify(t1, t2)

	case TParam:
		if t2, ok := t2.(TParam); ok && t1.Index == t2.Index {
			return Subst{}, nil
		}
		return nil, errUnify(t1, t2)

	case TTuple:
		t2Tuple, ok := t2.(TTuple)
		if !ok {
			return nil, errUnify(t1, t2)
		}
		if len(t1.Elements) != len(t2Tuple.Elements) {
			return nil, errMismatch(fmt.Sprintf("tuple length mismatch: %d vs %d", len(t1.Elements), len(t2Tuple.Elements)))
		}
		return unifyLists(t1.Elements, t2Tuple.Elements)

	case TRef:
		t2Ref, ok := t2.(TRef)
		if !ok || t1.Mutable != t2Ref.Mutable {
			return nil, errUnify(t1, t2)
		}
		return Unify(t1.Elem, t2Ref.Elem)

	case TFnPtr:
		t2Fn, ok := t2.(TFnPtr)
		if !ok {
			return nil, errUnify(t1, t2)
		}
		return UnifySignatures(t1.Sig, t2Fn.Sig)

	case TDynamic:
		t2Dyn, ok := t2.(TDynamic)
		if !ok || (t1.Principal == nil) != (t2Dyn.Principal == nil) || len(t1.Projections) != len(t2Dyn.Projections) {
			return nil, errUnify(t1, t2)
		}
		var l1, l2 []Type
		if t1.Principal != nil {
			if t1.Principal.DefID != t2Dyn.Principal.DefID || len(t1.Principal.Args) != len(t2Dyn.Principal.Args) {
				return nil, errUnify(t1, t2)
			}
			l1 = append(l1, t1.Principal.Args...)
			l2 = append(l2, t2Dyn.Principal.Args...)
		}
		for i, p1 := range t1.Projections {
			p2 := t2Dyn.Projections[i]
			if p1.Interface.DefID != p2.Interface.DefID || p1.Item != p2.Item || len(p1.Interface.Args) != len(p2.Interface.Args) {
				return nil, errUnify(t1, t2)
			}
			l1 = append(append(l1, p1.Interface.Args...), p1.Ty)
			l2 = append(append(l2, p2.Interface.Args...), p2.Ty)
		}
		return unifyLists(l1, l2)

	case TClosure:
		t2Closure, ok := t2.(TClosure)
		if !ok || t1.DefID != t2Closure.DefID || len(t1.Substs.Types) != len(t2Closure.Substs.Types) {
			return nil, errUnify(t1, t2)
		}
		return unifyLists(t1.Substs.Types, t2Closure.Substs.Types)

	case TCoroutine:
		t2Co, ok := t2.(TCoroutine)
		if !ok || t1.DefID != t2Co.DefID || len(t1.Substs.Types) != len(t2Co.Substs.Types) ||
			(t1.Interior.Witness == nil) != (t2Co.Interior.Witness == nil) {
			return nil, errUnify(t1, t2)
		}
		l1, l2 := t1.Substs.Types, t2Co.Substs.Types
		if t1.Interior.Witness != nil {
			l1 = append(append([]Type(nil), l1...), t1.Interior.Witness)
			l2 = append(append([]Type(nil), l2...), t2Co.Interior.Witness)
		}
		return unifyLists(l1, l2)

	case TInfer, TDummySelf:
		if reflect.TypeOf(t1) == reflect.TypeOf(t2) {
			return Subst{}, nil
		}
		return nil, errUnify(t1, t2)

	default:
		return nil, errMismatch(fmt.Sprintf("unknown type kind: %T", t1))
	}
}

// UnifySignatures unifies two signatures parameter by parameter.
func UnifySignatures(s1, s2 Signature) (Subst, error) {
	if len(s1.Inputs) != len(s2.Inputs) || s1.Variadic != s2.Variadic {
		return nil, errMismatch(fmt.Sprintf("signature arity mismatch: %s vs %s", s1, s2))
	}
	subst, err := unifyLists(s1.Inputs, s2.Inputs)
	if err != nil {
		return nil, err
	}
	out, err := Unify(s1.Output.Apply(subst), s2.Output.Apply(subst))
	if err != nil {
		return nil, errUnifyContext("return type", err)
	}
	return out.Compose(subst), nil
}

func unifyLists(l1, l2 []Type) (Subst, error) {
	subst := Subst{}
	for i := range l1 {
		s, err := Unify(l1[i].Apply(subst), l2[i].Apply(subst))
		if err != nil {
			return nil, err
		}
		subst = s.Compose(subst)
	}
	return subst, nil
}

// Bind binds a type variable to a type, performing the occurs check.
func Bind(tv TVar, t Type) (Subst, error) {
	if tVal, ok := t.(TVar); ok && tVal.Name == tv.Name {
		return Subst{}, nil
	}

	// Occurs check: ensure tv does not appear in t (to avoid infinite types like a = (a,))
	if OccursCheck(tv, t) {
		return nil, errMismatch(fmt.Sprintf("infinite type detected: %s in %s", tv, t))
	}

	return Subst{tv.Name: t}, nil
}

// OccursCheck returns true if tv appears free in t.
func OccursCheck(tv TVar, t Type) bool {
	for _, v := range t.FreeTypeVariables() {
		if v.Name == tv.Name {
			return true
		}
	}
	return false
}

func errUnify(t1, t2 Type) error {
	return &UnificationError{T1: t1, T2: t2}
}

func errMismatch(msg string) error {
	return fmt.Errorf("type mismatch: %s", msg)
}

func errUnifyContext(ctx string, err error) error {
	return fmt.Errorf("in %s: %w", ctx, err)
}
