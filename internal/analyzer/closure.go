package analyzer

import (
	"github.com/funvibe/closurecheck/internal/ast"
	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/logging"
	"github.com/funvibe/closurecheck/internal/typesystem"
	"github.com/funvibe/closurecheck/internal/typetable"
)

// CheckClosure infers the type of a closure expression. expected is the
// type pushed down from the enclosing expression, or nil.
//
// The result is a TClosure, or a TCoroutine when the body suspends. The
// only error is an internal compiler error; anything the closure cannot
// learn up front is left to later unification.
func (ctx *InferenceContext) CheckClosure(expr *ast.ClosureExpr, expected typesystem.Type) (typesystem.Type, error) {
	logging.Debugf("closure", "CheckClosure(expr=%s, expected=%v)", expr.ID, expected)

	var expectedSig *typesystem.Signature
	var expectedKind *typesystem.CapabilityLevel
	if expected != nil {
		expectedSig, expectedKind = ctx.deduceExpectationsFromExpectedType(expected)
	}
	return ctx.checkClosure(expr, expectedKind, expectedSig)
}

func (ctx *InferenceContext) checkClosure(expr *ast.ClosureExpr, kind *typesystem.CapabilityLevel,
	expectedSig *typesystem.Signature) (typesystem.Type, error) {
	logging.Debugf("closure", "checkClosure kind=%s expectedSig=%s", fmtKind(kind), fmtSig(expectedSig))

	// Late-bound regions of the expected signature were bound somewhere
	// else; only their positions matter here.
	sig := ctx.sigOfClosure(expr, expectedSig).AnonymizeLateBound()

	substs, err := ctx.closureSubsts(expr)
	if err != nil {
		return nil, err
	}

	fnSig := sig.Liberate(expr.ID)
	fnSig = ctx.Normalizer.NormalizeSignature(fnSig, ctx.ParamEnv)

	result := ctx.BodyChecker.CheckBody(expr, fnSig)
	if result.Subst != nil {
		ctx.GlobalSubst = ctx.GlobalSubst.Compose(result.Subst)
	}

	if result.Interior != nil {
		coroutine := typesystem.TCoroutine{DefID: expr.DefID, Substs: substs, Interior: *result.Interior}
		logging.Debugf("closure", "checkClosure: expr=%s coroutine=%s", expr.ID, coroutine)
		return coroutine, nil
	}

	closureType := typesystem.TClosure{DefID: expr.DefID, Substs: substs}
	logging.Debugf("closure", "checkClosure: expr=%s closure=%s", expr.ID, closureType)

	tupled := sig.Tupled()
	logging.Debugf("closure", "closure for %s --> sig=%s kind=%s", expr.DefID, tupled, fmtKind(kind))

	if err := ctx.recordClosure(expr.ID, tupled, kind); err != nil {
		return nil, err
	}
	return closureType, nil
}

// recordClosure writes the closure's signature and, when known, its
// capability into the type table under a single exclusive borrow.
func (ctx *InferenceContext) recordClosure(id typesystem.NodeID, sig typesystem.Signature, kind *typesystem.CapabilityLevel) error {
	tables, release := ctx.Tables.BorrowMut()
	defer release()

	if err := tables.InsertClosureSig(id, sig); err != nil {
		return err
	}
	if kind != nil {
		if err := tables.InsertClosureKind(id, typetable.KindRecord{Level: *kind}); err != nil {
			return err
		}
	}
	return nil
}

// sigOfClosure builds the closure's signature from its declaration.
// Annotations win; unannotated positions take the expected signature's
// types when its arity agrees, and fresh variables otherwise.
func (ctx *InferenceContext) sigOfClosure(expr *ast.ClosureExpr, expectedSig *typesystem.Signature) typesystem.Signature {
	expected := expectedSig
	if expected != nil && len(expected.Inputs) != len(expr.Parameters) {
		logging.Debugf("closure", "sigOfClosure: expected arity %d, declared %d; ignoring expectation",
			len(expected.Inputs), len(expr.Parameters))
		expected = nil
	}

	inputs := make([]typesystem.Type, len(expr.Parameters))
	for i, p := range expr.Parameters {
		switch {
		case p.IsAnnotated():
			inputs[i] = p.Type
		case expected != nil:
			inputs[i] = expected.Inputs[i]
		default:
			inputs[i] = ctx.FreshVar()
		}
	}

	var output typesystem.Type
	switch {
	case expr.HasReturnAnnotation():
		output = expr.ReturnType
	case expected != nil && expected.Output != nil:
		output = expected.Output
	default:
		output = ctx.FreshVar()
	}

	sig := typesystem.Signature{
		Inputs:   inputs,
		Output:   output,
		Unsafety: typesystem.Normal,
		ABI:      typesystem.ABIRustCall,
	}
	if expected != nil {
		sig.BoundRegions = append([]typesystem.Region(nil), expected.BoundRegions...)
	}
	return sig
}

// closureSubsts extends the enclosing item's identity arguments with one
// placeholder per capture slot. A closure can never declare a named region
// parameter of its own; seeing one means generics collection is broken.
func (ctx *InferenceContext) closureSubsts(expr *ast.ClosureExpr) (typesystem.Substs, error) {
	placeholders := make([]typesystem.Type, len(expr.Captures))
	for i := range expr.Captures {
		placeholders[i] = ctx.FreshVar()
	}

	var g *typesystem.Generics
	if ctx.Generics != nil {
		g = ctx.Generics.GenericsOf(expr.DefID)
	}
	if g == nil {
		g = capturesOnlyGenerics(expr)
	}

	parentTypes, _ := g.ParentCount()
	base := typesystem.IdentitySubsts(g.Parent)

	return typesystem.ExtendTo(base, g,
		func(p typesystem.GenericParam, _ typesystem.Substs) (typesystem.Region, error) {
			if p.Name != "" {
				return typesystem.Region{}, diagnostics.NewInternalError(diagnostics.ErrI001, expr.Token, "'"+p.Name)
			}
			return typesystem.ErasedRegion, nil
		},
		func(p typesystem.GenericParam, _ typesystem.Substs) typesystem.Type {
			if i := p.Index - parentTypes; i >= 0 && i < len(placeholders) {
				return placeholders[i]
			}
			return ctx.FreshVar()
		},
	)
}

// capturesOnlyGenerics describes a closure with no enclosing generics:
// its only parameters are its capture slots.
func capturesOnlyGenerics(expr *ast.ClosureExpr) *typesystem.Generics {
	g := &typesystem.Generics{DefID: expr.DefID}
	for i, c := range expr.Captures {
		g.Params = append(g.Params, typesystem.GenericParam{Name: c.Value, Index: i, Kind: typesystem.ParamType})
	}
	return g
}

func fmtKind(k *typesystem.CapabilityLevel) string {
	if k == nil {
		return "none"
	}
	return k.String()
}

func fmtSig(s *typesystem.Signature) string {
	if s == nil {
		return "none"
	}
	return s.String()
}
