package analyzer

import (
	"github.com/funvibe/closurecheck/internal/logging"
	"github.com/funvibe/closurecheck/internal/obligations"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// deduceExpectationsFromObligations scans the pending obligations for ones
// whose self type is the unresolved variable v.
//
// The signature comes from the first matching callable projection. The
// capability is the most restrictive level among all matching callable
// interface references: because of subtyping several may apply at once.
func (ctx *InferenceContext) deduceExpectationsFromObligations(v typesystem.TVar) (*typesystem.Signature, *typesystem.CapabilityLevel) {
	pending := ctx.Pool.PendingObligations()

	var expectedSig *typesystem.Signature
	for _, o := range pending {
		logging.Debugf("closure", "deduceExpectationsFromObligations: %s", o.Predicate)

		proj, ok := o.Predicate.(obligations.ProjectionPredicate)
		if !ok || !ctx.selfTypeMatches(proj.Projection.Interface, v) {
			continue
		}
		if sig := ctx.deduceSigFromProjection(proj.Projection); sig != nil {
			expectedSig = sig
			break
		}
	}

	var expectedKind *typesystem.CapabilityLevel
	for _, o := range pending {
		ref, ok := interfaceOf(o.Predicate)
		if !ok || !ctx.selfTypeMatches(ref, v) {
			continue
		}
		level, ok := ctx.Family.CapabilityOf(ref.DefID)
		if !ok {
			continue
		}
		if expectedKind == nil {
			expectedKind = &level
		} else {
			best := typesystem.MostRestrictive(*expectedKind, level)
			expectedKind = &best
		}
	}

	return expectedSig, expectedKind
}

// interfaceOf extracts the interface reference a predicate is about, if any.
func interfaceOf(pred obligations.Predicate) (typesystem.InterfaceRef, bool) {
	switch p := pred.(type) {
	case obligations.ProjectionPredicate:
		return p.Projection.Interface, true
	case obligations.TraitPredicate:
		return p.Interface, true
	case obligations.EquatePredicate,
		obligations.SubtypePredicate,
		obligations.RegionOutlivesPredicate,
		obligations.TypeOutlivesPredicate,
		obligations.WellFormedPredicate,
		obligations.ObjectSafePredicate,
		obligations.ConstEvaluatablePredicate:
		return typesystem.InterfaceRef{}, false
	case obligations.ClosureKindPredicate:
		// Made by breaking down a bound on a closure type that already
		// exists, so it cannot be about the closure being checked.
		return typesystem.InterfaceRef{}, false
	default:
		return typesystem.InterfaceRef{}, false
	}
}

// selfTypeMatches reports whether ref's self type resolves to exactly v.
func (ctx *InferenceContext) selfTypeMatches(ref typesystem.InterfaceRef, v typesystem.TVar) bool {
	self := typesystem.ShallowResolve(ref.Self, ctx.GlobalSubst)
	logging.Debugf("closure", "selfTypeMatches(%s, self=%s)", ref, self)

	tv, ok := self.(typesystem.TVar)
	return ok && tv.Name == v.Name
}
