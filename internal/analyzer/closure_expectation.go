package analyzer

import (
	"github.com/funvibe/closurecheck/internal/logging"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// deduceExpectationsFromExpectedType derives a signature and capability
// hint from the type the context expects the closure to have.
func (ctx *InferenceContext) deduceExpectationsFromExpectedType(expected typesystem.Type) (*typesystem.Signature, *typesystem.CapabilityLevel) {
	expected = typesystem.ShallowResolve(expected, ctx.GlobalSubst)
	logging.Debugf("closure", "deduceExpectationsFromExpectedType(%s)", expected)

	switch t := expected.(type) {
	case typesystem.TDynamic:
		var sig *typesystem.Signature
		for _, pb := range t.Projections {
			pb.Interface = pb.Interface.WithSelf(typesystem.TDummySelf{})
			if sig = ctx.deduceSigFromProjection(pb); sig != nil {
				break
			}
		}
		var kind *typesystem.CapabilityLevel
		if t.Principal != nil {
			if level, ok := ctx.Family.CapabilityOf(t.Principal.DefID); ok {
				kind = &level
			}
		}
		return sig, kind

	case typesystem.TVar:
		return ctx.deduceExpectationsFromObligations(t)

	case typesystem.TFnPtr:
		sig := t.Sig
		kind := typesystem.CallImmutable
		return &sig, &kind

	default:
		return nil, nil
	}
}
