package analyzer

import (
	"github.com/funvibe/closurecheck/internal/logging"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// deduceSigFromProjection turns a projection like
// Fn<F, (A, B)>::Output == R into the signature fn(A, B) -> R.
// It gives up unless the interface is callable and its argument resolves to a tuple.
func (ctx *InferenceContext) deduceSigFromProjection(proj typesystem.Projection) *typesystem.Signature {
	logging.Debugf("closure", "deduceSigFromProjection(%s)", proj)

	if _, ok := ctx.Family.CapabilityOf(proj.Interface.DefID); !ok {
		return nil
	}
	if len(proj.Interface.Args) == 0 {
		return nil
	}

	argTy := ctx.Resolve(proj.Interface.Args[0])
	logging.Debugf("closure", "deduceSigFromProjection: arg %s", argTy)

	tuple, ok := argTy.(typesystem.TTuple)
	if !ok {
		return nil
	}

	retTy := ctx.Resolve(proj.Ty)
	logging.Debugf("closure", "deduceSigFromProjection: ret %s", retTy)

	inputs := make([]typesystem.Type, len(tuple.Elements))
	copy(inputs, tuple.Elements)
	sig := typesystem.NewSignature(inputs, retTy)

	logging.Debugf("closure", "deduceSigFromProjection: sig %s", sig)
	return &sig
}
