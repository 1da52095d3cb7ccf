package analyzer

import (
	"fmt"

	"github.com/funvibe/closurecheck/internal/ast"
	"github.com/funvibe/closurecheck/internal/obligations"
	"github.com/funvibe/closurecheck/internal/typesystem"
	"github.com/funvibe/closurecheck/internal/typetable"
)

// BodyResult is what checking a closure body reports back.
type BodyResult struct {
	// Interior is set when the body suspends; the closure is then a coroutine.
	Interior *typesystem.Interior
	// Subst holds the bindings the body check produced.
	Subst typesystem.Subst
}

// BodyChecker checks a closure body against its (liberated, normalized) signature.
type BodyChecker interface {
	CheckBody(expr *ast.ClosureExpr, sig typesystem.Signature) BodyResult
}

// GenericsSource provides the generics of a definition. The closure's own
// generics have the enclosing item's generics as Parent.
type GenericsSource interface {
	GenericsOf(def typesystem.DefID) *typesystem.Generics
}

// GenericsMap is a GenericsSource backed by a map.
type GenericsMap map[typesystem.DefID]*typesystem.Generics

func (m GenericsMap) GenericsOf(def typesystem.DefID) *typesystem.Generics {
	return m[def]
}

// ParamEnv is the set of where-clauses in scope for normalization.
type ParamEnv struct {
	Item       typesystem.DefID
	Predicates []obligations.Predicate
}

// Normalizer resolves associated types in a signature.
type Normalizer interface {
	NormalizeSignature(sig typesystem.Signature, env ParamEnv) typesystem.Signature
}

// ResolvingNormalizer normalizes by applying the current substitution.
type ResolvingNormalizer struct {
	Subst func() typesystem.Subst
}

func (n ResolvingNormalizer) NormalizeSignature(sig typesystem.Signature, _ ParamEnv) typesystem.Signature {
	if n.Subst == nil {
		return sig
	}
	return sig.Apply(n.Subst())
}

// CallableFamily maps interface definitions to the capability level they
// stand for. Only the three callable interfaces are members.
type CallableFamily interface {
	CapabilityOf(def typesystem.DefID) (typesystem.CapabilityLevel, bool)
}

// InferenceContext holds the state for a closure inference pass. Fresh
// variables are numbered per context.
type InferenceContext struct {
	counter int
	// GlobalSubst stores the accumulated substitution for the entire inference pass
	GlobalSubst typesystem.Subst

	Pool        obligations.Pool
	Tables      *typetable.Cell
	Family      CallableFamily
	Generics    GenericsSource
	Normalizer  Normalizer
	BodyChecker BodyChecker
	ParamEnv    ParamEnv
}

// NewInferenceContext creates a new inference context. A nil normalizer
// selects ResolvingNormalizer over the context's substitution.
func NewInferenceContext(pool obligations.Pool, tables *typetable.Cell, family CallableFamily,
	generics GenericsSource, body BodyChecker) *InferenceContext {
	ctx := &InferenceContext{
		GlobalSubst: make(typesystem.Subst),
		Pool:        pool,
		Tables:      tables,
		Family:      family,
		Generics:    generics,
		BodyChecker: body,
	}
	if ctx.Tables == nil {
		ctx.Tables = typetable.NewCell(nil)
	}
	if ctx.Pool == nil {
		ctx.Pool = obligations.NewOrderedPool()
	}
	ctx.Normalizer = ResolvingNormalizer{Subst: func() typesystem.Subst { return ctx.GlobalSubst }}
	return ctx
}

// FreshVar generates a fresh type variable. Fresh names start with '$',
// which no written type can contain, so they never meet a variable from
// the expected type or the obligations.
func (ctx *InferenceContext) FreshVar() typesystem.TVar {
	ctx.counter++
	return typesystem.TVar{Name: fmt.Sprintf("$t%d", ctx.counter)}
}

// Resolve applies the accumulated substitution to t.
func (ctx *InferenceContext) Resolve(t typesystem.Type) typesystem.Type {
	if t == nil {
		return nil
	}
	return t.Apply(ctx.GlobalSubst)
}
