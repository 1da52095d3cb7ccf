package obligations

import (
	"fmt"

	"github.com/funvibe/closurecheck/internal/typesystem"
)

// Predicate is the closed set of obligation shapes. Consumers switch over
// the concrete types exhaustively.
type Predicate interface {
	String() string
	Apply(typesystem.Subst) Predicate
	predicate()
}

// TraitPredicate: Interface.Self implements Interface.
type TraitPredicate struct {
	Interface typesystem.InterfaceRef
}

// ProjectionPredicate: an associated type of an interface application equals a type.
type ProjectionPredicate struct {
	Projection typesystem.Projection
}

// EquatePredicate: A == B.
type EquatePredicate struct {
	A, B typesystem.Type
}

// SubtypePredicate: A <: B.
type SubtypePredicate struct {
	A, B typesystem.Type
}

// RegionOutlivesPredicate: 'A: 'B.
type RegionOutlivesPredicate struct {
	A, B typesystem.Region
}

// TypeOutlivesPredicate: Ty: 'Region.
type TypeOutlivesPredicate struct {
	Ty     typesystem.Type
	Region typesystem.Region
}

// WellFormedPredicate: WF(Ty).
type WellFormedPredicate struct {
	Ty typesystem.Type
}

// ObjectSafePredicate: the interface can be used as a trait object.
type ObjectSafePredicate struct {
	Interface typesystem.DefID
	Name      string
}

// ConstEvaluatablePredicate: the constant item can be evaluated.
type ConstEvaluatablePredicate struct {
	Def typesystem.DefID
}

// ClosureKindPredicate: closure Closure must be callable at Level.
// These are produced by closure checking itself, about other closures.
type ClosureKindPredicate struct {
	Closure typesystem.DefID
	Level   typesystem.CapabilityLevel
}

func (TraitPredicate) predicate()            {}
func (ProjectionPredicate) predicate()       {}
func (EquatePredicate) predicate()           {}
func (SubtypePredicate) predicate()          {}
func (RegionOutlivesPredicate) predicate()   {}
func (TypeOutlivesPredicate) predicate()     {}
func (WellFormedPredicate) predicate()       {}
func (ObjectSafePredicate) predicate()       {}
func (ConstEvaluatablePredicate) predicate() {}
func (ClosureKindPredicate) predicate()      {}

func (p TraitPredicate) String() string {
	args := typesystem.InterfaceRef{DefID: p.Interface.DefID, Name: p.Interface.Name, Args: p.Interface.Args}
	return fmt.Sprintf("%s: %s", p.Interface.Self, args)
}
func (p ProjectionPredicate) String() string     { return p.Projection.String() }
func (p EquatePredicate) String() string         { return fmt.Sprintf("%s == %s", p.A, p.B) }
func (p SubtypePredicate) String() string        { return fmt.Sprintf("%s <: %s", p.A, p.B) }
func (p RegionOutlivesPredicate) String() string { return fmt.Sprintf("%s: %s", p.A, p.B) }
func (p TypeOutlivesPredicate) String() string   { return fmt.Sprintf("%s: %s", p.Ty, p.Region) }
func (p WellFormedPredicate) String() string     { return fmt.Sprintf("WF(%s)", p.Ty) }
func (p ObjectSafePredicate) String() string     { return fmt.Sprintf("ObjectSafe(%s)", p.Name) }
func (p ConstEvaluatablePredicate) String() string {
	return fmt.Sprintf("ConstEvaluatable(%s)", p.Def)
}
func (p ClosureKindPredicate) String() string {
	return fmt.Sprintf("ClosureKind(%s, %s)", p.Closure, p.Level)
}

func (p TraitPredicate) Apply(s typesystem.Subst) Predicate {
	return TraitPredicate{Interface: p.Interface.Apply(s)}
}
func (p ProjectionPredicate) Apply(s typesystem.Subst) Predicate {
	return ProjectionPredicate{Projection: p.Projection.Apply(s)}
}
func (p EquatePredicate) Apply(s typesystem.Subst) Predicate {
	return EquatePredicate{A: p.A.Apply(s), B: p.B.Apply(s)}
}
func (p SubtypePredicate) Apply(s typesystem.Subst) Predicate {
	return SubtypePredicate{A: p.A.Apply(s), B: p.B.Apply(s)}
}
func (p RegionOutlivesPredicate) Apply(typesystem.Subst) Predicate { return p }
func (p TypeOutlivesPredicate) Apply(s typesystem.Subst) Predicate {
	return TypeOutlivesPredicate{Ty: p.Ty.Apply(s), Region: p.Region}
}
func (p WellFormedPredicate) Apply(s typesystem.Subst) Predicate {
	return WellFormedPredicate{Ty: p.Ty.Apply(s)}
}
func (p ObjectSafePredicate) Apply(typesystem.Subst) Predicate       { return p }
func (p ConstEvaluatablePredicate) Apply(typesystem.Subst) Predicate { return p }
func (p ClosureKindPredicate) Apply(typesystem.Subst) Predicate      { return p }
