package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TVar represents an inference variable (e.g. '?v', '?t3').
type TVar struct {
	Name string
}

func (t TVar) String() string { return "?" + t.Name }

func (t TVar) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVar) FreeTypeVariables() []TVar {
	return []TVar{t}
}

// ApplyWithCycleCheck applies substitution with cycle detection.
// This is the main entry point for substitution application.
func ApplyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	if t == nil {
		return nil
	}

	switch typ := t.(type) {
	case TVar:
		if visited[typ.Name] {
			return typ
		}
		if replacement, ok := s[typ.Name]; ok {
			if tv, ok := replacement.(TVar); ok && tv.Name == typ.Name {
				return typ
			}
			newVisited := copyVisited(visited)
			newVisited[typ.Name] = true
			return ApplyWithCycleCheck(replacement, s, newVisited)
		}
		return typ

	case TTuple:
		return TTuple{Elements: applyAll(typ.Elements, s, visited)}

	case TRef:
		return TRef{Region: typ.Region, Mutable: typ.Mutable, Elem: ApplyWithCycleCheck(typ.Elem, s, visited)}

	case TFnPtr:
		return TFnPtr{Sig: typ.Sig.applyWithCycleCheck(s, visited)}

	case TDynamic:
		out := TDynamic{Region: typ.Region}
		if typ.Principal != nil {
			p := typ.Principal.applyWithCycleCheck(s, visited)
			out.Principal = &p
		}
		for _, proj := range typ.Projections {
			out.Projections = append(out.Projections, proj.applyWithCycleCheck(s, visited))
		}
		return out

	case TClosure:
		return TClosure{DefID: typ.DefID, Substs: typ.Substs.applyWithCycleCheck(s, visited)}

	case TCoroutine:
		return TCoroutine{
			DefID:    typ.DefID,
			Substs:   typ.Substs.applyWithCycleCheck(s, visited),
			Interior: Interior{Witness: ApplyWithCycleCheck(typ.Interior.Witness, s, visited)},
		}

	default:
		// TCon, TParam, TInfer, TDummySelf carry no variables
		return t
	}
}

func applyAll(ts []Type, s Subst, visited map[string]bool) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = ApplyWithCycleCheck(t, s, visited)
	}
	return out
}

func copyVisited(m map[string]bool) map[string]bool {
	newMap := make(map[string]bool, len(m))
	for k, v := range m {
		newMap[k] = v
	}
	return newMap
}

// TCon represents a nominal or scalar type (e.g. i32, bool, String).
type TCon struct {
	Name string
}

func (t TCon) String() string            { return t.Name }
func (t TCon) Apply(s Subst) Type        { return t }
func (t TCon) FreeTypeVariables() []TVar { return []TVar{} }

// TParam is a generic type parameter of an enclosing item, in scope as itself.
type TParam struct {
	Index int
	Name  string
}

func (t TParam) String() string            { return t.Name }
func (t TParam) Apply(s Subst) Type        { return t }
func (t TParam) FreeTypeVariables() []TVar { return []TVar{} }

// TInfer is the '_' written in place of a type in declared syntax.
type TInfer struct{}

func (t TInfer) String() string            { return "_" }
func (t TInfer) Apply(s Subst) Type        { return t }
func (t TInfer) FreeTypeVariables() []TVar { return []TVar{} }

// TDummySelf stands in for the erased self type of a trait object's bounds.
type TDummySelf struct{}

func (t TDummySelf) String() string            { return "Self" }
func (t TDummySelf) Apply(s Subst) Type        { return t }
func (t TDummySelf) FreeTypeVariables() []TVar { return []TVar{} }

// TTuple represents a tuple type (e.g. (i32, bool)).
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	args := []string{}
	for _, el := range t.Elements {
		args = append(args, el.String())
	}
	if len(args) == 1 {
		return fmt.Sprintf("(%s,)", args[0])
	}
	return fmt.Sprintf("(%s)", strings.Join(args, ", "))
}

func (t TTuple) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TTuple) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, el := range t.Elements {
		vars = append(vars, el.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TRef is a reference type (e.g. &'a mut T).
type TRef struct {
	Region  Region
	Mutable bool
	Elem    Type
}

func (t TRef) String() string {
	var sb strings.Builder
	sb.WriteString("&")
	if t.Region.Kind != RegionErased {
		sb.WriteString(t.Region.String())
		sb.WriteString(" ")
	}
	if t.Mutable {
		sb.WriteString("mut ")
	}
	sb.WriteString(t.Elem.String())
	return sb.String()
}

func (t TRef) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TRef) FreeTypeVariables() []TVar {
	return t.Elem.FreeTypeVariables()
}

// TFnPtr is a concrete function pointer type.
type TFnPtr struct {
	Sig Signature
}

func (t TFnPtr) String() string {
	return t.Sig.render("fn")
}

func (t TFnPtr) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TFnPtr) FreeTypeVariables() []TVar {
	return t.Sig.FreeTypeVariables()
}

// TDynamic is a trait object type: an optional principal interface plus
// associated-type projection bounds. Self in the bounds is TDummySelf.
type TDynamic struct {
	Principal   *InterfaceRef
	Projections []Projection
	Region      Region
}

func (t TDynamic) String() string {
	if t.Principal == nil {
		parts := []string{}
		for _, p := range t.Projections {
			parts = append(parts, p.String())
		}
		return "dyn " + strings.Join(parts, " + ")
	}

	var sb strings.Builder
	sb.WriteString("dyn ")
	sb.WriteString(t.Principal.Name)
	args := []string{}
	for _, a := range t.Principal.Args {
		args = append(args, a.String())
	}
	for _, p := range t.Projections {
		if p.Interface.DefID == t.Principal.DefID {
			args = append(args, fmt.Sprintf("%s = %s", p.Item, p.Ty))
		}
	}
	if len(args) > 0 {
		sb.WriteString("<")
		sb.WriteString(strings.Join(args, ", "))
		sb.WriteString(">")
	}
	for _, p := range t.Projections {
		if p.Interface.DefID != t.Principal.DefID {
			sb.WriteString(" + ")
			sb.WriteString(p.String())
		}
	}
	return sb.String()
}

func (t TDynamic) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TDynamic) FreeTypeVariables() []TVar {
	vars := []TVar{}
	if t.Principal != nil {
		vars = append(vars, t.Principal.FreeTypeVariables()...)
	}
	for _, p := range t.Projections {
		vars = append(vars, p.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TClosure is the type of an ordinary closure expression.
type TClosure struct {
	DefID  DefID
	Substs Substs
}

func (t TClosure) String() string {
	return fmt.Sprintf("[closure%s%s]", t.DefID, t.Substs)
}

func (t TClosure) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TClosure) FreeTypeVariables() []TVar {
	return t.Substs.FreeTypeVariables()
}

// Interior describes the state held across a coroutine's suspension points.
type Interior struct {
	Witness Type
}

func (i Interior) String() string {
	if i.Witness == nil {
		return "interior()"
	}
	return fmt.Sprintf("interior%s", i.Witness)
}

// TCoroutine is the type of a closure whose body suspends.
type TCoroutine struct {
	DefID    DefID
	Substs   Substs
	Interior Interior
}

func (t TCoroutine) String() string {
	return fmt.Sprintf("[coroutine%s%s %s]", t.DefID, t.Substs, t.Interior)
}

func (t TCoroutine) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TCoroutine) FreeTypeVariables() []TVar {
	vars := t.Substs.FreeTypeVariables()
	if t.Interior.Witness != nil {
		vars = append(vars, t.Interior.Witness.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// InterfaceRef is an interface applied to a self type and further arguments,
// e.g. Fn<?v, (i32, i32)>.
type InterfaceRef struct {
	DefID DefID
	Name  string
	Self  Type
	Args  []Type
}

func (r InterfaceRef) String() string {
	args := []string{}
	if r.Self != nil {
		args = append(args, r.Self.String())
	}
	for _, a := range r.Args {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s<%s>", r.Name, strings.Join(args, ", "))
}

func (r InterfaceRef) applyWithCycleCheck(s Subst, visited map[string]bool) InterfaceRef {
	return InterfaceRef{
		DefID: r.DefID,
		Name:  r.Name,
		Self:  ApplyWithCycleCheck(r.Self, s, visited),
		Args:  applyAll(r.Args, s, visited),
	}
}

// Apply applies the substitution to the self type and arguments.
func (r InterfaceRef) Apply(s Subst) InterfaceRef {
	return r.applyWithCycleCheck(s, make(map[string]bool))
}

// WithSelf returns a copy with a different self type.
func (r InterfaceRef) WithSelf(self Type) InterfaceRef {
	r.Self = self
	return r
}

func (r InterfaceRef) FreeTypeVariables() []TVar {
	vars := []TVar{}
	if r.Self != nil {
		vars = append(vars, r.Self.FreeTypeVariables()...)
	}
	for _, a := range r.Args {
		vars = append(vars, a.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// Projection states that Interface's associated type Item equals Ty.
type Projection struct {
	Interface InterfaceRef
	Item      string
	Ty        Type
}

func (p Projection) String() string {
	return fmt.Sprintf("%s::%s == %s", p.Interface, p.Item, p.Ty)
}

func (p Projection) applyWithCycleCheck(s Subst, visited map[string]bool) Projection {
	return Projection{
		Interface: p.Interface.applyWithCycleCheck(s, visited),
		Item:      p.Item,
		Ty:        ApplyWithCycleCheck(p.Ty, s, visited),
	}
}

// Apply applies the substitution to the interface and the projected type.
func (p Projection) Apply(s Subst) Projection {
	return p.applyWithCycleCheck(s, make(map[string]bool))
}

func (p Projection) FreeTypeVariables() []TVar {
	vars := p.Interface.FreeTypeVariables()
	vars = append(vars, p.Ty.FreeTypeVariables()...)
	return uniqueTVars(vars)
}

// Subst is a mapping from Type Variables to Types.
type Subst map[string]Type

// Compose combines two substitutions.
func (s1 Subst) Compose(s2 Subst) Subst {
	subst := Subst{}
	for k, v := range s2 {
		subst[k] = v
	}
	for k, v := range s1 {
		subst[k] = v.Apply(s2)
	}
	return subst
}

// ShallowResolve follows variable bindings at the top of t only.
func ShallowResolve(t Type, s Subst) Type {
	seen := map[string]bool{}
	for {
		tv, ok := t.(TVar)
		if !ok || seen[tv.Name] {
			return t
		}
		seen[tv.Name] = true
		next, ok := s[tv.Name]
		if !ok {
			return t
		}
		t = next
	}
}

func uniqueTVars(vars []TVar) []TVar {
	unique := []TVar{}
	seen := map[string]bool{}
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			unique = append(unique, v)
		}
	}
	return unique
}
