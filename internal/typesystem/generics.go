package typesystem

import (
	"strings"
)

type GenericParamKind int

const (
	ParamType GenericParamKind = iota
	ParamRegion
)

// GenericParam is one declared generic parameter. Index counts across the
// whole parent chain, types and regions separately.
type GenericParam struct {
	Name  string
	Index int
	Kind  GenericParamKind
}

// Generics lists a definition's own generic parameters; inherited ones live on Parent.
type Generics struct {
	DefID  DefID
	Parent *Generics
	Params []GenericParam
}

// ParentCount returns the number of parameters inherited from the parent chain.
func (g *Generics) ParentCount() (types, regions int) {
	if g == nil || g.Parent == nil {
		return 0, 0
	}
	t, r := g.Parent.ParentCount()
	for _, p := range g.Parent.Params {
		if p.Kind == ParamType {
			t++
		} else {
			r++
		}
	}
	return t, r
}

// Substs is a generic argument list: one type per type parameter and one
// region per region parameter, parents first.
type Substs struct {
	Types   []Type
	Regions []Region
}

func (s Substs) String() string {
	if len(s.Types) == 0 && len(s.Regions) == 0 {
		return ""
	}
	parts := []string{}
	for _, r := range s.Regions {
		parts = append(parts, r.String())
	}
	for _, t := range s.Types {
		parts = append(parts, t.String())
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (s Substs) applyWithCycleCheck(subst Subst, visited map[string]bool) Substs {
	return Substs{Types: applyAll(s.Types, subst, visited), Regions: s.Regions}
}

func (s Substs) mapRegions(f func(Region) Region) Substs {
	out := Substs{}
	for _, r := range s.Regions {
		out.Regions = append(out.Regions, f(r))
	}
	for _, t := range s.Types {
		out.Types = append(out.Types, MapRegions(t, f))
	}
	return out
}

func (s Substs) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, t := range s.Types {
		vars = append(vars, t.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// IdentitySubsts maps every parameter of g (parents included) to itself.
func IdentitySubsts(g *Generics) Substs {
	out := Substs{Types: []Type{}, Regions: []Region{}}
	if g == nil {
		return out
	}
	parent := IdentitySubsts(g.Parent)
	out.Types = append(out.Types, parent.Types...)
	out.Regions = append(out.Regions, parent.Regions...)
	for _, p := range g.Params {
		if p.Kind == ParamType {
			out.Types = append(out.Types, TParam{Index: p.Index, Name: p.Name})
		} else {
			out.Regions = append(out.Regions, Region{Kind: RegionEarlyBound, Index: p.Index, Name: p.Name})
		}
	}
	return out
}

// ExtendTo builds the substitution for g's own parameters on top of parent,
// the already-bound arguments for g.Parent. mkRegion and mkType are called
// for each own parameter in declaration order with the arguments built so far.
// The first error from mkRegion aborts the extension.
func ExtendTo(parent Substs, g *Generics,
	mkRegion func(p GenericParam, sofar Substs) (Region, error),
	mkType func(p GenericParam, sofar Substs) Type,
) (Substs, error) {
	out := Substs{
		Types:   append([]Type{}, parent.Types...),
		Regions: append([]Region{}, parent.Regions...),
	}
	if g == nil {
		return out, nil
	}
	for _, p := range g.Params {
		switch p.Kind {
		case ParamRegion:
			r, err := mkRegion(p, out)
			if err != nil {
				return Substs{}, err
			}
			out.Regions = append(out.Regions, r)
		case ParamType:
			out.Types = append(out.Types, mkType(p, out))
		}
	}
	return out, nil
}
