package typesystem

import (
	"fmt"
	"reflect"
	"strings"
)

type Unsafety int

const (
	Normal Unsafety = iota
	Unsafe
)

func (u Unsafety) String() string {
	if u == Unsafe {
		return "unsafe"
	}
	return "normal"
}

// ABI is the calling convention tag. It is carried through unchanged.
type ABI string

const (
	ABIRust     ABI = "Rust"
	ABIRustCall ABI = "rust-call"
	ABIC        ABI = "C"
)

// Signature is a call signature. BoundRegions lists the late-bound regions
// bound by the signature's own binder (for<'a, ...>).
type Signature struct {
	Inputs       []Type
	Output       Type
	Variadic     bool
	Unsafety     Unsafety
	ABI          ABI
	BoundRegions []Region
}

// NewSignature builds a non-variadic, safe Rust-ABI signature.
func NewSignature(inputs []Type, output Type) Signature {
	return Signature{Inputs: inputs, Output: output, Unsafety: Normal, ABI: ABIRust}
}

func (s Signature) String() string {
	return s.render("")
}

func (s Signature) render(prefix string) string {
	var sb strings.Builder
	if len(s.BoundRegions) > 0 {
		names := []string{}
		for _, r := range s.BoundRegions {
			names = append(names, r.String())
		}
		sb.WriteString(fmt.Sprintf("for<%s> ", strings.Join(names, ", ")))
	}
	if s.Unsafety == Unsafe {
		sb.WriteString("unsafe ")
	}
	if s.ABI != "" && s.ABI != ABIRust && s.ABI != ABIRustCall {
		sb.WriteString(fmt.Sprintf("extern %q ", string(s.ABI)))
	}
	sb.WriteString(prefix)

	params := []string{}
	for _, p := range s.Inputs {
		params = append(params, p.String())
	}
	if s.Variadic {
		params = append(params, "...")
	}
	out := "()"
	if s.Output != nil {
		out = s.Output.String()
	}
	sb.WriteString(fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), out))
	return sb.String()
}

// Apply applies the substitution to inputs and output.
func (s Signature) Apply(subst Subst) Signature {
	return s.applyWithCycleCheck(subst, make(map[string]bool))
}

func (s Signature) applyWithCycleCheck(subst Subst, visited map[string]bool) Signature {
	out := s
	out.Inputs = applyAll(s.Inputs, subst, visited)
	out.Output = ApplyWithCycleCheck(s.Output, subst, visited)
	return out
}

func (s Signature) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, p := range s.Inputs {
		vars = append(vars, p.FreeTypeVariables()...)
	}
	if s.Output != nil {
		vars = append(vars, s.Output.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// Equal compares two signatures structurally.
func (s Signature) Equal(other Signature) bool {
	return reflect.DeepEqual(s, other)
}

// Tupled packs the parameter list into a single tuple argument, the shape
// in which the callable interfaces spell a call.
func (s Signature) Tupled() Signature {
	out := s
	elems := make([]Type, len(s.Inputs))
	copy(elems, s.Inputs)
	out.Inputs = []Type{TTuple{Elements: elems}}
	return out
}

// AnonymizeLateBound renumbers the signature's late-bound regions as
// anonymous regions 0..n-1, dropping their names.
func (s Signature) AnonymizeLateBound() Signature {
	if len(s.BoundRegions) == 0 {
		return s
	}
	index := make(map[Region]int, len(s.BoundRegions))
	bound := make([]Region, len(s.BoundRegions))
	for i, r := range s.BoundRegions {
		index[r] = i
		bound[i] = Region{Kind: RegionLateBound, Index: i}
	}
	out := s.mapRegions(func(r Region) Region {
		if i, ok := index[r]; ok {
			return bound[i]
		}
		return r
	})
	out.BoundRegions = bound
	return out
}

// Liberate replaces the late-bound regions of the signature with free
// regions scoped to scope and removes the binder.
func (s Signature) Liberate(scope NodeID) Signature {
	if len(s.BoundRegions) == 0 {
		return s
	}
	index := make(map[Region]int, len(s.BoundRegions))
	for i, r := range s.BoundRegions {
		index[r] = i
	}
	out := s.mapRegions(func(r Region) Region {
		if i, ok := index[r]; ok {
			return Region{Kind: RegionFree, Index: i, Name: r.Name, Scope: scope}
		}
		return r
	})
	out.BoundRegions = nil
	return out
}

// Regions returns every region mentioned by the inputs and output, in order.
func (s Signature) Regions() []Region {
	var regions []Region
	collect := func(r Region) Region {
		regions = append(regions, r)
		return r
	}
	s.mapRegions(collect)
	return regions
}

func (s Signature) mapRegions(f func(Region) Region) Signature {
	out := s
	out.Inputs = make([]Type, len(s.Inputs))
	for i, in := range s.Inputs {
		out.Inputs[i] = MapRegions(in, f)
	}
	out.Output = MapRegions(s.Output, f)
	return out
}
