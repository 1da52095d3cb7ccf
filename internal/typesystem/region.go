package typesystem

import "fmt"

type RegionKind int

const (
	RegionErased RegionKind = iota
	RegionStatic
	RegionEarlyBound // named parameter of an enclosing item
	RegionLateBound  // bound by a signature's for<...> binder
	RegionFree       // late-bound region liberated into a call scope
)

// Region is an opaque lifetime token. Late-bound regions are scoped to the
// signature that binds them; free regions are scoped to Scope.
type Region struct {
	Kind  RegionKind
	Index int
	Name  string
	Scope NodeID
}

var (
	ErasedRegion = Region{Kind: RegionErased}
	StaticRegion = Region{Kind: RegionStatic, Name: "static"}
)

func (r Region) String() string {
	switch r.Kind {
	case RegionStatic:
		return "'static"
	case RegionEarlyBound:
		return "'" + r.Name
	case RegionLateBound:
		if r.Name != "" {
			return "'" + r.Name
		}
		return fmt.Sprintf("'^%d", r.Index)
	case RegionFree:
		if r.Name != "" {
			return fmt.Sprintf("'%s/%s", r.Name, r.Scope)
		}
		return fmt.Sprintf("'%d/%s", r.Index, r.Scope)
	default:
		return "'_"
	}
}
