package symbols

import (
	"sort"

	"github.com/funvibe/closurecheck/internal/typesystem"
)

// CapabilityOf reports the capability level an interface stands for, if it
// is a member of the callable family.
func (s *SymbolTable) CapabilityOf(def typesystem.DefID) (typesystem.CapabilityLevel, bool) {
	sym, ok := s.FindByDef(def)
	if !ok || !sym.Callable {
		return 0, false
	}
	return sym.Capability, true
}

// CallableInterface returns the family member for a capability level.
func (s *SymbolTable) CallableInterface(level typesystem.CapabilityLevel) (Symbol, bool) {
	for t := s; t != nil; t = t.outer {
		for _, sym := range t.store {
			if sym.Callable && sym.Capability == level {
				return sym, true
			}
		}
	}
	return Symbol{}, false
}

// Interfaces returns every interface visible from this scope, inner scopes first,
// each group ordered by DefID.
func (s *SymbolTable) Interfaces() []Symbol {
	var out []Symbol
	seen := map[string]bool{}
	for t := s; t != nil; t = t.outer {
		group := make([]Symbol, 0, len(t.store))
		for _, sym := range t.store {
			if sym.Kind == InterfaceSymbol && !seen[sym.Name] {
				seen[sym.Name] = true
				group = append(group, sym)
			}
		}
		sort.Slice(group, func(i, j int) bool { return group[i].DefID < group[j].DefID })
		out = append(out, group...)
	}
	return out
}
