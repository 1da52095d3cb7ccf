package symbols

import (
	"github.com/funvibe/closurecheck/internal/typesystem"
)

type SymbolKind int

type ScopeType int

const (
	ScopePrelude  ScopeType = iota // lang items and built-in interfaces
	ScopeScenario                  // interfaces declared by one scenario
)

const (
	InterfaceSymbol SymbolKind = iota
	TypeSymbol
)

type Symbol struct {
	Name  string
	Kind  SymbolKind
	DefID typesystem.DefID
	// Arity is the number of interface arguments after the self type.
	Arity int
	// Items lists the associated type names the interface declares.
	Items []string
	// Callable is set for members of the callable interface family.
	Callable     bool
	Capability   typesystem.CapabilityLevel
	OriginModule string
}

// HasItem reports whether the interface declares associated type name.
func (s Symbol) HasItem(name string) bool {
	for _, it := range s.Items {
		if it == name {
			return true
		}
	}
	return false
}

// Ref builds an interface application for this symbol.
func (s Symbol) Ref(self typesystem.Type, args ...typesystem.Type) typesystem.InterfaceRef {
	return typesystem.InterfaceRef{DefID: s.DefID, Name: s.Name, Self: self, Args: args}
}
