package symbols

import (
	"fmt"

	"github.com/funvibe/closurecheck/internal/typesystem"
)

// DefineInterface registers a new interface with a fresh DefID. Names
// visible from an outer scope cannot be redefined.
func (s *SymbolTable) DefineInterface(name string, arity int, items []string, origin string) (Symbol, error) {
	if prev, ok := s.Find(name); ok {
		return Symbol{}, fmt.Errorf("interface %s is already defined in %s", name, prev.OriginModule)
	}
	def := s.allocDefID()

	sym := Symbol{
		Name:         name,
		Kind:         InterfaceSymbol,
		DefID:        def,
		Arity:        arity,
		Items:        items,
		OriginModule: origin,
	}
	s.define(sym)
	return sym, nil
}

// defineWithID registers a symbol whose DefID is fixed in advance.
func (s *SymbolTable) defineWithID(sym Symbol) {
	s.define(sym)
	root := s.root()
	if sym.DefID >= root.nextDef {
		root.nextDef = sym.DefID + 1
	}
}

func (s *SymbolTable) define(sym Symbol) {
	s.store[sym.Name] = sym
	s.byDef[sym.DefID] = sym
}

// Find looks a name up in this scope and then in outer scopes.
func (s *SymbolTable) Find(name string) (Symbol, bool) {
	if sym, ok := s.store[name]; ok {
		return sym, true
	}
	if s.outer != nil {
		return s.outer.Find(name)
	}
	return Symbol{}, false
}

// FindInterface is Find restricted to interfaces.
func (s *SymbolTable) FindInterface(name string) (Symbol, bool) {
	sym, ok := s.Find(name)
	if !ok || sym.Kind != InterfaceSymbol {
		return Symbol{}, false
	}
	return sym, true
}

// FindByDef looks a definition up by id.
func (s *SymbolTable) FindByDef(def typesystem.DefID) (Symbol, bool) {
	if sym, ok := s.byDef[def]; ok {
		return sym, true
	}
	if s.outer != nil {
		return s.outer.FindByDef(def)
	}
	return Symbol{}, false
}

// IsDefined reports whether name is defined in this exact scope.
func (s *SymbolTable) IsDefined(name string) bool {
	_, ok := s.store[name]
	return ok
}
