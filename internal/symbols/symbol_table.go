package symbols

import (
	"sync"

	"github.com/funvibe/closurecheck/internal/typesystem"
)

// SymbolTable maps interface and type names to their definitions. A
// scenario table is enclosed by the prelude and falls back to it.
type SymbolTable struct {
	store     map[string]Symbol
	byDef     map[typesystem.DefID]Symbol
	outer     *SymbolTable
	scopeType ScopeType

	// nextDef is the next DefID handed out by DefineInterface. Only the
	// outermost table allocates; enclosed tables delegate to it.
	nextDef typesystem.DefID
	defMu   sync.Mutex
}

// NewEmptySymbolTable creates a table with no outer scope.
func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[string]Symbol),
		byDef:     make(map[typesystem.DefID]Symbol),
		scopeType: ScopePrelude,
		nextDef:   firstUserDefID,
	}
}

// NewEnclosedSymbolTable creates a scenario scope on top of outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = outer
	st.scopeType = ScopeScenario
	return st
}

func (s *SymbolTable) ScopeType() ScopeType { return s.scopeType }

func (s *SymbolTable) root() *SymbolTable {
	for s.outer != nil {
		s = s.outer
	}
	return s
}

func (s *SymbolTable) allocDefID() typesystem.DefID {
	root := s.root()
	root.defMu.Lock()
	defer root.defMu.Unlock()
	def := root.nextDef
	root.nextDef++
	return def
}
