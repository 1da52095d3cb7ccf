package symbols

import (
	"sync"

	"github.com/funvibe/closurecheck/internal/config"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// DefIDs below this are reserved for the prelude.
const firstUserDefID typesystem.DefID = 100

// Singleton prelude table built from the default lang items
var (
	preludeTable *SymbolTable
	preludeOnce  sync.Once
)

// GetPrelude returns the shared prelude for the default lang item names.
func GetPrelude() *SymbolTable {
	preludeOnce.Do(func() {
		preludeTable = NewPrelude(config.Default().LangItems)
	})
	return preludeTable
}

// NewPrelude builds a prelude whose callable family uses the given names.
func NewPrelude(items config.LangItems) *SymbolTable {
	st := NewEmptySymbolTable()
	st.InitBuiltins(items)
	return st
}

// NewSymbolTable creates a scenario scope over the default prelude.
func NewSymbolTable() *SymbolTable {
	return NewEnclosedSymbolTable(GetPrelude())
}

func (st *SymbolTable) InitBuiltins(items config.LangItems) {
	const prelude = "prelude"

	// The callable family. Each takes the argument tuple after Self and
	// FnOnce declares the output item; the others inherit it.
	st.defineWithID(Symbol{
		Name: items.Fn, Kind: InterfaceSymbol, DefID: config.FnTraitID, Arity: 1,
		Items: []string{items.Output}, Callable: true, Capability: typesystem.CallImmutable, OriginModule: prelude,
	})
	st.defineWithID(Symbol{
		Name: items.FnMut, Kind: InterfaceSymbol, DefID: config.FnMutTraitID, Arity: 1,
		Items: []string{items.Output}, Callable: true, Capability: typesystem.CallMutable, OriginModule: prelude,
	})
	st.defineWithID(Symbol{
		Name: items.FnOnce, Kind: InterfaceSymbol, DefID: config.FnOnceTraitID, Arity: 1,
		Items: []string{items.Output}, Callable: true, Capability: typesystem.CallOnce, OriginModule: prelude,
	})

	// Ordinary interfaces that commonly show up next to closure bounds.
	st.defineWithID(Symbol{Name: "Clone", Kind: InterfaceSymbol, DefID: 4, OriginModule: prelude})
	st.defineWithID(Symbol{Name: "Send", Kind: InterfaceSymbol, DefID: 5, OriginModule: prelude})
	st.defineWithID(Symbol{Name: "Sized", Kind: InterfaceSymbol, DefID: 6, OriginModule: prelude})
	st.defineWithID(Symbol{Name: "Iterator", Kind: InterfaceSymbol, DefID: 7, Items: []string{"Item"}, OriginModule: prelude})
	st.defineWithID(Symbol{Name: "Add", Kind: InterfaceSymbol, DefID: 8, Arity: 1, Items: []string{items.Output}, OriginModule: prelude})
}
