package typetable

import (
	"fmt"
	"sort"
	"sync"

	"github.com/funvibe/closurecheck/internal/diagnostics"
	"github.com/funvibe/closurecheck/internal/token"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// KindOrigin points at the use that forced a closure's capability level.
// Closure checking never knows it; later passes fill it in.
type KindOrigin struct {
	Cause typesystem.NodeID
	Place string
}

// KindRecord is the capability recorded for a closure.
type KindRecord struct {
	Level  typesystem.CapabilityLevel
	Origin *KindOrigin
}

func (k KindRecord) String() string {
	if k.Origin == nil {
		return k.Level.String()
	}
	return fmt.Sprintf("%s (from %s %s)", k.Level, k.Origin.Cause, k.Origin.Place)
}

// Tables holds the per-expression results of type checking that closure
// inference writes. Each key is written at most once.
type Tables struct {
	closureSigs  map[typesystem.NodeID]typesystem.Signature
	closureKinds map[typesystem.NodeID]KindRecord
}

func NewTables() *Tables {
	return &Tables{
		closureSigs:  make(map[typesystem.NodeID]typesystem.Signature),
		closureKinds: make(map[typesystem.NodeID]KindRecord),
	}
}

// InsertClosureSig records the tupled signature of closure id.
func (t *Tables) InsertClosureSig(id typesystem.NodeID, sig typesystem.Signature) error {
	if prev, ok := t.closureSigs[id]; ok {
		return diagnostics.NewInternalError(diagnostics.ErrI002, token.Token{},
			fmt.Sprintf("closure signature for %s already recorded as %s", id, prev))
	}
	t.closureSigs[id] = sig
	return nil
}

// InsertClosureKind records the capability level of closure id.
func (t *Tables) InsertClosureKind(id typesystem.NodeID, rec KindRecord) error {
	if prev, ok := t.closureKinds[id]; ok {
		return diagnostics.NewInternalError(diagnostics.ErrI002, token.Token{},
			fmt.Sprintf("closure kind for %s already recorded as %s", id, prev))
	}
	t.closureKinds[id] = rec
	return nil
}

func (t *Tables) ClosureSig(id typesystem.NodeID) (typesystem.Signature, bool) {
	sig, ok := t.closureSigs[id]
	return sig, ok
}

func (t *Tables) ClosureKind(id typesystem.NodeID) (KindRecord, bool) {
	rec, ok := t.closureKinds[id]
	return rec, ok
}

// ClosureIDs returns every closure with a recorded signature, ascending.
func (t *Tables) ClosureIDs() []typesystem.NodeID {
	ids := make([]typesystem.NodeID, 0, len(t.closureSigs))
	for id := range t.closureSigs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Cell guards a Tables value with dynamic borrow tracking. Any number of
// shared borrows may be outstanding, or exactly one exclusive borrow.
// A conflicting borrow is a programming error and panics.
type Cell struct {
	mu       sync.Mutex
	tables   *Tables
	readers  int
	borrowed bool
}

func NewCell(tables *Tables) *Cell {
	if tables == nil {
		tables = NewTables()
	}
	return &Cell{tables: tables}
}

// Borrow takes a shared borrow. The returned func releases it.
func (c *Cell) Borrow() (*Tables, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.borrowed {
		panic("typetable: already mutably borrowed")
	}
	c.readers++
	released := false
	return c.tables, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !released {
			released = true
			c.readers--
		}
	}
}

// BorrowMut takes the exclusive borrow. The returned func releases it.
func (c *Cell) BorrowMut() (*Tables, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.borrowed || c.readers > 0 {
		panic("typetable: already borrowed")
	}
	c.borrowed = true
	released := false
	return c.tables, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if !released {
			released = true
			c.borrowed = false
		}
	}
}

// IsBorrowed reports whether any borrow is outstanding.
func (c *Cell) IsBorrowed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.borrowed || c.readers > 0
}
