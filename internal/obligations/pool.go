package obligations

import (
	"github.com/funvibe/closurecheck/internal/typesystem"
)

// Obligation is a not-yet-proven predicate tracked by the fulfillment engine.
type Obligation struct {
	Predicate Predicate
	Cause     typesystem.NodeID // expression that gave rise to it
}

func (o Obligation) String() string {
	return o.Predicate.String()
}

// Pool gives read-only, sequential access to the pending obligations.
// The returned slice must not be modified by callers.
type Pool interface {
	PendingObligations() []Obligation
}

// OrderedPool keeps pending obligations in registration order, so that
// every scan observes the same sequence for the same registrations.
type OrderedPool struct {
	pending []Obligation
	scans   int
}

// NewOrderedPool creates an empty pool.
func NewOrderedPool() *OrderedPool {
	return &OrderedPool{pending: make([]Obligation, 0)}
}

// Register appends an obligation.
func (p *OrderedPool) Register(o Obligation) {
	p.pending = append(p.pending, o)
}

// RegisterPredicate appends a predicate with no particular cause.
func (p *OrderedPool) RegisterPredicate(pred Predicate) {
	p.Register(Obligation{Predicate: pred})
}

// PendingObligations implements Pool.
func (p *OrderedPool) PendingObligations() []Obligation {
	p.scans++
	return p.pending
}

// Len returns the number of pending obligations.
func (p *OrderedPool) Len() int {
	return len(p.pending)
}

// Scans returns how many times the pending set has been read.
func (p *OrderedPool) Scans() int {
	return p.scans
}

// Retain keeps only the obligations for which keep returns true, preserving order.
// This is the fulfillment engine's side of the pool; scans never call it.
func (p *OrderedPool) Retain(keep func(Obligation) bool) {
	out := p.pending[:0]
	for _, o := range p.pending {
		if keep(o) {
			out = append(out, o)
		}
	}
	p.pending = out
}
