package typesystem

import "fmt"

// DefID identifies a definition (item, interface, closure) in the crate.
type DefID uint32

// NodeID identifies an expression node. Closure records in the type
// table are keyed by the closure expression's NodeID.
type NodeID uint32

// Invalid ID constants (zero is sentinel).
const (
	NoDefID  DefID  = 0
	NoNodeID NodeID = 0
)

// IsValid returns true if the ID is valid (non-zero).
func (id DefID) IsValid() bool  { return id != NoDefID }
func (id NodeID) IsValid() bool { return id != NoNodeID }

func (id DefID) String() string  { return fmt.Sprintf("#%d", uint32(id)) }
func (id NodeID) String() string { return fmt.Sprintf("n%d", uint32(id)) }
