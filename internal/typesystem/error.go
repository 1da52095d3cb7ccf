package typesystem

import "fmt"

// UnificationError indicates two types have no common instance.
type UnificationError struct {
	T1 Type
	T2 Type
}

func (e *UnificationError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.T1, e.T2)
}
