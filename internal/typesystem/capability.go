package typesystem

// CapabilityLevel is how a closure may be called. Levels are ordered by
// restrictiveness: CallImmutable is the tightest, and a closure callable at
// a tighter level is also callable at every looser one.
type CapabilityLevel int

const (
	CallImmutable CapabilityLevel = iota // Fn
	CallMutable                          // FnMut
	CallOnce                             // FnOnce
)

func (l CapabilityLevel) String() string {
	switch l {
	case CallImmutable:
		return "Fn"
	case CallMutable:
		return "FnMut"
	case CallOnce:
		return "FnOnce"
	default:
		return "CapabilityLevel(?)"
	}
}

// Satisfies reports whether a closure of level l can be used where other is required.
func (l CapabilityLevel) Satisfies(other CapabilityLevel) bool {
	return l <= other
}

// MostRestrictive returns the tighter of two levels.
func MostRestrictive(a, b CapabilityLevel) CapabilityLevel {
	if a < b {
		return a
	}
	return b
}

// ParseCapabilityLevel maps the canonical level names back to levels.
func ParseCapabilityLevel(s string) (CapabilityLevel, bool) {
	switch s {
	case "Fn":
		return CallImmutable, true
	case "FnMut":
		return CallMutable, true
	case "FnOnce":
		return CallOnce, true
	}
	return 0, false
}
