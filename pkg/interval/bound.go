package interval

// Bound describes how an interval treats one of its ends.
type Bound uint8

const (
	// BoundEmpty marks both ends of the empty interval.
	BoundEmpty Bound = iota
	// BoundClosed includes the end value.
	BoundClosed
	// BoundOpen excludes the end value.
	BoundOpen
	// BoundUnbound has no end value on that side.
	BoundUnbound
)

func (b Bound) String() string {
	switch b {
	case BoundClosed:
		return "closed"
	case BoundOpen:
		return "open"
	case BoundUnbound:
		return "unbound"
	}
	return "empty"
}

// Invert swaps open and closed and leaves the empty and unbound markers as they are.
func (b Bound) Invert() Bound {
	switch b {
	case BoundOpen:
		return BoundClosed
	case BoundClosed:
		return BoundOpen
	}
	return b
}

// Bounds returns the left and right bound for one of the mode tokens
// "[]", "()", "[)", "(]", "<", "<=", ">" and ">=".
func Bounds(mode string) (left, right Bound, ok bool) {
	switch mode {
	case "[]":
		return BoundClosed, BoundClosed, true
	case "()":
		return BoundOpen, BoundOpen, true
	case "[)":
		return BoundClosed, BoundOpen, true
	case "(]":
		return BoundOpen, BoundClosed, true
	case "<":
		return BoundUnbound, BoundOpen, true
	case "<=":
		return BoundUnbound, BoundClosed, true
	case ">":
		return BoundOpen, BoundUnbound, true
	case ">=":
		return BoundClosed, BoundUnbound, true
	}
	return BoundEmpty, BoundEmpty, false
}
