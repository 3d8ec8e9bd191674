package interval

// Order classifies how interval A relates to interval B. Every relation
// between two intervals is exactly one of these values.
type Order int

const (
	// Equal: same members, including both empty.
	Equal Order = iota
	// AOnly: B is empty, A is not.
	AOnly
	// BOnly: A is empty, B is not.
	BOnly
	// ABelowB: A lies below B with a non-empty gap.
	ABelowB
	BBelowA
	// ATouchesB: A lies below B with no value between them.
	ATouchesB
	BTouchesA
	// AOverlapsB: A starts first and ends inside B.
	AOverlapsB
	BOverlapsA
	// AExtendsBelowB: A starts first, both end together.
	AExtendsBelowB
	BExtendsBelowA
	// AExtendsAboveB: both start together, A ends last.
	AExtendsAboveB
	BExtendsAboveA
	// AEnclosesB: A starts first and ends last.
	AEnclosesB
	BEnclosesA
)

var orderNames = [...]string{
	Equal:          "equal",
	AOnly:          "a_only",
	BOnly:          "b_only",
	ABelowB:        "a_below_b",
	BBelowA:        "b_below_a",
	ATouchesB:      "a_touches_b",
	BTouchesA:      "b_touches_a",
	AOverlapsB:     "a_overlaps_b",
	BOverlapsA:     "b_overlaps_a",
	AExtendsBelowB: "a_extends_below_b",
	BExtendsBelowA: "b_extends_below_a",
	AExtendsAboveB: "a_extends_above_b",
	BExtendsAboveA: "b_extends_above_a",
	AEnclosesB:     "a_encloses_b",
	BEnclosesA:     "b_encloses_a",
}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return "unknown"
	}
	return orderNames[o]
}

// Swap returns the same relation seen from B.
func (o Order) Swap() Order {
	switch o {
	case AOnly:
		return BOnly
	case BOnly:
		return AOnly
	case ABelowB:
		return BBelowA
	case BBelowA:
		return ABelowB
	case ATouchesB:
		return BTouchesA
	case BTouchesA:
		return ATouchesB
	case AOverlapsB:
		return BOverlapsA
	case BOverlapsA:
		return AOverlapsB
	case AExtendsBelowB:
		return BExtendsBelowA
	case BExtendsBelowA:
		return AExtendsBelowB
	case AExtendsAboveB:
		return BExtendsAboveA
	case BExtendsAboveA:
		return AExtendsAboveB
	case AEnclosesB:
		return BEnclosesA
	case BEnclosesA:
		return AEnclosesB
	}
	return o
}

// Disjoint reports whether the relation leaves no common member.
func (o Order) Disjoint() bool {
	switch o {
	case AOnly, BOnly, ABelowB, BBelowA, ATouchesB, BTouchesA:
		return true
	}
	return false
}

// Order classifies the relation of i (A) to other (B).
func (i Interval[T, D]) Order(other Interval[T, D]) Order {
	switch {
	case i.IsEmpty() && other.IsEmpty():
		return Equal
	case other.IsEmpty():
		return AOnly
	case i.IsEmpty():
		return BOnly
	}
	aLo, aHi := i.lower(), i.upper()
	bLo, bHi := other.lower(), other.upper()

	if comparePoints[T, D](aHi, bLo) < 0 {
		if adjacent[T, D](aHi, bLo) {
			return ATouchesB
		}
		return ABelowB
	}
	if comparePoints[T, D](bHi, aLo) < 0 {
		if adjacent[T, D](bHi, aLo) {
			return BTouchesA
		}
		return BBelowA
	}

	lo := comparePoints[T, D](aLo, bLo)
	hi := comparePoints[T, D](aHi, bHi)
	switch {
	case lo == 0 && hi == 0:
		return Equal
	case lo == 0 && hi > 0:
		return AExtendsAboveB
	case lo == 0:
		return BExtendsAboveA
	case hi == 0 && lo < 0:
		return AExtendsBelowB
	case hi == 0:
		return BExtendsBelowA
	case lo < 0 && hi > 0:
		return AEnclosesB
	case lo > 0 && hi < 0:
		return BEnclosesA
	case lo < 0:
		return AOverlapsB
	}
	return BOverlapsA
}
