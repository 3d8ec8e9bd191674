// Package interval implements intervals over ordered, integral and
// continuous value domains, sets of disjoint intervals and interval keyed
// maps.
package interval

import (
	"iter"

	"github.com/pkg/errors"
)

// Interval is a single interval over the domain D of T. The zero value is
// the empty interval. Intervals are values: every operation returns a new
// one.
type Interval[T any, D Domain[T]] struct {
	min   T
	max   T
	left  Bound
	right Bound
}

// Empty returns the empty interval.
func Empty[T any, D Domain[T]]() Interval[T, D] {
	return Interval[T, D]{}
}

// Universe returns the interval unbounded on both sides.
func Universe[T any, D Domain[T]]() Interval[T, D] {
	return Interval[T, D]{left: BoundUnbound, right: BoundUnbound}
}

// Point returns the closed interval [t,t].
func Point[T any, D Domain[T]](t T) Interval[T, D] {
	return New[T, D](t, t, BoundClosed, BoundClosed)
}

// Half returns an interval with the single end value t used on both sides,
// e.g. Half(5, BoundUnbound, BoundOpen) is <5.
func Half[T any, D Domain[T]](t T, left, right Bound) Interval[T, D] {
	return New[T, D](t, t, left, right)
}

// LessThan returns <t.
func LessThan[T any, D Domain[T]](t T) Interval[T, D] {
	return Half[T, D](t, BoundUnbound, BoundOpen)
}

// AtMost returns <=t.
func AtMost[T any, D Domain[T]](t T) Interval[T, D] {
	return Half[T, D](t, BoundUnbound, BoundClosed)
}

// GreaterThan returns >t.
func GreaterThan[T any, D Domain[T]](t T) Interval[T, D] {
	return Half[T, D](t, BoundOpen, BoundUnbound)
}

// AtLeast returns >=t.
func AtLeast[T any, D Domain[T]](t T) Interval[T, D] {
	return Half[T, D](t, BoundClosed, BoundUnbound)
}

// New returns the canonical interval between min and max. If either bound
// is BoundEmpty the result is empty.
func New[T any, D Domain[T]](min, max T, left, right Bound) Interval[T, D] {
	if left == BoundEmpty || right == BoundEmpty {
		return Interval[T, D]{}
	}
	i := Interval[T, D]{min: min, max: max, left: left, right: right}
	i.adjust()
	return i
}

// NewMode is New with the bounds given as a mode token, see Bounds.
func NewMode[T any, D Domain[T]](min, max T, mode string) (Interval[T, D], error) {
	left, right, ok := Bounds(mode)
	if !ok {
		return Interval[T, D]{}, errors.Errorf("invalid interval mode %q", mode)
	}
	return New[T, D](min, max, left, right), nil
}

// NewOrdered is New, except that a and b, and their bounds, are swapped
// when b < a instead of producing the empty interval.
func NewOrdered[T any, D Domain[T]](a, b T, left, right Bound) Interval[T, D] {
	var d D
	if d.Compare(b, a) < 0 {
		return New[T, D](b, a, right, left)
	}
	return New[T, D](a, b, left, right)
}

// adjust canonicalizes the interval.
func (i *Interval[T, D]) adjust() {
	if (i.left == BoundEmpty) != (i.right == BoundEmpty) {
		panic("interval: half empty interval")
	}
	if i.left == BoundEmpty {
		*i = Interval[T, D]{}
		return
	}
	var d D
	if d.Category() == Integral {
		if i.left == BoundOpen {
			next, ok := d.Step(i.min, true)
			if !ok {
				*i = Interval[T, D]{}
				return
			}
			i.min, i.left = next, BoundClosed
		}
		if i.right == BoundOpen {
			prev, ok := d.Step(i.max, false)
			if !ok {
				*i = Interval[T, D]{}
				return
			}
			i.max, i.right = prev, BoundClosed
		}
	}
	var zero T
	if i.left == BoundUnbound {
		i.min = zero
	}
	if i.right == BoundUnbound {
		i.max = zero
	}
	if i.left != BoundUnbound && i.right != BoundUnbound {
		c := d.Compare(i.min, i.max)
		if c > 0 || (c == 0 && (i.left == BoundOpen || i.right == BoundOpen)) {
			*i = Interval[T, D]{}
		}
	}
}

// Min returns the lower end value. It is meaningless when Left is
// BoundUnbound or BoundEmpty.
func (i Interval[T, D]) Min() T { return i.min }

// Max returns the upper end value.
func (i Interval[T, D]) Max() T { return i.max }

func (i Interval[T, D]) Left() Bound { return i.left }

func (i Interval[T, D]) Right() Bound { return i.right }

func (i Interval[T, D]) IsEmpty() bool { return i.left == BoundEmpty }

func (i Interval[T, D]) IsUniverse() bool {
	return i.left == BoundUnbound && i.right == BoundUnbound
}

// IsPoint reports whether the interval holds exactly one value.
func (i Interval[T, D]) IsPoint() bool {
	var d D
	return i.left == BoundClosed && i.right == BoundClosed && d.Compare(i.min, i.max) == 0
}

// IsBounded reports whether both ends have a value.
func (i Interval[T, D]) IsBounded() bool {
	return !i.IsEmpty() && i.left != BoundUnbound && i.right != BoundUnbound
}

// Equal reports whether i and other hold the same members.
func (i Interval[T, D]) Equal(other Interval[T, D]) bool {
	return i.Order(other) == Equal
}

func (i Interval[T, D]) lower() point[T] {
	switch i.left {
	case BoundClosed:
		return point[T]{kind: exact, v: i.min}
	case BoundOpen:
		return point[T]{kind: justAbove, v: i.min}
	}
	return point[T]{kind: negInf}
}

func (i Interval[T, D]) upper() point[T] {
	switch i.right {
	case BoundClosed:
		return point[T]{kind: exact, v: i.max}
	case BoundOpen:
		return point[T]{kind: justBelow, v: i.max}
	}
	return point[T]{kind: posInf}
}

// Match is the position of a value relative to an interval.
type Match int

const (
	MatchEmpty Match = iota
	MatchLow
	MatchOK
	MatchHigh
)

func (m Match) String() string {
	switch m {
	case MatchLow:
		return "low"
	case MatchOK:
		return "ok"
	case MatchHigh:
		return "high"
	}
	return "empty"
}

// Match reports whether t is below, inside or above i.
func (i Interval[T, D]) Match(t T) Match {
	if i.IsEmpty() {
		return MatchEmpty
	}
	if i.IsUniverse() {
		return MatchOK
	}
	p := point[T]{kind: exact, v: t}
	if comparePoints[T, D](p, i.lower()) < 0 {
		return MatchLow
	}
	if comparePoints[T, D](p, i.upper()) > 0 {
		return MatchHigh
	}
	return MatchOK
}

// Contains reports whether t is a member of i.
func (i Interval[T, D]) Contains(t T) bool {
	return i.Match(t) == MatchOK
}

// Compare orders intervals: the empty interval first, then by lower end,
// then by upper end. It returns -1, 0 or 1.
func (i Interval[T, D]) Compare(other Interval[T, D]) int {
	switch o := i.Order(other); o {
	case Equal:
		return 0
	case AOnly:
		return 1
	case BOnly:
		return -1
	case ABelowB, ATouchesB, AOverlapsB, AExtendsBelowB, AEnclosesB, BExtendsAboveA:
		return -1
	}
	return 1
}

// Includes reports whether every member of other is a member of i.
func (i Interval[T, D]) Includes(other Interval[T, D]) bool {
	switch i.Order(other) {
	case Equal:
		return !i.IsEmpty()
	case AExtendsAboveB, AExtendsBelowB, AEnclosesB:
		return true
	}
	return false
}

// Overlaps reports whether i and other share a member.
func (i Interval[T, D]) Overlaps(other Interval[T, D]) bool {
	o := i.Order(other)
	if o == Equal {
		return !i.IsEmpty()
	}
	return !o.Disjoint()
}

// Touches reports whether i and other overlap or meet with no value
// between them.
func (i Interval[T, D]) Touches(other Interval[T, D]) bool {
	switch i.Order(other) {
	case ATouchesB, BTouchesA:
		return true
	}
	return i.Overlaps(other)
}

// Envelope returns the smallest interval holding i, other and any gap
// between them.
func (i Interval[T, D]) Envelope(other Interval[T, D]) Interval[T, D] {
	switch i.Order(other) {
	case BOnly, BEnclosesA, BExtendsBelowA, BExtendsAboveA:
		return other
	case ABelowB, ATouchesB, AOverlapsB:
		return New[T, D](i.min, other.max, i.left, other.right)
	case BBelowA, BTouchesA, BOverlapsA:
		return New[T, D](other.min, i.max, other.left, i.right)
	}
	return i
}

// Intersection returns the members common to i and other.
func (i Interval[T, D]) Intersection(other Interval[T, D]) Interval[T, D] {
	switch o := i.Order(other); o {
	case Equal, BEnclosesA, BExtendsBelowA, BExtendsAboveA:
		return i
	case AEnclosesB, AExtendsBelowB, AExtendsAboveB:
		return other
	case AOverlapsB:
		return New[T, D](other.min, i.max, other.left, i.right)
	case BOverlapsA:
		return New[T, D](i.min, other.max, i.left, other.right)
	}
	return Interval[T, D]{}
}

// Union returns the members of i or other as a set of at most two
// intervals.
func (i Interval[T, D]) Union(other Interval[T, D]) *Set[T, D] {
	switch i.Order(other) {
	case Equal, AOnly, AEnclosesB, AExtendsBelowB, AExtendsAboveB:
		return NewSet(i)
	case BOnly, BEnclosesA, BExtendsBelowA, BExtendsAboveA:
		return NewSet(other)
	case ABelowB, BBelowA:
		return NewSet(i, other)
	}
	return NewSet(i.Envelope(other))
}

// Difference returns the members of i that are not in other.
func (i Interval[T, D]) Difference(other Interval[T, D]) *Set[T, D] {
	switch i.Order(other) {
	case AOnly, ABelowB, BBelowA, ATouchesB, BTouchesA:
		return NewSet(i)
	case AEnclosesB:
		return NewSet(i.cutBelow(other), i.cutAbove(other))
	case AOverlapsB, AExtendsBelowB:
		return NewSet(i.cutBelow(other))
	case BOverlapsA, AExtendsAboveB:
		return NewSet(i.cutAbove(other))
	}
	return NewSet[T, D]()
}

// SymmetricDifference returns the members of exactly one of i and other.
func (i Interval[T, D]) SymmetricDifference(other Interval[T, D]) *Set[T, D] {
	switch o := i.Order(other); {
	case o == Equal:
		return NewSet[T, D]()
	case o.Disjoint():
		return i.Union(other)
	}
	return i.Difference(other).Union(other.Difference(i))
}

// Inverse returns every member of the domain that is not in i.
func (i Interval[T, D]) Inverse() *Set[T, D] {
	if i.IsEmpty() {
		return NewSet(Universe[T, D]())
	}
	var zero T
	s := NewSet[T, D]()
	if i.left != BoundUnbound {
		s.Insert(New[T, D](zero, i.min, BoundUnbound, i.left.Invert()))
	}
	if i.right != BoundUnbound {
		s.Insert(New[T, D](i.max, zero, i.right.Invert(), BoundUnbound))
	}
	return s
}

// cutBelow returns the part of i below the start of other.
func (i Interval[T, D]) cutBelow(other Interval[T, D]) Interval[T, D] {
	return New[T, D](i.min, other.min, i.left, other.left.Invert())
}

// cutAbove returns the part of i above the end of other.
func (i Interval[T, D]) cutAbove(other Interval[T, D]) Interval[T, D] {
	return New[T, D](other.max, i.max, other.right.Invert(), i.right)
}

// Values yields the members of a bounded interval of an integral domain in
// ascending order. It yields nothing for any other interval.
func (i Interval[T, D]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		var d D
		if d.Category() != Integral || !i.IsBounded() {
			return
		}
		for v := i.min; ; {
			if !yield(v) || d.Compare(v, i.max) >= 0 {
				return
			}
			next, ok := d.Step(v, true)
			if !ok {
				return
			}
			v = next
		}
	}
}
