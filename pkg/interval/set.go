package interval

import (
	"iter"

	"github.com/samber/lo"
	"github.com/tidwall/btree"
)

// Set is a set of values of T held as a sorted list of intervals. The
// intervals are kept maximally merged: no two of them overlap or touch, so
// every set has exactly one representation. The zero value is an empty set.
type Set[T any, D Domain[T]] struct {
	tree *btree.BTreeG[Interval[T, D]]
}

// NewSet returns the set holding the union of intervals.
func NewSet[T any, D Domain[T]](intervals ...Interval[T, D]) *Set[T, D] {
	s := &Set[T, D]{}
	for _, i := range intervals {
		s.Insert(i)
	}
	return s
}

func lessInterval[T any, D Domain[T]](a, b Interval[T, D]) bool {
	return a.Compare(b) < 0
}

func (s *Set[T, D]) t() *btree.BTreeG[Interval[T, D]] {
	if s.tree == nil {
		s.tree = btree.NewBTreeGOptions(lessInterval[T, D], btree.Options{NoLocks: true})
	}
	return s.tree
}

// seek calls fn in ascending order starting with the last interval that
// sorts at or before x, so that an interval reaching into x from below is
// visited first.
func (s *Set[T, D]) seek(x Interval[T, D], fn func(e Interval[T, D]) bool) {
	start := x
	s.t().Descend(x, func(e Interval[T, D]) bool {
		start = e
		return false
	})
	s.t().Ascend(start, fn)
}

// Insert adds the members of x, merging every interval x overlaps or
// touches into one.
func (s *Set[T, D]) Insert(x Interval[T, D]) {
	if x.IsEmpty() {
		return
	}
	var absorbed []Interval[T, D]
	s.seek(x, func(e Interval[T, D]) bool {
		switch e.Order(x) {
		case ABelowB:
			return true
		case BBelowA:
			return false
		}
		absorbed = append(absorbed, e)
		x = x.Envelope(e)
		return true
	})
	for _, e := range absorbed {
		s.tree.Delete(e)
	}
	s.tree.Set(x)
}

// Erase removes the members of x.
func (s *Set[T, D]) Erase(x Interval[T, D]) {
	if x.IsEmpty() || s.Len() == 0 {
		return
	}
	var hit []Interval[T, D]
	s.seek(x, func(e Interval[T, D]) bool {
		switch e.Order(x) {
		case ABelowB, ATouchesB:
			return true
		case BBelowA, BTouchesA:
			return false
		}
		hit = append(hit, e)
		return true
	})
	for _, e := range hit {
		s.tree.Delete(e)
		for _, rest := range e.Difference(x).Intervals() {
			s.tree.Set(rest)
		}
	}
}

// Contains reports whether t is a member of s.
func (s *Set[T, D]) Contains(t T) bool {
	found := false
	s.seek(Point[T, D](t), func(e Interval[T, D]) bool {
		switch e.Match(t) {
		case MatchHigh:
			return true
		case MatchOK:
			found = true
		}
		return false
	})
	return found
}

// ContainsInterval reports whether every member of x is in s.
func (s *Set[T, D]) ContainsInterval(x Interval[T, D]) bool {
	if x.IsEmpty() {
		return true
	}
	found := false
	s.seek(x, func(e Interval[T, D]) bool {
		found = e.Includes(x)
		return !found && e.Order(x) == ABelowB
	})
	return found
}

// Overlaps reports whether s and x share a member.
func (s *Set[T, D]) Overlaps(x Interval[T, D]) bool {
	if x.IsEmpty() {
		return false
	}
	found := false
	s.seek(x, func(e Interval[T, D]) bool {
		switch e.Order(x) {
		case ABelowB, ATouchesB:
			return true
		case BBelowA, BTouchesA:
			return false
		}
		found = true
		return false
	})
	return found
}

// Inverse returns the complement of s over the whole domain.
func (s *Set[T, D]) Inverse() *Set[T, D] {
	out := NewSet[T, D]()
	if s.Len() == 0 {
		out.Insert(Universe[T, D]())
		return out
	}
	var (
		zero  T
		prev  Interval[T, D]
		first = true
	)
	s.tree.Scan(func(e Interval[T, D]) bool {
		if first {
			if e.left != BoundUnbound {
				out.Insert(New[T, D](zero, e.min, BoundUnbound, e.left.Invert()))
			}
			first = false
		} else {
			out.Insert(New[T, D](prev.max, e.min, prev.right.Invert(), e.left.Invert()))
		}
		prev = e
		return true
	})
	if prev.right != BoundUnbound {
		out.Insert(New[T, D](prev.max, zero, prev.right.Invert(), BoundUnbound))
	}
	return out
}

// Union returns the members of s or other.
func (s *Set[T, D]) Union(other *Set[T, D]) *Set[T, D] {
	return lo.Reduce(other.Intervals(), func(acc *Set[T, D], i Interval[T, D], _ int) *Set[T, D] {
		acc.Insert(i)
		return acc
	}, s.Clone())
}

// Difference returns the members of s that are not in other.
func (s *Set[T, D]) Difference(other *Set[T, D]) *Set[T, D] {
	return lo.Reduce(other.Intervals(), func(acc *Set[T, D], i Interval[T, D], _ int) *Set[T, D] {
		acc.Erase(i)
		return acc
	}, s.Clone())
}

// Intersection returns the members of both s and other.
func (s *Set[T, D]) Intersection(other *Set[T, D]) *Set[T, D] {
	return s.Inverse().Union(other.Inverse()).Inverse()
}

// SymmetricDifference returns the members of exactly one of s and other.
func (s *Set[T, D]) SymmetricDifference(other *Set[T, D]) *Set[T, D] {
	return s.Difference(other).Union(other.Difference(s))
}

// Envelope returns the smallest interval holding every member of s.
func (s *Set[T, D]) Envelope() Interval[T, D] {
	first, ok := s.t().Min()
	if !ok {
		return Interval[T, D]{}
	}
	last, _ := s.tree.Max()
	return first.Envelope(last)
}

// Equal reports whether s and other hold the same members.
func (s *Set[T, D]) Equal(other *Set[T, D]) bool {
	a, b := s.Intervals(), other.Intervals()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Len returns the number of intervals in s.
func (s *Set[T, D]) Len() int {
	if s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

func (s *Set[T, D]) IsEmpty() bool { return s.Len() == 0 }

// Intervals returns the intervals of s in ascending order.
func (s *Set[T, D]) Intervals() []Interval[T, D] {
	if s.tree == nil {
		return nil
	}
	return s.tree.Items()
}

// All yields the intervals of s in ascending order.
func (s *Set[T, D]) All() iter.Seq[Interval[T, D]] {
	return func(yield func(Interval[T, D]) bool) {
		if s.tree == nil {
			return
		}
		s.tree.Scan(yield)
	}
}

func (s *Set[T, D]) Clone() *Set[T, D] {
	if s.tree == nil {
		return &Set[T, D]{}
	}
	return &Set[T, D]{tree: s.tree.Copy()}
}

func (s *Set[T, D]) Clear() {
	s.tree = nil
}
