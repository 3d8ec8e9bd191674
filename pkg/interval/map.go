package interval

import (
	"iter"

	"github.com/samber/lo"
	"github.com/tidwall/btree"
)

// Entry is one key interval of a Map with its value.
type Entry[K any, D Domain[K], V any] struct {
	Key   Interval[K, D]
	Value V
}

// Map maps disjoint intervals of K to values. Neighbouring keys holding
// equal values are merged into one entry. Create it with NewMap or
// NewMapFunc.
type Map[K any, D Domain[K], V any] struct {
	tree  *btree.BTreeG[Entry[K, D, V]]
	def   V
	equal func(a, b V) bool
}

// NewMap returns an empty map returning def for keys it does not cover.
func NewMap[K any, D Domain[K], V comparable](def V) *Map[K, D, V] {
	return NewMapFunc[K, D](def, func(a, b V) bool { return a == b })
}

// NewMapFunc is NewMap for values compared with equal.
func NewMapFunc[K any, D Domain[K], V any](def V, equal func(a, b V) bool) *Map[K, D, V] {
	return &Map[K, D, V]{
		tree:  newEntryTree[K, D, V](),
		def:   def,
		equal: equal,
	}
}

func newEntryTree[K any, D Domain[K], V any]() *btree.BTreeG[Entry[K, D, V]] {
	return btree.NewBTreeGOptions(func(a, b Entry[K, D, V]) bool {
		return a.Key.Compare(b.Key) < 0
	}, btree.Options{NoLocks: true})
}

// seek calls fn in ascending order starting two entries at or before key.
// Entries holding different values may touch, so the entry reaching key from
// below can sit behind one that starts exactly where key does.
func (m *Map[K, D, V]) seek(key Interval[K, D], fn func(e Entry[K, D, V]) bool) {
	start := Entry[K, D, V]{Key: key}
	steps := 0
	m.tree.Descend(start, func(e Entry[K, D, V]) bool {
		start = e
		steps++
		return steps < 2
	})
	m.tree.Ascend(start, fn)
}

// Insert maps every member of key to value. Entries holding an equal value
// that overlap or touch key are merged with it; entries holding another
// value lose the part key overlaps.
func (m *Map[K, D, V]) Insert(key Interval[K, D], value V) {
	if key.IsEmpty() {
		return
	}
	var removed, trimmed []Entry[K, D, V]
	m.seek(key, func(e Entry[K, D, V]) bool {
		switch e.Key.Order(key) {
		case ABelowB:
			return true
		case BBelowA:
			return false
		case ATouchesB, BTouchesA:
			if m.equal(e.Value, value) {
				removed = append(removed, e)
				key = key.Envelope(e.Key)
			}
			return true
		}
		removed = append(removed, e)
		if m.equal(e.Value, value) {
			key = key.Envelope(e.Key)
			return true
		}
		trimmed = append(trimmed, m.pieces(e, key)...)
		return true
	})
	for _, e := range removed {
		m.tree.Delete(e)
	}
	for _, e := range trimmed {
		m.tree.Set(e)
	}
	m.tree.Set(Entry[K, D, V]{Key: key, Value: value})
}

// Erase removes every member of key from the map.
func (m *Map[K, D, V]) Erase(key Interval[K, D]) {
	if key.IsEmpty() {
		return
	}
	var removed, trimmed []Entry[K, D, V]
	m.seek(key, func(e Entry[K, D, V]) bool {
		switch e.Key.Order(key) {
		case ABelowB, ATouchesB:
			return true
		case BBelowA, BTouchesA:
			return false
		}
		removed = append(removed, e)
		trimmed = append(trimmed, m.pieces(e, key)...)
		return true
	})
	for _, e := range removed {
		m.tree.Delete(e)
	}
	for _, e := range trimmed {
		m.tree.Set(e)
	}
}

// pieces returns what is left of e once key is cut out of it.
func (m *Map[K, D, V]) pieces(e Entry[K, D, V], key Interval[K, D]) []Entry[K, D, V] {
	return lo.Map(e.Key.Difference(key).Intervals(), func(i Interval[K, D], _ int) Entry[K, D, V] {
		return Entry[K, D, V]{Key: i, Value: e.Value}
	})
}

// Find returns the entry whose key holds k.
func (m *Map[K, D, V]) Find(k K) (Entry[K, D, V], bool) {
	var (
		found Entry[K, D, V]
		ok    bool
	)
	m.seek(Point[K, D](k), func(e Entry[K, D, V]) bool {
		switch e.Key.Match(k) {
		case MatchHigh:
			return true
		case MatchOK:
			found, ok = e, true
		}
		return false
	})
	return found, ok
}

// Contains reports whether some key holds k.
func (m *Map[K, D, V]) Contains(k K) bool {
	_, ok := m.Find(k)
	return ok
}

// Get returns the value mapped to k, or the default value.
func (m *Map[K, D, V]) Get(k K) V {
	if e, ok := m.Find(k); ok {
		return e.Value
	}
	return m.def
}

// Default returns the value Get returns for keys the map does not cover.
func (m *Map[K, D, V]) Default() V { return m.def }

// LowerBound returns the entry holding k or, if there is none, the first
// entry above k.
func (m *Map[K, D, V]) LowerBound(k K) (Entry[K, D, V], bool) {
	return m.first(k, func(mt Match) bool { return mt != MatchHigh })
}

// UpperBound returns the first entry lying entirely above k.
func (m *Map[K, D, V]) UpperBound(k K) (Entry[K, D, V], bool) {
	return m.first(k, func(mt Match) bool { return mt == MatchLow })
}

func (m *Map[K, D, V]) first(k K, accept func(Match) bool) (Entry[K, D, V], bool) {
	var (
		found Entry[K, D, V]
		ok    bool
	)
	m.seek(Point[K, D](k), func(e Entry[K, D, V]) bool {
		if accept(e.Key.Match(k)) {
			found, ok = e, true
			return false
		}
		return true
	})
	return found, ok
}

// Len returns the number of entries.
func (m *Map[K, D, V]) Len() int { return m.tree.Len() }

// Entries returns the entries in ascending key order.
func (m *Map[K, D, V]) Entries() []Entry[K, D, V] { return m.tree.Items() }

// All yields the entries in ascending key order.
func (m *Map[K, D, V]) All() iter.Seq2[Interval[K, D], V] {
	return func(yield func(Interval[K, D], V) bool) {
		m.tree.Scan(func(e Entry[K, D, V]) bool {
			return yield(e.Key, e.Value)
		})
	}
}

// Keys returns the set of all keys covered by the map.
func (m *Map[K, D, V]) Keys() *Set[K, D] {
	return NewSet(lo.Map(m.Entries(), func(e Entry[K, D, V], _ int) Interval[K, D] {
		return e.Key
	})...)
}

func (m *Map[K, D, V]) Clone() *Map[K, D, V] {
	return &Map[K, D, V]{
		tree:  m.tree.Copy(),
		def:   m.def,
		equal: m.equal,
	}
}

func (m *Map[K, D, V]) Clear() {
	m.tree.Clear()
}
