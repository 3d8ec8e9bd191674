package interval

import (
	"fmt"
	"hash/fnv"
)

func hashCombine(seed, h uint64) uint64 {
	return seed ^ (h + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2))
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// Hash combines the end values and bounds of i. Equal intervals hash
// equally.
func (i Interval[T, D]) Hash() uint64 {
	var d D
	h := hashString(d.Format(i.min))
	h = hashCombine(h, hashString(d.Format(i.max)))
	h = hashCombine(h, uint64(i.left))
	return hashCombine(h, uint64(i.right))
}

// Hash combines the hashes of the intervals of s in order.
func (s *Set[T, D]) Hash() uint64 {
	var h uint64
	for i := range s.All() {
		h = hashCombine(h, i.Hash())
	}
	return h
}

// Hash combines the hashes of the keys and the fmt form of the values in
// order.
func (m *Map[K, D, V]) Hash() uint64 {
	var h uint64
	for k, v := range m.All() {
		h = hashCombine(h, k.Hash())
		h = hashCombine(h, hashString(fmt.Sprint(v)))
	}
	return h
}
