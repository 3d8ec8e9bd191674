package rangetable

import (
	"github.com/henderiw/intervals/pkg/interval"
	"k8s.io/apimachinery/pkg/labels"
)

// Iterator walks a snapshot of the claimed ranges in ascending order.
type Iterator struct {
	current int
	entries []Entry
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.entries)
}

func (r *Iterator) Interval() Interval {
	return r.entries[r.current].Key
}

func (r *Iterator) Value() labels.Set {
	return r.entries[r.current].Value
}

// IsConsecutive reports whether the current range starts right after the
// previous one.
func (r *Iterator) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	return r.entries[r.current-1].Key.Order(r.entries[r.current].Key) == interval.ATouchesB
}
