package vlantable

import (
	"fmt"

	"github.com/henderiw/intervals/pkg/rangetable"
	"k8s.io/apimachinery/pkg/labels"
)

type VLANTable interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	ClaimRange(start, size int64, d labels.Set) error
	ClaimSize(size int64, d labels.Set) (rangetable.Interval, error)
	Release(id int64) error
	ReleaseRange(start, size int64) error
	Update(id int64, d labels.Set) error

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	Free() *rangetable.Set

	GetAll() map[int64]labels.Set
	GetByLabel(selector labels.Selector) map[int64]labels.Set
}

var initEntries = map[int64]labels.Set{
	0:    map[string]string{"type": "untagged", "status": "reserved"},
	1:    map[string]string{"type": "untagged", "status": "reserved"},
	4095: map[string]string{"type": "untagged", "status": "reserved"},
}

func New(opts ...rangetable.Option) (VLANTable, error) {

	t, err := rangetable.NewTable(
		4096,
		initEntries,
		func(id int64) error {
			switch id {
			case 0:
				return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", id)
			case 1:
				return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", id)
			case 4095:
				return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", id)
			}
			return nil
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}
	return &vlanTable{
		Table: t,
	}, nil
}

type vlanTable struct {
	rangetable.Table
}

// GetAll returns the labels of every claimed VLAN.
func (r *vlanTable) GetAll() map[int64]labels.Set {
	return expand(r.Iterate(), labels.Everything())
}

func (r *vlanTable) GetByLabel(selector labels.Selector) map[int64]labels.Set {
	return expand(r.Iterate(), selector)
}

func expand(iter *rangetable.Iterator, selector labels.Selector) map[int64]labels.Set {
	entries := map[int64]labels.Set{}
	for iter.Next() {
		if !selector.Matches(iter.Value()) {
			continue
		}
		for id := range iter.Interval().Values() {
			entries[id] = iter.Value()
		}
	}
	return entries
}
