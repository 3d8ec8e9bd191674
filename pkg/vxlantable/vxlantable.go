package vxlantable

import (
	"fmt"

	"github.com/henderiw/intervals/pkg/interval"
	"github.com/henderiw/intervals/pkg/rangetable"
	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/labels"
)

// VXLANTable hands out VNIs from the pool offset..max.
type VXLANTable interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	ClaimRange(start, size int64, d labels.Set) error
	Release(id int64) error
	ReleaseByLabel(selector labels.Selector) (int64, error)
	Update(id int64, d labels.Set) error

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	Free() *rangetable.Set

	GetAll() []rangetable.Entry
	GetByLabel(selector labels.Selector) []rangetable.Entry
}

const maxVNI = 1<<24 - 1

func New(offset, max int64, opts ...rangetable.Option) (VXLANTable, error) {
	if offset < 0 || max > maxVNI || max < offset {
		return nil, fmt.Errorf("invalid vxlan pool %d..%d, must be within 0..%d", offset, max, maxVNI)
	}
	t, err := rangetable.NewTable(
		max-offset+1,
		map[int64]labels.Set{},
		nil,
		opts...,
	)
	if err != nil {
		return nil, err
	}
	return &vxlanTable{
		table:  t,
		offset: offset,
		max:    max,
	}, nil

}

type vxlanTable struct {
	table  rangetable.Table
	offset int64
	max    int64
}

func (r *vxlanTable) Get(id int64) (labels.Set, error) {
	return r.table.Get(r.calculateIndex(id))
}

func (r *vxlanTable) Claim(id int64, d labels.Set) error {
	return r.table.Claim(r.calculateIndex(id), d)
}

func (r *vxlanTable) ClaimDynamic(d labels.Set) (int64, error) {
	id, err := r.table.ClaimDynamic(d)
	if err != nil {
		return -1, err
	}
	return id + r.offset, nil
}

func (r *vxlanTable) ClaimRange(start, size int64, d labels.Set) error {
	return r.table.ClaimRange(r.calculateIndex(start), size, d)
}

func (r *vxlanTable) Release(id int64) error {
	return r.table.Release(r.calculateIndex(id))
}

func (r *vxlanTable) ReleaseByLabel(selector labels.Selector) (int64, error) {
	return r.table.ReleaseByLabel(selector)
}

func (r *vxlanTable) Update(id int64, d labels.Set) error {
	return r.table.Update(r.calculateIndex(id), d)
}

func (r *vxlanTable) Count() int {
	return r.table.Count()
}

func (r *vxlanTable) Has(id int64) bool {
	return r.table.Has(r.calculateIndex(id))
}

func (r *vxlanTable) IsFree(id int64) bool {
	return r.table.IsFree(r.calculateIndex(id))
}

func (r *vxlanTable) FindFree() (int64, error) {
	id, err := r.table.FindFree()
	if err != nil {
		return -1, err
	}
	return id + r.offset, nil
}

func (r *vxlanTable) Free() *rangetable.Set {
	free := interval.NewSet[int64, interval.Integers[int64]]()
	for i := range r.table.Free().All() {
		free.Insert(r.shift(i))
	}
	return free
}

func (r *vxlanTable) GetAll() []rangetable.Entry {
	return r.shiftEntries(r.table.GetAll())
}

func (r *vxlanTable) GetByLabel(selector labels.Selector) []rangetable.Entry {
	return r.shiftEntries(r.table.GetByLabel(selector))
}

func (r *vxlanTable) shiftEntries(entries []rangetable.Entry) []rangetable.Entry {
	return lo.Map(entries, func(e rangetable.Entry, _ int) rangetable.Entry {
		return rangetable.Entry{Key: r.shift(e.Key), Value: e.Value}
	})
}

// shift moves a range of table indices to the VNIs they stand for.
func (r *vxlanTable) shift(i rangetable.Interval) rangetable.Interval {
	return interval.New[int64, interval.Integers[int64]](i.Min()+r.offset, i.Max()+r.offset, i.Left(), i.Right())
}

func (r *vxlanTable) calculateIndex(id int64) int64 {
	return id - r.offset
}
