// Package rangetable keeps labelled claims on a bounded space of integer ids
// as ranges. Adjacent claims carrying equal labels are stored as one range.
package rangetable

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/henderiw/intervals/pkg/interval"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/labels"
)

type (
	Interval = interval.Interval[int64, interval.Integers[int64]]
	Set      = interval.Set[int64, interval.Integers[int64]]
	Entry    = interval.Entry[int64, interval.Integers[int64], labels.Set]
)

type Table interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	ClaimRange(start, size int64, d labels.Set) error
	ClaimInterval(i Interval, d labels.Set) error
	ClaimSize(size int64, d labels.Set) (Interval, error)
	Release(id int64) error
	ReleaseRange(start, size int64) error
	ReleaseByLabel(selector labels.Selector) (int64, error)
	Update(id int64, d labels.Set) error

	Iterate() *Iterator

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	FindFreeRange(start, size int64) (Interval, error)
	FindFreeSize(size int64) (Interval, error)
	Free() *Set
	Claimed() *Set

	GetAll() []Entry
	GetByLabel(selector labels.Selector) []Entry
}

type ValidationFn func(id int64) error

type Option func(*table)

// WithLogger sets the logger claims and releases are reported to at debug
// level.
func WithLogger(log *logrus.Entry) Option {
	return func(r *table) {
		r.log = log
	}
}

// NewTable returns a table of the ids 0..size-1. The validation function is
// called for every id that is claimed, updated or released, except for the
// initial entries.
func NewTable(size int64, initEntries map[int64]labels.Set, v ValidationFn, opts ...Option) (Table, error) {
	r := &table{
		m:          new(sync.RWMutex),
		entries:    interval.NewMapFunc[int64, interval.Integers[int64]](labels.Set(nil), labels.Equals),
		size:       size,
		validateFn: v,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		log := logrus.New()
		log.Out = io.Discard
		r.log = logrus.NewEntry(log)
	}

	var errm error
	for id, d := range initEntries {
		if err := r.add(point(id), d, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type table struct {
	m          *sync.RWMutex
	entries    *interval.Map[int64, interval.Integers[int64], labels.Set]
	size       int64
	validateFn ValidationFn
	log        *logrus.Entry
}

func point(id int64) Interval {
	return interval.Point[int64, interval.Integers[int64]](id)
}

func rangeOf(start, size int64) (Interval, error) {
	if size < 1 {
		return Interval{}, fmt.Errorf("range size %d must be positive", size)
	}
	return interval.New[int64, interval.Integers[int64]](start, start+size-1, interval.BoundClosed, interval.BoundClosed), nil
}

func (r *table) bounds() Interval {
	return interval.New[int64, interval.Integers[int64]](0, r.size, interval.BoundClosed, interval.BoundOpen)
}

func (r *table) validate(i Interval, init bool) error {
	if i.IsEmpty() {
		return fmt.Errorf("empty range")
	}
	if !r.bounds().Includes(i) {
		if i.IsPoint() {
			return fmt.Errorf("id %d is outside the allowed entries: %s", i.Min(), r.bounds())
		}
		return fmt.Errorf("range %s is outside the allowed entries: %s", i, r.bounds())
	}
	if r.validateFn == nil || init {
		return nil
	}
	var errm error
	for id := range i.Values() {
		if err := r.validateFn(id); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return errm
}

func (r *table) Get(id int64) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if err := r.validate(point(id), false); err != nil {
		return nil, err
	}
	e, ok := r.entries.Find(id)
	if !ok {
		return nil, fmt.Errorf("no match found for: %d", id)
	}
	return e.Value, nil
}

func (r *table) Claim(id int64, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(point(id), d, false)
}

func (r *table) ClaimDynamic(d labels.Set) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	id, err := r.findFree()
	if err != nil {
		return 0, err
	}
	if err := r.add(point(id), d, false); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *table) ClaimRange(start, size int64, d labels.Set) error {
	i, err := rangeOf(start, size)
	if err != nil {
		return err
	}
	return r.ClaimInterval(i, d)
}

func (r *table) ClaimInterval(i Interval, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(i, d, false)
}

// ClaimSize claims the first free block of size consecutive ids.
func (r *table) ClaimSize(size int64, d labels.Set) (Interval, error) {
	r.m.Lock()
	defer r.m.Unlock()

	i, err := r.findFreeSize(size)
	if err != nil {
		return Interval{}, err
	}
	if err := r.add(i, d, false); err != nil {
		return Interval{}, err
	}
	return i, nil
}

func (r *table) Release(id int64) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(point(id))
}

func (r *table) ReleaseRange(start, size int64) error {
	i, err := rangeOf(start, size)
	if err != nil {
		return err
	}

	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(i)
}

// ReleaseByLabel releases every range whose labels match selector and
// returns the number of ids released. Ranges that fail validation are kept.
func (r *table) ReleaseByLabel(selector labels.Selector) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	var (
		released int64
		errm     error
	)
	for _, e := range r.getByLabel(selector) {
		if err := r.delete(e.Key); err != nil {
			errm = errors.Join(errm, err)
			continue
		}
		released += length(e.Key)
	}
	return released, errm
}

func (r *table) Update(id int64, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.update(point(id), d)
}

func (r *table) Iterate() *Iterator {
	r.m.RLock()
	defer r.m.RUnlock()

	return &Iterator{current: -1, entries: r.entries.Entries()}
}

// Count returns the number of claimed ids.
func (r *table) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	var n int64
	for k := range r.entries.All() {
		n += length(k)
	}
	return int(n)
}

func (r *table) Has(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.entries.Contains(id)
}

// IsFree reports whether id lies in the table and is not claimed.
func (r *table) IsFree(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.bounds().Contains(id) && !r.entries.Contains(id)
}

func (r *table) FindFree() (int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFree()
}

func (r *table) findFree() (int64, error) {
	for f := range r.free().All() {
		for id := range f.Values() {
			if r.validateFn == nil || r.validateFn(id) == nil {
				return id, nil
			}
		}
	}
	return 0, fmt.Errorf("no free entry found")
}

// FindFreeRange returns the range of size ids from start if all of them are
// free.
func (r *table) FindFreeRange(start, size int64) (Interval, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	i, err := rangeOf(start, size)
	if err != nil {
		return Interval{}, err
	}
	if err := r.validate(i, true); err != nil {
		return Interval{}, err
	}
	if e, ok := r.overlapping(i); ok {
		return Interval{}, fmt.Errorf("range %s overlaps claimed range %s", i, e.Key)
	}
	return i, nil
}

// FindFreeSize returns the first free block of size consecutive ids.
func (r *table) FindFreeSize(size int64) (Interval, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFreeSize(size)
}

func (r *table) findFreeSize(size int64) (Interval, error) {
	if size > r.size {
		return Interval{}, fmt.Errorf("size %d is bigger then max allowed entries: %d", size, r.size)
	}
	for f := range r.free().All() {
		if length(f) >= size {
			return rangeOf(f.Min(), size)
		}
	}
	return Interval{}, fmt.Errorf("could not find free range that fits size %d", size)
}

func (r *table) Free() *Set {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free()
}

func (r *table) free() *Set {
	return interval.NewSet(r.bounds()).Difference(r.entries.Keys())
}

func (r *table) Claimed() *Set {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.entries.Keys()
}

func (r *table) GetAll() []Entry {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.entries.Entries()
}

func (r *table) GetByLabel(selector labels.Selector) []Entry {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.getByLabel(selector)
}

func (r *table) getByLabel(selector labels.Selector) []Entry {
	return lo.Filter(r.entries.Entries(), func(e Entry, _ int) bool {
		return selector.Matches(e.Value)
	})
}

// overlapping returns the first claimed range sharing an id with i.
func (r *table) overlapping(i Interval) (Entry, bool) {
	e, ok := r.entries.LowerBound(i.Min())
	if ok && e.Key.Overlaps(i) {
		return e, true
	}
	return Entry{}, false
}

func (r *table) add(i Interval, d labels.Set, init bool) error {
	if err := r.validate(i, init); err != nil {
		return err
	}
	if e, ok := r.overlapping(i); ok {
		if i.IsPoint() {
			return fmt.Errorf("entry %d already exists", i.Min())
		}
		return fmt.Errorf("range %s overlaps claimed range %s", i, e.Key)
	}
	r.entries.Insert(i, d)
	r.log.WithFields(logrus.Fields{"range": i.String(), "labels": d.String()}).Debug("claimed")
	return nil
}

func (r *table) update(i Interval, d labels.Set) error {
	if err := r.validate(i, false); err != nil {
		return err
	}
	if !r.entries.Keys().ContainsInterval(i) {
		return fmt.Errorf("entry %s not found", i)
	}
	r.entries.Insert(i, d)
	r.log.WithFields(logrus.Fields{"range": i.String(), "labels": d.String()}).Debug("updated")
	return nil
}

func (r *table) delete(i Interval) error {
	if err := r.validate(i, false); err != nil {
		return err
	}
	r.entries.Erase(i)
	r.log.WithField("range", i.String()).Debug("released")
	return nil
}

// length returns the number of ids in a bounded range.
func length(i Interval) int64 {
	if !i.IsBounded() {
		return 0
	}
	return i.Max() - i.Min() + 1
}
