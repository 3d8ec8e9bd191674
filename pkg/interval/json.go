package interval

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// MarshalJSON encodes i as [min,max,left,right] with the bounds as their
// integer codes.
func (i Interval[T, D]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{i.min, i.max, uint8(i.left), uint8(i.right)})
}

// UnmarshalJSON decodes [min,max,left,right]. On error i is left unchanged.
func (i *Interval[T, D]) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "interval json")
	}
	if len(raw) != 4 {
		return errors.Errorf("interval json: want 4 elements, got %d", len(raw))
	}
	var (
		min, max    T
		left, right uint8
	)
	for n, dst := range []any{&min, &max, &left, &right} {
		if err := json.Unmarshal(raw[n], dst); err != nil {
			return errors.Wrapf(err, "interval json element %d", n)
		}
	}
	if Bound(left) > BoundUnbound || Bound(right) > BoundUnbound {
		return errors.Errorf("interval json: invalid bound codes %d,%d", left, right)
	}
	*i = New[T, D](min, max, Bound(left), Bound(right))
	return nil
}

// MarshalJSON encodes s as an array of intervals.
func (s *Set[T, D]) MarshalJSON() ([]byte, error) {
	intervals := s.Intervals()
	if intervals == nil {
		intervals = []Interval[T, D]{}
	}
	return json.Marshal(intervals)
}

// UnmarshalJSON decodes an array of intervals and merges them. On error s
// is left unchanged.
func (s *Set[T, D]) UnmarshalJSON(data []byte) error {
	var intervals []Interval[T, D]
	if err := json.Unmarshal(data, &intervals); err != nil {
		return errors.Wrap(err, "set json")
	}
	s.tree = NewSet(intervals...).tree
	return nil
}
