package interval

import (
	"cmp"
	"strconv"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Category is the semantic family of an element type. It decides how an
// interval canonicalizes its bounds and when two intervals are adjacent.
type Category int

const (
	None Category = iota
	// Ordered types can only be compared, e.g. strings.
	Ordered
	// Integral types are discrete and steppable, e.g. integers.
	Integral
	// Continuous types are dense, e.g. floating point.
	Continuous
)

func (c Category) String() string {
	switch c {
	case Ordered:
		return "ordered"
	case Integral:
		return "integral"
	case Continuous:
		return "continuous"
	}
	return "none"
}

// Domain is the strategy that gives an element type T its interval
// semantics. Implementations are zero-size value types; they are never
// instantiated with state, the interval types call them through a zero value.
type Domain[T any] interface {
	Category() Category
	Compare(a, b T) int
	// Step returns the successor (up) or predecessor of t. ok is false when
	// no such value exists. Only called for the Integral category.
	Step(t T, up bool) (next T, ok bool)
	Format(t T) string
	Parse(s string) (T, error)
}

// Integers is the integral domain of the builtin integer types.
type Integers[T constraints.Integer] struct{}

func (Integers[T]) Category() Category { return Integral }

func (Integers[T]) Compare(a, b T) int { return cmp.Compare(a, b) }

func (Integers[T]) Step(t T, up bool) (T, bool) {
	if up {
		n := t + 1
		return n, n > t
	}
	n := t - 1
	return n, n < t
}

func (Integers[T]) Format(t T) string {
	if isUnsigned[T]() {
		return strconv.FormatUint(uint64(t), 10)
	}
	return strconv.FormatInt(int64(t), 10)
}

func (Integers[T]) Parse(s string) (T, error) {
	if isUnsigned[T]() {
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid integer %q", s)
		}
		if uint64(T(u)) != u {
			return 0, errors.Errorf("integer %q out of range", s)
		}
		return T(u), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid integer %q", s)
	}
	if int64(T(i)) != i {
		return 0, errors.Errorf("integer %q out of range", s)
	}
	return T(i), nil
}

func isUnsigned[T constraints.Integer]() bool {
	var zero T
	return zero-1 > zero
}

// Floats is the continuous domain of the builtin floating point types.
type Floats[T constraints.Float] struct{}

func (Floats[T]) Category() Category { return Continuous }

func (Floats[T]) Compare(a, b T) int { return cmp.Compare(a, b) }

func (Floats[T]) Step(t T, _ bool) (T, bool) { return t, false }

func (Floats[T]) Format(t T) string {
	return strconv.FormatFloat(float64(t), 'g', -1, floatBits(t))
}

func (Floats[T]) Parse(s string) (T, error) {
	var zero T
	f, err := strconv.ParseFloat(s, floatBits(zero))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid number %q", s)
	}
	return T(f), nil
}

func floatBits[T constraints.Float](t T) int {
	return int(unsafe.Sizeof(t)) * 8
}

// Strings is the ordered domain of string types. Values are used verbatim,
// so they should not contain the grammar's separators.
type Strings[T ~string] struct{}

func (Strings[T]) Category() Category { return Ordered }

func (Strings[T]) Compare(a, b T) int { return cmp.Compare(a, b) }

func (Strings[T]) Step(t T, _ bool) (T, bool) { return t, false }

func (Strings[T]) Format(t T) string { return string(t) }

func (Strings[T]) Parse(s string) (T, error) { return T(s), nil }

// Times is the continuous domain of time.Time, formatted as RFC 3339.
type Times struct{}

func (Times) Category() Category { return Continuous }

func (Times) Compare(a, b time.Time) int { return a.Compare(b) }

func (Times) Step(t time.Time, _ bool) (time.Time, bool) { return t, false }

func (Times) Format(t time.Time) string { return t.Format(time.RFC3339Nano) }

func (Times) Parse(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid time %q", s)
	}
	return t, nil
}
