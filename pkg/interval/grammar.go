package interval

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// String returns the canonical text form: "{}", "*", "V", "<V", "<=V",
// ">V", ">=V" or "[A,B]" with the brackets of the bounds.
func (i Interval[T, D]) String() string {
	var d D
	switch {
	case i.IsEmpty():
		return "{}"
	case i.IsUniverse():
		return "*"
	case i.IsPoint():
		return d.Format(i.min)
	case i.left == BoundUnbound:
		if i.right == BoundOpen {
			return "<" + d.Format(i.max)
		}
		return "<=" + d.Format(i.max)
	case i.right == BoundUnbound:
		if i.left == BoundOpen {
			return ">" + d.Format(i.min)
		}
		return ">=" + d.Format(i.min)
	}
	l, r := "[", "]"
	if i.left == BoundOpen {
		l = "("
	}
	if i.right == BoundOpen {
		r = ")"
	}
	return l + d.Format(i.min) + "," + d.Format(i.max) + r
}

var prefixForms = []struct {
	prefix      string
	left, right Bound
}{
	{"<=", BoundUnbound, BoundClosed},
	{"<", BoundUnbound, BoundOpen},
	{">=", BoundClosed, BoundUnbound},
	{">", BoundOpen, BoundUnbound},
	{"=", BoundClosed, BoundClosed},
}

var rangeForms = []struct {
	sep   string
	right Bound
}{
	{"..<", BoundOpen},
	{"...", BoundClosed},
	{"..", BoundClosed},
}

// Parse reads an interval in any of the accepted text forms:
//
//	"" "{}"                 empty
//	"*"                     universe
//	"V" "=V"                [V,V]
//	"<V" "<=V" "V-"         unbounded below
//	">V" ">=V" "V+"         unbounded above
//	"(A,B)" "[A,B)" ...     bounded
//	"A..B" "A...B" "A..<B"  closed, closed, closed-open
func Parse[T any, D Domain[T]](s string) (Interval[T, D], error) {
	var d D
	value := func(v string) (T, error) {
		return d.Parse(strings.TrimSpace(v))
	}

	s = strings.TrimSpace(s)
	switch s {
	case "", "{}":
		return Interval[T, D]{}, nil
	case "*":
		return Universe[T, D](), nil
	}

	if n := len(s); n >= 2 && strings.IndexByte("[(", s[0]) >= 0 && strings.IndexByte("])", s[n-1]) >= 0 {
		parts := splitTop(s[1:n-1], ',')
		if len(parts) != 2 {
			return Interval[T, D]{}, errors.Errorf("interval %q needs two end values", s)
		}
		lo, err := value(parts[0])
		if err != nil {
			return Interval[T, D]{}, errors.Wrapf(err, "interval %q", s)
		}
		hi, err := value(parts[1])
		if err != nil {
			return Interval[T, D]{}, errors.Wrapf(err, "interval %q", s)
		}
		left, right := BoundClosed, BoundClosed
		if s[0] == '(' {
			left = BoundOpen
		}
		if s[n-1] == ')' {
			right = BoundOpen
		}
		return New[T, D](lo, hi, left, right), nil
	}

	for _, f := range prefixForms {
		if rest, ok := strings.CutPrefix(s, f.prefix); ok {
			v, err := value(rest)
			if err != nil {
				return Interval[T, D]{}, errors.Wrapf(err, "interval %q", s)
			}
			return Half[T, D](v, f.left, f.right), nil
		}
	}

	for _, f := range rangeForms {
		if a, b, ok := strings.Cut(s, f.sep); ok {
			lo, err := value(a)
			if err != nil {
				return Interval[T, D]{}, errors.Wrapf(err, "interval %q", s)
			}
			hi, err := value(b)
			if err != nil {
				return Interval[T, D]{}, errors.Wrapf(err, "interval %q", s)
			}
			return New[T, D](lo, hi, BoundClosed, f.right), nil
		}
	}

	if rest, ok := strings.CutSuffix(s, "-"); ok && rest != "" {
		v, err := value(rest)
		if err != nil {
			return Interval[T, D]{}, errors.Wrapf(err, "interval %q", s)
		}
		return AtMost[T, D](v), nil
	}
	if rest, ok := strings.CutSuffix(s, "+"); ok && rest != "" {
		v, err := value(rest)
		if err != nil {
			return Interval[T, D]{}, errors.Wrapf(err, "interval %q", s)
		}
		return AtLeast[T, D](v), nil
	}

	v, err := value(s)
	if err != nil {
		return Interval[T, D]{}, errors.Wrapf(err, "interval %q", s)
	}
	return Point[T, D](v), nil
}

// MustParse is Parse that panics on malformed input.
func MustParse[T any, D Domain[T]](s string) Interval[T, D] {
	i, err := Parse[T, D](s)
	if err != nil {
		panic(err)
	}
	return i
}

func (i Interval[T, D]) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText parses text into i. On error i is left unchanged.
func (i *Interval[T, D]) UnmarshalText(text []byte) error {
	parsed, err := Parse[T, D](string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// splitTop splits s at every sep that is not nested in brackets, parens or
// braces.
func splitTop(s string, sep byte) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// trimBraces strips one pair of enclosing braces.
func trimBraces(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// String returns "{a,b,...}" with the intervals in ascending order.
func (s *Set[T, D]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for n, i := range s.Intervals() {
		if n > 0 {
			b.WriteByte(',')
		}
		b.WriteString(i.String())
	}
	b.WriteByte('}')
	return b.String()
}

// ParseSet reads "{a,b,...}". The braces may be left out for a single
// interval.
func ParseSet[T any, D Domain[T]](s string) (*Set[T, D], error) {
	set := NewSet[T, D]()
	inner := trimBraces(s)
	if inner == "" {
		return set, nil
	}
	for _, part := range splitTop(inner, ',') {
		i, err := Parse[T, D](part)
		if err != nil {
			return nil, errors.Wrapf(err, "set %q", s)
		}
		set.Insert(i)
	}
	return set, nil
}

func (s *Set[T, D]) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses text into s. On error s is left unchanged.
func (s *Set[T, D]) UnmarshalText(text []byte) error {
	parsed, err := ParseSet[T, D](string(text))
	if err != nil {
		return err
	}
	s.tree = parsed.tree
	return nil
}

// String returns "{key:value,...}" with values formatted by fmt.
func (m *Map[K, D, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	n := 0
	for k, v := range m.All() {
		if n > 0 {
			b.WriteByte(',')
		}
		n++
		b.WriteString(k.String())
		b.WriteByte(':')
		fmt.Fprint(&b, v)
	}
	b.WriteByte('}')
	return b.String()
}

// Parse reads "{key:value,...}" and inserts the pairs in order into an
// empty copy of m. Each pair is split at its first ':'. On error m is left
// unchanged.
func (m *Map[K, D, V]) Parse(s string, parseValue func(string) (V, error)) error {
	parsed := &Map[K, D, V]{tree: newEntryTree[K, D, V](), def: m.def, equal: m.equal}
	inner := trimBraces(s)
	if inner != "" {
		for _, part := range splitTop(inner, ',') {
			k, v, ok := strings.Cut(part, ":")
			if !ok {
				return errors.Errorf("map %q: pair %q has no ':'", s, part)
			}
			key, err := Parse[K, D](k)
			if err != nil {
				return errors.Wrapf(err, "map %q", s)
			}
			value, err := parseValue(strings.TrimSpace(v))
			if err != nil {
				return errors.Wrapf(err, "map %q", s)
			}
			parsed.Insert(key, value)
		}
	}
	m.tree = parsed.tree
	return nil
}

// ParseMap reads "{key:value,...}" into a new map with default value def.
func ParseMap[K any, D Domain[K], V comparable](s string, def V, parseValue func(string) (V, error)) (*Map[K, D, V], error) {
	m := NewMap[K, D](def)
	if err := m.Parse(s, parseValue); err != nil {
		return nil, err
	}
	return m, nil
}
