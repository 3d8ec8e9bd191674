package interval

// pointKind ranks a boundary point. For equal values
// justBelow < exact < justAbove; the infinities are extremal.
type pointKind int8

const (
	negInf pointKind = iota
	justBelow
	exact
	justAbove
	posInf
)

// point is a boundary of an interval expressed as a position on the
// value line. An open lower end at v is justAbove(v), an open upper end at v
// is justBelow(v), so open, closed and unbounded ends compare as plain
// positions for any domain.
type point[T any] struct {
	kind pointKind
	v    T
}

func comparePoints[T any, D Domain[T]](a, b point[T]) int {
	switch {
	case a.kind == negInf || b.kind == negInf || a.kind == posInf || b.kind == posInf:
		return cmpKind(a.kind, b.kind)
	}
	var d D
	if c := d.Compare(a.v, b.v); c != 0 {
		return c
	}
	return cmpKind(a.kind, b.kind)
}

func cmpKind(a, b pointKind) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// adjacent reports whether lo, which lies below hi, leaves no value between
// itself and hi.
func adjacent[T any, D Domain[T]](lo, hi point[T]) bool {
	var d D
	switch {
	case lo.kind == exact && hi.kind == justAbove,
		lo.kind == justBelow && hi.kind == exact:
		return d.Compare(lo.v, hi.v) == 0
	case lo.kind == exact && hi.kind == exact && d.Category() == Integral:
		next, ok := d.Step(lo.v, true)
		return ok && d.Compare(next, hi.v) == 0
	}
	return false
}
