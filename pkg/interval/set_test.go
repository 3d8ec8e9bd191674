package interval

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randomBound(r *rand.Rand) Bound {
	switch r.IntN(10) {
	case 0:
		return BoundUnbound
	case 1, 2, 3, 4:
		return BoundOpen
	}
	return BoundClosed
}

func randomInts(r *rand.Rand, n int) []intI {
	out := make([]intI, n)
	for k := range out {
		out[k] = NewOrdered[int, Integers[int]](r.IntN(50), r.IntN(50), randomBound(r), randomBound(r))
	}
	return out
}

func randomFloats(r *rand.Rand, n int) []floatI {
	out := make([]floatI, n)
	for k := range out {
		out[k] = NewOrdered[float64, Floats[float64]](float64(r.IntN(50)), float64(r.IntN(50)), randomBound(r), randomBound(r))
	}
	return out
}

// anyContains is the membership reference the sets are checked against.
func anyContains[T any, D Domain[T]](intervals []Interval[T, D], t T) bool {
	for _, i := range intervals {
		if i.Contains(t) {
			return true
		}
	}
	return false
}

func assertCanonical[T any, D Domain[T]](t *testing.T, s *Set[T, D]) {
	t.Helper()
	items := s.Intervals()
	for _, i := range items {
		assert.False(t, i.IsEmpty(), "empty interval in %s", s)
	}
	for n := 1; n < len(items); n++ {
		if o := items[n-1].Order(items[n]); o != ABelowB {
			t.Errorf("%s: %s and %s: -want %s, +got: %s\n", s, items[n-1], items[n], ABelowB, o)
		}
	}
}

func TestSetScenario(t *testing.T) {
	assert.Equal(t, "{[4,5]}", NewSet(ii("(3,6)")).String())
	assert.Equal(t, "{<hello,>world}", NewSet(si("[hello,world]")).Inverse().String())
}

func TestSetInsertErase(t *testing.T) {
	cases := map[string]struct {
		insert []string
		erase  []string
		want   string
	}{
		"Nothing":       {want: "{}"},
		"Disjoint":      {insert: []string{"[1,2]", "[5,6]"}, want: "{[1,2],[5,6]}"},
		"Adjacent":      {insert: []string{"[1,2]", "[3,4]"}, want: "{[1,4]}"},
		"Bridge":        {insert: []string{"[1,2]", "[8,9]", "[3,7]"}, want: "{[1,9]}"},
		"Swallow":       {insert: []string{"3", "5", "7", "[0,10]"}, want: "{[0,10]}"},
		"Inside":        {insert: []string{"[0,10]", "5"}, want: "{[0,10]}"},
		"Unbounded":     {insert: []string{"[5,6]", "<=4", ">=20"}, want: "{<=6,>=20}"},
		"Hole":          {insert: []string{"[0,10]"}, erase: []string{"[3,4]"}, want: "{[0,2],[5,10]}"},
		"Trim":          {insert: []string{"[0,10]", "[20,30]"}, erase: []string{"[8,22]"}, want: "{[0,7],[23,30]}"},
		"EraseAll":      {insert: []string{"[0,10]", "[20,30]"}, erase: []string{"*"}, want: "{}"},
		"EraseNeighbor": {insert: []string{"[0,10]"}, erase: []string{"[11,20]", "<0"}, want: "{[0,10]}"},
		"EraseEmpty":    {insert: []string{"[0,10]"}, erase: []string{"{}"}, want: "{[0,10]}"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := NewSet[int, Integers[int]]()
			for _, x := range tc.insert {
				s.Insert(ii(x))
			}
			for _, x := range tc.erase {
				s.Erase(ii(x))
			}
			assert.Equal(t, tc.want, s.String())
			assertCanonical(t, s)
		})
	}
}

func TestSetQueries(t *testing.T) {
	s := NewSet(fi("[0,1)"), fi("(1,2]"), fi(">=5"))
	assert.Equal(t, "{[0,1),(1,2],>=5}", s.String())

	assert.True(t, s.Contains(0))
	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(1.5))
	assert.False(t, s.Contains(3))
	assert.True(t, s.Contains(1e9))

	assert.True(t, s.ContainsInterval(fi("(1,2)")))
	assert.False(t, s.ContainsInterval(fi("[0,2]")))
	assert.True(t, s.ContainsInterval(fi(">6")))
	assert.True(t, s.ContainsInterval(fi("{}")))

	assert.True(t, s.Overlaps(fi("[2,3]")))
	assert.False(t, s.Overlaps(fi("(2,5)")))
	assert.False(t, s.Overlaps(fi("1")))

	assert.Equal(t, ">=0", s.Envelope().String())
	assert.Equal(t, "{}", NewSet[float64, Floats[float64]]().Envelope().String())
}

func TestSetAlgebra(t *testing.T) {
	a := NewSet(ii("[0,10]"), ii("[20,30]"))
	b := NewSet(ii("[5,25]"), ii(">=40"))

	assert.Equal(t, "{[0,30],>=40}", a.Union(b).String())
	assert.Equal(t, "{[5,10],[20,25]}", a.Intersection(b).String())
	assert.Equal(t, "{[0,4],[26,30]}", a.Difference(b).String())
	assert.Equal(t, "{[0,4],[11,19],[26,30],>=40}", a.SymmetricDifference(b).String())
	assert.Equal(t, "{<=-1,[11,19],>=31}", a.Inverse().String())
	assert.Equal(t, "{*}", NewSet[int, Integers[int]]().Inverse().String())

	// operands are left untouched
	assert.Equal(t, "{[0,10],[20,30]}", a.String())
	assert.Equal(t, "{[5,25],>=40}", b.String())
}

func TestSetEqualClone(t *testing.T) {
	a := NewSet(ii("[0,10]"), ii("[20,30]"))
	b := NewSet(ii("[20,25]"), ii("[0,10]"), ii("[26,30]"))
	assert.True(t, a.Equal(b))

	c := a.Clone()
	c.Erase(ii("5"))
	assert.False(t, a.Equal(c))
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 3, c.Len())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Equal(&Set[int, Integers[int]]{}))

	var got []string
	for i := range a.All() {
		got = append(got, i.String())
	}
	assert.Equal(t, []string{"[0,10]", "[20,30]"}, got)
}

func TestSetPointwiseInts(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 200; round++ {
		as, bs := randomInts(r, 1+r.IntN(6)), randomInts(r, 1+r.IntN(6))
		a, b := NewSet(as...), NewSet(bs...)

		union := a.Union(b)
		inter := a.Intersection(b)
		diff := a.Difference(b)
		xor := a.SymmetricDifference(b)
		inv := a.Inverse()
		for _, s := range []*Set[int, Integers[int]]{a, b, union, inter, diff, xor, inv} {
			assertCanonical(t, s)
		}
		for p := -1; p <= 51; p++ {
			inA, inB := anyContains(as, p), anyContains(bs, p)
			assert.Equal(t, inA, a.Contains(p), "a %s at %d", a, p)
			assert.Equal(t, inA || inB, union.Contains(p), "union at %d", p)
			assert.Equal(t, inA && inB, inter.Contains(p), "intersection at %d", p)
			assert.Equal(t, inA && !inB, diff.Contains(p), "difference at %d", p)
			assert.Equal(t, inA != inB, xor.Contains(p), "symmetric difference at %d", p)
			assert.Equal(t, !inA, inv.Contains(p), "inverse at %d", p)
		}
	}
}

func TestSetPointwiseFloats(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for round := 0; round < 200; round++ {
		as, bs := randomFloats(r, 1+r.IntN(6)), randomFloats(r, 1+r.IntN(6))
		a, b := NewSet(as...), NewSet(bs...)

		union := a.Union(b)
		inter := a.Intersection(b)
		diff := a.Difference(b)
		xor := a.SymmetricDifference(b)
		inv := a.Inverse()
		for _, s := range []*Set[float64, Floats[float64]]{a, b, union, inter, diff, xor, inv} {
			assertCanonical(t, s)
		}
		// half steps probe the open ends as well as the gaps between them
		for k := -2; k <= 102; k++ {
			p := float64(k) / 2
			inA, inB := anyContains(as, p), anyContains(bs, p)
			assert.Equal(t, inA, a.Contains(p), "a %s at %g", a, p)
			assert.Equal(t, inA || inB, union.Contains(p), "union at %g", p)
			assert.Equal(t, inA && inB, inter.Contains(p), "intersection at %g", p)
			assert.Equal(t, inA && !inB, diff.Contains(p), "difference at %g", p)
			assert.Equal(t, inA != inB, xor.Contains(p), "symmetric difference at %g", p)
			assert.Equal(t, !inA, inv.Contains(p), "inverse at %g", p)
		}
	}
}

func TestSetRandomEdits(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	s := NewSet[int, Integers[int]]()
	member := make(map[int]bool)
	for step := 0; step < 500; step++ {
		x := randomInts(r, 1)[0]
		erase := r.IntN(3) == 0
		if erase {
			s.Erase(x)
		} else {
			s.Insert(x)
		}
		for p := -1; p <= 51; p++ {
			if x.Contains(p) {
				member[p] = !erase
			}
		}
		assertCanonical(t, s)
		for p := -1; p <= 51; p++ {
			assert.Equal(t, member[p], s.Contains(p), "step %d at %d", step, p)
		}
	}
}
