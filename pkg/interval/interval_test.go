package interval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	intI   = Interval[int, Integers[int]]
	floatI = Interval[float64, Floats[float64]]
	strI   = Interval[string, Strings[string]]
)

func ii(s string) intI   { return MustParse[int, Integers[int]](s) }
func fi(s string) floatI { return MustParse[float64, Floats[float64]](s) }
func si(s string) strI   { return MustParse[string, Strings[string]](s) }

func TestCanonical(t *testing.T) {
	cases := map[string]struct {
		got  string
		want string
	}{
		"IntOpenSnapsInward":    {got: New[int, Integers[int]](1, 5, BoundOpen, BoundOpen).String(), want: "[2,4]"},
		"IntOpenCollapses":      {got: New[int, Integers[int]](3, 4, BoundOpen, BoundOpen).String(), want: "{}"},
		"IntLessThan":           {got: LessThan[int, Integers[int]](5).String(), want: "<=4"},
		"IntGreaterThan":        {got: GreaterThan[int, Integers[int]](5).String(), want: ">=6"},
		"Reversed":              {got: New[int, Integers[int]](5, 1, BoundClosed, BoundClosed).String(), want: "{}"},
		"OrderedSwaps":          {got: NewOrdered[int, Integers[int]](5, 1, BoundOpen, BoundClosed).String(), want: "[1,4]"},
		"FloatHalfOpen":         {got: New[float64, Floats[float64]](1, 2, BoundClosed, BoundOpen).String(), want: "[1,2)"},
		"FloatPointOpen":        {got: New[float64, Floats[float64]](2, 2, BoundOpen, BoundClosed).String(), want: "{}"},
		"FloatPoint":            {got: Point[float64, Floats[float64]](2.5).String(), want: "2.5"},
		"Int8Overflow":          {got: GreaterThan[int8, Integers[int8]](math.MaxInt8).String(), want: "{}"},
		"Uint8Underflow":        {got: LessThan[uint8, Integers[uint8]](0).String(), want: "{}"},
		"EmptyBoundIsEmpty":     {got: New[int, Integers[int]](1, 5, BoundEmpty, BoundClosed).String(), want: "{}"},
		"UnboundValueDiscarded": {got: New[int, Integers[int]](7, 9, BoundUnbound, BoundClosed).String(), want: "<=9"},
		"Universe":              {got: Universe[string, Strings[string]]().String(), want: "*"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.got)
		})
	}
}

func TestUnboundValueReset(t *testing.T) {
	i := New[int, Integers[int]](7, 9, BoundUnbound, BoundClosed)
	assert.Equal(t, 0, i.Min())
	assert.Equal(t, New[int, Integers[int]](0, 9, BoundUnbound, BoundClosed), i)
}

func TestNewMode(t *testing.T) {
	cases := map[string]struct {
		mode        string
		want        string
		expectedErr bool
	}{
		"Closed":      {mode: "[]", want: "[1,2]"},
		"Open":        {mode: "()", want: "(1,2)"},
		"ClosedOpen":  {mode: "[)", want: "[1,2)"},
		"OpenClosed":  {mode: "(]", want: "(1,2]"},
		"Less":        {mode: "<", want: "<2"},
		"LessEq":      {mode: "<=", want: "<=2"},
		"Greater":     {mode: ">", want: ">1"},
		"GreaterEq":   {mode: ">=", want: ">=1"},
		"InvalidMode": {mode: "][", expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			i, err := NewMode[float64, Floats[float64]](1, 2, tc.mode)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, i.String())
		})
	}
}

func TestMatch(t *testing.T) {
	i := fi("(1,3]")
	assert.Equal(t, MatchLow, i.Match(1))
	assert.Equal(t, MatchOK, i.Match(1.5))
	assert.Equal(t, MatchOK, i.Match(3))
	assert.Equal(t, MatchHigh, i.Match(3.1))
	assert.Equal(t, MatchEmpty, fi("{}").Match(2))
	assert.Equal(t, MatchOK, fi("*").Match(-1e300))
	assert.True(t, fi("<=3").Contains(-7))
	assert.False(t, fi("<3").Contains(3))
}

func TestOrder(t *testing.T) {
	cases := map[string]struct {
		a, b func() Order
		want Order
	}{
		"Equal":          {a: func() Order { return ii("[1,5]").Order(ii("[1,5]")) }, want: Equal},
		"BothEmpty":      {a: func() Order { return ii("{}").Order(ii("{}")) }, want: Equal},
		"AOnly":          {a: func() Order { return ii("[1,5]").Order(ii("{}")) }, want: AOnly},
		"BOnly":          {a: func() Order { return ii("{}").Order(ii("[1,5]")) }, want: BOnly},
		"ABelowB":        {a: func() Order { return ii("[1,2]").Order(ii("[5,6]")) }, want: ABelowB},
		"BBelowA":        {a: func() Order { return ii("[5,6]").Order(ii("[1,2]")) }, want: BBelowA},
		"ATouchesBInt":   {a: func() Order { return ii("[1,2]").Order(ii("[3,4]")) }, want: ATouchesB},
		"BTouchesAInt":   {a: func() Order { return ii("[3,4]").Order(ii("[1,2]")) }, want: BTouchesA},
		"AOverlapsB":     {a: func() Order { return ii("[1,4]").Order(ii("[3,6]")) }, want: AOverlapsB},
		"BOverlapsA":     {a: func() Order { return ii("[3,6]").Order(ii("[1,4]")) }, want: BOverlapsA},
		"AExtendsBelowB": {a: func() Order { return ii("[1,6]").Order(ii("[3,6]")) }, want: AExtendsBelowB},
		"BExtendsBelowA": {a: func() Order { return ii("[3,6]").Order(ii("[1,6]")) }, want: BExtendsBelowA},
		"AExtendsAboveB": {a: func() Order { return ii("[1,6]").Order(ii("[1,3]")) }, want: AExtendsAboveB},
		"BExtendsAboveA": {a: func() Order { return ii("[1,3]").Order(ii("[1,6]")) }, want: BExtendsAboveA},
		"AEnclosesB":     {a: func() Order { return ii("[1,6]").Order(ii("[2,3]")) }, want: AEnclosesB},
		"BEnclosesA":     {a: func() Order { return ii("[2,3]").Order(ii("[1,6]")) }, want: BEnclosesA},
		"FloatTouches":   {a: func() Order { return fi("[1,2)").Order(fi("[2,3]")) }, want: ATouchesB},
		"FloatTouches2":  {a: func() Order { return fi("[1,2]").Order(fi("(2,3]")) }, want: ATouchesB},
		"FloatGapPoint":  {a: func() Order { return fi("[1,2)").Order(fi("(2,3]")) }, want: ABelowB},
		"FloatShared":    {a: func() Order { return fi("[1,2]").Order(fi("[2,3]")) }, want: AOverlapsB},
		"FloatNoStep":    {a: func() Order { return fi("[1,2]").Order(fi("[3,4]")) }, want: ABelowB},
		"StringTouches":  {a: func() Order { return si("[a,b)").Order(si("[b,c]")) }, want: ATouchesB},
		"Unbounded":      {a: func() Order { return ii("*").Order(ii("[1,2]")) }, want: AEnclosesB},
		"HalfUnbounded":  {a: func() Order { return ii("<=5").Order(ii("<=9")) }, want: BExtendsAboveA},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.a()
			if got != tc.want {
				t.Errorf("%s: -want %s, +got: %s\n", name, tc.want, got)
			}
		})
	}
}

func TestOrderSwap(t *testing.T) {
	pairs := [][2]string{
		{"[1,2]", "[5,6]"}, {"[1,2]", "[3,4]"}, {"[1,4]", "[3,6]"},
		{"[1,6]", "[3,6]"}, {"[1,6]", "[1,3]"}, {"[1,6]", "[2,3]"},
		{"{}", "[1,2]"}, {"[1,5]", "[1,5]"},
	}
	for _, p := range pairs {
		a, b := ii(p[0]), ii(p[1])
		assert.Equal(t, a.Order(b).Swap(), b.Order(a), "%s vs %s", p[0], p[1])
	}
}

func TestPredicates(t *testing.T) {
	cases := map[string]struct {
		a, b     floatI
		includes bool
		overlaps bool
		touches  bool
		envelope string
		inter    string
	}{
		"Disjoint":  {a: fi("[1,2]"), b: fi("[4,5]"), envelope: "[1,5]", inter: "{}"},
		"Adjacent":  {a: fi("[1,2)"), b: fi("[2,5]"), touches: true, envelope: "[1,5]", inter: "{}"},
		"Overlap":   {a: fi("(1,3)"), b: fi("[2,5]"), overlaps: true, touches: true, envelope: "(1,5]", inter: "[2,3)"},
		"Enclose":   {a: fi("<10"), b: fi("(2,5]"), includes: true, overlaps: true, touches: true, envelope: "<10", inter: "(2,5]"},
		"Enclosed":  {a: fi("(2,5]"), b: fi("<10"), overlaps: true, touches: true, envelope: "<10", inter: "(2,5]"},
		"SameStart": {a: fi("[1,9]"), b: fi("[1,3)"), includes: true, overlaps: true, touches: true, envelope: "[1,9]", inter: "[1,3)"},
		"Equal":     {a: fi("[1,3)"), b: fi("[1,3)"), includes: true, overlaps: true, touches: true, envelope: "[1,3)", inter: "[1,3)"},
		"EmptyB":    {a: fi("[1,3)"), b: fi("{}"), envelope: "[1,3)", inter: "{}"},
		"Halves":    {a: fi(">=5"), b: fi("<5"), touches: true, envelope: "*", inter: "{}"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.includes, tc.a.Includes(tc.b), "includes")
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b), "overlaps")
			assert.Equal(t, tc.touches, tc.a.Touches(tc.b), "touches")
			assert.Equal(t, tc.envelope, tc.a.Envelope(tc.b).String(), "envelope")
			assert.Equal(t, tc.inter, tc.a.Intersection(tc.b).String(), "intersection")
		})
	}
}

func TestIntervalSetOperations(t *testing.T) {
	cases := map[string]struct {
		a, b  intI
		union string
		diff  string
		xor   string
	}{
		"Disjoint":  {a: ii("[1,2]"), b: ii("[5,6]"), union: "{[1,2],[5,6]}", diff: "{[1,2]}", xor: "{[1,2],[5,6]}"},
		"Adjacent":  {a: ii("[1,2]"), b: ii("[3,6]"), union: "{[1,6]}", diff: "{[1,2]}", xor: "{[1,6]}"},
		"Overlap":   {a: ii("[1,4]"), b: ii("[3,6]"), union: "{[1,6]}", diff: "{[1,2]}", xor: "{[1,2],[5,6]}"},
		"Enclose":   {a: ii("[1,9]"), b: ii("[3,6]"), union: "{[1,9]}", diff: "{[1,2],[7,9]}", xor: "{[1,2],[7,9]}"},
		"Enclosed":  {a: ii("[3,6]"), b: ii("[1,9]"), union: "{[1,9]}", diff: "{}", xor: "{[1,2],[7,9]}"},
		"Equal":     {a: ii("[3,6]"), b: ii("[3,6]"), union: "{[3,6]}", diff: "{}", xor: "{}"},
		"Unbounded": {a: ii("*"), b: ii("5"), union: "{*}", diff: "{<=4,>=6}", xor: "{<=4,>=6}"},
		"EmptyA":    {a: ii("{}"), b: ii("5"), union: "{5}", diff: "{}", xor: "{5}"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.union, tc.a.Union(tc.b).String(), "union")
			assert.Equal(t, tc.diff, tc.a.Difference(tc.b).String(), "difference")
			assert.Equal(t, tc.xor, tc.a.SymmetricDifference(tc.b).String(), "symmetric difference")
		})
	}
}

func TestIntervalInverse(t *testing.T) {
	assert.Equal(t, "{*}", ii("{}").Inverse().String())
	assert.Equal(t, "{}", ii("*").Inverse().String())
	assert.Equal(t, "{<=0,>=6}", ii("[1,5]").Inverse().String())
	assert.Equal(t, "{<=1,>5}", fi("(1,5]").Inverse().String())
	assert.Equal(t, "{<hello,>world}", si("[hello,world]").Inverse().String())
}

func TestValues(t *testing.T) {
	var got []int
	for v := range ii("(1,5]").Values() {
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 3, 4, 5}, got)

	var top []uint8
	for v := range New[uint8, Integers[uint8]](253, 255, BoundClosed, BoundClosed).Values() {
		top = append(top, v)
	}
	assert.Equal(t, []uint8{253, 254, 255}, top)

	for range ii(">=5").Values() {
		t.Fatal("unbounded interval yields no values")
	}
}

func TestCompareAntisymmetry(t *testing.T) {
	shapes := []string{"[1,2]", "[1,4]", "(1,4)", "[2,4)", "<3", "<=3", ">2", ">=2", "*", "3", "[0,9]"}
	for _, a := range shapes {
		for _, b := range shapes {
			x, y := fi(a), fi(b)
			equal := x.Compare(y) == 0
			mutual := x.Includes(y) && y.Includes(x)
			assert.Equal(t, equal, mutual, "%s vs %s", a, b)
			assert.Equal(t, -x.Compare(y), y.Compare(x), "%s vs %s", a, b)
		}
	}
	assert.Equal(t, -1, fi("{}").Compare(fi("[1,2]")))
}

func TestEnvelopeIncludesBoth(t *testing.T) {
	shapes := []string{"[1,2]", "(1,4)", "[2,4)", "<3", ">=2", "3", "(5,9]", "{}"}
	for _, a := range shapes {
		for _, b := range shapes {
			x, y := fi(a), fi(b)
			e := x.Envelope(y)
			if !x.IsEmpty() {
				assert.True(t, e.Includes(x), "%s envelope %s", a, b)
			}
			if !y.IsEmpty() {
				assert.True(t, e.Includes(y), "%s envelope %s", a, b)
			}
			// nothing outside the hull of the end points
			assert.Equal(t, NewSet(x, y).Envelope(), e, "%s envelope %s", a, b)
		}
	}
}
