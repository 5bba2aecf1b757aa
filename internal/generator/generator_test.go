package generator

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPattern returns a fixed exhaustive list and cycles through it for samples.
type stubPattern struct {
	all   []Fragment
	calls int
}

func (s *stubPattern) AllMatches() []Fragment {
	return s.all
}

func (s *stubPattern) OneMatch(r Rand) Fragment {
	if len(s.all) == 0 {
		return EmptyFragment()
	}
	f := s.all[s.calls%len(s.all)]
	s.calls++
	return f
}

func literals(texts ...string) []Fragment {
	out := make([]Fragment, len(texts))
	for i, t := range texts {
		out[i] = NewFragment(t)
	}
	return out
}

func limitsWith(g, v int) Limits {
	return Limits{MaxGroupResults: g, MaxRepeaterVariance: v, MaxResultsLimit: DefaultMaxResultsLimit}
}

func TestQuantifierPolicies(t *testing.T) {
	l := limitsWith(5, 3)
	tests := []struct {
		name string
		got  Quantifier
		want Quantifier
	}{
		{"exactly one", ExactlyOne(), Quantifier{1, 1}},
		{"zero or more", ZeroOrMore(l), Quantifier{0, 3}},
		{"one or more", OneOrMore(l), Quantifier{1, 4}},
		{"zero or one", ZeroOrOne(), Quantifier{0, 1}},
		{"range below variance", Range(1, 2, l), Quantifier{1, 2}},
		{"range capped by variance", Range(5, 100, l), Quantifier{5, 8}},
		{"range with default min", Range(0, 3, l), Quantifier{0, 3}},
		{"at least", AtLeast(2, l), Quantifier{2, 5}},
		{"exactly", Exactly(4), Quantifier{4, 4}},
		{"exactly zero", Exactly(0), Quantifier{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
			assert.LessOrEqual(t, tt.got.Min, tt.got.Max)
		})
	}
}

func TestQuantifierVarianceBound(t *testing.T) {
	for v := 0; v <= 6; v++ {
		l := limitsWith(5, v)
		for m := 0; m <= 10; m++ {
			for _, q := range []Quantifier{ZeroOrMore(l), AtLeast(m, l), Range(m, m+50, l), Exactly(m)} {
				assert.LessOrEqual(t, q.Min, q.Max, "%v", q)
				assert.LessOrEqual(t, q.Max-q.Min, v, "%v", q)
			}
			assert.LessOrEqual(t, OneOrMore(l).Max-OneOrMore(l).Min, v)
		}
	}
}

func TestQuantifierMalformedPanics(t *testing.T) {
	l := limitsWith(5, 2)
	assert.Panics(t, func() { Exactly(-1) })
	assert.Panics(t, func() { Range(4, 2, l) })
	assert.Panics(t, func() { NewRepeater(&stubPattern{}, Quantifier{Min: 3, Max: 1}, l) })
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name  string
		slots [][]Fragment
		limit int
		want  []string
	}{
		{
			name:  "no slots",
			slots: nil,
			limit: 5,
			want:  []string{""},
		},
		{
			name:  "single slot",
			slots: [][]Fragment{literals("a", "b")},
			limit: 5,
			want:  []string{"a", "b"},
		},
		{
			name:  "cartesian order",
			slots: [][]Fragment{literals("a", "b"), literals("1", "2")},
			limit: 10,
			want:  []string{"a1", "a2", "b1", "b2"},
		},
		{
			name:  "output truncated",
			slots: [][]Fragment{literals("a", "b"), literals("1", "2")},
			limit: 3,
			want:  []string{"a1", "a2", "b1"},
		},
		{
			name:  "slots truncated first",
			slots: [][]Fragment{literals("a", "b", "c"), literals("1")},
			limit: 2,
			want:  []string{"a1", "b1"},
		},
		{
			name:  "empty slot",
			slots: [][]Fragment{literals("a"), nil},
			limit: 5,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Texts(Combine(tt.slots, tt.limit))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Combine() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLimiter(t *testing.T) {
	lim := newLimiter(5)

	kept, lim := lim.limit(literals("a", "b", "c"))
	assert.Equal(t, []string{"a", "b", "c"}, Texts(kept))

	kept, lim = lim.limit(literals("d", "e", "f"))
	assert.Equal(t, []string{"d", "e"}, Texts(kept))

	kept, _ = lim.limit(literals("g"))
	assert.Empty(t, kept)
}

func TestRepeaterScenarios(t *testing.T) {
	a := func() Pattern { return &stubPattern{all: literals("a")} }

	tests := []struct {
		name string
		q    Quantifier
		want []string
	}{
		{"zero or more", ZeroOrMore(limitsWith(5, 3)), []string{"", "a", "aa", "aaa"}},
		{"one or more", OneOrMore(limitsWith(5, 3)), []string{"a", "aa", "aaa", "aaaa"}},
		{"open range", AtLeast(2, limitsWith(5, 2)), []string{"aa", "aaa", "aaaa"}},
		{"wide range", Range(5, 100, limitsWith(5, 2)), []string{"aaaaa", "aaaaaa", "aaaaaaa"}},
		{"zero or one", ZeroOrOne(), []string{"", "a"}},
		{"exactly one", ExactlyOne(), []string{"a"}},
		{"exactly zero", Exactly(0), []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRepeater(a(), tt.q, limitsWith(5, 3))
			got := Texts(r.AllMatches())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AllMatches() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRepeaterLimiterSharesBudget(t *testing.T) {
	l := limitsWith(5, 2)
	sub := &stubPattern{all: literals("0", "1", "2", "3", "4", "5", "6")}
	r := NewRepeater(sub, ZeroOrMore(l), l)

	got := Texts(r.AllMatches())
	assert.Equal(t, []string{"", "0", "1", "2", "3"}, got)
}

func TestRepeaterBounded(t *testing.T) {
	for _, g := range []int{1, 3, 5, 20} {
		l := limitsWith(g, 50)
		sub := &stubPattern{all: literals("a", "b", "c", "d", "e", "f", "g", "h")}
		r := NewRepeater(sub, Range(3, 1000, l), l)
		assert.LessOrEqual(t, len(r.AllMatches()), g)
	}
}

func TestRepeaterDedup(t *testing.T) {
	l := limitsWith(10, 1)
	r := NewRepeater(&stubPattern{all: literals("a", "aa")}, OneOrMore(l), l)

	got := Texts(r.AllMatches())
	assert.Equal(t, []string{"a", "aa", "aaa", "aaaa"}, got)
}

func TestRepeaterDedupKeepsDistinctCaptures(t *testing.T) {
	l := limitsWith(10, 0)
	sub := &stubPattern{all: []Fragment{
		NewFragment("a").Captured(1, ""),
		NewFragment("a"),
	}}
	r := NewRepeater(sub, ExactlyOne(), l)
	assert.Len(t, r.AllMatches(), 2)
}

func TestRepeaterEmptySubPattern(t *testing.T) {
	l := limitsWith(5, 2)
	r := NewRepeater(&stubPattern{}, ZeroOrMore(l), l)
	assert.Equal(t, []string{""}, Texts(r.AllMatches()))

	r = NewRepeater(&stubPattern{}, OneOrMore(l), l)
	assert.Empty(t, r.AllMatches())
}

func TestRepeaterNested(t *testing.T) {
	l := limitsWith(5, 2)
	inner := NewRepeater(&stubPattern{all: literals("a")}, Range(2, 3, l), l)
	outer := NewRepeater(inner, Range(1, 2, l), l)

	got := Texts(outer.AllMatches())
	assert.Equal(t, []string{"aa", "aaa", "aaaa", "aaaaa"}, got)
}

func TestRepeaterOneMatchCoversRange(t *testing.T) {
	l := limitsWith(5, 4)
	r := NewRepeater(&stubPattern{all: literals("a")}, AtLeast(1, l), l)
	rng := rand.New(rand.NewPCG(1, 2))

	seen := make(map[int]int)
	for i := 0; i < 2000; i++ {
		n := len(r.OneMatch(rng).Text())
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 5)
		seen[n]++
	}
	for n := 1; n <= 5; n++ {
		assert.Positive(t, seen[n], "repeat count %d never drawn", n)
	}
}

func TestRepeaterOneMatchDrawsIndependently(t *testing.T) {
	sub := &stubPattern{all: literals("x", "y")}
	r := NewRepeater(sub, Exactly(4), limitsWith(5, 2))

	assert.Equal(t, "xyxy", r.OneMatch(rand.New(rand.NewPCG(1, 1))).Text())
	assert.Equal(t, 4, sub.calls)
}

func TestRepeaterOneMatchZero(t *testing.T) {
	r := NewRepeater(&stubPattern{all: literals("a")}, Exactly(0), limitsWith(5, 2))
	assert.Equal(t, "", r.OneMatch(rand.New(rand.NewPCG(1, 1))).Text())
}

func TestFragment(t *testing.T) {
	a := NewFragment("a").Captured(1, "x")
	b := NewFragment("b")

	ab := a.Concat(b)
	assert.Equal(t, "ab", ab.Text())
	assert.Equal(t, []Capture{{Index: 1, Name: "x", Text: "a"}}, ab.Captures())

	assert.True(t, ab.Equal(NewFragment("a").Captured(1, "x").Concat(NewFragment("b"))))
	assert.False(t, ab.Equal(NewFragment("ab")))
	assert.NotEqual(t, ab.Key(), NewFragment("ab").Key())

	assert.True(t, EmptyFragment().Concat(ab).Equal(ab))
	assert.True(t, ab.Concat(EmptyFragment()).Equal(ab))
}

func TestSetDefaultLimits(t *testing.T) {
	orig := DefaultLimits()
	t.Cleanup(func() { require.NoError(t, SetDefaultLimits(orig)) })

	assert.Equal(t, DefaultMaxGroupResults, orig.MaxGroupResults)
	assert.Equal(t, DefaultMaxRepeaterVariance, orig.MaxRepeaterVariance)

	err := SetDefaultLimits(Limits{MaxGroupResults: 0, MaxResultsLimit: 1})
	assert.ErrorIs(t, err, ErrInvalidLimits)

	want := limitsWith(7, 1)
	require.NoError(t, SetDefaultLimits(want))
	assert.Equal(t, want, DefaultLimits())
}
