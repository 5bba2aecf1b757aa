package resolve

import (
	"testing"

	"github.com/KromDaniel/regexamples/internal/backref"
	"github.com/KromDaniel/regexamples/internal/generator"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var testLimits = generator.Limits{
	MaxGroupResults:     5,
	MaxRepeaterVariance: 2,
	MaxResultsLimit:     10000,
}

func examples(t *testing.T, pattern string) []string {
	t.Helper()
	tree, err := Resolve(pattern, testLimits, nil)
	require.NoError(t, err)
	return backref.SubstituteAll(tree.Root.AllMatches())
}

func TestResolveExamples(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"literal", "abc", []string{"abc"}},
		{"star", "a*", []string{"", "a", "aa"}},
		{"plus", "a+", []string{"a", "aa", "aaa"}},
		{"quest", "a?", []string{"", "a"}},
		{"lazy star", "a*?", []string{"", "a", "aa"}},
		{"at least", "a{2,}", []string{"aa", "aaa", "aaaa"}},
		{"wide range", "a{5,100}", []string{"aaaaa", "aaaaaa", "aaaaaaa"}},
		{"exact", "a{3}", []string{"aaa"}},
		{"digit", `\d`, []string{"0", "1", "2", "3", "4"}},
		{"alternation", "a|b|cd", []string{"a", "b", "cd"}},
		{"anchors", "^a$", []string{"a"}},
		{"word boundary", `\bx\b`, []string{"x"}},
		{"no match", `[^\x00-\x{10FFFF}]`, []string{}},
		{"empty", "", []string{""}},
		{"fold case", "(?i)ab", []string{"ab", "aB", "Ab", "AB"}},
		{"nested repeat", "(?:a{2,3}){1,2}", []string{"aa", "aaa", "aaaa", "aaaaa"}},
		{"sequence of repeats", "a?b?", []string{"", "b", "a", "ab"}},
		{"capture", "(x|y)z", []string{"xz", "yz"}},
		{"backref", `(a|b)-\1`, []string{"a-a", "b-b"}},
		{"named backref", `(?P<w>a|b)\k<w>`, []string{"aa", "bb"}},
		{"python named backref", `(?P<w>q)(?P=w)`, []string{"qq"}},
		{"backref to untaken branch", `(a)|\1`, []string{"a", ""}},
		{"backrefs folded into class", `(x)(y)(?:\1|\2)`, []string{"xyx", "xyy"}},
		{"backref repeated", `(a)\1{2}`, []string{"aaa"}},
		{"negated class beside backref", `(a)[^b]\1`, []string{"aaa", "aca", "ada", "aea", "afa"}},
		{"escaped backslash", `\\1`, []string{`\1`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := examples(t, tt.pattern)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("examples(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr error
	}{
		{"unknown numeric group", `(a)\2`, ErrUnknownGroup},
		{"unknown named group", `(a)\k<nope>`, ErrUnknownGroup},
		{"limits", "a", generator.ErrInvalidLimits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := testLimits
			if tt.wantErr == generator.ErrInvalidLimits {
				limits.MaxGroupResults = 0
			}
			_, err := Resolve(tt.pattern, limits, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Resolve("a(", testLimits, nil)
	assert.ErrorContains(t, err, "failed to parse pattern")

	_, err = Resolve(`\k<`, testLimits, nil)
	assert.Error(t, err)
}

func TestResolveTree(t *testing.T) {
	tree, err := Resolve(`(a)(?P<b>b)\1`, testLimits, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, tree.NumGroups)
	assert.True(t, tree.HasBackrefs)
	assert.Equal(t, testLimits, tree.Limits)
	assert.Equal(t, `(a)(?P<b>b)\1`, tree.Source)

	matches := tree.Root.AllMatches()
	require.Len(t, matches, 1)
	assert.Equal(t, []generator.Capture{
		{Index: 1, Text: "a"},
		{Index: 2, Name: "b", Text: "b"},
	}, matches[0].Captures())
}

func TestResolveRespectsLimitSnapshot(t *testing.T) {
	tree, err := Resolve("a*", testLimits, nil)
	require.NoError(t, err)

	wider := testLimits
	wider.MaxRepeaterVariance = 4
	wide, err := Resolve("a*", wider, nil)
	require.NoError(t, err)

	assert.Len(t, tree.Root.AllMatches(), 3)
	assert.Len(t, wide.Root.AllMatches(), 5)
}

func TestResolveLogsQuantifiers(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	_, err := Resolve("a{2,}b?", testLimits, zap.New(core))
	require.NoError(t, err)

	quantifiers := logs.FilterMessage("quantifier resolved").All()
	require.Len(t, quantifiers, 2)

	first := quantifiers[0].ContextMap()
	assert.Equal(t, "at_least", first["op"])
	assert.EqualValues(t, 2, first["min"])
	assert.EqualValues(t, 4, first["max"])
	assert.Equal(t, "a{2,}b?", first["pattern"])

	second := quantifiers[1].ContextMap()
	assert.Equal(t, "quest", second["op"])

	assert.Equal(t, 1, logs.FilterMessage("pattern resolved").Len())
}

func TestRewriteBackrefs(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		want     string
		wantRefs []reference
	}{
		{"none", `a(b)c`, `a(b)c`, nil},
		{"numeric", `(a)\1`, `(a)\x{F0000}`, []reference{{Index: 1}}},
		{"two digits", `\12`, `\x{F0000}`, []reference{{Index: 12}}},
		{"named", `(?P<n>a)\k<n>`, `(?P<n>a)\x{F0000}`, []reference{{Name: "n"}}},
		{"python named", `(?P<n>a)(?P=n)`, `(?P<n>a)\x{F0000}`, []reference{{Name: "n"}}},
		{"several", `\1\2`, `\x{F0000}\x{F0001}`, []reference{{Index: 1}, {Index: 2}}},
		{"escaped backslash", `\\1`, `\\1`, nil},
		{"inside class", `[\1]`, `[\1]`, nil},
		{"leading bracket in class", `[]\1]`, `[]\1]`, nil},
		{"posix class", `[[:digit:]\1]\1`, `[[:digit:]\1]\x{F0000}`, []reference{{Index: 1}}},
		{"quoted", `\Q\1\E\1`, `\Q\1\E\x{F0000}`, []reference{{Index: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, refs, err := rewriteBackrefs(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantRefs, refs)
		})
	}
}
