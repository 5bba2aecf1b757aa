// Package node provides the sub-pattern nodes a resolved regex tree is built from.
// Every node satisfies generator.Pattern.
package node

import (
	"github.com/KromDaniel/regexamples/internal/backref"
	"github.com/KromDaniel/regexamples/internal/generator"
)

type literal struct {
	text string
}

// Literal matches text exactly.
func Literal(text string) generator.Pattern {
	return literal{text: text}
}

func (l literal) AllMatches() []generator.Fragment {
	return []generator.Fragment{generator.NewFragment(l.text)}
}

func (l literal) OneMatch(generator.Rand) generator.Fragment {
	return generator.NewFragment(l.text)
}

// Empty matches only the empty string. Anchors and word boundaries resolve to it.
func Empty() generator.Pattern {
	return literal{}
}

type noMatch struct{}

// NoMatch matches nothing. OneMatch returns the empty fragment, so callers that
// need a real sample check AllMatches first.
func NoMatch() generator.Pattern {
	return noMatch{}
}

func (noMatch) AllMatches() []generator.Fragment {
	return nil
}

func (noMatch) OneMatch(generator.Rand) generator.Fragment {
	return generator.EmptyFragment()
}

type sequence struct {
	children []generator.Pattern
	limit    int
}

// Sequence concatenates children. Its exhaustive set is the capped Cartesian
// product of the children's sets.
func Sequence(children []generator.Pattern, limit int) generator.Pattern {
	return sequence{children: children, limit: limit}
}

func (s sequence) AllMatches() []generator.Fragment {
	slots := make([][]generator.Fragment, len(s.children))
	for i, c := range s.children {
		slots[i] = c.AllMatches()
	}
	return generator.Combine(slots, s.limit)
}

func (s sequence) OneMatch(r generator.Rand) generator.Fragment {
	out := generator.EmptyFragment()
	for _, c := range s.children {
		out = out.Concat(c.OneMatch(r))
	}
	return out
}

type alternation struct {
	branches []generator.Pattern
}

// Alternation matches any one of branches.
func Alternation(branches []generator.Pattern) generator.Pattern {
	return alternation{branches: branches}
}

func (a alternation) AllMatches() []generator.Fragment {
	var out []generator.Fragment
	for _, b := range a.branches {
		out = append(out, b.AllMatches()...)
	}
	return generator.Dedup(out)
}

func (a alternation) OneMatch(r generator.Rand) generator.Fragment {
	if len(a.branches) == 0 {
		return generator.EmptyFragment()
	}
	return a.branches[r.IntN(len(a.branches))].OneMatch(r)
}

type group struct {
	index int
	name  string
	child generator.Pattern
}

// Group records the text child produces as the capture for group index.
func Group(index int, name string, child generator.Pattern) generator.Pattern {
	return group{index: index, name: name, child: child}
}

func (g group) AllMatches() []generator.Fragment {
	matches := g.child.AllMatches()
	out := make([]generator.Fragment, len(matches))
	for i, f := range matches {
		out[i] = f.Captured(g.index, g.name)
	}
	return out
}

func (g group) OneMatch(r generator.Rand) generator.Fragment {
	return g.child.OneMatch(r).Captured(g.index, g.name)
}

// BackRef stands in for the text captured by group index. The placeholder is
// replaced by backref.Substitute once the whole pattern has been generated.
func BackRef(index int) generator.Pattern {
	return literal{text: backref.Placeholder(index)}
}
