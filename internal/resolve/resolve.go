// Package resolve turns regex pattern text into a tree of generator.Pattern
// nodes, wrapping every quantified sub-pattern in a generator.Repeater.
package resolve

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"unicode"

	"github.com/KromDaniel/regexamples/internal/generator"
	"github.com/KromDaniel/regexamples/internal/node"
	"go.uber.org/zap"
)

var (
	// ErrUnknownGroup is returned for a back-reference to a group the pattern
	// does not define.
	ErrUnknownGroup = errors.New("back-reference to unknown group")

	// ErrUnsupported is returned for syntax the generator cannot produce examples for.
	ErrUnsupported = errors.New("unsupported pattern syntax")
)

// Tree is a resolved pattern.
type Tree struct {
	Root        generator.Pattern
	Source      string
	Limits      generator.Limits
	NumGroups   int
	HasBackrefs bool
}

type resolver struct {
	limits generator.Limits
	logger *zap.Logger
	refs   []reference
	groups []int // group index for each entry of refs
}

// Resolve parses pattern with Perl syntax and builds its generation tree using
// limits. Quantifier decisions are logged at debug level.
func Resolve(pattern string, limits generator.Limits, logger *zap.Logger) (*Tree, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rewritten, refs, err := rewriteBackrefs(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}

	// No Simplify: it expands counted repeats.
	re, err := syntax.Parse(rewritten, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}

	r := &resolver{
		limits: limits,
		logger: logger.With(zap.String("pattern", pattern)),
		refs:   refs,
	}
	if err := r.bindRefs(re); err != nil {
		return nil, err
	}

	root, err := r.build(re)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("pattern resolved",
		zap.Int("groups", re.MaxCap()),
		zap.Int("backrefs", len(refs)),
		zap.Int("max_group_results", limits.MaxGroupResults),
		zap.Int("max_repeater_variance", limits.MaxRepeaterVariance),
	)

	return &Tree{
		Root:        root,
		Source:      pattern,
		Limits:      limits,
		NumGroups:   re.MaxCap(),
		HasBackrefs: len(refs) > 0,
	}, nil
}

// bindRefs maps every reference to a group index of re.
func (r *resolver) bindRefs(re *syntax.Regexp) error {
	if len(r.refs) == 0 {
		return nil
	}
	names := re.CapNames()
	byName := make(map[string]int, len(names))
	for i, name := range names {
		if name != "" {
			byName[name] = i
		}
	}

	r.groups = make([]int, len(r.refs))
	for i, ref := range r.refs {
		if ref.Name != "" {
			idx, ok := byName[ref.Name]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownGroup, ref)
			}
			r.groups[i] = idx
			continue
		}
		if ref.Index > re.MaxCap() {
			return fmt.Errorf("%w: %s (pattern has %d groups)", ErrUnknownGroup, ref, re.MaxCap())
		}
		r.groups[i] = ref.Index
	}
	return nil
}

func (r *resolver) build(re *syntax.Regexp) (generator.Pattern, error) {
	g := r.limits.MaxGroupResults

	switch re.Op {
	case syntax.OpNoMatch:
		return node.NoMatch(), nil

	case syntax.OpEmptyMatch,
		syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return node.Empty(), nil

	case syntax.OpLiteral:
		return r.literal(re), nil

	case syntax.OpCharClass:
		return r.charClass(re.Rune), nil

	case syntax.OpAnyCharNotNL:
		return node.AnyChar(false, g), nil

	case syntax.OpAnyChar:
		return node.AnyChar(true, g), nil

	case syntax.OpCapture:
		child, err := r.build(re.Sub[0])
		if err != nil {
			return nil, err
		}
		return node.Group(re.Cap, re.Name, child), nil

	case syntax.OpStar:
		return r.repeat(re, "star", generator.ZeroOrMore(r.limits))

	case syntax.OpPlus:
		return r.repeat(re, "plus", generator.OneOrMore(r.limits))

	case syntax.OpQuest:
		return r.repeat(re, "quest", generator.ZeroOrOne())

	case syntax.OpRepeat:
		switch {
		case re.Max == -1:
			return r.repeat(re, "at_least", generator.AtLeast(re.Min, r.limits))
		case re.Min == re.Max:
			return r.repeat(re, "exactly", generator.Exactly(re.Min))
		default:
			return r.repeat(re, "range", generator.Range(re.Min, re.Max, r.limits))
		}

	case syntax.OpConcat:
		children, err := r.buildAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return node.Sequence(children, g), nil

	case syntax.OpAlternate:
		branches, err := r.buildAll(re.Sub)
		if err != nil {
			return nil, err
		}
		return node.Alternation(branches), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupported, re.Op)
}

func (r *resolver) buildAll(subs []*syntax.Regexp) ([]generator.Pattern, error) {
	out := make([]generator.Pattern, 0, len(subs))
	for _, sub := range subs {
		p, err := r.build(sub)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *resolver) repeat(re *syntax.Regexp, op string, q generator.Quantifier) (generator.Pattern, error) {
	sub, err := r.build(re.Sub[0])
	if err != nil {
		return nil, err
	}
	if re.Flags&syntax.NonGreedy != 0 {
		op += "_lazy"
	}
	r.logger.Debug("quantifier resolved",
		zap.String("op", op),
		zap.Stringer("expr", re),
		zap.Int("min", q.Min),
		zap.Int("max", q.Max),
		zap.Int("variance", r.limits.MaxRepeaterVariance),
	)
	return generator.NewRepeater(sub, q, r.limits), nil
}

// literal splits a literal run into plain text, case-folded runes and
// back-references.
func (r *resolver) literal(re *syntax.Regexp) generator.Pattern {
	g := r.limits.MaxGroupResults
	fold := re.Flags&syntax.FoldCase != 0

	var (
		parts []generator.Pattern
		text  []rune
	)
	flush := func() {
		if len(text) > 0 {
			parts = append(parts, node.Literal(string(text)))
			text = text[:0]
		}
	}

	for _, c := range re.Rune {
		if i, ok := markerIndex(c, r.refs); ok {
			flush()
			parts = append(parts, node.BackRef(r.groups[i]))
			continue
		}
		if fold {
			if orbit := caseOrbit(c); len(orbit) > 1 {
				flush()
				parts = append(parts, node.RuneSet(orbit, g))
				continue
			}
		}
		text = append(text, c)
	}
	flush()

	switch len(parts) {
	case 0:
		return node.Empty()
	case 1:
		return parts[0]
	}
	return node.Sequence(parts, g)
}

// charClass builds a class node. regexp/syntax folds single-rune alternations
// into classes, so markers for back-references can end up inside one; those are
// split back out into alternation branches. A range reaching outside the marker
// block comes from a user-written class and stays plain.
func (r *resolver) charClass(ranges []rune) generator.Pattern {
	g := r.limits.MaxGroupResults
	if len(r.refs) == 0 {
		return node.CharClass(ranges, g)
	}

	lo, hi := markerBase, markerBase+rune(len(r.refs))-1
	var (
		plain    []rune
		branches []generator.Pattern
	)
	for i := 0; i+1 < len(ranges); i += 2 {
		a, b := ranges[i], ranges[i+1]
		if a < lo || b > hi {
			plain = append(plain, a, b)
			continue
		}
		for c := a; c <= b; c++ {
			idx, _ := markerIndex(c, r.refs)
			branches = append(branches, node.BackRef(r.groups[idx]))
		}
	}

	if len(branches) == 0 {
		return node.CharClass(ranges, g)
	}
	if len(plain) > 0 {
		branches = append([]generator.Pattern{node.CharClass(plain, g)}, branches...)
	}
	if len(branches) == 1 {
		return branches[0]
	}
	return node.Alternation(branches)
}

// caseOrbit returns c and every rune it folds to.
func caseOrbit(c rune) []rune {
	orbit := []rune{c}
	for f := unicode.SimpleFold(c); f != c; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	return orbit
}
