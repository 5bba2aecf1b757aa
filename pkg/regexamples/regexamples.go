// Package regexamples generates example strings that a regular expression matches.
// It produces both a bounded exhaustive listing and independent random samples.
package regexamples

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/KromDaniel/regexamples/internal/backref"
	"github.com/KromDaniel/regexamples/internal/generator"
	"github.com/KromDaniel/regexamples/internal/resolve"
	"go.uber.org/zap"
)

// Limits bounds how many examples are generated. See DefaultLimits.
type Limits = generator.Limits

var (
	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrNoMatches is returned by random queries on a pattern that matches nothing.
	ErrNoMatches = errors.New("pattern matches no strings")

	// ErrUnknownGroup is returned for a back-reference to an undefined group.
	ErrUnknownGroup = resolve.ErrUnknownGroup
)

// DefaultLimits returns the process-wide limits used when Options.Limits is nil.
func DefaultLimits() Limits {
	return generator.DefaultLimits()
}

// SetDefaultLimits replaces the process-wide limits. Patterns compiled earlier
// keep the limits they were compiled with.
func SetDefaultLimits(l Limits) error {
	return generator.SetDefaultLimits(l)
}

// Options configures example generation.
type Options struct {
	// Limits overrides the process-wide limits when set.
	Limits *Limits

	// Seed makes random examples reproducible. Zero picks a random seed.
	Seed uint64

	// Logger receives debug output about quantifier resolution. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Limits != nil {
		if err := o.Limits.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (o Options) limits() Limits {
	if o.Limits != nil {
		return *o.Limits
	}
	return generator.DefaultLimits()
}

// Pattern is a compiled pattern ready to produce examples. It is safe for
// concurrent use.
type Pattern struct {
	tree   *resolve.Tree
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Compile resolves pattern into a generation tree.
func Compile(pattern string, opts Options) (*Pattern, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tree, err := resolve.Resolve(pattern, opts.limits(), logger)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Pattern{
		tree:   tree,
		logger: logger,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts Options) *Pattern {
	p, err := Compile(pattern, opts)
	if err != nil {
		panic(fmt.Sprintf("regexamples: Compile(%q): %v", pattern, err))
	}
	return p
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.tree.Source
}

// Limits returns the limits the pattern was compiled with.
func (p *Pattern) Limits() Limits {
	return p.tree.Limits
}

// HasBackrefs reports whether the pattern uses back-references.
func (p *Pattern) HasBackrefs() bool {
	return p.tree.HasBackrefs
}

// Examples returns the bounded exhaustive listing of strings the pattern matches,
// with back-references substituted, duplicates removed and at most
// MaxResultsLimit entries.
func (p *Pattern) Examples() []string {
	out := backref.SubstituteAll(p.tree.Root.AllMatches())
	if limit := p.tree.Limits.MaxResultsLimit; len(out) > limit {
		out = out[:limit]
	}
	p.logger.Debug("examples generated",
		zap.String("pattern", p.tree.Source),
		zap.Int("count", len(out)),
	)
	return out
}

// RandomExample returns one randomly sampled string the pattern matches.
func (p *Pattern) RandomExample() (string, error) {
	if len(p.tree.Root.AllMatches()) == 0 {
		return "", ErrNoMatches
	}

	p.mu.Lock()
	f := p.tree.Root.OneMatch(p.rng)
	p.mu.Unlock()

	return backref.Substitute(f), nil
}

// RandomExamples returns n independently sampled strings. Duplicates are kept.
func (p *Pattern) RandomExamples(n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrInvalidOptions, n)
	}
	if len(p.tree.Root.AllMatches()) == 0 {
		return nil, ErrNoMatches
	}

	out := make([]string, n)
	p.mu.Lock()
	for i := range out {
		out[i] = backref.Substitute(p.tree.Root.OneMatch(p.rng))
	}
	p.mu.Unlock()
	return out, nil
}

// Examples compiles pattern and returns its exhaustive examples.
func Examples(pattern string, opts Options) ([]string, error) {
	p, err := Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return p.Examples(), nil
}

// RandomExample compiles pattern and returns one random example.
func RandomExample(pattern string, opts Options) (string, error) {
	p, err := Compile(pattern, opts)
	if err != nil {
		return "", err
	}
	return p.RandomExample()
}
