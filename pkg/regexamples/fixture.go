package regexamples

import (
	"fmt"
	"io"

	"github.com/KromDaniel/regexamples/internal/fixture"
)

// FixtureOptions configures Go fixture generation.
type FixtureOptions struct {
	Options

	// Pattern is the regular expression to generate examples for
	Pattern string

	// Name is the prefix for generated identifiers (e.g., "Email" generates "EmailExamples")
	Name string

	// Package is the Go package name for the generated code
	Package string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Random is the number of random samples to add next to the exhaustive examples
	Random int

	// GenerateTestFile also writes a _test.go file asserting every example matches
	GenerateTestFile bool
}

// Validate checks if the options are valid.
func (o FixtureOptions) Validate() error {
	if err := o.Options.Validate(); err != nil {
		return err
	}
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if o.Random < 0 {
		return fmt.Errorf("random sample count cannot be negative")
	}
	return nil
}

// Fixture describes what GenerateFixture wrote.
type Fixture struct {
	Examples       []string
	RandomExamples []string
	OutputFile     string
	TestFile       string // empty when no test file was written
}

func (o FixtureOptions) build() (*fixture.Generator, *Fixture, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	p, err := Compile(o.Pattern, o.Options)
	if err != nil {
		return nil, nil, err
	}

	fx := &Fixture{
		Examples:   p.Examples(),
		OutputFile: o.OutputFile,
	}
	if o.Random > 0 {
		fx.RandomExamples, err = p.RandomExamples(o.Random)
		if err != nil {
			return nil, nil, err
		}
	}
	if o.GenerateTestFile && !p.HasBackrefs() && o.OutputFile != "" {
		fx.TestFile = fixture.TestFileName(o.OutputFile)
	}

	g := fixture.New(fixture.Config{
		Pattern:          o.Pattern,
		Name:             o.Name,
		Package:          o.Package,
		OutputFile:       o.OutputFile,
		Examples:         fx.Examples,
		RandomExamples:   fx.RandomExamples,
		GenerateTestFile: o.GenerateTestFile,
		HasBackrefs:      p.HasBackrefs(),
	})
	return g, fx, nil
}

// GenerateFixture writes a Go source file declaring the pattern and its examples.
func GenerateFixture(opts FixtureOptions) (*Fixture, error) {
	if opts.OutputFile == "" {
		return nil, fmt.Errorf("%w: output file cannot be empty", ErrInvalidOptions)
	}
	g, fx, err := opts.build()
	if err != nil {
		return nil, err
	}
	if err := g.Generate(); err != nil {
		return nil, fmt.Errorf("failed to generate fixture: %w", err)
	}
	return fx, nil
}

// RenderFixture writes the fixture source to w instead of a file.
func RenderFixture(w io.Writer, opts FixtureOptions) error {
	g, _, err := opts.build()
	if err != nil {
		return err
	}
	return g.Render(w)
}
