// Package fixture writes generated examples out as Go source files.
package fixture

import (
	"errors"
	"fmt"
	"go/format"
	"io"
	"os"
	"strings"

	"github.com/KromDaniel/regexamples/internal/codegen"
	"github.com/dave/jennifer/jen"
)

// ErrInvalidConfig is returned when a fixture Config fails validation.
var ErrInvalidConfig = errors.New("invalid fixture config")

// Config holds the configuration for fixture generation.
type Config struct {
	Pattern          string
	Name             string   // Prefix for generated identifiers, e.g. "Email" gives EmailExamples
	Package          string   // Package clause of the generated file
	OutputFile       string   // Where the fixture is written
	Examples         []string // Exhaustive examples
	RandomExamples   []string // Optional random samples, emitted as <Name>RandomExamples
	GenerateTestFile bool     // Also write <file>_test.go checking every example matches
	HasBackrefs      bool     // The standard regexp package cannot check these patterns
}

// Validate checks if the config is valid.
func (c Config) Validate() error {
	if c.Pattern == "" {
		return fmt.Errorf("%w: pattern cannot be empty", ErrInvalidConfig)
	}
	if c.Name == "" || codegen.Identifier(c.Name) != c.Name {
		return fmt.Errorf("%w: name %q is not an exported identifier", ErrInvalidConfig, c.Name)
	}
	if c.Package == "" {
		return fmt.Errorf("%w: package cannot be empty", ErrInvalidConfig)
	}
	return nil
}

// Generator renders fixture files.
type Generator struct {
	config Config
}

// New creates a new fixture generator.
func New(config Config) *Generator {
	return &Generator{config: config}
}

// TestFileName returns the path of the test file that accompanies output.
func TestFileName(output string) string {
	return strings.TrimSuffix(output, ".go") + "_test.go"
}

// File builds the fixture source.
func (g *Generator) File() *jen.File {
	c := g.config
	f := jen.NewFile(c.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by regexamples for pattern: %s", c.Pattern))
	f.HeaderComment("DO NOT EDIT.")

	f.Commentf("%s is the pattern the examples below were generated from.", codegen.PatternName(c.Name))
	f.Const().Id(codegen.PatternName(c.Name)).Op("=").Lit(c.Pattern)
	f.Line()

	f.Commentf("%s lists strings matched by %s.", codegen.ExamplesName(c.Name), codegen.PatternName(c.Name))
	f.Var().Id(codegen.ExamplesName(c.Name)).Op("=").Add(stringSlice(c.Examples))

	if len(c.RandomExamples) > 0 {
		name := c.Name + "Random" + codegen.ExamplesSuffix
		f.Line()
		f.Commentf("%s holds randomly sampled strings matched by %s.", name, codegen.PatternName(c.Name))
		f.Var().Id(name).Op("=").Add(stringSlice(c.RandomExamples))
	}
	return f
}

// TestFile builds the test source asserting every example matches the pattern.
func (g *Generator) TestFile() *jen.File {
	c := g.config
	f := jen.NewFile(c.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by regexamples for pattern: %s", c.Pattern))
	f.HeaderComment("DO NOT EDIT.")

	lists := []jen.Code{jen.Id(codegen.ExamplesName(c.Name))}
	if len(c.RandomExamples) > 0 {
		lists = append(lists, jen.Id(c.Name+"Random"+codegen.ExamplesSuffix))
	}

	var body []jen.Code
	body = append(body,
		jen.Id(codegen.RegexpName).Op(":=").Qual("regexp", "MustCompile").Call(
			jen.Lit("^(?:").Op("+").Id(codegen.PatternName(c.Name)).Op("+").Lit(")$"),
		),
	)
	for _, list := range lists {
		body = append(body,
			jen.For(jen.List(jen.Id("_"), jen.Id(codegen.ExampleName)).Op(":=").Range().Add(list)).Block(
				jen.If(jen.Op("!").Id(codegen.RegexpName).Dot("MatchString").Call(jen.Id(codegen.ExampleName))).Block(
					jen.Id(codegen.TestingName).Dot("Errorf").Call(
						jen.Lit("%q does not match %s"),
						jen.Id(codegen.ExampleName),
						jen.Id(codegen.PatternName(c.Name)),
					),
				),
			),
		)
	}

	f.Func().Id(codegen.TestName(c.Name)).
		Params(jen.Id(codegen.TestingName).Op("*").Qual("testing", "T")).
		Block(body...)
	return f
}

func stringSlice(values []string) *jen.Statement {
	items := make([]jen.Code, len(values))
	for i, v := range values {
		items[i] = jen.Lit(v)
	}
	return jen.Index().String().ValuesFunc(func(g *jen.Group) {
		for _, item := range items {
			g.Line().Add(item)
		}
		if len(items) > 0 {
			g.Line()
		}
	})
}

// Render writes the fixture source to w.
func (g *Generator) Render(w io.Writer) error {
	if err := g.config.Validate(); err != nil {
		return err
	}
	return g.File().Render(w)
}

// Generate writes the fixture file, and its test file when requested.
func (g *Generator) Generate() error {
	if err := g.config.Validate(); err != nil {
		return err
	}
	if g.config.OutputFile == "" {
		return fmt.Errorf("%w: output file cannot be empty", ErrInvalidConfig)
	}

	if err := save(g.File(), g.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save fixture: %w", err)
	}

	// regexp cannot compile back-references, so there is nothing to check against.
	if g.config.GenerateTestFile && !g.config.HasBackrefs {
		if err := save(g.TestFile(), TestFileName(g.config.OutputFile)); err != nil {
			return fmt.Errorf("failed to save test file: %w", err)
		}
	}
	return nil
}

func save(f *jen.File, path string) error {
	if err := f.Save(path); err != nil {
		return err
	}
	return formatFile(path)
}

// formatFile reads a file, formats it with go/format, and writes it back.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
