// Package config loads batch fixture configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KromDaniel/regexamples/internal/codegen"
	"github.com/KromDaniel/regexamples/internal/generator"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultJobs is the batch concurrency used when none is configured.
const DefaultJobs = 4

// Config holds a batch of patterns to generate fixtures for.
type Config struct {
	// Package is the package clause of every generated file
	Package string `yaml:"package"`

	// OutputDir is where fixtures are written, relative to the config file
	OutputDir string `yaml:"output_dir"`

	// Jobs bounds how many patterns are generated concurrently
	Jobs int `yaml:"jobs"`

	// Limits overrides the process-wide generation limits
	Limits generator.Limits `yaml:"limits"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	Patterns []PatternConfig `yaml:"patterns"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// PatternConfig describes one fixture.
type PatternConfig struct {
	Name     string `yaml:"name"`
	Pattern  string `yaml:"pattern"`
	Output   string `yaml:"output"`    // defaults to <snake name>.go in OutputDir
	Random   int    `yaml:"random"`    // number of random samples to include
	TestFile bool   `yaml:"test_file"` // also generate a matching _test.go
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Package:   "fixtures",
		OutputDir: ".",
		Jobs:      DefaultJobs,
		Limits:    generator.DefaultLimits(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file. Unset values keep their defaults and
// relative output paths are resolved against the file's directory.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(filepath.Dir(path), cfg.OutputDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("%w: package cannot be empty", ErrInvalidConfig)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalidConfig, c.Jobs)
	}
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if len(c.Patterns) == 0 {
		return fmt.Errorf("%w: no patterns configured", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Patterns))
	for i, p := range c.Patterns {
		if p.Pattern == "" {
			return fmt.Errorf("%w: patterns[%d]: pattern cannot be empty", ErrInvalidConfig, i)
		}
		if codegen.Identifier(p.Name) != p.Name || p.Name == "" {
			return fmt.Errorf("%w: patterns[%d]: name %q is not an exported identifier", ErrInvalidConfig, i, p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: patterns[%d]: duplicate name %q", ErrInvalidConfig, i, p.Name)
		}
		seen[p.Name] = true
		if p.Random < 0 {
			return fmt.Errorf("%w: patterns[%d]: random cannot be negative", ErrInvalidConfig, i)
		}
	}
	return nil
}

// OutputPath returns where the fixture for p is written.
func (c *Config) OutputPath(p PatternConfig) string {
	out := p.Output
	if out == "" {
		out = snake(p.Name) + ".go"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(c.OutputDir, out)
}

// snake converts an exported identifier such as "HTTPStatusCode" to "http_status_code".
func snake(name string) string {
	var out []byte
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			prevLower := i > 0 && !(name[i-1] >= 'A' && name[i-1] <= 'Z')
			nextLower := i+1 < len(name) && name[i+1] >= 'a' && name[i+1] <= 'z'
			if i > 0 && (prevLower || nextLower) {
				out = append(out, '_')
			}
			c |= 0x20
		}
		out = append(out, c)
	}
	return string(out)
}
