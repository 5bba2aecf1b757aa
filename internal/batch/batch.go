// Package batch generates fixtures for every pattern of a configuration file.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KromDaniel/regexamples/internal/config"
	"github.com/KromDaniel/regexamples/pkg/regexamples"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result describes one generated fixture.
type Result struct {
	Name     string
	Output   string
	TestFile string
	Examples int
	Random   int
	Duration time.Duration
}

// Report is the outcome of one batch run. Results follow configuration order.
type Report struct {
	RunID   string
	Results []Result
}

// Run generates every configured fixture, at most cfg.Jobs at a time. The first
// failure cancels the patterns that have not started yet.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:   uuid.NewString(),
		Results: make([]Result, len(cfg.Patterns)),
	}
	logger = logger.With(zap.String("run_id", report.RunID))
	logger.Info("batch started", zap.Int("patterns", len(cfg.Patterns)), zap.Int("jobs", cfg.Jobs))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	limits := cfg.Limits
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)

	for i, pc := range cfg.Patterns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			out := cfg.OutputPath(pc)
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				return fmt.Errorf("%s: failed to create output dir: %w", pc.Name, err)
			}

			fx, err := regexamples.GenerateFixture(regexamples.FixtureOptions{
				Options: regexamples.Options{
					Limits: &limits,
					Logger: logger.With(zap.String("name", pc.Name)),
				},
				Pattern:          pc.Pattern,
				Name:             pc.Name,
				Package:          cfg.Package,
				OutputFile:       out,
				Random:           pc.Random,
				GenerateTestFile: pc.TestFile,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", pc.Name, err)
			}

			report.Results[i] = Result{
				Name:     pc.Name,
				Output:   out,
				TestFile: fx.TestFile,
				Examples: len(fx.Examples),
				Random:   len(fx.RandomExamples),
				Duration: time.Since(start),
			}
			logger.Debug("fixture generated",
				zap.String("name", pc.Name),
				zap.String("output", out),
				zap.Int("examples", report.Results[i].Examples),
				zap.Duration("duration", report.Results[i].Duration),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("batch failed", zap.Error(err))
		return nil, err
	}

	logger.Info("batch finished", zap.Int("fixtures", len(report.Results)))
	return report, nil
}
