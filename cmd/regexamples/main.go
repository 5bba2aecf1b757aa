// Command regexamples prints the strings a regular expression matches and
// generates Go fixture files from them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/KromDaniel/regexamples/internal/batch"
	"github.com/KromDaniel/regexamples/internal/config"
	"github.com/KromDaniel/regexamples/pkg/regexamples"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose             bool
	seed                uint64
	maxGroupResults     int
	maxRepeaterVariance int
	maxResults          int

	// random
	count int

	// examples
	quote bool

	// fixture
	fixtureName    string
	fixturePackage string
	fixtureOutput  string
	fixtureRandom  int
	fixtureTest    bool

	// batch
	configPath string
	watch      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "regexamples",
	Short: "Generate example strings for regular expressions",
	Long: `regexamples lists the strings a regular expression matches.

Unbounded repeats are capped so every pattern yields a finite list. Use
"random" for samples and "fixture" to embed the examples in Go test code.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var examplesCmd = &cobra.Command{
	Use:   "examples PATTERN",
	Short: "Print every example of a pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runExamples,
}

var randomCmd = &cobra.Command{
	Use:   "random PATTERN",
	Short: "Print random examples of a pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runRandom,
}

var fixtureCmd = &cobra.Command{
	Use:   "fixture PATTERN",
	Short: "Generate a Go file declaring a pattern and its examples",
	Long: `Generate a Go file declaring a pattern and its examples.

Without --output the source is written to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runFixture,
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate fixtures for every pattern in a config file",
	Args:  cobra.NoArgs,
	RunE:  runBatch,
}

func init() {
	defaults := regexamples.DefaultLimits()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed (0 picks one)")
	rootCmd.PersistentFlags().IntVar(&maxGroupResults, "max-group-results", defaults.MaxGroupResults, "Examples kept per repeated or alternated group")
	rootCmd.PersistentFlags().IntVar(&maxRepeaterVariance, "max-repeater-variance", defaults.MaxRepeaterVariance, "Extra repetitions tried beyond a quantifier's minimum")
	rootCmd.PersistentFlags().IntVar(&maxResults, "max-results", defaults.MaxResultsLimit, "Maximum number of examples returned")

	examplesCmd.Flags().BoolVarP(&quote, "quote", "q", false, "Print examples as Go string literals")
	randomCmd.Flags().IntVarP(&count, "count", "n", 1, "Number of random examples")
	randomCmd.Flags().BoolVarP(&quote, "quote", "q", false, "Print examples as Go string literals")

	fixtureCmd.Flags().StringVar(&fixtureName, "name", "", "Identifier prefix for generated declarations (required)")
	fixtureCmd.Flags().StringVar(&fixturePackage, "package", "fixtures", "Package name of the generated file")
	fixtureCmd.Flags().StringVarP(&fixtureOutput, "output", "o", "", "Output file (default: stdout)")
	fixtureCmd.Flags().IntVar(&fixtureRandom, "random", 0, "Number of random samples to include")
	fixtureCmd.Flags().BoolVar(&fixtureTest, "test", false, "Also generate a _test.go file")
	_ = fixtureCmd.MarkFlagRequired("name")

	batchCmd.Flags().StringVarP(&configPath, "config", "c", "regexamples.yaml", "Path to the batch config file")
	batchCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate whenever the config file changes")

	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(fixtureCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func options() regexamples.Options {
	return regexamples.Options{
		Limits: &regexamples.Limits{
			MaxGroupResults:     maxGroupResults,
			MaxRepeaterVariance: maxRepeaterVariance,
			MaxResultsLimit:     maxResults,
		},
		Seed:   seed,
		Logger: logger,
	}
}

func printExamples(cmd *cobra.Command, examples []string) {
	out := cmd.OutOrStdout()
	for _, e := range examples {
		if quote {
			e = strconv.Quote(e)
		}
		fmt.Fprintln(out, e)
	}
}

func runExamples(cmd *cobra.Command, args []string) error {
	p, err := regexamples.Compile(args[0], options())
	if err != nil {
		return err
	}
	printExamples(cmd, p.Examples())
	return nil
}

func runRandom(cmd *cobra.Command, args []string) error {
	p, err := regexamples.Compile(args[0], options())
	if err != nil {
		return err
	}
	examples, err := p.RandomExamples(count)
	if err != nil {
		return err
	}
	printExamples(cmd, examples)
	return nil
}

func runFixture(cmd *cobra.Command, args []string) error {
	opts := regexamples.FixtureOptions{
		Options:          options(),
		Pattern:          args[0],
		Name:             fixtureName,
		Package:          fixturePackage,
		OutputFile:       fixtureOutput,
		Random:           fixtureRandom,
		GenerateTestFile: fixtureTest,
	}
	if fixtureOutput == "" {
		return regexamples.RenderFixture(cmd.OutOrStdout(), opts)
	}

	fx, err := regexamples.GenerateFixture(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d examples)\n", fx.OutputFile, len(fx.Examples))
	if fx.TestFile != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", fx.TestFile)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyLimitFlags(cmd, cfg)

	run := func(ctx context.Context, cfg *config.Config) error {
		log := batchLogger(cfg)
		report, err := batch.Run(ctx, cfg, log)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, r := range report.Results {
			fmt.Fprintf(out, "%-24s %5d examples  %s\n", r.Name, r.Examples, r.Output)
		}
		return nil
	}

	err = run(ctx, cfg)
	if !watch {
		return err
	}
	if err != nil {
		logger.Error("initial batch failed", zap.Error(err))
	}
	return batch.Watch(ctx, configPath, batch.DefaultDebounce, logger, func(ctx context.Context, cfg *config.Config) error {
		applyLimitFlags(cmd, cfg)
		return run(ctx, cfg)
	})
}

// applyLimitFlags lets explicit command line limits override the config file.
func applyLimitFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("max-group-results") {
		cfg.Limits.MaxGroupResults = maxGroupResults
	}
	if flags.Changed("max-repeater-variance") {
		cfg.Limits.MaxRepeaterVariance = maxRepeaterVariance
	}
	if flags.Changed("max-results") {
		cfg.Limits.MaxResultsLimit = maxResults
	}
}

// batchLogger raises the log level to the config's unless --verbose was given.
func batchLogger(cfg *config.Config) *zap.Logger {
	if verbose {
		return logger
	}
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil || level <= zapcore.InfoLevel {
		return logger
	}
	return logger.WithOptions(zap.IncreaseLevel(level))
}
