package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nadaso8/MARlea-parser/packages/bench"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench <file|directory>...",
	Short: "Measure parser throughput",
	Long: `Parse network files repeatedly and report latency percentiles.

Examples:
  marlea bench network.crn
  marlea bench ./networks/ -n 10000 -c 8
  marlea bench network.crn --rate 500 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: benchCommand,
}

var (
	benchIterationsFlag  int
	benchConcurrencyFlag int
	benchRateFlag        float64
	benchJSONFlag        bool
)

func init() {
	benchCmd.Flags().IntVarP(&benchIterationsFlag, "iterations", "n", getEnvInt("MARLEA_BENCH_ITERATIONS", 0), "Parses per file (default from config: 1000) (env: MARLEA_BENCH_ITERATIONS)")
	benchCmd.Flags().IntVarP(&benchConcurrencyFlag, "concurrency", "c", getEnvInt("MARLEA_BENCH_CONCURRENCY", 0), "Number of parser workers (default from config: 1) (env: MARLEA_BENCH_CONCURRENCY)")
	benchCmd.Flags().Float64VarP(&benchRateFlag, "rate", "r", 0, "Maximum parses per second, 0 for unlimited")
	benchCmd.Flags().BoolVar(&benchJSONFlag, "json", false, "Output results as JSON")
}

func benchCommand(cmd *cobra.Command, args []string) error {
	benchCfg, err := buildBenchConfig()
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitFailure, err)
	}

	inputs := make([]bench.Input, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return withExitCode(ExitFailure, err)
		}
		inputs = append(inputs, bench.Input{Name: file, Content: string(data)})
	}

	runner, err := bench.NewRunner(benchCfg)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	reporter := bench.NewReporter(
		bench.WithWriter(cmd.OutOrStdout()),
		bench.WithNoColor(noColor()),
		bench.WithVerbose(verbose()),
	)
	if !benchJSONFlag {
		reporter.Header(version, len(inputs), benchCfg)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, runErr := runner.Run(ctx, inputs)
	if summary == nil {
		return withExitCode(ExitFailure, runErr)
	}
	if runErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "benchmark stopped early: %v\n", runErr)
	}

	if benchJSONFlag {
		if err := reporter.JSONSummary(summary); err != nil {
			return withExitCode(ExitFailure, err)
		}
	} else {
		reporter.Summary(summary)
	}

	if summary.Errors > 0 {
		return withExitCode(ExitParseError, fmt.Errorf("%d parses failed", summary.Errors))
	}
	return nil
}

// buildBenchConfig layers flags over the config file
func buildBenchConfig() (*bench.Config, error) {
	c := &bench.Config{
		Iterations:  cfg.Bench.Iterations,
		Concurrency: cfg.Bench.Concurrency,
		Rate:        cfg.Bench.Rate,
	}
	if benchIterationsFlag > 0 {
		c.Iterations = benchIterationsFlag
	}
	if benchConcurrencyFlag > 0 {
		c.Concurrency = benchConcurrencyFlag
	}
	if benchRateFlag > 0 {
		c.Rate = benchRateFlag
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bench settings: %w", err)
	}
	return c, nil
}
