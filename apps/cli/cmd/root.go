package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/nadaso8/MARlea-parser/packages/core/config"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag  string
	noColorFlag bool
	verboseFlag bool

	// cfg is loaded before every command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "marlea",
	Short: "Parse and check MARlea reaction network files.",
	Long: `marlea reads the line-oriented reaction network format used by the
MARlea simulator: reactions like "2 A + B => C, 5" and initial species
counts like "A, 100".`,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	os.Exit(run(os.Args[1:]))
}

// run executes the command tree and maps the error to an exit code
func run(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsageError
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// Arguments were validated by now; later errors are not usage errors.
	cmd.SilenceUsage = true

	loaded, err := config.LoadConfig(configFlag)
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}
	cfg = loaded
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("MARLEA_CONFIG", ""), "Path to config file (env: MARLEA_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("MARLEA_NO_COLOR", false), "Disable colored output (env: MARLEA_NO_COLOR)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}
