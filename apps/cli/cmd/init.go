package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nadaso8/MARlea-parser/packages/core/config"
	"github.com/nadaso8/MARlea-parser/packages/output"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Write a marlea config file",
	Long: `Write a .marlea.yaml with the default settings, overridden by any flags
given here.

Examples:
  marlea init
  marlea init ./networks --output json --db sqlite://networks.db
  marlea init --extensions .crn,.rxn --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: initCommand,
}

var (
	forceInit      bool
	initOutput     string
	initDatabase   string
	initExtensions []string
)

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")
	initCmd.Flags().StringVar(&initOutput, "output", "", "Default output format")
	initCmd.Flags().StringVar(&initDatabase, "db", "", "Default database connection string")
	initCmd.Flags().StringSliceVar(&initExtensions, "extensions", nil, "Network file extensions")
}

func initCommand(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, config.ConfigFilenames[0])

	if !forceInit {
		if _, err := os.Stat(path); err == nil {
			return withExitCode(ExitConfigError, fmt.Errorf("file already exists: %s (use --force to overwrite)", path))
		}
	}

	overrides := &config.Config{
		Output:     initOutput,
		Database:   initDatabase,
		Extensions: initExtensions,
	}
	if cmd.Flags().Changed("verbose") {
		overrides.Verbose = config.BoolPtr(verboseFlag)
	}
	if cmd.Flags().Changed("no-color") {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	c := config.DefaultConfig().Merge(overrides)

	if _, err := output.NewFormatter(c.Output, io.Discard, false, true); err != nil {
		return withExitCode(ExitConfigError, err)
	}
	if err := c.SaveConfig(path); err != nil {
		return withExitCode(ExitFailure, fmt.Errorf("failed to create config file: %w", err))
	}

	note := ""
	if c.IsDefault() {
		note = " (defaults)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s%s\n", path, note)
	return nil
}
