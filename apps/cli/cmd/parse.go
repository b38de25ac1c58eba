package cmd

import (
	"fmt"
	"time"

	"github.com/nadaso8/MARlea-parser/packages/output"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|directory>...",
	Short: "Parse network files and print the result",
	Long: `Parse reaction network files and print their records.

Examples:
  marlea parse network.crn
  marlea parse ./networks/ -o json
  marlea parse network.crn -o yaml --output-file network.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: parseCommand,
}

var (
	outputFlag     string
	outputFileFlag string
)

func init() {
	parseCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("MARLEA_OUTPUT", ""), "Output format: console, json, yaml, text, tap (env: MARLEA_OUTPUT)")
	parseCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("MARLEA_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: MARLEA_OUTPUT_FILE)")
}

func parseCommand(cmd *cobra.Command, args []string) error {
	format := outputFlag
	if format == "" {
		format = cfg.Output
	}
	outPath := outputFileFlag
	if outPath == "" {
		outPath = cfg.OutputFile
	}

	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitFailure, err)
	}

	w, closeOutput, err := openOutput(outPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = closeOutput() }()

	formatter, err := output.NewFormatter(format, w, verbose(), noColor())
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	start := time.Now()
	formatter.FormatHeader(version)
	results, failed := parseFiles(files)
	for _, r := range results {
		if r.Err != nil {
			formatter.FormatError(r.Path, r.Err)
			continue
		}
		formatter.FormatDocument(r.Doc)
	}

	if flushable, ok := formatter.(output.Flushable); ok {
		if err := flushable.Flush(time.Since(start)); err != nil {
			return withExitCode(ExitFailure, fmt.Errorf("error writing output: %w", err))
		}
	}

	return parseFailure(failed, len(files))
}
