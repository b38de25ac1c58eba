package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/nadaso8/MARlea-parser/packages/core/parser"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file|directory>...",
	Short: "Rewrite network files in canonical form",
	Long: `Print network files in canonical form: one record per line, explicit
coefficients, single spaces, no comments or stray commas.

Examples:
  marlea fmt network.crn
  marlea fmt -l ./networks/
  marlea fmt -w ./networks/`,
	Args: cobra.MinimumNArgs(1),
	RunE: fmtCommand,
}

var (
	fmtWriteFlag bool
	fmtListFlag  bool
)

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWriteFlag, "write", "w", false, "Write the result back to the source file")
	fmtCmd.Flags().BoolVarP(&fmtListFlag, "list", "l", false, "List files whose formatting differs")
}

func fmtCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitFailure, err)
	}

	out := cmd.OutOrStdout()
	results, failed := parseFiles(files)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", r.Path, r.Err)
			continue
		}

		formatted := []byte(parser.Format(r.Doc))
		if !fmtWriteFlag && !fmtListFlag {
			_, _ = out.Write(formatted)
			continue
		}

		src, err := os.ReadFile(r.Path)
		if err != nil {
			return withExitCode(ExitFailure, err)
		}
		if bytes.Equal(src, formatted) {
			continue
		}
		if fmtListFlag {
			fmt.Fprintln(out, r.Path)
		}
		if fmtWriteFlag {
			if err := writeFile(r.Path, formatted); err != nil {
				return withExitCode(ExitFailure, err)
			}
		}
	}

	return parseFailure(failed, len(files))
}

// writeFile replaces path keeping its permissions
func writeFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}
