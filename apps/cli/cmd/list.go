package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>...",
	Short: "Summarize the networks in files",
	Long: `List the reactions, initial counts and species defined in network files.

Examples:
  marlea list network.crn
  marlea list ./networks/ -v`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitFailure, err)
	}

	out := cmd.OutOrStdout()
	results, failed := parseFiles(files)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error parsing %s: %v\n", r.Path, r.Err)
			continue
		}

		doc := r.Doc
		fmt.Fprintf(out, "\n%s:\n", r.Path)
		fmt.Fprintf(out, "  reactions:      %d\n", len(doc.Reactions()))
		fmt.Fprintf(out, "  species counts: %d\n", len(doc.SpeciesCounts()))
		fmt.Fprintf(out, "  species:        %s\n", strings.Join(doc.Species(), ", "))
		if verbose() {
			for _, rec := range doc.Records {
				switch {
				case rec.Reaction != nil:
					fmt.Fprintf(out, "  - %d: %s\n", rec.Line, rec.Reaction)
				case rec.Species != nil:
					fmt.Fprintf(out, "  - %d: %s\n", rec.Line, rec.Species)
				}
			}
		}
	}

	return parseFailure(failed, len(files))
}
