package cmd

import (
	"fmt"

	"github.com/nadaso8/MARlea-parser/packages/core/parser"
	"github.com/nadaso8/MARlea-parser/packages/output"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var queryCmd = &cobra.Command{
	Use:   "query <file> <path>",
	Short: "Query a parsed network with a gjson path",
	Long: `Parse a network file and evaluate a gjson path against its JSON form.

Examples:
  marlea query network.crn 'reactions.#'
  marlea query network.crn 'reactions.0.rate'
  marlea query network.crn 'speciesCounts.#(species=="A").count'
  marlea query network.crn species`,
	Args: cobra.ExactArgs(2),
	RunE: queryCommand,
}

func queryCommand(cmd *cobra.Command, args []string) error {
	doc, err := parser.ParseFile(args[0])
	if err != nil {
		return withExitCode(ExitParseError, err)
	}

	result, err := output.Query(doc, args[1])
	if err != nil {
		return withExitCode(ExitFailure, err)
	}

	if result.Type == gjson.String {
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), result.Raw)
	}
	return nil
}
