package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nadaso8/MARlea-parser/packages/db"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file|directory]...",
	Short: "Store parsed networks in a database",
	Long: `Parse network files and store them in a SQLite database. Every file
gets a new document ID; files that fail to parse are not stored.

Examples:
  marlea export ./networks/ --db sqlite://networks.db
  marlea export --db sqlite://networks.db --stored
  marlea export --db sqlite://networks.db --sql "SELECT species, SUM(coefficient) FROM terms GROUP BY species"`,
	RunE: exportCommand,
}

var (
	dbFlag     string
	storedFlag bool
	sqlFlag    string
)

func init() {
	exportCmd.Flags().StringVar(&dbFlag, "db", getEnvString("MARLEA_DB", ""), "Database connection string, e.g. sqlite://networks.db (env: MARLEA_DB)")
	exportCmd.Flags().BoolVar(&storedFlag, "stored", false, "List the stored documents instead of exporting")
	exportCmd.Flags().StringVar(&sqlFlag, "sql", "", "Run a SQL query against the store instead of exporting")
	exportCmd.MarkFlagsMutuallyExclusive("stored", "sql")
}

func exportCommand(cmd *cobra.Command, args []string) error {
	conn := dbFlag
	if conn == "" {
		conn = cfg.Database
	}
	if conn == "" {
		return withExitCode(ExitConfigError, fmt.Errorf("no database configured: use --db or MARLEA_DB"))
	}
	if len(args) == 0 && !storedFlag && sqlFlag == "" {
		return withExitCode(ExitUsageError, fmt.Errorf("export needs at least one file or directory"))
	}

	client, err := db.NewClient(conn)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	defer client.Close()

	if storedFlag {
		return listStored(cmd, client)
	}
	if sqlFlag != "" {
		return runSQL(cmd, client, sqlFlag)
	}

	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitFailure, err)
	}

	results, failed := parseFiles(files)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", r.Path, r.Err)
			continue
		}
		id, err := client.SaveDocument(cmd.Context(), r.Doc)
		if err != nil {
			return withExitCode(ExitFailure, fmt.Errorf("storing %s: %w", r.Path, err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", id, r.Path)
	}

	return parseFailure(failed, len(files))
}

func listStored(cmd *cobra.Command, client *db.Client) error {
	infos, err := client.ListDocuments(cmd.Context())
	if err != nil {
		return withExitCode(ExitFailure, err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATH\tRECORDS\tCREATED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", info.ID, info.Path, info.Records, info.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func runSQL(cmd *cobra.Command, client *db.Client, query string) error {
	result, err := client.Query(query)
	if err != nil {
		return withExitCode(ExitFailure, err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(result.Columns, "\t")))
	for _, row := range result.Rows {
		cells := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			if v := row[col]; v != nil {
				cells[i] = fmt.Sprint(v)
			} else {
				cells[i] = "NULL"
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
