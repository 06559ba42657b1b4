package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDatabasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "databases",
		Short: "List the configured databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatabases(cmd)
		},
	}
	return cmd
}

func runDatabases(cmd *cobra.Command) error {
	logger := newLogger(false)
	registry, err := loadRegistry(logger)
	if err != nil {
		return fmt.Errorf("load databases: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLUMNS\tFILTERS\tPRIMARY KEY\tDESCRIPTION")
	for _, db := range registry.All() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			db.Name, len(db.Columns), len(db.Filters), db.PrimaryKeyColumn, db.Description)
	}
	return w.Flush()
}
