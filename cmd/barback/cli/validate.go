package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barbackhq/barback/internal/validate"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <databases.yaml>",
		Short: "Validate a databases declaration file",
		Long: `Run the offline schema checks against a databases declaration file:
title-column cardinality, filter/column compatibility, permission sanity,
and database-id shape. All findings are reported in one pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, path string) error {
	fmt.Fprint(cmd.OutOrStdout(), validate.Report(path))

	if valid, _ := validate.File(path); !valid {
		return fmt.Errorf("%s failed validation", path)
	}
	return nil
}
