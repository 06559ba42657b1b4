package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/barbackhq/barback/internal/tools"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools derived from the configured databases",
		Long: `Enumerate the tool catalogue without contacting Notion: what each
database generates, plus any legacy aliases in effect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTools(cmd)
		},
	}
	return cmd
}

func runTools(cmd *cobra.Command) error {
	logger := newLogger(false)
	registry, err := loadRegistry(logger)
	if err != nil {
		return fmt.Errorf("load databases: %w", err)
	}

	bindings, err := tools.Derive(registry)
	if err != nil {
		return fmt.Errorf("derive tools: %w", err)
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Name < bindings[j].Name })

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tKIND\tDATABASE")
	for _, b := range bindings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, b.Kind, b.Database)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	aliases := activeAliases(bindings)
	if len(aliases) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nLegacy aliases:")
		for _, alias := range aliases {
			target, _ := tools.ResolveAlias(alias)
			fmt.Fprintf(cmd.OutOrStdout(), "  %s -> %s\n", alias, target)
		}
	}
	return nil
}

// activeAliases returns the sorted legacy alias names whose targets exist
// in the derived catalogue.
func activeAliases(bindings []tools.Binding) []string {
	derived := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		derived[b.Name] = true
	}
	var active []string
	for _, alias := range tools.LegacyAliasNames() {
		if target, ok := tools.ResolveAlias(alias); ok && derived[target] {
			active = append(active, alias)
		}
	}
	sort.Strings(active)
	return active
}
