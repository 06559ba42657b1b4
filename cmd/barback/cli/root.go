package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "barback",
		Short: "Schema-driven Notion tools for AI agents",
		Long: `Barback turns declarative Notion database schemas into a full set of typed
query and write tools for AI agents.

Declare your databases once in a YAML file (columns, permissions, named
filters) and Barback derives the whole tool surface from it: get_all,
full-text search, per-filter and per-column lookups, and validated create
and update operations. Tools are served over MCP for agent runtimes and
over plain HTTP for everything else.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./barback.yaml)")
	cmd.PersistentFlags().String("databases", "", "databases declaration file (default: built-in cocktail workspace)")
	viper.BindPFlag("databases_file", cmd.PersistentFlags().Lookup("databases"))

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newDatabasesCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("barback")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.barback")
	}

	viper.SetEnvPrefix("BARBACK")
	viper.AutomaticEnv()
	viper.ReadInConfig() // Ignore error - config file is optional
}
