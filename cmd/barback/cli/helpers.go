package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/barbackhq/barback/internal/config"
	"github.com/barbackhq/barback/internal/notion"
	"github.com/barbackhq/barback/internal/query"
	"github.com/barbackhq/barback/internal/schema"
	"github.com/barbackhq/barback/internal/tools"
	"github.com/barbackhq/barback/internal/write"
)

// EnvNotionToken is the environment variable holding the integration token.
const EnvNotionToken = "BARBACK_NOTION_TOKEN"

// newLogger builds the process logger. Logs go to stderr so stdout stays
// clean for MCP stdio transport and command output.
func newLogger(dev bool) *slog.Logger {
	level := slog.LevelInfo
	if dev {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// databasesFile resolves the declaration file path from the --databases
// flag or the config file. Empty means the built-in workspace.
func databasesFile() string {
	return viper.GetString("databases_file")
}

// loadRegistry loads the database registry from the declaration file, or
// falls back to the built-in cocktail workspace when none is configured.
func loadRegistry(logger *slog.Logger) (*schema.Registry, error) {
	path := databasesFile()
	if path == "" {
		logger.Info("no databases file configured, using built-in workspace")
		return config.Builtin(), nil
	}
	registry, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded databases", "path", path, "count", registry.Len())
	return registry, nil
}

// notionToken resolves the integration token from config or environment.
func notionToken() (string, error) {
	token := viper.GetString("notion.token")
	if token == "" {
		token = os.Getenv(EnvNotionToken)
	}
	if token == "" {
		return "", fmt.Errorf("no Notion token configured; set %s or notion.token in the config file", EnvNotionToken)
	}
	return token, nil
}

// buildToolset wires the full engine stack over a registry and generates
// the tool catalogue.
func buildToolset(registry *schema.Registry, logger *slog.Logger) (*tools.Toolset, error) {
	token, err := notionToken()
	if err != nil {
		return nil, err
	}
	client := notion.NewClient(token, notion.WithLogger(logger))
	queries := query.NewEngine(client, registry, logger)
	writes := write.NewEngine(client, registry, logger)
	return tools.NewToolset(registry, tools.NewGenerator(registry, queries, writes, logger))
}
