package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barbackhq/barback/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
		rpm  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Barback HTTP server",
		Long: "Start the HTTP server that exposes database discovery, the generated\n" +
			"tool catalogue, tool invocation, and offline schema validation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, dev, rpm)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging)")
	cmd.Flags().IntVar(&rpm, "rpm", 120, "Tool invocation rate limit per minute per IP (0 disables)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(host string, port int, dev bool, rpm int) error {
	logger := newLogger(dev)

	registry, err := loadRegistry(logger)
	if err != nil {
		return fmt.Errorf("load databases: %w", err)
	}

	toolset, err := buildToolset(registry, logger)
	if err != nil {
		return fmt.Errorf("generate tools: %w", err)
	}

	srvCfg := server.Config{
		Host:              host,
		Port:              port,
		ShutdownTimeout:   30 * time.Second,
		CORSOrigins:       []string{"*"},
		RequestsPerMinute: rpm,
		UpstreamPerMinute: server.DefaultConfig().UpstreamPerMinute,
		MaxBodySize:       1 * 1024 * 1024,
	}
	srv := server.New(srvCfg, registry, toolset, logger)

	fmt.Printf("→ Barback\n")
	fmt.Printf("→ Listening on http://%s:%d\n", host, port)
	fmt.Printf("→ Tools:   http://%s:%d/api/v1/tools\n", host, port)
	fmt.Printf("→ Health:  http://%s:%d/healthz\n", host, port)
	fmt.Printf("→ Databases: %d, tools: %d\n", registry.Len(), toolset.Len())
	fmt.Println()

	return srv.ListenAndServe()
}
