package mcp

import (
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/barbackhq/barback/internal/schema"
	"github.com/barbackhq/barback/internal/tools"
)

// MCPServer wraps the mcp-go server with the generated database tools and
// the discovery surface. Every configured database contributes its derived
// tools; legacy aliases are registered alongside so older agent prompts
// keep working.
type MCPServer struct {
	toolset  *tools.Toolset
	registry *schema.Registry
	logger   *slog.Logger
	server   *server.MCPServer

	mu         sync.Mutex
	registered map[string]bool
}

// NewMCPServer creates an MCPServer pre-loaded with the full tool catalogue
// and resources. The returned server is ready to serve over stdio or HTTP.
func NewMCPServer(toolset *tools.Toolset, registry *schema.Registry, logger *slog.Logger) *MCPServer {
	s := &MCPServer{
		toolset:  toolset,
		registry: registry,
		logger:   logger,
	}

	mcpServer := server.NewMCPServer(
		"Barback Notion Tools",
		"0.1.0",
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.server = mcpServer
	return s
}

// Server returns the underlying mcp-go MCPServer instance. Useful for
// advanced configuration or testing.
func (s *MCPServer) Server() *server.MCPServer {
	return s.server
}

// ServeStdio starts the MCP server in stdio mode. This is the primary
// integration path for MCP clients that launch the server as a subprocess.
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server in stdio mode")
	return server.ServeStdio(s.server)
}

// ServeHTTP starts the MCP server in Streamable HTTP mode, listening on
// the given address (e.g. ":3001"). This is suitable for remote MCP clients.
func (s *MCPServer) ServeHTTP(addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.server)
	s.logger.Info("MCP HTTP server starting", "addr", addr)
	return httpServer.Start(addr)
}

func readOnlyAnnotation() mcp.ToolAnnotation {
	return mcp.ToolAnnotation{
		ReadOnlyHint: boolPtr(true),
	}
}

func mutatingAnnotation() mcp.ToolAnnotation {
	return mcp.ToolAnnotation{
		ReadOnlyHint: boolPtr(false),
	}
}

func boolPtr(b bool) *bool {
	return &b
}
