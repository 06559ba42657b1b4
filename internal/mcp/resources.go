package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerResources adds MCP resource definitions to the server. Resources
// provide read-only data that LLM clients can load into their context.
func (s *MCPServer) registerResources(srv *server.MCPServer) {

	// barback://databases: list of all configured databases.
	srv.AddResource(
		mcp.NewResource(
			"barback://databases",
			"Configured Notion Databases",
			mcp.WithResourceDescription(
				"List of all Notion databases configured in Barback, "+
					"including their columns and named filters.",
			),
			mcp.WithMIMEType("application/json"),
		),
		s.handleDatabasesResource,
	)

	// barback://schema/{database}: full schema for one database.
	srv.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"barback://schema/{database}",
			"Database Schema",
			mcp.WithTemplateDescription(
				"Full schema declaration for one configured database, "+
					"including columns with types and permissions, the primary key, "+
					"and named filters.",
			),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleSchemaResource,
	)
}

// handleDatabasesResource returns a JSON list of all configured databases.
func (s *MCPServer) handleDatabasesResource(
	ctx context.Context,
	request mcp.ReadResourceRequest,
) ([]mcp.ResourceContents, error) {

	b, err := json.MarshalIndent(s.registry.All(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal databases: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "barback://databases",
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}

// handleSchemaResource returns the schema declaration for one database.
func (s *MCPServer) handleSchemaResource(
	ctx context.Context,
	request mcp.ReadResourceRequest,
) ([]mcp.ResourceContents, error) {

	// Extract the database name from "barback://schema/{database}".
	uri := request.Params.URI
	name := strings.TrimPrefix(uri, "barback://schema/")
	if name == "" || name == uri {
		return nil, fmt.Errorf("invalid schema URI %q: expected barback://schema/{database}", uri)
	}

	db, err := s.registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("database %q not found: %w (available: %v)",
			name, err, s.registry.Names())
	}

	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}
