package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerTools registers the discovery tools plus every generated database
// tool on the given server. Legacy aliases get their own registration with
// the alias name so old agent configurations resolve.
func (s *MCPServer) registerTools(srv *server.MCPServer) {

	// ----- Discovery tools -----

	srv.AddTool(
		mcp.NewTool("list_databases",
			mcp.WithDescription(
				"List all configured Notion databases. Returns each database's "+
					"name, description, columns, and named filters. Use this first to "+
					"discover what data is available and which tools exist for it.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
		),
		s.handleListDatabases,
	)

	srv.AddTool(
		mcp.NewTool("describe_database",
			mcp.WithDescription(
				"Get the detailed schema for one configured database, including all "+
					"columns with their types and permissions, the primary key column, "+
					"and any named filters. Use this to understand what a database's "+
					"generated tools accept.",
			),
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("database",
				mcp.Required(),
				mcp.Description("Name of the configured database to describe"),
			),
		),
		s.handleDescribeDatabase,
	)

	srv.AddTool(
		mcp.NewTool("add_database",
			mcp.WithDescription(
				"Register a new Notion database at runtime from a YAML declaration "+
					"and generate tools for it. The declaration uses the same shape as "+
					"an entry in the databases configuration file: database_id, columns "+
					"with type and permission, optional filters.",
			),
			mcp.WithToolAnnotation(mutatingAnnotation()),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name for the new database (used in generated tool names)"),
			),
			mcp.WithString("declaration",
				mcp.Required(),
				mcp.Description("YAML document describing the database schema"),
			),
		),
		s.handleAddDatabase,
	)

	// ----- Generated database tools -----

	s.registerGenerated(srv)
}

// registerGenerated registers every tool in the current catalogue that has
// not been registered yet. Called at startup and again after runtime
// database registration.
func (s *MCPServer) registerGenerated(srv *server.MCPServer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registered == nil {
		s.registered = make(map[string]bool)
	}

	for _, tool := range s.toolset.Tools() {
		if s.registered[tool.Spec.Name] {
			continue
		}
		srv.AddTool(tool.Spec, tool.MCPHandler())
		s.registered[tool.Spec.Name] = true
	}

	for alias, target := range s.toolset.Aliases() {
		if s.registered[alias] {
			continue
		}
		tool, ok := s.toolset.Get(alias)
		if !ok {
			continue
		}
		spec := tool.Spec
		spec.Name = alias
		spec.Description = fmt.Sprintf("%s (alias for %s)", spec.Description, target)
		srv.AddTool(spec, tool.MCPHandler())
		s.registered[alias] = true
	}
}

// =========================================================================
// Discovery tool handlers
// =========================================================================

// handleListDatabases returns all configured databases with column and
// filter summaries.
func (s *MCPServer) handleListDatabases(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	type columnSummary struct {
		Name       string `json:"name"`
		Type       string `json:"type"`
		Permission string `json:"permission"`
		Required   bool   `json:"required,omitempty"`
	}

	type databaseInfo struct {
		Name        string          `json:"name"`
		Description string          `json:"description,omitempty"`
		PrimaryKey  string          `json:"primary_key"`
		Columns     []columnSummary `json:"columns"`
		Filters     []string        `json:"filters,omitempty"`
	}

	databases := s.registry.All()
	items := make([]databaseInfo, len(databases))
	for i, db := range databases {
		cols := make([]columnSummary, len(db.Columns))
		for j, c := range db.Columns {
			cols[j] = columnSummary{
				Name:       c.Name,
				Type:       string(c.Type),
				Permission: string(c.Permission),
				Required:   c.Required,
			}
		}
		filters := make([]string, len(db.Filters))
		for j, f := range db.Filters {
			filters[j] = f.Name
		}
		items[i] = databaseInfo{
			Name:        db.Name,
			Description: db.Description,
			PrimaryKey:  db.PrimaryKeyColumn,
			Columns:     cols,
			Filters:     filters,
		}
	}

	return successJSON(items)
}

// handleDescribeDatabase returns the full schema for one database.
func (s *MCPServer) handleDescribeDatabase(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	name, err := requireString(request, "database")
	if err != nil {
		return toolError("%v. Available databases: %v", err, s.registry.Names())
	}

	db, err := s.registry.Get(name)
	if err != nil {
		return toolError("Database %q not found. Available databases: %v",
			name, s.registry.Names())
	}

	return successJSON(db)
}

// handleAddDatabase registers a database declared as YAML and regenerates
// the catalogue, registering any new tools on the live server.
func (s *MCPServer) handleAddDatabase(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {

	name, err := requireString(request, "name")
	if err != nil {
		return toolError("%v", err)
	}
	declaration, err := requireString(request, "declaration")
	if err != nil {
		return toolError("%v", err)
	}

	if err := s.toolset.AddDatabase(name, []byte(declaration)); err != nil {
		return toolError("Failed to register database %q: %v", name, err)
	}

	s.registerGenerated(s.server)
	s.logger.Info("registered database at runtime", "database", name)

	return successJSON(map[string]any{
		"database": name,
		"tools":    s.toolset.Names(),
	})
}
