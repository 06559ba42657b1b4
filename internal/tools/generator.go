package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/barbackhq/barback/internal/query"
	"github.com/barbackhq/barback/internal/schema"
	"github.com/barbackhq/barback/internal/write"
)

// Tool is one generated operation: its binding, its MCP specification, and
// the dispatcher invocation bound to the engines. The spec and dispatcher
// are built once at generation time; Call is what does the work.
type Tool struct {
	Binding Binding
	Spec    mcp.Tool
	call    func(context.Context, map[string]any) (string, error)
}

// Call invokes the tool with a raw argument mapping, as received from the
// agent runtime.
func (t Tool) Call(ctx context.Context, args map[string]any) (string, error) {
	return t.call(ctx, args)
}

// MCPHandler adapts the tool to the mcp-go handler contract. Invocation
// failures come back as tool-level errors so the LLM can see them and
// self-correct; they do not terminate the session.
func (t Tool) MCPHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := t.call(ctx, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// Generator binds derived tool bindings to the query and write engines.
type Generator struct {
	registry *schema.Registry
	queries  *query.Engine
	writes   *write.Engine
	logger   *slog.Logger
}

// NewGenerator creates a Generator over the given registry and engines.
func NewGenerator(registry *schema.Registry, queries *query.Engine, writes *write.Engine, logger *slog.Logger) *Generator {
	return &Generator{registry: registry, queries: queries, writes: writes, logger: logger}
}

// GenerateAll derives bindings for every registered database and returns
// the complete tool catalogue keyed by tool name. Generating twice over the
// same registry yields the same names and identically-behaving bindings.
func (g *Generator) GenerateAll() (map[string]Tool, error) {
	bindings, err := Derive(g.registry)
	if err != nil {
		return nil, err
	}

	catalogue := make(map[string]Tool, len(bindings))
	for _, b := range bindings {
		db, err := g.registry.Get(b.Database)
		if err != nil {
			return nil, err
		}
		catalogue[b.Name] = Tool{
			Binding: b,
			Spec:    buildSpec(b, db),
			call:    g.dispatcher(b, db),
		}
	}
	g.logger.Info("generated tools", "databases", g.registry.Len(), "tools", len(catalogue))
	return catalogue, nil
}

// dispatcher selects the per-kind invocation for a binding. Each closure
// only captures names and schema references; no work happens until Call.
func (g *Generator) dispatcher(b Binding, db *schema.Database) func(context.Context, map[string]any) (string, error) {
	switch b.Kind {
	case KindQueryAll:
		return func(ctx context.Context, _ map[string]any) (string, error) {
			records, err := g.queries.All(ctx, b.Database)
			if err != nil {
				return "", err
			}
			return formatRecords(records, db), nil
		}
	case KindSearch:
		return func(ctx context.Context, args map[string]any) (string, error) {
			term, ok := args["search_text"].(string)
			if !ok || term == "" {
				return "", fmt.Errorf("missing required parameter %q", "search_text")
			}
			records, err := g.queries.Search(ctx, b.Database, term)
			if err != nil {
				return "", err
			}
			return formatRecords(records, db), nil
		}
	case KindNamedFilter:
		return func(ctx context.Context, _ map[string]any) (string, error) {
			records, err := g.queries.Named(ctx, b.Database, b.FilterName)
			if err != nil {
				return "", err
			}
			return formatRecords(records, db), nil
		}
	case KindColumnSearch:
		return func(ctx context.Context, args map[string]any) (string, error) {
			value, ok := args["value"]
			if !ok || value == nil {
				return "", fmt.Errorf("missing required parameter %q", "value")
			}
			records, err := g.queries.SearchByColumn(ctx, b.Database, b.ColumnName, value)
			if err != nil {
				return "", err
			}
			return formatRecords(records, db), nil
		}
	case KindCreate:
		return func(ctx context.Context, args map[string]any) (string, error) {
			fields := fieldsFromArgs(db, args)
			rec, err := g.writes.Create(ctx, b.Database, fields)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Created %q in %s (record id %s)",
				displayValue(rec[db.PrimaryKeyColumn]), b.Database, rec.ID()), nil
		}
	case KindUpdate:
		return func(ctx context.Context, args map[string]any) (string, error) {
			recordID, _ := args["record_id"].(string)
			if recordID == "" {
				return "", fmt.Errorf("missing required parameter %q", "record_id")
			}
			fields := fieldsFromArgs(db, args)
			if _, err := g.writes.Update(ctx, b.Database, recordID, fields); err != nil {
				return "", err
			}
			return fmt.Sprintf("Updated record %s in %s", recordID, b.Database), nil
		}
	default:
		return func(context.Context, map[string]any) (string, error) {
			return "", fmt.Errorf("unsupported operation kind %q", b.Kind)
		}
	}
}

// fieldsFromArgs maps slugged tool parameters back onto real column names.
func fieldsFromArgs(db *schema.Database, args map[string]any) map[string]any {
	fields := make(map[string]any)
	for _, col := range db.WritableColumns() {
		if value, ok := args[Slug(col.Name)]; ok && value != nil {
			fields[col.Name] = value
		}
	}
	return fields
}

// buildSpec assembles the MCP tool specification for a binding, enumerating
// writable columns as parameters for the write kinds.
func buildSpec(b Binding, db *schema.Database) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(b.Description)}

	switch b.Kind {
	case KindQueryAll, KindNamedFilter:
		opts = append(opts, mcp.WithToolAnnotation(readOnlyAnnotation()))
	case KindSearch:
		opts = append(opts,
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("search_text",
				mcp.Required(),
				mcp.Description("Text to search for across all text columns"),
			),
		)
	case KindColumnSearch:
		col, _ := db.Column(b.ColumnName)
		opts = append(opts,
			mcp.WithToolAnnotation(readOnlyAnnotation()),
			mcp.WithString("value",
				mcp.Required(),
				mcp.Description(fmt.Sprintf("Value to match against the %q column (%s)", col.Name, col.Type)),
			),
		)
	case KindCreate:
		opts = append(opts, mcp.WithToolAnnotation(mutatingAnnotation()))
		for _, col := range db.WritableColumns() {
			opts = append(opts, columnParam(col, col.Required))
		}
	case KindUpdate:
		opts = append(opts,
			mcp.WithToolAnnotation(mutatingAnnotation()),
			mcp.WithString("record_id",
				mcp.Required(),
				mcp.Description("Remote identifier of the record to update"),
			),
		)
		for _, col := range db.WritableColumns() {
			opts = append(opts, columnParam(col, false))
		}
	}

	return mcp.NewTool(b.Name, opts...)
}

// columnParam maps one writable column onto an MCP parameter of the
// matching JSON type, keyed by the column's slug.
func columnParam(col schema.ColumnSpec, required bool) mcp.ToolOption {
	name := Slug(col.Name)
	desc := col.Description
	if desc == "" {
		desc = fmt.Sprintf("Value for the %q column (%s)", col.Name, col.Type)
	}

	var propOpts []mcp.PropertyOption
	if required {
		propOpts = append(propOpts, mcp.Required())
	}
	propOpts = append(propOpts, mcp.Description(desc))

	switch col.Type {
	case schema.TypeCheckbox:
		return mcp.WithBoolean(name, propOpts...)
	case schema.TypeNumber:
		return mcp.WithNumber(name, propOpts...)
	case schema.TypeMultiSelect, schema.TypePeople:
		propOpts = append(propOpts, mcp.WithStringItems())
		return mcp.WithArray(name, propOpts...)
	default:
		return mcp.WithString(name, propOpts...)
	}
}

func readOnlyAnnotation() mcp.ToolAnnotation {
	readOnly := true
	return mcp.ToolAnnotation{ReadOnlyHint: &readOnly}
}

func mutatingAnnotation() mcp.ToolAnnotation {
	readOnly := false
	return mcp.ToolAnnotation{ReadOnlyHint: &readOnly}
}
