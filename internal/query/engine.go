package query

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/barbackhq/barback/internal/notion"
	"github.com/barbackhq/barback/internal/schema"
)

// Engine executes schema-driven queries against the remote store. It holds
// no mutable state of its own and is safe for concurrent use; the registry
// it reads is immutable per snapshot.
type Engine struct {
	client   *notion.Client
	registry *schema.Registry
	logger   *slog.Logger
}

// NewEngine creates a query engine bound to a client and registry.
func NewEngine(client *notion.Client, registry *schema.Registry, logger *slog.Logger) *Engine {
	return &Engine{client: client, registry: registry, logger: logger}
}

// All fetches every record of a database, following pagination cursors
// until exhaustion. Records keep the order the remote returns them in.
func (e *Engine) All(ctx context.Context, database string) ([]schema.Record, error) {
	db, err := e.registry.Get(database)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, db, nil)
}

// Named executes one of the schema's predefined filters.
func (e *Engine) Named(ctx context.Context, database, filterName string) ([]schema.Record, error) {
	db, err := e.registry.Get(database)
	if err != nil {
		return nil, err
	}
	spec, ok := db.Filter(filterName)
	if !ok {
		return nil, &InvalidFilterError{
			Database:   database,
			FilterName: filterName,
			Reason:     "no such named filter in schema",
		}
	}
	expr, err := BuildFilter(db, spec)
	if err != nil {
		if ife, ok := err.(*InvalidFilterError); ok {
			ife.FilterName = filterName
		}
		return nil, err
	}
	return e.run(ctx, db, expr)
}

// Query AND-combines a list of ad hoc filters and executes the lookup.
// With no filters it behaves like All.
func (e *Engine) Query(ctx context.Context, database string, filters []schema.FilterSpec) ([]schema.Record, error) {
	db, err := e.registry.Get(database)
	if err != nil {
		return nil, err
	}
	exprs := make([]map[string]any, 0, len(filters))
	for _, spec := range filters {
		expr, err := BuildFilter(db, spec)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return e.run(ctx, db, And(exprs))
}

// Search runs a full-text lookup: a contains filter per textual column,
// OR-combined. This is derived mechanically from the schema; the remote has
// no separate search capability.
func (e *Engine) Search(ctx context.Context, database, term string) ([]schema.Record, error) {
	db, err := e.registry.Get(database)
	if err != nil {
		return nil, err
	}
	textCols := db.TextColumns()
	if len(textCols) == 0 {
		return nil, &InvalidFilterError{
			Database: database,
			Reason:   "schema has no textual columns to search",
		}
	}
	exprs := make([]map[string]any, 0, len(textCols))
	for _, col := range textCols {
		expr, err := BuildFilter(db, schema.FilterSpec{
			ColumnName: col.Name,
			FilterType: schema.FilterContains,
			Value:      term,
		})
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return e.run(ctx, db, Or(exprs))
}

// SearchByColumn builds the single filter appropriate for one column:
// substring contains for textual columns, exact equality for select,
// checkbox, number, and date. String values are coerced for the non-string
// column types, since tool arguments arrive as text.
func (e *Engine) SearchByColumn(ctx context.Context, database, column string, value any) ([]schema.Record, error) {
	db, err := e.registry.Get(database)
	if err != nil {
		return nil, err
	}
	col, ok := db.Column(column)
	if !ok {
		return nil, &InvalidFilterError{
			Database: database,
			Column:   column,
			Reason:   "column does not exist in schema",
		}
	}

	spec := schema.FilterSpec{ColumnName: column, Value: value}
	switch col.Type {
	case schema.TypeSelect, schema.TypeCheckbox, schema.TypeNumber, schema.TypeDate:
		spec.FilterType = schema.FilterEquals
		coerced, err := coerceValue(col.Type, value)
		if err != nil {
			return nil, &InvalidFilterError{Database: database, Column: column, Reason: err.Error()}
		}
		spec.Value = coerced
	default:
		spec.FilterType = schema.FilterContains
	}

	expr, err := BuildFilter(db, spec)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, db, expr)
}

// coerceValue converts a string argument into the native value a checkbox
// or number filter requires. Native values pass through.
func coerceValue(colType schema.ColumnType, value any) (any, error) {
	s, isString := value.(string)
	switch colType {
	case schema.TypeCheckbox:
		if !isString {
			return value, nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("checkbox value %q is not a boolean", s)
		}
		return b, nil
	case schema.TypeNumber:
		if !isString {
			return value, nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("number value %q is not numeric", s)
		}
		return n, nil
	default:
		return value, nil
	}
}

// run executes the paginated query loop. Pagination is sequential by
// design: cursors chain, and reordering pages would break the remote's
// record ordering guarantee.
func (e *Engine) run(ctx context.Context, db *schema.Database, filter map[string]any) ([]schema.Record, error) {
	req := &notion.QueryRequest{PageSize: notion.MaxPageSize}
	if filter != nil {
		req.Filter = filter
	}

	var records []schema.Record
	for {
		resp, err := e.client.QueryDatabase(ctx, db.DatabaseID, req)
		if err != nil {
			return nil, &RemoteQueryError{Database: db.Name, Err: err}
		}
		for _, page := range resp.Results {
			records = append(records, ParseRecord(page, db))
		}
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		req.StartCursor = resp.NextCursor
	}

	e.logger.Debug("query complete", "database", db.Name, "records", len(records))
	return records, nil
}
