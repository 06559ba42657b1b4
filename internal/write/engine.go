// Package write validates field mappings against a database's column
// permissions and types, then issues create and update calls against the
// remote store. All validation happens before any network I/O.
package write

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/barbackhq/barback/internal/notion"
	"github.com/barbackhq/barback/internal/query"
	"github.com/barbackhq/barback/internal/schema"
)

// Engine executes schema-validated writes. Safe for concurrent use.
type Engine struct {
	client   *notion.Client
	registry *schema.Registry
	logger   *slog.Logger
}

// NewEngine creates a write engine bound to a client and registry.
func NewEngine(client *notion.Client, registry *schema.Registry, logger *slog.Logger) *Engine {
	return &Engine{client: client, registry: registry, logger: logger}
}

// Create validates fields against the schema and creates a new record.
// Every required writable column must be present.
func (e *Engine) Create(ctx context.Context, database string, fields map[string]any) (schema.Record, error) {
	db, err := e.registry.Get(database)
	if err != nil {
		return nil, err
	}
	properties, err := e.buildPayload(db, fields, true)
	if err != nil {
		return nil, err
	}

	page, err := e.client.CreatePage(ctx, db.DatabaseID, properties)
	if err != nil {
		return nil, &RemoteWriteError{Database: database, Err: err}
	}
	e.logger.Info("record created", "database", database, "record_id", page.ID)
	return query.ParseRecord(*page, db), nil
}

// Update validates fields and patches an existing record. Partial updates
// are legal: required columns need not be present.
func (e *Engine) Update(ctx context.Context, database, recordID string, fields map[string]any) (schema.Record, error) {
	db, err := e.registry.Get(database)
	if err != nil {
		return nil, err
	}
	if recordID == "" {
		return nil, &ValidationError{Database: database, Issues: []Issue{
			{Column: db.PrimaryKeyColumn, Reason: "record id is required for updates"},
		}}
	}
	properties, err := e.buildPayload(db, fields, false)
	if err != nil {
		return nil, err
	}

	page, err := e.client.UpdatePage(ctx, recordID, properties)
	if err != nil {
		return nil, remoteWriteError(database, recordID, err)
	}
	e.logger.Info("record updated", "database", database, "record_id", recordID)
	return query.ParseRecord(*page, db), nil
}

// Archive soft-deletes a record. The remote store has no hard delete.
func (e *Engine) Archive(ctx context.Context, database, recordID string) error {
	if _, err := e.registry.Get(database); err != nil {
		return err
	}
	if _, err := e.client.ArchivePage(ctx, recordID); err != nil {
		return remoteWriteError(database, recordID, err)
	}
	e.logger.Info("record archived", "database", database, "record_id", recordID)
	return nil
}

// BulkCreate creates multiple records, continuing past individual failures
// so one bad row does not abandon the batch. It returns the successfully
// created records and a joined error for the failures, if any.
func (e *Engine) BulkCreate(ctx context.Context, database string, rows []map[string]any) ([]schema.Record, error) {
	created := make([]schema.Record, 0, len(rows))
	var failures []error
	for i, fields := range rows {
		rec, err := e.Create(ctx, database, fields)
		if err != nil {
			failures = append(failures, fmt.Errorf("record %d: %w", i+1, err))
			continue
		}
		created = append(created, rec)
	}
	return created, errors.Join(failures...)
}

// buildPayload runs the full pre-I/O validation pass and, on success,
// serializes the fields into property payloads. All problems are gathered
// before failing so the caller sees the complete picture.
func (e *Engine) buildPayload(db *schema.Database, fields map[string]any, requireRequired bool) (map[string]any, error) {
	// Reject read-only columns outright before shape checking.
	for name := range fields {
		col, ok := db.Column(name)
		if ok && !col.Permission.CanWrite() {
			return nil, &PermissionError{Database: db.Name, Column: name}
		}
	}

	var issues []Issue

	if requireRequired {
		for _, col := range db.RequiredColumns() {
			if v, ok := fields[col.Name]; !ok || v == nil {
				issues = append(issues, Issue{Column: col.Name, Reason: "required column is missing"})
			}
		}
	}

	// Walking columns in declaration order keeps issue ordering stable.
	properties := make(map[string]any, len(fields))
	for _, col := range db.Columns {
		value, ok := fields[col.Name]
		if !ok || value == nil {
			continue
		}
		if reason := checkValue(col, value); reason != "" {
			issues = append(issues, Issue{Column: col.Name, Reason: reason})
			continue
		}
		properties[col.Name] = buildProperty(col, value)
	}
	var unknown []string
	for name := range fields {
		if _, ok := db.Column(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		issues = append(issues, Issue{Column: name, Reason: "column does not exist in schema"})
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Database: db.Name, Issues: issues}
	}
	if len(properties) == 0 {
		return nil, &ValidationError{Database: db.Name, Issues: []Issue{
			{Column: db.PrimaryKeyColumn, Reason: "no writable fields provided"},
		}}
	}
	return properties, nil
}

func remoteWriteError(database, recordID string, err error) error {
	wErr := &RemoteWriteError{Database: database, RecordID: recordID, Err: err}
	var apiErr *notion.APIError
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		wErr.NotFound = true
	}
	return wErr
}
