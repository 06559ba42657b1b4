// Package validate performs the semantic schema checks the loader does not:
// title-column cardinality, filter/column compatibility, permission sanity,
// and database-id shape. It never fails fast on data problems. Every check
// runs and all findings come back together, so a user fixes a whole schema
// in one round trip.
package validate

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/barbackhq/barback/internal/config"
	"github.com/barbackhq/barback/internal/query"
	"github.com/barbackhq/barback/internal/schema"
)

// Database checks one schema and returns every problem found as a
// human-readable message. An empty slice means the schema is valid.
func Database(db *schema.Database) []string {
	var errs []string

	if strings.TrimSpace(db.Name) == "" {
		errs = append(errs, "database name cannot be empty")
	}
	if msg := checkDatabaseID(db.DatabaseID); msg != "" {
		errs = append(errs, msg)
	}
	if len(db.Columns) == 0 {
		errs = append(errs, "database must declare at least one column")
	}

	errs = append(errs, checkColumns(db)...)
	errs = append(errs, checkPrimaryKey(db)...)
	errs = append(errs, checkFilters(db)...)
	return errs
}

// All validates every database in a registry, returning findings keyed by
// database name. Databases with no findings are omitted. Cross-database
// checks (a column name reused with a different type) report against both
// parties.
func All(registry *schema.Registry) map[string][]string {
	results := make(map[string][]string)
	for _, db := range registry.All() {
		if errs := Database(db); len(errs) > 0 {
			results[db.Name] = errs
		}
	}
	for db, errs := range columnTypeConflicts(registry) {
		results[db] = append(results[db], errs...)
	}
	return results
}

// File loads a configuration document and validates every database in it,
// matching the offline-check entry point agents and the CLI share. The
// error list is empty exactly when the bool is true.
func File(path string) (bool, []string) {
	registry, err := config.Load(path)
	if err != nil {
		return false, []string{err.Error()}
	}
	results := All(registry)
	if len(results) == 0 {
		return true, nil
	}
	var flat []string
	for _, name := range registry.Names() {
		for _, msg := range results[name] {
			flat = append(flat, fmt.Sprintf("database %q: %s", name, msg))
		}
	}
	return false, flat
}

func checkColumns(db *schema.Database) []string {
	var errs []string

	titleCount := 0
	writable := 0
	seen := make(map[string]bool, len(db.Columns))
	for _, col := range db.Columns {
		if col.Permission.CanWrite() {
			writable++
		}
		if strings.TrimSpace(col.Name) == "" {
			errs = append(errs, "column name cannot be empty")
		}
		if col.Name == schema.RecordIDKey || col.Name == schema.RecordURLKey {
			errs = append(errs, fmt.Sprintf("column name %q is reserved", col.Name))
		}
		if seen[col.Name] {
			errs = append(errs, fmt.Sprintf("duplicate column %q", col.Name))
		}
		seen[col.Name] = true

		if col.Type == schema.TypeTitle {
			titleCount++
		}
		if col.Required && !col.Permission.CanWrite() {
			errs = append(errs, fmt.Sprintf(
				"column %q is marked required but its permission %q does not allow writes",
				col.Name, col.Permission))
		}
	}

	switch {
	case titleCount == 0:
		errs = append(errs, "database must have exactly one title column, found none")
	case titleCount > 1:
		errs = append(errs, fmt.Sprintf("database must have exactly one title column, found %d", titleCount))
	}
	if len(db.Columns) > 0 && writable == 0 {
		errs = append(errs, "database has no writable columns; create and update tools will not be generated")
	}
	return errs
}

func checkPrimaryKey(db *schema.Database) []string {
	col, ok := db.Column(db.PrimaryKeyColumn)
	if !ok {
		return []string{fmt.Sprintf("primary key column %q not found in columns", db.PrimaryKeyColumn)}
	}
	switch col.Type {
	case schema.TypeTitle, schema.TypeURL, schema.TypeEmail:
		return nil
	}
	return []string{fmt.Sprintf(
		"primary key column %q has type %s; expected an identifying type (title, url, or email)",
		db.PrimaryKeyColumn, col.Type)}
}

// checkFilters delegates each named filter to the query engine's filter
// builder, so a filter the validator accepts can never be rejected at query
// time (and vice versa).
func checkFilters(db *schema.Database) []string {
	var errs []string
	seen := make(map[string]bool, len(db.Filters))
	for _, f := range db.Filters {
		if seen[f.Name] {
			errs = append(errs, fmt.Sprintf("duplicate filter %q", f.Name))
		}
		seen[f.Name] = true

		if _, err := query.BuildFilter(db, f.Spec); err != nil {
			errs = append(errs, fmt.Sprintf("filter %q: %v", f.Name, err))
		}
	}
	return errs
}

// checkDatabaseID verifies the remote identifier is UUID-shaped, with or
// without dashes. Unexpanded ${VAR} placeholders get their own message
// since they almost always mean a missing environment variable.
func checkDatabaseID(id string) string {
	if id == "" {
		return "database_id is empty"
	}
	if strings.Contains(id, "${") {
		return fmt.Sprintf("database_id %q contains an unexpanded environment variable", id)
	}
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) != 32 {
		return fmt.Sprintf("database_id %q is not a valid remote identifier", id)
	}
	canonical := strings.Join([]string{
		compact[0:8], compact[8:12], compact[12:16], compact[16:20], compact[20:32],
	}, "-")
	if _, err := uuid.Parse(canonical); err != nil {
		return fmt.Sprintf("database_id %q is not a valid remote identifier", id)
	}
	return ""
}

// columnTypeConflicts finds column names that appear in multiple databases
// with different types. Cross-database reuse of a name is fine; reuse with
// a different type is treated as a configuration mistake.
func columnTypeConflicts(registry *schema.Registry) map[string][]string {
	type owner struct {
		db      string
		colType schema.ColumnType
	}
	firstSeen := make(map[string]owner)
	conflicts := make(map[string][]string)

	for _, db := range registry.All() {
		for _, col := range db.Columns {
			prev, ok := firstSeen[col.Name]
			if !ok {
				firstSeen[col.Name] = owner{db: db.Name, colType: col.Type}
				continue
			}
			if prev.colType != col.Type {
				msg := fmt.Sprintf(
					"column %q has type %s here but type %s in database %q",
					col.Name, col.Type, prev.colType, prev.db)
				conflicts[db.Name] = append(conflicts[db.Name], msg)
			}
		}
	}
	return conflicts
}
