// Package tools derives the catalogue of named agent operations from a
// schema registry. Derivation is an explicit build step: it produces small
// binding descriptors consumed by one dispatcher per operation kind, rather
// than synthesizing a bespoke closure per tool. Generation performs no I/O;
// everything network-facing is deferred to invocation.
package tools

import (
	"fmt"
	"strings"

	"github.com/barbackhq/barback/internal/config"
	"github.com/barbackhq/barback/internal/schema"
)

// Kind identifies the operation a binding dispatches to.
type Kind string

const (
	KindQueryAll     Kind = "query_all"
	KindSearch       Kind = "search"
	KindNamedFilter  Kind = "named_filter"
	KindColumnSearch Kind = "column_search"
	KindCreate       Kind = "create"
	KindUpdate       Kind = "update"
)

// Binding names one derived tool and records what it is bound to: the
// database, and for filter and column-search kinds, the filter or column.
type Binding struct {
	Name        string
	Kind        Kind
	Database    string
	FilterName  string // set for KindNamedFilter
	ColumnName  string // set for KindColumnSearch
	Description string
}

// Derive enumerates every database in the registry and mechanically derives
// its tool bindings:
//
//	get_all_{db}              query with no filters
//	search_{db}               full-text search across textual columns
//	get_{db}_{filter}         one per named filter
//	search_{db}_by_{column}   one per column
//	create_{db}_record        only when a writable column exists
//	update_{db}_record        same condition
//
// Tool names must be unique across the whole registry; a collision is a
// configuration error at derivation time, not at call time.
func Derive(registry *schema.Registry) ([]Binding, error) {
	var bindings []Binding
	owners := make(map[string]string) // tool name -> database

	add := func(b Binding) error {
		if prev, taken := owners[b.Name]; taken {
			return &config.ConfigurationError{
				Database: b.Database,
				Reason: fmt.Sprintf("derived tool name %q collides with a tool of database %q",
					b.Name, prev),
			}
		}
		owners[b.Name] = b.Database
		bindings = append(bindings, b)
		return nil
	}

	for _, db := range registry.All() {
		label := db.Description
		if label == "" {
			label = db.Name
		}

		if err := add(Binding{
			Name:        "get_all_" + db.Name,
			Kind:        KindQueryAll,
			Database:    db.Name,
			Description: fmt.Sprintf("Get all records from %s.", label),
		}); err != nil {
			return nil, err
		}
		if err := add(Binding{
			Name:        "search_" + db.Name,
			Kind:        KindSearch,
			Database:    db.Name,
			Description: fmt.Sprintf("Full-text search across all text columns of %s.", label),
		}); err != nil {
			return nil, err
		}

		for _, f := range db.Filters {
			desc := f.Spec.Description
			if desc == "" {
				desc = fmt.Sprintf("Records of %s matching the %q filter.", label, f.Name)
			}
			if err := add(Binding{
				Name:        fmt.Sprintf("get_%s_%s", db.Name, f.Name),
				Kind:        KindNamedFilter,
				Database:    db.Name,
				FilterName:  f.Name,
				Description: desc,
			}); err != nil {
				return nil, err
			}
		}

		for _, col := range db.Columns {
			if err := add(Binding{
				Name:        fmt.Sprintf("search_%s_by_%s", db.Name, Slug(col.Name)),
				Kind:        KindColumnSearch,
				Database:    db.Name,
				ColumnName:  col.Name,
				Description: fmt.Sprintf("Search %s by the %q column.", label, col.Name),
			}); err != nil {
				return nil, err
			}
		}

		if len(db.WritableColumns()) > 0 {
			if err := add(Binding{
				Name:        fmt.Sprintf("create_%s_record", db.Name),
				Kind:        KindCreate,
				Database:    db.Name,
				Description: fmt.Sprintf("Create a new record in %s.", label),
			}); err != nil {
				return nil, err
			}
			if err := add(Binding{
				Name:        fmt.Sprintf("update_%s_record", db.Name),
				Kind:        KindUpdate,
				Database:    db.Name,
				Description: fmt.Sprintf("Update an existing record in %s.", label),
			}); err != nil {
				return nil, err
			}
		}
	}
	return bindings, nil
}

// Slug converts a column name into a tool-name and parameter-safe segment:
// lowercased, spaces to underscores, everything else non-alphanumeric
// dropped.
func Slug(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		case r == ' ' || r == '-':
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
