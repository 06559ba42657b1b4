// Package query translates schema-defined and ad hoc filters into the
// remote API's filter-expression grammar, executes lookups with sequential
// cursor-follow pagination, and flattens returned pages into plain records.
package query

import (
	"fmt"

	"github.com/barbackhq/barback/internal/schema"
)

// BuildFilter translates one filter spec into the remote API's expression
// shape for the referenced column's type. The compatibility table in the
// schema package is the single source of truth for which pairs are legal,
// so validation and query-time rejection can never disagree.
func BuildFilter(db *schema.Database, spec schema.FilterSpec) (map[string]any, error) {
	col, ok := db.Column(spec.ColumnName)
	if !ok {
		return nil, &InvalidFilterError{
			Database: db.Name,
			Column:   spec.ColumnName,
			Reason:   "column does not exist in schema",
		}
	}
	if !schema.Compatible(col.Type, spec.FilterType) {
		return nil, &InvalidFilterError{
			Database: db.Name,
			Column:   spec.ColumnName,
			Reason:   fmt.Sprintf("filter type %q is not applicable to %s columns", spec.FilterType, col.Type),
		}
	}

	condition, err := filterCondition(db.Name, col, spec)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"property":       col.Name,
		string(col.Type): condition,
	}, nil
}

func filterCondition(dbName string, col schema.ColumnSpec, spec schema.FilterSpec) (map[string]any, error) {
	ft := spec.FilterType

	// Emptiness checks carry a literal true; relative-date ranges an empty
	// object the remote resolves against its own clock.
	if ft == schema.FilterIsEmpty || ft == schema.FilterIsNotEmpty {
		return map[string]any{string(ft): true}, nil
	}
	if ft.IsRelativeDate() {
		return map[string]any{string(ft): map[string]any{}}, nil
	}

	if spec.Value == nil {
		return nil, &InvalidFilterError{
			Database: dbName,
			Column:   col.Name,
			Reason:   fmt.Sprintf("filter type %q requires a value", ft),
		}
	}

	value, err := filterValue(col, spec.Value)
	if err != nil {
		return nil, &InvalidFilterError{Database: dbName, Column: col.Name, Reason: err.Error()}
	}
	return map[string]any{string(ft): value}, nil
}

// filterValue checks the value's shape against the column type and returns
// it in the form the expression grammar expects.
func filterValue(col schema.ColumnSpec, value any) (any, error) {
	switch col.Type {
	case schema.TypeCheckbox:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("checkbox filters take a boolean value, got %T", value)
		}
		return b, nil
	case schema.TypeNumber:
		switch v := value.(type) {
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case float64:
			return v, nil
		default:
			return nil, fmt.Errorf("number filters take a numeric value, got %T", value)
		}
	default:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%s filters take a string value, got %T", col.Type, value)
		}
		return s, nil
	}
}

// And combines filter expressions into a single conjunction. A single
// expression passes through unchanged.
func And(filters []map[string]any) map[string]any {
	return compound("and", filters)
}

// Or combines filter expressions into a single disjunction.
func Or(filters []map[string]any) map[string]any {
	return compound("or", filters)
}

func compound(op string, filters []map[string]any) map[string]any {
	switch len(filters) {
	case 0:
		return nil
	case 1:
		return filters[0]
	default:
		return map[string]any{op: filters}
	}
}
