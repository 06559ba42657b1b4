// Package schema defines the typed, in-memory representation of a configured
// Notion database: its columns, named filters, and metadata. Everything else
// in Barback (loading, validation, querying, writing, tool generation) is
// driven by these types.
package schema

import "fmt"

// ColumnType identifies the Notion property type of a column.
type ColumnType string

const (
	TypeTitle       ColumnType = "title"
	TypeRichText    ColumnType = "rich_text"
	TypeMultiSelect ColumnType = "multi_select"
	TypeSelect      ColumnType = "select"
	TypeCheckbox    ColumnType = "checkbox"
	TypeNumber      ColumnType = "number"
	TypeDate        ColumnType = "date"
	TypeURL         ColumnType = "url"
	TypeEmail       ColumnType = "email"
	TypePhoneNumber ColumnType = "phone_number"
	TypePeople      ColumnType = "people"
	TypeFiles       ColumnType = "files"
)

var columnTypes = map[ColumnType]bool{
	TypeTitle: true, TypeRichText: true, TypeMultiSelect: true,
	TypeSelect: true, TypeCheckbox: true, TypeNumber: true,
	TypeDate: true, TypeURL: true, TypeEmail: true,
	TypePhoneNumber: true, TypePeople: true, TypeFiles: true,
}

// ParseColumnType converts a configuration string into a ColumnType.
func ParseColumnType(s string) (ColumnType, error) {
	t := ColumnType(s)
	if !columnTypes[t] {
		return "", fmt.Errorf("unsupported column type %q", s)
	}
	return t, nil
}

// IsTextual reports whether the type participates in full-text search.
// These are the types whose Notion filter grammar accepts "contains".
func (t ColumnType) IsTextual() bool {
	switch t {
	case TypeTitle, TypeRichText, TypeSelect, TypeMultiSelect,
		TypeURL, TypeEmail, TypePhoneNumber:
		return true
	}
	return false
}

// Permission controls which operations a column participates in.
type Permission string

const (
	PermissionRead      Permission = "read"
	PermissionWrite     Permission = "write"
	PermissionReadWrite Permission = "read_write"
)

// ParsePermission converts a configuration string into a Permission.
func ParsePermission(s string) (Permission, error) {
	switch p := Permission(s); p {
	case PermissionRead, PermissionWrite, PermissionReadWrite:
		return p, nil
	}
	return "", fmt.Errorf("unsupported permission %q", s)
}

// CanRead reports whether the permission allows the column to be read.
func (p Permission) CanRead() bool {
	return p == PermissionRead || p == PermissionReadWrite
}

// CanWrite reports whether the permission allows the column to be written.
func (p Permission) CanWrite() bool {
	return p == PermissionWrite || p == PermissionReadWrite
}

// FilterType identifies a predicate in the remote API's filter grammar.
type FilterType string

const (
	FilterEquals             FilterType = "equals"
	FilterDoesNotEqual       FilterType = "does_not_equal"
	FilterContains           FilterType = "contains"
	FilterDoesNotContain     FilterType = "does_not_contain"
	FilterStartsWith         FilterType = "starts_with"
	FilterEndsWith           FilterType = "ends_with"
	FilterIsEmpty            FilterType = "is_empty"
	FilterIsNotEmpty         FilterType = "is_not_empty"
	FilterGreaterThan        FilterType = "greater_than"
	FilterLessThan           FilterType = "less_than"
	FilterGreaterThanOrEqual FilterType = "greater_than_or_equal_to"
	FilterLessThanOrEqual    FilterType = "less_than_or_equal_to"
	FilterOnOrAfter          FilterType = "on_or_after"
	FilterOnOrBefore         FilterType = "on_or_before"
	FilterPastWeek           FilterType = "past_week"
	FilterPastMonth          FilterType = "past_month"
	FilterPastYear           FilterType = "past_year"
	FilterNextWeek           FilterType = "next_week"
	FilterNextMonth          FilterType = "next_month"
	FilterNextYear           FilterType = "next_year"
)

var filterTypes = map[FilterType]bool{
	FilterEquals: true, FilterDoesNotEqual: true, FilterContains: true,
	FilterDoesNotContain: true, FilterStartsWith: true, FilterEndsWith: true,
	FilterIsEmpty: true, FilterIsNotEmpty: true, FilterGreaterThan: true,
	FilterLessThan: true, FilterGreaterThanOrEqual: true,
	FilterLessThanOrEqual: true, FilterOnOrAfter: true, FilterOnOrBefore: true,
	FilterPastWeek: true, FilterPastMonth: true, FilterPastYear: true,
	FilterNextWeek: true, FilterNextMonth: true, FilterNextYear: true,
}

// ParseFilterType converts a configuration string into a FilterType.
func ParseFilterType(s string) (FilterType, error) {
	f := FilterType(s)
	if !filterTypes[f] {
		return "", fmt.Errorf("unsupported filter type %q", s)
	}
	return f, nil
}

// NeedsValue reports whether the filter predicate requires a value.
// Emptiness checks and relative-date ranges are evaluated without one.
func (f FilterType) NeedsValue() bool {
	switch f {
	case FilterIsEmpty, FilterIsNotEmpty,
		FilterPastWeek, FilterPastMonth, FilterPastYear,
		FilterNextWeek, FilterNextMonth, FilterNextYear:
		return false
	}
	return true
}

// IsRelativeDate reports whether the filter is a server-evaluated
// relative-date range. These serialize as an empty object in the filter
// expression; the remote API resolves "now" on its side.
func (f FilterType) IsRelativeDate() bool {
	switch f {
	case FilterPastWeek, FilterPastMonth, FilterPastYear,
		FilterNextWeek, FilterNextMonth, FilterNextYear:
		return true
	}
	return false
}

// ColumnSpec describes one typed, permissioned field of a database.
type ColumnSpec struct {
	Name        string
	Type        ColumnType
	Permission  Permission
	Description string
	Required    bool
}

// FilterSpec describes one named or ad hoc predicate over a column.
type FilterSpec struct {
	ColumnName  string
	FilterType  FilterType
	Value       any
	Description string
}

// NamedFilter pairs a FilterSpec with the name it was configured under.
type NamedFilter struct {
	Name string
	Spec FilterSpec
}

// Database describes one configured Notion database. Columns and filters
// keep their declaration order so derived tool enumeration is deterministic.
type Database struct {
	Name             string
	DatabaseID       string
	Description      string
	PrimaryKeyColumn string
	Columns          []ColumnSpec
	Filters          []NamedFilter
}

// Column returns the column with the given name, or false if absent.
func (d *Database) Column(name string) (ColumnSpec, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Filter returns the named filter's spec, or false if absent.
func (d *Database) Filter(name string) (FilterSpec, bool) {
	for _, f := range d.Filters {
		if f.Name == name {
			return f.Spec, true
		}
	}
	return FilterSpec{}, false
}

// WritableColumns returns the columns whose permission allows writes,
// in declaration order.
func (d *Database) WritableColumns() []ColumnSpec {
	var cols []ColumnSpec
	for _, c := range d.Columns {
		if c.Permission.CanWrite() {
			cols = append(cols, c)
		}
	}
	return cols
}

// RequiredColumns returns the writable columns flagged required.
func (d *Database) RequiredColumns() []ColumnSpec {
	var cols []ColumnSpec
	for _, c := range d.Columns {
		if c.Required && c.Permission.CanWrite() {
			cols = append(cols, c)
		}
	}
	return cols
}

// TextColumns returns the columns that participate in full-text search.
func (d *Database) TextColumns() []ColumnSpec {
	var cols []ColumnSpec
	for _, c := range d.Columns {
		if c.Type.IsTextual() {
			cols = append(cols, c)
		}
	}
	return cols
}
