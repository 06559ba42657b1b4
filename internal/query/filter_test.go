package query

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/barbackhq/barback/internal/schema"
)

func winesSchema() *schema.Database {
	rw := schema.PermissionReadWrite
	return &schema.Database{
		Name:             "wines",
		DatabaseID:       "11111111-1111-1111-1111-111111111111",
		PrimaryKeyColumn: "Name",
		Columns: []schema.ColumnSpec{
			{Name: "Name", Type: schema.TypeTitle, Permission: rw, Required: true},
			{Name: "Notes", Type: schema.TypeRichText, Permission: rw},
			{Name: "Region", Type: schema.TypeSelect, Permission: rw},
			{Name: "Grapes", Type: schema.TypeMultiSelect, Permission: rw},
			{Name: "Vintage Year", Type: schema.TypeNumber, Permission: rw},
			{Name: "Cellar", Type: schema.TypeCheckbox, Permission: rw},
			{Name: "Opened", Type: schema.TypeDate, Permission: rw},
			{Name: "Shop", Type: schema.TypeURL, Permission: schema.PermissionRead},
		},
		Filters: []schema.NamedFilter{
			{Name: "in_cellar", Spec: schema.FilterSpec{
				ColumnName: "Cellar", FilterType: schema.FilterEquals, Value: true,
			}},
		},
	}
}

func TestBuildFilter(t *testing.T) {
	db := winesSchema()

	tests := []struct {
		name string
		spec schema.FilterSpec
		want map[string]any
	}{
		{
			name: "title contains",
			spec: schema.FilterSpec{ColumnName: "Name", FilterType: schema.FilterContains, Value: "barolo"},
			want: map[string]any{"property": "Name", "title": map[string]any{"contains": "barolo"}},
		},
		{
			name: "checkbox equals",
			spec: schema.FilterSpec{ColumnName: "Cellar", FilterType: schema.FilterEquals, Value: false},
			want: map[string]any{"property": "Cellar", "checkbox": map[string]any{"equals": false}},
		},
		{
			name: "number greater than coerces int",
			spec: schema.FilterSpec{ColumnName: "Vintage Year", FilterType: schema.FilterGreaterThan, Value: 2015},
			want: map[string]any{"property": "Vintage Year", "number": map[string]any{"greater_than": float64(2015)}},
		},
		{
			name: "multi select contains",
			spec: schema.FilterSpec{ColumnName: "Grapes", FilterType: schema.FilterContains, Value: "Nebbiolo"},
			want: map[string]any{"property": "Grapes", "multi_select": map[string]any{"contains": "Nebbiolo"}},
		},
		{
			name: "is_empty carries literal true",
			spec: schema.FilterSpec{ColumnName: "Notes", FilterType: schema.FilterIsEmpty},
			want: map[string]any{"property": "Notes", "rich_text": map[string]any{"is_empty": true}},
		},
		{
			name: "relative date carries empty object",
			spec: schema.FilterSpec{ColumnName: "Opened", FilterType: schema.FilterPastWeek},
			want: map[string]any{"property": "Opened", "date": map[string]any{"past_week": map[string]any{}}},
		},
		{
			name: "date on_or_after",
			spec: schema.FilterSpec{ColumnName: "Opened", FilterType: schema.FilterOnOrAfter, Value: "2024-01-01"},
			want: map[string]any{"property": "Opened", "date": map[string]any{"on_or_after": "2024-01-01"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildFilter(db, tt.spec)
			if err != nil {
				t.Fatalf("BuildFilter: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildFilter = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBuildFilterErrors(t *testing.T) {
	db := winesSchema()

	tests := []struct {
		name   string
		spec   schema.FilterSpec
		reason string
	}{
		{
			name:   "unknown column",
			spec:   schema.FilterSpec{ColumnName: "Ghost", FilterType: schema.FilterEquals, Value: "x"},
			reason: "column does not exist",
		},
		{
			name:   "incompatible pair",
			spec:   schema.FilterSpec{ColumnName: "Cellar", FilterType: schema.FilterContains, Value: "x"},
			reason: "not applicable",
		},
		{
			name:   "missing value",
			spec:   schema.FilterSpec{ColumnName: "Name", FilterType: schema.FilterContains},
			reason: "requires a value",
		},
		{
			name:   "checkbox wants bool",
			spec:   schema.FilterSpec{ColumnName: "Cellar", FilterType: schema.FilterEquals, Value: "yes"},
			reason: "boolean value",
		},
		{
			name:   "number wants numeric",
			spec:   schema.FilterSpec{ColumnName: "Vintage Year", FilterType: schema.FilterEquals, Value: "old"},
			reason: "numeric value",
		},
		{
			name:   "text wants string",
			spec:   schema.FilterSpec{ColumnName: "Name", FilterType: schema.FilterContains, Value: 7},
			reason: "string value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFilter(db, tt.spec)
			var ife *InvalidFilterError
			if !errors.As(err, &ife) {
				t.Fatalf("error = %v, want *InvalidFilterError", err)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.reason)
			}
		})
	}
}

func TestAndOr(t *testing.T) {
	a := map[string]any{"property": "Name", "title": map[string]any{"contains": "a"}}
	b := map[string]any{"property": "Notes", "rich_text": map[string]any{"contains": "b"}}

	if got := And(nil); got != nil {
		t.Errorf("And(nil) = %v, want nil", got)
	}
	if got := And([]map[string]any{a}); !reflect.DeepEqual(got, a) {
		t.Errorf("And of one = %v, want pass-through", got)
	}
	got := And([]map[string]any{a, b})
	if !reflect.DeepEqual(got, map[string]any{"and": []map[string]any{a, b}}) {
		t.Errorf("And of two = %#v", got)
	}
	got = Or([]map[string]any{a, b})
	if !reflect.DeepEqual(got, map[string]any{"or": []map[string]any{a, b}}) {
		t.Errorf("Or of two = %#v", got)
	}
}
