package tools

import (
	"errors"
	"testing"

	"github.com/barbackhq/barback/internal/config"
	"github.com/barbackhq/barback/internal/schema"
)

func barSchema() *schema.Database {
	rw := schema.PermissionReadWrite
	return &schema.Database{
		Name:             "bottle_inventory",
		DatabaseID:       "11111111-1111-1111-1111-111111111111",
		Description:      "Cocktail bottle inventory",
		PrimaryKeyColumn: "Name",
		Columns: []schema.ColumnSpec{
			{Name: "Name", Type: schema.TypeTitle, Permission: rw, Required: true},
			{Name: "Type", Type: schema.TypeMultiSelect, Permission: rw},
			{Name: "Technical Notes", Type: schema.TypeRichText, Permission: rw},
		},
		Filters: []schema.NamedFilter{
			{Name: "available", Spec: schema.FilterSpec{
				ColumnName: "Type", FilterType: schema.FilterIsNotEmpty,
			}},
		},
	}
}

func newBarRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	registry := schema.NewRegistry()
	if err := registry.Register(barSchema()); err != nil {
		t.Fatal(err)
	}
	return registry
}

func TestDerive(t *testing.T) {
	registry := newBarRegistry(t)

	bindings, err := Derive(registry)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}

	byName := make(map[string]Binding, len(bindings))
	for _, b := range bindings {
		byName[b.Name] = b
	}

	// Two base lookups, one named filter, one column search per column,
	// plus the write pair.
	want := map[string]Kind{
		"get_all_bottle_inventory":                   KindQueryAll,
		"search_bottle_inventory":                    KindSearch,
		"get_bottle_inventory_available":             KindNamedFilter,
		"search_bottle_inventory_by_name":            KindColumnSearch,
		"search_bottle_inventory_by_type":            KindColumnSearch,
		"search_bottle_inventory_by_technical_notes": KindColumnSearch,
		"create_bottle_inventory_record":             KindCreate,
		"update_bottle_inventory_record":             KindUpdate,
	}
	if len(bindings) != len(want) {
		t.Errorf("derived %d bindings, want %d: %v", len(bindings), len(want), byName)
	}
	for name, kind := range want {
		b, ok := byName[name]
		if !ok {
			t.Errorf("missing binding %q", name)
			continue
		}
		if b.Kind != kind {
			t.Errorf("%s kind = %q, want %q", name, b.Kind, kind)
		}
		if b.Database != "bottle_inventory" {
			t.Errorf("%s database = %q", name, b.Database)
		}
	}

	if b := byName["get_bottle_inventory_available"]; b.FilterName != "available" {
		t.Errorf("filter binding = %+v", b)
	}
	if b := byName["search_bottle_inventory_by_technical_notes"]; b.ColumnName != "Technical Notes" {
		t.Errorf("column binding = %+v", b)
	}
}

func TestDeriveSkipsWritesForReadOnlySchemas(t *testing.T) {
	registry := schema.NewRegistry()
	err := registry.Register(&schema.Database{
		Name:             "audit_log",
		DatabaseID:       "22222222-2222-2222-2222-222222222222",
		PrimaryKeyColumn: "Entry",
		Columns: []schema.ColumnSpec{
			{Name: "Entry", Type: schema.TypeTitle, Permission: schema.PermissionRead},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	bindings, err := Derive(registry)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	for _, b := range bindings {
		if b.Kind == KindCreate || b.Kind == KindUpdate {
			t.Errorf("read-only schema should derive no write tools, got %q", b.Name)
		}
	}
}

func TestDeriveCollision(t *testing.T) {
	registry := schema.NewRegistry()
	// search_wines_by_cellar derives both from the Cellar column of
	// "wines" and as the full-text tool of a database named
	// "wines_by_cellar".
	if err := registry.Register(&schema.Database{
		Name:             "wines",
		DatabaseID:       "33333333-3333-3333-3333-333333333333",
		PrimaryKeyColumn: "Name",
		Columns: []schema.ColumnSpec{
			{Name: "Name", Type: schema.TypeTitle, Permission: schema.PermissionReadWrite},
			{Name: "Cellar", Type: schema.TypeCheckbox, Permission: schema.PermissionReadWrite},
		},
	}); err != nil {
		t.Fatal(err)
	}
	if err := registry.Register(&schema.Database{
		Name:             "wines_by_cellar",
		DatabaseID:       "44444444-4444-4444-4444-444444444444",
		PrimaryKeyColumn: "Name",
		Columns: []schema.ColumnSpec{
			{Name: "Name", Type: schema.TypeTitle, Permission: schema.PermissionReadWrite},
		},
	}); err != nil {
		t.Fatal(err)
	}

	_, err := Derive(registry)
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *ConfigurationError for colliding names", err)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	registry := newBarRegistry(t)

	first, err := Derive(registry)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Derive(registry)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("binding %d: %q vs %q", i, first[i].Name, second[i].Name)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "name"},
		{"Technical Notes", "technical_notes"},
		{"Vintage Year", "vintage_year"},
		{"almost_gone", "almost_gone"},
		{"Re-Order?", "re_order"},
		{"ABV %", "abv_"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
