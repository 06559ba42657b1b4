package tools

import (
	"errors"
	"strings"
	"testing"
)

func TestApplyAliases(t *testing.T) {
	catalogue := map[string]Tool{
		"get_all_bottle_inventory": {Binding: Binding{Name: "get_all_bottle_inventory"}},
		"get_all_wines":            {Binding: Binding{Name: "get_all_wines"}},
	}
	table := map[string]string{
		"get_all_bottles_tool":     "get_all_bottle_inventory",
		"get_available_wines_tool": "get_all_wines",
	}

	applied, err := applyAliases(catalogue, table)
	if err != nil {
		t.Fatalf("applyAliases: %v", err)
	}

	if target := applied["get_all_bottles_tool"]; target != "get_all_bottle_inventory" {
		t.Errorf("get_all_bottles_tool target = %q", target)
	}
	if target := applied["get_available_wines_tool"]; target != "get_all_wines" {
		t.Errorf("get_available_wines_tool target = %q", target)
	}

	tool, ok := catalogue["get_all_bottles_tool"]
	if !ok || tool.Binding.Name != "get_all_bottle_inventory" {
		t.Errorf("catalogue alias entry = %+v, %v", tool, ok)
	}
}

func TestApplyAliasesMissingTarget(t *testing.T) {
	catalogue := map[string]Tool{
		"get_all_wines": {Binding: Binding{Name: "get_all_wines"}},
	}
	table := map[string]string{
		"get_all_bottles_tool":      "get_all_bottle_inventory",
		"get_available_wines_tool":  "get_all_wines",
		"update_notion_bottle_tool": "update_bottle_inventory_record",
	}

	_, err := applyAliases(catalogue, table)
	if err == nil {
		t.Fatal("aliases with missing targets must fail, not degrade to no-ops")
	}
	var compatErr *CompatibilityError
	if !errors.As(err, &compatErr) {
		t.Fatalf("error = %v, want *CompatibilityError", err)
	}
	// Both broken aliases are reported, not just the first.
	for _, want := range []string{"get_all_bottles_tool", "update_notion_bottle_tool"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not name broken alias %q", err.Error(), want)
		}
	}
	if strings.Contains(err.Error(), "get_available_wines_tool") {
		t.Errorf("error %q should not name the resolvable alias", err.Error())
	}
}

func TestApplyAliasesNeverShadows(t *testing.T) {
	catalogue := map[string]Tool{
		"get_all_wines":            {Binding: Binding{Name: "get_all_wines"}},
		"get_available_wines_tool": {Binding: Binding{Name: "get_available_wines_tool", Kind: KindQueryAll}},
	}
	table := map[string]string{
		"get_available_wines_tool": "get_all_wines",
	}

	applied, err := applyAliases(catalogue, table)
	if err != nil {
		t.Fatalf("applyAliases: %v", err)
	}
	if _, ok := applied["get_available_wines_tool"]; ok {
		t.Error("alias must not shadow a generated tool of the same name")
	}
	if catalogue["get_available_wines_tool"].Binding.Name != "get_available_wines_tool" {
		t.Error("generated tool should be untouched")
	}
}

func TestResolveAlias(t *testing.T) {
	target, ok := ResolveAlias("query_bottles_by_type_tool")
	if !ok || target != "search_bottle_inventory_by_type" {
		t.Errorf("ResolveAlias = %q, %v", target, ok)
	}
	if _, ok := ResolveAlias("get_all_wines"); ok {
		t.Error("generated names are not aliases")
	}
}

func TestLegacyAliasNamesSorted(t *testing.T) {
	names := LegacyAliasNames()
	if len(names) != len(legacyAliases) {
		t.Fatalf("len = %d, want %d", len(names), len(legacyAliases))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
	for _, name := range names {
		if !strings.HasSuffix(name, "_tool") {
			t.Errorf("legacy name %q should carry the _tool suffix", name)
		}
	}
}

func TestCompatibilityErrorMessage(t *testing.T) {
	err := &CompatibilityError{Alias: "get_all_bottles_tool", Target: "get_all_bottle_inventory"}
	if !strings.Contains(err.Error(), "get_all_bottles_tool") ||
		!strings.Contains(err.Error(), "get_all_bottle_inventory") {
		t.Errorf("Error() = %q", err.Error())
	}
}
