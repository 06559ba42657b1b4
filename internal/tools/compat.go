package tools

import (
	"errors"
	"fmt"
	"sort"
)

// legacyAliases maps tool names from the hand-written predecessor onto
// their generated equivalents. Agents still configured with the old names
// keep working without any prompt changes.
var legacyAliases = map[string]string{
	"get_all_bottles_tool":           "get_all_bottle_inventory",
	"query_bottles_by_name_tool":     "search_bottle_inventory",
	"query_bottles_by_type_tool":     "search_bottle_inventory_by_type",
	"get_available_types_tool":       "get_bottle_inventory_available",
	"get_available_ingredients_tool": "get_all_syrups_and_juices",
	"get_available_wines_tool":       "get_all_wines",
	"save_cocktail_to_notion_tool":   "create_cocktail_projects_record",
	"update_notion_bottle_tool":      "update_bottle_inventory_record",
}

// CompatibilityError reports a legacy alias whose generated target is not
// present in the catalogue, which means the database it points at was
// removed or renamed out from under callers still using the old name.
type CompatibilityError struct {
	Alias  string
	Target string
}

func (e *CompatibilityError) Error() string {
	return fmt.Sprintf("legacy alias %q points at %q, which is not in the generated catalogue", e.Alias, e.Target)
}

// applyAliases adds the table's legacy names to the catalogue as additional
// keys for their generated targets. A missing target fails construction: an
// alias must never degrade into a silent no-op while old callers still
// depend on it. Every broken alias is reported, not just the first.
// Aliasing never shadows a generated name.
func applyAliases(catalogue map[string]Tool, table map[string]string) (map[string]string, error) {
	aliases := make([]string, 0, len(table))
	for alias := range table {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	applied := make(map[string]string)
	var broken []error
	for _, alias := range aliases {
		target := table[alias]
		tool, ok := catalogue[target]
		if !ok {
			broken = append(broken, &CompatibilityError{Alias: alias, Target: target})
			continue
		}
		if _, taken := catalogue[alias]; taken {
			continue
		}
		catalogue[alias] = tool
		applied[alias] = target
	}
	if len(broken) > 0 {
		return nil, errors.Join(broken...)
	}
	return applied, nil
}

// ResolveAlias reports the generated name behind a legacy alias, if any.
func ResolveAlias(name string) (string, bool) {
	target, ok := legacyAliases[name]
	return target, ok
}

// LegacyAliasNames returns every known legacy alias name in sorted order.
func LegacyAliasNames() []string {
	names := make([]string, 0, len(legacyAliases))
	for alias := range legacyAliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}
