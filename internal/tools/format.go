package tools

import (
	"fmt"
	"strings"

	"github.com/barbackhq/barback/internal/schema"
)

const maxFieldChars = 100

// formatRecords renders query results as agent-readable text. The primary
// key column leads each entry; the remaining columns follow in declaration
// order, skipping empty values.
func formatRecords(records []schema.Record, db *schema.Database) string {
	if len(records) == 0 {
		return "No results found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):", len(records))
	for _, rec := range records {
		primary := displayValue(rec[db.PrimaryKeyColumn])
		if primary == "" {
			primary = rec.ID()
		}
		fmt.Fprintf(&sb, "\n\n- %s", primary)
		for _, col := range db.Columns {
			if col.Name == db.PrimaryKeyColumn {
				continue
			}
			value := displayValue(rec[col.Name])
			if value == "" {
				continue
			}
			fmt.Fprintf(&sb, "\n  %s: %s", col.Name, value)
		}
	}
	return sb.String()
}

// displayValue flattens a parsed record value into display text. Empty
// strings, nil values, false checkboxes, and empty lists all render as ""
// so callers can skip them.
func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return truncate(strings.TrimSpace(v))
	case bool:
		if v {
			return "yes"
		}
		return ""
	case float64:
		return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.2f", v), "0"), ".0")
	case []string:
		return truncate(strings.Join(v, ", "))
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := displayValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return truncate(strings.Join(parts, ", "))
	default:
		return truncate(fmt.Sprintf("%v", v))
	}
}

func truncate(s string) string {
	if len(s) <= maxFieldChars {
		return s
	}
	return s[:maxFieldChars] + "..."
}
