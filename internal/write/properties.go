package write

import (
	"fmt"
	"time"

	"github.com/barbackhq/barback/internal/schema"
)

// dateLayouts are the accepted shapes for date column values.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// checkValue verifies a field value's shape against its column's type.
// It returns the reason the value is unacceptable, or "" when it fits.
func checkValue(col schema.ColumnSpec, value any) string {
	switch col.Type {
	case schema.TypeTitle, schema.TypeRichText, schema.TypeSelect,
		schema.TypeURL, schema.TypeEmail, schema.TypePhoneNumber:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("expects a string, got %T", value)
		}
	case schema.TypeCheckbox:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expects a boolean, got %T", value)
		}
	case schema.TypeNumber:
		switch value.(type) {
		case int, int64, float64:
		default:
			return fmt.Sprintf("expects a number, got %T", value)
		}
	case schema.TypeDate:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("expects a date string, got %T", value)
		}
		if !parseableDate(s) {
			return fmt.Sprintf("date %q is not ISO formatted (YYYY-MM-DD or RFC 3339)", s)
		}
	case schema.TypeMultiSelect, schema.TypePeople:
		if _, err := stringSlice(value); err != nil {
			return err.Error()
		}
	case schema.TypeFiles:
		return "files columns cannot be written through this layer"
	}
	return ""
}

// buildProperty serializes a validated field value into the remote API's
// per-type property payload, the inverse of the read-side flattening.
func buildProperty(col schema.ColumnSpec, value any) any {
	switch col.Type {
	case schema.TypeTitle:
		return map[string]any{"title": richText(value.(string))}
	case schema.TypeRichText:
		return map[string]any{"rich_text": richText(value.(string))}
	case schema.TypeSelect:
		return map[string]any{"select": map[string]any{"name": value.(string)}}
	case schema.TypeMultiSelect:
		names, _ := stringSlice(value)
		options := make([]map[string]any, len(names))
		for i, name := range names {
			options[i] = map[string]any{"name": name}
		}
		return map[string]any{"multi_select": options}
	case schema.TypeCheckbox:
		return map[string]any{"checkbox": value.(bool)}
	case schema.TypeNumber:
		return map[string]any{"number": toFloat(value)}
	case schema.TypeDate:
		return map[string]any{"date": map[string]any{"start": value.(string)}}
	case schema.TypePeople:
		ids, _ := stringSlice(value)
		users := make([]map[string]any, len(ids))
		for i, id := range ids {
			users[i] = map[string]any{"object": "user", "id": id}
		}
		return map[string]any{"people": users}
	case schema.TypeURL, schema.TypeEmail, schema.TypePhoneNumber:
		return map[string]any{string(col.Type): value.(string)}
	default:
		return nil
	}
}

func richText(content string) []map[string]any {
	return []map[string]any{
		{"text": map[string]any{"content": content}},
	}
}

// stringSlice accepts []string, []any of strings, or a bare string
// (promoted to a one-element list, matching how agents tend to pass single
// tags).
func stringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expects a list of strings, element %d is %T", i, item)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expects a list of strings, got %T", value)
	}
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func parseableDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
