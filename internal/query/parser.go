package query

import (
	"strings"

	"github.com/barbackhq/barback/internal/notion"
	"github.com/barbackhq/barback/internal/schema"
)

// ParseRecord flattens one API page into a record keyed by column name,
// extracting the correct nested value shape per declared column type. The
// remote identifier and page URL land under the reserved keys. Columns the
// page does not carry come back nil rather than being dropped, so record
// shape is stable across rows.
func ParseRecord(page notion.Page, db *schema.Database) schema.Record {
	rec := schema.Record{
		schema.RecordIDKey:  page.ID,
		schema.RecordURLKey: page.URL,
	}
	for _, col := range db.Columns {
		prop, _ := page.Properties[col.Name].(map[string]any)
		rec[col.Name] = parseProperty(col.Type, prop)
	}
	return rec
}

func parseProperty(colType schema.ColumnType, prop map[string]any) any {
	if prop == nil {
		return nil
	}
	switch colType {
	case schema.TypeTitle:
		return richTextContent(prop["title"])
	case schema.TypeRichText:
		return richTextContent(prop["rich_text"])
	case schema.TypeMultiSelect:
		return optionNames(prop["multi_select"])
	case schema.TypeSelect:
		if option, ok := prop["select"].(map[string]any); ok {
			return stringField(option, "name")
		}
		return nil
	case schema.TypeCheckbox:
		checked, _ := prop["checkbox"].(bool)
		return checked
	case schema.TypeNumber:
		if n, ok := prop["number"].(float64); ok {
			return n
		}
		return nil
	case schema.TypeDate:
		if date, ok := prop["date"].(map[string]any); ok {
			return stringField(date, "start")
		}
		return nil
	case schema.TypePeople:
		return optionNames(prop["people"])
	case schema.TypeFiles:
		return optionNames(prop["files"])
	case schema.TypeURL, schema.TypeEmail, schema.TypePhoneNumber:
		if s, ok := prop[string(colType)].(string); ok {
			return s
		}
		return nil
	default:
		return nil
	}
}

// richTextContent concatenates all text segments of a title or rich_text
// property into one plain string.
func richTextContent(raw any) string {
	segments, _ := raw.([]any)
	var sb strings.Builder
	for _, seg := range segments {
		m, ok := seg.(map[string]any)
		if !ok {
			continue
		}
		if plain := stringField(m, "plain_text"); plain != "" {
			sb.WriteString(plain)
			continue
		}
		if text, ok := m["text"].(map[string]any); ok {
			sb.WriteString(stringField(text, "content"))
		}
	}
	return sb.String()
}

// optionNames extracts the "name" of each element of a multi_select,
// people, or files list.
func optionNames(raw any) []string {
	items, _ := raw.([]any)
	names := make([]string, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			names = append(names, stringField(m, "name"))
		}
	}
	return names
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
