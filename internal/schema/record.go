package schema

// Reserved record keys. Every record carries the remote identifier, and the
// page URL when the remote provides one. Neither may be used as a column
// name.
const (
	RecordIDKey  = "id"
	RecordURLKey = "url"
)

// Record is one row of a database, flattened into a column-name-to-value
// mapping. Value types follow the owning column's declared type: string for
// the text-like types and date, float64 for number, bool for checkbox, and
// []string for multi_select, people, and files.
type Record map[string]any

// ID returns the remote record identifier, if present.
func (r Record) ID() string {
	id, _ := r[RecordIDKey].(string)
	return id
}
