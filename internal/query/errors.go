package query

import "fmt"

// InvalidFilterError reports an unknown filter name or an ad hoc filter
// that is malformed or incompatible with its column's type. It is raised
// before any network call.
type InvalidFilterError struct {
	Database   string
	FilterName string // named filter, if the filter came from the schema
	Column     string
	Reason     string
}

func (e *InvalidFilterError) Error() string {
	msg := fmt.Sprintf("invalid filter for database %q", e.Database)
	if e.FilterName != "" {
		msg += fmt.Sprintf(" (filter %q)", e.FilterName)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" (column %q)", e.Column)
	}
	return msg + ": " + e.Reason
}

// RemoteQueryError wraps a transport or remote-service failure during a
// query. It is always propagated; the engine never substitutes an empty
// result set for a failed call.
type RemoteQueryError struct {
	Database string
	Err      error
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("query against database %q failed: %v", e.Database, e.Err)
}

func (e *RemoteQueryError) Unwrap() error { return e.Err }
