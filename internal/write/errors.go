package write

import (
	"fmt"
	"strings"
)

// Issue is one field-level validation problem, naming the offending column
// and the rule it broke.
type Issue struct {
	Column string
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("column %q: %s", i.Column, i.Reason)
}

// ValidationError aggregates every field-level problem found in a write
// request. It is raised before any network I/O, so an invalid write never
// partially applies.
type ValidationError struct {
	Database string
	Issues   []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("invalid write to database %q: %s", e.Database, strings.Join(msgs, "; "))
}

// PermissionError reports a write attempted against a read-only column.
type PermissionError struct {
	Database string
	Column   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("column %q in database %q is not writable", e.Column, e.Database)
}

// RemoteWriteError wraps a transport or remote-service failure during a
// create or update. NotFound distinguishes a missing record on update from
// generic failures.
type RemoteWriteError struct {
	Database string
	RecordID string
	NotFound bool
	Err      error
}

func (e *RemoteWriteError) Error() string {
	if e.NotFound {
		return fmt.Sprintf("record %q not found in database %q: %v", e.RecordID, e.Database, e.Err)
	}
	return fmt.Sprintf("write to database %q failed: %v", e.Database, e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }
