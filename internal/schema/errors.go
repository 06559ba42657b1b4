package schema

import "fmt"

// UnknownDatabaseError is returned when a caller names a database that is
// not present in the registry. The check always runs before any network
// call.
type UnknownDatabaseError struct {
	Name      string
	Available []string
}

func (e *UnknownDatabaseError) Error() string {
	return fmt.Sprintf("database %q not found (available: %v)", e.Name, e.Available)
}
