package config

import "fmt"

// ConfigurationError reports a malformed or incomplete schema document, or a
// derived-name collision at tool generation time. It is fatal: a registry is
// never partially published from a bad document.
type ConfigurationError struct {
	Database string // database entry the problem was found in, if any
	Field    string // offending key, if any
	Reason   string
	Err      error // parse cause, if any
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error"
	if e.Database != "" {
		msg += fmt.Sprintf(" in database %q", e.Database)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %q)", e.Field)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
