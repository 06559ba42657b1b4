package notion

import "fmt"

// APIError is a non-2xx response from the Notion API, carrying the HTTP
// status plus Notion's machine-readable code and message.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("notion api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("notion api error %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether the error identifies a missing object, which
// the write engine maps to its record-not-found failure mode on update.
func (e *APIError) IsNotFound() bool {
	return e.Status == 404 || e.Code == "object_not_found"
}
