// Package middleware carries the HTTP concerns shared by every route of
// the tool invocation surface: request identity, outcome logging, and
// rate limiting in front of the Notion upstream.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey is the context key under which the request ID is stored.
const RequestIDKey contextKey = "request_id"

// Client-supplied ids longer than this are replaced rather than trusted,
// keeping arbitrary header payloads out of the logs.
const maxClientRequestID = 128

// RequestID tags every request with an id that the logger and error
// responses both carry, so one agent conversation can be followed across
// its tool invocations. A reasonable client-provided X-Request-ID is kept;
// otherwise a UUID v7 is minted, which sorts by time in log storage.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" || len(id) > maxClientRequestID {
			id = uuid.Must(uuid.NewV7()).String()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the request ID from the context, or "" when the
// request never passed through RequestID.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
