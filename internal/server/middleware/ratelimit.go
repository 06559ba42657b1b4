package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit caps tool invocations per caller IP over a sliding minute.
// Only the invocation routes mount it; reading the catalogue stays free.
func RateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.LimitByIP(requestsPerMinute, time.Minute)
}

// UpstreamBudget caps invocations across all callers combined. Every
// invocation spends one call against the single shared Notion integration
// token, so the combined rate has to stay under Notion's own limit no
// matter how many clients are connected.
func UpstreamBudget(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(*http.Request) (string, error) {
			return "upstream", nil
		}),
	)
}
