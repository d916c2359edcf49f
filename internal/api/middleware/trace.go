package middleware

import (
	"net/http"

	"github.com/taskboard/taskboard-api/internal/api/shared"
)

// TraceMiddleware adds a unique trace ID to each request context.
// The trace ID surfaces in error responses and structured logs so a client
// report can be correlated with server-side log lines.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		// Expose the trace ID to clients as well
		w.Header().Set("X-Trace-ID", shared.GetTraceID(ctx))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
