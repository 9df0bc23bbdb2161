package middleware

import (
	"log/slog"
	"net/http"

	"github.com/caseflow/caseflow-api/internal/api/shared"
	"github.com/caseflow/caseflow-api/internal/platform/logger"
)

// TraceHeader is the header carrying the request trace ID. An inbound value
// is reused so IDs stay stable across proxies; otherwise a fresh one is
// generated.
const TraceHeader = "X-Trace-ID"

// NewTraceMiddleware returns middleware that stamps each request with a
// trace ID and stores a trace-scoped logger in the request context.
// This middleware should be applied early in the middleware chain to ensure
// that all subsequent handlers have access to the trace ID.
func NewTraceMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if inbound := r.Header.Get(TraceHeader); inbound != "" {
				ctx = shared.WithTraceID(ctx, inbound)
			} else {
				ctx = shared.SetTraceID(ctx)
			}
			traceID := shared.GetTraceID(ctx)

			log := baseLogger.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(TraceHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
