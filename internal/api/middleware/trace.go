package middleware

import (
	"log/slog"
	"net/http"

	"github.com/velder/taskboard-api/internal/api/shared"
	"github.com/velder/taskboard-api/internal/platform/logger"
)

// TraceMiddleware stamps the request context with a trace ID and a logger
// carrying it, so every log line downstream of the router can be correlated.
// It should sit early in the middleware chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
