package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/taskflow-api/internal/api/shared"
	"github.com/phrazzld/taskflow-api/internal/platform/logger"
	"github.com/phrazzld/taskflow-api/internal/redact"
)

// Recover converts a panic in a handler into a 500 INTERNAL_ERROR envelope.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContextOrDefault(r.Context(), slog.Default()).Error("panic recovered",
				slog.String("panic", redact.String(fmt.Sprint(rec))),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))

			shared.RespondWithError(w, r, http.StatusInternalServerError, shared.CodeInternal,
				"An unexpected error occurred")
		}()

		next.ServeHTTP(w, r)
	})
}
