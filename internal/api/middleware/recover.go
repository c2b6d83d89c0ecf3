package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/api/shared"
	"github.com/PANAMA-HIVE/Backend-Deploy/internal/platform/logger"
)

// CodeInternalError is the envelope code for a recovered panic.
const CodeInternalError = "internal-error"

// Recoverer turns a handler panic into a 500 JSON envelope and logs the
// stack. http.ErrAbortHandler is re-raised so net/http can abort the
// connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				// ALLOW-PANIC
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("recovered from panic",
				slog.String("panic", fmt.Sprint(rec)),
				slog.String("stack", string(debug.Stack())))

			shared.RespondWithError(w, r, http.StatusInternalServerError,
				CodeInternalError, "An unexpected error occurred")
		}()

		next.ServeHTTP(w, r)
	})
}
