package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/caseflow/caseflow-api/internal/api/shared"
	"github.com/caseflow/caseflow-api/internal/platform/logger"
	"github.com/caseflow/caseflow-api/internal/redact"
)

// NewRecoverer returns middleware that converts handler panics into the
// generic 500 envelope instead of dropping the connection. The panic value
// and stack are logged server-side only.
func NewRecoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						// chi and net/http use this sentinel to abort the
						// response; rethrow it untouched.
						panic(rec)
					}

					log := logger.FromContext(r.Context())
					log.Error("panic recovered",
						"panic", redact.String(fmt.Sprintf("%v", rec)),
						"stack", string(debug.Stack()),
						"method", r.Method,
						"path", r.URL.Path)

					shared.RespondWithError(w, r, http.StatusInternalServerError,
						shared.CategoryInternalServerError, "An unexpected error occurred")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
