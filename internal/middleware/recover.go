package middleware

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/response"
)

// Recover is a middleware that recovers from panics. JSON API callers get
// the JSON error envelope, browsers get a plain-text 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}

				logger.FromContext(r.Context()).Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Panic recovered")

				if strings.HasPrefix(r.URL.Path, "/api/") {
					response.InternalError(w)
					return
				}
				response.Text(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
