package admin

import (
	"context"
	"net/http"

	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/session"
)

// Principal identifies the administrator behind a privileged request.
type Principal struct {
	Username string
}

type contextKey string

const principalKey contextKey = "admin_principal"

// RequireAdmin redirects to loginPath unless the session completed a login.
// Nothing downstream runs for an unprivileged request.
func RequireAdmin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.FromContext(r.Context())
			if !s.IsAdmin() {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			l := logger.FromContext(r.Context()).With().Str("admin", s.Username).Logger()
			ctx := logger.WithContext(r.Context(), &l)
			ctx = context.WithValue(ctx, principalKey, Principal{Username: s.Username})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the authenticated administrator.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
