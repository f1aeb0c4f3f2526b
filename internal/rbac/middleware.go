package rbac

import (
	"log/slog"
	"net/http"

	"github.com/praetor-admin/praetor-admin/internal/observability"
	"github.com/praetor-admin/praetor-admin/internal/platform/httpx"
	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// Middleware wires the access decision point in front of HTTP handlers.
type Middleware struct {
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Require ensures the verified claims in the request context carry the given
// permission. On deny the wrapped handler never runs.
func (m Middleware) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := shared.ClaimsFromContext(r.Context())
			err := Authorize(claims, permission)
			m.Metrics.ObserveDecision(permission, err == nil)
			if err != nil {
				if m.Logger != nil {
					subject := ""
					if claims != nil {
						subject = claims.Subject
					}
					m.Logger.Warn("access denied",
						slog.String("path", r.URL.Path),
						slog.String("required", permission),
						slog.String("subject", subject),
					)
				}
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
