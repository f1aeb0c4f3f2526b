package auth

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/praetor-admin/praetor-admin/internal/platform/httpx"
	"github.com/praetor-admin/praetor-admin/internal/shared"
	"github.com/praetor-admin/praetor-admin/internal/token"
)

// BearerMiddleware verifies the Authorization header and stores the decoded
// claims in the request context. Requests without a bearer token pass through
// claimless; the permission middleware then denies them.
func BearerMiddleware(tokens *token.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				httpx.RespondError(w, shared.ErrTokenMalformed)
				return
			}

			claims, err := tokens.Verify(strings.TrimSpace(raw), time.Now())
			if err != nil {
				if logger != nil {
					logger.Warn("token rejected", slog.Any("error", err), slog.String("path", r.URL.Path))
				}
				httpx.RespondError(w, err)
				return
			}

			ctx := shared.ContextWithClaims(r.Context(), &shared.Claims{
				Subject:     claims.Subject,
				Username:    claims.Username,
				PrimaryRole: claims.PrimaryRole,
				Authorities: claims.Authorities,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
