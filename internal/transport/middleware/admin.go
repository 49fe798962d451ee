package middleware

import (
	"net/http"

	"github.com/gramseva/gramseva-backend/internal/domain"
	"github.com/gramseva/gramseva-backend/pkg/ctxutil"
)

// RequireAuth rejects requests that carry no authenticated identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeEnvelopeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose caller does not hold a back-office
// role. It implies RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeEnvelopeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		role, _ := ctxutil.RoleFromCtx(r.Context())
		if !domain.Role(role).IsAdministrative() {
			writeEnvelopeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
