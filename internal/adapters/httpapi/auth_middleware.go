package httpapi

import (
	"net/http"
	"strings"

	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/platform/auth/tokens"
)

// NewAuthMiddleware enforces Authorization: Bearer <JWT> and stores the
// verified identity in request context.
func NewAuthMiddleware(m *tokens.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(authz, prefix) {
				writeError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, prefix))
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			id, err := m.Verify(raw)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token is not valid")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireCoach denies callers whose verified role is not coach. Recording
// attendance is a coach-only operation.
func RequireCoach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		if id.Role != domain.RoleCoach {
			writeError(w, http.StatusForbidden, "Access denied. Only coach can mark attendance.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
