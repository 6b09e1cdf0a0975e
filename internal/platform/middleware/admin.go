package middleware

import "net/http"

// AdminTokenHeader carries the shared admin secret for the admin surface.
const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken guards admin routes with a shared-secret header check.
// An empty configured token disables the admin surface entirely.
func RequireAdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Header.Get(AdminTokenHeader) != token {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
