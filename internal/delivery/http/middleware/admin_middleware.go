package middleware

import (
	"net/http"

	"gamestore-admin/pkg/utils"
)

// AdminMiddleware ensures the authenticated user has the admin profile.
// MUST be used AFTER AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}

		if !user.IsAdmin() {
			utils.WriteError(w, http.StatusForbidden, "Forbidden access")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Admin chains AuthMiddleware and AdminMiddleware around h.
func Admin(h http.HandlerFunc) http.Handler {
	return AuthMiddleware(AdminMiddleware(h))
}
