package middleware

import (
	"context"
	"net/http"

	"gamestore-admin/internal/domain"
	"gamestore-admin/pkg/utils"
)

const msgUnauthenticated = "You need to sign in or sign up before continuing."

// AuthMiddleware accepts a bearer token or the accessToken cookie.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}
		id, err := claims.UserID()
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}

		// The user is built from the claims to avoid a DB hit on every request.
		user := &domain.User{
			ID:      id,
			Email:   claims.Email,
			Profile: claims.Profile,
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the user set by AuthMiddleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(domain.UserContextKey).(*domain.User)
	return user, ok && user != nil
}
