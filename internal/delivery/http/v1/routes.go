package v1

import (
	"context"
	"net/http"

	"gamestore-admin/pkg/logger"
	"gamestore-admin/pkg/utils"
)

// Pinger reports store liveness for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Auth               *AuthHandler
	Coupons            *CouponHandler
	Licenses           *LicenseHandler
	Users              *UserHandler
	SystemRequirements *SystemRequirementHandler
	Games              *GameHandler
	Categories         *CategoryHandler
	Products           *ProductHandler
	Uploads            *UploadHandler
	Config             *ConfigHandler
	// DB is optional; the memory store has nothing to ping.
	DB Pinger
}

// RegisterRoutes mounts the API on mux. admin wraps every /admin/v1 route
// with authentication and the admin profile check.
func RegisterRoutes(mux *http.ServeMux, h Handlers, admin func(http.HandlerFunc) http.Handler) {
	// Auth
	mux.HandleFunc("POST /auth/v1/sign_in", h.Auth.SignIn)
	mux.HandleFunc("DELETE /auth/v1/sign_out", h.Auth.SignOut)

	// Coupons
	mux.Handle("GET /admin/v1/coupons", admin(h.Coupons.List))
	mux.Handle("POST /admin/v1/coupons", admin(h.Coupons.Create))
	mux.Handle("PATCH /admin/v1/coupons/{id}", admin(h.Coupons.Update))
	mux.Handle("DELETE /admin/v1/coupons/{id}", admin(h.Coupons.Delete))

	// Licenses
	mux.Handle("GET /admin/v1/games/{game_id}/licenses", admin(h.Licenses.List))
	mux.Handle("POST /admin/v1/games/{game_id}/licenses", admin(h.Licenses.Create))
	mux.Handle("GET /admin/v1/licenses/{id}", admin(h.Licenses.Show))
	mux.Handle("PATCH /admin/v1/licenses/{id}", admin(h.Licenses.Update))
	mux.Handle("DELETE /admin/v1/licenses/{id}", admin(h.Licenses.Delete))

	// Users
	mux.Handle("GET /admin/v1/users", admin(h.Users.List))
	mux.Handle("POST /admin/v1/users", admin(h.Users.Create))
	mux.Handle("PATCH /admin/v1/users/{id}", admin(h.Users.Update))
	mux.Handle("DELETE /admin/v1/users/{id}", admin(h.Users.Delete))

	// System requirements
	mux.Handle("GET /admin/v1/system_requirements", admin(h.SystemRequirements.List))
	mux.Handle("POST /admin/v1/system_requirements", admin(h.SystemRequirements.Create))
	mux.Handle("PATCH /admin/v1/system_requirements/{id}", admin(h.SystemRequirements.Update))
	mux.Handle("DELETE /admin/v1/system_requirements/{id}", admin(h.SystemRequirements.Delete))

	// Games
	mux.Handle("GET /admin/v1/games", admin(h.Games.List))
	mux.Handle("POST /admin/v1/games", admin(h.Games.Create))
	mux.Handle("GET /admin/v1/games/{id}", admin(h.Games.Show))
	mux.Handle("PATCH /admin/v1/games/{id}", admin(h.Games.Update))
	mux.Handle("DELETE /admin/v1/games/{id}", admin(h.Games.Delete))

	// Categories
	mux.Handle("GET /admin/v1/categories", admin(h.Categories.List))
	mux.Handle("POST /admin/v1/categories", admin(h.Categories.Create))
	mux.Handle("GET /admin/v1/categories/{id}", admin(h.Categories.Show))
	mux.Handle("PATCH /admin/v1/categories/{id}", admin(h.Categories.Update))
	mux.Handle("DELETE /admin/v1/categories/{id}", admin(h.Categories.Delete))

	// Products
	mux.Handle("GET /admin/v1/products", admin(h.Products.List))
	mux.Handle("POST /admin/v1/products", admin(h.Products.Create))
	mux.Handle("GET /admin/v1/products/{id}", admin(h.Products.Show))
	mux.Handle("PATCH /admin/v1/products/{id}", admin(h.Products.Update))
	mux.Handle("DELETE /admin/v1/products/{id}", admin(h.Products.Delete))

	// Uploads & config
	mux.Handle("POST /admin/v1/uploads", admin(h.Uploads.UploadFile))
	mux.Handle("GET /admin/v1/config/enums", admin(h.Config.GetEnums))

	// Health Check (load balancers)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if h.DB != nil {
			if err := h.DB.Ping(r.Context()); err != nil {
				logger.WithContext(r.Context()).Error().Err(err).Msg("Health check failed")
				utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "db": "disconnected"})
				return
			}
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
