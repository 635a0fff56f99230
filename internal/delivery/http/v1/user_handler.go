package v1

import (
	"net/http"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/usecase"
	"gamestore-admin/pkg/utils"
)

// UserHandler manages admin and client accounts. Passwords are write-only.
type UserHandler struct {
	crud[domain.User, domain.UserParams]
	userUC *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{
		crud: crud[domain.User, domain.UserParams]{
			singular: "user",
			uc:       uc,
			create: func(r *http.Request, p domain.UserParams) (*domain.User, error) {
				return uc.Create(r.Context(), p)
			},
			permitted: []string{"name", "profile", "email", "password", "password_confirmation"},
			bind: func(p *params) domain.UserParams {
				return domain.UserParams{
					Name:                 p.String("name"),
					Profile:              p.String("profile"),
					Email:                p.String("email"),
					Password:             p.String("password"),
					PasswordConfirmation: p.String("password_confirmation"),
				}
			},
		},
		userUC: uc,
	}
}

// GET /admin/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUC.List(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"users": viewAll(users)})
}
