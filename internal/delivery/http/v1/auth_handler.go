package v1

import (
	"errors"
	"net/http"
	"time"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/usecase"
	"gamestore-admin/pkg/logger"
	"gamestore-admin/pkg/utils"

	"github.com/goccy/go-json"
)

const accessTokenCookie = "accessToken"

type AuthHandler struct {
	authUC       *usecase.AuthUsecase
	tokenExpiry  time.Duration
	secureCookie bool
}

func NewAuthHandler(authUC *usecase.AuthUsecase, tokenExpiry time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{authUC: authUC, tokenExpiry: tokenExpiry, secureCookie: secureCookie}
}

// SignIn exchanges an email and password for an access token. The token is
// returned in the body and set as an HttpOnly cookie.
// POST /auth/v1/sign_in
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	token, user, err := h.authUC.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.tokenExpiry.Seconds()),
	})

	logger.WithContext(r.Context()).Info().Int64("user_id", user.ID).Msg("User signed in")

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// SignOut clears the access token cookie. Bearer tokens simply expire.
// DELETE /auth/v1/sign_out
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
	})
	utils.WriteNoContent(w)
}
