package v1

import (
	"net/http"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/usecase"
)

// LicenseHandler serves licenses nested under their game for list and
// create, and flat by id for the rest.
type LicenseHandler struct {
	crud[domain.License, domain.LicenseParams]
	licenseUC *usecase.LicenseUsecase
}

func NewLicenseHandler(uc *usecase.LicenseUsecase) *LicenseHandler {
	return &LicenseHandler{
		crud: crud[domain.License, domain.LicenseParams]{
			singular: "license",
			uc:       uc,
			create: func(r *http.Request, p domain.LicenseParams) (*domain.License, error) {
				gameID, err := pathID(r, "game_id", "game")
				if err != nil {
					return nil, err
				}
				return uc.Create(r.Context(), gameID, p)
			},
			permitted: []string{"key", "status", "platform"},
			bind: func(p *params) domain.LicenseParams {
				return domain.LicenseParams{
					Key:      p.String("key"),
					Platform: p.String("platform"),
					Status:   p.String("status"),
				}
			},
		},
		licenseUC: uc,
	}
}

// List pages the licenses of one game, searching by key.
// GET /admin/v1/games/{game_id}/licenses
func (h *LicenseHandler) List(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "game_id", "game")
	if err != nil {
		fail(w, r, err)
		return
	}
	licenses, meta, err := h.licenseUC.ListByGame(r.Context(), gameID, listQuery(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writePage(w, "licenses", licenses, meta)
}
