package v1

import (
	"net/http"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/usecase"
)

type GameHandler struct {
	crud[domain.Game, domain.GameParams]
	gameUC *usecase.GameUsecase
}

func NewGameHandler(uc *usecase.GameUsecase) *GameHandler {
	return &GameHandler{
		crud: crud[domain.Game, domain.GameParams]{
			singular: "game",
			uc:       uc,
			create: func(r *http.Request, p domain.GameParams) (*domain.Game, error) {
				return uc.Create(r.Context(), p)
			},
			permitted: []string{"mode", "release_date", "developer", "system_requirement_id"},
			bind: func(p *params) domain.GameParams {
				return domain.GameParams{
					Mode:                p.String("mode"),
					ReleaseDate:         p.Time("release_date"),
					Developer:           p.String("developer"),
					SystemRequirementID: p.Int64("system_requirement_id"),
				}
			},
		},
		gameUC: uc,
	}
}

// List pages games, searching by developer.
// GET /admin/v1/games?search=&order[developer]=asc&page=1&length=10
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, meta, err := h.gameUC.List(r.Context(), listQuery(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writePage(w, "games", games, meta)
}
