package v1

import (
	"net/http"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/usecase"
	"gamestore-admin/pkg/utils"
)

type SystemRequirementHandler struct {
	crud[domain.SystemRequirement, domain.SystemRequirementParams]
	requirementUC *usecase.SystemRequirementUsecase
}

func NewSystemRequirementHandler(uc *usecase.SystemRequirementUsecase) *SystemRequirementHandler {
	return &SystemRequirementHandler{
		crud: crud[domain.SystemRequirement, domain.SystemRequirementParams]{
			singular: "system_requirement",
			uc:       uc,
			create: func(r *http.Request, p domain.SystemRequirementParams) (*domain.SystemRequirement, error) {
				return uc.Create(r.Context(), p)
			},
			permitted: []string{"name", "operational_system", "storage", "processor", "memory", "video_board"},
			bind: func(p *params) domain.SystemRequirementParams {
				return domain.SystemRequirementParams{
					Name:              p.String("name"),
					OperationalSystem: p.String("operational_system"),
					Storage:           p.String("storage"),
					Processor:         p.String("processor"),
					Memory:            p.String("memory"),
					VideoBoard:        p.String("video_board"),
				}
			},
		},
		requirementUC: uc,
	}
}

// GET /admin/v1/system_requirements
func (h *SystemRequirementHandler) List(w http.ResponseWriter, r *http.Request) {
	requirements, err := h.requirementUC.List(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"system_requirements": viewAll(requirements)})
}
