package v1

import (
	"net/http"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/usecase"
)

type CategoryHandler struct {
	crud[domain.Category, domain.CategoryParams]
	categoryUC *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{
		crud: crud[domain.Category, domain.CategoryParams]{
			singular: "category",
			uc:       uc,
			create: func(r *http.Request, p domain.CategoryParams) (*domain.Category, error) {
				return uc.Create(r.Context(), p)
			},
			permitted: []string{"name"},
			bind: func(p *params) domain.CategoryParams {
				return domain.CategoryParams{Name: p.String("name")}
			},
		},
		categoryUC: uc,
	}
}

// GET /admin/v1/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, meta, err := h.categoryUC.List(r.Context(), listQuery(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writePage(w, "categories", categories, meta)
}
