package v1

import (
	"net/http"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/usecase"
)

// ProductHandler exposes the admin product catalog. A product is built on a
// productable owner (a game) and may belong to many categories.
type ProductHandler struct {
	crud[domain.Product, domain.ProductParams]
	productUC *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{
		crud: crud[domain.Product, domain.ProductParams]{
			singular: "product",
			uc:       uc,
			create: func(r *http.Request, p domain.ProductParams) (*domain.Product, error) {
				return uc.Create(r.Context(), p)
			},
			permitted: []string{"name", "description", "price", "status", "image_url", "productable", "productable_id", "category_ids"},
			bind:      bindProduct,
		},
		productUC: uc,
	}
}

func bindProduct(p *params) domain.ProductParams {
	return domain.ProductParams{
		Name:          p.String("name"),
		Description:   p.String("description"),
		Price:         p.Decimal("price"),
		Status:        p.String("status"),
		ImageURL:      p.String("image_url"),
		Productable:   p.String("productable"),
		ProductableID: p.Int64("productable_id"),
		CategoryIDs:   p.Int64s("category_ids"),
	}
}

// GET /admin/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, meta, err := h.productUC.List(r.Context(), listQuery(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	writePage(w, "products", products, meta)
}
