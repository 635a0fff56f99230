package v1

import (
	"net/http"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/usecase"
	"gamestore-admin/pkg/utils"
)

// CouponHandler handles admin coupon management endpoints.
type CouponHandler struct {
	crud[domain.Coupon, domain.CouponParams]
	couponUC *usecase.CouponUsecase
}

func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{
		crud: crud[domain.Coupon, domain.CouponParams]{
			singular: "coupon",
			uc:       uc,
			create: func(r *http.Request, p domain.CouponParams) (*domain.Coupon, error) {
				return uc.Create(r.Context(), p)
			},
			permitted: []string{"code", "status", "discount_value", "due_date"},
			bind: func(p *params) domain.CouponParams {
				return domain.CouponParams{
					Code:          p.String("code"),
					Status:        p.String("status"),
					DiscountValue: p.Decimal("discount_value"),
					DueDate:       p.Time("due_date"),
				}
			},
		},
		couponUC: uc,
	}
}

// List returns every coupon.
// GET /admin/v1/coupons
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.couponUC.List(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"coupons": viewAll(coupons)})
}
