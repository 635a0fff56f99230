package v1

import (
	"fmt"
	"net/http"
	"time"

	"gamestore-admin/internal/domain"
	"gamestore-admin/pkg/cache"
	"gamestore-admin/pkg/utils"
)

const enumsCacheKey = "admin:config:enums"

type ConfigHandler struct {
	cache cache.CacheService
	ttl   time.Duration
}

func NewConfigHandler(cache cache.CacheService, ttl time.Duration) *ConfigHandler {
	return &ConfigHandler{cache: cache, ttl: ttl}
}

// GetEnums lists the values accepted by every inclusion rule, for admin forms.
// GET /admin/v1/config/enums
func (h *ConfigHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(h.ttl.Seconds())))

	enums, err := h.cache.Remember(enumsCacheKey, h.ttl, func() (any, error) {
		return map[string][]string{
			"coupon_statuses":   domain.CouponStatuses,
			"license_statuses":  domain.LicenseStatuses,
			"license_platforms": domain.LicensePlatforms,
			"user_profiles":     domain.UserProfiles,
			"product_statuses":  domain.ProductStatuses,
			"game_modes":        domain.GameModes,
			"productable_kinds": domain.ProductableKinds,
		}, nil
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, enums)
}
