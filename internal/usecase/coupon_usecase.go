package usecase

import (
	"context"
	"fmt"

	"gamestore-admin/internal/domain"
)

// CouponUsecase handles admin coupon management operations.
type CouponUsecase struct {
	couponRepo domain.CouponRepository
	now        domain.Clock
}

// NewCouponUsecase creates a new CouponUsecase instance.
func NewCouponUsecase(couponRepo domain.CouponRepository, now domain.Clock) *CouponUsecase {
	return &CouponUsecase{couponRepo: couponRepo, now: now}
}

func (uc *CouponUsecase) List(ctx context.Context) ([]domain.Coupon, error) {
	coupons, err := uc.couponRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

func (uc *CouponUsecase) Get(ctx context.Context, id int64) (*domain.Coupon, error) {
	c, err := uc.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("coupon", "id", id, err)
	}
	return c, nil
}

// Create validates the params against a fresh coupon and stores it.
// The due date must lie after the clock's current time.
func (uc *CouponUsecase) Create(ctx context.Context, p domain.CouponParams) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	p.Apply(c)
	if err := c.Rules(takenLookup(uc.couponRepo.CodeTaken, 0)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.couponRepo.Create(ctx, c); err != nil {
		return nil, storeError("create", "coupon", 0, err)
	}
	return c, nil
}

// Update merges the sent params and re-validates the whole coupon, so a due
// date that has passed since creation must be replaced.
func (uc *CouponUsecase) Update(ctx context.Context, id int64, p domain.CouponParams) (*domain.Coupon, error) {
	c, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(c)
	if err := c.Rules(takenLookup(uc.couponRepo.CodeTaken, id)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.couponRepo.Update(ctx, c); err != nil {
		return nil, storeError("update", "coupon", id, err)
	}
	return c, nil
}

func (uc *CouponUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.couponRepo.Delete(ctx, id); err != nil {
		return storeError("delete", "coupon", id, err)
	}
	return nil
}
