package memory

import (
	"context"

	"gamestore-admin/internal/domain"
)

type couponRepository struct{ s *Store }

func (r *couponRepository) List(ctx context.Context) ([]domain.Coupon, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.coupons), nil
}

func (r *couponRepository) GetByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.coupons[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextID("coupons")
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	r.s.coupons[c.ID] = *c
	return nil
}

func (r *couponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.coupons[c.ID]; !ok {
		return domain.ErrNotFound
	}
	c.UpdatedAt = r.s.now()
	r.s.coupons[c.ID] = *c
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.coupons[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.coupons, id)
	return nil
}

func (r *couponRepository) CodeTaken(ctx context.Context, code string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, c := range r.s.coupons {
		if id != excludeID && equalFold(c.Code, code) {
			return true, nil
		}
	}
	return false, nil
}
