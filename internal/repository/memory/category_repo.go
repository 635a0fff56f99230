package memory

import (
	"context"
	"slices"

	"gamestore-admin/internal/domain"
)

type categoryRepository struct{ s *Store }

var categoryColumns = map[string]comparator[domain.Category]{
	"name": byString(func(c domain.Category) string { return c.Name }),
}

func (r *categoryRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Category, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows, total := page(sortedValues(r.s.categories), q, func(c domain.Category) string { return c.Name }, categoryColumns)
	return rows, total, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *categoryRepository) AllExist(ctx context.Context, ids []int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.categoriesExist(ids), nil
}

// categoriesExist must be called with the lock held.
func (s *Store) categoriesExist(ids []int64) bool {
	for _, id := range ids {
		if _, ok := s.categories[id]; !ok {
			return false
		}
	}
	return true
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextID("categories")
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	c.UpdatedAt = r.s.now()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for pid, p := range r.s.products {
		if slices.Contains(p.CategoryIDs, id) {
			p.CategoryIDs = slices.DeleteFunc(slices.Clone(p.CategoryIDs), func(c int64) bool { return c == id })
			r.s.products[pid] = p
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *categoryRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, c := range r.s.categories {
		if id != excludeID && equalFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
