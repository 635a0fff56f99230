package memory

import (
	"context"
	"slices"

	"gamestore-admin/internal/domain"
)

type productRepository struct{ s *Store }

var productColumns = map[string]comparator[domain.Product]{
	"name":   byString(func(p domain.Product) string { return p.Name }),
	"status": byString(func(p domain.Product) string { return p.Status }),
	"price": func(a, b domain.Product) int {
		switch {
		case a.Price == nil && b.Price == nil:
			return 0
		case a.Price == nil:
			return -1
		case b.Price == nil:
			return 1
		}
		return a.Price.Cmp(*b.Price)
	},
}

func (r *productRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Product, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows, total := page(sortedValues(r.s.products), q, func(p domain.Product) string { return p.Name }, productColumns)
	for i := range rows {
		rows[i].CategoryIDs = slices.Clone(rows[i].CategoryIDs)
	}
	return rows, total, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.CategoryIDs = slices.Clone(p.CategoryIDs)
	return &p, nil
}

// store writes p with a normalized, caller-independent copy of its category ids.
func (r *productRepository) store(p *domain.Product) error {
	if !r.s.categoriesExist(p.CategoryIDs) {
		return &domain.ReferenceError{Field: "categories"}
	}
	row := *p
	row.CategoryIDs = slices.Compact(slices.Sorted(slices.Values(p.CategoryIDs)))
	p.CategoryIDs = slices.Clone(row.CategoryIDs)
	r.s.products[p.ID] = row
	return nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.categoriesExist(p.CategoryIDs) {
		return &domain.ReferenceError{Field: "categories"}
	}
	p.ID = r.s.nextID("products")
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	return r.store(p)
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	p.UpdatedAt = r.s.now()
	return r.store(p)
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *productRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, p := range r.s.products {
		if id != excludeID && equalFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *productRepository) ProductableExists(ctx context.Context, ref domain.Productable) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	switch ref.Kind {
	case domain.ProductableGame:
		_, ok := r.s.games[ref.ID]
		return ok, nil
	}
	return false, nil
}
