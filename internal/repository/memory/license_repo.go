package memory

import (
	"context"

	"gamestore-admin/internal/domain"
)

type licenseRepository struct{ s *Store }

var licenseColumns = map[string]comparator[domain.License]{
	"key":      byString(func(l domain.License) string { return l.Key }),
	"platform": byString(func(l domain.License) string { return l.Platform }),
	"status":   byString(func(l domain.License) string { return l.Status }),
}

func (r *licenseRepository) ListByGame(ctx context.Context, gameID int64, q domain.ListQuery) ([]domain.License, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var rows []domain.License
	for _, l := range sortedValues(r.s.licenses) {
		if l.GameID == gameID {
			rows = append(rows, l)
		}
	}
	out, total := page(rows, q, func(l domain.License) string { return l.Key }, licenseColumns)
	return out, total, nil
}

func (r *licenseRepository) GetByID(ctx context.Context, id int64) (*domain.License, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.licenses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (r *licenseRepository) Create(ctx context.Context, l *domain.License) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.games[l.GameID]; !ok {
		return &domain.ReferenceError{Field: "game"}
	}
	l.ID = r.s.nextID("licenses")
	l.CreatedAt = r.s.now()
	l.UpdatedAt = l.CreatedAt
	r.s.licenses[l.ID] = *l
	return nil
}

func (r *licenseRepository) Update(ctx context.Context, l *domain.License) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.licenses[l.ID]; !ok {
		return domain.ErrNotFound
	}
	l.UpdatedAt = r.s.now()
	r.s.licenses[l.ID] = *l
	return nil
}

func (r *licenseRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.licenses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.licenses, id)
	return nil
}

func (r *licenseRepository) KeyTaken(ctx context.Context, key string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, l := range r.s.licenses {
		if id != excludeID && equalFold(l.Key, key) {
			return true, nil
		}
	}
	return false, nil
}
