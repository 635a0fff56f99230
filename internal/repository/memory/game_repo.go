package memory

import (
	"cmp"
	"context"
	"time"

	"gamestore-admin/internal/domain"
)

type gameRepository struct{ s *Store }

var gameColumns = map[string]comparator[domain.Game]{
	"developer": byString(func(g domain.Game) string { return g.Developer }),
	"mode":      byString(func(g domain.Game) string { return g.Mode }),
	"release_date": func(a, b domain.Game) int {
		return cmp.Compare(unixNano(a.ReleaseDate), unixNano(b.ReleaseDate))
	},
}

func unixNano(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixNano()
}

func (r *gameRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Game, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows, total := page(sortedValues(r.s.games), q, func(g domain.Game) string { return g.Developer }, gameColumns)
	return rows, total, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.games[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

func (r *gameRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.games[id]
	return ok, nil
}

func (r *gameRepository) Create(ctx context.Context, g *domain.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requirements[g.SystemRequirementID]; !ok {
		return &domain.ReferenceError{Field: "system_requirement"}
	}
	g.ID = r.s.nextID("games")
	g.CreatedAt = r.s.now()
	g.UpdatedAt = g.CreatedAt
	r.s.games[g.ID] = *g
	return nil
}

func (r *gameRepository) Update(ctx context.Context, g *domain.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.games[g.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.requirements[g.SystemRequirementID]; !ok {
		return &domain.ReferenceError{Field: "system_requirement"}
	}
	g.UpdatedAt = r.s.now()
	r.s.games[g.ID] = *g
	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.games[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.Productable == (domain.Productable{Kind: domain.ProductableGame, ID: id}) {
			return &domain.RestrictError{Dependent: "product", One: true}
		}
	}
	for lid, l := range r.s.licenses {
		if l.GameID == id {
			delete(r.s.licenses, lid)
		}
	}
	delete(r.s.games, id)
	return nil
}
