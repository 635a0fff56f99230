package memory

import (
	"context"

	"gamestore-admin/internal/domain"
)

type systemRequirementRepository struct{ s *Store }

func (r *systemRequirementRepository) List(ctx context.Context) ([]domain.SystemRequirement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.requirements), nil
}

func (r *systemRequirementRepository) GetByID(ctx context.Context, id int64) (*domain.SystemRequirement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sr, ok := r.s.requirements[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sr, nil
}

func (r *systemRequirementRepository) Create(ctx context.Context, sr *domain.SystemRequirement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sr.ID = r.s.nextID("system_requirements")
	sr.CreatedAt = r.s.now()
	sr.UpdatedAt = sr.CreatedAt
	r.s.requirements[sr.ID] = *sr
	return nil
}

func (r *systemRequirementRepository) Update(ctx context.Context, sr *domain.SystemRequirement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requirements[sr.ID]; !ok {
		return domain.ErrNotFound
	}
	sr.UpdatedAt = r.s.now()
	r.s.requirements[sr.ID] = *sr
	return nil
}

func (r *systemRequirementRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requirements[id]; !ok {
		return domain.ErrNotFound
	}
	for _, g := range r.s.games {
		if g.SystemRequirementID == id {
			return &domain.RestrictError{Dependent: "games"}
		}
	}
	delete(r.s.requirements, id)
	return nil
}

func (r *systemRequirementRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, sr := range r.s.requirements {
		if id != excludeID && equalFold(sr.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
