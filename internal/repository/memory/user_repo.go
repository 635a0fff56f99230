package memory

import (
	"context"

	"gamestore-admin/internal/domain"
)

type userRepository struct{ s *Store }

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedValues(r.s.users), nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if equalFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// store drops the transient password fields; only the digest is kept.
func (r *userRepository) store(u *domain.User) {
	row := *u
	row.Password = nil
	row.PasswordConfirmation = nil
	r.s.users[u.ID] = row
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.ID = r.s.nextID("users")
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	r.store(u)
	return nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	u.UpdatedAt = r.s.now()
	r.store(u)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for id, u := range r.s.users {
		if id != excludeID && equalFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}
