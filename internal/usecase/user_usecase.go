package usecase

import (
	"context"
	"fmt"

	"gamestore-admin/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// UserUsecase manages admin and client accounts. Passwords are kept only as
// bcrypt digests.
type UserUsecase struct {
	users domain.UserRepository
	now   domain.Clock
	cost  int
}

func NewUserUsecase(users domain.UserRepository, now domain.Clock) *UserUsecase {
	return &UserUsecase{users: users, now: now, cost: bcrypt.DefaultCost}
}

func (uc *UserUsecase) List(ctx context.Context) ([]domain.User, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (uc *UserUsecase) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("user", "id", id, err)
	}
	return u, nil
}

func (uc *UserUsecase) Create(ctx context.Context, p domain.UserParams) (*domain.User, error) {
	u := &domain.User{}
	p.Apply(u)
	if err := uc.save(ctx, u, uc.users.Create); err != nil {
		return nil, storeError("create", "user", 0, err)
	}
	return u, nil
}

// Update changes the password only when a non-blank one is sent.
func (uc *UserUsecase) Update(ctx context.Context, id int64, p domain.UserParams) (*domain.User, error) {
	u, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(u)
	if err := uc.save(ctx, u, uc.users.Update); err != nil {
		return nil, storeError("update", "user", id, err)
	}
	return u, nil
}

// save validates u, replaces the digest when a password was assigned and
// hands u to write. Validation errors pass through storeError untouched.
func (uc *UserUsecase) save(ctx context.Context, u *domain.User, write func(context.Context, *domain.User) error) error {
	if err := u.Rules(takenLookup(uc.users.EmailTaken, u.ID)).Check(ctx, uc.now()); err != nil {
		return err
	}
	if u.Password != nil && *u.Password != "" {
		digest, err := bcrypt.GenerateFromPassword([]byte(*u.Password), uc.cost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.PasswordDigest = string(digest)
	}
	u.Password, u.PasswordConfirmation = nil, nil
	return write(ctx, u)
}

func (uc *UserUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.users.Delete(ctx, id); err != nil {
		return storeError("delete", "user", id, err)
	}
	return nil
}
