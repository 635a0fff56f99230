package pgrepo

import (
	"context"
	"strings"

	"gamestore-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

type userRepository struct{ s *Store }

const userColumns = "id, name, email, profile, password_digest, created_at, updated_at"

func scanUser(row pgx.CollectableRow) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Profile, &u.PasswordDigest, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.s.tx.conn(ctx).Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, mapReadError("list users", err)
	}
	out, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, mapReadError("list users", err)
	}
	return out, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "lower(email) = $1", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepository) getBy(ctx context.Context, cond string, arg any) (*domain.User, error) {
	rows, _ := r.s.tx.conn(ctx).Query(ctx, "SELECT "+userColumns+" FROM users WHERE "+cond, arg)
	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		return nil, mapReadError("get user", err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`INSERT INTO users (name, email, profile, password_digest)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.Profile, u.PasswordDigest,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapWriteError("create user", err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`UPDATE users SET name = $2, email = $3, profile = $4, password_digest = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		u.ID, u.Name, u.Email, u.Profile, u.PasswordDigest,
	).Scan(&u.UpdatedAt)
	if err != nil {
		return mapUpdateError("update user", err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.tx.conn(ctx).Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return mapWriteError("delete user", err)
	}
	return affected(tag)
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	return taken(ctx, r.s.tx.conn(ctx), "users", "email", email, excludeID)
}
