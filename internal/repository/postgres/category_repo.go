package pgrepo

import (
	"context"
	"fmt"

	"gamestore-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

type categoryRepository struct{ s *Store }

const categoryColumns = "id, name, created_at, updated_at"

func scanCategory(row pgx.CollectableRow) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *categoryRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Category, int64, error) {
	return listPage(ctx, r.s.tx.conn(ctx), listQuery{
		table:   "categories",
		columns: categoryColumns,
		search:  "name",
	}, q, scanCategory)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	rows, _ := r.s.tx.conn(ctx).Query(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = $1", id)
	c, err := pgx.CollectExactlyOneRow(rows, scanCategory)
	if err != nil {
		return nil, mapReadError("get category", err)
	}
	return &c, nil
}

func (r *categoryRepository) AllExist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var missing bool
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS(
		   SELECT 1 FROM unnest($1::bigint[]) AS want(id)
		   WHERE NOT EXISTS (SELECT 1 FROM categories c WHERE c.id = want.id))`,
		ids,
	).Scan(&missing)
	if err != nil {
		return false, fmt.Errorf("check categories: %w", err)
	}
	return !missing, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		"INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at, updated_at",
		c.Name,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapWriteError("create category", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		"UPDATE categories SET name = $2, updated_at = now() WHERE id = $1 RETURNING updated_at",
		c.ID, c.Name,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return mapUpdateError("update category", err)
	}
	return nil
}

// Delete removes product links through ON DELETE CASCADE on product_categories.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.tx.conn(ctx).Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return mapWriteError("delete category", err)
	}
	return affected(tag)
}

func (r *categoryRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	return taken(ctx, r.s.tx.conn(ctx), "categories", "name", name, excludeID)
}
