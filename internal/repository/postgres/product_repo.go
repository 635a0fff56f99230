package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"gamestore-admin/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type productRepository struct{ s *Store }

const productColumns = `id, name, description, price, status, image_url, productable_type, productable_id,
	COALESCE((SELECT array_agg(pc.category_id ORDER BY pc.category_id)
	          FROM product_categories pc WHERE pc.product_id = products.id), '{}') AS category_ids,
	created_at, updated_at`

func scanProduct(row pgx.CollectableRow) (domain.Product, error) {
	var (
		p     domain.Product
		price decimal.Decimal
		kind  string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &price, &p.Status, &p.ImageURL,
		&kind, &p.Productable.ID, &p.CategoryIDs, &p.CreatedAt, &p.UpdatedAt)
	p.Price = &price
	p.Productable.Kind = domain.ProductableKind(kind)
	return p, err
}

func (r *productRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Product, int64, error) {
	return listPage(ctx, r.s.tx.conn(ctx), listQuery{
		table:   "products",
		columns: productColumns,
		search:  "name",
	}, q, scanProduct)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	rows, _ := r.s.tx.conn(ctx).Query(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		return nil, mapReadError("get product", err)
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.s.tx.Do(ctx, func(ctx context.Context) error {
		if err := r.lockProductable(ctx, p.Productable); err != nil {
			return err
		}
		var price decimal.Decimal
		err := r.s.tx.conn(ctx).QueryRow(ctx,
			`INSERT INTO products (name, description, price, status, image_url, productable_type, productable_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, price, created_at, updated_at`,
			p.Name, p.Description, p.Price, p.Status, p.ImageURL, string(p.Productable.Kind), p.Productable.ID,
		).Scan(&p.ID, &price, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return mapWriteError("create product", err)
		}
		p.Price = &price
		return r.replaceCategories(ctx, p)
	})
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	return r.s.tx.Do(ctx, func(ctx context.Context) error {
		if err := r.lockProductable(ctx, p.Productable); err != nil {
			return err
		}
		var price decimal.Decimal
		err := r.s.tx.conn(ctx).QueryRow(ctx,
			`UPDATE products
			 SET name = $2, description = $3, price = $4, status = $5, image_url = $6,
			     productable_type = $7, productable_id = $8, updated_at = now()
			 WHERE id = $1
			 RETURNING price, updated_at`,
			p.ID, p.Name, p.Description, p.Price, p.Status, p.ImageURL, string(p.Productable.Kind), p.Productable.ID,
		).Scan(&price, &p.UpdatedAt)
		if err != nil {
			return mapUpdateError("update product", err)
		}
		p.Price = &price
		return r.replaceCategories(ctx, p)
	})
}

// lockProductable holds a share lock on the owner row so it cannot be deleted
// before the product commits.
func (r *productRepository) lockProductable(ctx context.Context, ref domain.Productable) error {
	if ref.Kind != domain.ProductableGame {
		return &domain.ReferenceError{Field: "productable"}
	}
	var id int64
	err := r.s.tx.conn(ctx).QueryRow(ctx, "SELECT id FROM games WHERE id = $1 FOR SHARE", ref.ID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.ReferenceError{Field: "productable_id"}
		}
		return fmt.Errorf("lock productable: %w", err)
	}
	return nil
}

// replaceCategories rewrites the product's category links and reloads the
// stored, ordered set into p.
func (r *productRepository) replaceCategories(ctx context.Context, p *domain.Product) error {
	db := r.s.tx.conn(ctx)
	if _, err := db.Exec(ctx, "DELETE FROM product_categories WHERE product_id = $1", p.ID); err != nil {
		return fmt.Errorf("clear product categories: %w", err)
	}
	if len(p.CategoryIDs) > 0 {
		_, err := db.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id)
			 SELECT DISTINCT $1::bigint, unnest($2::bigint[])`,
			p.ID, p.CategoryIDs,
		)
		if err != nil {
			return mapWriteError("link product categories", err)
		}
	}
	err := db.QueryRow(ctx,
		`SELECT COALESCE(array_agg(category_id ORDER BY category_id), '{}')
		 FROM product_categories WHERE product_id = $1`,
		p.ID,
	).Scan(&p.CategoryIDs)
	if err != nil {
		return fmt.Errorf("reload product categories: %w", err)
	}
	return nil
}

// Delete removes category links through ON DELETE CASCADE.
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.tx.conn(ctx).Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return mapWriteError("delete product", err)
	}
	return affected(tag)
}

func (r *productRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	return taken(ctx, r.s.tx.conn(ctx), "products", "name", name, excludeID)
}

func (r *productRepository) ProductableExists(ctx context.Context, ref domain.Productable) (bool, error) {
	switch ref.Kind {
	case domain.ProductableGame:
		return r.s.Games().Exists(ctx, ref.ID)
	}
	return false, nil
}
