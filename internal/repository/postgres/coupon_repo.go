package pgrepo

import (
	"context"

	"gamestore-admin/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type couponRepository struct{ s *Store }

const couponColumns = "id, code, status, discount_value, due_date, created_at, updated_at"

func scanCoupon(row pgx.CollectableRow) (domain.Coupon, error) {
	var (
		c        domain.Coupon
		discount decimal.Decimal
	)
	err := row.Scan(&c.ID, &c.Code, &c.Status, &discount, &c.DueDate, &c.CreatedAt, &c.UpdatedAt)
	c.DiscountValue = &discount
	return c, err
}

func (r *couponRepository) List(ctx context.Context) ([]domain.Coupon, error) {
	rows, err := r.s.tx.conn(ctx).Query(ctx, "SELECT "+couponColumns+" FROM coupons ORDER BY id")
	if err != nil {
		return nil, mapReadError("list coupons", err)
	}
	out, err := pgx.CollectRows(rows, scanCoupon)
	if err != nil {
		return nil, mapReadError("list coupons", err)
	}
	return out, nil
}

func (r *couponRepository) GetByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	rows, _ := r.s.tx.conn(ctx).Query(ctx, "SELECT "+couponColumns+" FROM coupons WHERE id = $1", id)
	c, err := pgx.CollectExactlyOneRow(rows, scanCoupon)
	if err != nil {
		return nil, mapReadError("get coupon", err)
	}
	return &c, nil
}

// Create and Update read discount_value back so c holds the stored amount.
func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	var discount decimal.Decimal
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`INSERT INTO coupons (code, status, discount_value, due_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, discount_value, created_at, updated_at`,
		c.Code, c.Status, c.DiscountValue, c.DueDate,
	).Scan(&c.ID, &discount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapWriteError("create coupon", err)
	}
	c.DiscountValue = &discount
	return nil
}

func (r *couponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	var discount decimal.Decimal
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`UPDATE coupons SET code = $2, status = $3, discount_value = $4, due_date = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING discount_value, updated_at`,
		c.ID, c.Code, c.Status, c.DiscountValue, c.DueDate,
	).Scan(&discount, &c.UpdatedAt)
	if err != nil {
		return mapUpdateError("update coupon", err)
	}
	c.DiscountValue = &discount
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.tx.conn(ctx).Exec(ctx, "DELETE FROM coupons WHERE id = $1", id)
	if err != nil {
		return mapWriteError("delete coupon", err)
	}
	return affected(tag)
}

func (r *couponRepository) CodeTaken(ctx context.Context, code string, excludeID int64) (bool, error) {
	return taken(ctx, r.s.tx.conn(ctx), "coupons", "code", code, excludeID)
}
