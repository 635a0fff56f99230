package domain

import (
	"context"
	"time"

	"gamestore-admin/internal/validation"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID            int64            `json:"id"`
	Code          string           `json:"code"`
	Status        string           `json:"status"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
	DueDate       *time.Time       `json:"due_date"`
	CreatedAt     time.Time        `json:"-"`
	UpdatedAt     time.Time        `json:"-"`
}

// CouponParams holds the whitelisted coupon attributes. Nil means "not sent".
type CouponParams struct {
	Code          *string
	Status        *string
	DiscountValue *decimal.Decimal
	DueDate       *time.Time
}

// Apply merges the sent attributes over c.
func (p CouponParams) Apply(c *Coupon) {
	if p.Code != nil {
		c.Code = *p.Code
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.DiscountValue != nil {
		c.DiscountValue = money(*p.DiscountValue)
	}
	if p.DueDate != nil {
		c.DueDate = p.DueDate
	}
}

// Rules is the coupon rule table. codeTaken must ignore c's own row.
func (c *Coupon) Rules(codeTaken validation.Lookup) validation.Set {
	return validation.Set{
		{Name: "code", Value: c.Code, Rules: []validation.Rule{validation.Required(), validation.Unique(codeTaken)}},
		{Name: "status", Value: c.Status, Rules: []validation.Rule{validation.Required(), validation.Inclusion(CouponStatuses...)}},
		{Name: "discount_value", Value: c.DiscountValue, Rules: []validation.Rule{validation.Required(), validation.GreaterThan(decimal.Zero), validation.LessThan(MaxMoney)}},
		{Name: "due_date", Value: c.DueDate, Rules: []validation.Rule{validation.Required(), validation.FutureDate()}},
	}
}

type CouponRepository interface {
	List(ctx context.Context) ([]Coupon, error)
	GetByID(ctx context.Context, id int64) (*Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id int64) error
	// CodeTaken compares case-insensitively and skips the row with excludeID.
	CodeTaken(ctx context.Context, code string, excludeID int64) (bool, error)
}
