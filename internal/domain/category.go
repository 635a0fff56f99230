package domain

import (
	"context"
	"time"

	"gamestore-admin/internal/validation"
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type CategoryParams struct {
	Name *string
}

func (p CategoryParams) Apply(c *Category) {
	setString(&c.Name, p.Name)
}

func (c *Category) Rules(nameTaken validation.Lookup) validation.Set {
	return validation.Set{
		{Name: "name", Value: c.Name, Rules: []validation.Rule{validation.Required(), validation.Unique(nameTaken)}},
	}
}

var CategoryOrderable = []string{"id", "name"}

type CategoryRepository interface {
	List(ctx context.Context, q ListQuery) ([]Category, int64, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	// AllExist reports whether every id resolves to a category.
	AllExist(ctx context.Context, ids []int64) (bool, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	// Delete also removes the category's product links.
	Delete(ctx context.Context, id int64) error
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
}
