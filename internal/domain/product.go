package domain

import (
	"context"
	"time"

	"gamestore-admin/internal/validation"

	"github.com/shopspring/decimal"
)

// ProductableKind tags the owner entity a product is built on.
type ProductableKind string

const ProductableGame ProductableKind = "game"

// Productable is a polymorphic reference: an owner kind plus that owner's id.
type Productable struct {
	Kind ProductableKind
	ID   int64
}

func (p Productable) IsBlank() bool { return p.Kind == "" || p.ID == 0 }

type Product struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Status      string           `json:"status"`
	ImageURL    string           `json:"image_url"`
	Productable Productable      `json:"-"`
	CategoryIDs []int64          `json:"category_ids"`
	CreatedAt   time.Time        `json:"-"`
	UpdatedAt   time.Time        `json:"-"`
}

// productView flattens the productable variant for rendering.
type productView struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Status        string           `json:"status"`
	ImageURL      string           `json:"image_url"`
	Productable   ProductableKind  `json:"productable"`
	ProductableID int64            `json:"productable_id"`
	CategoryIDs   []int64          `json:"category_ids"`
}

// View is the rendered representation of p.
func (p *Product) View() any {
	ids := p.CategoryIDs
	if ids == nil {
		ids = []int64{}
	}
	return productView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Status:        p.Status,
		ImageURL:      p.ImageURL,
		Productable:   p.Productable.Kind,
		ProductableID: p.Productable.ID,
		CategoryIDs:   ids,
	}
}

type ProductParams struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	Status        *string
	ImageURL      *string
	Productable   *string
	ProductableID *int64
	// CategoryIDs replaces the whole set when sent; nil leaves it alone.
	CategoryIDs []int64
}

func (p ProductParams) Apply(pr *Product) {
	setString(&pr.Name, p.Name)
	setString(&pr.Description, p.Description)
	setString(&pr.Status, p.Status)
	setString(&pr.ImageURL, p.ImageURL)
	if p.Price != nil {
		pr.Price = money(*p.Price)
	}
	if p.Productable != nil {
		pr.Productable.Kind = ProductableKind(*p.Productable)
	}
	if p.ProductableID != nil {
		pr.Productable.ID = *p.ProductableID
	}
	if p.CategoryIDs != nil {
		pr.CategoryIDs = p.CategoryIDs
	}
}

// Rules is the product rule table. productableFound resolves a Productable
// through the store; categoriesFound checks a []int64.
func (p *Product) Rules(nameTaken, productableFound, categoriesFound validation.Lookup) validation.Set {
	return validation.Set{
		{Name: "name", Value: p.Name, Rules: []validation.Rule{validation.Required(), validation.Unique(nameTaken)}},
		{Name: "description", Value: p.Description, Rules: []validation.Rule{validation.Required()}},
		{Name: "price", Value: p.Price, Rules: []validation.Rule{validation.Required(), validation.GreaterThan(decimal.Zero), validation.LessThan(MaxMoney)}},
		{Name: "status", Value: p.Status, Rules: []validation.Rule{validation.Required(), validation.Inclusion(ProductStatuses...)}},
		{Name: "image", Value: p.ImageURL, Rules: []validation.Rule{validation.Required()}},
		{Name: "productable", Value: string(p.Productable.Kind), Rules: []validation.Rule{validation.Required(), validation.Inclusion(ProductableKinds...)}},
		{Name: "productable_id", Value: p.Productable, Rules: []validation.Rule{validation.Required(), validation.Exists(productableFound)}},
		{Name: "categories", Value: p.CategoryIDs, Rules: []validation.Rule{validation.Exists(categoriesFound)}},
	}
}

var ProductOrderable = []string{"id", "name", "price", "status"}

type ProductRepository interface {
	List(ctx context.Context, q ListQuery) ([]Product, int64, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	// Create and Update write the product row and its category links together.
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	// Delete removes the product and its category links.
	Delete(ctx context.Context, id int64) error
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	// ProductableExists resolves the polymorphic owner reference.
	ProductableExists(ctx context.Context, ref Productable) (bool, error)
}
