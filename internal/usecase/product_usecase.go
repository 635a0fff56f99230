package usecase

import (
	"context"
	"fmt"

	"gamestore-admin/internal/domain"
	"gamestore-admin/pkg/logger"
)

// ImageRemover deletes a stored product image by its public URL.
type ImageRemover interface {
	DeleteFile(ctx context.Context, fileURL string) error
}

type ProductUsecase struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	images     ImageRemover
	now        domain.Clock
}

// NewProductUsecase wires the product use case. images may be nil when no
// attachment store is configured.
func NewProductUsecase(products domain.ProductRepository, categories domain.CategoryRepository, images ImageRemover, now domain.Clock) *ProductUsecase {
	return &ProductUsecase{products: products, categories: categories, images: images, now: now}
}

func (uc *ProductUsecase) List(ctx context.Context, q domain.ListQuery) ([]domain.Product, domain.Pagination, error) {
	q = q.Normalize(domain.ProductOrderable)
	products, total, err := uc.products.List(ctx, q)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list products: %w", err)
	}
	return products, domain.NewPagination(q, total), nil
}

func (uc *ProductUsecase) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("product", "id", id, err)
	}
	return p, nil
}

func (uc *ProductUsecase) check(ctx context.Context, p *domain.Product) error {
	productableFound := func(ctx context.Context, v any) (bool, error) {
		ref, _ := v.(domain.Productable)
		return uc.products.ProductableExists(ctx, ref)
	}
	categoriesFound := func(ctx context.Context, v any) (bool, error) {
		ids, _ := v.([]int64)
		return uc.categories.AllExist(ctx, ids)
	}
	return p.Rules(takenLookup(uc.products.NameTaken, p.ID), productableFound, categoriesFound).Check(ctx, uc.now())
}

func (uc *ProductUsecase) Create(ctx context.Context, params domain.ProductParams) (*domain.Product, error) {
	p := &domain.Product{}
	params.Apply(p)
	if err := uc.check(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, storeError("create", "product", 0, err)
	}
	return p, nil
}

// Update replaces the category set only when category_ids was sent. A
// replaced image is removed from the attachment store after the write.
func (uc *ProductUsecase) Update(ctx context.Context, id int64, params domain.ProductParams) (*domain.Product, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldImage := p.ImageURL
	params.Apply(p)
	if err := uc.check(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, storeError("update", "product", id, err)
	}
	if oldImage != p.ImageURL {
		uc.removeImage(ctx, oldImage)
	}
	return p, nil
}

// Delete removes the product and its category links, then its image.
func (uc *ProductUsecase) Delete(ctx context.Context, id int64) error {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.products.Delete(ctx, id); err != nil {
		return storeError("delete", "product", id, err)
	}
	uc.removeImage(ctx, p.ImageURL)
	return nil
}

// removeImage is best effort: a failure is logged and the request succeeds.
func (uc *ProductUsecase) removeImage(ctx context.Context, url string) {
	if uc.images == nil || url == "" {
		return
	}
	if err := uc.images.DeleteFile(ctx, url); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Str("image_url", url).Msg("Failed to remove product image")
	}
}
