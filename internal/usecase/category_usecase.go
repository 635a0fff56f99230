package usecase

import (
	"context"
	"fmt"

	"gamestore-admin/internal/domain"
)

type CategoryUsecase struct {
	repo domain.CategoryRepository
	now  domain.Clock
}

func NewCategoryUsecase(repo domain.CategoryRepository, now domain.Clock) *CategoryUsecase {
	return &CategoryUsecase{repo: repo, now: now}
}

func (uc *CategoryUsecase) List(ctx context.Context, q domain.ListQuery) ([]domain.Category, domain.Pagination, error) {
	q = q.Normalize(domain.CategoryOrderable)
	categories, total, err := uc.repo.List(ctx, q)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, domain.NewPagination(q, total), nil
}

func (uc *CategoryUsecase) Get(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("category", "id", id, err)
	}
	return c, nil
}

func (uc *CategoryUsecase) Create(ctx context.Context, p domain.CategoryParams) (*domain.Category, error) {
	c := &domain.Category{}
	p.Apply(c)
	if err := c.Rules(takenLookup(uc.repo.NameTaken, 0)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, storeError("create", "category", 0, err)
	}
	return c, nil
}

func (uc *CategoryUsecase) Update(ctx context.Context, id int64, p domain.CategoryParams) (*domain.Category, error) {
	c, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(c)
	if err := c.Rules(takenLookup(uc.repo.NameTaken, id)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, storeError("update", "category", id, err)
	}
	return c, nil
}

// Delete also unlinks the category from its products.
func (uc *CategoryUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return storeError("delete", "category", id, err)
	}
	return nil
}
