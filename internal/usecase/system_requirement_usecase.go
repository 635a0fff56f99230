package usecase

import (
	"context"
	"fmt"

	"gamestore-admin/internal/domain"
)

type SystemRequirementUsecase struct {
	repo domain.SystemRequirementRepository
	now  domain.Clock
}

func NewSystemRequirementUsecase(repo domain.SystemRequirementRepository, now domain.Clock) *SystemRequirementUsecase {
	return &SystemRequirementUsecase{repo: repo, now: now}
}

func (uc *SystemRequirementUsecase) List(ctx context.Context) ([]domain.SystemRequirement, error) {
	out, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list system requirements: %w", err)
	}
	return out, nil
}

func (uc *SystemRequirementUsecase) Get(ctx context.Context, id int64) (*domain.SystemRequirement, error) {
	sr, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("system requirement", "id", id, err)
	}
	return sr, nil
}

func (uc *SystemRequirementUsecase) Create(ctx context.Context, p domain.SystemRequirementParams) (*domain.SystemRequirement, error) {
	sr := &domain.SystemRequirement{}
	p.Apply(sr)
	if err := sr.Rules(takenLookup(uc.repo.NameTaken, 0)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, sr); err != nil {
		return nil, storeError("create", "system requirement", 0, err)
	}
	return sr, nil
}

func (uc *SystemRequirementUsecase) Update(ctx context.Context, id int64, p domain.SystemRequirementParams) (*domain.SystemRequirement, error) {
	sr, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(sr)
	if err := sr.Rules(takenLookup(uc.repo.NameTaken, id)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, sr); err != nil {
		return nil, storeError("update", "system requirement", id, err)
	}
	return sr, nil
}

// Delete fails with a "base" field error while games still use the requirement.
func (uc *SystemRequirementUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return storeError("delete", "system requirement", id, err)
	}
	return nil
}
