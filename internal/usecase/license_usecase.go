package usecase

import (
	"context"
	"fmt"

	"gamestore-admin/internal/domain"
)

// LicenseUsecase manages the activation keys sold for a game.
type LicenseUsecase struct {
	licenses domain.LicenseRepository
	games    domain.GameRepository
	now      domain.Clock
}

func NewLicenseUsecase(licenses domain.LicenseRepository, games domain.GameRepository, now domain.Clock) *LicenseUsecase {
	return &LicenseUsecase{licenses: licenses, games: games, now: now}
}

// ListByGame pages the licenses of one game. An unknown game is a not-found
// on "game_id" rather than an empty list.
func (uc *LicenseUsecase) ListByGame(ctx context.Context, gameID int64, q domain.ListQuery) ([]domain.License, domain.Pagination, error) {
	exists, err := uc.games.Exists(ctx, gameID)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to load game: %w", err)
	}
	if !exists {
		return nil, domain.Pagination{}, &domain.NotFoundError{Resource: "game", Field: "game_id", ID: gameID}
	}

	q = q.Normalize(domain.LicenseOrderable)
	licenses, total, err := uc.licenses.ListByGame(ctx, gameID, q)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list licenses: %w", err)
	}
	return licenses, domain.NewPagination(q, total), nil
}

func (uc *LicenseUsecase) Get(ctx context.Context, id int64) (*domain.License, error) {
	l, err := uc.licenses.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("license", "id", id, err)
	}
	return l, nil
}

// Create attaches a new license to gameID, which comes from the route and
// is validated like any other reference.
func (uc *LicenseUsecase) Create(ctx context.Context, gameID int64, p domain.LicenseParams) (*domain.License, error) {
	l := &domain.License{GameID: gameID}
	p.Apply(l)
	if err := l.Rules(takenLookup(uc.licenses.KeyTaken, 0), idLookup(uc.games.Exists)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.licenses.Create(ctx, l); err != nil {
		return nil, storeError("create", "license", 0, err)
	}
	return l, nil
}

func (uc *LicenseUsecase) Update(ctx context.Context, id int64, p domain.LicenseParams) (*domain.License, error) {
	l, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(l)
	if err := l.Rules(takenLookup(uc.licenses.KeyTaken, id), idLookup(uc.games.Exists)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.licenses.Update(ctx, l); err != nil {
		return nil, storeError("update", "license", id, err)
	}
	return l, nil
}

func (uc *LicenseUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.licenses.Delete(ctx, id); err != nil {
		return storeError("delete", "license", id, err)
	}
	return nil
}
