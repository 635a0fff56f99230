package usecase

import (
	"context"
	"errors"
	"fmt"

	"gamestore-admin/internal/domain"
)

type GameUsecase struct {
	games        domain.GameRepository
	requirements domain.SystemRequirementRepository
	now          domain.Clock
}

func NewGameUsecase(games domain.GameRepository, requirements domain.SystemRequirementRepository, now domain.Clock) *GameUsecase {
	return &GameUsecase{games: games, requirements: requirements, now: now}
}

// List searches developers and pages the result. The query is normalized
// against the orderable game columns first.
func (uc *GameUsecase) List(ctx context.Context, q domain.ListQuery) ([]domain.Game, domain.Pagination, error) {
	q = q.Normalize(domain.GameOrderable)
	games, total, err := uc.games.List(ctx, q)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to list games: %w", err)
	}
	return games, domain.NewPagination(q, total), nil
}

func (uc *GameUsecase) Get(ctx context.Context, id int64) (*domain.Game, error) {
	g, err := uc.games.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("game", "id", id, err)
	}
	return g, nil
}

func (uc *GameUsecase) requirementExists(ctx context.Context, id int64) (bool, error) {
	_, err := uc.requirements.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (uc *GameUsecase) Create(ctx context.Context, p domain.GameParams) (*domain.Game, error) {
	g := &domain.Game{}
	p.Apply(g)
	if err := g.Rules(idLookup(uc.requirementExists)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.games.Create(ctx, g); err != nil {
		return nil, storeError("create", "game", 0, err)
	}
	return g, nil
}

func (uc *GameUsecase) Update(ctx context.Context, id int64, p domain.GameParams) (*domain.Game, error) {
	g, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(g)
	if err := g.Rules(idLookup(uc.requirementExists)).Check(ctx, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.games.Update(ctx, g); err != nil {
		return nil, storeError("update", "game", id, err)
	}
	return g, nil
}

// Delete removes the game with its licenses. It fails with a "base" field
// error while a product is built on the game.
func (uc *GameUsecase) Delete(ctx context.Context, id int64) error {
	if err := uc.games.Delete(ctx, id); err != nil {
		return storeError("delete", "game", id, err)
	}
	return nil
}
