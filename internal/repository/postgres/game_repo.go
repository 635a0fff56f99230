package pgrepo

import (
	"context"
	"fmt"

	"gamestore-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

type gameRepository struct{ s *Store }

const gameColumns = "id, mode, release_date, developer, system_requirement_id, created_at, updated_at"

func scanGame(row pgx.CollectableRow) (domain.Game, error) {
	var g domain.Game
	err := row.Scan(&g.ID, &g.Mode, &g.ReleaseDate, &g.Developer, &g.SystemRequirementID, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *gameRepository) List(ctx context.Context, q domain.ListQuery) ([]domain.Game, int64, error) {
	return listPage(ctx, r.s.tx.conn(ctx), listQuery{
		table:   "games",
		columns: gameColumns,
		search:  "developer",
	}, q, scanGame)
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (*domain.Game, error) {
	rows, _ := r.s.tx.conn(ctx).Query(ctx, "SELECT "+gameColumns+" FROM games WHERE id = $1", id)
	g, err := pgx.CollectExactlyOneRow(rows, scanGame)
	if err != nil {
		return nil, mapReadError("get game", err)
	}
	return &g, nil
}

func (r *gameRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.s.tx.conn(ctx).QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM games WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check game: %w", err)
	}
	return exists, nil
}

func (r *gameRepository) Create(ctx context.Context, g *domain.Game) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`INSERT INTO games (mode, release_date, developer, system_requirement_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		g.Mode, g.ReleaseDate, g.Developer, g.SystemRequirementID,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return mapWriteError("create game", err)
	}
	return nil
}

func (r *gameRepository) Update(ctx context.Context, g *domain.Game) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`UPDATE games SET mode = $2, release_date = $3, developer = $4, system_requirement_id = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		g.ID, g.Mode, g.ReleaseDate, g.Developer, g.SystemRequirementID,
	).Scan(&g.UpdatedAt)
	if err != nil {
		return mapUpdateError("update game", err)
	}
	return nil
}

// Delete locks the game row so a concurrent product write cannot attach to it
// between the dependent check and the delete. Licenses go with the game
// through ON DELETE CASCADE.
func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	return r.s.tx.Do(ctx, func(ctx context.Context) error {
		db := r.s.tx.conn(ctx)

		var locked int64
		if err := db.QueryRow(ctx, "SELECT id FROM games WHERE id = $1 FOR UPDATE", id).Scan(&locked); err != nil {
			return mapReadError("lock game", err)
		}

		var used bool
		err := db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM products WHERE productable_type = $1 AND productable_id = $2)",
			string(domain.ProductableGame), id,
		).Scan(&used)
		if err != nil {
			return fmt.Errorf("check game products: %w", err)
		}
		if used {
			return &domain.RestrictError{Dependent: "product", One: true}
		}

		if _, err := db.Exec(ctx, "DELETE FROM games WHERE id = $1", id); err != nil {
			return mapDeleteError("delete game", err, "product")
		}
		return nil
	})
}
