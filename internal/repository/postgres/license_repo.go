package pgrepo

import (
	"context"

	"gamestore-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

type licenseRepository struct{ s *Store }

const licenseColumns = "id, key, platform, status, game_id, created_at, updated_at"

func scanLicense(row pgx.CollectableRow) (domain.License, error) {
	var l domain.License
	err := row.Scan(&l.ID, &l.Key, &l.Platform, &l.Status, &l.GameID, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *licenseRepository) ListByGame(ctx context.Context, gameID int64, q domain.ListQuery) ([]domain.License, int64, error) {
	return listPage(ctx, r.s.tx.conn(ctx), listQuery{
		table:   "licenses",
		columns: licenseColumns,
		search:  "key",
		where:   []string{"game_id = $1"},
		args:    []any{gameID},
	}, q, scanLicense)
}

func (r *licenseRepository) GetByID(ctx context.Context, id int64) (*domain.License, error) {
	rows, _ := r.s.tx.conn(ctx).Query(ctx, "SELECT "+licenseColumns+" FROM licenses WHERE id = $1", id)
	l, err := pgx.CollectExactlyOneRow(rows, scanLicense)
	if err != nil {
		return nil, mapReadError("get license", err)
	}
	return &l, nil
}

func (r *licenseRepository) Create(ctx context.Context, l *domain.License) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`INSERT INTO licenses (key, platform, status, game_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		l.Key, l.Platform, l.Status, l.GameID,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return mapWriteError("create license", err)
	}
	return nil
}

func (r *licenseRepository) Update(ctx context.Context, l *domain.License) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`UPDATE licenses SET key = $2, platform = $3, status = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		l.ID, l.Key, l.Platform, l.Status,
	).Scan(&l.UpdatedAt)
	if err != nil {
		return mapUpdateError("update license", err)
	}
	return nil
}

func (r *licenseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.tx.conn(ctx).Exec(ctx, "DELETE FROM licenses WHERE id = $1", id)
	if err != nil {
		return mapWriteError("delete license", err)
	}
	return affected(tag)
}

func (r *licenseRepository) KeyTaken(ctx context.Context, key string, excludeID int64) (bool, error) {
	return taken(ctx, r.s.tx.conn(ctx), "licenses", "key", key, excludeID)
}
