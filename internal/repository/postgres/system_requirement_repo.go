package pgrepo

import (
	"context"

	"gamestore-admin/internal/domain"

	"github.com/jackc/pgx/v5"
)

type systemRequirementRepository struct{ s *Store }

const systemRequirementColumns = "id, name, operational_system, storage, processor, memory, video_board, created_at, updated_at"

func scanSystemRequirement(row pgx.CollectableRow) (domain.SystemRequirement, error) {
	var sr domain.SystemRequirement
	err := row.Scan(&sr.ID, &sr.Name, &sr.OperationalSystem, &sr.Storage, &sr.Processor,
		&sr.Memory, &sr.VideoBoard, &sr.CreatedAt, &sr.UpdatedAt)
	return sr, err
}

func (r *systemRequirementRepository) List(ctx context.Context) ([]domain.SystemRequirement, error) {
	rows, err := r.s.tx.conn(ctx).Query(ctx, "SELECT "+systemRequirementColumns+" FROM system_requirements ORDER BY id")
	if err != nil {
		return nil, mapReadError("list system requirements", err)
	}
	out, err := pgx.CollectRows(rows, scanSystemRequirement)
	if err != nil {
		return nil, mapReadError("list system requirements", err)
	}
	return out, nil
}

func (r *systemRequirementRepository) GetByID(ctx context.Context, id int64) (*domain.SystemRequirement, error) {
	rows, _ := r.s.tx.conn(ctx).Query(ctx, "SELECT "+systemRequirementColumns+" FROM system_requirements WHERE id = $1", id)
	sr, err := pgx.CollectExactlyOneRow(rows, scanSystemRequirement)
	if err != nil {
		return nil, mapReadError("get system requirement", err)
	}
	return &sr, nil
}

func (r *systemRequirementRepository) Create(ctx context.Context, sr *domain.SystemRequirement) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`INSERT INTO system_requirements (name, operational_system, storage, processor, memory, video_board)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		sr.Name, sr.OperationalSystem, sr.Storage, sr.Processor, sr.Memory, sr.VideoBoard,
	).Scan(&sr.ID, &sr.CreatedAt, &sr.UpdatedAt)
	if err != nil {
		return mapWriteError("create system requirement", err)
	}
	return nil
}

func (r *systemRequirementRepository) Update(ctx context.Context, sr *domain.SystemRequirement) error {
	err := r.s.tx.conn(ctx).QueryRow(ctx,
		`UPDATE system_requirements
		 SET name = $2, operational_system = $3, storage = $4, processor = $5, memory = $6, video_board = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		sr.ID, sr.Name, sr.OperationalSystem, sr.Storage, sr.Processor, sr.Memory, sr.VideoBoard,
	).Scan(&sr.UpdatedAt)
	if err != nil {
		return mapUpdateError("update system requirement", err)
	}
	return nil
}

// Delete relies on the games foreign key (ON DELETE RESTRICT).
func (r *systemRequirementRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.s.tx.conn(ctx).Exec(ctx, "DELETE FROM system_requirements WHERE id = $1", id)
	if err != nil {
		return mapDeleteError("delete system requirement", err, "games")
	}
	return affected(tag)
}

func (r *systemRequirementRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	return taken(ctx, r.s.tx.conn(ctx), "system_requirements", "name", name, excludeID)
}
