package pgrepo

import (
	"errors"
	"fmt"

	"gamestore-admin/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// uniqueFields maps unique index names to the request field they guard.
var uniqueFields = map[string]string{
	"coupons_code_key":             "code",
	"licenses_key_key":             "key",
	"users_email_key":              "email",
	"system_requirements_name_key": "name",
	"categories_name_key":          "name",
	"products_name_key":            "name",
}

// referenceFields maps foreign keys checked on insert/update to the field that
// carries the reference.
var referenceFields = map[string]string{
	"games_system_requirement_id_fkey":    "system_requirement",
	"licenses_game_id_fkey":               "game",
	"product_categories_category_id_fkey": "categories",
}

// mapWriteError turns constraint violations raised by an insert or update
// into domain errors. Other errors are wrapped with op.
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if field, ok := uniqueFields[pgErr.ConstraintName]; ok {
				return &domain.UniqueViolationError{Field: field}
			}
		case pgForeignKeyViolation:
			if field, ok := referenceFields[pgErr.ConstraintName]; ok {
				return &domain.ReferenceError{Field: field}
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mapDeleteError reports a restricting foreign key as a *domain.RestrictError
// naming dependent.
func mapDeleteError(op string, err error, dependent string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return &domain.RestrictError{Dependent: dependent}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mapReadError converts pgx.ErrNoRows into domain.ErrNotFound.
func mapReadError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affected returns domain.ErrNotFound when a write touched no row.
func affected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// mapUpdateError is mapWriteError for UPDATE ... RETURNING, where no row
// means the id is unknown.
func mapUpdateError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return mapWriteError(op, err)
}
