package usecase

import (
	"context"
	"errors"
	"fmt"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/validation"
)

// takenLookup adapts a repository uniqueness check into a rule lookup that
// ignores the row with excludeID.
func takenLookup(check func(ctx context.Context, value string, excludeID int64) (bool, error), excludeID int64) validation.Lookup {
	return func(ctx context.Context, value any) (bool, error) {
		s, _ := value.(string)
		return check(ctx, s, excludeID)
	}
}

// idLookup adapts a repository existence check on a single id.
func idLookup(check func(ctx context.Context, id int64) (bool, error)) validation.Lookup {
	return func(ctx context.Context, value any) (bool, error) {
		id, _ := value.(int64)
		return check(ctx, id)
	}
}

// notFound names the request field that failed to resolve when err is a miss.
func notFound(resource, field string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.NotFoundError{Resource: resource, Field: field, ID: id}
	}
	return fmt.Errorf("load %s: %w", resource, err)
}

// storeError turns constraint failures raised by the store into the field
// errors validation would have produced. A miss on id becomes a NotFoundError.
func storeError(op, resource string, id int64, err error) error {
	var (
		invalid  validation.Errors
		unique   *domain.UniqueViolationError
		ref      *domain.ReferenceError
		restrict *domain.RestrictError
	)
	switch {
	case errors.As(err, &invalid):
		return invalid
	case errors.As(err, &unique):
		return validation.Errors{unique.Field: {validation.MsgTaken}}
	case errors.As(err, &ref):
		return validation.Errors{ref.Field: {validation.MsgMustExist}}
	case errors.As(err, &restrict):
		return validation.Errors{"base": {restrict.Message()}}
	case errors.Is(err, domain.ErrNotFound):
		return &domain.NotFoundError{Resource: resource, Field: "id", ID: id}
	}
	return fmt.Errorf("%s %s: %w", op, resource, err)
}
