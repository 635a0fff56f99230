package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDeleteRestricted   = errors.New("delete restricted by dependent records")
	ErrUniqueViolation    = errors.New("unique constraint violated")
	ErrMissingReference   = errors.New("referenced record missing")
	ErrInvalidCredentials = errors.New("invalid login credentials")
)

// NotFoundError names the request field whose id did not resolve
// ("id" for the primary key, "game_id" for a parent scope).
type NotFoundError struct {
	Resource string
	Field    string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("couldn't find %s with '%s'=%d", e.Resource, e.Field, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// RestrictError is returned by a store when a delete would orphan dependents.
// One marks a to-one association ("a dependent product exists").
type RestrictError struct {
	Dependent string
	One       bool
}

func (e *RestrictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDeleteRestricted, e.Dependent)
}

func (e *RestrictError) Is(target error) bool { return target == ErrDeleteRestricted }

// Message is the user-facing sentence rendered under the "base" field.
func (e *RestrictError) Message() string {
	if e.One {
		return fmt.Sprintf("Cannot delete record because a dependent %s exists", e.Dependent)
	}
	return fmt.Sprintf("Cannot delete record because dependent %s exist", e.Dependent)
}

// ReferenceError is returned by a store when a write points at a row that is
// gone, typically deleted between validation and the insert.
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingReference, e.Field)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrMissingReference }

// UniqueViolationError is returned by a store when a unique index rejects a write
// that slipped past validation (two concurrent creates, for instance).
type UniqueViolationError struct {
	Field string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUniqueViolation, e.Field)
}

func (e *UniqueViolationError) Is(target error) bool { return target == ErrUniqueViolation }
