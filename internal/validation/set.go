// Package validation evaluates declarative per-field rule tables.
//
// A Set is an ordered list of fields, each carrying an ordered list of rules.
// Validate runs every rule of every field and reports all violations at once.
// The evaluation time is an argument so time-dependent rules stay deterministic.
package validation

import (
	"context"
	"fmt"
	"time"
)

// Field binds a candidate value to the rules that guard it.
type Field struct {
	Name  string
	Value any
	Rules []Rule
}

// Set is a rule table for one entity.
type Set []Field

// Validate evaluates the whole table against now. It returns a nil Errors when
// the candidate is valid. A non-nil error means a rule could not be evaluated
// (for example a store lookup failed) and the result must not be trusted.
func (s Set) Validate(ctx context.Context, now time.Time) (Errors, error) {
	errs := Errors{}
	for _, f := range s {
		for _, rule := range f.Rules {
			msg, err := rule.Check(ctx, now, f.Value)
			if err != nil {
				return nil, fmt.Errorf("validate %s: %w", f.Name, err)
			}
			if msg != "" {
				errs.Add(f.Name, msg)
			}
		}
	}
	if !errs.Any() {
		return nil, nil
	}
	return errs, nil
}

// Check is Validate for callers that only care about a single error value.
// It returns Errors (as error) on violations.
func (s Set) Check(ctx context.Context, now time.Time) error {
	errs, err := s.Validate(ctx, now)
	if err != nil {
		return err
	}
	if errs.Any() {
		return errs
	}
	return nil
}
