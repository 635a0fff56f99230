package validation

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Rule checks one value. An empty violation means the value passed.
type Rule interface {
	Check(ctx context.Context, now time.Time, value any) (violation string, err error)
}

// RuleFunc adapts a function to Rule.
type RuleFunc func(ctx context.Context, now time.Time, value any) (string, error)

func (f RuleFunc) Check(ctx context.Context, now time.Time, value any) (string, error) {
	return f(ctx, now, value)
}

// Lookup asks the store about a value. Unique treats true as "taken",
// Exists treats true as "found".
type Lookup func(ctx context.Context, value any) (bool, error)

// Blanker lets domain types decide their own emptiness.
type Blanker interface {
	IsBlank() bool
}

const (
	MsgBlank       = "can't be blank"
	MsgTaken       = "has already been taken"
	MsgNotIncluded = "is not included in the list"
	MsgMustExist   = "must exist"
	MsgFuture      = "must be after current date"
	MsgInvalid     = "is invalid"
	MsgNotNumber   = "is not a number"
)

// Required rejects nil, empty and whitespace-only values.
func Required() Rule {
	return RuleFunc(func(_ context.Context, _ time.Time, v any) (string, error) {
		if IsBlank(v) {
			return MsgBlank, nil
		}
		return "", nil
	})
}

// GreaterThan requires a decimal strictly above threshold.
func GreaterThan(threshold decimal.Decimal) Rule {
	return RuleFunc(func(_ context.Context, _ time.Time, v any) (string, error) {
		if IsBlank(v) {
			return "", nil
		}
		d, ok := asDecimal(v)
		if !ok {
			return MsgNotNumber, nil
		}
		if !d.GreaterThan(threshold) {
			return fmt.Sprintf("must be greater than %s", threshold.String()), nil
		}
		return "", nil
	})
}

// LessThan requires a decimal strictly below limit.
func LessThan(limit decimal.Decimal) Rule {
	return RuleFunc(func(_ context.Context, _ time.Time, v any) (string, error) {
		if IsBlank(v) {
			return "", nil
		}
		d, ok := asDecimal(v)
		if !ok {
			return MsgNotNumber, nil
		}
		if !d.LessThan(limit) {
			return fmt.Sprintf("must be less than %s", limit.String()), nil
		}
		return "", nil
	})
}

// Inclusion requires the value to be one of allowed. Comparison is case-sensitive.
func Inclusion(allowed ...string) Rule {
	return RuleFunc(func(_ context.Context, _ time.Time, v any) (string, error) {
		if IsBlank(v) {
			return "", nil
		}
		s, ok := asString(v)
		if !ok || !slices.Contains(allowed, s) {
			return MsgNotIncluded, nil
		}
		return "", nil
	})
}

// Unique rejects values the lookup reports as already taken by another row.
func Unique(taken Lookup) Rule {
	return RuleFunc(func(ctx context.Context, _ time.Time, v any) (string, error) {
		if IsBlank(v) {
			return "", nil
		}
		found, err := taken(ctx, v)
		if err != nil {
			return "", err
		}
		if found {
			return MsgTaken, nil
		}
		return "", nil
	})
}

// Exists rejects references the lookup cannot resolve.
func Exists(found Lookup) Rule {
	return RuleFunc(func(ctx context.Context, _ time.Time, v any) (string, error) {
		if IsBlank(v) {
			return "", nil
		}
		ok, err := found(ctx, v)
		if err != nil {
			return "", err
		}
		if !ok {
			return MsgMustExist, nil
		}
		return "", nil
	})
}

// FutureDate requires a timestamp strictly after now. now is the evaluation
// time handed to Set.Validate, not the time the rule was built.
func FutureDate() Rule {
	return RuleFunc(func(_ context.Context, now time.Time, v any) (string, error) {
		if IsBlank(v) {
			return "", nil
		}
		t, ok := asTime(v)
		if !ok || !t.After(now) {
			return MsgFuture, nil
		}
		return "", nil
	})
}

// Length bounds the rune count of a string. max <= 0 means unbounded.
func Length(min, max int) Rule {
	return RuleFunc(func(_ context.Context, _ time.Time, v any) (string, error) {
		if IsBlank(v) {
			return "", nil
		}
		s, _ := asString(v)
		n := utf8.RuneCountInString(s)
		if n < min {
			return fmt.Sprintf("is too short (minimum is %d characters)", min), nil
		}
		if max > 0 && n > max {
			return fmt.Sprintf("is too long (maximum is %d characters)", max), nil
		}
		return "", nil
	})
}

// Format requires a string matching re.
func Format(re *regexp.Regexp) Rule {
	return RuleFunc(func(_ context.Context, _ time.Time, v any) (string, error) {
		if IsBlank(v) {
			return "", nil
		}
		s, ok := asString(v)
		if !ok || !re.MatchString(s) {
			return MsgInvalid, nil
		}
		return "", nil
	})
}

// Confirms requires the value to equal other. label names the confirmed field
// in the message.
func Confirms(other *string, label string) Rule {
	return RuleFunc(func(_ context.Context, _ time.Time, v any) (string, error) {
		s, ok := v.(*string)
		if !ok || s == nil {
			return "", nil
		}
		if other == nil || *other != *s {
			return fmt.Sprintf("doesn't match %s", label), nil
		}
		return "", nil
	})
}

// IsBlank reports whether v counts as missing.
func IsBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case *string:
		return x == nil || strings.TrimSpace(*x) == ""
	case int64:
		return x == 0
	case *int64:
		return x == nil || *x == 0
	case []int64:
		return len(x) == 0
	case decimal.Decimal:
		return false
	case *decimal.Decimal:
		return x == nil
	case time.Time:
		return x.IsZero()
	case *time.Time:
		return x == nil || x.IsZero()
	case Blanker:
		return x.IsBlank()
	}
	return false
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", true
		}
		return *x, true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case *decimal.Decimal:
		return *x, true
	}
	return decimal.Zero, false
}

func asTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		return *x, true
	}
	return time.Time{}, false
}
