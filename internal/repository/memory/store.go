// Package memory is a process-local Entity Store. It backs the test suites and
// the STORE_DRIVER=memory mode, and mirrors the referential behavior of the
// Postgres schema (restrict and cascade deletes).
package memory

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"gamestore-admin/internal/domain"
)

// Store holds every table behind one lock.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	seq map[string]int64

	coupons      map[int64]domain.Coupon
	licenses     map[int64]domain.License
	games        map[int64]domain.Game
	users        map[int64]domain.User
	requirements map[int64]domain.SystemRequirement
	categories   map[int64]domain.Category
	products     map[int64]domain.Product
}

func NewStore() *Store {
	return &Store{
		now:          time.Now,
		seq:          make(map[string]int64),
		coupons:      make(map[int64]domain.Coupon),
		licenses:     make(map[int64]domain.License),
		games:        make(map[int64]domain.Game),
		users:        make(map[int64]domain.User),
		requirements: make(map[int64]domain.SystemRequirement),
		categories:   make(map[int64]domain.Category),
		products:     make(map[int64]domain.Product),
	}
}

func (s *Store) Coupons() domain.CouponRepository { return &couponRepository{s} }

func (s *Store) Licenses() domain.LicenseRepository { return &licenseRepository{s} }

func (s *Store) Games() domain.GameRepository { return &gameRepository{s} }

func (s *Store) Users() domain.UserRepository { return &userRepository{s} }

func (s *Store) SystemRequirements() domain.SystemRequirementRepository {
	return &systemRequirementRepository{s}
}

func (s *Store) Categories() domain.CategoryRepository { return &categoryRepository{s} }

func (s *Store) Products() domain.ProductRepository { return &productRepository{s} }

// nextID must be called with the write lock held.
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// sortedValues returns the rows of m ordered by id.
func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

// comparator orders two rows by one column.
type comparator[T any] func(a, b T) int

func byString[T any](get func(T) string) comparator[T] {
	return func(a, b T) int { return cmp.Compare(get(a), get(b)) }
}

// page filters rows by a case-insensitive substring on searchOn, orders them
// by q.Order (falling back to id order, which rows already have) and slices
// out the requested page. q must be normalized.
func page[T any](rows []T, q domain.ListQuery, searchOn func(T) string, columns map[string]comparator[T]) ([]T, int64) {
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		rows = slices.DeleteFunc(rows, func(r T) bool {
			return !strings.Contains(strings.ToLower(searchOn(r)), term)
		})
	}

	if compare, ok := columns[q.Order]; ok {
		slices.SortStableFunc(rows, func(a, b T) int {
			c := compare(a, b)
			if q.Desc {
				return -c
			}
			return c
		})
	} else if q.Desc {
		slices.Reverse(rows)
	}

	total := int64(len(rows))
	start := min(q.Offset(), len(rows))
	end := min(start+q.Length, len(rows))
	return rows[start:end], total
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
