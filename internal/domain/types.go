package domain

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Clock returns the current time. Use cases take one so time-dependent
// validation can be pinned in tests.
type Clock func() time.Time

const (
	DefaultPage   = 1
	DefaultLength = 10
	MaxLength     = 100
)

// Money columns are NUMERIC(10, 2): amounts are kept to cents and must stay
// below MaxMoney.
const MoneyPlaces = 2

var MaxMoney = decimal.New(1, 8)

// money rounds d to the stored scale, half away from zero like the database.
func money(d decimal.Decimal) *decimal.Decimal {
	r := d.Round(MoneyPlaces)
	return &r
}

// ListQuery carries search, ordering and pagination for paginated lists.
type ListQuery struct {
	Search string
	Order  string // column name, whitelisted per resource
	Desc   bool
	Page   int
	Length int
}

// Normalize applies defaults and drops an order column that is not orderable.
func (q ListQuery) Normalize(orderable []string) ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Length < 1 {
		q.Length = DefaultLength
	}
	if q.Length > MaxLength {
		q.Length = MaxLength
	}
	// keep Offset within int
	if q.Page > math.MaxInt/q.Length {
		q.Page = math.MaxInt / q.Length
	}
	if !slices.Contains(orderable, q.Order) {
		q.Order = "id"
		q.Desc = false
	}
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Length
}

// Pagination is rendered as the "meta" object of paginated lists.
type Pagination struct {
	Page       int   `json:"page"`
	Length     int   `json:"length"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination builds the meta block for a normalized query and a total row count.
func NewPagination(q ListQuery, total int64) Pagination {
	pages := int((total + int64(q.Length) - 1) / int64(q.Length))
	return Pagination{
		Page:       q.Page,
		Length:     q.Length,
		Total:      total,
		TotalPages: pages,
	}
}
