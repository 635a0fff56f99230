package domain

import (
	"math"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	q := ListQuery{Order: "password", Desc: true, Length: 500}.Normalize([]string{"id", "name"})

	if q.Page != DefaultPage || q.Length != MaxLength {
		t.Fatalf("expected page %d length %d, got %d %d", DefaultPage, MaxLength, q.Page, q.Length)
	}
	if q.Order != "id" || q.Desc {
		t.Fatalf("expected id asc, got %s desc=%v", q.Order, q.Desc)
	}
}

func TestNormalizeKeepsOffsetInRange(t *testing.T) {
	for _, page := range []int{92233720368547800, math.MaxInt} {
		q := ListQuery{Page: page, Length: 100}.Normalize(nil)

		if off := q.Offset(); off < 0 {
			t.Fatalf("expected a non-negative offset for page %d, got %d", page, off)
		}
		if q.Page > math.MaxInt/q.Length {
			t.Fatalf("expected page clamped, got %d", q.Page)
		}
	}
}

func TestNewPaginationRoundsPagesUp(t *testing.T) {
	meta := NewPagination(ListQuery{Page: 2, Length: 10}, 21)

	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", meta.TotalPages)
	}
}
