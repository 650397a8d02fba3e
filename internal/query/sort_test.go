package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSort(t *testing.T) {
	tests := []struct {
		orderBy, orderByType string
		field                SortField
		dir                  Direction
	}{
		{"customerName", "asc", SortCustomerName, DirAsc},
		{"totalAmount", "desc", SortTotalAmount, DirDesc},
		{"date", "desc", SortDate, DirDesc},
		{"quantity", "asc", SortQuantity, DirAsc},
		{"", "", SortCustomerName, DirAsc},
		{"pricePerUnit", "asc", SortCustomerName, DirAsc},
		{"transactions.date; --", "desc", SortCustomerName, DirDesc},
		{"date", "DESC", SortDate, DirAsc},
		{"date", "descending", SortDate, DirAsc},
	}
	for _, tt := range tests {
		s := ResolveSort(tt.orderBy, tt.orderByType)
		assert.Equal(t, tt.field, s.Field, "orderBy=%q", tt.orderBy)
		assert.Equal(t, tt.dir, s.Direction, "orderByType=%q", tt.orderByType)
	}
}

func TestResolvePage(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 10},
		{"3", "25", 3, 25},
		{"0", "0", 1, 10},
		{"-2", "-5", 1, 10},
		{"abc", "xyz", 1, 10},
		{"2", "100", 2, 100},
		{"2", "101", 2, 100},
		{"1", "99999", 1, 100},
	}
	for _, tt := range tests {
		p := ResolvePage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, p.Number, "page=%q", tt.page)
		assert.Equal(t, tt.wantLimit, p.Limit, "limit=%q", tt.limit)
		assert.Equal(t, (tt.wantPage-1)*tt.wantLimit, p.Offset)
	}
}
