package query

import (
	"strconv"
	"strings"
)

// SortField is one of the closed set of sortable fields. Keeping the set
// closed blocks injection through the order clause and keeps every sort
// backed by an index.
type SortField string

const (
	SortCustomerName SortField = "customerName"
	SortTotalAmount  SortField = "totalAmount"
	SortDate         SortField = "date"
	SortQuantity     SortField = "quantity"
)

type Direction string

const (
	DirAsc  Direction = "asc"
	DirDesc Direction = "desc"
)

type Sort struct {
	Field     SortField
	Direction Direction
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a resolved page request. Offset is always (Number-1)*Limit.
type Page struct {
	Number int
	Limit  int
	Offset int
}

// ResolveSort validates orderBy/orderByType, falling back to customerName
// ascending for anything outside the allowed sets.
func ResolveSort(orderBy, orderByType string) Sort {
	s := Sort{Field: SortCustomerName, Direction: DirAsc}
	switch SortField(orderBy) {
	case SortCustomerName, SortTotalAmount, SortDate, SortQuantity:
		s.Field = SortField(orderBy)
	}
	if Direction(orderByType) == DirDesc {
		s.Direction = DirDesc
	}
	return s
}

// ResolvePage parses page/limit leniently: non numeric or non positive pages
// become 1, limits default to 10 and are capped at 100.
func ResolvePage(pageParam, limitParam string) Page {
	page := positiveInt(pageParam, 1)
	limit := positiveInt(limitParam, DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: page, Limit: limit, Offset: (page - 1) * limit}
}

func positiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
