// Package memory implements domain.SalesRepo over in-process slices. It
// exists so the core can be exercised without a database; the condition
// fragments are evaluated here with the same semantics the postgres repo
// translates to SQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/domain"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/query"
)

type SalesRepo struct {
	mu           sync.RWMutex
	customers    map[string]domain.Customer
	products     map[string]domain.Product
	transactions []domain.Transaction
}

func NewSalesRepo() *SalesRepo {
	return &SalesRepo{
		customers: map[string]domain.Customer{},
		products:  map[string]domain.Product{},
	}
}

// Load replaces the stored dataset.
func (r *SalesRepo) Load(customers []domain.Customer, products []domain.Product, transactions []domain.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = make(map[string]domain.Customer, len(customers))
	for _, c := range customers {
		r.customers[c.CustomerID] = c
	}
	r.products = make(map[string]domain.Product, len(products))
	for _, p := range products {
		r.products[p.ProductID] = p
	}
	r.transactions = append([]domain.Transaction(nil), transactions...)
}

func (r *SalesRepo) FindPage(ctx context.Context, f query.Filter, s query.Sort, p query.Page) ([]domain.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	list, total, _ := r.evaluate(f, s, p, false)
	return list, total, nil
}

func (r *SalesRepo) Aggregate(ctx context.Context, f query.Filter) (domain.SalesTotals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return domain.SalesTotals{}, err
	}
	var totals domain.SalesTotals
	for _, t := range r.matches(f) {
		totals.Records++
		totals.Units += int64(t.Quantity)
		totals.TotalAmount += t.TotalAmount
		totals.FinalAmount += t.FinalAmount
	}
	return totals, nil
}

func (r *SalesRepo) FindPageWithTotals(ctx context.Context, f query.Filter, s query.Sort, p query.Page) ([]domain.Transaction, int64, domain.SalesTotals, error) {
	// one lock span doubles as the snapshot here
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := ctx.Err(); err != nil {
		return nil, 0, domain.SalesTotals{}, err
	}
	list, total, totals := r.evaluate(f, s, p, true)
	return list, total, totals, nil
}

func (r *SalesRepo) evaluate(f query.Filter, s query.Sort, p query.Page, withTotals bool) ([]domain.Transaction, int64, domain.SalesTotals) {
	matched := r.matches(f)
	var totals domain.SalesTotals
	if withTotals {
		for _, t := range matched {
			totals.Records++
			totals.Units += int64(t.Quantity)
			totals.TotalAmount += t.TotalAmount
			totals.FinalAmount += t.FinalAmount
		}
	}
	r.order(matched, s)

	total := int64(len(matched))
	start := p.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + p.Limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]domain.Transaction, 0, end-start)
	for _, t := range matched[start:end] {
		t.Customer = r.customers[t.CustomerID]
		t.Product = r.products[t.ProductID]
		page = append(page, t)
	}
	return page, total, totals
}

func (r *SalesRepo) matches(f query.Filter) []domain.Transaction {
	conds := f.Conditions()
	var out []domain.Transaction
	for _, t := range r.transactions {
		ok := true
		for _, c := range conds {
			if !r.matchCond(t, c) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, t)
		}
	}
	return out
}

func (r *SalesRepo) matchCond(t domain.Transaction, c query.Condition) bool {
	cust := r.customers[t.CustomerID]
	prod := r.products[t.ProductID]
	switch c.Op {
	case query.OpGte:
		switch v := c.Value.(type) {
		case time.Time:
			return !t.Date.Before(v)
		case int:
			return cust.Age >= v
		}
	case query.OpLt:
		if v, ok := c.Value.(time.Time); ok {
			return t.Date.Before(v)
		}
	case query.OpLte:
		if v, ok := c.Value.(int); ok {
			return cust.Age <= v
		}
	case query.OpIn, query.OpInFold:
		val := ""
		switch c.Field {
		case query.FieldPaymentMethod:
			val = t.PaymentMethod
		case query.FieldGender:
			val = cust.Gender
		case query.FieldCustomerRegion:
			val = cust.CustomerRegion
		case query.FieldProductCategory:
			val = prod.ProductCategory
		}
		fold := c.Op == query.OpInFold
		for _, want := range c.Value.([]string) {
			if val == want || (fold && strings.EqualFold(val, want)) {
				return true
			}
		}
		return false
	case query.OpPrefixFold:
		val := cust.CustomerName
		if c.Field == query.FieldPhoneNumber {
			val = cust.PhoneNumber
		}
		return strings.HasPrefix(strings.ToLower(val), strings.ToLower(c.Value.(string)))
	case query.OpHasAllTags:
		have := map[string]bool{}
		for _, tag := range prod.Tags {
			have[tag] = true
		}
		for _, want := range c.Value.([]string) {
			if !have[want] {
				return false
			}
		}
		return true
	}
	return false
}

func (r *SalesRepo) order(list []domain.Transaction, s query.Sort) {
	desc := s.Direction == query.DirDesc
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		var less, eq bool
		switch s.Field {
		case query.SortTotalAmount:
			less, eq = a.TotalAmount < b.TotalAmount, a.TotalAmount == b.TotalAmount
		case query.SortDate:
			less, eq = a.Date.Before(b.Date), a.Date.Equal(b.Date)
		case query.SortQuantity:
			less, eq = a.Quantity < b.Quantity, a.Quantity == b.Quantity
		default:
			an := r.customers[a.CustomerID].CustomerName
			bn := r.customers[b.CustomerID].CustomerName
			less, eq = an < bn, an == bn
		}
		if eq {
			// same tie-break the SQL repo appends
			return a.TransactionID < b.TransactionID
		}
		if desc {
			return !less
		}
		return less
	})
}
