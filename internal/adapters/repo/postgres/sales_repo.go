package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/domain"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/query"
)

type SalesRepo struct{ db *gorm.DB }

func NewSalesRepo(db *gorm.DB) *SalesRepo { return &SalesRepo{db: db} }

func (r *SalesRepo) FindPage(ctx context.Context, f query.Filter, s query.Sort, p query.Page) ([]domain.Transaction, int64, error) {
	return r.findPage(r.db.WithContext(ctx), f, s, p)
}

func (r *SalesRepo) Aggregate(ctx context.Context, f query.Filter) (domain.SalesTotals, error) {
	return r.aggregate(r.db.WithContext(ctx), f)
}

// FindPageWithTotals answers the page, the match count and the aggregates
// from one REPEATABLE READ snapshot, so the page and its metrics cannot
// disagree under concurrent writes.
func (r *SalesRepo) FindPageWithTotals(ctx context.Context, f query.Filter, s query.Sort, p query.Page) ([]domain.Transaction, int64, domain.SalesTotals, error) {
	var (
		list   []domain.Transaction
		total  int64
		totals domain.SalesTotals
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if list, total, err = r.findPage(tx, f, s, p); err != nil {
			return err
		}
		totals, err = r.aggregate(tx, f)
		return err
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, domain.SalesTotals{}, err
	}
	return list, total, totals, nil
}

func (r *SalesRepo) findPage(db *gorm.DB, f query.Filter, s query.Sort, p query.Page) ([]domain.Transaction, int64, error) {
	var total int64
	if err := r.scope(db, f, false, false).Count(&total).Error; err != nil {
		return nil, 0, wrap("count transactions", err)
	}
	var list []domain.Transaction
	q := r.scope(db, f, s.Field == query.SortCustomerName, false).
		Order(orderClause(s)).
		Offset(p.Offset).
		Limit(p.Limit).
		Preload("Customer").
		Preload("Product")
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, wrap("find transactions", err)
	}
	return list, total, nil
}

func (r *SalesRepo) aggregate(db *gorm.DB, f query.Filter) (domain.SalesTotals, error) {
	var row struct {
		Records     int64
		Units       int64
		TotalAmount float64
		FinalAmount float64
	}
	err := r.scope(db, f, false, false).
		Select("COUNT(*) AS records" +
			", COALESCE(SUM(transactions.quantity), 0) AS units" +
			", COALESCE(SUM(transactions.total_amount), 0) AS total_amount" +
			", COALESCE(SUM(transactions.final_amount), 0) AS final_amount").
		Scan(&row).Error
	if err != nil {
		return domain.SalesTotals{}, wrap("aggregate transactions", err)
	}
	return domain.SalesTotals{
		Records:     row.Records,
		Units:       row.Units,
		TotalAmount: row.TotalAmount,
		FinalAmount: row.FinalAmount,
	}, nil
}

// scope applies the filter's conditions to a transactions query, joining
// customers/products only when a condition (or the caller) needs them.
func (r *SalesRepo) scope(db *gorm.DB, f query.Filter, withCustomer, withProduct bool) *gorm.DB {
	q := db.Model(&domain.Transaction{})
	if withCustomer || f.Constrains(query.EntityCustomer) {
		q = q.Joins("JOIN customers ON customers.customer_id = transactions.customer_id")
	}
	if withProduct || f.Constrains(query.EntityProduct) {
		q = q.Joins("JOIN products ON products.product_id = transactions.product_id")
	}
	for _, c := range f.Conditions() {
		expr, arg := condClause(c)
		q = q.Where(expr, arg)
	}
	return q
}

func condClause(c query.Condition) (string, any) {
	col := column(c)
	switch c.Op {
	case query.OpGte:
		return col + " >= ?", c.Value
	case query.OpLt:
		return col + " < ?", c.Value
	case query.OpLte:
		return col + " <= ?", c.Value
	case query.OpIn:
		return col + " IN ?", c.Value
	case query.OpInFold:
		return "LOWER(" + col + ") IN ?", lowered(c.Value.([]string))
	case query.OpPrefixFold:
		return "LOWER(" + col + ") LIKE LOWER(?)", escapeLike(c.Value.(string)) + "%"
	case query.OpHasAllTags:
		b, _ := json.Marshal(c.Value.([]string))
		return col + " @> ?::jsonb", string(b)
	}
	// unreachable as long as condClause covers every query.Op
	return "1 = 1", nil
}

func column(c query.Condition) string {
	switch c.Entity {
	case query.EntityCustomer:
		return "customers." + c.Field
	case query.EntityProduct:
		return "products." + c.Field
	default:
		return "transactions." + c.Field
	}
}

// orderClause always tie-breaks on the primary key so pagination stays
// stable across equal sort values.
func orderClause(s query.Sort) string {
	col := "customers.customer_name"
	switch s.Field {
	case query.SortTotalAmount:
		col = "transactions.total_amount"
	case query.SortDate:
		col = "transactions.date"
	case query.SortQuantity:
		col = "transactions.quantity"
	}
	return fmt.Sprintf("%s %s, transactions.transaction_id asc", col, s.Direction)
}

func lowered(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.ToLower(v)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrQueryFailed, op, err)
}
