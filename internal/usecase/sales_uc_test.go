package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/adapters/repo/memory"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/domain"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/query"
)

func seededUC() *SalesUC {
	repo := memory.NewSalesRepo()
	repo.Load(
		[]domain.Customer{{CustomerID: "C1", CustomerName: "Ann", Gender: "Female", Age: 28, CustomerRegion: "North"}},
		[]domain.Product{{ProductID: "P1", ProductCategory: "Books", Tags: []string{"gift"}}},
		[]domain.Transaction{
			{TransactionID: 1, CustomerID: "C1", ProductID: "P1", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Quantity: 2, TotalAmount: 40, FinalAmount: 36},
			{TransactionID: 2, CustomerID: "C1", ProductID: "P1", Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), Quantity: 1, TotalAmount: 20, FinalAmount: 20},
		},
	)
	return &SalesUC{Sales: repo}
}

func TestQueryLightPath(t *testing.T) {
	uc := seededUC()
	res, err := uc.Query(context.Background(), SalesQuery{
		Sort: query.ResolveSort("", ""),
		Page: query.ResolvePage("", ""),
	})
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.Equal(t, int64(2), res.Total)
	assert.Nil(t, res.Totals) // light reads carry no metrics
}

func TestQueryHeavyPath(t *testing.T) {
	uc := seededUC()
	res, err := uc.Query(context.Background(), SalesQuery{
		Sort:          query.ResolveSort("", ""),
		Page:          query.ResolvePage("1", "1"),
		IncludeTotals: true,
	})
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)
	assert.Equal(t, int64(2), res.Total)
	require.NotNil(t, res.Totals)
	assert.Equal(t, int64(2), res.Totals.Records)
	assert.Equal(t, int64(3), res.Totals.Units)
	assert.InDelta(t, 4.0, res.Totals.TotalDiscount(), 1e-9)
}

func TestTotals(t *testing.T) {
	uc := seededUC()
	totals, err := uc.Totals(context.Background(), query.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.Records)
	assert.InDelta(t, 60.0, totals.TotalAmount, 1e-9)
}

type failingRepo struct{ err error }

func (r failingRepo) FindPage(context.Context, query.Filter, query.Sort, query.Page) ([]domain.Transaction, int64, error) {
	return nil, 0, r.err
}
func (r failingRepo) Aggregate(context.Context, query.Filter) (domain.SalesTotals, error) {
	return domain.SalesTotals{}, r.err
}
func (r failingRepo) FindPageWithTotals(context.Context, query.Filter, query.Sort, query.Page) ([]domain.Transaction, int64, domain.SalesTotals, error) {
	return nil, 0, domain.SalesTotals{}, r.err
}

func TestQueryPropagatesFailure(t *testing.T) {
	cause := errors.New("connection refused")
	uc := &SalesUC{Sales: failingRepo{err: cause}}

	_, err := uc.Query(context.Background(), SalesQuery{IncludeTotals: true})
	assert.ErrorIs(t, err, cause)

	_, err = uc.Totals(context.Background(), query.Filter{})
	assert.ErrorIs(t, err, cause)
}
