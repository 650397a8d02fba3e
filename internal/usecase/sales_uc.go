package usecase

import (
	"context"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/domain"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/query"
)

// SalesUC runs the read operations over an injected repository. It holds no
// state of its own; each call is one or two repo round trips.
type SalesUC struct {
	Sales domain.SalesRepo
}

// SalesQuery is one resolved request: filter, sort and paging plus whether
// the caller wants aggregates computed alongside the page.
type SalesQuery struct {
	Filter        query.Filter
	Sort          query.Sort
	Page          query.Page
	IncludeTotals bool
}

// SalesPage is a page of transactions with the match count and, on the heavy
// path, the aggregates from the same snapshot.
type SalesPage struct {
	Records []domain.Transaction
	Total   int64
	Totals  *domain.SalesTotals
}

func (uc *SalesUC) Query(ctx context.Context, q SalesQuery) (*SalesPage, error) {
	if !q.IncludeTotals {
		records, total, err := uc.Sales.FindPage(ctx, q.Filter, q.Sort, q.Page)
		if err != nil {
			return nil, err
		}
		return &SalesPage{Records: records, Total: total}, nil
	}
	records, total, totals, err := uc.Sales.FindPageWithTotals(ctx, q.Filter, q.Sort, q.Page)
	if err != nil {
		return nil, err
	}
	return &SalesPage{Records: records, Total: total, Totals: &totals}, nil
}

// Totals serves the standalone KPI endpoints; each is one aggregate query
// over the same predicate the page query uses.
func (uc *SalesUC) Totals(ctx context.Context, f query.Filter) (domain.SalesTotals, error) {
	return uc.Sales.Aggregate(ctx, f)
}
