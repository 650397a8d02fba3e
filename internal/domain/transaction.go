package domain

import (
	"context"
	"errors"
	"time"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/query"
)

// ErrQueryFailed marks any data-access failure. The repos wrap every
// database error with it; the HTTP layer is the single place it is caught.
var ErrQueryFailed = errors.New("query failed")

// Transaction is one sale line from the dataset. TransactionID is an int64
// on purpose: it can exceed JSON's safe integer range, so the wire layer
// renders it as a string.
type Transaction struct {
	TransactionID   int64     `gorm:"primaryKey;autoIncrement:false"`
	CustomerID      string    `gorm:"size:40;index"`
	ProductID       string    `gorm:"size:40;index"`
	Date            time.Time `gorm:"index"`
	Quantity        int
	PricePerUnit    float64 `gorm:"type:decimal(12,2)"`
	DiscountPercent float64 `gorm:"type:decimal(5,2)"`
	TotalAmount     float64 `gorm:"type:decimal(12,2);index"`
	FinalAmount     float64 `gorm:"type:decimal(12,2)"`
	PaymentMethod   string  `gorm:"size:40;index"`
	OrderStatus     string  `gorm:"size:30"`
	DeliveryType    string  `gorm:"size:30"`
	StoreID         string  `gorm:"size:40"`
	StoreLocation   string  `gorm:"size:100"`
	SalespersonID   string  `gorm:"size:40"`
	EmployeeName    string  `gorm:"size:140"`

	Customer Customer `gorm:"foreignKey:CustomerID;references:CustomerID"`
	Product  Product  `gorm:"foreignKey:ProductID;references:ProductID"`
}

// SalesTotals are the aggregate sums over a filtered set. Discount is
// derived, never stored.
type SalesTotals struct {
	Records     int64
	Units       int64
	TotalAmount float64
	FinalAmount float64
}

// TotalDiscount is sum(totalAmount) - sum(finalAmount) over the matched set.
func (t SalesTotals) TotalDiscount() float64 {
	return t.TotalAmount - t.FinalAmount
}

// SalesRepo is the read-only data access the core depends on. FindPage and
// Aggregate are single statements, self-consistent on their own;
// FindPageWithTotals must answer both from one snapshot so the page and its
// metrics cannot disagree.
type SalesRepo interface {
	FindPage(ctx context.Context, f query.Filter, s query.Sort, p query.Page) ([]Transaction, int64, error)
	Aggregate(ctx context.Context, f query.Filter) (SalesTotals, error)
	FindPageWithTotals(ctx context.Context, f query.Filter, s query.Sort, p query.Page) ([]Transaction, int64, SalesTotals, error)
}
