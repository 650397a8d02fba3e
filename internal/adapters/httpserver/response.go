package httpserver

import (
	"net/url"
	"strconv"
	"time"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/domain"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/query"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/usecase"
)

// TransactionResponse is the wire shape of one joined record. The
// transaction ID goes out as a string: the column is 64 bits wide and JSON
// callers only handle 53 safely.
type TransactionResponse struct {
	TransactionID string          `json:"transactionId"`
	Date          time.Time       `json:"date"`
	CustomerID    string          `json:"customerId"`
	ProductID     string          `json:"productId"`
	Quantity      int             `json:"quantity"`
	TotalAmount   float64         `json:"totalAmount"`
	EmployeeName  string          `json:"employeeName"`
	Customer      CustomerSummary `json:"customer"`
	Product       ProductSummary  `json:"product"`
}

type CustomerSummary struct {
	CustomerName   string `json:"customerName"`
	PhoneNumber    string `json:"phoneNumber"`
	Gender         string `json:"gender"`
	Age            int    `json:"age"`
	CustomerRegion string `json:"customerRegion"`
}

type ProductSummary struct {
	ProductCategory string `json:"productCategory"`
}

type PaginationResponse struct {
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
	HasNext    bool           `json:"hasNext"`
	HasPrev    bool           `json:"hasPrev"`
	Filters    map[string]any `json:"filters"`
}

// SortResponse echoes the resolved sort, post-fallback, never the raw input.
type SortResponse struct {
	OrderBy     query.SortField `json:"orderBy"`
	OrderByType query.Direction `json:"orderByType"`
}

type MetricsResponse struct {
	TotalUnitsSold int64   `json:"totalUnitsSold"`
	TotalAmount    float64 `json:"totalAmount"`
	TotalDiscount  float64 `json:"totalDiscount"`
	SalesRecords   int64   `json:"salesRecords"`
}

type QueryResponse struct {
	Success    bool                  `json:"success"`
	Data       []TransactionResponse `json:"data"`
	Pagination PaginationResponse    `json:"pagination"`
	Sort       SortResponse          `json:"sort"`
	Metrics    *MetricsResponse      `json:"metrics,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func shapeQueryResponse(res *usecase.SalesPage, s query.Sort, p query.Page, raw url.Values) QueryResponse {
	data := make([]TransactionResponse, 0, len(res.Records))
	for _, t := range res.Records {
		data = append(data, shapeTransaction(t))
	}
	resp := QueryResponse{
		Success:    true,
		Data:       data,
		Pagination: shapePagination(p, res.Total, raw),
		Sort:       SortResponse{OrderBy: s.Field, OrderByType: s.Direction},
	}
	if res.Totals != nil {
		m := shapeMetrics(*res.Totals)
		resp.Metrics = &m
	}
	return resp
}

func shapeTransaction(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: strconv.FormatInt(t.TransactionID, 10),
		Date:          t.Date,
		CustomerID:    t.CustomerID,
		ProductID:     t.ProductID,
		Quantity:      t.Quantity,
		TotalAmount:   t.TotalAmount,
		EmployeeName:  t.EmployeeName,
		Customer: CustomerSummary{
			CustomerName:   t.Customer.CustomerName,
			PhoneNumber:    t.Customer.PhoneNumber,
			Gender:         t.Customer.Gender,
			Age:            t.Customer.Age,
			CustomerRegion: t.Customer.CustomerRegion,
		},
		Product: ProductSummary{ProductCategory: t.Product.ProductCategory},
	}
}

func shapePagination(p query.Page, total int64, raw url.Values) PaginationResponse {
	limit := int64(p.Limit)
	return PaginationResponse{
		Page:       p.Number,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
		HasNext:    int64(p.Offset)+limit < total,
		HasPrev:    p.Number > 1,
		Filters:    echoFilters(raw),
	}
}

func shapeMetrics(t domain.SalesTotals) MetricsResponse {
	return MetricsResponse{
		TotalUnitsSold: t.Units,
		TotalAmount:    t.TotalAmount,
		TotalDiscount:  t.TotalDiscount(),
		SalesRecords:   t.Records,
	}
}

// echoFilters reproduces the raw query map the way the caller sent it:
// single values stay scalar, repeated keys stay arrays.
func echoFilters(raw url.Values) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if len(v) == 1 {
			out[k] = v[0]
		} else {
			out[k] = v
		}
	}
	return out
}
