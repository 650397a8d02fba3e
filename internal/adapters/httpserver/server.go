package httpserver

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/logging"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/query"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/usecase"
)

type Server struct {
	mux     *http.ServeMux
	sales   *usecase.SalesUC
	devMode bool
}

// New builds the handler tree with the standard middleware chain. devMode
// controls whether error details reach the response body.
func New(sales *usecase.SalesUC, devMode bool) http.Handler {
	s := &Server{mux: http.NewServeMux(), sales: sales, devMode: devMode}
	s.routes()
	return Chain(s.mux,
		Gzip,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/query", s.handleQuery)
	s.mux.HandleFunc("/api/query/totalUnits", s.handleTotalUnits)
	s.mux.HandleFunc("/api/query/totalAmount", s.handleTotalAmount)
	s.mux.HandleFunc("/api/query/totalDiscount", s.handleTotalDiscount)
	s.mux.HandleFunc("/api/query/export", s.handleExport)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	qv := r.URL.Query()
	include, _ := strconv.ParseBool(qv.Get("includeMetrics"))
	req := usecase.SalesQuery{
		Filter:        query.ParseFilter(qv),
		Sort:          query.ResolveSort(qv.Get("orderBy"), qv.Get("orderByType")),
		Page:          query.ResolvePage(qv.Get("page"), qv.Get("limit")),
		IncludeTotals: include,
	}
	res, err := s.sales.Query(r.Context(), req)
	if err != nil {
		s.writeError(w, r, "Failed to fetch transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, shapeQueryResponse(res, req.Sort, req.Page, qv))
}

func (s *Server) handleTotalUnits(w http.ResponseWriter, r *http.Request) {
	totals, err := s.sales.Totals(r.Context(), query.ParseFilter(r.URL.Query()))
	if err != nil {
		s.writeError(w, r, "Failed to fetch total units sold", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"totalUnitsSold": totals.Units,
	})
}

func (s *Server) handleTotalAmount(w http.ResponseWriter, r *http.Request) {
	totals, err := s.sales.Totals(r.Context(), query.ParseFilter(r.URL.Query()))
	if err != nil {
		s.writeError(w, r, "Failed to fetch total amount", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"totalAmount":  totals.TotalAmount,
		"salesRecords": totals.Records,
	})
}

func (s *Server) handleTotalDiscount(w http.ResponseWriter, r *http.Request) {
	totals, err := s.sales.Totals(r.Context(), query.ParseFilter(r.URL.Query()))
	if err != nil {
		s.writeError(w, r, "Failed to fetch total discount", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"totalDiscount":   totals.TotalDiscount(),
		"discountRecords": totals.Records,
	})
}

// handleExport streams the filtered, sorted set as CSV, paging through the
// repo so no full result set is held in memory.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	qv := r.URL.Query()
	f := query.ParseFilter(qv)
	srt := query.ResolveSort(qv.Get("orderBy"), qv.Get("orderByType"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=transactions.csv")
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"transaction_id", "date", "customer_id", "product_id", "quantity",
		"price_per_unit", "discount_percent", "total_amount", "final_amount",
		"payment_method", "customer_name", "customer_region", "product_category",
	})

	const exportPageSize = 500
	for page := 1; ; page++ {
		pg := query.Page{Number: page, Limit: exportPageSize, Offset: (page - 1) * exportPageSize}
		res, err := s.sales.Query(r.Context(), usecase.SalesQuery{Filter: f, Sort: srt, Page: pg})
		if err != nil {
			// headers are gone by now; log and stop the stream
			logging.Error().Err(err).Str("request_id", requestID(r.Context())).Msg("export aborted")
			return
		}
		for _, t := range res.Records {
			_ = cw.Write([]string{
				strconv.FormatInt(t.TransactionID, 10),
				t.Date.Format("2006-01-02"),
				t.CustomerID,
				t.ProductID,
				strconv.Itoa(t.Quantity),
				strconv.FormatFloat(t.PricePerUnit, 'f', 2, 64),
				strconv.FormatFloat(t.DiscountPercent, 'f', 2, 64),
				strconv.FormatFloat(t.TotalAmount, 'f', 2, 64),
				strconv.FormatFloat(t.FinalAmount, 'f', 2, 64),
				t.PaymentMethod,
				t.Customer.CustomerName,
				t.Customer.CustomerRegion,
				t.Product.ProductCategory,
			})
		}
		if int64(page*exportPageSize) >= res.Total || len(res.Records) == 0 {
			break
		}
	}
	cw.Flush()
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logging.Error().
		Err(err).
		Str("path", r.URL.Path).
		Str("request_id", requestID(r.Context())).
		Msg(msg)
	resp := ErrorResponse{Error: msg}
	if s.devMode {
		resp.Details = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
