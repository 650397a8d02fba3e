// Package ingest loads the transaction dataset into the store. It accepts
// the CSV export the system was built around plus XLSX workbooks, and can
// synthesize a sample dataset when no file is available. This is the only
// write path in the system; everything else reads.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/domain"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/logging"
)

const batchSize = 1000

type Dataset struct {
	Customers    []domain.Customer
	Products     []domain.Product
	Transactions []domain.Transaction
}

// ReadFile parses a dataset file by extension (.csv or .xlsx).
func ReadFile(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseCSV(f)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
}

// ParseCSV reads the dataset from the CSV column layout, deduplicating
// customers and products by their natural keys as rows stream through.
func ParseCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := newColumns(header)
	ds := newCollector()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ds.add(col, record)
	}
	return ds.dataset(), nil
}

func readXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty worksheet")
	}
	col := newColumns(rows[0])
	ds := newCollector()
	for _, record := range rows[1:] {
		ds.add(col, record)
	}
	return ds.dataset(), nil
}

// Insert writes the dataset in batches, skipping rows whose natural key is
// already present so re-running the seed is safe.
func Insert(ctx context.Context, db *gorm.DB, ds *Dataset) error {
	skipDup := clause.OnConflict{DoNothing: true}
	if len(ds.Customers) > 0 {
		if err := db.WithContext(ctx).Clauses(skipDup).CreateInBatches(&ds.Customers, batchSize).Error; err != nil {
			return fmt.Errorf("insert customers: %w", err)
		}
	}
	if len(ds.Products) > 0 {
		if err := db.WithContext(ctx).Clauses(skipDup).CreateInBatches(&ds.Products, batchSize).Error; err != nil {
			return fmt.Errorf("insert products: %w", err)
		}
	}
	if len(ds.Transactions) > 0 {
		if err := db.WithContext(ctx).Clauses(skipDup).CreateInBatches(&ds.Transactions, batchSize).Error; err != nil {
			return fmt.Errorf("insert transactions: %w", err)
		}
	}
	logging.Info().
		Int("customers", len(ds.Customers)).
		Int("products", len(ds.Products)).
		Int("transactions", len(ds.Transactions)).
		Msg("dataset loaded")
	return nil
}

// columns maps the dataset's header names to their positions.
type columns map[string]int

func newColumns(header []string) columns {
	col := make(columns, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func (c columns) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

type collector struct {
	ds           Dataset
	seenCustomer map[string]bool
	seenProduct  map[string]bool
}

func newCollector() *collector {
	return &collector{seenCustomer: map[string]bool{}, seenProduct: map[string]bool{}}
}

func (c *collector) add(col columns, record []string) {
	custID := col.get(record, "Customer ID")
	if custID != "" && !c.seenCustomer[custID] {
		c.seenCustomer[custID] = true
		c.ds.Customers = append(c.ds.Customers, domain.Customer{
			CustomerID:     custID,
			CustomerName:   col.get(record, "Customer Name"),
			PhoneNumber:    col.get(record, "Phone Number"),
			Gender:         col.get(record, "Gender"),
			Age:            atoi(col.get(record, "Age")),
			CustomerRegion: col.get(record, "Customer Region"),
			CustomerType:   col.get(record, "Customer Type"),
		})
	}

	prodID := col.get(record, "Product ID")
	if prodID != "" && !c.seenProduct[prodID] {
		c.seenProduct[prodID] = true
		c.ds.Products = append(c.ds.Products, domain.Product{
			ProductID:       prodID,
			ProductName:     col.get(record, "Product Name"),
			Brand:           col.get(record, "Brand"),
			ProductCategory: col.get(record, "Product Category"),
			Tags:            splitTags(col.get(record, "Tags")),
		})
	}

	txID, err := strconv.ParseInt(col.get(record, "Transaction ID"), 10, 64)
	if err != nil {
		return
	}
	c.ds.Transactions = append(c.ds.Transactions, domain.Transaction{
		TransactionID:   txID,
		CustomerID:      custID,
		ProductID:       prodID,
		Date:            parseDate(col.get(record, "Date")),
		Quantity:        atoi(col.get(record, "Quantity")),
		PricePerUnit:    atof(col.get(record, "Price per Unit")),
		DiscountPercent: atof(col.get(record, "Discount Percentage")),
		TotalAmount:     atof(col.get(record, "Total Amount")),
		FinalAmount:     atof(col.get(record, "Final Amount")),
		PaymentMethod:   col.get(record, "Payment Method"),
		OrderStatus:     col.get(record, "Order Status"),
		DeliveryType:    col.get(record, "Delivery Type"),
		StoreID:         col.get(record, "Store ID"),
		StoreLocation:   col.get(record, "Store Location"),
		SalespersonID:   col.get(record, "Salesperson ID"),
		EmployeeName:    col.get(record, "Employee Name"),
	})
}

func (c *collector) dataset() *Dataset { return &c.ds }

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339, "01/02/2006"}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
