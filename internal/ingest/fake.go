package ingest

import (
	"fmt"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/domain"
)

var (
	regions        = []string{"North", "South", "East", "West", "Central"}
	genders        = []string{"Female", "Male", "Other"}
	customerTypes  = []string{"New", "Returning", "Loyal", "Premium"}
	paymentMethods = []string{"Cash", "Credit Card", "Debit Card", "UPI", "Net Banking", "Wallet"}
	orderStatuses  = []string{"Completed", "Pending", "Cancelled", "Returned"}
	deliveryTypes  = []string{"Standard", "Express", "Same Day", "Store Pickup"}
	categories     = []string{"Electronics", "Clothing", "Groceries", "Home & Kitchen", "Beauty", "Sports", "Toys", "Books"}
	tagPool        = []string{"sale", "premium", "organic", "eco", "gift", "seasonal", "clearance", "new-arrival", "bestseller", "limited"}
)

// Generate synthesizes a dataset of n transactions over a smaller pool of
// customers and products, for running the API without the real CSV. The same
// seed reproduces the same dataset.
func Generate(n int, seed uint64) *Dataset {
	f := gofakeit.New(seed)
	numCustomers := n/20 + 1
	numProducts := n/30 + 1

	ds := &Dataset{
		Customers:    make([]domain.Customer, 0, numCustomers),
		Products:     make([]domain.Product, 0, numProducts),
		Transactions: make([]domain.Transaction, 0, n),
	}

	for i := 1; i <= numCustomers; i++ {
		ds.Customers = append(ds.Customers, domain.Customer{
			CustomerID:     fmt.Sprintf("CUST-%05d", i),
			CustomerName:   f.Name(),
			PhoneNumber:    f.Phone(),
			Gender:         f.RandomString(genders),
			Age:            f.Number(18, 75),
			CustomerRegion: f.RandomString(regions),
			CustomerType:   f.RandomString(customerTypes),
		})
	}

	for i := 1; i <= numProducts; i++ {
		ds.Products = append(ds.Products, domain.Product{
			ProductID:       fmt.Sprintf("PROD-%05d", i),
			ProductName:     f.ProductName(),
			Brand:           f.Company(),
			ProductCategory: f.RandomString(categories),
			Tags:            pickTags(f),
		})
	}

	end := time.Now().Truncate(24 * time.Hour)
	start := end.AddDate(-2, 0, 0)
	for i := 1; i <= n; i++ {
		qty := f.Number(1, 10)
		price := round2(f.Float64Range(5, 500))
		discount := round2(f.Float64Range(0, 30))
		total := round2(float64(qty) * price)
		final := round2(total * (1 - discount/100))
		ds.Transactions = append(ds.Transactions, domain.Transaction{
			TransactionID:   int64(i),
			CustomerID:      fmt.Sprintf("CUST-%05d", f.Number(1, numCustomers)),
			ProductID:       fmt.Sprintf("PROD-%05d", f.Number(1, numProducts)),
			Date:            f.DateRange(start, end),
			Quantity:        qty,
			PricePerUnit:    price,
			DiscountPercent: discount,
			TotalAmount:     total,
			FinalAmount:     final,
			PaymentMethod:   f.RandomString(paymentMethods),
			OrderStatus:     f.RandomString(orderStatuses),
			DeliveryType:    f.RandomString(deliveryTypes),
			StoreID:         fmt.Sprintf("STORE-%03d", f.Number(1, 50)),
			StoreLocation:   f.City(),
			SalespersonID:   fmt.Sprintf("EMP-%04d", f.Number(1, 200)),
			EmployeeName:    f.Name(),
		})
	}
	return ds
}

func pickTags(f *gofakeit.Faker) []string {
	pool := append([]string(nil), tagPool...)
	f.ShuffleStrings(pool)
	return pool[:f.Number(1, 4)]
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
