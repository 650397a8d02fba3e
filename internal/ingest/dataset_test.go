package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Transaction ID,Customer ID,Customer Name,Phone Number,Gender,Age,Customer Region,Customer Type,Product ID,Product Name,Brand,Product Category,Tags,Quantity,Price per Unit,Discount Percentage,Total Amount,Final Amount,Date,Payment Method,Order Status,Delivery Type,Store ID,Store Location,Salesperson ID,Employee Name
1,CUST-1,Asha Rao,+911001,Female,25,North,Loyal,PROD-1,Mixer,Acme,Home & Kitchen,"sale, premium",2,100.00,10.00,200.00,180.00,2024-03-05,Cash,Completed,Standard,STORE-1,Mumbai,EMP-1,Ravi
2,CUST-2,Ben Das,+911002,Male,40,South,New,PROD-1,Mixer,Acme,Home & Kitchen,"sale, premium",1,100.00,0.00,100.00,100.00,2024-03-06,UPI,Completed,Express,STORE-1,Mumbai,EMP-1,Ravi
3,CUST-1,Asha Rao,+911001,Female,25,North,Loyal,PROD-2,Rice,Farmco,Groceries,organic,5,20.00,0.00,100.00,100.00,2024-03-07,Cash,Pending,Standard,STORE-2,Pune,EMP-2,Mina
junk,CUST-1,Asha Rao,+911001,Female,25,North,Loyal,PROD-2,Rice,Farmco,Groceries,organic,1,20.00,0.00,20.00,20.00,2024-03-08,Cash,Pending,Standard,STORE-2,Pune,EMP-2,Mina
`

func TestParseCSV(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// customers and products deduplicate on their natural keys
	require.Len(t, ds.Customers, 2)
	require.Len(t, ds.Products, 2)
	// the row with a non-numeric transaction id is skipped
	require.Len(t, ds.Transactions, 3)

	asha := ds.Customers[0]
	assert.Equal(t, "CUST-1", asha.CustomerID)
	assert.Equal(t, "Asha Rao", asha.CustomerName)
	assert.Equal(t, 25, asha.Age)
	assert.Equal(t, "North", asha.CustomerRegion)

	mixer := ds.Products[0]
	assert.Equal(t, "PROD-1", mixer.ProductID)
	assert.Equal(t, []string{"sale", "premium"}, mixer.Tags)

	tx := ds.Transactions[0]
	assert.Equal(t, int64(1), tx.TransactionID)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, 2, tx.Quantity)
	assert.InDelta(t, 200.0, tx.TotalAmount, 1e-9)
	assert.InDelta(t, 180.0, tx.FinalAmount, 1e-9)
	assert.Equal(t, "Mumbai", tx.StoreLocation)
	assert.Equal(t, "Ravi", tx.EmployeeName)
}

func TestGenerate(t *testing.T) {
	ds := Generate(500, 42)
	assert.Len(t, ds.Transactions, 500)
	assert.NotEmpty(t, ds.Customers)
	assert.NotEmpty(t, ds.Products)

	custs := map[string]bool{}
	for _, c := range ds.Customers {
		assert.False(t, custs[c.CustomerID], "duplicate customer id")
		custs[c.CustomerID] = true
		assert.GreaterOrEqual(t, c.Age, 18)
	}
	prods := map[string]bool{}
	for _, p := range ds.Products {
		prods[p.ProductID] = true
		assert.NotEmpty(t, p.Tags)
	}
	for _, tx := range ds.Transactions {
		assert.True(t, custs[tx.CustomerID], "transaction references a seeded customer")
		assert.True(t, prods[tx.ProductID], "transaction references a seeded product")
		assert.LessOrEqual(t, tx.FinalAmount, tx.TotalAmount)
		assert.Positive(t, tx.Quantity)
	}

	// the same seed reproduces the same dataset
	again := Generate(500, 42)
	assert.Equal(t, ds.Transactions[0], again.Transactions[0])
	assert.Equal(t, ds.Customers[0], again.Customers[0])
}
