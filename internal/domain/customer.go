package domain

// Customer rows are written once by the seed command and only read after
// that. CustomerID is the natural key carried over from the dataset.
type Customer struct {
	CustomerID     string `gorm:"primaryKey;size:40"`
	CustomerName   string `gorm:"size:140;index"`
	PhoneNumber    string `gorm:"size:40"`
	Gender         string `gorm:"size:10;index"` // Female, Male, Other
	Age            int
	CustomerRegion string `gorm:"size:20;index"` // North, South, East, West, Central
	CustomerType   string `gorm:"size:40"`
}
