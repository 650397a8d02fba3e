package domain

// Product is keyed by the dataset's natural product ID. Tags live in a jsonb
// array so containment queries can use a GIN index.
type Product struct {
	ProductID       string   `gorm:"primaryKey;size:40"`
	ProductName     string   `gorm:"size:180"`
	Brand           string   `gorm:"size:100"`
	ProductCategory string   `gorm:"size:100;index"`
	Tags            []string `gorm:"type:jsonb;serializer:json"`
}
