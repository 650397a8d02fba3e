package app

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/adapters/httpserver"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/adapters/repo/postgres"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/config"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/domain"
	"github.com/UjjawalGusain/Retail-Sales-Management-System/internal/usecase"
)

type App struct {
	DB      *gorm.DB
	SalesUC *usecase.SalesUC
	cfg     *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *App {
	return &App{
		DB:      db,
		SalesUC: &usecase.SalesUC{Sales: postgres.NewSalesRepo(db)},
		cfg:     cfg,
	}
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.SalesUC, a.cfg.IsDev())
}

// Migrate creates the schema and the indexes the query paths lean on. The
// GIN index backs jsonb tag containment; the rest back the sortable and
// filterable columns.
func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(
		&domain.Customer{}, &domain.Product{}, &domain.Transaction{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_tags_gin ON products USING gin (tags)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_date_id ON transactions (date, transaction_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_total_amount_id ON transactions (total_amount, transaction_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_quantity_id ON transactions (quantity, transaction_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_transactions_payment_method_lower ON transactions (LOWER(payment_method))").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_category_lower ON products (LOWER(product_category))").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_customers_name_lower ON customers (LOWER(customer_name) text_pattern_ops)").Error

	return nil
}
