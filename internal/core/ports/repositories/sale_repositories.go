package repositories

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
)

// SaleRepositoryFacade defines persistence for the sale ingestion surface.
type SaleRepositoryFacade interface {
	// SaveSale persists a sale and its items in one transaction.
	SaveSale(ctx context.Context, sale domain.Sale) error

	// FindSaleByID retrieves a sale with its items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)
}

// ExpenseRepositoryFacade defines persistence for manual expense records.
type ExpenseRepositoryFacade interface {
	// SaveExpense persists a manual expense record.
	SaveExpense(ctx context.Context, expense domain.ManualExpense) error

	// ListExpenses retrieves a salon's manual expenses ordered by date descending.
	ListExpenses(ctx context.Context, salonID string, limit int, offset int) ([]domain.ManualExpense, error)
}
