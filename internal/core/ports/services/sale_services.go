package services

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/glowslot/salon_ledger/internal/dto"
)

// SaleSvcFacade defines sale and appointment ingestion. Both operations feed
// the journal engine and the commission ledger.
type SaleSvcFacade interface {
	// RecordSale persists a completed sale, posts its revenue journal entry,
	// and creates one commission per line with an assigned employee. Lines
	// without an employee are reported back as skipped.
	RecordSale(ctx context.Context, salonID string, req dto.RecordSaleRequest, actorID string) (*dto.RecordSaleResponse, error)

	// CompleteAppointment records a finished appointment's service charge and
	// creates the performing employee's commission, deduplicated per
	// (appointmentID, employee).
	CompleteAppointment(ctx context.Context, salonID string, req dto.CompleteAppointmentRequest, actorID string) (*domain.Commission, error)

	// GetSale retrieves a sale with its items.
	GetSale(ctx context.Context, salonID, saleID string) (*domain.Sale, error)
}

// ExpenseSvcFacade defines manual expense capture.
type ExpenseSvcFacade interface {
	// CreateExpense records a manual operating expense and posts its journal
	// entry (debit expense account, credit cash).
	CreateExpense(ctx context.Context, salonID string, req dto.CreateExpenseRequest, actorID string) (*domain.ManualExpense, error)

	// ListExpenses retrieves a salon's manual expenses, most recent first.
	ListExpenses(ctx context.Context, salonID string, limit, offset int) ([]domain.ManualExpense, error)
}
