package repositories

import (
	"context"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
)

// PayrollRepositoryFacade defines persistence operations for payroll runs.
type PayrollRepositoryFacade interface {
	// SavePayrollRun persists a run and all of its items in one transaction.
	SavePayrollRun(ctx context.Context, run domain.PayrollRun) error

	// FindPayrollRunByID retrieves a run with its items.
	FindPayrollRunByID(ctx context.Context, payrollRunID string) (*domain.PayrollRun, error)

	// ListPayrollRuns retrieves a salon's runs ordered by period start descending.
	ListPayrollRuns(ctx context.Context, salonID string, limit int, offset int) ([]domain.PayrollRun, error)

	// MarkRunPaid flips the run to PAID and every item to paid.
	MarkRunPaid(ctx context.Context, payrollRunID string, updatedByID string, paidAt time.Time) error
}
