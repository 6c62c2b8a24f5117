package services

import (
	"context"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
)

// PayrollSvcFacade defines the payroll calculator surface.
type PayrollSvcFacade interface {
	// ProcessPayroll computes a payroll run for every active employee in the
	// salon over [periodStart, periodEnd]: pro-rated base salary plus unpaid
	// commissions created in the period.
	ProcessPayroll(ctx context.Context, salonID string, periodStart, periodEnd time.Time, processedByID string) (*domain.PayrollRun, error)

	// MarkPayrollAsPaid marks the run and its items paid and settles every
	// folded-in commission through the commission ledger with
	// paymentMethod="payroll". Per-commission settlement failure is logged and
	// skipped, never aborting the run.
	MarkPayrollAsPaid(ctx context.Context, payrollRunID string, actorID string) (*domain.PayrollRun, error)

	// GetPayrollRun retrieves a run with its items.
	GetPayrollRun(ctx context.Context, payrollRunID string) (*domain.PayrollRun, error)

	// ListPayrollRuns retrieves a salon's runs, most recent period first.
	ListPayrollRuns(ctx context.Context, salonID string, limit, offset int) ([]domain.PayrollRun, error)
}
