package repositories

import (
	"context"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
)

// ReportingRepository defines the read-only source queries the financial
// aggregator unions into its reports. Each method returns rows already scoped
// to one salon and an optional [start, end] window; nil bounds mean unbounded.
type ReportingRepository interface {
	// GetSalesTotals retrieves completed-sale totals.
	GetSalesTotals(ctx context.Context, salonID string, start, end *time.Time) ([]domain.DatedAmount, error)

	// GetRevenueJournalAmounts retrieves net (credit - debit) amounts of
	// journal lines on revenue accounts, excluding lines that reference sales
	// (those are already counted through GetSalesTotals).
	GetRevenueJournalAmounts(ctx context.Context, salonID string, start, end *time.Time) ([]domain.DatedAmount, error)

	// GetManualExpenseRecords retrieves manual expense rows, optionally
	// filtered by category.
	GetManualExpenseRecords(ctx context.Context, salonID string, start, end *time.Time, categoryID *string) ([]domain.ExpenseRecord, error)

	// GetCommissionPayoutRecords retrieves paid commissions for the salon's
	// employees.
	GetCommissionPayoutRecords(ctx context.Context, salonID string, start, end *time.Time) ([]domain.ExpenseRecord, error)

	// GetJournalExpenseRecords retrieves journal lines posted to expense
	// accounts, optionally filtered to one account acting as the category.
	GetJournalExpenseRecords(ctx context.Context, salonID string, start, end *time.Time, categoryID *string) ([]domain.ExpenseRecord, error)

	// GetPaidPayrollRecords retrieves paid payroll run totals.
	GetPaidPayrollRecords(ctx context.Context, salonID string, start, end *time.Time) ([]domain.ExpenseRecord, error)

	// GetWalletFeeRecords retrieves fee-type wallet transactions charged to the
	// salon owner's wallet.
	GetWalletFeeRecords(ctx context.Context, salonID string, start, end *time.Time) ([]domain.ExpenseRecord, error)

	// GetAccountBalances sums posted journal lines per account of the given
	// types, dated on or before asOf.
	GetAccountBalances(ctx context.Context, salonID string, asOf time.Time, accountTypes []domain.AccountType) ([]domain.AccountBalanceRow, error)
}
