package services

import (
	"context"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
)

// ReportingSvcFacade defines the financial aggregator surface. All operations
// are read-only derivations over the ledgers; none mutate state.
type ReportingSvcFacade interface {
	// GetExpenseSummary unions manual expenses, commission payouts, journal
	// expense lines, paid payroll, and wallet fees into per-category and
	// per-payment-method totals. A category filter restricts to the manual and
	// journal sources only.
	GetExpenseSummary(ctx context.Context, salonID string, start, end *time.Time, categoryID *string) (*domain.ExpenseSummary, error)

	// GetFinancialSummary derives netIncome = totalRevenue - totalExpenses.
	// typeFilter of "income" or "expense" suppresses the other side.
	GetFinancialSummary(ctx context.Context, salonID string, start, end *time.Time, typeFilter, categoryID *string) (*domain.FinancialSummary, error)

	// GetDailyFinancials buckets every revenue and expense source into
	// calendar-day keys. Days with no activity are absent.
	GetDailyFinancials(ctx context.Context, salonID string, start, end time.Time) ([]domain.DailyFinancial, error)

	// GetAccountingLedger flattens all sources into one chronological row list
	// for export, sorted descending by date.
	GetAccountingLedger(ctx context.Context, salonID string, start, end time.Time, typeFilter, categoryID *string) ([]domain.LedgerRow, error)

	// GetBalanceSheet builds the balance sheet as of a date, including the
	// synthetic net-income equity line and, when the books do not reconcile,
	// the calculated cash plug. The discrepancy amount is reported explicitly.
	GetBalanceSheet(ctx context.Context, salonID string, asOf time.Time) (*domain.BalanceSheetReport, error)

	// GetProfitAndLoss builds the P&L over a period from posted journal lines.
	GetProfitAndLoss(ctx context.Context, salonID string, from, to time.Time) (*domain.PAndLReport, error)
}
