package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the read-only source queries the financial
// aggregator unions. Overlap between sources is resolved at the SQL level:
// payroll-settled commissions surface only through the payroll feed, and
// journal lines that mirror another feed (sale, commission, payroll, manual
// expense references) are excluded from the journal feeds.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetSalesTotals retrieves completed-sale totals.
func (r *reportingRepository) GetSalesTotals(ctx context.Context, salonID string, start, end *time.Time) ([]domain.DatedAmount, error) {
	query := `
		SELECT sale_date, total_amount
		FROM sales
		WHERE salon_id = $1
			AND status = 'COMPLETED'
			AND ($2::timestamptz IS NULL OR sale_date >= $2)
			AND ($3::timestamptz IS NULL OR sale_date <= $3)
		ORDER BY sale_date;
	`
	rows, err := r.Pool.Query(ctx, query, salonID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying sales totals: %w", err)
	}
	defer rows.Close()

	result := []domain.DatedAmount{}
	for rows.Next() {
		var row domain.DatedAmount
		if err := rows.Scan(&row.Date, &row.Amount); err != nil {
			return nil, fmt.Errorf("error scanning sales total row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales total rows: %w", err)
	}
	return result, nil
}

// GetRevenueJournalAmounts retrieves net revenue from posted journal lines,
// excluding lines that reference sales since those already count through
// GetSalesTotals.
func (r *reportingRepository) GetRevenueJournalAmounts(ctx context.Context, salonID string, start, end *time.Time) ([]domain.DatedAmount, error) {
	query := `
		SELECT e.entry_date, l.credit_amount - l.debit_amount
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.salon_id = $1
			AND e.status = 'POSTED'
			AND a.account_type = 'REVENUE'
			AND l.reference_type <> 'SALE'
			AND ($2::timestamptz IS NULL OR e.entry_date >= $2)
			AND ($3::timestamptz IS NULL OR e.entry_date <= $3)
		ORDER BY e.entry_date;
	`
	rows, err := r.Pool.Query(ctx, query, salonID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying revenue journal amounts: %w", err)
	}
	defer rows.Close()

	result := []domain.DatedAmount{}
	for rows.Next() {
		var row domain.DatedAmount
		if err := rows.Scan(&row.Date, &row.Amount); err != nil {
			return nil, fmt.Errorf("error scanning revenue journal row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue journal rows: %w", err)
	}
	return result, nil
}

func (r *reportingRepository) queryExpenseRecords(ctx context.Context, query string, args ...any) ([]domain.ExpenseRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying expense records: %w", err)
	}
	defer rows.Close()

	result := []domain.ExpenseRecord{}
	for rows.Next() {
		var row domain.ExpenseRecord
		if err := rows.Scan(&row.Date, &row.Category, &row.Description, &row.Amount, &row.PaymentMethod); err != nil {
			return nil, fmt.Errorf("error scanning expense record: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense records: %w", err)
	}
	return result, nil
}

// GetManualExpenseRecords retrieves manual expense rows, optionally filtered
// by category.
func (r *reportingRepository) GetManualExpenseRecords(ctx context.Context, salonID string, start, end *time.Time, categoryID *string) ([]domain.ExpenseRecord, error) {
	query := `
		SELECT expense_date, COALESCE(NULLIF(category_name, ''), 'Uncategorized'), description, amount, payment_method
		FROM expenses
		WHERE salon_id = $1
			AND ($2::timestamptz IS NULL OR expense_date >= $2)
			AND ($3::timestamptz IS NULL OR expense_date <= $3)
			AND ($4::text IS NULL OR category_id = $4)
		ORDER BY expense_date;
	`
	return r.queryExpenseRecords(ctx, query, salonID, start, end, categoryID)
}

// GetCommissionPayoutRecords retrieves paid commissions for the salon's
// employees. Payroll-settled commissions are excluded; they surface through
// GetPaidPayrollRecords instead.
func (r *reportingRepository) GetCommissionPayoutRecords(ctx context.Context, salonID string, start, end *time.Time) ([]domain.ExpenseRecord, error) {
	query := `
		SELECT c.paid_at, 'Commissions', 'Commission payout', c.amount, c.payment_method
		FROM commissions c
		JOIN salon_employees se ON se.salon_employee_id = c.salon_employee_id
		WHERE se.salon_id = $1
			AND c.paid = TRUE
			AND c.payment_method <> 'payroll'
			AND ($2::timestamptz IS NULL OR c.paid_at >= $2)
			AND ($3::timestamptz IS NULL OR c.paid_at <= $3)
		ORDER BY c.paid_at;
	`
	return r.queryExpenseRecords(ctx, query, salonID, start, end)
}

// GetJournalExpenseRecords retrieves journal lines posted to expense accounts.
// Lines referencing commissions, payroll runs, or manual expenses are excluded
// since those flows have dedicated feeds. The account acts as the category;
// the optional filter narrows to one account.
func (r *reportingRepository) GetJournalExpenseRecords(ctx context.Context, salonID string, start, end *time.Time, categoryID *string) ([]domain.ExpenseRecord, error) {
	query := `
		SELECT e.entry_date, a.name, COALESCE(NULLIF(l.description, ''), e.description),
		       l.debit_amount - l.credit_amount, 'other'
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.salon_id = $1
			AND e.status = 'POSTED'
			AND a.account_type = 'EXPENSE'
			AND l.reference_type NOT IN ('COMMISSION', 'PAYROLL_RUN', 'MANUAL_EXPENSE')
			AND ($2::timestamptz IS NULL OR e.entry_date >= $2)
			AND ($3::timestamptz IS NULL OR e.entry_date <= $3)
			AND ($4::text IS NULL OR a.account_id = $4)
		ORDER BY e.entry_date;
	`
	return r.queryExpenseRecords(ctx, query, salonID, start, end, categoryID)
}

// GetPaidPayrollRecords retrieves paid payroll run totals. The run total
// includes the commissions it settled, which is why payroll-settled
// commissions are excluded from the commission feed.
func (r *reportingRepository) GetPaidPayrollRecords(ctx context.Context, salonID string, start, end *time.Time) ([]domain.ExpenseRecord, error) {
	query := `
		SELECT last_updated_at, 'Payroll',
		       'Payroll ' || to_char(period_start, 'YYYY-MM-DD') || ' to ' || to_char(period_end, 'YYYY-MM-DD'),
		       total_amount, 'payroll'
		FROM payroll_runs
		WHERE salon_id = $1
			AND status = 'PAID'
			AND ($2::timestamptz IS NULL OR last_updated_at >= $2)
			AND ($3::timestamptz IS NULL OR last_updated_at <= $3)
		ORDER BY last_updated_at;
	`
	return r.queryExpenseRecords(ctx, query, salonID, start, end)
}

// GetWalletFeeRecords retrieves fee-type transactions charged to the salon
// owner's wallet.
func (r *reportingRepository) GetWalletFeeRecords(ctx context.Context, salonID string, start, end *time.Time) ([]domain.ExpenseRecord, error) {
	query := `
		SELECT t.created_at, 'Fees', COALESCE(NULLIF(t.description, ''), 'Platform fee'), t.amount, 'wallet'
		FROM wallet_transactions t
		JOIN wallets w ON w.wallet_id = t.wallet_id
		JOIN salons s ON s.owner_user_id = w.user_id
		WHERE s.salon_id = $1
			AND t.transaction_type = 'FEE'
			AND t.status = 'COMPLETED'
			AND ($2::timestamptz IS NULL OR t.created_at >= $2)
			AND ($3::timestamptz IS NULL OR t.created_at <= $3)
		ORDER BY t.created_at;
	`
	return r.queryExpenseRecords(ctx, query, salonID, start, end)
}

// GetAccountBalances sums posted journal lines per account of the given
// types, dated on or before asOf.
func (r *reportingRepository) GetAccountBalances(ctx context.Context, salonID string, asOf time.Time, accountTypes []domain.AccountType) ([]domain.AccountBalanceRow, error) {
	types := make([]string, len(accountTypes))
	for i, t := range accountTypes {
		types[i] = string(t)
	}

	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit_amount), 0) AS total_debit,
			COALESCE(SUM(l.credit_amount), 0) AS total_credit
		FROM accounts a
		LEFT JOIN (journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
				AND e.status = 'POSTED'
				AND e.entry_date <= $2
		) ON l.account_id = a.account_id
		WHERE a.salon_id = $1
			AND a.account_type = ANY($3)
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.account_type, a.code;
	`
	rows, err := r.Pool.Query(ctx, query, salonID, asOf, types)
	if err != nil {
		return nil, fmt.Errorf("error querying account balances: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountBalanceRow{}
	for rows.Next() {
		var row domain.AccountBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.Name,
			&row.AccountType,
			&row.TotalDebit,
			&row.TotalCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning account balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account balance rows: %w", err)
	}
	return result, nil
}
