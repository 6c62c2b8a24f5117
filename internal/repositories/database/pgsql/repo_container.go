package pgsql

import (
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository against one connection pool.
// The wallet repository is shared with the commission repository so
// settlements mutate balances inside the settlement transaction.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	walletRepo := newPgxWalletRepository(dbPool)
	commissionRepo := newPgxCommissionRepository(dbPool, walletRepo)
	payrollRepo := newPgxPayrollRepository(dbPool)
	salonRepo := newPgxSalonRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		JournalRepo:    journalRepo,
		WalletRepo:     walletRepo,
		CommissionRepo: commissionRepo,
		PayrollRepo:    payrollRepo,
		SalonRepo:      salonRepo,
		UserRepo:       userRepo,
		SaleRepo:       saleRepo,
		ExpenseRepo:    expenseRepo,
		ReportingRepo:  reportingRepo,
	}
}
