package services

import (
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.SalonSvc = NewSalonService(repos.SalonRepo, repos.UserRepo, cfg.DefaultCurrency)

	// Accounts and journals first since everything else posts through them
	container.AccountSvc = NewAccountService(repos.AccountRepo)
	container.JournalSvc = NewJournalService(repos.JournalRepo, container.AccountSvc)

	container.WalletSvc = NewWalletService(repos.WalletRepo, cfg.DefaultCurrency)

	// Settlement posts journals through the narrow poster port
	container.CommissionSvc = NewCommissionService(
		repos.CommissionRepo,
		repos.SalonRepo,
		container.WalletSvc,
		container.AccountSvc,
		container.JournalSvc,
	)

	container.PayrollSvc = NewPayrollService(
		repos.PayrollRepo,
		repos.SalonRepo,
		repos.CommissionRepo,
		container.CommissionSvc,
		container.AccountSvc,
		container.JournalSvc,
	)

	container.SaleSvc = NewSaleService(
		repos.SaleRepo,
		container.AccountSvc,
		container.JournalSvc,
		container.CommissionSvc,
	)
	container.ExpenseSvc = NewExpenseService(
		repos.ExpenseRepo,
		container.AccountSvc,
		container.JournalSvc,
	)

	container.ReportingSvc = NewReportingService(repos.ReportingRepo)
	container.AuthSvc = NewAuthService(repos.UserRepo, cfg)

	return container
}

// Compile-time checks that implementations satisfy their facades
var (
	_ portssvc.SalonSvcFacade      = (*salonService)(nil)
	_ portssvc.AccountSvcFacade    = (*accountService)(nil)
	_ portssvc.JournalSvcFacade    = (*journalService)(nil)
	_ portssvc.WalletSvcFacade     = (*walletService)(nil)
	_ portssvc.CommissionSvcFacade = (*commissionService)(nil)
	_ portssvc.PayrollSvcFacade    = (*payrollService)(nil)
	_ portssvc.ReportingSvcFacade  = (*reportingService)(nil)
	_ portssvc.SaleSvcFacade       = (*saleService)(nil)
	_ portssvc.ExpenseSvcFacade    = (*expenseService)(nil)
	_ portssvc.AuthSvcFacade       = (*authService)(nil)
)
