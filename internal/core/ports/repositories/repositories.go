package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo    AccountRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	WalletRepo     WalletRepositoryWithTx
	CommissionRepo CommissionRepositoryFacade
	PayrollRepo    PayrollRepositoryFacade
	SalonRepo      SalonRepositoryFacade
	UserRepo       UserRepositoryFacade
	SaleRepo       SaleRepositoryFacade
	ExpenseRepo    ExpenseRepositoryFacade
	ReportingRepo  ReportingRepository
}
