package services

// ServiceContainer aggregates every service facade for handler wiring.
type ServiceContainer struct {
	SalonSvc      SalonSvcFacade
	AccountSvc    AccountSvcFacade
	JournalSvc    JournalSvcFacade
	WalletSvc     WalletSvcFacade
	CommissionSvc CommissionSvcFacade
	PayrollSvc    PayrollSvcFacade
	ReportingSvc  ReportingSvcFacade
	SaleSvc       SaleSvcFacade
	ExpenseSvc    ExpenseSvcFacade
	AuthSvc       AuthSvcFacade
}
