package services_test

import (
	"context"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/glowslot/salon_ledger/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, salonID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, salonID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, salonID string, accountType *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, salonID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesByReference(ctx context.Context, salonID string, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, salonID, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, salonID string, limit int, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, salonID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockWalletRepository is a mock type for the WalletRepositoryWithTx interface
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListTransactionsByWallet(ctx context.Context, walletID string, limit int, offset int) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletTransaction), args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error) {
	args := m.Called(ctx, tx, walletIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ApplyMovementsInTx(ctx context.Context, tx pgx.Tx, movements []accounting.WalletMovement) error {
	args := m.Called(ctx, tx, movements)
	return args.Error(0)
}

func (m *MockWalletRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockWalletRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWalletRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockCommissionRepository is a mock type for the CommissionRepositoryFacade interface
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindCommissionByID(ctx context.Context, commissionID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindCommissionsByIDs(ctx context.Context, commissionIDs []string) ([]domain.Commission, error) {
	args := m.Called(ctx, commissionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindCommissionBySaleItem(ctx context.Context, saleItemID string, salonEmployeeID string) (*domain.Commission, error) {
	args := m.Called(ctx, saleItemID, salonEmployeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindCommissionByAppointment(ctx context.Context, appointmentID string, salonEmployeeID string) (*domain.Commission, error) {
	args := m.Called(ctx, appointmentID, salonEmployeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindUnpaidByEmployeeInPeriod(ctx context.Context, salonEmployeeID string, periodStart, periodEnd time.Time) ([]domain.Commission, error) {
	args := m.Called(ctx, salonEmployeeID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) ListCommissionsByEmployee(ctx context.Context, salonEmployeeID string, limit int, offset int) ([]domain.Commission, error) {
	args := m.Called(ctx, salonEmployeeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) SaveCommission(ctx context.Context, commission domain.Commission) error {
	args := m.Called(ctx, commission)
	return args.Error(0)
}

func (m *MockCommissionRepository) SettleCommissions(ctx context.Context, settlement domain.CommissionSettlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

func (m *MockCommissionRepository) UpdateVerification(ctx context.Context, commissionID string, verifiedByID string, verifiedAt time.Time) error {
	args := m.Called(ctx, commissionID, verifiedByID, verifiedAt)
	return args.Error(0)
}

// MockSaleRepository is a mock type for the SaleRepositoryFacade interface
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

// MockSalonRepository is a mock type for the SalonRepositoryFacade interface
type MockSalonRepository struct {
	mock.Mock
}

func (m *MockSalonRepository) SaveSalon(ctx context.Context, salon domain.Salon) error {
	args := m.Called(ctx, salon)
	return args.Error(0)
}

func (m *MockSalonRepository) SaveEmployee(ctx context.Context, employee domain.SalonEmployee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockSalonRepository) FindSalonByID(ctx context.Context, salonID string) (*domain.Salon, error) {
	args := m.Called(ctx, salonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

func (m *MockSalonRepository) FindEmployeeByID(ctx context.Context, salonEmployeeID string) (*domain.SalonEmployee, error) {
	args := m.Called(ctx, salonEmployeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalonEmployee), args.Error(1)
}

func (m *MockSalonRepository) ListActiveEmployees(ctx context.Context, salonID string) ([]domain.SalonEmployee, error) {
	args := m.Called(ctx, salonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalonEmployee), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockPayrollRepository is a mock type for the PayrollRepositoryFacade interface
type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) SavePayrollRun(ctx context.Context, run domain.PayrollRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockPayrollRepository) FindPayrollRunByID(ctx context.Context, payrollRunID string) (*domain.PayrollRun, error) {
	args := m.Called(ctx, payrollRunID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRepository) ListPayrollRuns(ctx context.Context, salonID string, limit int, offset int) ([]domain.PayrollRun, error) {
	args := m.Called(ctx, salonID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollRun), args.Error(1)
}

func (m *MockPayrollRepository) MarkRunPaid(ctx context.Context, payrollRunID string, updatedByID string, paidAt time.Time) error {
	args := m.Called(ctx, payrollRunID, updatedByID, paidAt)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetSalesTotals(ctx context.Context, salonID string, start, end *time.Time) ([]domain.DatedAmount, error) {
	args := m.Called(ctx, salonID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DatedAmount), args.Error(1)
}

func (m *MockReportingRepository) GetRevenueJournalAmounts(ctx context.Context, salonID string, start, end *time.Time) ([]domain.DatedAmount, error) {
	args := m.Called(ctx, salonID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DatedAmount), args.Error(1)
}

func (m *MockReportingRepository) GetManualExpenseRecords(ctx context.Context, salonID string, start, end *time.Time, categoryID *string) ([]domain.ExpenseRecord, error) {
	args := m.Called(ctx, salonID, start, end, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseRecord), args.Error(1)
}

func (m *MockReportingRepository) GetCommissionPayoutRecords(ctx context.Context, salonID string, start, end *time.Time) ([]domain.ExpenseRecord, error) {
	args := m.Called(ctx, salonID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseRecord), args.Error(1)
}

func (m *MockReportingRepository) GetJournalExpenseRecords(ctx context.Context, salonID string, start, end *time.Time, categoryID *string) ([]domain.ExpenseRecord, error) {
	args := m.Called(ctx, salonID, start, end, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseRecord), args.Error(1)
}

func (m *MockReportingRepository) GetPaidPayrollRecords(ctx context.Context, salonID string, start, end *time.Time) ([]domain.ExpenseRecord, error) {
	args := m.Called(ctx, salonID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseRecord), args.Error(1)
}

func (m *MockReportingRepository) GetWalletFeeRecords(ctx context.Context, salonID string, start, end *time.Time) ([]domain.ExpenseRecord, error) {
	args := m.Called(ctx, salonID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseRecord), args.Error(1)
}

func (m *MockReportingRepository) GetAccountBalances(ctx context.Context, salonID string, asOf time.Time, accountTypes []domain.AccountType) ([]domain.AccountBalanceRow, error) {
	args := m.Called(ctx, salonID, asOf, accountTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalanceRow), args.Error(1)
}

// MockAccountSvc is a mock type for the AccountSvcFacade interface
type MockAccountSvc struct {
	mock.Mock
}

func (m *MockAccountSvc) GetOrCreateAccount(ctx context.Context, salonID, code, name string, accountType domain.AccountType, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, salonID, code, name, accountType, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) FindAccountByCode(ctx context.Context, salonID, code string) (*domain.Account, error) {
	args := m.Called(ctx, salonID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetAccounts(ctx context.Context, salonID string, accountType *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, salonID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// MockWalletSvc is a mock type for the WalletSvcFacade interface
type MockWalletSvc struct {
	mock.Mock
}

func (m *MockWalletSvc) GetOrCreateWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletSvc) Transfer(ctx context.Context, payerWalletID *string, payeeWalletID string, amount decimal.Decimal, refType domain.ReferenceType, refID, description string) error {
	args := m.Called(ctx, payerWalletID, payeeWalletID, amount, refType, refID, description)
	return args.Error(0)
}

func (m *MockWalletSvc) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletSvc) ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletTransaction), args.Error(1)
}

// MockJournalPoster is a mock type for the JournalPoster interface
type MockJournalPoster struct {
	mock.Mock
}

func (m *MockJournalPoster) CreateJournalEntry(ctx context.Context, salonID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, salonID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// MockCommissionSvc is a mock type for the CommissionSvcFacade interface
type MockCommissionSvc struct {
	mock.Mock
}

func (m *MockCommissionSvc) CreateCommission(ctx context.Context, req dto.CreateCommissionRequest, actorID string) (*domain.Commission, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionSvc) MarkAsPaid(ctx context.Context, commissionID string, details domain.CommissionPaymentDetails, actorID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, details, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionSvc) MarkMultipleAsPaid(ctx context.Context, commissionIDs []string, details domain.CommissionPaymentDetails, actorID string) ([]domain.Commission, error) {
	args := m.Called(ctx, commissionIDs, details, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}

func (m *MockCommissionSvc) VerifyPayment(ctx context.Context, commissionID string, verifiedByID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID, verifiedByID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionSvc) GetCommission(ctx context.Context, commissionID string) (*domain.Commission, error) {
	args := m.Called(ctx, commissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionSvc) ListByEmployee(ctx context.Context, salonEmployeeID string, limit, offset int) ([]domain.Commission, error) {
	args := m.Called(ctx, salonEmployeeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}
