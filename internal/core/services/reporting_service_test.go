package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade

	salonID string
	start   time.Time
	end     time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)

	suite.salonID = uuid.NewString()
	suite.start = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	suite.end = time.Date(2025, 7, 31, 23, 59, 59, 0, time.UTC)
}

func expense(date time.Time, category, method string, amount int64) domain.ExpenseRecord {
	return domain.ExpenseRecord{
		Date:          date,
		Category:      category,
		PaymentMethod: method,
		Amount:        decimal.NewFromInt(amount),
	}
}

func (suite *ReportingServiceTestSuite) stubExpenseSources(manual, journal, commissions, payroll, fees []domain.ExpenseRecord) {
	suite.mockRepo.On("GetManualExpenseRecords", mock.Anything, suite.salonID, mock.Anything, mock.Anything, (*string)(nil)).
		Return(manual, nil).Once()
	suite.mockRepo.On("GetJournalExpenseRecords", mock.Anything, suite.salonID, mock.Anything, mock.Anything, (*string)(nil)).
		Return(journal, nil).Once()
	suite.mockRepo.On("GetCommissionPayoutRecords", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return(commissions, nil).Once()
	suite.mockRepo.On("GetPaidPayrollRecords", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return(payroll, nil).Once()
	suite.mockRepo.On("GetWalletFeeRecords", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return(fees, nil).Once()
}

func (suite *ReportingServiceTestSuite) TestGetExpenseSummary_UnionsAllSources() {
	ctx := context.Background()
	day := suite.start

	suite.stubExpenseSources(
		[]domain.ExpenseRecord{expense(day, "Rent", "cash", 1000)},
		[]domain.ExpenseRecord{expense(day, "Supplies", "bank_transfer", 300)},
		[]domain.ExpenseRecord{expense(day, "Commissions", "payroll", 200)},
		[]domain.ExpenseRecord{expense(day, "", "", 150)},
		[]domain.ExpenseRecord{expense(day, "Fees", "wallet", 50)},
	)

	summary, err := suite.service.GetExpenseSummary(ctx, suite.salonID, &suite.start, &suite.end, nil)

	suite.Require().NoError(err)
	suite.True(summary.TotalExpenses.Equal(decimal.NewFromInt(1700)), "got %s", summary.TotalExpenses)
	suite.Equal(5, summary.ExpenseCount)

	suite.Require().NotEmpty(summary.ByCategory)
	suite.Equal("Rent", summary.ByCategory[0].Category) // largest bucket first
	categories := make(map[string]domain.CategoryTotal)
	for _, bucket := range summary.ByCategory {
		categories[bucket.Category] = bucket
	}
	suite.True(categories["Uncategorized"].Total.Equal(decimal.NewFromInt(150)))
	suite.Equal(1, categories["Uncategorized"].Count)

	methods := make(map[string]decimal.Decimal)
	for _, bucket := range summary.ByPaymentMethod {
		methods[bucket.PaymentMethod] = bucket.Total
	}
	suite.True(methods["other"].Equal(decimal.NewFromInt(150)))
	suite.True(methods["cash"].Equal(decimal.NewFromInt(1000)))
}

func (suite *ReportingServiceTestSuite) TestGetExpenseSummary_CategoryFilterNarrowsSources() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("GetManualExpenseRecords", mock.Anything, suite.salonID, mock.Anything, mock.Anything, &categoryID).
		Return([]domain.ExpenseRecord{expense(suite.start, "Rent", "cash", 400)}, nil).Once()
	suite.mockRepo.On("GetJournalExpenseRecords", mock.Anything, suite.salonID, mock.Anything, mock.Anything, &categoryID).
		Return([]domain.ExpenseRecord{}, nil).Once()

	summary, err := suite.service.GetExpenseSummary(ctx, suite.salonID, &suite.start, &suite.end, &categoryID)

	suite.Require().NoError(err)
	suite.True(summary.TotalExpenses.Equal(decimal.NewFromInt(400)))
	suite.mockRepo.AssertNotCalled(suite.T(), "GetCommissionPayoutRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetPaidPayrollRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetWalletFeeRecords", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetFinancialSummary_NetIncomeIdentity() {
	ctx := context.Background()
	day := suite.start

	suite.mockRepo.On("GetSalesTotals", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return([]domain.DatedAmount{{Date: day, Amount: decimal.NewFromInt(2000)}}, nil).Once()
	suite.mockRepo.On("GetRevenueJournalAmounts", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return([]domain.DatedAmount{{Date: day, Amount: decimal.NewFromInt(500)}}, nil).Once()
	suite.stubExpenseSources(
		[]domain.ExpenseRecord{expense(day, "Rent", "cash", 800)},
		nil, nil, nil, nil,
	)

	summary, err := suite.service.GetFinancialSummary(ctx, suite.salonID, &suite.start, &suite.end, nil, nil)

	suite.Require().NoError(err)
	suite.True(summary.TotalRevenue.Equal(decimal.NewFromInt(2500)))
	suite.True(summary.TotalExpenses.Equal(decimal.NewFromInt(800)))
	suite.True(summary.NetIncome.Equal(summary.TotalRevenue.Sub(summary.TotalExpenses)))
	suite.Require().NotNil(summary.Expenses)
}

func (suite *ReportingServiceTestSuite) TestGetFinancialSummary_IncomeFilterSuppressesExpenses() {
	ctx := context.Background()
	typeFilter := "income"

	suite.mockRepo.On("GetSalesTotals", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return([]domain.DatedAmount{{Date: suite.start, Amount: decimal.NewFromInt(900)}}, nil).Once()
	suite.mockRepo.On("GetRevenueJournalAmounts", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return([]domain.DatedAmount{}, nil).Once()

	summary, err := suite.service.GetFinancialSummary(ctx, suite.salonID, &suite.start, &suite.end, &typeFilter, nil)

	suite.Require().NoError(err)
	suite.True(summary.TotalRevenue.Equal(decimal.NewFromInt(900)))
	suite.True(summary.TotalExpenses.IsZero())
	suite.True(summary.NetIncome.Equal(decimal.NewFromInt(900)))
	suite.Nil(summary.Expenses)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetManualExpenseRecords",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetDailyFinancials_BucketsByCalendarDay() {
	ctx := context.Background()
	day1 := time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC)
	day1Later := time.Date(2025, 7, 3, 18, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 7, 5, 9, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetSalesTotals", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return([]domain.DatedAmount{
			{Date: day2, Amount: decimal.NewFromInt(300)},
			{Date: day1, Amount: decimal.NewFromInt(100)},
			{Date: day1Later, Amount: decimal.NewFromInt(50)},
		}, nil).Once()
	suite.mockRepo.On("GetRevenueJournalAmounts", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return([]domain.DatedAmount{}, nil).Once()
	suite.stubExpenseSources(
		[]domain.ExpenseRecord{expense(day1, "Rent", "cash", 40)},
		nil, nil, nil, nil,
	)

	days, err := suite.service.GetDailyFinancials(ctx, suite.salonID, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.Require().Len(days, 2)
	suite.Equal("2025-07-03", days[0].Date) // ascending
	suite.True(days[0].Revenue.Equal(decimal.NewFromInt(150)))
	suite.True(days[0].Expenses.Equal(decimal.NewFromInt(40)))
	suite.True(days[0].NetIncome.Equal(decimal.NewFromInt(110)))
	suite.Equal("2025-07-05", days[1].Date)
	suite.True(days[1].NetIncome.Equal(decimal.NewFromInt(300)))
}

func (suite *ReportingServiceTestSuite) TestGetAccountingLedger_NewestFirstWithOutflows() {
	ctx := context.Background()
	older := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("GetSalesTotals", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return([]domain.DatedAmount{{Date: older, Amount: decimal.NewFromInt(100)}}, nil).Once()
	suite.mockRepo.On("GetRevenueJournalAmounts", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return([]domain.DatedAmount{}, nil).Once()
	suite.stubExpenseSources(
		nil, nil,
		[]domain.ExpenseRecord{expense(newer, "Commissions", "cash", 30)},
		nil, nil,
	)

	rows, err := suite.service.GetAccountingLedger(ctx, suite.salonID, suite.start, suite.end, nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal("commission", rows[0].Type)
	suite.True(rows[0].IsOutflow)
	suite.Equal("sale", rows[1].Type)
	suite.False(rows[1].IsOutflow)
}

func balanceRow(accountType domain.AccountType, name string, debit, credit int64) domain.AccountBalanceRow {
	return domain.AccountBalanceRow{
		AccountID:   uuid.NewString(),
		Name:        name,
		AccountType: accountType,
		TotalDebit:  decimal.NewFromInt(debit),
		TotalCredit: decimal.NewFromInt(credit),
	}
}

// stubRevenue wires the revenue feeds the balance sheet draws net income from.
func (suite *ReportingServiceTestSuite) stubRevenue(sales, journal []domain.DatedAmount) {
	suite.mockRepo.On("GetSalesTotals", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return(sales, nil).Once()
	suite.mockRepo.On("GetRevenueJournalAmounts", mock.Anything, suite.salonID, mock.Anything, mock.Anything).
		Return(journal, nil).Once()
}

// onlyBalanceSheetTypes matches the account-type filter the balance sheet
// queries with. Revenue and expense accounts stay out of it; net income comes
// from the financial summary instead.
func onlyBalanceSheetTypes(types []domain.AccountType) bool {
	if len(types) != 3 {
		return false
	}
	for _, t := range types {
		if t == domain.Revenue || t == domain.Expense {
			return false
		}
	}
	return true
}

func (suite *ReportingServiceTestSuite) TestGetBalanceSheet_BalancedBooksHaveNoDiscrepancy() {
	ctx := context.Background()
	asOf := suite.end

	suite.mockRepo.On("GetAccountBalances", mock.Anything, suite.salonID, asOf, mock.MatchedBy(onlyBalanceSheetTypes)).
		Return([]domain.AccountBalanceRow{
			balanceRow(domain.Asset, "Cash", 1000, 200),
		}, nil).Once()
	suite.stubRevenue([]domain.DatedAmount{{Date: suite.start, Amount: decimal.NewFromInt(1000)}}, nil)
	suite.stubExpenseSources(
		[]domain.ExpenseRecord{expense(suite.start, "Commissions", "cash", 200)},
		nil, nil, nil, nil,
	)

	report, err := suite.service.GetBalanceSheet(ctx, suite.salonID, asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(800)))
	// net income 800 injected as synthetic equity
	suite.Require().Len(report.Equity, 1)
	suite.True(report.Equity[0].Synthetic)
	suite.Equal("Net Income", report.Equity[0].Name)
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(800)))
	suite.True(report.Discrepancy.IsZero())
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)))
}

func (suite *ReportingServiceTestSuite) TestGetBalanceSheet_PlugsGapAndReportsDiscrepancy() {
	ctx := context.Background()
	asOf := suite.end

	// Revenue journaled without a matching asset leg leaves a 500 gap.
	suite.mockRepo.On("GetAccountBalances", mock.Anything, suite.salonID, asOf, mock.MatchedBy(onlyBalanceSheetTypes)).
		Return([]domain.AccountBalanceRow{}, nil).Once()
	suite.stubRevenue(nil, []domain.DatedAmount{{Date: suite.start, Amount: decimal.NewFromInt(500)}})
	suite.stubExpenseSources(nil, nil, nil, nil, nil)

	report, err := suite.service.GetBalanceSheet(ctx, suite.salonID, asOf)

	suite.Require().NoError(err)
	suite.True(report.Discrepancy.Equal(decimal.NewFromInt(500)))
	suite.Require().Len(report.Assets, 1)
	suite.True(report.Assets[0].Synthetic)
	suite.Equal("Cash (calculated)", report.Assets[0].Name)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity)))
}

func (suite *ReportingServiceTestSuite) TestGetBalanceSheet_UnjournaledSaleStillReachesEquity() {
	ctx := context.Background()
	asOf := suite.end

	// A completed sale whose journal posting never landed: no account activity
	// at all, only the sales table knows about the 5000.
	suite.mockRepo.On("GetAccountBalances", mock.Anything, suite.salonID, asOf, mock.MatchedBy(onlyBalanceSheetTypes)).
		Return([]domain.AccountBalanceRow{}, nil).Once()
	suite.stubRevenue([]domain.DatedAmount{{Date: suite.start, Amount: decimal.NewFromInt(5000)}}, nil)
	suite.stubExpenseSources(nil, nil, nil, nil, nil)

	report, err := suite.service.GetBalanceSheet(ctx, suite.salonID, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Equity, 1)
	suite.Equal("Net Income", report.Equity[0].Name)
	suite.True(report.Equity[0].Amount.Equal(decimal.NewFromInt(5000)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(5000)))
	suite.Require().Len(report.Assets, 1)
	suite.Equal("Cash (calculated)", report.Assets[0].Name)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(5000)))
	suite.True(report.Discrepancy.Equal(decimal.NewFromInt(5000)))
}

func (suite *ReportingServiceTestSuite) TestGetProfitAndLoss_DiffsPeriodBounds() {
	ctx := context.Background()
	revenueID := uuid.NewString()
	expenseID := uuid.NewString()
	dormantID := uuid.NewString()

	endRows := []domain.AccountBalanceRow{
		{AccountID: revenueID, Name: "Service Revenue", AccountType: domain.Revenue, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(900)},
		{AccountID: expenseID, Name: "Commission Expense", AccountType: domain.Expense, TotalDebit: decimal.NewFromInt(300), TotalCredit: decimal.Zero},
		{AccountID: dormantID, Name: "Payroll Expense", AccountType: domain.Expense, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero},
	}
	startRows := []domain.AccountBalanceRow{
		{AccountID: revenueID, Name: "Service Revenue", AccountType: domain.Revenue, TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(400)},
		{AccountID: dormantID, Name: "Payroll Expense", AccountType: domain.Expense, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero},
	}

	suite.mockRepo.On("GetAccountBalances", mock.Anything, suite.salonID, suite.end, mock.Anything).
		Return(endRows, nil).Once()
	suite.mockRepo.On("GetAccountBalances", mock.Anything, suite.salonID, suite.start.Add(-time.Nanosecond), mock.Anything).
		Return(startRows, nil).Once()

	report, err := suite.service.GetProfitAndLoss(ctx, suite.salonID, suite.start, suite.end)

	suite.Require().NoError(err)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(500)), "got %s", report.TotalRevenue)
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(300)))
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(200)))
	suite.Require().Len(report.Revenue, 1)
	suite.Require().Len(report.Expenses, 1) // dormant account dropped, no movement in period
	suite.Equal("Commission Expense", report.Expenses[0].Name)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
