package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PayrollServiceTestSuite struct {
	suite.Suite
	mockRepo          *MockPayrollRepository
	mockSalonRepo     *MockSalonRepository
	mockCommRepo      *MockCommissionRepository
	mockCommissionSvc *MockCommissionSvc
	mockAccSvc        *MockAccountSvc
	mockPoster        *MockJournalPoster
	service           portssvc.PayrollSvcFacade

	salonID string
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPayrollRepository)
	suite.mockSalonRepo = new(MockSalonRepository)
	suite.mockCommRepo = new(MockCommissionRepository)
	suite.mockCommissionSvc = new(MockCommissionSvc)
	suite.mockAccSvc = new(MockAccountSvc)
	suite.mockPoster = new(MockJournalPoster)
	suite.service = services.NewPayrollService(
		suite.mockRepo, suite.mockSalonRepo, suite.mockCommRepo,
		suite.mockCommissionSvc, suite.mockAccSvc, suite.mockPoster)

	suite.salonID = uuid.NewString()
}

func (suite *PayrollServiceTestSuite) employee(salaryType domain.SalaryType, frequency domain.PayFrequency, base int64) domain.SalonEmployee {
	return domain.SalonEmployee{
		SalonEmployeeID: uuid.NewString(),
		SalonID:         suite.salonID,
		UserID:          uuid.NewString(),
		BaseSalary:      decimal.NewFromInt(base),
		PayFrequency:    frequency,
		SalaryType:      salaryType,
		IsActive:        true,
	}
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_WeeklyBaseOverFullWeek() {
	ctx := context.Background()
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC) // 7 days inclusive
	emp := suite.employee(domain.SalaryOnly, domain.PayWeekly, 700)

	suite.mockSalonRepo.On("ListActiveEmployees", ctx, suite.salonID).
		Return([]domain.SalonEmployee{emp}, nil).Once()
	suite.mockRepo.On("SavePayrollRun", ctx, mock.AnythingOfType("domain.PayrollRun")).Return(nil).Once()

	run, err := suite.service.ProcessPayroll(ctx, suite.salonID, start, end, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(run.Items, 1)
	item := run.Items[0]
	suite.True(item.BaseSalary.Equal(decimal.NewFromInt(700)), "got %s", item.BaseSalary)
	suite.True(item.GrossPay.Equal(decimal.NewFromInt(700)))
	suite.True(item.NetPay.Equal(decimal.NewFromInt(700)))
	suite.True(run.TotalAmount.Equal(decimal.NewFromInt(700)))
	suite.Equal(domain.PayrollProcessed, run.Status)
	suite.mockCommRepo.AssertNotCalled(suite.T(), "FindUnpaidByEmployeeInPeriod",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_MonthlyBaseProRatedByDays() {
	ctx := context.Background()
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC) // 15 days inclusive
	emp := suite.employee(domain.SalaryOnly, domain.PayMonthly, 3000)

	suite.mockSalonRepo.On("ListActiveEmployees", ctx, suite.salonID).
		Return([]domain.SalonEmployee{emp}, nil).Once()
	suite.mockRepo.On("SavePayrollRun", ctx, mock.AnythingOfType("domain.PayrollRun")).Return(nil).Once()

	run, err := suite.service.ProcessPayroll(ctx, suite.salonID, start, end, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(run.Items, 1)
	// 3000 / 30 per day, 15 days
	suite.True(run.Items[0].BaseSalary.Equal(decimal.NewFromInt(1500)), "got %s", run.Items[0].BaseSalary)
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_BiweeklyBaseOverSingleDay() {
	ctx := context.Background()
	day := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	emp := suite.employee(domain.SalaryOnly, domain.PayBiweekly, 1400)

	suite.mockSalonRepo.On("ListActiveEmployees", ctx, suite.salonID).
		Return([]domain.SalonEmployee{emp}, nil).Once()
	suite.mockRepo.On("SavePayrollRun", ctx, mock.AnythingOfType("domain.PayrollRun")).Return(nil).Once()

	run, err := suite.service.ProcessPayroll(ctx, suite.salonID, day, day, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(run.Items, 1)
	// 1400 / 14 per day, single-day period pays one day
	suite.True(run.Items[0].BaseSalary.Equal(decimal.NewFromInt(100)), "got %s", run.Items[0].BaseSalary)
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_FoldsUnpaidCommissions() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	emp := suite.employee(domain.SalaryAndCommission, domain.PayWeekly, 700)
	commissions := []domain.Commission{
		{CommissionID: uuid.NewString(), SalonEmployeeID: emp.SalonEmployeeID, Amount: decimal.NewFromInt(120)},
		{CommissionID: uuid.NewString(), SalonEmployeeID: emp.SalonEmployeeID, Amount: decimal.NewFromInt(80)},
	}

	suite.mockSalonRepo.On("ListActiveEmployees", ctx, suite.salonID).
		Return([]domain.SalonEmployee{emp}, nil).Once()
	suite.mockCommRepo.On("FindUnpaidByEmployeeInPeriod", ctx, emp.SalonEmployeeID, start, end).
		Return(commissions, nil).Once()
	suite.mockRepo.On("SavePayrollRun", ctx, mock.AnythingOfType("domain.PayrollRun")).Return(nil).Once()

	run, err := suite.service.ProcessPayroll(ctx, suite.salonID, start, end, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(run.Items, 1)
	item := run.Items[0]
	suite.True(item.CommissionAmount.Equal(decimal.NewFromInt(200)))
	suite.Equal([]string{commissions[0].CommissionID, commissions[1].CommissionID}, item.CommissionIDs)
	suite.True(item.GrossPay.Equal(decimal.NewFromInt(900)))
	suite.True(run.TotalAmount.Equal(decimal.NewFromInt(900)))
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_CommissionOnlyGetsNoBaseSalary() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	emp := suite.employee(domain.CommissionOnly, domain.PayWeekly, 700)
	commissions := []domain.Commission{
		{CommissionID: uuid.NewString(), SalonEmployeeID: emp.SalonEmployeeID, Amount: decimal.NewFromInt(250)},
	}

	suite.mockSalonRepo.On("ListActiveEmployees", ctx, suite.salonID).
		Return([]domain.SalonEmployee{emp}, nil).Once()
	suite.mockCommRepo.On("FindUnpaidByEmployeeInPeriod", ctx, emp.SalonEmployeeID, start, end).
		Return(commissions, nil).Once()
	suite.mockRepo.On("SavePayrollRun", ctx, mock.AnythingOfType("domain.PayrollRun")).Return(nil).Once()

	run, err := suite.service.ProcessPayroll(ctx, suite.salonID, start, end, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(run.Items, 1)
	suite.True(run.Items[0].BaseSalary.IsZero())
	suite.True(run.Items[0].GrossPay.Equal(decimal.NewFromInt(250)))
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_SkipsZeroGrossEmployees() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	idle := suite.employee(domain.CommissionOnly, domain.PayWeekly, 0)
	salaried := suite.employee(domain.SalaryOnly, domain.PayWeekly, 700)

	suite.mockSalonRepo.On("ListActiveEmployees", ctx, suite.salonID).
		Return([]domain.SalonEmployee{idle, salaried}, nil).Once()
	suite.mockCommRepo.On("FindUnpaidByEmployeeInPeriod", ctx, idle.SalonEmployeeID, start, end).
		Return([]domain.Commission{}, nil).Once()
	suite.mockRepo.On("SavePayrollRun", ctx, mock.AnythingOfType("domain.PayrollRun")).Return(nil).Once()

	run, err := suite.service.ProcessPayroll(ctx, suite.salonID, start, end, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(run.Items, 1)
	suite.Equal(salaried.SalonEmployeeID, run.Items[0].SalonEmployeeID)
	suite.True(run.TotalAmount.Equal(decimal.NewFromInt(700)))
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_UnknownFrequencyDefaultsToMonthly() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) // 15 days inclusive
	emp := suite.employee(domain.SalaryOnly, domain.PayFrequency("QUARTERLY"), 3000)

	suite.mockSalonRepo.On("ListActiveEmployees", ctx, suite.salonID).
		Return([]domain.SalonEmployee{emp}, nil).Once()
	suite.mockRepo.On("SavePayrollRun", ctx, mock.AnythingOfType("domain.PayrollRun")).Return(nil).Once()

	run, err := suite.service.ProcessPayroll(ctx, suite.salonID, start, end, "user-1")

	suite.Require().NoError(err)
	suite.Require().Len(run.Items, 1)
	// unrecognized frequency pays on the monthly divisor: 3000 / 30 per day, 15 days
	suite.True(run.Items[0].BaseSalary.Equal(decimal.NewFromInt(1500)), "got %s", run.Items[0].BaseSalary)
}

func (suite *PayrollServiceTestSuite) TestProcessPayroll_EndBeforeStartRejected() {
	ctx := context.Background()
	start := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	run, err := suite.service.ProcessPayroll(ctx, suite.salonID, start, end, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(run)
	suite.mockSalonRepo.AssertNotCalled(suite.T(), "ListActiveEmployees", mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestMarkPayrollAsPaid_AlreadyPaidIsNoOp() {
	ctx := context.Background()
	runID := uuid.NewString()
	paid := &domain.PayrollRun{PayrollRunID: runID, SalonID: suite.salonID, Status: domain.PayrollPaid}

	suite.mockRepo.On("FindPayrollRunByID", ctx, runID).Return(paid, nil).Once()

	run, err := suite.service.MarkPayrollAsPaid(ctx, runID, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PayrollPaid, run.Status)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkRunPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCommissionSvc.AssertNotCalled(suite.T(), "MarkAsPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayrollServiceTestSuite) TestMarkPayrollAsPaid_SettlesCommissionsViaPayrollMethod() {
	ctx := context.Background()
	runID := uuid.NewString()
	itemID := uuid.NewString()
	commissionID := uuid.NewString()
	processed := &domain.PayrollRun{
		PayrollRunID: runID,
		SalonID:      suite.salonID,
		Status:       domain.PayrollProcessed,
		Items: []domain.PayrollItem{{
			PayrollItemID:    itemID,
			PayrollRunID:     runID,
			BaseSalary:       decimal.NewFromInt(500),
			CommissionAmount: decimal.NewFromInt(100),
			CommissionIDs:    []string{commissionID},
		}},
	}
	paid := &domain.PayrollRun{PayrollRunID: runID, SalonID: suite.salonID, Status: domain.PayrollPaid}

	suite.mockRepo.On("FindPayrollRunByID", ctx, runID).Return(processed, nil).Once()
	suite.mockCommissionSvc.On("MarkAsPaid", ctx, commissionID, mock.MatchedBy(func(d domain.CommissionPaymentDetails) bool {
		return d.PaymentMethod == domain.PaymentPayroll && d.PaymentRef == runID &&
			d.PayrollItemID != nil && *d.PayrollItemID == itemID
	}), "user-1").Return(&domain.Commission{CommissionID: commissionID, Paid: true}, nil).Once()
	suite.mockRepo.On("MarkRunPaid", ctx, runID, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.allowPayrollJournal()
	suite.mockRepo.On("FindPayrollRunByID", ctx, runID).Return(paid, nil).Once()

	run, err := suite.service.MarkPayrollAsPaid(ctx, runID, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PayrollPaid, run.Status)
	suite.mockCommissionSvc.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestMarkPayrollAsPaid_ToleratesCommissionSettlementFailure() {
	ctx := context.Background()
	runID := uuid.NewString()
	badID := uuid.NewString()
	goodID := uuid.NewString()
	processed := &domain.PayrollRun{
		PayrollRunID: runID,
		SalonID:      suite.salonID,
		Status:       domain.PayrollProcessed,
		Items: []domain.PayrollItem{{
			PayrollItemID:    uuid.NewString(),
			PayrollRunID:     runID,
			CommissionAmount: decimal.NewFromInt(200),
			CommissionIDs:    []string{badID, goodID},
		}},
	}
	paid := &domain.PayrollRun{PayrollRunID: runID, SalonID: suite.salonID, Status: domain.PayrollPaid}

	suite.mockRepo.On("FindPayrollRunByID", ctx, runID).Return(processed, nil).Once()
	suite.mockCommissionSvc.On("MarkAsPaid", ctx, badID, mock.AnythingOfType("domain.CommissionPaymentDetails"), "user-1").
		Return(nil, errors.New("wallet unavailable")).Once()
	suite.mockCommissionSvc.On("MarkAsPaid", ctx, goodID, mock.AnythingOfType("domain.CommissionPaymentDetails"), "user-1").
		Return(&domain.Commission{CommissionID: goodID, Paid: true}, nil).Once()
	suite.mockRepo.On("MarkRunPaid", ctx, runID, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("FindPayrollRunByID", ctx, runID).Return(paid, nil).Once()

	run, err := suite.service.MarkPayrollAsPaid(ctx, runID, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PayrollPaid, run.Status)
	suite.mockCommissionSvc.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

// allowPayrollJournal wires the best-effort salary journal mocks.
func (suite *PayrollServiceTestSuite) allowPayrollJournal() {
	payroll := &domain.Account{AccountID: uuid.NewString(), SalonID: suite.salonID, AccountType: domain.Expense}
	cash := &domain.Account{AccountID: uuid.NewString(), SalonID: suite.salonID, AccountType: domain.Asset}
	suite.mockAccSvc.On("GetOrCreateAccount", mock.Anything, suite.salonID,
		domain.AccountCodePayroll, mock.Anything, domain.Expense, mock.Anything).Return(payroll, nil)
	suite.mockAccSvc.On("GetOrCreateAccount", mock.Anything, suite.salonID,
		domain.AccountCodeCash, mock.Anything, domain.Asset, mock.Anything).Return(cash, nil)
	suite.mockPoster.On("CreateJournalEntry", mock.Anything, suite.salonID,
		mock.AnythingOfType("dto.CreateJournalEntryRequest"), mock.Anything).
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil)
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
