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
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SaleServiceTestSuite struct {
	suite.Suite
	mockRepo          *MockSaleRepository
	mockAccSvc        *MockAccountSvc
	mockPoster        *MockJournalPoster
	mockCommissionSvc *MockCommissionSvc
	service           portssvc.SaleSvcFacade

	salonID string
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSaleRepository)
	suite.mockAccSvc = new(MockAccountSvc)
	suite.mockPoster = new(MockJournalPoster)
	suite.mockCommissionSvc = new(MockCommissionSvc)
	suite.service = services.NewSaleService(
		suite.mockRepo, suite.mockAccSvc, suite.mockPoster, suite.mockCommissionSvc)

	suite.salonID = uuid.NewString()
}

func (suite *SaleServiceTestSuite) allowSaleJournal() {
	cash := &domain.Account{AccountID: uuid.NewString(), SalonID: suite.salonID, AccountType: domain.Asset}
	revenue := &domain.Account{AccountID: uuid.NewString(), SalonID: suite.salonID, AccountType: domain.Revenue}
	suite.mockAccSvc.On("GetOrCreateAccount", mock.Anything, suite.salonID,
		domain.AccountCodeCash, mock.Anything, domain.Asset, mock.Anything).Return(cash, nil)
	suite.mockAccSvc.On("GetOrCreateAccount", mock.Anything, suite.salonID,
		domain.AccountCodeServiceRevenue, mock.Anything, domain.Revenue, mock.Anything).Return(revenue, nil)
	suite.mockPoster.On("CreateJournalEntry", mock.Anything, suite.salonID,
		mock.AnythingOfType("dto.CreateJournalEntryRequest"), mock.Anything).
		Return(&domain.JournalEntry{EntryID: uuid.NewString(), SalonID: suite.salonID}, nil)
}

func (suite *SaleServiceTestSuite) TestRecordSale_CommissionPerStaffedLine() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	req := dto.RecordSaleRequest{
		TotalAmount:   decimal.NewFromInt(300),
		PaymentMethod: "cash",
		SaleDate:      time.Now(),
		Items: []dto.SaleItemRequest{
			{SalonEmployeeID: &employeeID, Description: "Haircut", LineTotal: decimal.NewFromInt(200)},
			{Description: "Retail product", LineTotal: decimal.NewFromInt(100)},
		},
	}

	suite.mockRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale")).Return(nil).Once()
	suite.allowSaleJournal()
	suite.mockCommissionSvc.On("CreateCommission", ctx, mock.MatchedBy(func(r dto.CreateCommissionRequest) bool {
		return r.SalonEmployeeID == employeeID && r.SaleItemID != nil &&
			r.SaleAmount.Equal(decimal.NewFromInt(200))
	}), "user-1").Return(&domain.Commission{
		CommissionID: uuid.NewString(),
		Amount:       decimal.NewFromInt(20),
	}, nil).Once()

	resp, err := suite.service.RecordSale(ctx, suite.salonID, req, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(resp.SaleID)
	suite.NotEmpty(resp.JournalEntry.EntryID)
	suite.Len(resp.Commissions, 1)
	suite.Equal(1, resp.SkippedLines)
	suite.mockCommissionSvc.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestRecordSale_ToleratesJournalFailure() {
	ctx := context.Background()
	req := dto.RecordSaleRequest{
		TotalAmount:   decimal.NewFromInt(100),
		PaymentMethod: "cash",
		SaleDate:      time.Now(),
		Items: []dto.SaleItemRequest{
			{Description: "Retail product", LineTotal: decimal.NewFromInt(100)},
		},
	}

	suite.mockRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale")).Return(nil).Once()
	suite.mockAccSvc.On("GetOrCreateAccount", mock.Anything, suite.salonID,
		domain.AccountCodeCash, mock.Anything, domain.Asset, mock.Anything).
		Return(nil, errors.New("accounts unavailable")).Once()

	resp, err := suite.service.RecordSale(ctx, suite.salonID, req, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(resp.SaleID)
	suite.Empty(resp.JournalEntry.EntryID)
	suite.mockPoster.AssertNotCalled(suite.T(), "CreateJournalEntry",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestRecordSale_ToleratesCommissionFailure() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	req := dto.RecordSaleRequest{
		TotalAmount:   decimal.NewFromInt(200),
		PaymentMethod: "cash",
		SaleDate:      time.Now(),
		Items: []dto.SaleItemRequest{
			{SalonEmployeeID: &employeeID, Description: "Haircut", LineTotal: decimal.NewFromInt(200)},
		},
	}

	suite.mockRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale")).Return(nil).Once()
	suite.allowSaleJournal()
	suite.mockCommissionSvc.On("CreateCommission", ctx, mock.AnythingOfType("dto.CreateCommissionRequest"), "user-1").
		Return(nil, errors.New("employee not found")).Once()

	resp, err := suite.service.RecordSale(ctx, suite.salonID, req, "user-1")

	suite.Require().NoError(err)
	suite.Empty(resp.Commissions)
	suite.Equal(0, resp.SkippedLines)
}

func (suite *SaleServiceTestSuite) TestRecordSale_SaveFailureAborts() {
	ctx := context.Background()
	dbErr := errors.New("insert failed")
	req := dto.RecordSaleRequest{
		TotalAmount:   decimal.NewFromInt(100),
		PaymentMethod: "cash",
		SaleDate:      time.Now(),
		Items: []dto.SaleItemRequest{
			{Description: "Retail product", LineTotal: decimal.NewFromInt(100)},
		},
	}

	suite.mockRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale")).Return(dbErr).Once()

	resp, err := suite.service.RecordSale(ctx, suite.salonID, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, dbErr)
	suite.Nil(resp)
	suite.mockPoster.AssertNotCalled(suite.T(), "CreateJournalEntry",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCompleteAppointment_CreatesDedupedCommission() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	appointmentID := uuid.NewString()
	created := &domain.Commission{CommissionID: uuid.NewString(), AppointmentID: &appointmentID}

	suite.mockCommissionSvc.On("CreateCommission", ctx, mock.MatchedBy(func(r dto.CreateCommissionRequest) bool {
		return r.SalonEmployeeID == employeeID &&
			r.AppointmentID != nil && *r.AppointmentID == appointmentID &&
			r.SaleItemID == nil
	}), "user-1").Return(created, nil).Once()

	commission, err := suite.service.CompleteAppointment(ctx, suite.salonID, dto.CompleteAppointmentRequest{
		SalonEmployeeID: employeeID,
		ServiceAmount:   decimal.NewFromInt(500),
		AppointmentID:   appointmentID,
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(created.CommissionID, commission.CommissionID)
	suite.mockCommissionSvc.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestGetSale_WrongSalonHidden() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, SalonID: uuid.NewString()}

	suite.mockRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()

	got, err := suite.service.GetSale(ctx, suite.salonID, saleID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
