package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/core/services"
	"github.com/glowslot/salon_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockRepo *MockWalletRepository
	service  portssvc.WalletSvcFacade
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockWalletRepository)
	suite.service = services.NewWalletService(suite.mockRepo, "KES")
}

func (suite *WalletServiceTestSuite) TestGetOrCreateWallet_Existing() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.Wallet{WalletID: uuid.NewString(), UserID: userID, Balance: decimal.NewFromInt(42)}

	suite.mockRepo.On("FindWalletByUserID", ctx, userID).Return(existing, nil).Once()

	wallet, err := suite.service.GetOrCreateWallet(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(existing.WalletID, wallet.WalletID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveWallet", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestGetOrCreateWallet_ProvisionsWithZeroBalance() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindWalletByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).Return(nil).Once()

	wallet, err := suite.service.GetOrCreateWallet(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(wallet)
	suite.NotEmpty(wallet.WalletID)
	suite.Equal(userID, wallet.UserID)
	suite.True(wallet.Balance.IsZero())
	suite.Equal("KES", wallet.CurrencyCode)
	suite.WithinDuration(time.Now(), wallet.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestGetOrCreateWallet_LostRaceReturnsWinner() {
	ctx := context.Background()
	userID := uuid.NewString()
	winner := &domain.Wallet{WalletID: uuid.NewString(), UserID: userID}

	suite.mockRepo.On("FindWalletByUserID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindWalletByUserID", ctx, userID).Return(winner, nil).Once()

	wallet, err := suite.service.GetOrCreateWallet(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(winner.WalletID, wallet.WalletID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestTransfer_CommitsMovementsUnderLock() {
	ctx := context.Background()
	payerID := uuid.NewString()
	payeeID := uuid.NewString()
	locked := map[string]domain.Wallet{
		payerID: {WalletID: payerID, Balance: decimal.NewFromInt(500)},
		payeeID: {WalletID: payeeID, Balance: decimal.NewFromInt(100)},
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindWalletsForUpdate", ctx, mock.Anything, []string{payeeID, payerID}).
		Return(locked, nil).Once()
	suite.mockRepo.On("ApplyMovementsInTx", ctx, mock.Anything, mock.MatchedBy(func(movements []accounting.WalletMovement) bool {
		return len(movements) == 2 &&
			movements[0].WalletID == payerID && movements[0].NewBalance.Equal(decimal.NewFromInt(350)) &&
			movements[1].WalletID == payeeID && movements[1].NewBalance.Equal(decimal.NewFromInt(250))
	})).Return(nil).Once()
	suite.mockRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.Transfer(ctx, &payerID, payeeID, decimal.NewFromInt(150),
		domain.RefCommission, uuid.NewString(), "commission payout")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestTransfer_InsufficientFundsRollsBack() {
	ctx := context.Background()
	payerID := uuid.NewString()
	payeeID := uuid.NewString()
	locked := map[string]domain.Wallet{
		payerID: {WalletID: payerID, Balance: decimal.NewFromInt(10)},
		payeeID: {WalletID: payeeID, Balance: decimal.Zero},
	}

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindWalletsForUpdate", ctx, mock.Anything, mock.Anything).Return(locked, nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.Transfer(ctx, &payerID, payeeID, decimal.NewFromInt(150),
		domain.RefCommission, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyMovementsInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransfer_MissingPayeeRejected() {
	ctx := context.Background()
	payeeID := uuid.NewString()

	suite.mockRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRepo.On("FindWalletsForUpdate", ctx, mock.Anything, mock.Anything).
		Return(map[string]domain.Wallet{}, nil).Once()
	suite.mockRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	err := suite.service.Transfer(ctx, nil, payeeID, decimal.NewFromInt(10),
		domain.RefManualExpense, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyMovementsInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestListTransactions_ClampsPagination() {
	ctx := context.Background()
	walletID := uuid.NewString()

	suite.mockRepo.On("ListTransactionsByWallet", ctx, walletID, 20, 0).
		Return([]domain.WalletTransaction{}, nil).Once()

	_, err := suite.service.ListTransactions(ctx, walletID, 500, -3)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
