package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// walletService provides the wallet transfer engine.
type walletService struct {
	BaseService
	walletRepo      portsrepo.WalletRepositoryWithTx
	defaultCurrency string
}

// NewWalletService creates a new wallet service.
func NewWalletService(walletRepo portsrepo.WalletRepositoryWithTx, defaultCurrency string) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo:      walletRepo,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// GetOrCreateWallet resolves a user's wallet, provisioning it lazily with a
// zero balance. The creation race resolves by re-reading the winner's row.
func (s *walletService) GetOrCreateWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find wallet for user %s: %w", userID, err)
	}

	now := time.Now()
	newWallet := domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		Balance:      decimal.Zero,
		CurrencyCode: s.defaultCurrency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err = s.walletRepo.SaveWallet(ctx, newWallet)
	if err == nil {
		s.LogInfo(ctx, "provisioned wallet",
			slog.String("user_id", userID), slog.String("wallet_id", newWallet.WalletID))
		return &newWallet, nil
	}
	if errors.Is(err, apperrors.ErrDuplicate) {
		return s.walletRepo.FindWalletByUserID(ctx, userID)
	}
	return nil, fmt.Errorf("failed to create wallet for user %s: %w", userID, err)
}

// Transfer moves amount between wallets atomically. Both wallets are read
// under row locks taken in wallet-id order, the movements are computed from
// the locked balances, and balance updates plus audit transactions commit
// together. A nil payer credits the payee with no debit side.
func (s *walletService) Transfer(ctx context.Context, payerWalletID *string, payeeWalletID string, amount decimal.Decimal, refType domain.ReferenceType, refID, description string) error {
	tx, err := s.walletRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transfer transaction: %w", err)
	}
	defer func() {
		_ = s.walletRepo.Rollback(ctx, tx)
	}()

	walletIDs := []string{payeeWalletID}
	if payerWalletID != nil {
		walletIDs = append(walletIDs, *payerWalletID)
	}

	locked, err := s.walletRepo.FindWalletsForUpdate(ctx, tx, walletIDs)
	if err != nil {
		return fmt.Errorf("failed to lock wallets: %w", err)
	}

	payee, found := locked[payeeWalletID]
	if !found {
		return fmt.Errorf("%w: payee wallet %s", apperrors.ErrNotFound, payeeWalletID)
	}

	var payer *domain.Wallet
	if payerWalletID != nil {
		payerWallet, found := locked[*payerWalletID]
		if !found {
			return fmt.Errorf("%w: payer wallet %s", apperrors.ErrNotFound, *payerWalletID)
		}
		payer = &payerWallet
	}

	movements, err := accounting.BuildTransferMovements(payer, payee, amount, refType, refID, description)
	if err != nil {
		return err
	}

	if err := s.walletRepo.ApplyMovementsInTx(ctx, tx, movements); err != nil {
		return fmt.Errorf("failed to apply wallet movements: %w", err)
	}

	if err := s.walletRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}

	s.LogInfo(ctx, "wallet transfer completed",
		slog.String("payee_wallet_id", payeeWalletID),
		slog.String("amount", amount.String()),
		slog.String("reference_type", string(refType)),
		slog.String("reference_id", refID))
	return nil
}

// GetWallet retrieves a wallet by ID.
func (s *walletService) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return s.walletRepo.FindWalletByID(ctx, walletID)
}

// ListTransactions retrieves a wallet's movement history, most recent first.
func (s *walletService) ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]domain.WalletTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.walletRepo.ListTransactionsByWallet(ctx, walletID, limit, offset)
}
