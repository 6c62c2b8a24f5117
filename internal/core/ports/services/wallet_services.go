package services

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletSvcFacade defines the wallet transfer engine surface.
type WalletSvcFacade interface {
	// GetOrCreateWallet resolves a user's wallet, provisioning it lazily.
	GetOrCreateWallet(ctx context.Context, userID string) (*domain.Wallet, error)

	// Transfer moves amount between two wallets under pessimistic row locks
	// acquired in wallet-id order. A nil payer wallet models an externally
	// funded settlement: the payee is credited, no payer mutation occurs.
	Transfer(ctx context.Context, payerWalletID *string, payeeWalletID string, amount decimal.Decimal, refType domain.ReferenceType, refID, description string) error

	// GetWallet retrieves a wallet by ID.
	GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error)

	// ListTransactions retrieves a wallet's movement history, most recent first.
	ListTransactions(ctx context.Context, walletID string, limit, offset int) ([]domain.WalletTransaction, error)
}
