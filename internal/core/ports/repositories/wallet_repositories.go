package repositories

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/glowslot/salon_ledger/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a wallet by its unique identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// FindWalletByUserID retrieves the wallet owned by a user.
	FindWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error)

	// ListTransactionsByWallet retrieves a wallet's transaction history, most
	// recent first.
	ListTransactionsByWallet(ctx context.Context, walletID string, limit int, offset int) ([]domain.WalletTransaction, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	// SaveWallet persists a new wallet. Returns apperrors.ErrDuplicate when
	// the user already has one.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error
}

// WalletTransactionSupport defines the locked mutation operations used inside
// settlement transactions.
type WalletTransactionSupport interface {
	// FindWalletsForUpdate selects the given wallets with row locks, acquiring
	// locks in wallet-id order to avoid deadlock between concurrent settlements.
	FindWalletsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error)

	// ApplyMovementsInTx updates wallet balances and appends the corresponding
	// wallet transactions within the given database transaction.
	ApplyMovementsInTx(ctx context.Context, tx pgx.Tx, movements []accounting.WalletMovement) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletTransactionSupport
}

// WalletRepositoryWithTx extends WalletRepositoryFacade with transaction capabilities
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade
	TransactionManager
}
