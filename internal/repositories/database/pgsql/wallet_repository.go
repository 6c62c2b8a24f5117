package pgsql

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	"github.com/glowslot/salon_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallets and their
// transaction history.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryWithTx {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryWithTx = (*PgxWalletRepository)(nil)

const walletColumns = `
	wallet_id, user_id, balance, currency_code,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(
		&w.WalletID,
		&w.UserID,
		&w.Balance,
		&w.CurrencyCode,
		&w.CreatedAt,
		&w.CreatedBy,
		&w.LastUpdatedAt,
		&w.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan wallet", err)
	}
	return &w, nil
}

// SaveWallet inserts a new wallet. The user_id unique constraint maps to
// ErrDuplicate so lazy provisioning races resolve cleanly.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		wallet.WalletID,
		wallet.UserID,
		wallet.Balance,
		wallet.CurrencyCode,
		wallet.CreatedAt,
		wallet.CreatedBy,
		wallet.LastUpdatedAt,
		wallet.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert wallet "+wallet.WalletID, err)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its unique identifier.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1;`
	return scanWallet(r.Pool.QueryRow(ctx, query, walletID))
}

// FindWalletByUserID retrieves the wallet owned by a user.
func (r *PgxWalletRepository) FindWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1;`
	return scanWallet(r.Pool.QueryRow(ctx, query, userID))
}

// FindWalletsForUpdate selects wallets with row locks. Lock acquisition order
// is fixed by sorting the ids, so two settlements touching the same wallets
// cannot deadlock each other.
func (r *PgxWalletRepository) FindWalletsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error) {
	if len(walletIDs) == 0 {
		return map[string]domain.Wallet{}, nil
	}
	sorted := make([]string, len(walletIDs))
	copy(sorted, walletIDs)
	sort.Strings(sorted)

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE wallet_id = ANY($1)
		ORDER BY wallet_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock wallets", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Wallet, len(sorted))
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		result[w.WalletID] = *w
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate locked wallets", err)
	}

	for _, id := range sorted {
		if _, found := result[id]; !found {
			return nil, apperrors.ErrNotFound
		}
	}
	return result, nil
}

// ApplyMovementsInTx updates wallet balances and appends the audit
// transactions inside the caller's database transaction. The caller must hold
// row locks on every wallet involved.
func (r *PgxWalletRepository) ApplyMovementsInTx(ctx context.Context, tx pgx.Tx, movements []accounting.WalletMovement) error {
	now := time.Now()
	batch := &pgx.Batch{}

	balanceQuery := `
		UPDATE wallets SET balance = $2, last_updated_at = $3 WHERE wallet_id = $1;
	`
	txnQuery := `
		INSERT INTO wallet_transactions (
			transaction_id, wallet_id, transaction_type, amount,
			balance_before, balance_after, status, reference_type, reference_id,
			description, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	for _, movement := range movements {
		batch.Queue(balanceQuery, movement.WalletID, movement.NewBalance, now)

		txn := movement.Transaction
		if txn.TransactionID == "" {
			txn.TransactionID = uuid.NewString()
		}
		batch.Queue(txnQuery,
			txn.TransactionID,
			txn.WalletID,
			txn.TransactionType,
			txn.Amount,
			txn.BalanceBefore,
			txn.BalanceAfter,
			txn.Status,
			txn.ReferenceType,
			txn.ReferenceID,
			txn.Description,
			now,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply wallet movements", err)
	}
	return nil
}

// ListTransactionsByWallet retrieves a wallet's history, most recent first.
func (r *PgxWalletRepository) ListTransactionsByWallet(ctx context.Context, walletID string, limit int, offset int) ([]domain.WalletTransaction, error) {
	query := `
		SELECT transaction_id, wallet_id, transaction_type, amount,
		       balance_before, balance_after, status, reference_type, reference_id,
		       description, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, transaction_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query wallet transactions for "+walletID, err)
	}
	defer rows.Close()

	transactions := []domain.WalletTransaction{}
	for rows.Next() {
		var txn domain.WalletTransaction
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.WalletID,
			&txn.TransactionType,
			&txn.Amount,
			&txn.BalanceBefore,
			&txn.BalanceAfter,
			&txn.Status,
			&txn.ReferenceType,
			&txn.ReferenceID,
			&txn.Description,
			&txn.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan wallet transaction", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate wallet transactions", err)
	}
	return transactions, nil
}
