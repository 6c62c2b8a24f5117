package services

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
)

// AccountSvcFacade defines the chart-of-accounts registry operations.
type AccountSvcFacade interface {
	// GetOrCreateAccount looks an account up by (salonID, code) and provisions
	// it when absent. Safe under concurrent first use: a lost insert race is
	// resolved by re-reading the winner's row.
	GetOrCreateAccount(ctx context.Context, salonID, code, name string, accountType domain.AccountType, actorID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within a salon.
	FindAccountByCode(ctx context.Context, salonID, code string) (*domain.Account, error)

	// GetAccounts lists a salon's accounts ordered by (type, code), optionally
	// filtered to one type.
	GetAccounts(ctx context.Context, salonID string, accountType *domain.AccountType) ([]domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}
