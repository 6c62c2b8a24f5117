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
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: repo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetOrCreateAccount resolves an account by (salonID, code), provisioning it
// when absent. Two callers racing on first use both succeed: the insert loser
// re-reads the winner's row instead of surfacing the duplicate error.
func (s *accountService) GetOrCreateAccount(ctx context.Context, salonID, code, name string, accountType domain.AccountType, actorID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, salonID, code)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to look up account by code",
			slog.String("salon_id", salonID), slog.String("code", code))
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}

	now := time.Now()
	newAccount := domain.Account{
		AccountID:   uuid.NewString(),
		SalonID:     salonID,
		Code:        code,
		Name:        name,
		AccountType: accountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	err = s.accountRepo.SaveAccount(ctx, newAccount)
	if err == nil {
		s.LogInfo(ctx, "provisioned account",
			slog.String("salon_id", salonID),
			slog.String("code", code),
			slog.String("account_id", newAccount.AccountID))
		return &newAccount, nil
	}

	if errors.Is(err, apperrors.ErrDuplicate) {
		// Lost the creation race; the winner's row is authoritative.
		return s.accountRepo.FindAccountByCode(ctx, salonID, code)
	}

	s.LogError(ctx, err, "failed to save account",
		slog.String("salon_id", salonID), slog.String("code", code))
	return nil, fmt.Errorf("failed to create account %s: %w", code, err)
}

// FindAccountByCode retrieves an account by its code within a salon.
func (s *accountService) FindAccountByCode(ctx context.Context, salonID, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, salonID, code)
}

// GetAccounts lists a salon's accounts, optionally filtered to one type.
func (s *accountService) GetAccounts(ctx context.Context, salonID string, accountType *domain.AccountType) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, salonID, accountType)
}

// GetAccountsByIDs retrieves multiple accounts by their IDs.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}
