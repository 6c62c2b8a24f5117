package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/google/uuid"
)

// expenseService captures manual operating expenses.
type expenseService struct {
	BaseService
	expenseRepo   portsrepo.ExpenseRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
	journalPoster portssvc.JournalPoster
}

// NewExpenseService creates a new expense service.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	journalPoster portssvc.JournalPoster,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:   expenseRepo,
		accountSvc:    accountSvc,
		journalPoster: journalPoster,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records a manual expense and posts its journal entry, debit
// operating expense and credit cash. The expense record is authoritative; a
// failed journal posting is logged for reconciliation.
func (s *expenseService) CreateExpense(ctx context.Context, salonID string, req dto.CreateExpenseRequest, actorID string) (*domain.ManualExpense, error) {
	now := time.Now()
	expense := domain.ManualExpense{
		ExpenseID:     uuid.NewString(),
		SalonID:       salonID,
		CategoryID:    req.CategoryID,
		CategoryName:  req.CategoryName,
		Description:   req.Description,
		Amount:        req.Amount,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		ExpenseDate:   req.ExpenseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	s.postExpenseJournal(ctx, &expense, actorID)

	s.LogInfo(ctx, "manual expense recorded",
		slog.String("salon_id", salonID),
		slog.String("expense_id", expense.ExpenseID),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

func (s *expenseService) postExpenseJournal(ctx context.Context, expense *domain.ManualExpense, actorID string) {
	expenseAccount, err := s.accountSvc.GetOrCreateAccount(ctx, expense.SalonID,
		domain.AccountCodeOperatingExp, "Operating Expenses", domain.Expense, actorID)
	if err != nil {
		s.LogError(ctx, err, "expense journal skipped, expense account unavailable",
			slog.String("expense_id", expense.ExpenseID))
		return
	}
	cashAccount, err := s.accountSvc.GetOrCreateAccount(ctx, expense.SalonID,
		domain.AccountCodeCash, "Cash", domain.Asset, actorID)
	if err != nil {
		s.LogError(ctx, err, "expense journal skipped, cash account unavailable",
			slog.String("expense_id", expense.ExpenseID))
		return
	}

	req := dto.CreateJournalEntryRequest{
		EntryDate:   expense.ExpenseDate,
		Description: expense.Description,
		Lines: []dto.JournalLineRequest{
			{
				AccountID:     expenseAccount.AccountID,
				DebitAmount:   expense.Amount,
				Description:   expense.CategoryName,
				ReferenceType: string(domain.RefManualExpense),
				ReferenceID:   expense.ExpenseID,
			},
			{
				AccountID:     cashAccount.AccountID,
				CreditAmount:  expense.Amount,
				ReferenceType: string(domain.RefManualExpense),
				ReferenceID:   expense.ExpenseID,
			},
		},
	}

	if _, err := s.journalPoster.CreateJournalEntry(ctx, expense.SalonID, req, actorID); err != nil {
		s.LogError(ctx, err, "failed to post expense journal entry",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("amount", expense.Amount.String()))
	}
}

// ListExpenses retrieves a salon's manual expenses, most recent first.
func (s *expenseService) ListExpenses(ctx context.Context, salonID string, limit, offset int) ([]domain.ManualExpense, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.expenseRepo.ListExpenses(ctx, salonID, limit, offset)
}
