package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/glowslot/salon_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// journalService provides the double-entry journal engine.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry validates and persists a balanced journal entry. The
// entry and all of its lines are written in one repository transaction, so a
// failure on any line aborts the whole entry. Unbalanced or malformed line
// sets never reach the database.
func (s *journalService) CreateJournalEntry(ctx context.Context, salonID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	now := time.Now()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:        uuid.NewString(),
			EntryID:       entryID,
			AccountID:     lineReq.AccountID,
			DebitAmount:   lineReq.DebitAmount,
			CreditAmount:  lineReq.CreditAmount,
			Description:   lineReq.Description,
			ReferenceType: domain.ReferenceType(lineReq.ReferenceType),
			ReferenceID:   lineReq.ReferenceID,
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		s.LogWarn(ctx, "rejected unbalanced journal entry",
			slog.String("salon_id", salonID), slog.String("error", err.Error()))
		return nil, err
	}

	// Every referenced account must exist and belong to this salon.
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for journal entry: %w", err)
	}
	for _, line := range lines {
		account, found := accounts[line.AccountID]
		if !found {
			return nil, fmt.Errorf("%w: account %s not found for journal line", apperrors.ErrNotFound, line.AccountID)
		}
		if account.SalonID != salonID {
			return nil, fmt.Errorf("%w: account %s does not belong to salon %s", apperrors.ErrValidation, line.AccountID, salonID)
		}
	}

	entryNumber := req.EntryNumber
	if entryNumber == "" {
		entryNumber = fmt.Sprintf("JE-%s", now.Format("20060102-150405.000"))
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		SalonID:     salonID,
		EntryNumber: entryNumber,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Status:      domain.Posted,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "failed to save journal entry",
			slog.String("salon_id", salonID), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "journal entry created",
		slog.String("salon_id", salonID),
		slog.String("entry_id", entryID),
		slog.Int("lines", len(lines)))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines, enforcing salon scoping.
func (s *journalService) GetEntryByID(ctx context.Context, salonID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.SalonID != salonID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// FindByReference retrieves all journal entries referencing a business record.
func (s *journalService) FindByReference(ctx context.Context, salonID string, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error) {
	return s.journalRepo.FindEntriesByReference(ctx, salonID, refType, refID)
}

// ListEntries retrieves a salon's entries, most recent first.
func (s *journalService) ListEntries(ctx context.Context, salonID string, limit, offset int) ([]domain.JournalEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.journalRepo.ListEntries(ctx, salonID, limit, offset)
}
