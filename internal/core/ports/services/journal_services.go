package services

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/glowslot/salon_ledger/internal/dto"
)

// JournalPoster is the narrow port consumers use to record accounting
// movements. The commission ledger and sale ingestion depend on this rather
// than the full journal service, keeping the wiring acyclic.
type JournalPoster interface {
	// CreateJournalEntry creates a balanced journal entry atomically.
	// Unbalanced line sets are rejected with a validation error before any
	// write happens.
	CreateJournalEntry(ctx context.Context, salonID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade defines the full journal engine surface.
type JournalSvcFacade interface {
	JournalPoster

	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, salonID, entryID string) (*domain.JournalEntry, error)

	// FindByReference retrieves all journal entries referencing a business
	// record, e.g. "show journal entries for sale X".
	FindByReference(ctx context.Context, salonID string, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves a salon's entries, most recent first.
	ListEntries(ctx context.Context, salonID string, limit, offset int) ([]domain.JournalEntry, error)
}
