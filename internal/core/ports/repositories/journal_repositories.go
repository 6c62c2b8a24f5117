package repositories

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its lines and account
	// details joined.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntriesByReference retrieves all journal entries that carry a line
	// referencing the given business record.
	FindEntriesByReference(ctx context.Context, salonID string, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error)

	// ListEntries retrieves a salon's journal entries ordered by entry date
	// descending.
	ListEntries(ctx context.Context, salonID string, limit int, offset int) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists a journal entry header and all of its lines in one
	// database transaction; any failure aborts the whole entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
