package pgsql

import (
	"context"
	"errors"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry persists the entry header and all of its lines in one database
// transaction. Lines are batched; any failed insert aborts the whole entry.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, salon_id, entry_number, entry_date, description, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.SalonID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.Description,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (
			line_id, entry_id, account_id, debit_amount, credit_amount,
			description, reference_type, reference_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, line := range entry.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.EntryID,
			line.AccountID,
			line.DebitAmount,
			line.CreditAmount,
			line.Description,
			line.ReferenceType,
			line.ReferenceID,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal lines for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry with its lines and account details.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, salon_id, entry_number, entry_date, description, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE entry_id = $1;
	`
	var entry domain.JournalEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&entry.EntryID,
		&entry.SalonID,
		&entry.EntryNumber,
		&entry.EntryDate,
		&entry.Description,
		&entry.Status,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query journal entry "+entryID, err)
	}

	lines, err := r.findLinesForEntries(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

// findLinesForEntries loads lines for the given entries keyed by entry id,
// with account code and name joined in.
func (r *PgxJournalRepository) findLinesForEntries(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, a.code, a.name,
		       l.debit_amount, l.credit_amount, l.description, l.reference_type, l.reference_id
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = ANY($1)
		ORDER BY l.debit_amount DESC, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.JournalLine, len(entryIDs))
	for rows.Next() {
		var line domain.JournalLine
		if err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.AccountID,
			&line.AccountCode,
			&line.AccountName,
			&line.DebitAmount,
			&line.CreditAmount,
			&line.Description,
			&line.ReferenceType,
			&line.ReferenceID,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		result[line.EntryID] = append(result[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal lines", err)
	}
	return result, nil
}

func (r *PgxJournalRepository) scanEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	defer rows.Close()
	var entries []domain.JournalEntry
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.SalonID,
			&entry.EntryNumber,
			&entry.EntryDate,
			&entry.Description,
			&entry.Status,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate journal entries", err)
	}
	return entries, nil
}

// attachLines hydrates lines onto the given entries.
func (r *PgxJournalRepository) attachLines(ctx context.Context, entries []domain.JournalEntry) ([]domain.JournalEntry, error) {
	entryIDs := make([]string, len(entries))
	for i := range entries {
		entryIDs[i] = entries[i].EntryID
	}
	lines, err := r.findLinesForEntries(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

// FindEntriesByReference retrieves entries that carry a line referencing the
// given business record.
func (r *PgxJournalRepository) FindEntriesByReference(ctx context.Context, salonID string, refType domain.ReferenceType, refID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT DISTINCT e.entry_id, e.salon_id, e.entry_number, e.entry_date, e.description, e.status,
		       e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
		FROM journal_entries e
		JOIN journal_lines l ON l.entry_id = e.entry_id
		WHERE e.salon_id = $1 AND l.reference_type = $2 AND l.reference_id = $3
		ORDER BY e.entry_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, salonID, refType, refID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries by reference", err)
	}
	entries, err := r.scanEntries(rows)
	if err != nil {
		return nil, err
	}
	return r.attachLines(ctx, entries)
}

// ListEntries retrieves a salon's entries ordered by entry date descending.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, salonID string, limit int, offset int) ([]domain.JournalEntry, error) {
	query := `
		SELECT entry_id, salon_id, entry_number, entry_date, description, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE salon_id = $1
		ORDER BY entry_date DESC, entry_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, salonID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list journal entries for salon "+salonID, err)
	}
	entries, err := r.scanEntries(rows)
	if err != nil {
		return nil, err
	}
	return r.attachLines(ctx, entries)
}
