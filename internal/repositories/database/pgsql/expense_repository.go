package pgsql

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for manual expense records.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

// SaveExpense persists a manual expense record.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.ManualExpense) error {
	query := `
		INSERT INTO expenses (
			expense_id, salon_id, category_id, category_name, description, amount,
			payment_method, expense_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.SalonID,
		expense.CategoryID,
		expense.CategoryName,
		expense.Description,
		expense.Amount,
		expense.PaymentMethod,
		expense.ExpenseDate,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert expense "+expense.ExpenseID, err)
	}
	return nil
}

// ListExpenses retrieves a salon's manual expenses, newest first.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, salonID string, limit int, offset int) ([]domain.ManualExpense, error) {
	query := `
		SELECT expense_id, salon_id, category_id, category_name, description, amount,
		       payment_method, expense_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM expenses
		WHERE salon_id = $1
		ORDER BY expense_date DESC, expense_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, salonID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list expenses for salon "+salonID, err)
	}
	defer rows.Close()

	expenses := []domain.ManualExpense{}
	for rows.Next() {
		var expense domain.ManualExpense
		if err := rows.Scan(
			&expense.ExpenseID,
			&expense.SalonID,
			&expense.CategoryID,
			&expense.CategoryName,
			&expense.Description,
			&expense.Amount,
			&expense.PaymentMethod,
			&expense.ExpenseDate,
			&expense.CreatedAt,
			&expense.CreatedBy,
			&expense.LastUpdatedAt,
			&expense.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate expenses", err)
	}
	return expenses, nil
}
