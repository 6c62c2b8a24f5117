package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPayrollRepository struct {
	BaseRepository
}

// newPgxPayrollRepository creates a new repository for payroll runs.
func newPgxPayrollRepository(pool *pgxpool.Pool) portsrepo.PayrollRepositoryFacade {
	return &PgxPayrollRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PayrollRepositoryFacade = (*PgxPayrollRepository)(nil)

// SavePayrollRun persists a run and all of its items in one transaction.
func (r *PgxPayrollRepository) SavePayrollRun(ctx context.Context, run domain.PayrollRun) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	runQuery := `
		INSERT INTO payroll_runs (
			payroll_run_id, salon_id, period_start, period_end, status, total_amount,
			processed_by_id, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, runQuery,
		run.PayrollRunID,
		run.SalonID,
		run.PeriodStart,
		run.PeriodEnd,
		run.Status,
		run.TotalAmount,
		run.ProcessedByID,
		run.CreatedAt,
		run.CreatedBy,
		run.LastUpdatedAt,
		run.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payroll run "+run.PayrollRunID, err)
	}

	itemQuery := `
		INSERT INTO payroll_items (
			payroll_item_id, payroll_run_id, salon_employee_id, base_salary,
			commission_amount, overtime_amount, gross_pay, deductions, net_pay,
			paid, commission_ids
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, item := range run.Items {
		batch.Queue(itemQuery,
			item.PayrollItemID,
			item.PayrollRunID,
			item.SalonEmployeeID,
			item.BaseSalary,
			item.CommissionAmount,
			item.OvertimeAmount,
			item.GrossPay,
			item.Deductions,
			item.NetPay,
			item.Paid,
			item.CommissionIDs,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert payroll items for run "+run.PayrollRunID, err)
	}

	return r.Commit(ctx, tx)
}

// FindPayrollRunByID retrieves a run with its items.
func (r *PgxPayrollRepository) FindPayrollRunByID(ctx context.Context, payrollRunID string) (*domain.PayrollRun, error) {
	query := `
		SELECT payroll_run_id, salon_id, period_start, period_end, status, total_amount,
		       processed_by_id, created_at, created_by, last_updated_at, last_updated_by
		FROM payroll_runs
		WHERE payroll_run_id = $1;
	`
	var run domain.PayrollRun
	err := r.Pool.QueryRow(ctx, query, payrollRunID).Scan(
		&run.PayrollRunID,
		&run.SalonID,
		&run.PeriodStart,
		&run.PeriodEnd,
		&run.Status,
		&run.TotalAmount,
		&run.ProcessedByID,
		&run.CreatedAt,
		&run.CreatedBy,
		&run.LastUpdatedAt,
		&run.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query payroll run "+payrollRunID, err)
	}

	items, err := r.findItemsForRun(ctx, payrollRunID)
	if err != nil {
		return nil, err
	}
	run.Items = items
	return &run, nil
}

func (r *PgxPayrollRepository) findItemsForRun(ctx context.Context, payrollRunID string) ([]domain.PayrollItem, error) {
	query := `
		SELECT payroll_item_id, payroll_run_id, salon_employee_id, base_salary,
		       commission_amount, overtime_amount, gross_pay, deductions, net_pay,
		       paid, commission_ids
		FROM payroll_items
		WHERE payroll_run_id = $1
		ORDER BY payroll_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, payrollRunID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payroll items for run "+payrollRunID, err)
	}
	defer rows.Close()

	items := []domain.PayrollItem{}
	for rows.Next() {
		var item domain.PayrollItem
		if err := rows.Scan(
			&item.PayrollItemID,
			&item.PayrollRunID,
			&item.SalonEmployeeID,
			&item.BaseSalary,
			&item.CommissionAmount,
			&item.OvertimeAmount,
			&item.GrossPay,
			&item.Deductions,
			&item.NetPay,
			&item.Paid,
			&item.CommissionIDs,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate payroll items", err)
	}
	return items, nil
}

// ListPayrollRuns retrieves a salon's runs ordered by period start descending.
// Items are not hydrated on list views.
func (r *PgxPayrollRepository) ListPayrollRuns(ctx context.Context, salonID string, limit int, offset int) ([]domain.PayrollRun, error) {
	query := `
		SELECT payroll_run_id, salon_id, period_start, period_end, status, total_amount,
		       processed_by_id, created_at, created_by, last_updated_at, last_updated_by
		FROM payroll_runs
		WHERE salon_id = $1
		ORDER BY period_start DESC, payroll_run_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, salonID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payroll runs for salon "+salonID, err)
	}
	defer rows.Close()

	runs := []domain.PayrollRun{}
	for rows.Next() {
		var run domain.PayrollRun
		if err := rows.Scan(
			&run.PayrollRunID,
			&run.SalonID,
			&run.PeriodStart,
			&run.PeriodEnd,
			&run.Status,
			&run.TotalAmount,
			&run.ProcessedByID,
			&run.CreatedAt,
			&run.CreatedBy,
			&run.LastUpdatedAt,
			&run.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll run", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate payroll runs", err)
	}
	return runs, nil
}

// MarkRunPaid flips the run to PAID and every item to paid, atomically.
func (r *PgxPayrollRepository) MarkRunPaid(ctx context.Context, payrollRunID string, updatedByID string, paidAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	runQuery := `
		UPDATE payroll_runs
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE payroll_run_id = $1;
	`
	tag, err := tx.Exec(ctx, runQuery, payrollRunID, domain.PayrollPaid, paidAt, updatedByID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark payroll run paid "+payrollRunID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	itemQuery := `UPDATE payroll_items SET paid = TRUE WHERE payroll_run_id = $1;`
	if _, err := tx.Exec(ctx, itemQuery, payrollRunID); err != nil {
		return apperrors.NewAppError(500, "failed to mark payroll items paid for run "+payrollRunID, err)
	}

	return r.Commit(ctx, tx)
}
