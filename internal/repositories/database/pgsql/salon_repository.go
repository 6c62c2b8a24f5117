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

type PgxSalonRepository struct {
	BaseRepository
}

// newPgxSalonRepository creates a new repository for salon and staff data.
func newPgxSalonRepository(pool *pgxpool.Pool) portsrepo.SalonRepositoryFacade {
	return &PgxSalonRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SalonRepositoryFacade = (*PgxSalonRepository)(nil)

// SaveSalon inserts a new salon.
func (r *PgxSalonRepository) SaveSalon(ctx context.Context, salon domain.Salon) error {
	query := `
		INSERT INTO salons (salon_id, name, owner_user_id, currency_code, is_active,
		                    created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		salon.SalonID,
		salon.Name,
		salon.OwnerUserID,
		salon.CurrencyCode,
		salon.IsActive,
		salon.CreatedAt,
		salon.CreatedBy,
		salon.LastUpdatedAt,
		salon.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert salon "+salon.SalonID, err)
	}
	return nil
}

// FindSalonByID retrieves a salon by its unique identifier.
func (r *PgxSalonRepository) FindSalonByID(ctx context.Context, salonID string) (*domain.Salon, error) {
	query := `
		SELECT salon_id, name, owner_user_id, currency_code, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM salons
		WHERE salon_id = $1;
	`
	var salon domain.Salon
	err := r.Pool.QueryRow(ctx, query, salonID).Scan(
		&salon.SalonID,
		&salon.Name,
		&salon.OwnerUserID,
		&salon.CurrencyCode,
		&salon.IsActive,
		&salon.CreatedAt,
		&salon.CreatedBy,
		&salon.LastUpdatedAt,
		&salon.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query salon "+salonID, err)
	}
	return &salon, nil
}

const employeeColumns = `
	salon_employee_id, salon_id, user_id, commission_rate, base_salary,
	pay_frequency, salary_type, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanEmployee(row pgx.Row) (*domain.SalonEmployee, error) {
	var emp domain.SalonEmployee
	err := row.Scan(
		&emp.SalonEmployeeID,
		&emp.SalonID,
		&emp.UserID,
		&emp.CommissionRate,
		&emp.BaseSalary,
		&emp.PayFrequency,
		&emp.SalaryType,
		&emp.IsActive,
		&emp.CreatedAt,
		&emp.CreatedBy,
		&emp.LastUpdatedAt,
		&emp.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan salon employee", err)
	}
	return &emp, nil
}

// SaveEmployee inserts a new salon employee. The (salon_id, user_id) unique
// index maps to ErrDuplicate so double enrollment surfaces as a conflict.
func (r *PgxSalonRepository) SaveEmployee(ctx context.Context, employee domain.SalonEmployee) error {
	query := `
		INSERT INTO salon_employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		employee.SalonEmployeeID,
		employee.SalonID,
		employee.UserID,
		employee.CommissionRate,
		employee.BaseSalary,
		employee.PayFrequency,
		employee.SalaryType,
		employee.IsActive,
		employee.CreatedAt,
		employee.CreatedBy,
		employee.LastUpdatedAt,
		employee.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert salon employee "+employee.SalonEmployeeID, err)
	}
	return nil
}

// FindEmployeeByID retrieves a salon employee with compensation terms.
func (r *PgxSalonRepository) FindEmployeeByID(ctx context.Context, salonEmployeeID string) (*domain.SalonEmployee, error) {
	query := `SELECT ` + employeeColumns + ` FROM salon_employees WHERE salon_employee_id = $1;`
	return scanEmployee(r.Pool.QueryRow(ctx, query, salonEmployeeID))
}

// ListActiveEmployees retrieves a salon's active employees.
func (r *PgxSalonRepository) ListActiveEmployees(ctx context.Context, salonID string) ([]domain.SalonEmployee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM salon_employees
		WHERE salon_id = $1 AND is_active = TRUE
		ORDER BY salon_employee_id;
	`
	rows, err := r.Pool.Query(ctx, query, salonID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list employees for salon "+salonID, err)
	}
	defer rows.Close()

	employees := []domain.SalonEmployee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate salon employees", err)
	}
	return employees, nil
}
