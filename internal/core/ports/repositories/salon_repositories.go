package repositories

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
)

// SalonRepositoryFacade defines persistence operations for salons and their
// staff. Salons are the tenancy boundary; employees carry the compensation
// terms the commission and payroll engines resolve against.
type SalonRepositoryFacade interface {
	// SaveSalon persists a new salon.
	SaveSalon(ctx context.Context, salon domain.Salon) error

	// FindSalonByID retrieves a salon by its unique identifier.
	FindSalonByID(ctx context.Context, salonID string) (*domain.Salon, error)

	// SaveEmployee persists a new salon employee. Returns
	// apperrors.ErrDuplicate when the user is already enrolled in the salon.
	SaveEmployee(ctx context.Context, employee domain.SalonEmployee) error

	// FindEmployeeByID retrieves a salon employee with compensation terms.
	FindEmployeeByID(ctx context.Context, salonEmployeeID string) (*domain.SalonEmployee, error)

	// ListActiveEmployees retrieves a salon's active employees.
	ListActiveEmployees(ctx context.Context, salonID string) ([]domain.SalonEmployee, error)
}

// UserRepositoryFacade defines persistence operations for platform users.
type UserRepositoryFacade interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email is taken.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
