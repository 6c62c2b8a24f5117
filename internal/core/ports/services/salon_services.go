package services

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/glowslot/salon_ledger/internal/dto"
)

// SalonSvcFacade defines the salon and staff registry surface.
type SalonSvcFacade interface {
	// CreateSalon provisions a salon owned by the creating user.
	CreateSalon(ctx context.Context, req dto.CreateSalonRequest, creatorUserID string) (*domain.Salon, error)

	// GetSalon retrieves a salon by ID.
	GetSalon(ctx context.Context, salonID string) (*domain.Salon, error)

	// AddEmployee enrolls a user into a salon with compensation terms. Only
	// the salon owner may enroll staff.
	AddEmployee(ctx context.Context, salonID string, req dto.AddEmployeeRequest, actorID string) (*domain.SalonEmployee, error)

	// ListEmployees retrieves a salon's active employees.
	ListEmployees(ctx context.Context, salonID string) ([]domain.SalonEmployee, error)
}
