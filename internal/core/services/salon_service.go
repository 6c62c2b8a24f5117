package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/dto"
)

// salonService manages the salon and staff registry. Salons anchor tenancy
// for every ledger aggregate; employees carry the compensation terms the
// commission and payroll engines read.
type salonService struct {
	BaseService
	salonRepo       portsrepo.SalonRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
	defaultCurrency string
}

// NewSalonService creates a new salon service.
func NewSalonService(
	salonRepo portsrepo.SalonRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	defaultCurrency string,
) portssvc.SalonSvcFacade {
	return &salonService{
		salonRepo:       salonRepo,
		userRepo:        userRepo,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.SalonSvcFacade = (*salonService)(nil)

// CreateSalon provisions a salon with the creating user as owner. An omitted
// currency code falls back to the platform default.
func (s *salonService) CreateSalon(ctx context.Context, req dto.CreateSalonRequest, creatorUserID string) (*domain.Salon, error) {
	currency := req.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}

	now := time.Now()
	salon := domain.Salon{
		SalonID:      uuid.NewString(),
		Name:         req.Name,
		OwnerUserID:  creatorUserID,
		CurrencyCode: currency,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.salonRepo.SaveSalon(ctx, salon); err != nil {
		return nil, fmt.Errorf("failed to save salon: %w", err)
	}

	s.LogInfo(ctx, "salon created",
		slog.String("salon_id", salon.SalonID),
		slog.String("owner_user_id", creatorUserID))
	return &salon, nil
}

// GetSalon retrieves a salon by ID.
func (s *salonService) GetSalon(ctx context.Context, salonID string) (*domain.Salon, error) {
	return s.salonRepo.FindSalonByID(ctx, salonID)
}

// AddEmployee enrolls a user into a salon. Only the salon owner may enroll
// staff. Omitted pay frequency and salary type default to monthly
// salary-and-commission, matching how payroll treats unset terms.
func (s *salonService) AddEmployee(ctx context.Context, salonID string, req dto.AddEmployeeRequest, actorID string) (*domain.SalonEmployee, error) {
	salon, err := s.salonRepo.FindSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if salon.OwnerUserID != actorID {
		return nil, fmt.Errorf("%w: only the salon owner can enroll staff", apperrors.ErrForbidden)
	}

	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user %s: %w", req.UserID, err)
	}

	if req.CommissionRate.IsNegative() || req.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: commission rate must be between 0 and 100", apperrors.ErrValidation)
	}
	if req.BaseSalary.IsNegative() {
		return nil, fmt.Errorf("%w: base salary cannot be negative", apperrors.ErrValidation)
	}

	payFrequency := domain.PayFrequency(req.PayFrequency)
	if payFrequency == "" {
		payFrequency = domain.PayMonthly
	}
	salaryType := domain.SalaryType(req.SalaryType)
	if salaryType == "" {
		salaryType = domain.SalaryAndCommission
	}

	now := time.Now()
	employee := domain.SalonEmployee{
		SalonEmployeeID: uuid.NewString(),
		SalonID:         salonID,
		UserID:          req.UserID,
		CommissionRate:  req.CommissionRate,
		BaseSalary:      req.BaseSalary,
		PayFrequency:    payFrequency,
		SalaryType:      salaryType,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.salonRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to save salon employee: %w", err)
	}

	s.LogInfo(ctx, "employee enrolled",
		slog.String("salon_id", salonID),
		slog.String("salon_employee_id", employee.SalonEmployeeID),
		slog.String("user_id", req.UserID))
	return &employee, nil
}

// ListEmployees retrieves a salon's active employees.
func (s *salonService) ListEmployees(ctx context.Context, salonID string) ([]domain.SalonEmployee, error) {
	if _, err := s.salonRepo.FindSalonByID(ctx, salonID); err != nil {
		return nil, err
	}
	return s.salonRepo.ListActiveEmployees(ctx, salonID)
}
