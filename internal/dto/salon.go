package dto

import (
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSalonRequest defines the inputs for provisioning a salon.
type CreateSalonRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"omitempty,len=3"`
}

// AddEmployeeRequest defines the inputs for enrolling a user as salon staff.
// Omitted pay frequency and salary type take the monthly salary-and-commission
// defaults.
type AddEmployeeRequest struct {
	UserID         string          `json:"userID" binding:"required"`
	CommissionRate decimal.Decimal `json:"commissionRate"`
	BaseSalary     decimal.Decimal `json:"baseSalary"`
	PayFrequency   string          `json:"payFrequency" binding:"omitempty,oneof=DAILY WEEKLY BIWEEKLY MONTHLY"`
	SalaryType     string          `json:"salaryType" binding:"omitempty,oneof=SALARY_ONLY COMMISSION_ONLY SALARY_AND_COMMISSION"`
}

// SalonResponse defines the data returned for a salon.
type SalonResponse struct {
	SalonID      string    `json:"salonID"`
	Name         string    `json:"name"`
	OwnerUserID  string    `json:"ownerUserID"`
	CurrencyCode string    `json:"currencyCode"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToSalonResponse converts a domain.Salon to SalonResponse DTO
func ToSalonResponse(salon *domain.Salon) SalonResponse {
	return SalonResponse{
		SalonID:      salon.SalonID,
		Name:         salon.Name,
		OwnerUserID:  salon.OwnerUserID,
		CurrencyCode: salon.CurrencyCode,
		IsActive:     salon.IsActive,
		CreatedAt:    salon.CreatedAt,
	}
}

// EmployeeResponse defines the data returned for a salon employee.
type EmployeeResponse struct {
	SalonEmployeeID string              `json:"salonEmployeeID"`
	SalonID         string              `json:"salonID"`
	UserID          string              `json:"userID"`
	CommissionRate  decimal.Decimal     `json:"commissionRate"`
	BaseSalary      decimal.Decimal     `json:"baseSalary"`
	PayFrequency    domain.PayFrequency `json:"payFrequency"`
	SalaryType      domain.SalaryType   `json:"salaryType"`
	IsActive        bool                `json:"isActive"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ToEmployeeResponse converts a domain.SalonEmployee to EmployeeResponse DTO
func ToEmployeeResponse(emp *domain.SalonEmployee) EmployeeResponse {
	return EmployeeResponse{
		SalonEmployeeID: emp.SalonEmployeeID,
		SalonID:         emp.SalonID,
		UserID:          emp.UserID,
		CommissionRate:  emp.CommissionRate,
		BaseSalary:      emp.BaseSalary,
		PayFrequency:    emp.PayFrequency,
		SalaryType:      emp.SalaryType,
		IsActive:        emp.IsActive,
		CreatedAt:       emp.CreatedAt,
	}
}

// ToListEmployeeResponse converts a slice of domain.SalonEmployee to response DTOs
func ToListEmployeeResponse(employees []domain.SalonEmployee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, emp := range employees {
		res[i] = ToEmployeeResponse(&emp)
	}
	return res
}
