package domain

import "github.com/shopspring/decimal"

// Salon is the tenant boundary. Every ledger aggregate is scoped by SalonID.
type Salon struct {
	SalonID      string `json:"salonID"`
	Name         string `json:"name"`
	OwnerUserID  string `json:"ownerUserID"`
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// SalonEmployee links a user to a salon with their compensation terms.
type SalonEmployee struct {
	SalonEmployeeID string          `json:"salonEmployeeID"`
	SalonID         string          `json:"salonID"`
	UserID          string          `json:"userID"`
	CommissionRate  decimal.Decimal `json:"commissionRate"` // percentage of line total
	BaseSalary      decimal.Decimal `json:"baseSalary"`
	PayFrequency    PayFrequency    `json:"payFrequency"`
	SalaryType      SalaryType      `json:"salaryType"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}
