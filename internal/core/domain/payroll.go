package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayFrequency determines how an employee's base salary is pro-rated over a
// payroll period.
type PayFrequency string

const (
	PayDaily    PayFrequency = "DAILY"
	PayWeekly   PayFrequency = "WEEKLY"
	PayBiweekly PayFrequency = "BIWEEKLY"
	PayMonthly  PayFrequency = "MONTHLY"
)

// SalaryType controls which pay components an employee receives.
type SalaryType string

const (
	SalaryOnly          SalaryType = "SALARY_ONLY"
	CommissionOnly      SalaryType = "COMMISSION_ONLY"
	SalaryAndCommission SalaryType = "SALARY_AND_COMMISSION"
)

// PayrollRunStatus is the lifecycle state of a payroll run.
type PayrollRunStatus string

const (
	PayrollDraft     PayrollRunStatus = "DRAFT"
	PayrollProcessed PayrollRunStatus = "PROCESSED"
	PayrollPaid      PayrollRunStatus = "PAID"
)

// PayrollRun is one payroll computation over a period for a salon.
type PayrollRun struct {
	PayrollRunID  string           `json:"payrollRunID"`
	SalonID       string           `json:"salonID"`
	PeriodStart   time.Time        `json:"periodStart"`
	PeriodEnd     time.Time        `json:"periodEnd"`
	Status        PayrollRunStatus `json:"status"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
	ProcessedByID string           `json:"processedByID"`
	Items         []PayrollItem    `json:"items,omitempty"`
	AuditFields
}

// PayrollItem is one employee's pay within a run.
// GrossPay = pro-rated base salary + unpaid commissions for the period.
// Overtime and deductions are recorded but not yet computed.
type PayrollItem struct {
	PayrollItemID    string          `json:"payrollItemID"`
	PayrollRunID     string          `json:"payrollRunID"`
	SalonEmployeeID  string          `json:"salonEmployeeID"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	CommissionAmount decimal.Decimal `json:"commissionAmount"`
	OvertimeAmount   decimal.Decimal `json:"overtimeAmount"`
	GrossPay         decimal.Decimal `json:"grossPay"`
	Deductions       decimal.Decimal `json:"deductions"`
	NetPay           decimal.Decimal `json:"netPay"`
	Paid             bool            `json:"paid"`
	CommissionIDs    []string        `json:"commissionIDs,omitempty"` // commissions folded into this item
}
