package dto

import (
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProcessPayrollRequest defines the inputs for computing a payroll run.
type ProcessPayrollRequest struct {
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
}

// PayrollItemResponse defines the data returned for one employee's pay.
type PayrollItemResponse struct {
	PayrollItemID    string          `json:"payrollItemID"`
	SalonEmployeeID  string          `json:"salonEmployeeID"`
	BaseSalary       decimal.Decimal `json:"baseSalary"`
	CommissionAmount decimal.Decimal `json:"commissionAmount"`
	OvertimeAmount   decimal.Decimal `json:"overtimeAmount"`
	GrossPay         decimal.Decimal `json:"grossPay"`
	Deductions       decimal.Decimal `json:"deductions"`
	NetPay           decimal.Decimal `json:"netPay"`
	Paid             bool            `json:"paid"`
}

// PayrollRunResponse defines the data returned for a payroll run.
type PayrollRunResponse struct {
	PayrollRunID  string                  `json:"payrollRunID"`
	SalonID       string                  `json:"salonID"`
	PeriodStart   time.Time               `json:"periodStart"`
	PeriodEnd     time.Time               `json:"periodEnd"`
	Status        domain.PayrollRunStatus `json:"status"`
	TotalAmount   decimal.Decimal         `json:"totalAmount"`
	ProcessedByID string                  `json:"processedByID"`
	Items         []PayrollItemResponse   `json:"items,omitempty"`
}

// ToPayrollRunResponse converts a domain.PayrollRun to its response DTO.
func ToPayrollRunResponse(run *domain.PayrollRun) PayrollRunResponse {
	resp := PayrollRunResponse{
		PayrollRunID:  run.PayrollRunID,
		SalonID:       run.SalonID,
		PeriodStart:   run.PeriodStart,
		PeriodEnd:     run.PeriodEnd,
		Status:        run.Status,
		TotalAmount:   run.TotalAmount,
		ProcessedByID: run.ProcessedByID,
	}
	if len(run.Items) > 0 {
		resp.Items = make([]PayrollItemResponse, len(run.Items))
		for i, item := range run.Items {
			resp.Items[i] = PayrollItemResponse{
				PayrollItemID:    item.PayrollItemID,
				SalonEmployeeID:  item.SalonEmployeeID,
				BaseSalary:       item.BaseSalary,
				CommissionAmount: item.CommissionAmount,
				OvertimeAmount:   item.OvertimeAmount,
				GrossPay:         item.GrossPay,
				Deductions:       item.Deductions,
				NetPay:           item.NetPay,
				Paid:             item.Paid,
			}
		}
	}
	return resp
}
