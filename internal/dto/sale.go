package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest is one line of a recorded sale. Lines attributed to an
// employee trigger commission creation.
type SaleItemRequest struct {
	SalonEmployeeID *string         `json:"salonEmployeeID"`
	Description     string          `json:"description"`
	LineTotal       decimal.Decimal `json:"lineTotal" binding:"required"`
}

// RecordSaleRequest defines a completed-sale event from the POS flow.
type RecordSaleRequest struct {
	TotalAmount   decimal.Decimal   `json:"totalAmount" binding:"required"`
	PaymentMethod string            `json:"paymentMethod" binding:"required,oneof=cash bank_transfer mobile_money"`
	SaleDate      time.Time         `json:"saleDate" binding:"required"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RecordSaleResponse returns the recorded sale with the commissions created.
type RecordSaleResponse struct {
	SaleID       string               `json:"saleID"`
	JournalEntry JournalEntryResponse `json:"journalEntry"`
	Commissions  []CommissionResponse `json:"commissions"`
	SkippedLines int                  `json:"skippedLines"` // lines with no attributed employee
}

// CompleteAppointmentRequest defines an appointment-completion event.
type CompleteAppointmentRequest struct {
	SalonEmployeeID string          `json:"salonEmployeeID" binding:"required"`
	ServiceAmount   decimal.Decimal `json:"serviceAmount" binding:"required"`
	AppointmentID   string          `json:"appointmentID" binding:"required"`
}

// CreateExpenseRequest defines a manual expense entry.
type CreateExpenseRequest struct {
	CategoryID    *string         `json:"categoryID"`
	CategoryName  string          `json:"categoryName"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=cash bank_transfer mobile_money"`
	ExpenseDate   time.Time       `json:"expenseDate" binding:"required"`
}
