package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a sale.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "COMPLETED"
	SaleVoided    SaleStatus = "VOIDED"
)

// Sale is a completed point-of-sale event. Sales are recorded by an external
// POS flow; the ledger consumes their totals for revenue aggregation and their
// staffed line items for commission creation.
type Sale struct {
	SaleID        string          `json:"saleID"`
	SalonID       string          `json:"salonID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	SaleDate      time.Time       `json:"saleDate"`
	Status        SaleStatus      `json:"status"`
	Items         []SaleItem      `json:"items,omitempty"`
	AuditFields
}

// SaleItem is one line of a sale, optionally attributed to an employee for
// commission purposes.
type SaleItem struct {
	SaleItemID      string          `json:"saleItemID"`
	SaleID          string          `json:"saleID"`
	SalonEmployeeID *string         `json:"salonEmployeeID,omitempty"`
	Description     string          `json:"description"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

// ManualExpense is an operator-entered expense record, one of the five sources
// the financial aggregator unions into the expense summary.
type ManualExpense struct {
	ExpenseID     string          `json:"expenseID"`
	SalonID       string          `json:"salonID"`
	CategoryID    *string         `json:"categoryID,omitempty"`
	CategoryName  string          `json:"categoryName,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	AuditFields
}
