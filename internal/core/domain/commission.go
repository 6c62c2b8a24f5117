package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a commission settlement was funded.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentMobileMoney  PaymentMethod = "mobile_money" // externally funded, no payer-wallet debit
	PaymentPayroll      PaymentMethod = "payroll"
)

// Commission is a payout owed to a salon employee for a sale line item or a
// completed appointment. Amount = SaleAmount * CommissionRate / 100.
//
// Exactly one of SaleItemID/AppointmentID identifies the triggering event; each
// pairs with SalonEmployeeID as the deduplication key, so retried creation
// returns the existing row. A commission transitions to paid once and never
// reverts.
type Commission struct {
	CommissionID    string           `json:"commissionID"`
	SalonEmployeeID string           `json:"salonEmployeeID"`
	SaleItemID      *string          `json:"saleItemID,omitempty"`
	AppointmentID   *string          `json:"appointmentID,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	CommissionRate  decimal.Decimal  `json:"commissionRate"` // percentage
	SaleAmount      decimal.Decimal  `json:"saleAmount"`
	Paid            bool             `json:"paid"`
	PaidAt          *time.Time       `json:"paidAt,omitempty"`
	PaymentMethod   *PaymentMethod   `json:"paymentMethod,omitempty"`
	PaymentRef      *string          `json:"paymentReference,omitempty"`
	PayrollItemID   *string          `json:"payrollItemID,omitempty"`
	VerifiedBy      *string          `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time       `json:"verifiedAt,omitempty"`
	AuditFields
}

// CommissionPaymentDetails carries settlement metadata supplied by the caller.
type CommissionPaymentDetails struct {
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentRef    string        `json:"paymentReference"`
	PayrollItemID *string       `json:"payrollItemID,omitempty"`
}
