package dto

import (
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCommissionRequest defines the inputs a sale or appointment completion
// supplies to create a commission. Exactly one of saleItemID/appointmentID
// identifies the triggering event.
type CreateCommissionRequest struct {
	SalonEmployeeID string          `json:"salonEmployeeID" binding:"required"`
	SaleItemID      *string         `json:"saleItemID"`
	AppointmentID   *string         `json:"appointmentID"`
	SaleAmount      decimal.Decimal `json:"saleAmount" binding:"required"`
}

// MarkCommissionPaidRequest defines settlement inputs for one commission.
type MarkCommissionPaidRequest struct {
	PaymentMethod    string `json:"paymentMethod" binding:"required,oneof=cash bank_transfer mobile_money payroll"`
	PaymentReference string `json:"paymentReference"`
}

// MarkMultiplePaidRequest defines batch settlement inputs.
type MarkMultiplePaidRequest struct {
	CommissionIDs    []string `json:"commissionIDs" binding:"required,min=1"`
	PaymentMethod    string   `json:"paymentMethod" binding:"required,oneof=cash bank_transfer mobile_money payroll"`
	PaymentReference string   `json:"paymentReference"`
}

// CommissionResponse defines the data returned for a commission.
type CommissionResponse struct {
	CommissionID    string          `json:"commissionID"`
	SalonEmployeeID string          `json:"salonEmployeeID"`
	SaleItemID      *string         `json:"saleItemID,omitempty"`
	AppointmentID   *string         `json:"appointmentID,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	CommissionRate  decimal.Decimal `json:"commissionRate"`
	SaleAmount      decimal.Decimal `json:"saleAmount"`
	Paid            bool            `json:"paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	PaymentMethod   *string         `json:"paymentMethod,omitempty"`
	PaymentRef      *string         `json:"paymentReference,omitempty"`
	VerifiedBy      *string         `json:"verifiedBy,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToCommissionResponse converts a domain.Commission to its response DTO.
func ToCommissionResponse(c *domain.Commission) CommissionResponse {
	resp := CommissionResponse{
		CommissionID:    c.CommissionID,
		SalonEmployeeID: c.SalonEmployeeID,
		SaleItemID:      c.SaleItemID,
		AppointmentID:   c.AppointmentID,
		Amount:          c.Amount,
		CommissionRate:  c.CommissionRate,
		SaleAmount:      c.SaleAmount,
		Paid:            c.Paid,
		PaidAt:          c.PaidAt,
		PaymentRef:      c.PaymentRef,
		VerifiedBy:      c.VerifiedBy,
		CreatedAt:       c.CreatedAt,
	}
	if c.PaymentMethod != nil {
		method := string(*c.PaymentMethod)
		resp.PaymentMethod = &method
	}
	return resp
}

// ToCommissionResponses converts a slice of commissions to response DTOs.
func ToCommissionResponses(commissions []domain.Commission) []CommissionResponse {
	res := make([]CommissionResponse, len(commissions))
	for i := range commissions {
		res[i] = ToCommissionResponse(&commissions[i])
	}
	return res
}
