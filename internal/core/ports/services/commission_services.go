package services

import (
	"context"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/glowslot/salon_ledger/internal/dto"
)

// CommissionSvcFacade defines the commission ledger surface.
type CommissionSvcFacade interface {
	// CreateCommission computes and records an unpaid commission for an
	// employee. Idempotent per (saleItemID, employee) and per (appointmentID,
	// employee): a retried creation returns the existing row unchanged.
	CreateCommission(ctx context.Context, req dto.CreateCommissionRequest, actorID string) (*domain.Commission, error)

	// MarkAsPaid settles one commission: wallet transfer under lock, paid
	// flag, payment metadata, and a best-effort journal posting. Idempotent:
	// an already-paid commission is returned as-is with no side effects.
	MarkAsPaid(ctx context.Context, commissionID string, details domain.CommissionPaymentDetails, actorID string) (*domain.Commission, error)

	// MarkMultipleAsPaid settles a batch in one transaction. All commissions
	// must share one payer (one salon owner) and the payer balance must cover
	// the unpaid total up front; otherwise nothing is mutated.
	MarkMultipleAsPaid(ctx context.Context, commissionIDs []string, details domain.CommissionPaymentDetails, actorID string) ([]domain.Commission, error)

	// VerifyPayment stamps verification metadata on a paid commission; fails
	// with a conflict if the commission is unpaid.
	VerifyPayment(ctx context.Context, commissionID string, verifiedByID string) (*domain.Commission, error)

	// GetCommission retrieves one commission.
	GetCommission(ctx context.Context, commissionID string) (*domain.Commission, error)

	// ListByEmployee retrieves an employee's commissions, most recent first.
	ListByEmployee(ctx context.Context, salonEmployeeID string, limit, offset int) ([]domain.Commission, error)
}
