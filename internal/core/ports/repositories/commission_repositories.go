package repositories

import (
	"context"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
)

// CommissionReader defines read operations for commission data
type CommissionReader interface {
	// FindCommissionByID retrieves a commission by its unique identifier.
	FindCommissionByID(ctx context.Context, commissionID string) (*domain.Commission, error)

	// FindCommissionsByIDs retrieves multiple commissions by their IDs.
	FindCommissionsByIDs(ctx context.Context, commissionIDs []string) ([]domain.Commission, error)

	// FindCommissionBySaleItem retrieves the commission created for a sale item
	// and employee pair, the primary deduplication key.
	FindCommissionBySaleItem(ctx context.Context, saleItemID string, salonEmployeeID string) (*domain.Commission, error)

	// FindCommissionByAppointment retrieves the commission created for an
	// appointment and employee pair, the fallback deduplication key.
	FindCommissionByAppointment(ctx context.Context, appointmentID string, salonEmployeeID string) (*domain.Commission, error)

	// FindUnpaidByEmployeeInPeriod retrieves an employee's unpaid commissions
	// created within [periodStart, periodEnd].
	FindUnpaidByEmployeeInPeriod(ctx context.Context, salonEmployeeID string, periodStart, periodEnd time.Time) ([]domain.Commission, error)

	// ListCommissionsByEmployee retrieves an employee's commissions, most
	// recent first.
	ListCommissionsByEmployee(ctx context.Context, salonEmployeeID string, limit int, offset int) ([]domain.Commission, error)
}

// CommissionWriter defines write operations for commission data
type CommissionWriter interface {
	// SaveCommission persists a new unpaid commission. Returns
	// apperrors.ErrDuplicate on a dedup-key collision.
	SaveCommission(ctx context.Context, commission domain.Commission) error

	// SettleCommissions applies a settlement atomically: locks the wallets
	// involved, debits the payer (when present), credits each payee, appends
	// the wallet transactions, and marks every commission paid. Returns
	// apperrors.ErrInsufficientFunds without mutating anything when the payer
	// balance cannot cover the total.
	SettleCommissions(ctx context.Context, settlement domain.CommissionSettlement) error

	// UpdateVerification stamps verification metadata on a paid commission.
	UpdateVerification(ctx context.Context, commissionID string, verifiedByID string, verifiedAt time.Time) error
}

// CommissionRepositoryFacade combines all commission-related repository interfaces
type CommissionRepositoryFacade interface {
	CommissionReader
	CommissionWriter
}
