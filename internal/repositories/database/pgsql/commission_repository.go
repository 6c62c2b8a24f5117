package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	"github.com/glowslot/salon_ledger/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCommissionRepository struct {
	BaseRepository
	walletRepo portsrepo.WalletRepositoryFacade
}

// newPgxCommissionRepository creates a new repository for commission data. The
// wallet repository is injected so settlement can mutate balances inside the
// same database transaction that flips commissions to paid.
func newPgxCommissionRepository(pool *pgxpool.Pool, walletRepo portsrepo.WalletRepositoryFacade) portsrepo.CommissionRepositoryFacade {
	return &PgxCommissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		walletRepo:     walletRepo,
	}
}

var _ portsrepo.CommissionRepositoryFacade = (*PgxCommissionRepository)(nil)

const commissionColumns = `
	commission_id, salon_employee_id, sale_item_id, appointment_id,
	amount, commission_rate, sale_amount, paid, paid_at,
	payment_method, payment_ref, payroll_item_id, verified_by, verified_at,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanCommission(row pgx.Row) (*domain.Commission, error) {
	var c domain.Commission
	err := row.Scan(
		&c.CommissionID,
		&c.SalonEmployeeID,
		&c.SaleItemID,
		&c.AppointmentID,
		&c.Amount,
		&c.CommissionRate,
		&c.SaleAmount,
		&c.Paid,
		&c.PaidAt,
		&c.PaymentMethod,
		&c.PaymentRef,
		&c.PayrollItemID,
		&c.VerifiedBy,
		&c.VerifiedAt,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan commission", err)
	}
	return &c, nil
}

// SaveCommission inserts a new unpaid commission. The partial unique indexes
// on (sale_item_id, salon_employee_id) and (appointment_id, salon_employee_id)
// map to ErrDuplicate so concurrent event redelivery dedupes at the database.
func (r *PgxCommissionRepository) SaveCommission(ctx context.Context, commission domain.Commission) error {
	query := `
		INSERT INTO commissions (` + commissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		commission.CommissionID,
		commission.SalonEmployeeID,
		commission.SaleItemID,
		commission.AppointmentID,
		commission.Amount,
		commission.CommissionRate,
		commission.SaleAmount,
		commission.Paid,
		commission.PaidAt,
		commission.PaymentMethod,
		commission.PaymentRef,
		commission.PayrollItemID,
		commission.VerifiedBy,
		commission.VerifiedAt,
		commission.CreatedAt,
		commission.CreatedBy,
		commission.LastUpdatedAt,
		commission.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert commission "+commission.CommissionID, err)
	}
	return nil
}

// FindCommissionByID retrieves a commission by its unique identifier.
func (r *PgxCommissionRepository) FindCommissionByID(ctx context.Context, commissionID string) (*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE commission_id = $1;`
	return scanCommission(r.Pool.QueryRow(ctx, query, commissionID))
}

// FindCommissionsByIDs retrieves multiple commissions.
func (r *PgxCommissionRepository) FindCommissionsByIDs(ctx context.Context, commissionIDs []string) ([]domain.Commission, error) {
	if len(commissionIDs) == 0 {
		return []domain.Commission{}, nil
	}
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE commission_id = ANY($1) ORDER BY created_at;`
	return r.queryCommissions(ctx, query, commissionIDs)
}

// FindCommissionBySaleItem retrieves the commission for a sale item and
// employee pair.
func (r *PgxCommissionRepository) FindCommissionBySaleItem(ctx context.Context, saleItemID string, salonEmployeeID string) (*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE sale_item_id = $1 AND salon_employee_id = $2;`
	return scanCommission(r.Pool.QueryRow(ctx, query, saleItemID, salonEmployeeID))
}

// FindCommissionByAppointment retrieves the commission for an appointment and
// employee pair.
func (r *PgxCommissionRepository) FindCommissionByAppointment(ctx context.Context, appointmentID string, salonEmployeeID string) (*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE appointment_id = $1 AND salon_employee_id = $2;`
	return scanCommission(r.Pool.QueryRow(ctx, query, appointmentID, salonEmployeeID))
}

// FindUnpaidByEmployeeInPeriod retrieves unpaid commissions created within the
// period, oldest first so payroll folds them deterministically.
func (r *PgxCommissionRepository) FindUnpaidByEmployeeInPeriod(ctx context.Context, salonEmployeeID string, periodStart, periodEnd time.Time) ([]domain.Commission, error) {
	query := `
		SELECT ` + commissionColumns + `
		FROM commissions
		WHERE salon_employee_id = $1 AND paid = FALSE AND created_at BETWEEN $2 AND $3
		ORDER BY created_at;
	`
	return r.queryCommissions(ctx, query, salonEmployeeID, periodStart, periodEnd)
}

// ListCommissionsByEmployee retrieves an employee's commissions, newest first.
func (r *PgxCommissionRepository) ListCommissionsByEmployee(ctx context.Context, salonEmployeeID string, limit int, offset int) ([]domain.Commission, error) {
	query := `
		SELECT ` + commissionColumns + `
		FROM commissions
		WHERE salon_employee_id = $1
		ORDER BY created_at DESC, commission_id
		LIMIT $2 OFFSET $3;
	`
	return r.queryCommissions(ctx, query, salonEmployeeID, limit, offset)
}

func (r *PgxCommissionRepository) queryCommissions(ctx context.Context, query string, args ...any) ([]domain.Commission, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query commissions", err)
	}
	defer rows.Close()

	commissions := []domain.Commission{}
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate commissions", err)
	}
	return commissions, nil
}

// SettleCommissions applies one settlement atomically. Inside a single
// database transaction it re-reads the commissions under row locks (dropping
// any that a concurrent settlement already paid), locks the wallets, verifies
// the payer can cover the unpaid total, applies balance movements with audit
// transactions, and stamps the commissions paid. Any failure, including
// insufficient funds, rolls the whole settlement back.
func (r *PgxCommissionRepository) SettleCommissions(ctx context.Context, settlement domain.CommissionSettlement) error {
	if len(settlement.Items) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	commissionIDs := make([]string, len(settlement.Items))
	payeeByCommission := make(map[string]string, len(settlement.Items))
	for i, item := range settlement.Items {
		commissionIDs[i] = item.Commission.CommissionID
		payeeByCommission[item.Commission.CommissionID] = item.PayeeWalletID
	}

	// Lock the commission rows so a concurrent settlement of the same
	// commission serializes here and then sees paid = TRUE.
	lockQuery := `
		SELECT commission_id, amount, paid
		FROM commissions
		WHERE commission_id = ANY($1)
		ORDER BY commission_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, commissionIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock commissions", err)
	}

	type lockedCommission struct {
		id     string
		amount decimal.Decimal
	}
	var toSettle []lockedCommission
	locked := 0
	for rows.Next() {
		var id string
		var amount decimal.Decimal
		var paid bool
		if err := rows.Scan(&id, &amount, &paid); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked commission", err)
		}
		locked++
		if !paid {
			toSettle = append(toSettle, lockedCommission{id: id, amount: amount})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed to iterate locked commissions", err)
	}
	if locked != len(commissionIDs) {
		return apperrors.ErrNotFound
	}
	if len(toSettle) == 0 {
		// Everything already paid; nothing to move.
		return r.Commit(ctx, tx)
	}

	walletIDSet := make(map[string]struct{})
	total := decimal.Zero
	for _, c := range toSettle {
		walletIDSet[payeeByCommission[c.id]] = struct{}{}
		total = total.Add(c.amount)
	}
	if settlement.PayerWalletID != nil {
		walletIDSet[*settlement.PayerWalletID] = struct{}{}
	}
	walletIDs := make([]string, 0, len(walletIDSet))
	for id := range walletIDSet {
		walletIDs = append(walletIDs, id)
	}

	wallets, err := r.walletRepo.FindWalletsForUpdate(ctx, tx, walletIDs)
	if err != nil {
		return err
	}

	// Running balances handle several commissions paying into one wallet.
	balances := make(map[string]decimal.Decimal, len(wallets))
	for id, wallet := range wallets {
		balances[id] = wallet.Balance
	}

	movements := make([]accounting.WalletMovement, 0, len(toSettle)+1)

	if settlement.PayerWalletID != nil && total.IsPositive() {
		payerID := *settlement.PayerWalletID
		if balances[payerID].LessThan(total) {
			return apperrors.ErrInsufficientFunds
		}
		newBalance := balances[payerID].Sub(total)
		movements = append(movements, accounting.WalletMovement{
			WalletID:   payerID,
			NewBalance: newBalance,
			Transaction: domain.WalletTransaction{
				WalletID:        payerID,
				TransactionType: domain.WalletTxnDebit,
				Amount:          total,
				BalanceBefore:   balances[payerID],
				BalanceAfter:    newBalance,
				Status:          domain.WalletTxnCompleted,
				ReferenceType:   domain.RefCommission,
				ReferenceID:     toSettle[0].id,
				Description:     "Commission settlement",
			},
		})
		balances[payerID] = newBalance
	}

	for _, c := range toSettle {
		payeeID := payeeByCommission[c.id]
		if c.amount.IsZero() {
			continue
		}
		newBalance := balances[payeeID].Add(c.amount)
		movements = append(movements, accounting.WalletMovement{
			WalletID:   payeeID,
			NewBalance: newBalance,
			Transaction: domain.WalletTransaction{
				WalletID:        payeeID,
				TransactionType: domain.WalletTxnCredit,
				Amount:          c.amount,
				BalanceBefore:   balances[payeeID],
				BalanceAfter:    newBalance,
				Status:          domain.WalletTxnCompleted,
				ReferenceType:   domain.RefCommission,
				ReferenceID:     c.id,
				Description:     "Commission payout",
			},
		})
		balances[payeeID] = newBalance
	}

	if err := r.walletRepo.ApplyMovementsInTx(ctx, tx, movements); err != nil {
		return err
	}

	updateQuery := `
		UPDATE commissions
		SET paid = TRUE,
		    paid_at = $2,
		    payment_method = $3,
		    payment_ref = $4,
		    payroll_item_id = $5,
		    last_updated_at = $2,
		    last_updated_by = $6
		WHERE commission_id = $1;
	`
	batch := &pgx.Batch{}
	for _, c := range toSettle {
		batch.Queue(updateQuery,
			c.id,
			settlement.SettledAt,
			settlement.Details.PaymentMethod,
			settlement.Details.PaymentRef,
			settlement.Details.PayrollItemID,
			settlement.SettledByID,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to mark commissions paid", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateVerification stamps verification metadata on a paid commission.
func (r *PgxCommissionRepository) UpdateVerification(ctx context.Context, commissionID string, verifiedByID string, verifiedAt time.Time) error {
	query := `
		UPDATE commissions
		SET verified_by = $2, verified_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE commission_id = $1 AND paid = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, commissionID, verifiedByID, verifiedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to verify commission "+commissionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
