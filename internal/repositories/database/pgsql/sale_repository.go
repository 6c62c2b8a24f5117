package pgsql

import (
	"context"
	"errors"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sale data.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

// SaveSale persists a sale and its items in one transaction.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	saleQuery := `
		INSERT INTO sales (
			sale_id, salon_id, total_amount, payment_method, sale_date, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, saleQuery,
		sale.SaleID,
		sale.SalonID,
		sale.TotalAmount,
		sale.PaymentMethod,
		sale.SaleDate,
		sale.Status,
		sale.CreatedAt,
		sale.CreatedBy,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert sale "+sale.SaleID, err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_item_id, sale_id, salon_employee_id, description, line_total)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, item := range sale.Items {
		batch.Queue(itemQuery,
			item.SaleItemID,
			item.SaleID,
			item.SalonEmployeeID,
			item.Description,
			item.LineTotal,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert sale items for sale "+sale.SaleID, err)
	}

	return r.Commit(ctx, tx)
}

// FindSaleByID retrieves a sale with its items.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `
		SELECT sale_id, salon_id, total_amount, payment_method, sale_date, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales
		WHERE sale_id = $1;
	`
	var sale domain.Sale
	err := r.Pool.QueryRow(ctx, query, saleID).Scan(
		&sale.SaleID,
		&sale.SalonID,
		&sale.TotalAmount,
		&sale.PaymentMethod,
		&sale.SaleDate,
		&sale.Status,
		&sale.CreatedAt,
		&sale.CreatedBy,
		&sale.LastUpdatedAt,
		&sale.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query sale "+saleID, err)
	}

	itemQuery := `
		SELECT sale_item_id, sale_id, salon_employee_id, description, line_total
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY sale_item_id;
	`
	rows, err := r.Pool.Query(ctx, itemQuery, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sale items for sale "+saleID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(
			&item.SaleItemID,
			&item.SaleID,
			&item.SalonEmployeeID,
			&item.Description,
			&item.LineTotal,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale item", err)
		}
		sale.Items = append(sale.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate sale items", err)
	}
	return &sale, nil
}
