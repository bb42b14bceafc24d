package pgsql

import (
	"context"
	"errors"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/atlaspos/pos-backend/internal/core/domain"
	portsrepo "github.com/atlaspos/pos-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepository {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepository = (*PgxSaleRepository)(nil)

var saleSelectQuery = `
SELECT
	s.sale_id, s.tenant_id, s.branch_id, s.receipt_no, s.subtotal, s.tax_total,
	s.total, s.payment_method, s.cash_amount, s.card_amount, s.customer_id,
	s.created_at, s.last_updated_at
FROM sales s
`

var saleItemSelectQuery = `
SELECT
	i.line_id, i.sale_id, i.product_id, i.name, i.quantity, i.unit_price,
	i.line_total, i.tax_rate
FROM sale_items i
`

func (r *PgxSaleRepository) getSales(ctx context.Context, filterQuery string, args ...any) ([]domain.Sale, error) {
	rows, err := r.Pool.Query(ctx, saleSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sales", err)
	}
	defer rows.Close()
	sales, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Sale])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Sale{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect sale rows", err)
	}
	return sales, nil
}

func (r *PgxSaleRepository) getSaleItems(ctx context.Context, tenantID, saleID string) ([]domain.SaleItem, error) {
	rows, err := r.Pool.Query(ctx, saleItemSelectQuery+`WHERE i.tenant_id = $1 AND i.sale_id = $2 ORDER BY i.line_id`, tenantID, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sale items", err)
	}
	defer rows.Close()
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.SaleItem])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.SaleItem{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect sale item rows", err)
	}
	return items, nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, tenantID, saleID string) (*domain.Sale, error) {
	sales, err := r.getSales(ctx, `WHERE s.tenant_id = $1 AND s.sale_id = $2`, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, apperrors.ErrNotFound
	}
	sale := sales[0]
	items, err := r.getSaleItems(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

// SaveSale inserts the sale header and all line items in one transaction so a
// half-written sale can never be observed.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO sales (
				sale_id, tenant_id, branch_id, receipt_no, subtotal, tax_total,
				total, payment_method, cash_amount, card_amount, customer_id,
				created_at, last_updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
			sale.SaleID, sale.TenantID, sale.BranchID, sale.ReceiptNo,
			sale.Subtotal, sale.TaxTotal, sale.Total, sale.PaymentMethod,
			sale.CashAmount, sale.CardAmount, sale.CustomerID,
			sale.CreatedAt, sale.LastUpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return apperrors.NewConflictError("sale ID " + sale.SaleID + " already exists")
			}
			return apperrors.NewAppError(500, "failed to save sale "+sale.SaleID, err)
		}
		return r.insertItems(ctx, tx, sale)
	})
}

// UpdateSale rewrites the sale header and replaces its line items.
func (r *PgxSaleRepository) UpdateSale(ctx context.Context, sale domain.Sale) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE sales SET
				receipt_no = $2, subtotal = $3, tax_total = $4, total = $5,
				payment_method = $6, cash_amount = $7, card_amount = $8,
				customer_id = $9, branch_id = $10, last_updated_at = $11
			WHERE sale_id = $1 AND tenant_id = $12;`,
			sale.SaleID, sale.ReceiptNo, sale.Subtotal, sale.TaxTotal, sale.Total,
			sale.PaymentMethod, sale.CashAmount, sale.CardAmount, sale.CustomerID,
			sale.BranchID, sale.LastUpdatedAt, sale.TenantID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update sale "+sale.SaleID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE tenant_id = $1 AND sale_id = $2`, sale.TenantID, sale.SaleID); err != nil {
			return apperrors.NewAppError(500, "failed to replace sale items for "+sale.SaleID, err)
		}
		return r.insertItems(ctx, tx, sale)
	})
}

func (r *PgxSaleRepository) insertItems(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	for _, item := range sale.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO sale_items (
				line_id, tenant_id, sale_id, product_id, name, quantity,
				unit_price, line_total, tax_rate
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			item.LineID, sale.TenantID, sale.SaleID, item.ProductID, item.Name,
			item.Quantity, item.UnitPrice, item.LineTotal, item.TaxRate,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to save sale item for "+sale.SaleID, err)
		}
	}
	return nil
}

func (r *PgxSaleRepository) ListSalesByTenant(ctx context.Context, tenantID string) ([]domain.Sale, error) {
	sales, err := r.getSales(ctx, `WHERE s.tenant_id = $1 ORDER BY s.created_at`, tenantID)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		items, err := r.getSaleItems(ctx, tenantID, sales[i].SaleID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}
