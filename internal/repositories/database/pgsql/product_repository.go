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

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

var productSelectQuery = `
SELECT
	p.product_id, p.tenant_id, p.branch_id, p.category_id, p.sku, p.name,
	p.price, p.cost, p.stock_quantity, p.unit, p.tax_rate, p.min_stock_level,
	p.is_active, p.created_at, p.last_updated_at
FROM products p
`

func (r *PgxProductRepository) getProducts(ctx context.Context, filterQuery string, args ...any) ([]domain.Product, error) {
	rows, err := r.Pool.Query(ctx, productSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()
	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Product{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect product rows", err)
	}
	return products, nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, tenantID, productID string) (*domain.Product, error) {
	products, err := r.getProducts(ctx, `WHERE p.tenant_id = $1 AND p.product_id = $2`, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &products[0], nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (
			product_id, tenant_id, branch_id, category_id, sku, name,
			price, cost, stock_quantity, unit, tax_rate, min_stock_level,
			is_active, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID, product.TenantID, product.BranchID, product.CategoryID,
		product.SKU, product.Name, product.Price, product.Cost,
		product.StockQuantity, product.Unit, product.TaxRate, product.MinStockLevel,
		product.IsActive, product.CreatedAt, product.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("product ID " + product.ProductID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("category does not exist for product " + product.ProductID)
			}
		}
		return apperrors.NewAppError(500, "failed to save product "+product.ProductID, err)
	}
	return nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products SET
			category_id = $2, sku = $3, name = $4, price = $5, cost = $6,
			stock_quantity = $7, unit = $8, tax_rate = $9, min_stock_level = $10,
			is_active = $11, branch_id = $12, last_updated_at = $13
		WHERE product_id = $1 AND tenant_id = $14;
	`
	tag, err := r.Pool.Exec(ctx, query,
		product.ProductID, product.CategoryID, product.SKU, product.Name,
		product.Price, product.Cost, product.StockQuantity, product.Unit,
		product.TaxRate, product.MinStockLevel, product.IsActive,
		product.BranchID, product.LastUpdatedAt, product.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update product "+product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProductRepository) ListProductsByTenant(ctx context.Context, tenantID string) ([]domain.Product, error) {
	return r.getProducts(ctx, `WHERE p.tenant_id = $1 ORDER BY p.name`, tenantID)
}
