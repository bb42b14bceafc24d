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

type PgxMenuItemRepository struct {
	BaseRepository
}

func newPgxMenuItemRepository(pool *pgxpool.Pool) portsrepo.MenuItemRepository {
	return &PgxMenuItemRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MenuItemRepository = (*PgxMenuItemRepository)(nil)

var menuItemSelectQuery = `
SELECT
	m.item_id, m.tenant_id, m.branch_id, m.category_id, m.name, m.price,
	m.tax_rate, m.is_available, m.image_url, m.created_at, m.last_updated_at
FROM menu_items m
`

func (r *PgxMenuItemRepository) getMenuItems(ctx context.Context, filterQuery string, args ...any) ([]domain.MenuItem, error) {
	rows, err := r.Pool.Query(ctx, menuItemSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query menu items", err)
	}
	defer rows.Close()
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.MenuItem])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.MenuItem{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect menu item rows", err)
	}
	return items, nil
}

func (r *PgxMenuItemRepository) FindMenuItemByID(ctx context.Context, tenantID, itemID string) (*domain.MenuItem, error) {
	items, err := r.getMenuItems(ctx, `WHERE m.tenant_id = $1 AND m.item_id = $2`, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &items[0], nil
}

func (r *PgxMenuItemRepository) SaveMenuItem(ctx context.Context, item domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (
			item_id, tenant_id, branch_id, category_id, name, price,
			tax_rate, is_available, image_url, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID, item.TenantID, item.BranchID, item.CategoryID,
		item.Name, item.Price, item.TaxRate, item.IsAvailable, item.ImageURL,
		item.CreatedAt, item.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return apperrors.NewConflictError("menu item ID " + item.ItemID + " already exists")
			}
			if pgErr.Code == "23503" {
				return apperrors.NewValidationFailedError("category does not exist for menu item " + item.ItemID)
			}
		}
		return apperrors.NewAppError(500, "failed to save menu item "+item.ItemID, err)
	}
	return nil
}

func (r *PgxMenuItemRepository) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	query := `
		UPDATE menu_items SET
			category_id = $2, name = $3, price = $4, tax_rate = $5,
			is_available = $6, image_url = $7, branch_id = $8, last_updated_at = $9
		WHERE item_id = $1 AND tenant_id = $10;
	`
	tag, err := r.Pool.Exec(ctx, query,
		item.ItemID, item.CategoryID, item.Name, item.Price, item.TaxRate,
		item.IsAvailable, item.ImageURL, item.BranchID, item.LastUpdatedAt,
		item.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update menu item "+item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMenuItemRepository) ListMenuItemsByTenant(ctx context.Context, tenantID string) ([]domain.MenuItem, error) {
	return r.getMenuItems(ctx, `WHERE m.tenant_id = $1 ORDER BY m.name`, tenantID)
}
