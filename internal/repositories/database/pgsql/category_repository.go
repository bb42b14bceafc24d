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

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

var categorySelectQuery = `
SELECT
	c.category_id, c.tenant_id, c.branch_id, c.name, c.description,
	c.show_in_pos, c.sort_order, c.created_at, c.last_updated_at
FROM categories c
`

func (r *PgxCategoryRepository) getCategories(ctx context.Context, filterQuery string, args ...any) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, categorySelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Category{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect category rows", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, tenantID, categoryID string) (*domain.Category, error) {
	categories, err := r.getCategories(ctx, `WHERE c.tenant_id = $1 AND c.category_id = $2`, tenantID, categoryID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &categories[0], nil
}

// FindCategoryByName looks up a category by exact name within a tenant+branch.
// The reconciliation engine uses this to reuse the fallback category instead
// of creating duplicates.
func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, tenantID, branchID, name string) (*domain.Category, error) {
	categories, err := r.getCategories(ctx,
		`WHERE c.tenant_id = $1 AND c.branch_id = $2 AND c.name = $3 LIMIT 1`,
		tenantID, branchID, name)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &categories[0], nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (
			category_id, tenant_id, branch_id, name, description,
			show_in_pos, sort_order, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.TenantID, category.BranchID,
		category.Name, category.Description, category.ShowInPOS,
		category.SortOrder, category.CreatedAt, category.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("category ID " + category.CategoryID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save category "+category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories SET
			name = $2, description = $3, show_in_pos = $4, sort_order = $5,
			branch_id = $6, last_updated_at = $7
		WHERE category_id = $1 AND tenant_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.Name, category.Description,
		category.ShowInPOS, category.SortOrder, category.BranchID,
		category.LastUpdatedAt, category.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category "+category.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) ListCategoriesByTenant(ctx context.Context, tenantID string) ([]domain.Category, error) {
	return r.getCategories(ctx, `WHERE c.tenant_id = $1 ORDER BY c.sort_order, c.name`, tenantID)
}
