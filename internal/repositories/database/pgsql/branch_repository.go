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

type PgxBranchRepository struct {
	BaseRepository
}

func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepository {
	return &PgxBranchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BranchRepository = (*PgxBranchRepository)(nil)

var branchSelectQuery = `
SELECT
	b.branch_id, b.tenant_id, b.name, b.code, b.address, b.phone, b.is_active,
	b.created_at, b.last_updated_at
FROM branches b
`

func (r *PgxBranchRepository) getBranches(ctx context.Context, filterQuery string, args ...any) ([]domain.Branch, error) {
	rows, err := r.Pool.Query(ctx, branchSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query branches", err)
	}
	defer rows.Close()
	branches, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Branch])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Branch{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect branch rows", err)
	}
	return branches, nil
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, tenantID, branchID string) (*domain.Branch, error) {
	branches, err := r.getBranches(ctx, `WHERE b.tenant_id = $1 AND b.branch_id = $2`, tenantID, branchID)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &branches[0], nil
}

func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (
			branch_id, tenant_id, name, code, address, phone, is_active,
			created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		branch.BranchID, branch.TenantID, branch.Name, branch.Code,
		branch.Address, branch.Phone, branch.IsActive,
		branch.CreatedAt, branch.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("branch ID " + branch.BranchID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save branch "+branch.BranchID, err)
	}
	return nil
}

func (r *PgxBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		UPDATE branches SET
			name = $2, code = $3, address = $4, phone = $5, is_active = $6,
			last_updated_at = $7
		WHERE branch_id = $1 AND tenant_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		branch.BranchID, branch.Name, branch.Code, branch.Address,
		branch.Phone, branch.IsActive, branch.LastUpdatedAt, branch.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update branch "+branch.BranchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBranchRepository) ListBranchesByTenant(ctx context.Context, tenantID string) ([]domain.Branch, error) {
	return r.getBranches(ctx, `WHERE b.tenant_id = $1 ORDER BY b.name`, tenantID)
}
