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

// PgxTableRepository persists both tables and table sections; the two always
// travel together on the floor-plan sync path.
type PgxTableRepository struct {
	BaseRepository
}

func newPgxTableRepository(pool *pgxpool.Pool) portsrepo.TableRepository {
	return &PgxTableRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TableRepository = (*PgxTableRepository)(nil)

func (r *PgxTableRepository) FindTableByID(ctx context.Context, tenantID, tableID string) (*domain.Table, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT t.table_id, t.tenant_id, t.branch_id, t.section_id, t.name,
			t.capacity, t.status, t.pos_x, t.pos_y, t.created_at, t.last_updated_at
		FROM tables t WHERE t.tenant_id = $1 AND t.table_id = $2`, tenantID, tableID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tables", err)
	}
	defer rows.Close()
	tables, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Table])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect table rows", err)
	}
	if len(tables) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &tables[0], nil
}

func (r *PgxTableRepository) SaveTable(ctx context.Context, table domain.Table) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO tables (
			table_id, tenant_id, branch_id, section_id, name, capacity,
			status, pos_x, pos_y, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		table.TableID, table.TenantID, table.BranchID, table.SectionID,
		table.Name, table.Capacity, table.Status, table.PosX, table.PosY,
		table.CreatedAt, table.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("table ID " + table.TableID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save table "+table.TableID, err)
	}
	return nil
}

func (r *PgxTableRepository) UpdateTable(ctx context.Context, table domain.Table) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE tables SET
			section_id = $2, name = $3, capacity = $4, status = $5,
			pos_x = $6, pos_y = $7, branch_id = $8, last_updated_at = $9
		WHERE table_id = $1 AND tenant_id = $10;`,
		table.TableID, table.SectionID, table.Name, table.Capacity,
		table.Status, table.PosX, table.PosY, table.BranchID, table.LastUpdatedAt,
		table.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update table "+table.TableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTableRepository) FindSectionByID(ctx context.Context, tenantID, sectionID string) (*domain.TableSection, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT s.section_id, s.tenant_id, s.branch_id, s.name, s.color,
			s.sort_order, s.created_at, s.last_updated_at
		FROM table_sections s WHERE s.tenant_id = $1 AND s.section_id = $2`, tenantID, sectionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query table sections", err)
	}
	defer rows.Close()
	sections, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TableSection])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect table section rows", err)
	}
	if len(sections) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &sections[0], nil
}

func (r *PgxTableRepository) SaveSection(ctx context.Context, section domain.TableSection) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO table_sections (
			section_id, tenant_id, branch_id, name, color, sort_order,
			created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		section.SectionID, section.TenantID, section.BranchID, section.Name,
		section.Color, section.SortOrder, section.CreatedAt, section.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("table section ID " + section.SectionID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save table section "+section.SectionID, err)
	}
	return nil
}

func (r *PgxTableRepository) UpdateSection(ctx context.Context, section domain.TableSection) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE table_sections SET
			name = $2, color = $3, sort_order = $4, branch_id = $5,
			last_updated_at = $6
		WHERE section_id = $1 AND tenant_id = $7;`,
		section.SectionID, section.Name, section.Color, section.SortOrder,
		section.BranchID, section.LastUpdatedAt, section.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update table section "+section.SectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
