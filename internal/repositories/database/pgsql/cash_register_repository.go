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

type PgxCashRegisterRepository struct {
	BaseRepository
}

func newPgxCashRegisterRepository(pool *pgxpool.Pool) portsrepo.CashRegisterRepository {
	return &PgxCashRegisterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashRegisterRepository = (*PgxCashRegisterRepository)(nil)

var registerSelectQuery = `
SELECT
	r.register_id, r.tenant_id, r.branch_id, r.business_date,
	r.opening_balance, r.closing_balance, r.cash_total, r.card_total,
	r.status, r.opened_by, r.opened_at, r.closed_by, r.closed_at,
	r.created_at, r.last_updated_at
FROM cash_registers r
`

func (r *PgxCashRegisterRepository) FindRegisterByID(ctx context.Context, tenantID, registerID string) (*domain.CashRegister, error) {
	rows, err := r.Pool.Query(ctx, registerSelectQuery+`WHERE r.tenant_id = $1 AND r.register_id = $2`, tenantID, registerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cash registers", err)
	}
	defer rows.Close()
	registers, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.CashRegister])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect cash register rows", err)
	}
	if len(registers) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &registers[0], nil
}

func (r *PgxCashRegisterRepository) SaveRegister(ctx context.Context, register domain.CashRegister) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO cash_registers (
			register_id, tenant_id, branch_id, business_date, opening_balance,
			closing_balance, cash_total, card_total, status, opened_by,
			opened_at, closed_by, closed_at, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
		register.RegisterID, register.TenantID, register.BranchID,
		register.BusinessDate, register.OpeningBalance, register.ClosingBalance,
		register.CashTotal, register.CardTotal, register.Status,
		register.OpenedBy, register.OpenedAt, register.ClosedBy, register.ClosedAt,
		register.CreatedAt, register.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("cash register ID " + register.RegisterID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save cash register "+register.RegisterID, err)
	}
	return nil
}

func (r *PgxCashRegisterRepository) UpdateRegister(ctx context.Context, register domain.CashRegister) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE cash_registers SET
			opening_balance = $2, closing_balance = $3, cash_total = $4,
			card_total = $5, status = $6, opened_by = $7, opened_at = $8,
			closed_by = $9, closed_at = $10, last_updated_at = $11
		WHERE register_id = $1 AND tenant_id = $12;`,
		register.RegisterID, register.OpeningBalance, register.ClosingBalance,
		register.CashTotal, register.CardTotal, register.Status,
		register.OpenedBy, register.OpenedAt, register.ClosedBy,
		register.ClosedAt, register.LastUpdatedAt, register.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cash register "+register.RegisterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
