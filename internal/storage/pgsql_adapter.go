package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgsqlAdapter stores documents as rows in the documents table with
// (tenant_id, key) composite identity. The adapter is bound to exactly one
// tenant; using it before a tenant id is known is a configuration error, not a
// silent no-op.
type PgsqlAdapter struct {
	pool     *pgxpool.Pool
	tenantID string
}

// NewPgsqlAdapter creates an adapter bound to tenantID.
func NewPgsqlAdapter(pool *pgxpool.Pool, tenantID string) *PgsqlAdapter {
	return &PgsqlAdapter{pool: pool, tenantID: tenantID}
}

var _ Adapter = (*PgsqlAdapter)(nil)

func (a *PgsqlAdapter) requireTenant() error {
	if a.tenantID == "" {
		return apperrors.NewAppError(500, "document store used with no tenant bound", apperrors.ErrConfiguration)
	}
	return nil
}

func (a *PgsqlAdapter) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if err := a.requireTenant(); err != nil {
		return nil, err
	}
	var value []byte
	err := a.pool.QueryRow(ctx,
		`SELECT value FROM documents WHERE tenant_id = $1 AND key = $2`,
		a.tenantID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read document "+key, err)
	}
	return json.RawMessage(value), nil
}

func (a *PgsqlAdapter) Set(ctx context.Context, key string, value json.RawMessage) error {
	if err := a.requireTenant(); err != nil {
		return err
	}
	_, err := a.pool.Exec(ctx, `
		INSERT INTO documents (tenant_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (tenant_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		a.tenantID, key, []byte(value),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to write document "+key, err)
	}
	return nil
}

func (a *PgsqlAdapter) Remove(ctx context.Context, key string) error {
	if err := a.requireTenant(); err != nil {
		return err
	}
	_, err := a.pool.Exec(ctx,
		`DELETE FROM documents WHERE tenant_id = $1 AND key = $2`, a.tenantID, key)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove document "+key, err)
	}
	return nil
}

func (a *PgsqlAdapter) Clear(ctx context.Context) error {
	if err := a.requireTenant(); err != nil {
		return err
	}
	_, err := a.pool.Exec(ctx, `DELETE FROM documents WHERE tenant_id = $1`, a.tenantID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to clear documents", err)
	}
	return nil
}

func (a *PgsqlAdapter) Keys(ctx context.Context) ([]string, error) {
	if err := a.requireTenant(); err != nil {
		return nil, err
	}
	rows, err := a.pool.Query(ctx,
		`SELECT key FROM documents WHERE tenant_id = $1 ORDER BY key`, a.tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list document keys", err)
	}
	defer rows.Close()
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect document keys", err)
	}
	return keys, nil
}
