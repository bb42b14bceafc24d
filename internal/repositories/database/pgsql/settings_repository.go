package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	portsrepo "github.com/atlaspos/pos-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSettingsRepository persists the opaque per-tenant settings document.
// The structure of the document belongs to the client; this layer only moves
// bytes.
type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) GetSettings(ctx context.Context, tenantID string) (json.RawMessage, error) {
	var settings []byte
	err := r.Pool.QueryRow(ctx,
		`SELECT settings FROM app_settings WHERE tenant_id = $1`, tenantID,
	).Scan(&settings)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read settings for tenant "+tenantID, err)
	}
	return json.RawMessage(settings), nil
}

func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, tenantID string, settings json.RawMessage) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO app_settings (tenant_id, settings, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (tenant_id) DO UPDATE SET settings = EXCLUDED.settings, updated_at = now()`,
		tenantID, []byte(settings),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save settings for tenant "+tenantID, err)
	}
	return nil
}
