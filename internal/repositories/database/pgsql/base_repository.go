package pgsql

import (
	"context"
	"errors"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository carries the shared connection pool and the transaction helper
// the entity repositories build on.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// rollbackSettled reports whether a rollback error just means the transaction
// already finished. pgx surfaces a rollback after commit as ErrTxClosed.
func rollbackSettled(err error) bool {
	return err == nil || errors.Is(err, pgx.ErrTxClosed)
}

// withTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise.
func (r *BaseRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, beginErr := r.Pool.Begin(ctx)
	if beginErr != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", beginErr)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); !rollbackSettled(rbErr) && err == nil {
			err = apperrors.NewAppError(500, "failed to roll back transaction", rbErr)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if commitErr := tx.Commit(ctx); commitErr != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", commitErr)
	}
	return nil
}
