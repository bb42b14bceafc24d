package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/atlaspos/pos-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// conflictPolicy decides what happens when an incoming item's id already
// exists in the backend store.
type conflictPolicy int

const (
	// policyUpsert updates the stored record in place.
	policyUpsert conflictPolicy = iota
	// policyCreateOnly leaves the stored record untouched and counts the
	// item as skipped. Used for idempotent sale ingestion.
	policyCreateOnly
)

// reconcileOps describes one entity type to the generic reconciliation loop:
// how to identify, validate and resolve an incoming item, and how to read and
// write it against the backend store. I is the client input shape, E the
// stored domain record.
type reconcileOps[I any, E any] struct {
	entity string
	policy conflictPolicy

	itemID   func(I) string
	validate func(I) error
	// resolve fixes up foreign keys before a create (e.g. fallback-category
	// materialization for products). Optional. It may mutate the item in
	// place. It runs only on the create path: an update that omits a foreign
	// key keeps the stored one.
	resolve func(ctx context.Context, in *I) error
	find    func(ctx context.Context, id string) (*E, error)
	insert  func(ctx context.Context, in I) error
	update  func(ctx context.Context, existing *E, in I) error
}

// reconcileBatch merges items into the backend store one at a time, in input
// order. Every item is independent: a validation failure, unresolvable foreign
// key or storage error on one item is counted and the loop moves on. Writes
// are immediate, so re-submitting the same batch after a crash is safe.
func reconcileBatch[I any, E any](ctx context.Context, s *BaseService, ops reconcileOps[I, E], items []I) dto.SyncResult {
	var res dto.SyncResult
	for _, in := range items {
		id := ops.itemID(in)
		if id == "" {
			s.LogWarn(ctx, "Sync item missing id", slog.String("entity", ops.entity))
			res.Errors++
			continue
		}
		if err := ops.validate(in); err != nil {
			s.LogWarn(ctx, "Sync item failed validation",
				slog.String("entity", ops.entity), slog.String("item_id", id),
				slog.String("reason", err.Error()))
			res.Errors++
			continue
		}
		existing, err := ops.find(ctx, id)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Sync item lookup failed",
				slog.String("entity", ops.entity), slog.String("item_id", id))
			res.Errors++
			continue
		}

		if existing != nil {
			if ops.policy == policyCreateOnly {
				res.Skipped++
				continue
			}
			if err := ops.update(ctx, existing, in); err != nil {
				s.LogError(ctx, err, "Sync item update failed",
					slog.String("entity", ops.entity), slog.String("item_id", id))
				res.Errors++
				continue
			}
			res.Updated++
			continue
		}

		if ops.resolve != nil {
			if err := ops.resolve(ctx, &in); err != nil {
				s.LogError(ctx, err, "Sync item foreign key resolution failed",
					slog.String("entity", ops.entity), slog.String("item_id", id))
				res.Errors++
				continue
			}
		}

		if err := ops.insert(ctx, in); err != nil {
			s.LogError(ctx, err, "Sync item insert failed",
				slog.String("entity", ops.entity), slog.String("item_id", id))
			res.Errors++
			continue
		}
		res.Created++
	}
	return res
}

// Default helpers for the creation path: the default applies only when the
// client omitted the field entirely.

func strOr(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func int64Or(p *int64, def int64) int64 {
	if p != nil {
		return *p
	}
	return def
}

func decOr(p *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if p != nil {
		return *p
	}
	return def
}

// Assignment helpers for the update path: only fields the client actually
// sent overwrite the stored value.

func setStr(dst *string, p *string) {
	if p != nil {
		*dst = *p
	}
}

func setBool(dst *bool, p *bool) {
	if p != nil {
		*dst = *p
	}
}

func setInt(dst *int, p *int) {
	if p != nil {
		*dst = *p
	}
}

func setInt64(dst *int64, p *int64) {
	if p != nil {
		*dst = *p
	}
}

func setDec(dst *decimal.Decimal, p *decimal.Decimal) {
	if p != nil {
		*dst = *p
	}
}
