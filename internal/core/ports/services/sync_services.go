package services

import (
	"context"
	"encoding/json"

	"github.com/atlaspos/pos-backend/internal/dto"
)

// SyncSvc is the reconciliation engine surface. Each method merges one batch of
// client-originated records for a tenant and reports per-batch counters. The
// returned error is reserved for request-level faults (e.g. storage completely
// unavailable); individual bad items are counted, never raised.
type SyncSvc interface {
	ReconcileBranches(ctx context.Context, tenantID string, items []dto.BranchInput) (dto.SyncResult, error)
	ReconcileCategories(ctx context.Context, tenantID string, items []dto.CategoryInput) (dto.SyncResult, error)
	ReconcileProducts(ctx context.Context, tenantID string, items []dto.ProductInput) (dto.SyncResult, error)
	ReconcileEmployees(ctx context.Context, tenantID string, items []dto.EmployeeInput) (dto.SyncResult, error)
	ReconcileCustomers(ctx context.Context, tenantID string, items []dto.CustomerInput) (dto.SyncResult, error)
	ReconcileMenuItems(ctx context.Context, tenantID string, items []dto.MenuItemInput) (dto.SyncResult, error)
	ReconcileTables(ctx context.Context, tenantID string, items []dto.TableInput) (dto.SyncResult, error)
	ReconcileTableSections(ctx context.Context, tenantID string, items []dto.TableSectionInput) (dto.SyncResult, error)

	// ReconcileSales ingests sales idempotently: an existing id is skipped,
	// never overwritten. UpsertSales updates existing ids in place. Both
	// policies exist in the product; the caller picks by entry point.
	ReconcileSales(ctx context.Context, tenantID string, items []dto.SaleInput) (dto.SyncResult, error)
	UpsertSales(ctx context.Context, tenantID string, items []dto.SaleInput) (dto.SyncResult, error)

	ReconcileCashRegister(ctx context.Context, tenantID string, item dto.CashRegisterInput) (dto.SyncResult, error)
	SaveAppSettings(ctx context.Context, tenantID string, settings json.RawMessage) (dto.SyncResult, error)
}

// PropagationSvc republishes backend rows into the document store.
type PropagationSvc interface {
	Propagate(ctx context.Context, tenantID string) (dto.PropagationResult, error)
}

// ServiceContainer bundles the service interfaces for route registration.
type ServiceContainer struct {
	Sync        SyncSvc
	Propagation PropagationSvc
}
