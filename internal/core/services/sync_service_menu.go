package services

import (
	"context"
	"errors"
	"time"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/atlaspos/pos-backend/internal/core/domain"
	"github.com/atlaspos/pos-backend/internal/dto"
	"github.com/shopspring/decimal"
)

func (s *syncServiceImpl) ReconcileMenuItems(ctx context.Context, tenantID string, items []dto.MenuItemInput) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	ops := reconcileOps[dto.MenuItemInput, domain.MenuItem]{
		entity: "menu_item",
		policy: policyUpsert,
		itemID: func(in dto.MenuItemInput) string { return in.ID },
		validate: func(in dto.MenuItemInput) error {
			if in.Name == nil || *in.Name == "" {
				return errors.New("name is required")
			}
			// Menu items never get a fallback category.
			if in.CategoryID == nil || *in.CategoryID == "" {
				return errors.New("category id is required")
			}
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.MenuItem, error) {
			return s.repos.MenuItemRepo.FindMenuItemByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.MenuItemInput) error {
			now := time.Now()
			return s.repos.MenuItemRepo.SaveMenuItem(ctx, domain.MenuItem{
				ItemID:      in.ID,
				TenantID:    tenantID,
				BranchID:    s.branchOr(in.BranchID),
				CategoryID:  *in.CategoryID,
				Name:        *in.Name,
				Price:       decOr(in.Price, decimal.Zero),
				TaxRate:     decOr(in.TaxRate, s.standardTaxRate),
				IsAvailable: boolOr(in.IsAvailable, true),
				ImageURL:    strOr(in.ImageURL, ""),
				AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		},
		update: func(ctx context.Context, existing *domain.MenuItem, in dto.MenuItemInput) error {
			setStr(&existing.CategoryID, in.CategoryID)
			setStr(&existing.Name, in.Name)
			setDec(&existing.Price, in.Price)
			setDec(&existing.TaxRate, in.TaxRate)
			setBool(&existing.IsAvailable, in.IsAvailable)
			setStr(&existing.ImageURL, in.ImageURL)
			setStr(&existing.BranchID, in.BranchID)
			existing.LastUpdatedAt = time.Now()
			return s.repos.MenuItemRepo.UpdateMenuItem(ctx, *existing)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, items)
	s.LogInfo(ctx, "Menu item batch reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated, "errors", res.Errors)
	return res, nil
}

func (s *syncServiceImpl) ReconcileTables(ctx context.Context, tenantID string, items []dto.TableInput) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	ops := reconcileOps[dto.TableInput, domain.Table]{
		entity: "table",
		policy: policyUpsert,
		itemID: func(in dto.TableInput) string { return in.ID },
		validate: func(in dto.TableInput) error {
			if in.Name == nil || *in.Name == "" {
				return errors.New("name is required")
			}
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.Table, error) {
			return s.repos.TableRepo.FindTableByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.TableInput) error {
			now := time.Now()
			return s.repos.TableRepo.SaveTable(ctx, domain.Table{
				TableID:     in.ID,
				TenantID:    tenantID,
				BranchID:    s.branchOr(in.BranchID),
				SectionID:   strOr(in.SectionID, ""),
				Name:        *in.Name,
				Capacity:    intOr(in.Capacity, 4),
				Status:      strOr(in.Status, "empty"),
				PosX:        intOr(in.PosX, 0),
				PosY:        intOr(in.PosY, 0),
				AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		},
		update: func(ctx context.Context, existing *domain.Table, in dto.TableInput) error {
			setStr(&existing.SectionID, in.SectionID)
			setStr(&existing.Name, in.Name)
			setInt(&existing.Capacity, in.Capacity)
			setStr(&existing.Status, in.Status)
			setInt(&existing.PosX, in.PosX)
			setInt(&existing.PosY, in.PosY)
			setStr(&existing.BranchID, in.BranchID)
			existing.LastUpdatedAt = time.Now()
			return s.repos.TableRepo.UpdateTable(ctx, *existing)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, items)
	s.LogInfo(ctx, "Table batch reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated, "errors", res.Errors)
	return res, nil
}

func (s *syncServiceImpl) ReconcileTableSections(ctx context.Context, tenantID string, items []dto.TableSectionInput) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	ops := reconcileOps[dto.TableSectionInput, domain.TableSection]{
		entity: "table_section",
		policy: policyUpsert,
		itemID: func(in dto.TableSectionInput) string { return in.ID },
		validate: func(in dto.TableSectionInput) error {
			if in.Name == nil || *in.Name == "" {
				return errors.New("name is required")
			}
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.TableSection, error) {
			return s.repos.TableRepo.FindSectionByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.TableSectionInput) error {
			now := time.Now()
			return s.repos.TableRepo.SaveSection(ctx, domain.TableSection{
				SectionID:   in.ID,
				TenantID:    tenantID,
				BranchID:    s.branchOr(in.BranchID),
				Name:        *in.Name,
				Color:       strOr(in.Color, "#cccccc"),
				SortOrder:   intOr(in.SortOrder, 0),
				AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		},
		update: func(ctx context.Context, existing *domain.TableSection, in dto.TableSectionInput) error {
			setStr(&existing.Name, in.Name)
			setStr(&existing.Color, in.Color)
			setInt(&existing.SortOrder, in.SortOrder)
			setStr(&existing.BranchID, in.BranchID)
			existing.LastUpdatedAt = time.Now()
			return s.repos.TableRepo.UpdateSection(ctx, *existing)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, items)
	s.LogInfo(ctx, "Table section batch reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated, "errors", res.Errors)
	return res, nil
}
