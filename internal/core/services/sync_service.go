package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/atlaspos/pos-backend/internal/core/domain"
	portsrepo "github.com/atlaspos/pos-backend/internal/core/ports/repositories"
	portssvc "github.com/atlaspos/pos-backend/internal/core/ports/services"
	"github.com/atlaspos/pos-backend/internal/dto"
	"github.com/atlaspos/pos-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// syncServiceImpl implements the SyncSvc reconciliation engine.
type syncServiceImpl struct {
	BaseService
	repos *portsrepo.RepositoryProvider

	defaultBranchID string
	standardTaxRate decimal.Decimal

	// fallbackMu serialises fallback-category creation within this process so
	// concurrent batches for the same tenant+branch cannot race each other.
	fallbackMu sync.Mutex
}

// SyncOption is a functional option for configuring the sync service
type SyncOption func(*syncServiceImpl)

// WithDefaultBranchID sets the sentinel branch assigned to records that arrive
// without a branch reference.
func WithDefaultBranchID(branchID string) SyncOption {
	return func(s *syncServiceImpl) {
		s.defaultBranchID = branchID
	}
}

// WithStandardTaxRate sets the tenant-standard tax rate applied to created
// records that omit one.
func WithStandardTaxRate(rate decimal.Decimal) SyncOption {
	return func(s *syncServiceImpl) {
		s.standardTaxRate = rate
	}
}

// NewSyncService creates the reconciliation engine with the provided options.
func NewSyncService(repos *portsrepo.RepositoryProvider, options ...SyncOption) portssvc.SyncSvc {
	svc := &syncServiceImpl{
		repos:           repos,
		defaultBranchID: "main",
		standardTaxRate: decimal.NewFromInt(10),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure syncServiceImpl implements the SyncSvc interface
var _ portssvc.SyncSvc = (*syncServiceImpl)(nil)

func (s *syncServiceImpl) branchOr(p *string) string {
	return strOr(p, s.defaultBranchID)
}

// fallbackMemo deduplicates fallback-category resolution within one batch,
// keyed by tenant+branch.
type fallbackMemo map[string]string

// ensureFallbackCategory returns the id of the tenant+branch "Genel" category,
// creating it on first use. Repeated calls, within a batch or across batches,
// reuse the same category.
func (s *syncServiceImpl) ensureFallbackCategory(ctx context.Context, tenantID, branchID string, memo fallbackMemo) (string, error) {
	memoKey := tenantID + "|" + branchID
	if id, ok := memo[memoKey]; ok {
		return id, nil
	}

	s.fallbackMu.Lock()
	defer s.fallbackMu.Unlock()

	cat, err := s.repos.CategoryRepo.FindCategoryByName(ctx, tenantID, branchID, domain.FallbackCategoryName)
	if err == nil {
		memo[memoKey] = cat.CategoryID
		return cat.CategoryID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("fallback category lookup failed: %w", err)
	}

	now := time.Now()
	fallback := domain.Category{
		CategoryID:  uuid.NewString(),
		TenantID:    tenantID,
		BranchID:    branchID,
		Name:        domain.FallbackCategoryName,
		Description: "",
		ShowInPOS:   true,
		SortOrder:   999,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.repos.CategoryRepo.SaveCategory(ctx, fallback); err != nil {
		return "", fmt.Errorf("fallback category creation failed: %w", err)
	}
	s.LogInfo(ctx, "Fallback category created",
		"tenant_id", tenantID, "branch_id", branchID, "category_id", fallback.CategoryID)
	memo[memoKey] = fallback.CategoryID
	return fallback.CategoryID, nil
}

func (s *syncServiceImpl) ReconcileBranches(ctx context.Context, tenantID string, items []dto.BranchInput) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	ops := reconcileOps[dto.BranchInput, domain.Branch]{
		entity: "branch",
		policy: policyUpsert,
		itemID: func(in dto.BranchInput) string { return in.ID },
		validate: func(in dto.BranchInput) error {
			if in.Name == nil || *in.Name == "" {
				return errors.New("name is required")
			}
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.Branch, error) {
			return s.repos.BranchRepo.FindBranchByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.BranchInput) error {
			now := time.Now()
			return s.repos.BranchRepo.SaveBranch(ctx, domain.Branch{
				BranchID:    in.ID,
				TenantID:    tenantID,
				Name:        *in.Name,
				Code:        strOr(in.Code, ""),
				Address:     strOr(in.Address, ""),
				Phone:       strOr(in.Phone, ""),
				IsActive:    boolOr(in.IsActive, true),
				AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		},
		update: func(ctx context.Context, existing *domain.Branch, in dto.BranchInput) error {
			setStr(&existing.Name, in.Name)
			setStr(&existing.Code, in.Code)
			setStr(&existing.Address, in.Address)
			setStr(&existing.Phone, in.Phone)
			setBool(&existing.IsActive, in.IsActive)
			existing.LastUpdatedAt = time.Now()
			return s.repos.BranchRepo.UpdateBranch(ctx, *existing)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, items)
	s.LogInfo(ctx, "Branch batch reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated, "errors", res.Errors)
	return res, nil
}

func (s *syncServiceImpl) ReconcileCategories(ctx context.Context, tenantID string, items []dto.CategoryInput) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	ops := reconcileOps[dto.CategoryInput, domain.Category]{
		entity: "category",
		policy: policyUpsert,
		itemID: func(in dto.CategoryInput) string { return in.ID },
		validate: func(in dto.CategoryInput) error {
			if in.Name == nil || *in.Name == "" {
				return errors.New("name is required")
			}
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.Category, error) {
			return s.repos.CategoryRepo.FindCategoryByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.CategoryInput) error {
			now := time.Now()
			return s.repos.CategoryRepo.SaveCategory(ctx, domain.Category{
				CategoryID:  in.ID,
				TenantID:    tenantID,
				BranchID:    s.branchOr(in.BranchID),
				Name:        *in.Name,
				Description: strOr(in.Description, ""),
				ShowInPOS:   boolOr(in.ShowInPOS, true),
				SortOrder:   intOr(in.SortOrder, 0),
				AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		},
		update: func(ctx context.Context, existing *domain.Category, in dto.CategoryInput) error {
			setStr(&existing.Name, in.Name)
			setStr(&existing.Description, in.Description)
			setBool(&existing.ShowInPOS, in.ShowInPOS)
			setInt(&existing.SortOrder, in.SortOrder)
			setStr(&existing.BranchID, in.BranchID)
			existing.LastUpdatedAt = time.Now()
			return s.repos.CategoryRepo.UpdateCategory(ctx, *existing)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, items)
	s.LogInfo(ctx, "Category batch reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated, "errors", res.Errors)
	return res, nil
}

func (s *syncServiceImpl) ReconcileProducts(ctx context.Context, tenantID string, items []dto.ProductInput) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	memo := fallbackMemo{}
	ops := reconcileOps[dto.ProductInput, domain.Product]{
		entity: "product",
		policy: policyUpsert,
		itemID: func(in dto.ProductInput) string { return in.ID },
		validate: func(in dto.ProductInput) error {
			if in.Name == nil || *in.Name == "" {
				return errors.New("name is required")
			}
			return nil
		},
		resolve: func(ctx context.Context, in *dto.ProductInput) error {
			if in.CategoryID != nil && *in.CategoryID != "" {
				return nil
			}
			categoryID, err := s.ensureFallbackCategory(ctx, tenantID, s.branchOr(in.BranchID), memo)
			if err != nil {
				return err
			}
			in.CategoryID = &categoryID
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.Product, error) {
			return s.repos.ProductRepo.FindProductByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.ProductInput) error {
			now := time.Now()
			return s.repos.ProductRepo.SaveProduct(ctx, domain.Product{
				ProductID:     in.ID,
				TenantID:      tenantID,
				BranchID:      s.branchOr(in.BranchID),
				CategoryID:    *in.CategoryID,
				SKU:           strOr(in.SKU, utils.GenerateSKU()),
				Name:          *in.Name,
				Price:         decOr(in.BasePrice, decimal.Zero),
				Cost:          decOr(in.Cost, decimal.Zero),
				StockQuantity: decOr(in.StockQuantity, decimal.Zero),
				Unit:          strOr(in.Unit, "adet"),
				TaxRate:       decOr(in.TaxRate, s.standardTaxRate),
				MinStockLevel: decOr(in.MinStockLevel, decimal.Zero),
				IsActive:      boolOr(in.IsActive, true),
				AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		},
		update: func(ctx context.Context, existing *domain.Product, in dto.ProductInput) error {
			setStr(&existing.CategoryID, in.CategoryID)
			setStr(&existing.SKU, in.SKU)
			setStr(&existing.Name, in.Name)
			setDec(&existing.Price, in.BasePrice)
			setDec(&existing.Cost, in.Cost)
			setDec(&existing.StockQuantity, in.StockQuantity)
			setStr(&existing.Unit, in.Unit)
			setDec(&existing.TaxRate, in.TaxRate)
			setDec(&existing.MinStockLevel, in.MinStockLevel)
			setBool(&existing.IsActive, in.IsActive)
			setStr(&existing.BranchID, in.BranchID)
			existing.LastUpdatedAt = time.Now()
			return s.repos.ProductRepo.UpdateProduct(ctx, *existing)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, items)
	s.LogInfo(ctx, "Product batch reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated, "errors", res.Errors)
	return res, nil
}
