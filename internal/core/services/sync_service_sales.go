package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/atlaspos/pos-backend/internal/core/domain"
	"github.com/atlaspos/pos-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// validSaleItems filters the incoming line items down to the ones that carry a
// usable product reference or name. Lines without either cannot be stored.
func validSaleItems(in dto.SaleInput) []dto.SaleItemInput {
	valid := make([]dto.SaleItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		hasRef := (item.ProductID != nil && *item.ProductID != "") ||
			(item.Name != nil && *item.Name != "")
		if hasRef {
			valid = append(valid, item)
		}
	}
	return valid
}

func (s *syncServiceImpl) buildSale(tenantID string, in dto.SaleInput) domain.Sale {
	now := time.Now()
	sale := domain.Sale{
		SaleID:        in.ID,
		TenantID:      tenantID,
		BranchID:      s.branchOr(in.BranchID),
		ReceiptNo:     int64Or(in.ReceiptNo, 0),
		Subtotal:      decOr(in.Subtotal, decimal.Zero),
		TaxTotal:      decOr(in.TaxTotal, decimal.Zero),
		Total:         decOr(in.Total, decimal.Zero),
		PaymentMethod: strOr(in.PaymentMethod, "cash"),
		CashAmount:    decOr(in.CashAmount, decimal.Zero),
		CardAmount:    decOr(in.CardAmount, decimal.Zero),
		CustomerID:    strOr(in.CustomerID, ""),
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	for _, item := range validSaleItems(in) {
		quantity := decOr(item.Quantity, decimal.NewFromInt(1))
		unitPrice := decOr(item.UnitPrice, decimal.Zero)
		lineTotal := decOr(item.LineTotal, quantity.Mul(unitPrice))
		sale.Items = append(sale.Items, domain.SaleItem{
			LineID:    uuid.NewString(),
			SaleID:    in.ID,
			ProductID: strOr(item.ProductID, ""),
			Name:      strOr(item.Name, ""),
			Quantity:  quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
			TaxRate:   decOr(item.TaxRate, s.standardTaxRate),
		})
	}
	return sale
}

func (s *syncServiceImpl) reconcileSales(ctx context.Context, tenantID string, items []dto.SaleInput, policy conflictPolicy) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	ops := reconcileOps[dto.SaleInput, domain.Sale]{
		entity: "sale",
		policy: policy,
		itemID: func(in dto.SaleInput) string { return in.ID },
		validate: func(in dto.SaleInput) error {
			if len(validSaleItems(in)) == 0 {
				return errors.New("sale has no valid line items")
			}
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.Sale, error) {
			return s.repos.SaleRepo.FindSaleByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.SaleInput) error {
			return s.repos.SaleRepo.SaveSale(ctx, s.buildSale(tenantID, in))
		},
		update: func(ctx context.Context, existing *domain.Sale, in dto.SaleInput) error {
			sale := s.buildSale(tenantID, in)
			sale.CreatedAt = existing.CreatedAt
			if in.BranchID == nil {
				sale.BranchID = existing.BranchID
			}
			return s.repos.SaleRepo.UpdateSale(ctx, sale)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, items)
	s.LogInfo(ctx, "Sale batch reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated,
		"skipped", res.Skipped, "errors", res.Errors)
	return res, nil
}

// ReconcileSales ingests sales idempotently: an already-known sale id is
// counted as skipped and never overwritten.
func (s *syncServiceImpl) ReconcileSales(ctx context.Context, tenantID string, items []dto.SaleInput) (dto.SyncResult, error) {
	return s.reconcileSales(ctx, tenantID, items, policyCreateOnly)
}

// UpsertSales updates already-known sale ids in place, replacing their line
// items with the submitted ones.
func (s *syncServiceImpl) UpsertSales(ctx context.Context, tenantID string, items []dto.SaleInput) (dto.SyncResult, error) {
	return s.reconcileSales(ctx, tenantID, items, policyUpsert)
}

func (s *syncServiceImpl) ReconcileCashRegister(ctx context.Context, tenantID string, item dto.CashRegisterInput) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	ops := reconcileOps[dto.CashRegisterInput, domain.CashRegister]{
		entity: "cash_register",
		policy: policyUpsert,
		itemID: func(in dto.CashRegisterInput) string { return in.ID },
		validate: func(in dto.CashRegisterInput) error {
			if in.BranchID == nil || *in.BranchID == "" {
				return errors.New("branch id is required")
			}
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.CashRegister, error) {
			return s.repos.CashRegisterRepo.FindRegisterByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.CashRegisterInput) error {
			now := time.Now()
			return s.repos.CashRegisterRepo.SaveRegister(ctx, domain.CashRegister{
				RegisterID:     in.ID,
				TenantID:       tenantID,
				BranchID:       *in.BranchID,
				BusinessDate:   strOr(in.BusinessDate, now.Format("2006-01-02")),
				OpeningBalance: decOr(in.OpeningBalance, decimal.Zero),
				ClosingBalance: decOr(in.ClosingBalance, decimal.Zero),
				CashTotal:      decOr(in.CashTotal, decimal.Zero),
				CardTotal:      decOr(in.CardTotal, decimal.Zero),
				Status:         domain.RegisterStatus(strOr(in.Status, string(domain.RegisterOpen))),
				OpenedBy:       strOr(in.OpenedBy, ""),
				OpenedAt:       now,
				ClosedBy:       strOr(in.ClosedBy, ""),
				AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		},
		update: func(ctx context.Context, existing *domain.CashRegister, in dto.CashRegisterInput) error {
			setDec(&existing.OpeningBalance, in.OpeningBalance)
			setDec(&existing.ClosingBalance, in.ClosingBalance)
			setDec(&existing.CashTotal, in.CashTotal)
			setDec(&existing.CardTotal, in.CardTotal)
			setStr(&existing.OpenedBy, in.OpenedBy)
			setStr(&existing.ClosedBy, in.ClosedBy)
			if in.Status != nil {
				next := domain.RegisterStatus(*in.Status)
				if next == domain.RegisterClosed && existing.Status != domain.RegisterClosed {
					closedAt := time.Now()
					existing.ClosedAt = &closedAt
				}
				existing.Status = next
			}
			existing.LastUpdatedAt = time.Now()
			return s.repos.CashRegisterRepo.UpdateRegister(ctx, *existing)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, []dto.CashRegisterInput{item})
	s.LogInfo(ctx, "Cash register reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated, "errors", res.Errors)
	return res, nil
}

// SaveAppSettings stores the tenant's opaque settings document. The document
// structure belongs to the client; only well-formed JSON is enforced.
func (s *syncServiceImpl) SaveAppSettings(ctx context.Context, tenantID string, settings json.RawMessage) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	if len(settings) == 0 || !json.Valid(settings) {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("settings must be a valid JSON document")
	}

	_, err := s.repos.SettingsRepo.GetSettings(ctx, tenantID)
	isNew := errors.Is(err, apperrors.ErrNotFound)
	if err != nil && !isNew {
		return dto.SyncResult{Errors: 1}, nil
	}

	if err := s.repos.SettingsRepo.SaveSettings(ctx, tenantID, settings); err != nil {
		s.LogError(ctx, err, "Failed to save app settings", "tenant_id", tenantID)
		return dto.SyncResult{Errors: 1}, nil
	}
	if isNew {
		return dto.SyncResult{Created: 1}, nil
	}
	return dto.SyncResult{Updated: 1}, nil
}
