package services

import (
	"context"
	"errors"
	"time"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/atlaspos/pos-backend/internal/core/domain"
	"github.com/atlaspos/pos-backend/internal/dto"
	"github.com/atlaspos/pos-backend/internal/utils"
	"github.com/shopspring/decimal"
)

func (s *syncServiceImpl) ReconcileEmployees(ctx context.Context, tenantID string, items []dto.EmployeeInput) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	ops := reconcileOps[dto.EmployeeInput, domain.Employee]{
		entity: "employee",
		policy: policyUpsert,
		itemID: func(in dto.EmployeeInput) string { return in.ID },
		validate: func(in dto.EmployeeInput) error {
			if in.FullName == nil || *in.FullName == "" {
				return errors.New("full name is required")
			}
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.Employee, error) {
			return s.repos.EmployeeRepo.FindEmployeeByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.EmployeeInput) error {
			now := time.Now()
			pin := strOr(in.PIN, "")
			if pin == "" {
				pin = utils.GeneratePIN()
			}
			qr := strOr(in.QRToken, "")
			if qr == "" {
				qr = utils.GenerateQRToken()
			}
			return s.repos.EmployeeRepo.SaveEmployee(ctx, domain.Employee{
				EmployeeID:  in.ID,
				TenantID:    tenantID,
				BranchID:    s.branchOr(in.BranchID),
				FullName:    *in.FullName,
				Email:       strOr(in.Email, ""),
				Phone:       strOr(in.Phone, ""),
				Role:        strOr(in.Role, "cashier"),
				HourlyRate:  decOr(in.HourlyRate, decimal.Zero),
				PIN:         pin,
				QRToken:     qr,
				IsActive:    boolOr(in.IsActive, true),
				AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		},
		update: func(ctx context.Context, existing *domain.Employee, in dto.EmployeeInput) error {
			setStr(&existing.FullName, in.FullName)
			setStr(&existing.Email, in.Email)
			setStr(&existing.Phone, in.Phone)
			setStr(&existing.Role, in.Role)
			setDec(&existing.HourlyRate, in.HourlyRate)
			setStr(&existing.PIN, in.PIN)
			setStr(&existing.QRToken, in.QRToken)
			setBool(&existing.IsActive, in.IsActive)
			setStr(&existing.BranchID, in.BranchID)
			existing.LastUpdatedAt = time.Now()
			return s.repos.EmployeeRepo.UpdateEmployee(ctx, *existing)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, items)
	s.LogInfo(ctx, "Employee batch reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated, "errors", res.Errors)
	return res, nil
}

func (s *syncServiceImpl) ReconcileCustomers(ctx context.Context, tenantID string, items []dto.CustomerInput) (dto.SyncResult, error) {
	if tenantID == "" {
		return dto.SyncResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}
	ops := reconcileOps[dto.CustomerInput, domain.CustomerAccount]{
		entity: "customer_account",
		policy: policyUpsert,
		itemID: func(in dto.CustomerInput) string { return in.ID },
		validate: func(in dto.CustomerInput) error {
			if in.CustomerName == nil || *in.CustomerName == "" {
				return errors.New("customer name is required")
			}
			return nil
		},
		find: func(ctx context.Context, id string) (*domain.CustomerAccount, error) {
			return s.repos.CustomerRepo.FindCustomerByID(ctx, tenantID, id)
		},
		insert: func(ctx context.Context, in dto.CustomerInput) error {
			now := time.Now()
			accountNumber := strOr(in.AccountNumber, "")
			if accountNumber == "" {
				accountNumber = utils.GenerateAccountNumber()
			}
			status := domain.CustomerAccountStatus(strOr(in.Status, string(domain.CustomerActive)))
			return s.repos.CustomerRepo.SaveCustomer(ctx, domain.CustomerAccount{
				AccountID:     in.ID,
				TenantID:      tenantID,
				BranchID:      s.branchOr(in.BranchID),
				CustomerName:  *in.CustomerName,
				AccountNumber: accountNumber,
				Email:         strOr(in.Email, ""),
				Phone:         strOr(in.Phone, ""),
				Balance:       decOr(in.Balance, decimal.Zero),
				CreditLimit:   decOr(in.CreditLimit, decimal.Zero),
				Status:        status,
				IsActive:      status == domain.CustomerActive,
				AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			})
		},
		update: func(ctx context.Context, existing *domain.CustomerAccount, in dto.CustomerInput) error {
			setStr(&existing.CustomerName, in.CustomerName)
			setStr(&existing.Email, in.Email)
			setStr(&existing.Phone, in.Phone)
			setDec(&existing.Balance, in.Balance)
			setDec(&existing.CreditLimit, in.CreditLimit)
			setStr(&existing.BranchID, in.BranchID)
			if in.Status != nil {
				existing.Status = domain.CustomerAccountStatus(*in.Status)
				existing.IsActive = existing.Status == domain.CustomerActive
			}
			existing.LastUpdatedAt = time.Now()
			return s.repos.CustomerRepo.UpdateCustomer(ctx, *existing)
		},
	}
	res := reconcileBatch(ctx, &s.BaseService, ops, items)
	s.LogInfo(ctx, "Customer account batch reconciled", "tenant_id", tenantID,
		"created", res.Created, "updated", res.Updated, "errors", res.Errors)
	return res, nil
}
