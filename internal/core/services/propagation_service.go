package services

import (
	"context"
	"sync"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	portsrepo "github.com/atlaspos/pos-backend/internal/core/ports/repositories"
	portssvc "github.com/atlaspos/pos-backend/internal/core/ports/services"
	"github.com/atlaspos/pos-backend/internal/dto"
	"github.com/atlaspos/pos-backend/internal/storage"
)

// propagationServiceImpl republishes the authoritative backend rows as
// denormalized documents in the document store, one document per collection,
// keyed "{tenantID}_{collection}". Other devices read these documents instead
// of querying the relational store.
type propagationServiceImpl struct {
	BaseService
	repos   *portsrepo.RepositoryProvider
	storage *storage.Provider
}

// NewPropagationService creates the cross-store propagation job.
func NewPropagationService(repos *portsrepo.RepositoryProvider, storageProvider *storage.Provider) portssvc.PropagationSvc {
	return &propagationServiceImpl{repos: repos, storage: storageProvider}
}

var _ portssvc.PropagationSvc = (*propagationServiceImpl)(nil)

// Flattened document shapes the client-side readers expect. Field names match
// the client's own collection records, not the relational columns.

type branchDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
}

type categoryDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ShowInPOS   bool   `json:"showInPos"`
	SortOrder   int    `json:"sortOrder"`
	BranchID    string `json:"branchId"`
}

type productDoc struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	CategoryID    string `json:"categoryId"`
	BasePrice     string `json:"basePrice"`
	Cost          string `json:"cost"`
	StockQuantity string `json:"stockQuantity"`
	Unit          string `json:"unit"`
	TaxRate       string `json:"taxRate"`
	IsActive      bool   `json:"isActive"`
	BranchID      string `json:"branchId"`
}

type employeeDoc struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
	BranchID string `json:"branchId"`
}

type saleDoc struct {
	ID            string `json:"id"`
	ReceiptNo     int64  `json:"receiptNo"`
	Total         string `json:"total"`
	PaymentMethod string `json:"paymentMethod"`
	BranchID      string `json:"branchId"`
	ItemCount     int    `json:"itemCount"`
}

// Propagate reads every collection for the tenant and writes the projected
// documents concurrently. A failed collection write is logged and does not
// block the others. Empty collections write nothing and report zero.
func (s *propagationServiceImpl) Propagate(ctx context.Context, tenantID string) (dto.PropagationResult, error) {
	if tenantID == "" {
		return dto.PropagationResult{}, apperrors.NewValidationFailedError("tenant id is required")
	}

	adapter, err := s.storage.Adapter()
	if err != nil {
		return dto.PropagationResult{}, err
	}

	branches, err := s.repos.BranchRepo.ListBranchesByTenant(ctx, tenantID)
	if err != nil {
		return dto.PropagationResult{}, err
	}
	categories, err := s.repos.CategoryRepo.ListCategoriesByTenant(ctx, tenantID)
	if err != nil {
		return dto.PropagationResult{}, err
	}
	products, err := s.repos.ProductRepo.ListProductsByTenant(ctx, tenantID)
	if err != nil {
		return dto.PropagationResult{}, err
	}
	employees, err := s.repos.EmployeeRepo.ListEmployeesByTenant(ctx, tenantID)
	if err != nil {
		return dto.PropagationResult{}, err
	}
	sales, err := s.repos.SaleRepo.ListSalesByTenant(ctx, tenantID)
	if err != nil {
		return dto.PropagationResult{}, err
	}

	branchDocs := make([]branchDoc, len(branches))
	for i, b := range branches {
		branchDocs[i] = branchDoc{ID: b.BranchID, Name: b.Name, Code: b.Code, Address: b.Address, Phone: b.Phone, IsActive: b.IsActive}
	}
	categoryDocs := make([]categoryDoc, len(categories))
	for i, c := range categories {
		categoryDocs[i] = categoryDoc{ID: c.CategoryID, Name: c.Name, Description: c.Description, ShowInPOS: c.ShowInPOS, SortOrder: c.SortOrder, BranchID: c.BranchID}
	}
	productDocs := make([]productDoc, len(products))
	for i, p := range products {
		productDocs[i] = productDoc{
			ID: p.ProductID, Name: p.Name, SKU: p.SKU, CategoryID: p.CategoryID,
			BasePrice: p.Price.String(), Cost: p.Cost.String(),
			StockQuantity: p.StockQuantity.String(), Unit: p.Unit,
			TaxRate: p.TaxRate.String(), IsActive: p.IsActive, BranchID: p.BranchID,
		}
	}
	employeeDocs := make([]employeeDoc, len(employees))
	for i, e := range employees {
		employeeDocs[i] = employeeDoc{ID: e.EmployeeID, FullName: e.FullName, Role: e.Role, Email: e.Email, Phone: e.Phone, IsActive: e.IsActive, BranchID: e.BranchID}
	}
	saleDocs := make([]saleDoc, len(sales))
	for i, sl := range sales {
		saleDocs[i] = saleDoc{ID: sl.SaleID, ReceiptNo: sl.ReceiptNo, Total: sl.Total.String(), PaymentMethod: sl.PaymentMethod, BranchID: sl.BranchID, ItemCount: len(sl.Items)}
	}

	var wg sync.WaitGroup
	write := func(collection string, count int, value any) {
		if count == 0 {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := tenantID + "_" + collection
			if err := storage.SetJSON(ctx, adapter, key, value); err != nil {
				s.LogError(ctx, err, "Propagation write failed",
					"tenant_id", tenantID, "collection", collection)
			}
		}()
	}

	write("branches", len(branchDocs), branchDocs)
	write("categories", len(categoryDocs), categoryDocs)
	write("products", len(productDocs), productDocs)
	write("employees", len(employeeDocs), employeeDocs)
	write("sales", len(saleDocs), saleDocs)
	wg.Wait()

	result := dto.PropagationResult{
		Branches:   len(branchDocs),
		Categories: len(categoryDocs),
		Products:   len(productDocs),
		Employees:  len(employeeDocs),
		Sales:      len(saleDocs),
	}
	s.LogInfo(ctx, "Propagation completed", "tenant_id", tenantID,
		"branches", result.Branches, "categories", result.Categories,
		"products", result.Products, "employees", result.Employees,
		"sales", result.Sales)
	return result, nil
}
