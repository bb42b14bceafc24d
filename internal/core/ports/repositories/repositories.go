package repositories

import (
	"context"
	"encoding/json"

	"github.com/atlaspos/pos-backend/internal/core/domain"
)

// Every Find-by-id below is tenant-scoped: an id owned by another tenant
// reads as ErrNotFound, so client-generated ids may collide across tenants
// without ever resolving to foreign rows.

// BranchRepository persists branches for a tenant.
type BranchRepository interface {
	FindBranchByID(ctx context.Context, tenantID, branchID string) (*domain.Branch, error)
	SaveBranch(ctx context.Context, branch domain.Branch) error
	UpdateBranch(ctx context.Context, branch domain.Branch) error
	ListBranchesByTenant(ctx context.Context, tenantID string) ([]domain.Branch, error)
}

// CategoryRepository persists categories. FindCategoryByName powers the
// fallback-category lookup-or-create path of the reconciliation engine.
type CategoryRepository interface {
	FindCategoryByID(ctx context.Context, tenantID, categoryID string) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, tenantID, branchID, name string) (*domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	ListCategoriesByTenant(ctx context.Context, tenantID string) ([]domain.Category, error)
}

// ProductRepository persists products.
type ProductRepository interface {
	FindProductByID(ctx context.Context, tenantID, productID string) (*domain.Product, error)
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	ListProductsByTenant(ctx context.Context, tenantID string) ([]domain.Product, error)
}

// EmployeeRepository persists employees.
type EmployeeRepository interface {
	FindEmployeeByID(ctx context.Context, tenantID, employeeID string) (*domain.Employee, error)
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
	ListEmployeesByTenant(ctx context.Context, tenantID string) ([]domain.Employee, error)
}

// CustomerRepository persists customer accounts.
type CustomerRepository interface {
	FindCustomerByID(ctx context.Context, tenantID, accountID string) (*domain.CustomerAccount, error)
	SaveCustomer(ctx context.Context, account domain.CustomerAccount) error
	UpdateCustomer(ctx context.Context, account domain.CustomerAccount) error
	ListCustomersByTenant(ctx context.Context, tenantID string) ([]domain.CustomerAccount, error)
}

// MenuItemRepository persists menu items.
type MenuItemRepository interface {
	FindMenuItemByID(ctx context.Context, tenantID, itemID string) (*domain.MenuItem, error)
	SaveMenuItem(ctx context.Context, item domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item domain.MenuItem) error
	ListMenuItemsByTenant(ctx context.Context, tenantID string) ([]domain.MenuItem, error)
}

// SaleRepository persists sales together with their nested line items.
type SaleRepository interface {
	FindSaleByID(ctx context.Context, tenantID, saleID string) (*domain.Sale, error)
	SaveSale(ctx context.Context, sale domain.Sale) error
	UpdateSale(ctx context.Context, sale domain.Sale) error
	ListSalesByTenant(ctx context.Context, tenantID string) ([]domain.Sale, error)
}

// TableRepository persists tables and table sections.
type TableRepository interface {
	FindTableByID(ctx context.Context, tenantID, tableID string) (*domain.Table, error)
	SaveTable(ctx context.Context, table domain.Table) error
	UpdateTable(ctx context.Context, table domain.Table) error
	FindSectionByID(ctx context.Context, tenantID, sectionID string) (*domain.TableSection, error)
	SaveSection(ctx context.Context, section domain.TableSection) error
	UpdateSection(ctx context.Context, section domain.TableSection) error
}

// CashRegisterRepository persists the per-branch-per-day register records.
type CashRegisterRepository interface {
	FindRegisterByID(ctx context.Context, tenantID, registerID string) (*domain.CashRegister, error)
	SaveRegister(ctx context.Context, register domain.CashRegister) error
	UpdateRegister(ctx context.Context, register domain.CashRegister) error
}

// SettingsRepository persists the opaque per-tenant settings document.
type SettingsRepository interface {
	GetSettings(ctx context.Context, tenantID string) (json.RawMessage, error)
	SaveSettings(ctx context.Context, tenantID string, settings json.RawMessage) error
}

// RepositoryProvider bundles all repositories for service wiring.
type RepositoryProvider struct {
	BranchRepo       BranchRepository
	CategoryRepo     CategoryRepository
	ProductRepo      ProductRepository
	EmployeeRepo     EmployeeRepository
	CustomerRepo     CustomerRepository
	MenuItemRepo     MenuItemRepository
	SaleRepo         SaleRepository
	TableRepo        TableRepository
	CashRegisterRepo CashRegisterRepository
	SettingsRepo     SettingsRepository
}
