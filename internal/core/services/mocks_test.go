package services_test

import (
	"context"
	"encoding/json"

	"github.com/atlaspos/pos-backend/internal/core/domain"
	portsrepo "github.com/atlaspos/pos-backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock repositories shared by the service test suites ---

type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, tenantID, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, tenantID, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) ListBranchesByTenant(ctx context.Context, tenantID string) ([]domain.Branch, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, tenantID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, tenantID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, tenantID, branchID, name string) (*domain.Category, error) {
	args := m.Called(ctx, tenantID, branchID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ListCategoriesByTenant(ctx context.Context, tenantID string) ([]domain.Category, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, tenantID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ListProductsByTenant(ctx context.Context, tenantID string) ([]domain.Product, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, tenantID, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, tenantID, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ListEmployeesByTenant(ctx context.Context, tenantID string) ([]domain.Employee, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, tenantID, accountID string) (*domain.CustomerAccount, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerAccount), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, account domain.CustomerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, account domain.CustomerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockCustomerRepository) ListCustomersByTenant(ctx context.Context, tenantID string) ([]domain.CustomerAccount, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerAccount), args.Error(1)
}

type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) FindMenuItemByID(ctx context.Context, tenantID, itemID string) (*domain.MenuItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) SaveMenuItem(ctx context.Context, item domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) ListMenuItemsByTenant(ctx context.Context, tenantID string) ([]domain.MenuItem, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, tenantID, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, tenantID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) ListSalesByTenant(ctx context.Context, tenantID string) ([]domain.Sale, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) FindTableByID(ctx context.Context, tenantID, tableID string) (*domain.Table, error) {
	args := m.Called(ctx, tenantID, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *MockTableRepository) SaveTable(ctx context.Context, table domain.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockTableRepository) UpdateTable(ctx context.Context, table domain.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockTableRepository) FindSectionByID(ctx context.Context, tenantID, sectionID string) (*domain.TableSection, error) {
	args := m.Called(ctx, tenantID, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableSection), args.Error(1)
}

func (m *MockTableRepository) SaveSection(ctx context.Context, section domain.TableSection) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *MockTableRepository) UpdateSection(ctx context.Context, section domain.TableSection) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

type MockCashRegisterRepository struct {
	mock.Mock
}

func (m *MockCashRegisterRepository) FindRegisterByID(ctx context.Context, tenantID, registerID string) (*domain.CashRegister, error) {
	args := m.Called(ctx, tenantID, registerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashRegister), args.Error(1)
}

func (m *MockCashRegisterRepository) SaveRegister(ctx context.Context, register domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}

func (m *MockCashRegisterRepository) UpdateRegister(ctx context.Context, register domain.CashRegister) error {
	args := m.Called(ctx, register)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context, tenantID string) (json.RawMessage, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, tenantID string, settings json.RawMessage) error {
	args := m.Called(ctx, tenantID, settings)
	return args.Error(0)
}

// mockRepos bundles fresh mocks into a RepositoryProvider for one test.
type mockRepos struct {
	branch       *MockBranchRepository
	category     *MockCategoryRepository
	product      *MockProductRepository
	employee     *MockEmployeeRepository
	customer     *MockCustomerRepository
	menuItem     *MockMenuItemRepository
	sale         *MockSaleRepository
	table        *MockTableRepository
	cashRegister *MockCashRegisterRepository
	settings     *MockSettingsRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		branch:       new(MockBranchRepository),
		category:     new(MockCategoryRepository),
		product:      new(MockProductRepository),
		employee:     new(MockEmployeeRepository),
		customer:     new(MockCustomerRepository),
		menuItem:     new(MockMenuItemRepository),
		sale:         new(MockSaleRepository),
		table:        new(MockTableRepository),
		cashRegister: new(MockCashRegisterRepository),
		settings:     new(MockSettingsRepository),
	}
}

func (m *mockRepos) provider() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		BranchRepo:       m.branch,
		CategoryRepo:     m.category,
		ProductRepo:      m.product,
		EmployeeRepo:     m.employee,
		CustomerRepo:     m.customer,
		MenuItemRepo:     m.menuItem,
		SaleRepo:         m.sale,
		TableRepo:        m.table,
		CashRegisterRepo: m.cashRegister,
		SettingsRepo:     m.settings,
	}
}
