package services_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/atlaspos/pos-backend/internal/core/domain"
	portssvc "github.com/atlaspos/pos-backend/internal/core/ports/services"
	"github.com/atlaspos/pos-backend/internal/core/services"
	"github.com/atlaspos/pos-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func strPtr(s string) *string { return &s }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

// --- Test Suite Setup ---

type SyncServiceTestSuite struct {
	suite.Suite
	repos   *mockRepos
	service portssvc.SyncSvc
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.repos = newMockRepos()
	suite.service = services.NewSyncService(suite.repos.provider())
}

// --- Branches ---

func (suite *SyncServiceTestSuite) TestReconcileBranches_CreatedThenUpdated() {
	ctx := context.Background()

	suite.repos.branch.On("FindBranchByID", ctx, "t1", "b1").Return(nil, apperrors.ErrNotFound).Once()
	suite.repos.branch.On("SaveBranch", ctx, mock.AnythingOfType("domain.Branch")).Return(nil).Once()

	res, err := suite.service.ReconcileBranches(ctx, "t1", []dto.BranchInput{
		{ID: "b1", Name: strPtr("Merkez")},
	})
	suite.Require().NoError(err)
	suite.Equal(1, res.Created)
	suite.Equal(0, res.Updated)

	// Same record again, now known: the batch reports an update, not a create.
	existing := &domain.Branch{BranchID: "b1", TenantID: "t1", Name: "Merkez"}
	suite.repos.branch.On("FindBranchByID", ctx, "t1", "b1").Return(existing, nil).Once()
	suite.repos.branch.On("UpdateBranch", ctx, mock.MatchedBy(func(b domain.Branch) bool {
		return b.Name == "Merkez Sube"
	})).Return(nil).Once()

	res, err = suite.service.ReconcileBranches(ctx, "t1", []dto.BranchInput{
		{ID: "b1", Name: strPtr("Merkez Sube")},
	})
	suite.Require().NoError(err)
	suite.Equal(0, res.Created)
	suite.Equal(1, res.Updated)

	suite.repos.branch.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestReconcileBranches_LookupScopedToTenant() {
	ctx := context.Background()

	// Tenant t2 submits an id that tenant t1 already owns. The lookup carries
	// t2, comes back empty, and the batch creates a fresh row instead of
	// touching the other tenant's.
	suite.repos.branch.On("FindBranchByID", ctx, "t2", "b1").Return(nil, apperrors.ErrNotFound).Once()
	suite.repos.branch.On("SaveBranch", ctx, mock.MatchedBy(func(b domain.Branch) bool {
		return b.TenantID == "t2" && b.BranchID == "b1"
	})).Return(nil).Once()

	res, err := suite.service.ReconcileBranches(ctx, "t2", []dto.BranchInput{
		{ID: "b1", Name: strPtr("Sahil")},
	})
	suite.Require().NoError(err)
	suite.Equal(1, res.Created)

	suite.repos.branch.AssertNotCalled(suite.T(), "UpdateBranch", mock.Anything, mock.Anything)
	suite.repos.branch.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestReconcileBranches_MissingTenant() {
	_, err := suite.service.ReconcileBranches(context.Background(), "", []dto.BranchInput{{ID: "b1", Name: strPtr("X")}})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SyncServiceTestSuite) TestReconcileBranches_BadItemsCounted() {
	ctx := context.Background()

	suite.repos.branch.On("FindBranchByID", ctx, "t1", "ok").Return(nil, apperrors.ErrNotFound).Once()
	suite.repos.branch.On("SaveBranch", ctx, mock.AnythingOfType("domain.Branch")).Return(nil).Once()

	// One valid item, one missing id, one missing name: the batch completes
	// and reports exactly two item failures.
	res, err := suite.service.ReconcileBranches(ctx, "t1", []dto.BranchInput{
		{ID: "ok", Name: strPtr("Valid")},
		{ID: "", Name: strPtr("No ID")},
		{ID: "noname"},
	})
	suite.Require().NoError(err)
	suite.Equal(1, res.Created)
	suite.Equal(2, res.Errors)

	suite.repos.branch.AssertExpectations(suite.T())
}

// --- Products and the fallback category ---

func (suite *SyncServiceTestSuite) TestReconcileProducts_FallbackCategoryCreatedOnce() {
	ctx := context.Background()

	// No fallback category yet: exactly one lookup and one creation serve the
	// whole batch.
	suite.repos.category.On("FindCategoryByName", ctx, "t1", "main", domain.FallbackCategoryName).
		Return(nil, apperrors.ErrNotFound).Once()
	var fallbackID string
	suite.repos.category.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == domain.FallbackCategoryName && c.TenantID == "t1" && c.ShowInPOS
	})).Run(func(args mock.Arguments) {
		fallbackID = args.Get(1).(domain.Category).CategoryID
	}).Return(nil).Once()

	suite.repos.product.On("FindProductByID", ctx, "t1", mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrNotFound).Twice()
	suite.repos.product.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).
		Return(nil).Twice()

	res, err := suite.service.ReconcileProducts(ctx, "t1", []dto.ProductInput{
		{ID: "p1", Name: strPtr("Tea"), BasePrice: decPtr(decimal.NewFromInt(15))},
		{ID: "p2", Name: strPtr("Coffee")},
	})
	suite.Require().NoError(err)
	suite.Equal(2, res.Created)
	suite.Equal(0, res.Errors)
	suite.NotEmpty(fallbackID)

	// Both products got attached to the same fallback category.
	for _, call := range suite.repos.product.Calls {
		if call.Method != "SaveProduct" {
			continue
		}
		p := call.Arguments.Get(1).(domain.Product)
		suite.Equal(fallbackID, p.CategoryID)
		if p.ProductID == "p1" {
			suite.Equal("Tea", p.Name)
			suite.True(p.Price.Equal(decimal.NewFromInt(15)))
		}
	}

	suite.repos.category.AssertExpectations(suite.T())
	suite.repos.product.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestReconcileProducts_FallbackCategoryReused() {
	ctx := context.Background()

	existing := &domain.Category{CategoryID: "genel-1", TenantID: "t1", BranchID: "main", Name: domain.FallbackCategoryName}
	suite.repos.category.On("FindCategoryByName", ctx, "t1", "main", domain.FallbackCategoryName).
		Return(existing, nil).Once()

	suite.repos.product.On("FindProductByID", ctx, "t1", "p1").Return(nil, apperrors.ErrNotFound).Once()
	suite.repos.product.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.CategoryID == "genel-1"
	})).Return(nil).Once()

	res, err := suite.service.ReconcileProducts(ctx, "t1", []dto.ProductInput{
		{ID: "p1", Name: strPtr("Tea")},
	})
	suite.Require().NoError(err)
	suite.Equal(1, res.Created)

	// SaveCategory must never fire when the fallback already exists.
	suite.repos.category.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
	suite.repos.category.AssertExpectations(suite.T())
	suite.repos.product.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestReconcileProducts_ExplicitCategoryKept() {
	ctx := context.Background()

	suite.repos.product.On("FindProductByID", ctx, "t1", "p1").Return(nil, apperrors.ErrNotFound).Once()
	suite.repos.product.On("SaveProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.CategoryID == "cat-7"
	})).Return(nil).Once()

	res, err := suite.service.ReconcileProducts(ctx, "t1", []dto.ProductInput{
		{ID: "p1", Name: strPtr("Tea"), CategoryID: strPtr("cat-7")},
	})
	suite.Require().NoError(err)
	suite.Equal(1, res.Created)

	suite.repos.category.AssertNotCalled(suite.T(), "FindCategoryByName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.repos.product.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestReconcileProducts_UpdateWithoutCategoryKeepsStored() {
	ctx := context.Background()

	existing := &domain.Product{ProductID: "p1", TenantID: "t1", CategoryID: "cat-7", Name: "Tea"}
	suite.repos.product.On("FindProductByID", ctx, "t1", "p1").Return(existing, nil).Once()
	suite.repos.product.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.CategoryID == "cat-7" && p.Name == "Green Tea"
	})).Return(nil).Once()

	res, err := suite.service.ReconcileProducts(ctx, "t1", []dto.ProductInput{
		{ID: "p1", Name: strPtr("Green Tea")},
	})
	suite.Require().NoError(err)
	suite.Equal(1, res.Updated)

	// An update omitting the category keeps the stored one; the fallback
	// category machinery stays out of updates entirely.
	suite.repos.category.AssertNotCalled(suite.T(), "FindCategoryByName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.repos.category.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
	suite.repos.product.AssertExpectations(suite.T())
}

// --- Employees ---

func (suite *SyncServiceTestSuite) TestReconcileEmployees_GeneratedCredentials() {
	ctx := context.Background()

	suite.repos.employee.On("FindEmployeeByID", ctx, "t1", "e1").Return(nil, apperrors.ErrNotFound).Once()
	var saved domain.Employee
	suite.repos.employee.On("SaveEmployee", ctx, mock.AnythingOfType("domain.Employee")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Employee)
		}).Return(nil).Once()

	res, err := suite.service.ReconcileEmployees(ctx, "t1", []dto.EmployeeInput{
		{ID: "e1", FullName: strPtr("Ayse Demir")},
	})
	suite.Require().NoError(err)
	suite.Equal(1, res.Created)

	suite.Regexp(regexp.MustCompile(`^\d{4}$`), saved.PIN)
	suite.Regexp(regexp.MustCompile(`^QR-\d+-[A-Za-z0-9]{8}$`), saved.QRToken)
	suite.Equal("cashier", saved.Role)

	suite.repos.employee.AssertExpectations(suite.T())
}

// --- Customers ---

func (suite *SyncServiceTestSuite) TestReconcileCustomers_AccountNumberGenerated() {
	ctx := context.Background()

	suite.repos.customer.On("FindCustomerByID", ctx, "t1", "c1").Return(nil, apperrors.ErrNotFound).Once()
	var saved domain.CustomerAccount
	suite.repos.customer.On("SaveCustomer", ctx, mock.AnythingOfType("domain.CustomerAccount")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.CustomerAccount)
		}).Return(nil).Once()

	res, err := suite.service.ReconcileCustomers(ctx, "t1", []dto.CustomerInput{
		{ID: "c1", CustomerName: strPtr("Mehmet Kaya")},
	})
	suite.Require().NoError(err)
	suite.Equal(1, res.Created)

	suite.Regexp(regexp.MustCompile(`^ACC-\d+-[A-Za-z0-9]{6}$`), saved.AccountNumber)
	suite.Equal(domain.CustomerActive, saved.Status)
	suite.True(saved.IsActive)

	suite.repos.customer.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestReconcileCustomers_StatusDrivesIsActive() {
	ctx := context.Background()

	suite.repos.customer.On("FindCustomerByID", ctx, "t1", "c1").Return(nil, apperrors.ErrNotFound).Once()
	suite.repos.customer.On("SaveCustomer", ctx, mock.MatchedBy(func(a domain.CustomerAccount) bool {
		return a.Status == domain.CustomerBlocked && !a.IsActive
	})).Return(nil).Once()

	res, err := suite.service.ReconcileCustomers(ctx, "t1", []dto.CustomerInput{
		{ID: "c1", CustomerName: strPtr("Mehmet Kaya"), Status: strPtr("blocked")},
	})
	suite.Require().NoError(err)
	suite.Equal(1, res.Created)

	suite.repos.customer.AssertExpectations(suite.T())
}

// --- Menu items ---

func (suite *SyncServiceTestSuite) TestReconcileMenuItems_CategoryRequired() {
	ctx := context.Background()

	// A menu item without a category is rejected, not defaulted.
	res, err := suite.service.ReconcileMenuItems(ctx, "t1", []dto.MenuItemInput{
		{ID: "m1", Name: strPtr("Ayran")},
	})
	suite.Require().NoError(err)
	suite.Equal(0, res.Created)
	suite.Equal(1, res.Errors)

	suite.repos.menuItem.AssertNotCalled(suite.T(), "SaveMenuItem", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestSyncService(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
