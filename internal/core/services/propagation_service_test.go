package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/atlaspos/pos-backend/internal/core/domain"
	portssvc "github.com/atlaspos/pos-backend/internal/core/ports/services"
	"github.com/atlaspos/pos-backend/internal/core/services"
	"github.com/atlaspos/pos-backend/internal/storage"
	"github.com/stretchr/testify/suite"
)

type PropagationServiceTestSuite struct {
	suite.Suite
	repos    *mockRepos
	provider *storage.Provider
	service  portssvc.PropagationSvc
}

func (suite *PropagationServiceTestSuite) SetupTest() {
	suite.repos = newMockRepos()
	// A real file-backed store keeps the test honest about what actually
	// lands in the document store.
	suite.provider = storage.NewProvider(storage.Config{
		Backend: storage.BackendFile,
		FileDir: suite.T().TempDir(),
	})
	suite.service = services.NewPropagationService(suite.repos.provider(), suite.provider)
}

func (suite *PropagationServiceTestSuite) TestPropagate_BranchesWrittenEmptySalesSkipped() {
	ctx := context.Background()

	branches := []domain.Branch{
		{BranchID: "b1", TenantID: "t1", Name: "Merkez", IsActive: true},
		{BranchID: "b2", TenantID: "t1", Name: "Kadikoy", IsActive: true},
		{BranchID: "b3", TenantID: "t1", Name: "Moda", IsActive: false},
	}
	suite.repos.branch.On("ListBranchesByTenant", ctx, "t1").Return(branches, nil).Once()
	suite.repos.category.On("ListCategoriesByTenant", ctx, "t1").Return([]domain.Category{}, nil).Once()
	suite.repos.product.On("ListProductsByTenant", ctx, "t1").Return([]domain.Product{}, nil).Once()
	suite.repos.employee.On("ListEmployeesByTenant", ctx, "t1").Return([]domain.Employee{}, nil).Once()
	suite.repos.sale.On("ListSalesByTenant", ctx, "t1").Return([]domain.Sale{}, nil).Once()

	result, err := suite.service.Propagate(ctx, "t1")
	suite.Require().NoError(err)
	suite.Equal(3, result.Branches)
	suite.Equal(0, result.Sales)
	suite.Equal(0, result.Products)

	adapter, err := suite.provider.Adapter()
	suite.Require().NoError(err)

	raw, err := adapter.Get(ctx, "t1_branches")
	suite.Require().NoError(err)
	suite.Require().NotNil(raw)

	var docs []map[string]any
	suite.Require().NoError(json.Unmarshal(raw, &docs))
	suite.Len(docs, 3)
	suite.Equal("Merkez", docs[0]["name"])
	suite.Equal("b1", docs[0]["id"])

	// An empty collection writes no document at all.
	raw, err = adapter.Get(ctx, "t1_sales")
	suite.Require().NoError(err)
	suite.Nil(raw)

	suite.repos.branch.AssertExpectations(suite.T())
}

func (suite *PropagationServiceTestSuite) TestPropagate_SaleDocsFlattened() {
	ctx := context.Background()

	sales := []domain.Sale{
		{
			SaleID:        "s1",
			TenantID:      "t1",
			BranchID:      "b1",
			ReceiptNo:     42,
			PaymentMethod: "cash",
			Items:         []domain.SaleItem{{LineID: "l1"}, {LineID: "l2"}},
		},
	}
	suite.repos.branch.On("ListBranchesByTenant", ctx, "t1").Return([]domain.Branch{}, nil).Once()
	suite.repos.category.On("ListCategoriesByTenant", ctx, "t1").Return([]domain.Category{}, nil).Once()
	suite.repos.product.On("ListProductsByTenant", ctx, "t1").Return([]domain.Product{}, nil).Once()
	suite.repos.employee.On("ListEmployeesByTenant", ctx, "t1").Return([]domain.Employee{}, nil).Once()
	suite.repos.sale.On("ListSalesByTenant", ctx, "t1").Return(sales, nil).Once()

	result, err := suite.service.Propagate(ctx, "t1")
	suite.Require().NoError(err)
	suite.Equal(1, result.Sales)

	adapter, err := suite.provider.Adapter()
	suite.Require().NoError(err)

	raw, err := adapter.Get(ctx, "t1_sales")
	suite.Require().NoError(err)
	suite.Require().NotNil(raw)

	var docs []map[string]any
	suite.Require().NoError(json.Unmarshal(raw, &docs))
	suite.Require().Len(docs, 1)
	suite.Equal("s1", docs[0]["id"])
	suite.Equal(float64(42), docs[0]["receiptNo"])
	suite.Equal(float64(2), docs[0]["itemCount"])
}

func (suite *PropagationServiceTestSuite) TestPropagate_MissingTenant() {
	_, err := suite.service.Propagate(context.Background(), "")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PropagationServiceTestSuite) TestPropagate_RepoFailureSurfaced() {
	ctx := context.Background()

	suite.repos.branch.On("ListBranchesByTenant", ctx, "t1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Propagate(ctx, "t1")
	suite.Require().Error(err)
}

func TestPropagationService(t *testing.T) {
	suite.Run(t, new(PropagationServiceTestSuite))
}
