package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	portssvc "github.com/atlaspos/pos-backend/internal/core/ports/services"
	"github.com/atlaspos/pos-backend/internal/dto"
	"github.com/atlaspos/pos-backend/internal/handlers"
	"github.com/atlaspos/pos-backend/internal/storage"
	"github.com/atlaspos/pos-backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock SyncSvc ---

type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) ReconcileBranches(ctx context.Context, tenantID string, items []dto.BranchInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) ReconcileCategories(ctx context.Context, tenantID string, items []dto.CategoryInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) ReconcileProducts(ctx context.Context, tenantID string, items []dto.ProductInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) ReconcileEmployees(ctx context.Context, tenantID string, items []dto.EmployeeInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) ReconcileCustomers(ctx context.Context, tenantID string, items []dto.CustomerInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) ReconcileMenuItems(ctx context.Context, tenantID string, items []dto.MenuItemInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) ReconcileTables(ctx context.Context, tenantID string, items []dto.TableInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) ReconcileTableSections(ctx context.Context, tenantID string, items []dto.TableSectionInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) ReconcileSales(ctx context.Context, tenantID string, items []dto.SaleInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) UpsertSales(ctx context.Context, tenantID string, items []dto.SaleInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, items)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) ReconcileCashRegister(ctx context.Context, tenantID string, item dto.CashRegisterInput) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, item)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}
func (m *MockSyncService) SaveAppSettings(ctx context.Context, tenantID string, settings json.RawMessage) (dto.SyncResult, error) {
	args := m.Called(ctx, tenantID, settings)
	return args.Get(0).(dto.SyncResult), args.Error(1)
}

type MockPropagationService struct {
	mock.Mock
}

func (m *MockPropagationService) Propagate(ctx context.Context, tenantID string) (dto.PropagationResult, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(dto.PropagationResult), args.Error(1)
}

// --- Test Suite Setup ---

type SyncHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	sync        *MockSyncService
	propagation *MockPropagationService
	provider    *storage.Provider
}

func (suite *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.sync = new(MockSyncService)
	suite.propagation = new(MockPropagationService)
	suite.provider = storage.NewProvider(storage.Config{
		Backend: storage.BackendFile,
		FileDir: suite.T().TempDir(),
	})

	cfg := &config.Config{
		Port:            "8080",
		RateLimitCount:  1000,
		RateLimitPeriod: time.Minute,
	}
	container := &portssvc.ServiceContainer{Sync: suite.sync, Propagation: suite.propagation}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container, suite.provider)
}

func (suite *SyncHandlerTestSuite) performJSON(method, path, body string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *SyncHandlerTestSuite) TestSyncProducts_Success() {
	suite.sync.On("ReconcileProducts", mock.Anything, "t1", mock.AnythingOfType("[]dto.ProductInput")).
		Return(dto.SyncResult{Created: 2, Updated: 1}, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/sync/products",
		`{"tenantId":"t1","items":[{"id":"p1","name":"Tea"},{"id":"p2"},{"id":"p3"}]}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SyncResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(2, resp.Created)
	suite.Equal(1, resp.Updated)

	suite.sync.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestSyncProducts_MissingTenantID() {
	w := suite.performJSON(http.MethodPost, "/api/v1/sync/products", `{"items":[]}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.sync.AssertNotCalled(suite.T(), "ReconcileProducts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncHandlerTestSuite) TestSyncProducts_MalformedBody() {
	w := suite.performJSON(http.MethodPost, "/api/v1/sync/products", `{"tenantId":`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *SyncHandlerTestSuite) TestSyncProducts_ItemFailuresStillOK() {
	suite.sync.On("ReconcileProducts", mock.Anything, "t1", mock.Anything).
		Return(dto.SyncResult{Errors: 3}, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/sync/products",
		`{"tenantId":"t1","items":[{"id":"a"},{"id":"b"},{"id":"c"}]}`)

	// Per-item failures never change the status code; counters carry them.
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SyncResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.Errors)
}

func (suite *SyncHandlerTestSuite) TestSyncProducts_ServiceFault() {
	suite.sync.On("ReconcileProducts", mock.Anything, "t1", mock.Anything).
		Return(dto.SyncResult{}, assert.AnError).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/sync/products",
		`{"tenantId":"t1","items":[]}`)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *SyncHandlerTestSuite) TestSales_MethodSelectsPolicy() {
	suite.sync.On("ReconcileSales", mock.Anything, "t1", mock.Anything).
		Return(dto.SyncResult{Skipped: 1}, nil).Once()
	suite.sync.On("UpsertSales", mock.Anything, "t1", mock.Anything).
		Return(dto.SyncResult{Updated: 1}, nil).Once()

	body := `{"tenantId":"t1","items":[{"id":"s1","items":[{"name":"Tea"}]}]}`

	w := suite.performJSON(http.MethodPost, "/api/v1/sync/sales", body)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.performJSON(http.MethodPut, "/api/v1/sync/sales", body)
	suite.Equal(http.StatusOK, w.Code)

	suite.sync.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestSyncSettings_PassesRawDocument() {
	suite.sync.On("SaveAppSettings", mock.Anything, "t1", mock.MatchedBy(func(raw json.RawMessage) bool {
		return bytes.Contains(raw, []byte(`"dark"`))
	})).Return(dto.SyncResult{Created: 1}, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/sync/settings",
		`{"tenantId":"t1","items":{"theme":"dark"}}`)
	suite.Equal(http.StatusOK, w.Code)

	suite.sync.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestPropagate_Success() {
	suite.propagation.On("Propagate", mock.Anything, "t1").
		Return(dto.PropagationResult{Branches: 3}, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/propagate", `{"tenantId":"t1"}`)
	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Counts  dto.PropagationResult `json:"counts"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(3, resp.Counts.Branches)

	suite.propagation.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestDocuments_PutGetRoundTrip() {
	w := suite.performJSON(http.MethodPut, "/api/v1/documents/t1_settings", `{"theme":"dark"}`)
	suite.Equal(http.StatusOK, w.Code)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/documents/t1_settings", nil)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"theme":"dark"}`, rec.Body.String())
}

func (suite *SyncHandlerTestSuite) TestDocuments_GetMissing() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/documents/absent", nil)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *SyncHandlerTestSuite) TestDocuments_PutRejectsInvalidJSON() {
	w := suite.performJSON(http.MethodPut, "/api/v1/documents/t1_settings", `{"broken`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *SyncHandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("OK", rec.Body.String())
}

// --- Authenticated routes ---

// securedRouter builds a router with JWT auth enabled and returns it together
// with the sync mock, a signed token for the given tenant, and the storage
// provider behind the document routes.
func securedRouter(t *testing.T, secret, tenantID string) (*gin.Engine, *MockSyncService, string, *storage.Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	syncSvc := new(MockSyncService)
	provider := storage.NewProvider(storage.Config{
		Backend: storage.BackendFile,
		FileDir: t.TempDir(),
	})
	cfg := &config.Config{
		Port:            "8080",
		JWTSecret:       secret,
		RateLimitCount:  1000,
		RateLimitPeriod: time.Minute,
	}
	container := &portssvc.ServiceContainer{Sync: syncSvc, Propagation: new(MockPropagationService)}

	router := gin.New()
	handlers.RegisterRoutes(router, cfg, container, provider)

	claims := jwt.RegisteredClaims{
		Subject:   tenantID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return router, syncSvc, token, provider
}

func performAuthJSON(router *gin.Engine, token, method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSyncAuth_MissingTokenRejected(t *testing.T) {
	router, syncSvc, _, _ := securedRouter(t, "test-secret", "t1")

	w := performAuthJSON(router, "", http.MethodPost, "/api/v1/sync/products",
		`{"tenantId":"t1","items":[]}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	syncSvc.AssertNotCalled(t, "ReconcileProducts", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncAuth_MatchingTenantAccepted(t *testing.T) {
	router, syncSvc, token, _ := securedRouter(t, "test-secret", "t1")
	syncSvc.On("ReconcileProducts", mock.Anything, "t1", mock.Anything).
		Return(dto.SyncResult{Created: 1}, nil).Once()

	w := performAuthJSON(router, token, http.MethodPost, "/api/v1/sync/products",
		`{"tenantId":"t1","items":[{"id":"p1","name":"Tea"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	syncSvc.AssertExpectations(t)
}

func TestSyncAuth_TenantMismatchForbidden(t *testing.T) {
	router, syncSvc, token, _ := securedRouter(t, "test-secret", "t1")

	w := performAuthJSON(router, token, http.MethodPost, "/api/v1/sync/products",
		`{"tenantId":"t2","items":[]}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	syncSvc.AssertNotCalled(t, "ReconcileProducts", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncAuth_StorageFollowsTokenTenant(t *testing.T) {
	router, syncSvc, token, provider := securedRouter(t, "test-secret", "t1")
	require.Empty(t, provider.TenantID())
	syncSvc.On("ReconcileProducts", mock.Anything, "t1", mock.Anything).
		Return(dto.SyncResult{Created: 1}, nil).Once()

	w := performAuthJSON(router, token, http.MethodPost, "/api/v1/sync/products",
		`{"tenantId":"t1","items":[{"id":"p1","name":"Tea"}]}`)
	assert.Equal(t, http.StatusOK, w.Code)

	// The document store is now bound to the token subject, not left on the
	// empty tenant it started with.
	assert.Equal(t, "t1", provider.TenantID())
}

// --- Run Test Suite ---

func TestSyncHandler(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}
