package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	portssvc "github.com/atlaspos/pos-backend/internal/core/ports/services"
	"github.com/atlaspos/pos-backend/internal/dto"
	"github.com/atlaspos/pos-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// syncHandler handles the reconciliation endpoints. Each endpoint ingests one
// batch of client records and answers with per-batch counters; item-level
// failures are reflected in the counters, not in the status code.
type syncHandler struct {
	syncService portssvc.SyncSvc
}

func newSyncHandler(s portssvc.SyncSvc) *syncHandler {
	return &syncHandler{syncService: s}
}

// registerSyncRoutes registers the per-entity reconciliation routes. POST and
// PUT are equivalent for most entities; sales differ: POST never overwrites an
// existing sale, PUT does.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvc) {
	h := newSyncHandler(syncService)

	sync := rg.Group("/sync")
	{
		sync.POST("/branches", h.syncBranches)
		sync.PUT("/branches", h.syncBranches)
		sync.POST("/categories", h.syncCategories)
		sync.PUT("/categories", h.syncCategories)
		sync.POST("/products", h.syncProducts)
		sync.PUT("/products", h.syncProducts)
		sync.POST("/employees", h.syncEmployees)
		sync.PUT("/employees", h.syncEmployees)
		sync.POST("/customers", h.syncCustomers)
		sync.PUT("/customers", h.syncCustomers)
		sync.POST("/menu-items", h.syncMenuItems)
		sync.PUT("/menu-items", h.syncMenuItems)
		sync.POST("/tables", h.syncTables)
		sync.PUT("/tables", h.syncTables)
		sync.POST("/table-sections", h.syncTableSections)
		sync.PUT("/table-sections", h.syncTableSections)

		sync.POST("/sales", h.syncSales)
		sync.PUT("/sales", h.upsertSales)

		sync.POST("/cash-registers", h.syncCashRegister)
		sync.PUT("/cash-registers", h.syncCashRegister)
		sync.POST("/settings", h.syncSettings)
		sync.PUT("/settings", h.syncSettings)
	}
}

// tenantAllowed rejects batches whose tenantId differs from the tenant the
// auth middleware attached. When auth is disabled no tenant is attached and
// every batch passes.
func tenantAllowed(c *gin.Context, tenantID string) bool {
	authTenant, ok := middleware.GetTenantIDFromContext(c)
	if !ok || authTenant == tenantID {
		return true
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Tenant mismatch in sync batch",
		slog.String("authenticated", authTenant), slog.String("requested", tenantID))
	c.JSON(http.StatusForbidden, gin.H{"error": "Tenant mismatch"})
	return false
}

// respondSync maps a service result to the wire response. Request-level faults
// become 400/500; a completed batch is always 200, whatever its counters say.
func respondSync(c *gin.Context, entity string, result dto.SyncResult, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error in sync batch", slog.String("entity", entity), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Sync batch failed", slog.String("entity", entity), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync " + entity})
		return
	}
	logger.Info("Sync batch completed", slog.String("entity", entity),
		slog.Int("created", result.Created), slog.Int("updated", result.Updated),
		slog.Int("errors", result.Errors), slog.Int("skipped", result.Skipped))
	c.JSON(http.StatusOK, dto.ToSyncResponse(result))
}

func (h *syncHandler) syncBranches(c *gin.Context) {
	var req dto.BranchSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileBranches(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "branches", result, err)
}

func (h *syncHandler) syncCategories(c *gin.Context) {
	var req dto.CategorySyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileCategories(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "categories", result, err)
}

func (h *syncHandler) syncProducts(c *gin.Context) {
	var req dto.ProductSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileProducts(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "products", result, err)
}

func (h *syncHandler) syncEmployees(c *gin.Context) {
	var req dto.EmployeeSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileEmployees(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "employees", result, err)
}

func (h *syncHandler) syncCustomers(c *gin.Context) {
	var req dto.CustomerSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileCustomers(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "customers", result, err)
}

func (h *syncHandler) syncMenuItems(c *gin.Context) {
	var req dto.MenuItemSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileMenuItems(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "menu-items", result, err)
}

func (h *syncHandler) syncTables(c *gin.Context) {
	var req dto.TableSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileTables(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "tables", result, err)
}

func (h *syncHandler) syncTableSections(c *gin.Context) {
	var req dto.TableSectionSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileTableSections(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "table-sections", result, err)
}

// syncSales ingests sales idempotently: re-sent sales are skipped.
func (h *syncHandler) syncSales(c *gin.Context) {
	var req dto.SaleSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileSales(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "sales", result, err)
}

// upsertSales updates already-known sales in place instead of skipping them.
func (h *syncHandler) upsertSales(c *gin.Context) {
	var req dto.SaleSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.UpsertSales(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "sales", result, err)
}

func (h *syncHandler) syncCashRegister(c *gin.Context) {
	var req dto.CashRegisterSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.ReconcileCashRegister(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "cash-registers", result, err)
}

func (h *syncHandler) syncSettings(c *gin.Context) {
	var req dto.SettingsSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.syncService.SaveAppSettings(c.Request.Context(), req.TenantID, req.Items)
	respondSync(c, "settings", result, err)
}
