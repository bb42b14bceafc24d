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

// propagateHandler triggers the backend-to-document-store propagation job.
type propagateHandler struct {
	propagationService portssvc.PropagationSvc
}

func newPropagateHandler(p portssvc.PropagationSvc) *propagateHandler {
	return &propagateHandler{propagationService: p}
}

func registerPropagateRoutes(rg *gin.RouterGroup, propagationService portssvc.PropagationSvc) {
	h := newPropagateHandler(propagationService)
	rg.POST("/propagate", h.propagate)
}

func (h *propagateHandler) propagate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PropagateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for propagate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if !tenantAllowed(c, req.TenantID) {
		return
	}
	result, err := h.propagationService.Propagate(c.Request.Context(), req.TenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Propagation failed", slog.String("tenant_id", req.TenantID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to propagate"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "counts": result})
}
