package middleware

import (
	"net/http"

	"github.com/atlaspos/pos-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

// StorageBinding keeps the document store bound to the authenticated tenant.
// It must run after AuthMiddleware: when the token subject differs from the
// tenant the provider currently serves, the adapter is rebuilt for the new
// tenant before the handler runs.
func StorageBinding(provider *storage.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, ok := GetTenantIDFromContext(c)
		if ok && tenantID != "" && tenantID != provider.TenantID() {
			if _, err := provider.Rebind(tenantID); err != nil {
				logger := GetLoggerFromCtx(c.Request.Context())
				logger.Error("Failed to bind document store to tenant",
					"tenant_id", tenantID, "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Document store unavailable"})
				return
			}
		}
		c.Next()
	}
}
