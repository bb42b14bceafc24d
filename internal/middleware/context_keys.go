package middleware

import "github.com/gin-gonic/gin"

const tenantIDKey = "tenantID"

// GetTenantIDFromContext retrieves the authenticated tenant ID from the Gin context.
// Returns the tenant ID and a boolean indicating whether it was found.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantID, exists := c.Get(tenantIDKey)
	if !exists {
		return "", false
	}
	id, ok := tenantID.(string)
	return id, ok
}
