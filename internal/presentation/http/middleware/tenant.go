package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
)

// RequireTenant ensures a valid tenant context exists before any tenant-owned
// data is touched
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetTenantID(c) == uuid.Nil {
			response.AbortWithError(c, 401, "Tenant context required")
			return
		}
		if _, ok := repository.GetTenantID(c.Request.Context()); !ok {
			response.AbortWithError(c, 401, "Tenant context required")
			return
		}

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
