package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotedesk-api/pkg/logger"
	"github.com/sangkips/quotedesk-api/pkg/utils"
	"go.uber.org/zap"
)

// AuthMiddleware creates a JWT authentication middleware. The tenant carried
// by the token is stored in the gin context and in the request context so
// repositories scope every query to it.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, 401, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.AbortWithError(c, 401, "Invalid authorization header format")
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.AbortWithError(c, 401, "Invalid or expired token")
			return
		}
		if claims.TenantID == uuid.Nil {
			response.AbortWithError(c, 401, "Tenant context required")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("tenant_id", claims.TenantID)

		ctx := repository.WithTenant(c.Request.Context(), claims.TenantID)
		l := logger.FromContext(ctx).With(
			zap.String("tenant_id", claims.TenantID.String()),
			zap.String("user_id", claims.UserID.String()),
		)
		c.Request = c.Request.WithContext(logger.WithContext(ctx, l))

		c.Next()
	}
}
