package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotedesk-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a client retries a document
// creation with the same Idempotency-Key. Keys are scoped to the tenant and
// bound to the path they were first used on; reusing one elsewhere is a 422.
// Only successful responses are stored, so a failed attempt can be retried.
func Idempotency(repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		tenantID := GetTenantID(c)
		if key == "" || tenantID == uuid.Nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		// the concrete path keeps /quotations/A/duplicate apart from /quotations/B/duplicate
		endpoint := c.Request.Method + " " + c.Request.URL.Path

		existing, err := repo.GetByKey(ctx, tenantID, key)
		if err != nil {
			logger.FromContext(ctx).Warn("Idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		if existing != nil {
			switch {
			case existing.IsExpired():
				if err := repo.Delete(ctx, tenantID, key); err != nil {
					logger.FromContext(ctx).Warn("Failed to drop expired idempotency key", zap.String("key", key), zap.Error(err))
				}
			case existing.Endpoint != endpoint:
				response.AbortWithError(c, http.StatusUnprocessableEntity,
					"Idempotency-Key was already used for a different request")
				return
			default:
				c.Header("X-Idempotency-Replayed", "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
				c.Abort()
				return
			}
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			TenantID:     tenantID,
			Key:          key,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}
		if err := repo.Create(ctx, ikey); err != nil {
			logger.FromContext(ctx).Warn("Failed to store idempotency key", zap.String("key", key), zap.Error(err))
		}
	}
}
