package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withTenant stands in for AuthMiddleware
func withTenant(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("tenant_id", id)
		c.Next()
	}
}

func TestTenantRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewTenantRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	noisy, quiet := uuid.New(), uuid.New()

	serve := func(tenant uuid.UUID) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(withTenant(tenant), rl.Middleware())
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w
	}

	assert.Equal(t, http.StatusOK, serve(noisy).Code)
	assert.Equal(t, http.StatusOK, serve(noisy).Code)

	w := serve(noisy)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Contains(t, w.Body.String(), `"success":false`)

	assert.Equal(t, http.StatusOK, serve(quiet).Code)
	assert.Equal(t, 2, rl.ActiveTenants())
}

func TestTenantRateLimiterCleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewTenantRateLimiter(ctx, RateLimiterConfig{EntryTTL: time.Millisecond})
	rl.getLimiter(uuid.New())
	require.Equal(t, 1, rl.ActiveTenants())

	time.Sleep(5 * time.Millisecond)
	rl.cleanup()
	assert.Equal(t, 0, rl.ActiveTenants())
}

func TestRequireTenant(t *testing.T) {
	r := gin.New()
	r.Use(RequireTenant())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestTimeoutBoundsContext(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
