package routes

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/config"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/handler"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/quotedesk-api/pkg/logger"
	"github.com/sangkips/quotedesk-api/pkg/metrics"
	"github.com/sangkips/quotedesk-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth            *handler.AuthHandler
	BusinessProfile *handler.BusinessProfileHandler
	Customer        *handler.CustomerHandler
	Product         *handler.ProductHandler
	Preset          *handler.PresetHandler
	Quotation       *handler.QuotationHandler
	Invoice         *handler.InvoiceHandler
	Proposal        *handler.ProposalHandler
	BrandImage      *handler.BrandImageHandler
	Dashboard       *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Metrics         *metrics.HTTPMetrics
	Logger          *zap.Logger
	// Ping reports whether the database is reachable, nil skips the check
	Ping func(ctx context.Context) error
}

// Setup creates the Gin router and registers all routes. ctx bounds the
// background work of the rate limiter.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	base := deps.Logger
	if base == nil {
		base = logger.L()
	}
	router.Use(middleware.RequestLogger(base))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.Timeout(deps.Cfg.App.RequestTimeout))

	router.GET("/health", func(c *gin.Context) {
		if deps.Ping != nil {
			if err := deps.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unavailable",
					"service": deps.Cfg.App.Name,
					"error":   "database unreachable",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.RequireTenant())

		rateLimiter := middleware.NewTenantRateLimiter(ctx, middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			BurstSize:         deps.Cfg.RateLimit.Burst,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	protected.GET("/business-profile", h.BusinessProfile.Get)
	protected.PUT("/business-profile", h.BusinessProfile.Update)
	protected.POST("/upload/image", h.BusinessProfile.UploadImage)
	protected.DELETE("/upload/image", h.BusinessProfile.DeleteImage)

	protected.GET("/dashboard/stats", h.Dashboard.GetStats)

	registerCustomerRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerPresetRoutes(protected, h)

	// document creation replays the first response for a repeated Idempotency-Key
	idempotent := middleware.Idempotency(deps.IdempotencyRepo)
	registerQuotationRoutes(protected, h, idempotent)
	registerInvoiceRoutes(protected, h, idempotent)
	registerProposalRoutes(protected, h, idempotent)

	registerBrandImageRoutes(protected, h)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.ImportProducts)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerPresetRoutes(protected *gin.RouterGroup, h *Handlers) {
	presets := protected.Group("/presets")
	{
		presets.GET("", h.Preset.List)
		presets.POST("", h.Preset.Create)
		presets.GET("/:id", h.Preset.Get)
		presets.PUT("/:id", h.Preset.Update)
		presets.DELETE("/:id", h.Preset.Delete)
	}
}

func registerQuotationRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	quotations := protected.Group("/quotations")
	{
		quotations.GET("", h.Quotation.List)
		quotations.POST("", idempotent, h.Quotation.Create)
		quotations.GET("/:id", h.Quotation.Get)
		quotations.PUT("/:id", h.Quotation.Update)
		quotations.DELETE("/:id", h.Quotation.Delete)
		quotations.POST("/:id/duplicate", idempotent, h.Quotation.Duplicate)
		quotations.POST("/:id/convert", idempotent, h.Quotation.Convert)
		quotations.GET("/:id/pdf", h.Quotation.PDF)
		quotations.GET("/:id/html", h.Quotation.HTML)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", idempotent, h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.GET("/:id/pdf", h.Invoice.PDF)
		invoices.GET("/:id/html", h.Invoice.HTML)
	}
}

func registerProposalRoutes(protected *gin.RouterGroup, h *Handlers, idempotent gin.HandlerFunc) {
	proposals := protected.Group("/proposals")
	{
		proposals.GET("", h.Proposal.List)
		proposals.POST("", idempotent, h.Proposal.Create)
		proposals.GET("/:id", h.Proposal.Get)
		proposals.PUT("/:id", h.Proposal.Update)
		proposals.DELETE("/:id", h.Proposal.Delete)
		proposals.POST("/:id/duplicate", idempotent, h.Proposal.Duplicate)
		proposals.GET("/:id/pdf", h.Proposal.PDF)
		proposals.GET("/:id/html", h.Proposal.HTML)
	}
}

func registerBrandImageRoutes(protected *gin.RouterGroup, h *Handlers) {
	images := protected.Group("/brand-images")
	{
		images.GET("", h.BrandImage.List)
		images.POST("", h.BrandImage.Upload)
		images.DELETE("/:id", h.BrandImage.Delete)
	}
}
