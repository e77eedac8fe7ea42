package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/application/service"
	"github.com/sangkips/quotedesk-api/internal/config"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/cache"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/database"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/handler"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/routes"
	"github.com/sangkips/quotedesk-api/pkg/logger"
	"github.com/sangkips/quotedesk-api/pkg/metrics"
	"github.com/sangkips/quotedesk-api/pkg/utils"
	"go.uber.org/zap"
)

const idempotencySweepInterval = time.Hour

func main() {
	cfg, warnings := config.Load()

	zl := logger.Init(cfg.App.Env, cfg.Log.Level)
	defer logger.Sync()
	for _, w := range warnings {
		zl.Warn(w)
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zl)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db, zl); err != nil {
		zl.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := database.SeedDefaultData(db, zl); err != nil {
		zl.Warn("Failed to seed default data", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)
	httpMetrics := metrics.NewHTTPMetrics(cfg.App.Name)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	presetRepo := repository.NewPresetRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	imageRepo := repository.NewBrandImageRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	counters := repository.NewSequenceRepository(db)

	var sequence domainRepo.DocumentSequence = counters
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			zl.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer rdb.Close()
		sequence = cache.NewRedisSequence(rdb, counters, "")
		zl.Info("Document numbers issued from Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// Services
	authService := service.NewAuthService(tenantRepo, userRepo, jwtManager)
	profileService := service.NewBusinessProfileService(tenantRepo, cfg.Storage.ProfileImageSize)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	presetService := service.NewPresetService(presetRepo, productRepo)
	quotationService := service.NewQuotationService(
		quotationRepo, invoiceRepo, presetRepo, customerRepo, productRepo,
		sequence, httpMetrics, cfg.Document.QuotationValidityDays,
	)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, productRepo, sequence, httpMetrics)
	proposalService := service.NewProposalService(proposalRepo, sequence, httpMetrics, service.ProposalConfig{
		ValidityDays: cfg.Document.ProposalValidityDays,
		GSTRate:      cfg.Document.ProposalGSTRate,
	})
	imageService := service.NewBrandImageService(imageRepo, cfg.Storage.UploadMaxSize, cfg.Storage.BrandImageMaxDimension)
	dashboardService := service.NewDashboardService(analyticsRepo)
	renderService := service.NewDocumentRenderService(quotationService, invoiceService, proposalService, tenantRepo, imageRepo)

	handlers := &routes.Handlers{
		Auth:            handler.NewAuthHandler(authService),
		BusinessProfile: handler.NewBusinessProfileHandler(profileService, cfg.Storage.UploadMaxSize),
		Customer:        handler.NewCustomerHandler(customerService),
		Product:         handler.NewProductHandler(productService, cfg.Storage.UploadMaxSize),
		Preset:          handler.NewPresetHandler(presetService),
		Quotation:       handler.NewQuotationHandler(quotationService, renderService),
		Invoice:         handler.NewInvoiceHandler(invoiceService, renderService),
		Proposal:        handler.NewProposalHandler(proposalService, renderService),
		BrandImage:      handler.NewBrandImageHandler(imageService, cfg.Storage.UploadMaxSize),
		Dashboard:       handler.NewDashboardHandler(dashboardService),
	}

	router := routes.Setup(ctx, handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Metrics:         httpMetrics,
		Logger:          zl,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo, zl)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Starting server", zap.String("service", cfg.App.Name), zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// sweepIdempotencyKeys deletes expired keys until ctx is cancelled
func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, zl *zap.Logger) {
	ticker := time.NewTicker(idempotencySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				zl.Warn("Failed to delete expired idempotency keys", zap.Error(err))
				continue
			}
			if n > 0 {
				zl.Debug("Deleted expired idempotency keys", zap.Int64("count", n))
			}
		}
	}
}
