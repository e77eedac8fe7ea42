package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/quotedesk-api/internal/config"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/sangkips/quotedesk-api/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, zl *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         NewGormLogger(zl, logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	zl.Info("Connected to PostgreSQL", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// NewGormLogger routes GORM's query log through zap
func NewGormLogger(zl *zap.Logger, level logger.LogLevel) logger.Interface {
	return logger.New(zap.NewStdLog(zl.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Models lists every persisted entity in migration order
func Models() []interface{} {
	return []interface{}{
		&entity.Tenant{},
		&entity.User{},
		&entity.Customer{},
		&entity.Product{},
		&entity.Preset{},
		&entity.Quotation{},
		&entity.Invoice{},
		&entity.Proposal{},
		&entity.BrandImage{},
		&entity.DocumentCounter{},
		&entity.IdempotencyKey{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, zl *zap.Logger) error {
	zl.Info("Running database migrations")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	zl.Info("Database migrations completed")
	return nil
}

// SeedDefaultData creates a demo tenant with an owner login, a few products
// and a preset when ADMIN_EMAIL and ADMIN_PASSWORD are set. It does nothing
// if the owner already exists.
func SeedDefaultData(db *gorm.DB, zl *zap.Logger) error {
	adminEmail := strings.ToLower(strings.TrimSpace(viper.GetString("ADMIN_EMAIL")))
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	businessName := viper.GetString("ADMIN_BUSINESS_NAME")

	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		zl.Info("Seed owner already exists", zap.String("email", adminEmail))
		return nil
	}

	if adminName == "" {
		adminName = "Owner"
	}
	if businessName == "" {
		businessName = "Demo Solar Solutions"
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		tenant := &entity.Tenant{
			Name: businessName,
			Slug: utils.UniqueSlug(businessName),
			Profile: entity.BusinessProfile{
				BusinessName: businessName,
				Email:        adminEmail,
			},
		}
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}

		owner := &entity.User{
			TenantID: tenant.ID,
			Name:     adminName,
			Email:    adminEmail,
			Password: hashed,
			IsActive: true,
		}
		if err := tx.Create(owner).Error; err != nil {
			return err
		}

		products := []entity.Product{
			{TenantID: tenant.ID, Name: "Mono PERC Solar Module 540Wp", Price: 14500, Unit: "nos", TaxRate: 12, Status: enum.ProductStatusActive},
			{TenantID: tenant.ID, Name: "On-Grid Inverter 5kW", Price: 52000, Unit: "nos", TaxRate: 12, Status: enum.ProductStatusActive},
			{TenantID: tenant.ID, Name: "Installation & Commissioning", Price: 8000, Unit: "job", TaxRate: 18, Status: enum.ProductStatusActive},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		items := make(entity.LineItems, 0, len(products))
		for i := range products {
			items = append(items, products[i].ToLineItem(1))
		}
		preset := &entity.Preset{TenantID: tenant.ID, Name: "Starter rooftop kit", Items: items}
		if err := tx.Create(preset).Error; err != nil {
			return err
		}

		zl.Info("Seeded demo tenant", zap.String("tenant", tenant.Name), zap.String("email", adminEmail))
		return nil
	})
}
