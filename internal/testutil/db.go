// Package testutil provides an in-memory database and tenant fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/database"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/sangkips/quotedesk-api/pkg/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dsnReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_")

// NewDB opens a migrated SQLite database private to t
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dsnReplacer.Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory database free of lock errors
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...), "migrate")
	return db
}

// Tenant is a seeded tenant with its owner and a context scoped to it
type Tenant struct {
	Tenant *entity.Tenant
	Owner  *entity.User
	Ctx    context.Context
}

// Password is the plain text password of every seeded owner
const Password = "password123"

// SeedTenant creates a tenant named name with one owner user
func SeedTenant(t *testing.T, db *gorm.DB, name string) *Tenant {
	t.Helper()

	hashed, err := utils.HashPassword(Password)
	require.NoError(t, err)

	tenant := &entity.Tenant{
		Name:    name,
		Slug:    utils.UniqueSlug(name),
		Profile: entity.BusinessProfile{BusinessName: name},
	}
	require.NoError(t, db.Create(tenant).Error, "tenant")

	owner := &entity.User{
		TenantID: tenant.ID,
		Name:     name + " Owner",
		Email:    strings.ToLower(utils.Slugify(name)) + "@example.com",
		Password: hashed,
		IsActive: true,
	}
	require.NoError(t, db.Create(owner).Error, "owner")

	return &Tenant{
		Tenant: tenant,
		Owner:  owner,
		Ctx:    repository.WithTenant(context.Background(), tenant.ID),
	}
}
