package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// TenantIDKey is the context key for tenant ID
const TenantIDKey ctxKey = "tenant_id"

// TenantScope returns a GORM scope that filters by tenant.
// It is applied to every query on tenant-owned tables. Without a tenant in
// ctx the query matches nothing.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		tenantID, ok := GetTenantID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

// SearchScope matches term case-insensitively against any of columns
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// WithTenant adds tenant ID to context
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID extracts tenant ID from context
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	if !ok || tenantID == uuid.Nil {
		return uuid.Nil, false
	}
	return tenantID, true
}
