package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
)

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	// CreateWithOwner stores a tenant and its first user atomically
	CreateWithOwner(ctx context.Context, tenant *entity.Tenant, owner *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, profile entity.BusinessProfile) error
}
