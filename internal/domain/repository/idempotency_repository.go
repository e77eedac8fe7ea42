package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string within a tenant
	GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (*entity.IdempotencyKey, error)
	// Create stores a new idempotency key
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Delete removes a key so it can be stored again
	Delete(ctx context.Context, tenantID uuid.UUID, key string) error
	// DeleteExpired removes expired idempotency keys
	DeleteExpired(ctx context.Context) (int64, error)
}
