package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	Search string
	// Active restricts to active (true) or inactive (false) products when set
	Active *bool
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// CreateBatch inserts all products in one transaction
	CreateBatch(ctx context.Context, products []entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, filter ProductFilter) ([]entity.Product, int64, error)
}
