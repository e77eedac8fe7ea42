package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"gorm.io/gorm"
)

var productUpdatableFields = []string{"name", "price", "unit", "hsn_code", "tax_rate", "status", "updated_at"}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) CreateBatch(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(products, 100).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return findScoped[entity.Product](ctx, r.db, id)
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	out := make(map[uuid.UUID]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var products []entity.Product
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return updateScoped(ctx, r.db, product, productUpdatableFields)
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteScoped[entity.Product](ctx, r.db, id)
}

func (r *productRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.ProductFilter) ([]entity.Product, int64, error) {
	return listScoped[entity.Product](ctx, r.db, params, "name ASC", func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(SearchScope(filter.Search, "name", "hsn_code"))
		if filter.Active != nil {
			db = db.Where("status = ?", enum.ProductStatusFromActive(*filter.Active))
		}
		return db
	})
}
