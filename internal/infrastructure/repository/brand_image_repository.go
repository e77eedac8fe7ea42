package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type brandImageRepository struct {
	db *gorm.DB
}

// NewBrandImageRepository creates a new brand image repository
func NewBrandImageRepository(db *gorm.DB) domainRepo.BrandImageRepository {
	return &brandImageRepository{db: db}
}

func (r *brandImageRepository) Create(ctx context.Context, image *entity.BrandImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&entity.BrandImage{}).Scopes(TenantScope(ctx)).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last).Error
		if err != nil {
			return err
		}
		image.Position = last + 1
		return tx.Create(image).Error
	})
}

func (r *brandImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BrandImage, error) {
	return findScoped[entity.BrandImage](ctx, r.db, id)
}

func (r *brandImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteScoped[entity.BrandImage](ctx, r.db, id)
}

func (r *brandImageRepository) List(ctx context.Context) ([]entity.BrandImage, error) {
	var images []entity.BrandImage
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Order("position ASC").
		Find(&images).Error
	return images, err
}
