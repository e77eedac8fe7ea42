package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) domainRepo.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) CreateWithOwner(ctx context.Context, tenant *entity.Tenant, owner *entity.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}
		owner.TenantID = tenant.ID
		return tx.Create(owner).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrConflict
	}
	return err
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &tenant, err
}

func (r *tenantRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile entity.BusinessProfile) error {
	tenant := &entity.Tenant{ID: id, Profile: profile}
	res := r.db.WithContext(ctx).Model(tenant).Select("profile", "updated_at").Updates(tenant)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}
