package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/pkg/pagination"
	"gorm.io/gorm"
)

// createRow inserts row and reports unique violations as ErrConflict
func createRow(ctx context.Context, db *gorm.DB, row interface{}) error {
	err := db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrConflict
	}
	return err
}

// findScoped loads one row by id inside the caller's tenant. A row owned by
// another tenant is reported exactly like a missing one.
func findScoped[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	err := db.WithContext(ctx).Scopes(TenantScope(ctx)).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// updateScoped replaces the allowlisted columns of model
func updateScoped(ctx context.Context, db *gorm.DB, model interface{}, fields []string) error {
	res := db.WithContext(ctx).Model(model).Scopes(TenantScope(ctx)).Select(fields).Updates(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

// deleteScoped hard-deletes by id inside the caller's tenant
func deleteScoped[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	var model T
	res := db.WithContext(ctx).Scopes(TenantScope(ctx)).Delete(&model, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrNotFound
	}
	return nil
}

// listScoped counts and pages a tenant query built by filter
func listScoped[T any](ctx context.Context, db *gorm.DB, params *pagination.PaginationParams, order string, filter func(*gorm.DB) *gorm.DB) ([]T, int64, error) {
	var (
		rows  []T
		total int64
		model T
	)

	query := db.WithContext(ctx).Model(&model).Scopes(TenantScope(ctx))
	if filter != nil {
		query = filter(query)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order(order).
		Find(&rows).Error

	return rows, total, err
}
