package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/quotedesk-api/internal/domain/entity"
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceRepository issues document numbers from the document_counters
// table. The increment is a single UPDATE, so the row lock serialises
// concurrent callers of the same tenant and type.
type SequenceRepository struct {
	db *gorm.DB
}

var _ domainRepo.DocumentSequence = (*SequenceRepository)(nil)

// NewSequenceRepository creates a counter backed sequence
func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next increments and returns the counter. The first call for a tenant and
// type seeds the counter from the documents that already exist.
func (r *SequenceRepository) Next(ctx context.Context, tenantID uuid.UUID, docType enum.DocumentType) (int64, error) {
	if !docType.IsValid() {
		return 0, fmt.Errorf("unknown document type %q", docType)
	}

	var value int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		incremented, err := r.increment(tx, tenantID, docType)
		if err != nil {
			return err
		}

		if !incremented {
			existing, err := r.countDocuments(tx, tenantID, docType)
			if err != nil {
				return err
			}

			counter := entity.DocumentCounter{
				TenantID: tenantID,
				DocType:  string(docType),
				Value:    existing + 1,
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				value = counter.Value
				return nil
			}

			// another request created the row first
			if _, err := r.increment(tx, tenantID, docType); err != nil {
				return err
			}
		}

		return tx.Model(&entity.DocumentCounter{}).
			Where("tenant_id = ? AND doc_type = ?", tenantID, string(docType)).
			Select("value").
			Scan(&value).Error
	})
	if err != nil {
		return 0, fmt.Errorf("next %s number: %w", docType, err)
	}
	return value, nil
}

// Peek returns the last issued value without consuming one
func (r *SequenceRepository) Peek(ctx context.Context, tenantID uuid.UUID, docType enum.DocumentType) (int64, error) {
	var counter entity.DocumentCounter
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND doc_type = ?", tenantID, string(docType)).
		Limit(1).
		Find(&counter)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 1 {
		return counter.Value, nil
	}
	return r.countDocuments(r.db.WithContext(ctx), tenantID, docType)
}

func (r *SequenceRepository) increment(tx *gorm.DB, tenantID uuid.UUID, docType enum.DocumentType) (bool, error) {
	res := tx.Model(&entity.DocumentCounter{}).
		Where("tenant_id = ? AND doc_type = ?", tenantID, string(docType)).
		Updates(map[string]interface{}{
			"value":      gorm.Expr("value + 1"),
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *SequenceRepository) countDocuments(tx *gorm.DB, tenantID uuid.UUID, docType enum.DocumentType) (int64, error) {
	var count int64
	err := tx.Table(docType.TableName()).Where("tenant_id = ?", tenantID).Count(&count).Error
	return count, err
}
