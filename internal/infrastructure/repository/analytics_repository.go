package repository

import (
	"context"
	"time"

	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) CountWindow(ctx context.Context, table string, lastMonth, thisMonth time.Time) (*domainRepo.CountWindow, error) {
	var result domainRepo.CountWindow

	err := r.db.WithContext(ctx).Table(table).Scopes(TenantScope(ctx)).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0) AS this_month,
			COALESCE(SUM(CASE WHEN created_at >= ? AND created_at < ? THEN 1 ELSE 0 END), 0) AS last_month`,
			thisMonth, lastMonth, thisMonth).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *analyticsRepository) InvoiceRevenue(ctx context.Context) (*domainRepo.InvoiceRevenue, error) {
	var result domainRepo.InvoiceRevenue

	err := r.db.WithContext(ctx).Table("invoices").Scopes(TenantScope(ctx)).
		Select(`COALESCE(SUM(CASE WHEN status = ? THEN total ELSE 0 END), 0) AS paid,
			COALESCE(SUM(CASE WHEN status IN ? THEN total ELSE 0 END), 0) AS outstanding`,
			enum.InvoiceStatusPaid,
			[]enum.InvoiceStatus{enum.InvoiceStatusSent, enum.InvoiceStatusOverdue}).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
